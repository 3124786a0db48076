package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/alfanumrik/internal/auth"
	"github.com/abhisek/alfanumrik/internal/cache"
	"github.com/abhisek/alfanumrik/internal/config"
	"github.com/abhisek/alfanumrik/internal/curriculum"
	"github.com/abhisek/alfanumrik/internal/llm"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/progress"
	"github.com/abhisek/alfanumrik/internal/store"
)

// app holds the dependencies a command needs. Services that talk to a model
// are built on first use so offline commands work without an API key.
type app struct {
	cfg     *config.Config
	log     *logger.Logger
	store   *store.Store
	cache   cache.Cache
	catalog *curriculum.Catalog
	tracker *progress.Tracker
	auth    *auth.Service

	provider llm.Provider
	closers  []func() error
}

// openApp loads configuration, opens the store and restores the saved
// session. Callers must defer Close.
func openApp(cmd *cobra.Command) (*app, error) {
	ctx := cmd.Context()
	flags := cmd.Flags()
	envFile, _ := flags.GetString("env-file")
	dbPath, _ := flags.GetString("db")
	lang, _ := flags.GetString("lang")
	logMode, _ := flags.GetString("log")

	cfg, err := config.Load(envFile, config.Overrides{DBPath: dbPath, Language: lang, LogMode: logMode})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	log, err := logger.New(cfg.LogMode)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a := &app{cfg: cfg, log: log, store: st}
	a.closers = append(a.closers, st.Close)

	a.cache = a.openCache(ctx)

	a.catalog, err = curriculum.Load(ctx, st.Documents(), log)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load curriculum: %w", err)
	}

	a.tracker = progress.NewTracker(st, log)
	a.auth = auth.NewService(st.Users(), a.tracker, auth.NewFileSessionStore(cfg.SessionPath), log)
	if _, err := a.auth.Restore(ctx); err != nil {
		log.Warn("could not restore session", "error", err)
	}
	return a, nil
}

// openCache layers Redis behind the in-process cache when a URL is set.
// An unreachable Redis is logged and skipped.
func (a *app) openCache(ctx context.Context) cache.Cache {
	mem := cache.NewMemory()
	if a.cfg.RedisURL == "" {
		return mem
	}
	r, err := cache.DialRedis(ctx, a.cfg.RedisURL, "alfanumrik:")
	if err != nil {
		a.log.Warn("redis unavailable, using memory cache only", "error", err)
		return mem
	}
	a.closers = append(a.closers, r.Close)
	return cache.NewTiered(mem, r)
}

// LLM returns the configured provider, building it on first use.
func (a *app) LLM(ctx context.Context) (llm.Provider, error) {
	if a.provider != nil {
		return a.provider, nil
	}
	p, err := llm.NewProvider(ctx, a.cfg.LLM, a.store.EventRepo(), a.log)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	a.provider = p
	return p, nil
}

// Student returns the signed-in profile or asks the user to log in.
func (a *app) Student() (*auth.Profile, error) {
	p, err := a.auth.RequireCurrent()
	if errors.Is(err, auth.ErrNotAuthenticated) {
		return nil, errors.New("not signed in; run `alfanumrik login` first")
	}
	return p, err
}

func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Warn("close failed", "error", err)
		}
	}
	a.log.Sync()
}

// withApp adapts a command body that needs an app into a cobra RunE.
func withApp(run func(cmd *cobra.Command, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return run(cmd, a, args)
	}
}
