package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"github.com/abhisek/alfanumrik/ent"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// Store holds the ent client and hands out the partitioned repositories.
// A Store returned by WithTx shares the parent's connection and is bound to
// the transaction.
type Store struct {
	db     *sql.DB
	client *ent.Client
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies the pragmas and runs auto-migration. Every failure is reported
// as ErrStorageUnavailable so callers can degrade without inspecting driver
// errors.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, unavailable("open database", err)
	}

	// One connection keeps pragmas in force and serializes writers in-process.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, unavailable("apply pragmas", err)
	}

	drv := entsql.OpenDB(dialect.SQLite, db)
	client := ent.NewClient(ent.Driver(drv))

	if err := client.Schema.Create(context.Background()); err != nil {
		client.Close()
		return nil, unavailable("auto-migrate", err)
	}

	return &Store{db: db, client: client}, nil
}

// Client returns the underlying ent client.
func (s *Store) Client() *ent.Client {
	return s.client
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.client.Close()
}

// Documents returns the singleton-document repository.
func (s *Store) Documents() DocumentRepo {
	return &documentRepo{client: s.client}
}

// Collections returns the collection repository.
func (s *Store) Collections() CollectionRepo {
	return &collectionRepo{client: s.client}
}

// Users returns the account repository.
func (s *Store) Users() UserRepo {
	return &userRepo{client: s.client}
}

// EventRepo returns the LLM request event repository.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{client: s.client}
}

// WithTx runs fn inside a single transaction. fn must only use the Store it
// is given; the outer Store's connection is held by the transaction.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	tx, err := s.client.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	if err := fn(&Store{db: s.db, client: tx.Client()}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Reset deletes every row the application has written. It is an operator
// action; nothing in normal flow deletes data.
func (s *Store) Reset(ctx context.Context) error {
	return s.WithTx(ctx, func(tx *Store) error {
		if _, err := tx.client.Document.Delete().Exec(ctx); err != nil {
			return fmt.Errorf("reset documents: %w", err)
		}
		if _, err := tx.client.CollectionRecord.Delete().Exec(ctx); err != nil {
			return fmt.Errorf("reset collections: %w", err)
		}
		if _, err := tx.client.User.Delete().Exec(ctx); err != nil {
			return fmt.Errorf("reset users: %w", err)
		}
		if _, err := tx.client.LLMRequestEvent.Delete().Exec(ctx); err != nil {
			return fmt.Errorf("reset llm events: %w", err)
		}
		return nil
	})
}

// applyPragmas configures SQLite for single-user local use.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. ALFANUMRIK_DB environment variable
// 2. $XDG_DATA_HOME/alfanumrik/alfanumrik.db
// 3. ~/.local/share/alfanumrik/alfanumrik.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("ALFANUMRIK_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "alfanumrik", "alfanumrik.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
