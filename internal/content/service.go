package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/abhisek/alfanumrik/internal/cache"
	"github.com/abhisek/alfanumrik/internal/logger"
	"github.com/abhisek/alfanumrik/internal/store"
)

var (
	// ErrGenerationFailed wraps generator errors that are surfaced to the
	// caller. Module generation never surfaces it; it serves the fallback.
	ErrGenerationFailed = errors.New("content generation failed")

	// ErrNotFound is returned when an update targets a module that was never
	// generated.
	ErrNotFound = errors.New("module not found")
)

// Result is the outcome of GetOrGenerate. Raw is the stored JSON of Module;
// it is byte-identical across cache hits.
type Result struct {
	Module    *Module
	Raw       []byte
	WasCached bool

	// Fallback is set when generation failed and Module is the placeholder.
	Fallback bool
}

// Service looks modules up in the cache, then the store, and generates them
// on a miss. Generated modules are written to both layers.
type Service struct {
	cache cache.Cache
	docs  store.DocumentRepo
	gen   Generator
	log   *logger.Logger

	// flight collapses concurrent generations of the same module.
	flight singleflight.Group

	// mu serializes section merges so concurrent updates do not drop each
	// other's sections.
	mu sync.Mutex
}

// NewService creates a content service.
func NewService(c cache.Cache, docs store.DocumentRepo, gen Generator, log *logger.Logger) *Service {
	return &Service{cache: c, docs: docs, gen: gen, log: log}
}

// GetOrGenerate returns the module for key. Storage errors are logged and
// treated as misses; a generation failure yields FallbackModule, which is
// not stored.
func (s *Service) GetOrGenerate(ctx context.Context, key ModuleKey, studentName string) (*Result, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}

	if m, raw, ok := s.lookup(ctx, key); ok {
		return &Result{Module: m, Raw: raw, WasCached: true}, nil
	}

	// The shared generation outlives any one caller: a caller that gives up
	// stops waiting, but the others still get the module. The provider's own
	// timeout bounds the call.
	flightCtx := context.WithoutCancel(ctx)
	ch := s.flight.DoChan(key.String(), func() (any, error) {
		return s.generate(flightCtx, key, studentName)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return nil, r.Err
		}
		res := *r.Val.(*Result)
		res.Module = cloneModule(res.Module)
		return &res, nil
	}
}

func (s *Service) generate(ctx context.Context, key ModuleKey, studentName string) (*Result, error) {
	// A flight that finished between our lookup and Do has filled the cache.
	if m, raw, ok := s.lookup(ctx, key); ok {
		return &Result{Module: m, Raw: raw, WasCached: true}, nil
	}

	m, err := s.gen.GenerateModule(ctx, key, studentName)
	if err != nil {
		s.log.Warn("module generation failed, serving fallback", "key", key.String(), "error", err)
		fb := FallbackModule(key.Chapter)
		raw, _ := json.Marshal(fb)
		return &Result{Module: fb, Raw: raw, Fallback: true}, nil
	}

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode module: %w", err)
	}
	s.save(ctx, key, raw)
	s.log.Info("generated module", "key", key.String(), "concepts", len(m.KeyConcepts))
	return &Result{Module: m, Raw: raw}, nil
}

// cloneModule gives each caller sharing a generation its own copy.
func cloneModule(m *Module) *Module {
	raw, err := json.Marshal(m)
	if err != nil {
		return m
	}
	c, err := decodeModule(raw)
	if err != nil {
		return m
	}
	return c
}

// Cached returns the module for key without generating it.
func (s *Service) Cached(ctx context.Context, key ModuleKey) (*Module, error) {
	m, _, ok := s.lookup(ctx, key)
	if !ok {
		return nil, ErrNotFound
	}
	return m, nil
}

// UpdateSection merges section into the stored module and writes it back
// to both layers.
func (s *Service) UpdateSection(ctx context.Context, key ModuleKey, section Section) (*Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, _, ok := s.lookup(ctx, key)
	if !ok {
		return nil, fmt.Errorf("update %s: %w", key, ErrNotFound)
	}
	section.ApplyTo(m)

	raw, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode module: %w", err)
	}
	if err := s.docs.PutDocument(ctx, store.PartitionModules, key.String(), raw); err != nil {
		return nil, fmt.Errorf("store module: %w", err)
	}
	if err := s.cache.Set(ctx, key.String(), raw); err != nil {
		s.log.Warn("cache write failed", "key", key.String(), "error", err)
	}
	return m, nil
}

// GenerateSection generates one section for an existing module and merges
// it. Generation errors are returned wrapped in ErrGenerationFailed.
func (s *Service) GenerateSection(ctx context.Context, key ModuleKey, kind SectionKind) (Section, error) {
	if _, err := ParseSectionKind(string(kind)); err != nil {
		return nil, err
	}
	m, err := s.Cached(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", kind, err)
	}

	sec, err := s.gen.GenerateSection(ctx, key, kind, m.Digest())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}
	if _, err := s.UpdateSection(ctx, key, sec); err != nil {
		return nil, err
	}
	return sec, nil
}

// lookup checks the cache and then the store. A store hit back-fills the
// cache. Undecodable entries count as misses.
func (s *Service) lookup(ctx context.Context, key ModuleKey) (*Module, []byte, bool) {
	k := key.String()

	raw, ok, err := s.cache.Get(ctx, k)
	if err != nil {
		s.log.Warn("cache read failed", "key", k, "error", err)
	}
	if ok {
		if m, err := decodeModule(raw); err == nil {
			return m, raw, true
		}
		s.log.Warn("dropping undecodable cached module", "key", k)
	}

	raw, err = s.docs.GetDocument(ctx, store.PartitionModules, k)
	switch {
	case errors.Is(err, store.ErrNotFound):
		return nil, nil, false
	case err != nil:
		s.log.Warn("store read failed", "key", k, "error", err)
		return nil, nil, false
	}
	m, err := decodeModule(raw)
	if err != nil {
		s.log.Warn("dropping undecodable stored module", "key", k, "error", err)
		return nil, nil, false
	}
	if err := s.cache.Set(ctx, k, raw); err != nil {
		s.log.Warn("cache write failed", "key", k, "error", err)
	}
	return m, raw, true
}

func (s *Service) save(ctx context.Context, key ModuleKey, raw []byte) {
	k := key.String()
	if err := s.docs.PutDocument(ctx, store.PartitionModules, k, raw); err != nil {
		s.log.Warn("store write failed", "key", k, "error", err)
	}
	if err := s.cache.Set(ctx, k, raw); err != nil {
		s.log.Warn("cache write failed", "key", k, "error", err)
	}
}

func decodeModule(raw []byte) (*Module, error) {
	var m Module
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return &m, nil
}
