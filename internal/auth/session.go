package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// SessionStore persists the id of the signed-in user between runs.
type SessionStore interface {
	// Load returns the saved user id; ok is false when none is saved.
	Load() (id int64, ok bool, err error)
	Save(id int64) error
	Clear() error
}

// FileSessionStore keeps the user id in a single file.
type FileSessionStore struct {
	path string
}

// NewFileSessionStore returns a store writing to path.
func NewFileSessionStore(path string) *FileSessionStore {
	return &FileSessionStore{path: path}
}

func (f *FileSessionStore) Load() (int64, bool, error) {
	b, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("read session: %w", err)
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return 0, false, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse session %q: %w", s, err)
	}
	return id, true, nil
}

func (f *FileSessionStore) Save(id int64) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	if err := os.WriteFile(f.path, []byte(strconv.FormatInt(id, 10)+"\n"), 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

func (f *FileSessionStore) Clear() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// MemorySessionStore is a SessionStore for tests and one-shot runs.
type MemorySessionStore struct {
	mu sync.Mutex
	id int64
	ok bool
}

func (m *MemorySessionStore) Load() (int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.id, m.ok, nil
}

func (m *MemorySessionStore) Save(id int64) error {
	m.mu.Lock()
	m.id, m.ok = id, true
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Clear() error {
	m.mu.Lock()
	m.id, m.ok = 0, false
	m.mu.Unlock()
	return nil
}
