package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/msgboard/msgboard/internal/errors"
	"github.com/msgboard/msgboard/internal/logger"
)

// FileName is the name of the persisted session file inside the config dir.
const FileName = "session.json"

// Record is the persisted form of an auth session.
type Record struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	TokenType    string    `json:"token_type,omitempty"`
	ExpiresAt    int64     `json:"expires_at,omitempty"`
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	SavedAt      time.Time `json:"saved_at"`
}

// Store loads, saves and clears the persisted session.
// Load returns (nil, nil) when nothing is stored.
type Store interface {
	Load() (*Record, error)
	Save(rec *Record) error
	Clear() error
}

// FileStore keeps the session in a JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a store backed by path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns <dir>/session.json.
func DefaultPath(dir string) string {
	return filepath.Join(dir, FileName)
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the session file. A missing file is not an error.
// A corrupt file is logged and treated as no session.
func (s *FileStore) Load() (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.SessionLoadFailed(s.path, err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		logger.WithComponent("session").Warn("ignoring corrupt session file", "path", s.path, "error", err)
		return nil, nil
	}
	if rec.AccessToken == "" {
		return nil, nil
	}
	return &rec, nil
}

// Save writes rec atomically (temp file + rename) with owner-only permissions.
func (s *FileStore) Save(rec *Record) error {
	if rec == nil {
		return s.Clear()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return errors.SessionSaveFailed(s.path, err)
	}

	stamped := *rec
	if stamped.SavedAt.IsZero() {
		stamped.SavedAt = time.Now().UTC()
	}

	data, err := json.MarshalIndent(&stamped, "", "  ")
	if err != nil {
		return errors.SessionSaveFailed(s.path, err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return errors.SessionSaveFailed(s.path, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return errors.SessionSaveFailed(s.path, err)
	}
	return nil
}

// Clear removes the session file. Removing a missing file is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.SessionSaveFailed(s.path, err)
	}
	return nil
}

// MemoryStore keeps the session in memory.
type MemoryStore struct {
	mu  sync.Mutex
	rec *Record

	// Saves counts successful Save calls.
	Saves int
}

// NewMemoryStore creates a store, optionally pre-populated.
func NewMemoryStore(rec *Record) *MemoryStore {
	m := &MemoryStore{}
	if rec != nil {
		cp := *rec
		m.rec = &cp
	}
	return m
}

func (m *MemoryStore) Load() (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rec == nil {
		return nil, nil
	}
	cp := *m.rec
	return &cp, nil
}

func (m *MemoryStore) Save(rec *Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec == nil {
		m.rec = nil
		return nil
	}
	cp := *rec
	m.rec = &cp
	m.Saves++
	return nil
}

func (m *MemoryStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rec = nil
	return nil
}
