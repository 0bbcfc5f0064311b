package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/nekosui/petbot/internal/domain"
	"github.com/nekosui/petbot/internal/logger"
)

// FileStore keeps the document in memory and persists it as one JSON file.
// The mutex guards the Users map and excludes account mutation (Update, read
// side) from marshaling (Save, write side); same-account ordering is the
// per-user command lock upstream.
type FileStore struct {
	path string

	mu  sync.RWMutex
	doc *Document
}

// NewFileStore creates a store backed by the JSON file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{
		path: path,
		doc:  NewDocument(),
	}
}

// Load reads the document from disk. A missing file is not an error: the
// store starts empty and the file is created on first save.
func (s *FileStore) Load(ctx context.Context) error {
	log := logger.FromContext(ctx)

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Info("No state file found, starting with empty state", "path", s.path)
			s.mu.Lock()
			s.doc = NewDocument()
			s.mu.Unlock()
			return nil
		}
		return fmt.Errorf("failed to read state file %s: %w", s.path, err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrCorruptState, err)
	}
	if doc.SchemaVersion != domain.StateSchemaVersion {
		return fmt.Errorf("%w: unsupported schema version %q", domain.ErrCorruptState, doc.SchemaVersion)
	}
	if doc.Users == nil {
		doc.Users = make(map[string]*domain.UserAccount)
	}

	s.mu.Lock()
	s.doc = &doc
	s.mu.Unlock()

	log.Info("State loaded", "path", s.path, "users", len(doc.Users))
	return nil
}

// Update runs fn under the read side of the document mutex.
func (s *FileStore) Update(fn func() error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn()
}

// Save writes the document atomically: marshal, write to a temp file in the
// same directory, fsync, rename over the target. The marshal takes the mutex
// in write mode so no Update is mid-mutation while accounts are read.
func (s *FileStore) Save(ctx context.Context) error {
	s.mu.Lock()
	data, err := json.MarshalIndent(s.doc, "", "  ")
	s.mu.Unlock()
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", domain.ErrPersistence, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", domain.ErrPersistence, dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: create temp: %v", domain.ErrPersistence, err)
	}
	tmpName := tmp.Name()

	if err := writeAndSync(tmp, data); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: write: %v", domain.ErrPersistence, err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename: %v", domain.ErrPersistence, err)
	}

	logger.FromContext(ctx).Debug("State saved", "path", s.path, "bytes", len(data))
	return nil
}

// writeAndSync flushes data to f and closes it on all paths.
func writeAndSync(f *os.File, data []byte) error {
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Account returns the account for userID, creating it lazily.
func (s *FileStore) Account(userID string, now time.Time) *domain.UserAccount {
	s.mu.RLock()
	acc, ok := s.doc.Users[userID]
	s.mu.RUnlock()
	if ok {
		return acc
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock.
	if acc, ok := s.doc.Users[userID]; ok {
		return acc
	}
	acc = domain.NewUserAccount(userID, now)
	s.doc.Users[userID] = acc
	return acc
}

// Peek returns the account without creating it.
func (s *FileStore) Peek(userID string) (*domain.UserAccount, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	acc, ok := s.doc.Users[userID]
	return acc, ok
}
