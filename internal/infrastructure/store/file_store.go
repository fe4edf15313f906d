// Package store persists the device's local state: the session record and
// the last known cart id, one small JSON file per key under the state
// directory.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

const (
	sessionFile = "session.json"
	cartIDFile  = "cart_id.json"
)

// FileStore is a file-backed ports.SessionStore. Writes go through a rename
// so readers never observe a partial record. There is no locking: writes are
// triggered by explicit user actions and last-write-wins is acceptable.
type FileStore struct {
	dir string
	log zerolog.Logger
}

func New(dir string, log zerolog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("store: create state dir: %w", err)
	}
	return &FileStore{dir: dir, log: log.With().Str("component", "store").Logger()}, nil
}

func (s *FileStore) Save(session domain.Session) error {
	return s.write(sessionFile, session)
}

// Read returns the stored session, or found=false when none exists. A record
// that no longer decodes is treated as absent, not as an error.
func (s *FileStore) Read() (domain.Session, bool, error) {
	var session domain.Session
	found, err := s.read(sessionFile, &session)
	return session, found, err
}

func (s *FileStore) Clear() error {
	return s.remove(sessionFile)
}

type cartIDRecord struct {
	CartID string `json:"cart_id"`
}

func (s *FileStore) SaveCartID(cartID string) error {
	return s.write(cartIDFile, cartIDRecord{CartID: cartID})
}

func (s *FileStore) ReadCartID() (string, bool, error) {
	var rec cartIDRecord
	found, err := s.read(cartIDFile, &rec)
	if !found || err != nil {
		return "", false, err
	}
	return rec.CartID, rec.CartID != "", nil
}

func (s *FileStore) ClearCartID() error {
	return s.remove(cartIDFile)
}

func (s *FileStore) write(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", name, err)
	}
	tmp := filepath.Join(s.dir, name+".tmp")
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("store: write %s: %w", name, err)
	}
	if err := os.Rename(tmp, filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("store: commit %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) read(name string, v any) (bool, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store: read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		s.log.Error().Err(err).Str("file", name).Msg("corrupt record, treating as absent")
		return false, nil
	}
	return true, nil
}

func (s *FileStore) remove(name string) error {
	err := os.Remove(filepath.Join(s.dir, name))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("store: remove %s: %w", name, err)
	}
	return nil
}
