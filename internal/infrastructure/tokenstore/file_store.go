package tokenstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"wallet_tracker/internal/app/port"
)

// ErrNoToken is returned by Load when nothing has been saved.
var ErrNoToken = errors.New("no stored token")

type session struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"savedAt"`
}

// FileStore keeps the bearer token in a YAML file readable only by the owner.
type FileStore struct {
	path string
	now  func() time.Time
	mu   sync.Mutex
}

var _ port.TokenStore = (*FileStore)(nil)

// NewFileStore creates a store backed by path. The file is created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrNoToken
		}
		return "", fmt.Errorf("failed to read token file %s: %w", s.path, err)
	}

	var sess session
	if err := yaml.Unmarshal(data, &sess); err != nil {
		return "", fmt.Errorf("failed to parse token file %s: %w", s.path, err)
	}
	if strings.TrimSpace(sess.Token) == "" {
		return "", ErrNoToken
	}
	return sess.Token, nil
}

func (s *FileStore) Save(token string) error {
	if strings.TrimSpace(token) == "" {
		return errors.New("refusing to save an empty token")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := yaml.Marshal(session{Token: token, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("failed to create token directory %s: %w", dir, err)
		}
	}

	// Written next to the target and renamed into place.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace token file %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove token file %s: %w", s.path, err)
	}
	return nil
}
