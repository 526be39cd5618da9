// Package session keeps the signed-in reader's session in memory and mirrors
// it to a file so it survives restarts.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/naveenspark/folio/pkg/domain"
)

// TokenEnv overrides the stored token when set.
const TokenEnv = "FOLIO_TOKEN"

// DefaultPath returns ~/.folio/session.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".folio", "session.json"), nil
}

// Store reads and writes a session file.
type Store struct {
	path string
}

// NewStore returns a Store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored session using precedence: env var > file > empty.
// A missing or unreadable file yields an empty session.
func (s *Store) Load() domain.Session {
	var sess domain.Session
	if data, err := os.ReadFile(s.path); err == nil {
		if json.Unmarshal(data, &sess) != nil {
			sess = domain.Session{}
		}
	}
	if tok := strings.TrimSpace(os.Getenv(TokenEnv)); tok != "" {
		sess.Token = tok
	}
	return sess
}

// Save writes the session. An inactive session removes the file.
func (s *Store) Save(sess domain.Session) error {
	if !sess.Active() {
		return s.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear removes the session file. A missing file is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

// Manager holds the live session. Changes are mirrored to the Store;
// storage failures are logged and otherwise ignored, since persistence
// is a convenience.
type Manager struct {
	store  *Store
	logger *log.Logger

	mu   sync.RWMutex
	sess domain.Session
}

// NewManager restores the session from store. A nil store keeps the
// session in memory only.
func NewManager(store *Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.Default()
	}
	m := &Manager{store: store, logger: logger}
	if store != nil {
		m.sess = store.Load()
	}
	return m
}

// Token returns the current bearer token, or "" when signed out.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.Token
}

// User returns the signed-in user, or nil.
func (m *Manager) User() *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sess.User
}

// UserName returns the signed-in user's display name, or "".
func (m *Manager) UserName() string {
	if u := m.User(); u != nil {
		return u.Name
	}
	return ""
}

// Active reports whether a token is held.
func (m *Manager) Active() bool {
	return m.Token() != ""
}

// Set replaces the session after a successful login or register.
func (m *Manager) Set(sess domain.Session) {
	m.mu.Lock()
	m.sess = sess
	m.mu.Unlock()
	m.persist(sess)
}

// Clear signs out.
func (m *Manager) Clear() {
	m.Set(domain.Session{})
}

func (m *Manager) persist(sess domain.Session) {
	if m.store == nil {
		return
	}
	if err := m.store.Save(sess); err != nil {
		m.logger.Printf("session: %v", err)
	}
}
