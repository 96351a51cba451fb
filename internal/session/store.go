// Package session holds the client's cached belief about whether, and as
// whom, the current user is authenticated. The store is the only owner of
// that state; renderers receive it instead of reading a global.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/autopunish/panelctl/internal/domain"
	"github.com/autopunish/panelctl/pkg/logger"
)

// Listener is invoked after every session change. A nil user means the
// session was cleared.
type Listener func(user *domain.User)

type cacheFile struct {
	Username string `json:"username"`
	Role     string `json:"role,omitempty"`
	UUID     string `json:"uuid,omitempty"`
	Token    string `json:"token,omitempty"`
}

// Store is the explicit session store with change notification
type Store struct {
	mu        sync.RWMutex
	user      *domain.User
	token     string
	path      string
	listeners []Listener
	log       *logger.Logger
}

// NewStore creates a session store backed by the given cache file. An empty
// path disables persistence.
func NewStore(path string, log *logger.Logger) *Store {
	return &Store{path: path, log: log}
}

// Load restores a previously cached session identity from disk. A cached JWT
// whose exp claim has passed is discarded rather than reused.
func (s *Store) Load() error {
	if s.path == "" {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}

	var cached cacheFile
	if err := json.Unmarshal(data, &cached); err != nil {
		return err
	}
	if cached.Username == "" {
		return nil
	}
	if cached.Token != "" && tokenExpired(cached.Token) {
		s.log.WithField("username", cached.Username).Info("Cached session token expired, discarding")
		_ = os.Remove(s.path)
		return nil
	}

	s.mu.Lock()
	s.user = &domain.User{
		Username: cached.Username,
		Role:     domain.Role(cached.Role),
		UUID:     cached.UUID,
	}
	s.token = cached.Token
	s.mu.Unlock()

	s.notify(s.Current())
	return nil
}

// Current returns the authenticated user, or nil when no session is active
func (s *Store) Current() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// Authenticated reports whether a session is active
func (s *Store) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Token returns the cached bearer token, or "" for cookie-only sessions
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Set records a new session identity and persists it for reuse across runs
func (s *Store) Set(user *domain.User, token string) {
	s.mu.Lock()
	s.user = user
	s.token = token
	s.mu.Unlock()

	if err := s.persist(); err != nil {
		s.log.WithError(err).Warn("Failed to persist session cache")
	}
	s.notify(s.Current())
}

// Clear drops the session identity and removes the on-disk cache
func (s *Store) Clear() {
	s.mu.Lock()
	s.user = nil
	s.token = ""
	s.mu.Unlock()

	if s.path != "" {
		_ = os.Remove(s.path)
	}
	s.notify(nil)
}

// Subscribe registers a listener for session changes
func (s *Store) Subscribe(fn Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(user *domain.User) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(user)
	}
}

func (s *Store) persist() error {
	s.mu.RLock()
	user := s.user
	token := s.token
	path := s.path
	s.mu.RUnlock()

	if path == "" || user == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cacheFile{
		Username: user.Username,
		Role:     string(user.Role),
		UUID:     user.UUID,
		Token:    token,
	}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

// tokenExpired checks the exp claim without verifying the signature. The
// token is only used to skip a login prompt; the backend still validates it.
func tokenExpired(token string) bool {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		// Opaque (non-JWT) tokens carry no expiry the client can read.
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
