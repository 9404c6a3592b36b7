// Package session keeps the signed-in identity and persists it between runs.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"NewsSummarizer/internal/domain"
	"NewsSummarizer/internal/ports"
)

// RecordKey is the key the identity record is stored under.
const RecordKey = "newsai_user"

// ErrNotAuthenticated is returned to callers that need a signed-in identity.
var ErrNotAuthenticated = errors.New("not signed in")

// Store holds at most one identity. It is safe for concurrent use.
type Store struct {
	kv      ports.KeyValueStore
	backend ports.AuthBackend
	logger  *slog.Logger

	mu      sync.RWMutex
	current *domain.Identity
}

// NewStore builds a store over kv, authenticating through backend.
func NewStore(kv ports.KeyValueStore, backend ports.AuthBackend, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{kv: kv, backend: backend, logger: logger}
}

// Load restores the persisted identity. An absent or malformed record yields
// nil; a malformed record is logged and otherwise ignored.
func (s *Store) Load(ctx context.Context) (*domain.Identity, error) {
	raw, found, err := s.kv.Get(ctx, RecordKey)
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	if !found {
		s.set(nil)
		return nil, nil
	}

	var identity domain.Identity
	if err := json.Unmarshal(raw, &identity); err != nil || identity.ID == "" {
		s.logger.Warn("ignoring malformed session record", "key", RecordKey, "error", err)
		s.set(nil)
		return nil, nil
	}

	s.set(&identity)
	return s.Current(), nil
}

// Current returns a copy of the signed-in identity or nil.
func (s *Store) Current() *domain.Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	identity := *s.current
	return &identity
}

// Require returns the signed-in identity or ErrNotAuthenticated.
func (s *Store) Require() (*domain.Identity, error) {
	identity := s.Current()
	if identity == nil {
		return nil, ErrNotAuthenticated
	}
	return identity, nil
}

// Login authenticates and persists the resulting identity.
func (s *Store) Login(ctx context.Context, email, password string) (*domain.Identity, error) {
	email = strings.TrimSpace(email)

	identity, err := s.backend.Authenticate(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("authenticate %s: %w", email, err)
	}

	if err := s.persist(ctx, identity); err != nil {
		return nil, err
	}
	s.logger.Info("signed in", "user_id", identity.ID, "email", identity.Email)
	return s.Current(), nil
}

// Signup registers a new account and persists the resulting identity.
func (s *Store) Signup(ctx context.Context, email, password, name string) (*domain.Identity, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	identity, err := s.backend.Register(ctx, email, password, name)
	if err != nil {
		return nil, fmt.Errorf("register %s: %w", email, err)
	}

	if err := s.persist(ctx, identity); err != nil {
		return nil, err
	}
	s.logger.Info("signed up", "user_id", identity.ID, "email", identity.Email)
	return s.Current(), nil
}

// Logout forgets the identity, both in memory and in storage.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.kv.Delete(ctx, RecordKey); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.set(nil)
	s.logger.Info("signed out")
	return nil
}

func (s *Store) persist(ctx context.Context, identity domain.Identity) error {
	raw, err := json.Marshal(identity)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.kv.Put(ctx, RecordKey, raw); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	s.set(&identity)
	return nil
}

func (s *Store) set(identity *domain.Identity) {
	s.mu.Lock()
	s.current = identity
	s.mu.Unlock()
}
