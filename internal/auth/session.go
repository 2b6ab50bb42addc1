package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
)

// Store is durable local key/value storage.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Session is the process's authentication state. It is created once, passed
// to whatever needs it, rehydrated with Init and torn down with Logout.
type Session struct {
	store  Store
	key    string
	logger *slog.Logger

	mu          sync.RWMutex
	current     *AuthResponse
	initialized bool
}

func NewSession(store Store, key string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{
		store:  store,
		key:    key,
		logger: logger,
	}
}

// Init loads the persisted blob. Only the first call reads storage. An
// unreadable blob leaves the session signed out.
func (s *Session) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.initialized {
		return nil
	}

	raw, ok, err := s.store.Get(ctx, s.key)
	if err != nil {
		return fmt.Errorf("session: read %q: %w", s.key, err)
	}
	s.initialized = true
	if !ok {
		return nil
	}

	var stored AuthResponse
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("ignoring unreadable session blob", "key", s.key, "error", err)
		return nil
	}
	s.current = &stored
	s.logger.Debug("session restored", "user_id", stored.User.ID)
	return nil
}

// Set persists resp and then adopts it. A nil resp logs out.
func (s *Session) Set(ctx context.Context, resp *AuthResponse) error {
	if resp == nil {
		return s.Logout(ctx)
	}

	blob, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("session: encode: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Set(ctx, s.key, string(blob)); err != nil {
		return fmt.Errorf("session: write %q: %w", s.key, err)
	}
	stored := *resp
	s.current = &stored
	s.initialized = true
	return nil
}

// Logout removes the stored blob and only then forgets the in-memory session,
// so a storage failure leaves both intact.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Remove(ctx, s.key); err != nil {
		return fmt.Errorf("session: remove %q: %w", s.key, err)
	}
	s.current = nil
	s.logger.Debug("session cleared")
	return nil
}

func (s *Session) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

// Token returns the bearer token, or "" when signed out.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Session) User() (User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return User{}, false
	}
	return s.current.User, true
}
