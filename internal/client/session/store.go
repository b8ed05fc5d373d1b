// Package session manages the lifecycle of the authentication token:
// adoption at login, teardown at logout, restore from durable storage at
// process start. The token is the one piece of state shared by every
// outgoing request; it is read by the API transport and mutated only here.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/curriculoxpress/cxpress/internal/client/storage"
	"github.com/curriculoxpress/cxpress/internal/logging"
)

// TokenKey is the durable storage key holding the bearer token.
const TokenKey = "jwt_auth_token"

var ErrEmptyToken = errors.New("empty token")

// Store holds the current token in memory and mirrors it to durable
// storage. Safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	token   string
	loading bool

	storage storage.Store
	log     logging.Logger
}

// NewStore wraps the given durable store. The session starts in the
// loading state until Restore has run, so callers can distinguish
// "not yet known" from "known absent".
func NewStore(st storage.Store, log logging.Logger) *Store {
	if log == nil {
		log = logging.Nop{}
	}
	return &Store{storage: st, loading: true, log: log}
}

// Login persists the token and then adopts it in memory. If the durable
// write fails the in-memory token is left untouched, so memory never
// holds an unpersisted credential.
func (s *Store) Login(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}

	if err := s.storage.Set(ctx, TokenKey, []byte(token)); err != nil {
		return err
	}

	s.mu.Lock()
	s.token = token
	s.mu.Unlock()

	s.log.Info(ctx, "session started")
	return nil
}

// Logout clears the in-memory token and removes the durable copy.
// Idempotent: with no active session it is a no-op. The in-memory token
// is cleared even if the durable delete fails, so a 401 teardown always
// stops further authenticated requests.
func (s *Store) Logout(ctx context.Context) error {
	s.mu.Lock()
	had := s.token != ""
	s.token = ""
	s.mu.Unlock()

	if err := s.storage.Delete(ctx, TokenKey); err != nil {
		return err
	}

	if had {
		s.log.Info(ctx, "session ended")
	}
	return nil
}

// Restore reads the durable store at process start and adopts a persisted
// token if one exists. Storage errors are swallowed and treated as "no
// session": the user is simply logged out rather than the app failing.
// The loading flag is true for the duration of the read.
func (s *Store) Restore(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	token, err := s.storage.Get(ctx, TokenKey)
	if err != nil {
		s.log.Warn(ctx, "session restore failed, treating as logged out", "error", err)
		token = nil
	}

	s.mu.Lock()
	s.token = string(token)
	s.loading = false
	s.mu.Unlock()
}

// Token returns the current in-memory token, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Loading reports whether Restore has not yet completed.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Authenticated reports whether a token is currently held.
func (s *Store) Authenticated() bool {
	return s.Token() != ""
}

// Claims peeks into the held JWT without verifying its signature
// (verification is the server's job) and returns the subject and expiry
// for display. ok is false when no token is held or it does not parse
// as a JWT.
func (s *Store) Claims() (subject string, expiresAt time.Time, ok bool) {
	token := s.Token()
	if token == "" {
		return "", time.Time{}, false
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return "", time.Time{}, false
	}

	subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiresAt = exp.Time
	}
	return subject, expiresAt, true
}
