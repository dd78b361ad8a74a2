// Package session holds the only piece of shared mutable state in the
// client: who is logged in. The Store is created once at the composition
// root and passed by reference to the dispatcher and every screen; there is
// no ambient singleton.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/healthmate/cli/internal/api"
	"github.com/healthmate/cli/internal/logging"
	"github.com/healthmate/cli/internal/models"
	"github.com/healthmate/cli/internal/storage/credentials"
	"github.com/healthmate/cli/internal/token"
)

// State is the session lifecycle position.
type State int

const (
	Uninitialized State = iota
	Bootstrapping
	Authenticated
	Anonymous
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Bootstrapping:
		return "bootstrapping"
	case Authenticated:
		return "authenticated"
	case Anonymous:
		return "anonymous"
	default:
		return "unknown"
	}
}

// AuthAPI is the slice of the backend client the store drives.
type AuthAPI interface {
	Login(ctx context.Context, creds models.Credentials) (*api.AuthResult, error)
	Register(ctx context.Context, reg models.Registration) (*api.AuthResult, error)
	Profile(ctx context.Context) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, upd models.ProfileUpdate) (*models.UserProfile, error)
}

// Result reports the outcome of an auth operation to the caller. Expected
// failures (bad credentials, validation errors) come back as Success=false
// with a user-facing message, never as a panic.
type Result struct {
	Success bool
	Error   string
}

// Store is the auth-state container.
//
// Concurrent Login/Register/UpdateProfile calls are neither queued nor
// cancelled: the last response to resolve wins on user/token/error. Callers
// are expected to disable the triggering control while a call is in flight.
type Store struct {
	api   AuthAPI
	creds credentials.Repository
	log   logging.Logger

	mu      sync.RWMutex
	state   State
	user    *models.UserProfile
	token   string
	loading bool
	lastErr string
}

// NewStore returns an empty, uninitialized store.
func NewStore(authAPI AuthAPI, creds credentials.Repository, log logging.Logger) *Store {
	return &Store{api: authAPI, creds: creds, log: log, state: Uninitialized}
}

// Bootstrap restores the session from persisted credentials, once, at
// startup. A persisted token+user pair is adopted optimistically, then
// validated against the profile endpoint; the freshly fetched profile
// replaces the possibly stale persisted copy. A token that cannot be
// verified, for whatever reason, is treated as invalid: the session ends
// Anonymous and both slots are cleared.
func (s *Store) Bootstrap(ctx context.Context) {
	s.mu.Lock()
	s.state = Bootstrapping
	s.loading = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.loading = false
		s.mu.Unlock()
	}()

	storedToken, err := s.creds.Token(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read stored token", "err", err)
	}
	storedUser, err := s.creds.User(ctx)
	if err != nil {
		s.log.Error(ctx, "failed to read stored user", "err", err)
	}

	if storedToken == "" || storedUser == nil {
		s.becomeAnonymous(ctx, false)
		return
	}

	if token.Expired(storedToken, time.Now()) {
		s.log.Info(ctx, "stored token expired, logging out")
		s.becomeAnonymous(ctx, true)
		return
	}

	s.mu.Lock()
	s.state = Authenticated
	s.token = storedToken
	s.user = storedUser
	s.mu.Unlock()

	profile, err := s.api.Profile(ctx)
	if err != nil {
		s.log.Info(ctx, "stored token failed validation", "err", err)
		s.becomeAnonymous(ctx, true)
		return
	}

	s.mu.Lock()
	s.user = profile
	s.mu.Unlock()

	if err := s.creds.SaveUser(ctx, profile); err != nil {
		s.log.Error(ctx, "failed to refresh stored user", "err", err)
	}
}

// Login authenticates and, on success, persists token and user before the
// in-memory transition to Authenticated.
func (s *Store) Login(ctx context.Context, creds models.Credentials) Result {
	return s.authenticate(ctx, func() (*api.AuthResult, error) {
		return s.api.Login(ctx, creds)
	}, "login failed")
}

// Register creates an account; the contract is identical to Login.
func (s *Store) Register(ctx context.Context, reg models.Registration) Result {
	return s.authenticate(ctx, func() (*api.AuthResult, error) {
		return s.api.Register(ctx, reg)
	}, "registration failed")
}

func (s *Store) authenticate(ctx context.Context, call func() (*api.AuthResult, error), fallbackMsg string) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	res, err := call()
	if err != nil {
		msg := errorMessage(err, fallbackMsg)
		s.mu.Lock()
		s.lastErr = msg
		s.mu.Unlock()
		return Result{Error: msg}
	}

	if err := s.creds.SaveSession(ctx, res.Token, &res.User); err != nil {
		s.log.Error(ctx, "failed to persist session", "err", err)
	}

	user := res.User
	s.mu.Lock()
	s.state = Authenticated
	s.token = res.Token
	s.user = &user
	s.lastErr = ""
	s.mu.Unlock()

	return Result{Success: true}
}

// UpdateProfile applies a partial update; on failure the existing session is
// left untouched.
func (s *Store) UpdateProfile(ctx context.Context, upd models.ProfileUpdate) Result {
	s.setLoading(true)
	defer s.setLoading(false)

	profile, err := s.api.UpdateProfile(ctx, upd)
	if err != nil {
		msg := errorMessage(err, "profile update failed")
		s.mu.Lock()
		s.lastErr = msg
		s.mu.Unlock()
		return Result{Error: msg}
	}

	if err := s.creds.SaveUser(ctx, profile); err != nil {
		s.log.Error(ctx, "failed to persist updated user", "err", err)
	}

	s.mu.Lock()
	s.user = profile
	s.lastErr = ""
	s.mu.Unlock()

	return Result{Success: true}
}

// Logout clears persisted credentials and in-memory state unconditionally.
// It never fails; a storage error is logged and the in-memory session is
// still torn down.
func (s *Store) Logout() {
	s.becomeAnonymous(context.Background(), true)
}

// ForceLogout reflects an externally triggered teardown (the HTTP client's
// 401 path, which has already cleared storage) into the in-memory state.
func (s *Store) ForceLogout() {
	s.mu.Lock()
	s.state = Anonymous
	s.user = nil
	s.token = ""
	s.mu.Unlock()
}

func (s *Store) becomeAnonymous(ctx context.Context, clearStorage bool) {
	if clearStorage {
		if err := s.creds.Clear(ctx); err != nil {
			s.log.Error(ctx, "failed to clear credentials", "err", err)
		}
	}
	s.mu.Lock()
	s.state = Anonymous
	s.user = nil
	s.token = ""
	s.lastErr = ""
	s.mu.Unlock()
}

// IsAuthenticated is a pure predicate: true iff both token and user are
// present in memory. It performs no I/O.
func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != "" && s.user != nil
}

// State returns the current lifecycle position.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Loading reports whether bootstrap or an auth call is in flight, so route
// guards can defer redirect decisions until it clears.
func (s *Store) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// User returns the current profile, or nil when anonymous.
func (s *Store) User() *models.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// Err returns the message recorded by the last failed auth operation.
func (s *Store) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// ClearError discards the recorded error message.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// errorMessage picks the user-facing text for err. Envelope errors surface
// the backend message verbatim; connectivity failures surface only the
// sentinel text, without the wrapped method/path diagnostics.
func errorMessage(err error, fallback string) string {
	var apiErr *api.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, api.ErrUnavailable) {
		return api.ErrUnavailable.Error()
	}
	if err != nil && err.Error() != "" {
		return err.Error()
	}
	return fallback
}
