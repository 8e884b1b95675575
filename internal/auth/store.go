// Package auth holds the signed-in user for the running process.
package auth

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/session"
)

// Status is the guard-visible authentication state
type Status int

const (
	StatusLoading Status = iota
	StatusAuthenticated
	StatusUnauthenticated
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusAuthenticated:
		return "authenticated"
	default:
		return "unauthenticated"
	}
}

// ErrNotAuthenticated is returned by operations that need a signed-in user
var ErrNotAuthenticated = errors.New("not signed in")

// ProfileFetcher loads the current user with the stored token
type ProfileFetcher interface {
	Profile(ctx context.Context) (*models.User, error)
}

// Store is the in-memory auth state, mirrored to persisted session storage
type Store struct {
	profiles ProfileFetcher
	sessions session.Store

	mu          sync.RWMutex
	user        *models.User
	loading     bool
	subscribers []func(Status)
}

func NewStore(profiles ProfileFetcher, sessions session.Store) *Store {
	return &Store{
		profiles: profiles,
		sessions: sessions,
		loading:  true,
	}
}

// Init resolves the startup state: with a stored token the profile is fetched
// and cached, otherwise (or on any failure) the session is cleared.
func (s *Store) Init(ctx context.Context) Status {
	token, err := s.sessions.Token()
	if err != nil {
		logger.Warn("failed to read stored token", "err", err)
	}

	var user *models.User
	if token != "" {
		u, err := s.profiles.Profile(ctx)
		if err != nil {
			logger.Warn("stored session rejected", "err", err)
			s.clearPersisted()
		} else {
			user = u
			if err := s.sessions.SetUser(*u); err != nil {
				logger.Warn("failed to cache user", "err", err)
			}
		}
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()

	return s.notify()
}

// Login records a successful sign-in
func (s *Store) Login(token string, user models.User) error {
	if err := s.sessions.SetToken(token); err != nil {
		return err
	}
	if err := s.sessions.SetUser(user); err != nil {
		return err
	}

	s.mu.Lock()
	s.user = &user
	s.loading = false
	s.mu.Unlock()

	s.notify()
	return nil
}

// Logout clears memory and persisted storage. It makes no network call.
func (s *Store) Logout() {
	s.clearPersisted()
	s.Reset()
}

// Reset drops the in-memory user without touching storage. The API client has
// already cleared storage when it saw a 401.
func (s *Store) Reset() {
	s.mu.Lock()
	s.user = nil
	s.loading = false
	s.mu.Unlock()
	s.notify()
}

// UpdateUser merges patch into the current user, in memory and persisted
func (s *Store) UpdateUser(patch models.UserPatch) (models.User, error) {
	s.mu.Lock()
	if s.user == nil {
		s.mu.Unlock()
		return models.User{}, ErrNotAuthenticated
	}
	merged := s.user.Apply(patch)
	s.user = &merged
	s.mu.Unlock()

	if err := s.sessions.SetUser(merged); err != nil {
		return merged, err
	}
	s.notify()
	return merged, nil
}

func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

func (s *Store) Status() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.statusLocked()
}

func (s *Store) statusLocked() Status {
	switch {
	case s.loading:
		return StatusLoading
	case s.user != nil:
		return StatusAuthenticated
	default:
		return StatusUnauthenticated
	}
}

// Subscribe registers fn to be called with the new status after each change
func (s *Store) Subscribe(fn func(Status)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify() Status {
	s.mu.RLock()
	st := s.statusLocked()
	subs := append([]func(Status){}, s.subscribers...)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(st)
	}
	return st
}

func (s *Store) clearPersisted() {
	if err := s.sessions.Clear(); err != nil {
		logger.Warn("failed to clear session", "err", err)
	}
}

type ctxKey struct{}

// WithStore returns a context carrying s
func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the Store placed by WithStore. It panics when none was
// provided: reaching for auth state outside the provider is a programming error.
func FromContext(ctx context.Context) *Store {
	s, ok := ctx.Value(ctxKey{}).(*Store)
	if !ok || s == nil {
		panic("auth: FromContext called without a Store; wrap the context with auth.WithStore")
	}
	return s
}
