// Package toast is the transient message queue shown over every view.
package toast

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/julianstephens/preptrack/internal/constants"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
	KindWarning Kind = "warning"
)

// Title is the heading rendered above the message
func (k Kind) Title() string {
	switch k {
	case KindSuccess:
		return "Success"
	case KindError:
		return "Error"
	case KindWarning:
		return "Warning"
	default:
		return "Info"
	}
}

type Toast struct {
	ID        string
	Message   string
	Kind      Kind
	CreatedAt time.Time
}

// Store keeps active toasts in insertion order. Each toast removes itself
// after the TTL; the oldest is dropped when the cap is reached.
type Store struct {
	ttl time.Duration
	max int

	mu       sync.Mutex
	toasts   []Toast
	timers   map[string]*time.Timer
	onChange func()
}

type Option func(*Store)

func WithTTL(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.ttl = d
		}
	}
}

func WithMax(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.max = n
		}
	}
}

func New(opts ...Option) *Store {
	s := &Store{
		ttl:    constants.ToastTTL,
		max:    constants.DefaultToastMax,
		timers: map[string]*time.Timer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnChange registers a hook run (outside the lock) after every add or removal
func (s *Store) OnChange(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onChange = fn
}

// Show appends a toast. Identical messages are not deduplicated.
func (s *Store) Show(message string, kind Kind) Toast {
	t := Toast{
		ID:        uuid.Must(uuid.NewV7()).String(),
		Message:   message,
		Kind:      kind,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	for len(s.toasts) >= s.max {
		s.removeLocked(s.toasts[0].ID)
	}
	s.toasts = append(s.toasts, t)
	s.timers[t.ID] = time.AfterFunc(s.ttl, func() { s.Dismiss(t.ID) })
	fn := s.onChange
	s.mu.Unlock()

	if fn != nil {
		fn()
	}
	return t
}

func (s *Store) Success(message string) Toast { return s.Show(message, KindSuccess) }
func (s *Store) Error(message string) Toast   { return s.Show(message, KindError) }
func (s *Store) Info(message string) Toast    { return s.Show(message, KindInfo) }
func (s *Store) Warning(message string) Toast { return s.Show(message, KindWarning) }

// Dismiss removes the toast with id. Unknown ids are ignored, so an expiry
// timer racing a manual dismissal is harmless.
func (s *Store) Dismiss(id string) bool {
	s.mu.Lock()
	removed := s.removeLocked(id)
	fn := s.onChange
	s.mu.Unlock()

	if removed && fn != nil {
		fn()
	}
	return removed
}

func (s *Store) removeLocked(id string) bool {
	for i, t := range s.toasts {
		if t.ID == id {
			s.toasts = append(s.toasts[:i], s.toasts[i+1:]...)
			if timer, ok := s.timers[id]; ok {
				timer.Stop()
				delete(s.timers, id)
			}
			return true
		}
	}
	return false
}

// Toasts returns a snapshot of the active toasts, oldest first
func (s *Store) Toasts() []Toast {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Toast(nil), s.toasts...)
}

func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.toasts)
}

// Close stops every pending expiry timer and drops all toasts
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
	s.toasts = nil
}
