// Package notify tracks server-side notifications: the bell model used by the
// TUI and the watcher behind the notifications watch command.
package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/toast"
)

// Client is the notification endpoint group
type Client interface {
	List(ctx context.Context) ([]models.Notification, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context) error
}

// Toaster is where bell outcomes are reported
type Toaster interface {
	Success(message string) toast.Toast
	Error(message string) toast.Toast
}

// Bell holds the fetched notifications, the unread counter and whether the
// dropdown is open. Mark operations update state before the request and roll
// back if it fails.
type Bell struct {
	api    Client
	toasts Toaster

	mu     sync.RWMutex
	items  []models.Notification
	unread int
	open   bool
}

func NewBell(api Client, toasts Toaster) *Bell {
	return &Bell{api: api, toasts: toasts}
}

// Refresh replaces the list with the server's. Failures are logged only.
func (b *Bell) Refresh(ctx context.Context) error {
	items, err := b.api.List(ctx)
	if err != nil {
		logger.Warn("failed to fetch notifications", "err", err)
		return err
	}

	unread := 0
	for _, n := range items {
		if !n.IsRead {
			unread++
		}
	}

	b.mu.Lock()
	b.items = items
	b.unread = unread
	b.mu.Unlock()
	return nil
}

// MarkRead marks one notification read. Unknown or already-read ids are a no-op.
func (b *Bell) MarkRead(ctx context.Context, id string) error {
	b.mu.Lock()
	idx := b.indexLocked(id)
	if idx < 0 || b.items[idx].IsRead {
		b.mu.Unlock()
		return nil
	}
	b.items[idx].IsRead = true
	b.unread = max(0, b.unread-1)
	b.mu.Unlock()

	if err := b.api.MarkRead(ctx, id); err != nil {
		b.mu.Lock()
		if i := b.indexLocked(id); i >= 0 && b.items[i].IsRead {
			b.items[i].IsRead = false
			b.unread++
		}
		b.mu.Unlock()
		b.toasts.Error("Failed to mark as read")
		return err
	}
	return nil
}

// MarkAllRead marks every notification read with a single request
func (b *Bell) MarkAllRead(ctx context.Context) error {
	b.mu.Lock()
	prevItems := append([]models.Notification(nil), b.items...)
	prevUnread := b.unread
	for i := range b.items {
		b.items[i].IsRead = true
	}
	b.unread = 0
	b.mu.Unlock()

	if err := b.api.MarkAllRead(ctx); err != nil {
		b.mu.Lock()
		b.items = prevItems
		b.unread = prevUnread
		b.mu.Unlock()
		b.toasts.Error("Failed to mark all as read")
		return err
	}
	b.toasts.Success("All marked as read")
	return nil
}

func (b *Bell) indexLocked(id string) int {
	for i, n := range b.items {
		if n.ID == id {
			return i
		}
	}
	return -1
}

func (b *Bell) Items() []models.Notification {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]models.Notification(nil), b.items...)
}

func (b *Bell) Unread() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.unread
}

// Badge is the counter text: empty at zero, capped at "9+"
func (b *Bell) Badge() string {
	return Badge(b.Unread())
}

func Badge(n int) string {
	switch {
	case n <= 0:
		return ""
	case n > 9:
		return "9+"
	default:
		return fmt.Sprint(n)
	}
}

func (b *Bell) IsOpen() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.open
}

func (b *Bell) Toggle() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = !b.open
	return b.open
}

func (b *Bell) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.open = false
}

// Reset forgets everything, used when the user signs out
func (b *Bell) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.items = nil
	b.unread = 0
	b.open = false
}
