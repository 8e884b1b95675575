package notify

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
)

// Lister fetches the current notification list
type Lister interface {
	List(ctx context.Context) ([]models.Notification, error)
}

// Forwarder receives each fresh notification after it is printed
type Forwarder interface {
	Notify(ctx context.Context, n models.Notification) error
}

// Watcher polls on a cron schedule and prints unread notifications it has not
// printed before.
type Watcher struct {
	api      Lister
	out      io.Writer
	schedule string
	forward  Forwarder

	mu   sync.Mutex
	seen map[string]bool
}

func NewWatcher(api Lister, out io.Writer, schedule string) *Watcher {
	if schedule == "" {
		schedule = fmt.Sprintf("@every %s", constants.NotificationPollInterval)
	}
	return &Watcher{
		api:      api,
		out:      out,
		schedule: schedule,
		seen:     map[string]bool{},
	}
}

// ForwardTo sends fresh notifications to f as well. Forward failures are
// logged and do not stop the watcher.
func (w *Watcher) ForwardTo(f Forwarder) {
	w.forward = f
}

// Poll fetches once and returns (and prints) the unread notifications not
// seen by an earlier poll.
func (w *Watcher) Poll(ctx context.Context) ([]models.Notification, error) {
	items, err := w.api.List(ctx)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	var fresh []models.Notification
	for _, n := range items {
		if n.IsRead || w.seen[n.ID] {
			continue
		}
		w.seen[n.ID] = true
		fresh = append(fresh, n)
	}
	for _, n := range fresh {
		fmt.Fprintf(w.out, "%s %s  %s\n", n.Type.Icon(), n.Title, n.Message)
		if w.forward != nil {
			if err := w.forward.Notify(ctx, n); err != nil {
				logger.Warn("failed to forward notification", "id", n.ID, "err", err)
			}
		}
	}
	return fresh, nil
}

// Run polls immediately and then on the schedule until ctx is done
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.Poll(ctx); err != nil {
		return err
	}

	c := cron.New()
	_, err := c.AddFunc(w.schedule, func() {
		if _, err := w.Poll(ctx); err != nil {
			logger.Warn("notification poll failed", "err", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", w.schedule, err)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
