package bell

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/notify"
	"github.com/julianstephens/preptrack/internal/toast"
)

type fakeNotifications struct {
	items []models.Notification
	reads []string
}

func (f *fakeNotifications) List(ctx context.Context) ([]models.Notification, error) {
	return append([]models.Notification(nil), f.items...), nil
}

func (f *fakeNotifications) MarkRead(ctx context.Context, id string) error {
	f.reads = append(f.reads, id)
	return nil
}

func (f *fakeNotifications) MarkAllRead(ctx context.Context) error { return nil }

func newModel(t *testing.T, f *fakeNotifications) *Model {
	t.Helper()
	ts := toast.New()
	t.Cleanup(ts.Close)
	return New(context.Background(), notify.NewBell(f, ts), time.Minute)
}

func TestToggleRefreshesAndMarksRead(t *testing.T) {
	f := &fakeNotifications{items: []models.Notification{
		{ID: "n1", Title: "Log today", Type: models.NotificationReminder},
		{ID: "n2", Title: "Streak", Type: models.NotificationAchievement, IsRead: true},
	}}
	m := newModel(t, f)

	cmd := m.Toggle()
	if !m.Open() || cmd == nil {
		t.Fatal("toggle should open and refresh")
	}
	m.Update(cmd())
	if !strings.Contains(m.Badge(), "1") {
		t.Errorf("badge = %q", m.Badge())
	}
	if !strings.Contains(m.View(), "Log today") {
		t.Errorf("view = %q", m.View())
	}

	read := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(read())
	if len(f.reads) != 1 || f.reads[0] != "n1" {
		t.Errorf("reads = %v", f.reads)
	}
	if strings.Contains(m.Badge(), "1") {
		t.Errorf("badge after read = %q", m.Badge())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")})
	if m.Open() {
		t.Error("n should close the panel")
	}
}

func TestStaleRefreshTickIsDropped(t *testing.T) {
	m := newModel(t, &fakeNotifications{})
	m.Start()
	stale := pollMsg{gen: m.gen}
	m.Stop()
	if cmd := m.Update(stale); cmd != nil {
		t.Error("a tick from before Stop should end the loop")
	}
}

func TestUnboundKeyClosesPanel(t *testing.T) {
	f := &fakeNotifications{items: []models.Notification{{ID: "n1", Title: "Log today"}}}
	m := newModel(t, f)
	m.Update(m.Toggle()())

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		handled bool
		open    bool
	}{
		{"down stays open", tea.KeyMsg{Type: tea.KeyDown}, true, true},
		{"tab closes and passes through", tea.KeyMsg{Type: tea.KeyTab}, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !m.Open() {
				m.Toggle()
			}
			_, handled := m.HandleKey(tt.msg)
			if handled != tt.handled {
				t.Errorf("handled = %v, want %v", handled, tt.handled)
			}
			if m.Open() != tt.open {
				t.Errorf("open = %v, want %v", m.Open(), tt.open)
			}
		})
	}
}
