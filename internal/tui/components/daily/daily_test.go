package daily

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/toast"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type fakeTracker struct {
	entries map[string]models.DailyEntry
	upserts int
}

func (f *fakeTracker) Upsert(ctx context.Context, e models.DailyEntry) (*models.DailyEntry, error) {
	f.upserts++
	f.entries[e.Date] = e
	return &e, nil
}

func (f *fakeTracker) List(ctx context.Context, opts api.ListOptions) ([]models.DailyEntry, error) {
	var out []models.DailyEntry
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeTracker) Get(ctx context.Context, date string) (*models.DailyEntry, error) {
	e, ok := f.entries[date]
	if !ok {
		return nil, &api.Error{Status: 404, Message: "No entry found"}
	}
	return &e, nil
}

func (f *fakeTracker) Delete(ctx context.Context, date string) error {
	delete(f.entries, date)
	return nil
}

func keyPress(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newModel(t *testing.T, f *fakeTracker) *Model {
	t.Helper()
	ts := toast.New()
	t.Cleanup(ts.Close)
	return New(context.Background(), tracker.NewDailyPage(f, ts))
}

func TestToggleAndSave(t *testing.T) {
	f := &fakeTracker{entries: map[string]models.DailyEntry{}}
	m := newModel(t, f)
	m.page.SelectDate(context.Background(), "2024-03-05")

	m.Update(keyPress(" "))
	m.Update(keyPress("j"))
	m.Update(keyPress(" "))
	m.Update(keyPress("m"))

	form := m.page.Snapshot()
	if !form.Quant || !form.LRDI || form.Mood != string(models.MoodExcellent) {
		t.Fatalf("form = %+v", form)
	}

	cmd := m.Update(keyPress("s"))
	if cmd == nil {
		t.Fatal("save returned no command")
	}
	if msg, ok := cmd().(savedMsg); !ok || msg.err != nil {
		t.Fatalf("save msg = %+v", msg)
	}
	if f.upserts != 1 || f.entries["2024-03-05"].CompletedCount() != 2 {
		t.Errorf("stored = %+v", f.entries)
	}
	if !strings.Contains(m.View(), "2/6 habits") {
		t.Errorf("history missing saved entry: %q", m.View())
	}
}

func TestDateNavigationLoadsEntry(t *testing.T) {
	f := &fakeTracker{entries: map[string]models.DailyEntry{
		"2024-03-04": {Date: "2024-03-04", VARC: true},
	}}
	m := newModel(t, f)
	m.page.SelectDate(context.Background(), "2024-03-05")

	m.Update(m.Update(keyPress("["))())
	if form := m.page.Snapshot(); form.Date != "2024-03-04" || !form.VARC {
		t.Errorf("previous day not loaded: %+v", form)
	}

	m.Update(m.Update(keyPress("]"))())
	if form := m.page.Snapshot(); form.Date != "2024-03-05" || form.VARC {
		t.Errorf("empty day not reset: %+v", form)
	}
}

func TestOutOfOrderLookupsKeepLatestDate(t *testing.T) {
	f := &fakeTracker{entries: map[string]models.DailyEntry{
		"2024-03-04": {Date: "2024-03-04", VARC: true, Mood: models.MoodGood},
	}}
	m := newModel(t, f)
	m.page.SelectDate(context.Background(), "2024-03-05")

	back := m.Update(keyPress("["))    // 2024-03-04, has an entry
	forward := m.Update(keyPress("]")) // back to 2024-03-05, no entry

	// the newer lookup lands first, the older one last
	m.Update(forward())
	m.Update(back())

	form := m.page.Snapshot()
	if form.Date != "2024-03-05" || form.VARC || form.Mood != "" {
		t.Errorf("form = %+v, want blank checklist for 2024-03-05", form)
	}
}

func TestDeleteOnlyWithEntry(t *testing.T) {
	f := &fakeTracker{entries: map[string]models.DailyEntry{}}
	m := newModel(t, f)
	m.page.SelectDate(context.Background(), "2024-03-05")

	m.Update(keyPress("d"))
	if m.Capturing() {
		t.Error("delete opened a confirmation for a date without an entry")
	}
}

func TestNextMoodCycles(t *testing.T) {
	got := []string{}
	cur := ""
	for i := 0; i < len(models.Moods)+1; i++ {
		cur = nextMood(cur)
		got = append(got, cur)
	}
	if got[0] != "excellent" || got[len(got)-1] != "" {
		t.Errorf("cycle = %v", got)
	}
}
