package records

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/toast"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type fakeMocks struct {
	records []models.MockRecord
	deletes []string
}

func (f *fakeMocks) Create(ctx context.Context, m models.MockRecord) (*models.MockRecord, error) {
	m.ID = "new"
	f.records = append([]models.MockRecord{m}, f.records...)
	return &m, nil
}

func (f *fakeMocks) List(ctx context.Context, opts api.ListOptions) ([]models.MockRecord, error) {
	return append([]models.MockRecord(nil), f.records...), nil
}

func (f *fakeMocks) Update(ctx context.Context, id string, m models.MockRecord) (*models.MockRecord, error) {
	return &m, nil
}

func (f *fakeMocks) Delete(ctx context.Context, id string) error {
	f.deletes = append(f.deletes, id)
	var kept []models.MockRecord
	for _, r := range f.records {
		if r.ID != id {
			kept = append(kept, r)
		}
	}
	f.records = kept
	return nil
}

func newMocks(t *testing.T, api *fakeMocks) *Model[models.MockRecord] {
	t.Helper()
	ts := toast.New()
	t.Cleanup(ts.Close)
	m := NewMocks(context.Background(), tracker.NewMockPage(api, ts))
	m.SetSize(80, 20)
	return m
}

// run executes cmd and feeds its message back, the way the program loop would
func run(m interface{ Update(tea.Msg) tea.Cmd }, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			if c == nil {
				continue
			}
			if inner := c(); inner != nil {
				if _, ok := inner.(interface{ Target() route.Path }); ok {
					m.Update(inner)
				}
			}
		}
		return
	}
	m.Update(msg)
}

func TestEnterLoadsList(t *testing.T) {
	api := &fakeMocks{records: []models.MockRecord{{ID: "m1", Name: "SIMCAT 1", Date: "2024-03-05", Percentile: 91}}}
	m := newMocks(t, api)
	if !strings.Contains(m.View(), "No mocks recorded yet") && !strings.Contains(m.View(), "Loading") {
		t.Errorf("empty view = %q", m.View())
	}

	run(m, m.Enter())
	if !strings.Contains(m.View(), "SIMCAT 1") {
		t.Errorf("view after load = %q", m.View())
	}
}

func TestDeleteNeedsConfirmation(t *testing.T) {
	api := &fakeMocks{records: []models.MockRecord{{ID: "m1", Name: "SIMCAT 1", Date: "2024-03-05"}}}
	m := newMocks(t, api)
	run(m, m.Enter())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if !m.Capturing() {
		t.Fatal("delete should open a confirmation")
	}
	if len(api.deletes) != 0 {
		t.Fatal("delete sent before confirmation")
	}

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("esc should close the confirmation")
	}
	if _, open := m.page.PendingDelete(); open {
		t.Error("pending delete left open")
	}
	if len(api.deletes) != 0 {
		t.Errorf("deletes = %v, want none", api.deletes)
	}
}

func TestAddOpensForm(t *testing.T) {
	m := newMocks(t, &fakeMocks{})
	run(m, m.Enter())

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})
	if !m.Capturing() {
		t.Fatal("add should open the form")
	}
	if !strings.Contains(m.View(), "New entry") {
		t.Errorf("view = %q", m.View())
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Capturing() {
		t.Error("esc should close the form")
	}
}

func TestDescribe(t *testing.T) {
	title, desc := DescribeMock(models.MockRecord{Name: "AIMCAT", Date: "2024-03-05T00:00:00.000Z", Percentile: 95.5, Scores: models.SectionScores{VARC: 30, LRDI: 20, QA: 25}})
	if title != "2024-03-05  AIMCAT" {
		t.Errorf("title = %q", title)
	}
	if !strings.Contains(desc, "total 75.0") {
		t.Errorf("desc = %q", desc)
	}

	_, desc = DescribeSoftSkill(models.SoftSkillSession{Duration: 30, Rating: 4})
	if desc != "30 min  4/5 Proficient" {
		t.Errorf("desc = %q", desc)
	}
}
