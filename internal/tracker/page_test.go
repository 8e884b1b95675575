package tracker

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/devserver"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/session"
	"github.com/julianstephens/preptrack/internal/toast"
	"golang.org/x/crypto/bcrypt"
)

type countingResource struct {
	items       []models.MockRecord
	listCalls   int
	createCalls int
	updateCalls int
	deleteCalls int
	deleted     []string
	failDelete  error
	failSave    error
}

func (r *countingResource) List(ctx context.Context) ([]models.MockRecord, error) {
	r.listCalls++
	return r.items, nil
}

func (r *countingResource) Create(ctx context.Context, m models.MockRecord) error {
	r.createCalls++
	return r.failSave
}

func (r *countingResource) Update(ctx context.Context, key string, m models.MockRecord) error {
	r.updateCalls++
	return r.failSave
}

func (r *countingResource) Delete(ctx context.Context, key string) error {
	r.deleteCalls++
	r.deleted = append(r.deleted, key)
	return r.failDelete
}

func (r *countingResource) Key(m models.MockRecord) string { return m.ID }

func lastToast(t *testing.T, s *toast.Store) toast.Toast {
	t.Helper()
	all := s.Toasts()
	if len(all) == 0 {
		t.Fatal("no toast shown")
	}
	return all[len(all)-1]
}

func filledMockForm() *MockForm {
	return &MockForm{Name: "SIMCAT 1", Date: "2024-03-05", Slot: "evening", VARC: "32.5", LRDI: "21", QA: "28", Percentile: "94.2"}
}

func TestConfirmDeleteIssuesOneDeleteAndOneRefetch(t *testing.T) {
	res := &countingResource{}
	ts := toast.New()
	defer ts.Close()
	p := NewPage[models.MockRecord](res, NewMockForm(), ts, MockMessages)
	ctx := context.Background()

	p.RequestDelete("m1")
	if key, open := p.PendingDelete(); !open || key != "m1" {
		t.Fatalf("PendingDelete() = %q, %v", key, open)
	}
	if err := p.ConfirmDelete(ctx); err != nil {
		t.Fatal(err)
	}
	if res.deleteCalls != 1 || res.listCalls != 1 || res.deleted[0] != "m1" {
		t.Errorf("delete calls = %d, list calls = %d", res.deleteCalls, res.listCalls)
	}
	if got := lastToast(t, ts); got.Message != "Record erased" {
		t.Errorf("toast = %q", got.Message)
	}
	if _, open := p.PendingDelete(); open {
		t.Error("dialog still open")
	}
	if err := p.ConfirmDelete(ctx); !errors.Is(err, ErrNoPendingDelete) || res.deleteCalls != 1 {
		t.Errorf("second confirm err = %v, calls = %d", err, res.deleteCalls)
	}
}

func TestCancelDeleteIssuesNoCalls(t *testing.T) {
	res := &countingResource{}
	ts := toast.New()
	defer ts.Close()
	p := NewPage[models.MockRecord](res, NewMockForm(), ts, MockMessages)

	p.RequestDelete("m1")
	p.CancelDelete()
	if res.deleteCalls != 0 || res.listCalls != 0 {
		t.Errorf("cancel made calls: delete %d, list %d", res.deleteCalls, res.listCalls)
	}
	if ts.Len() != 0 {
		t.Error("cancel showed a toast")
	}
}

func TestDeleteFailure(t *testing.T) {
	res := &countingResource{failDelete: errors.New("500")}
	ts := toast.New()
	defer ts.Close()
	p := NewPage[models.MockRecord](res, NewMockForm(), ts, MockMessages)

	p.RequestDelete("m1")
	if err := p.ConfirmDelete(context.Background()); err == nil {
		t.Fatal("ConfirmDelete() should fail")
	}
	if got := lastToast(t, ts); got.Message != "Deletion failed" || got.Kind != toast.KindError {
		t.Errorf("toast = %+v", got)
	}
	if res.listCalls != 0 {
		t.Error("failed delete must not refetch")
	}
}

func TestSubmitValidationBlocksNetwork(t *testing.T) {
	res := &countingResource{}
	ts := toast.New()
	defer ts.Close()
	form := filledMockForm()
	form.QA = "lots"
	p := NewPage[models.MockRecord](res, form, ts, MockMessages)

	err := p.Submit(context.Background())
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("err = %v, want ErrValidation", err)
	}
	if res.createCalls != 0 {
		t.Error("invalid form reached the API")
	}
	if got := lastToast(t, ts); got.Message != "Please provide valid scores" {
		t.Errorf("toast = %q", got.Message)
	}
}

func TestSubmitCreateThenEdit(t *testing.T) {
	res := &countingResource{}
	ts := toast.New()
	defer ts.Close()
	form := filledMockForm()
	p := NewPage[models.MockRecord](res, form, ts, MockMessages)
	ctx := context.Background()

	if err := p.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if res.createCalls != 1 || res.listCalls != 1 {
		t.Errorf("create = %d, list = %d", res.createCalls, res.listCalls)
	}
	if lastToast(t, ts).Message != "Mock saved" {
		t.Errorf("toast = %q", lastToast(t, ts).Message)
	}
	if form.Name != "" || form.Slot != "morning" {
		t.Errorf("form not reset: %+v", form)
	}

	p.Edit(models.MockRecord{ID: "m9", Name: "AIMCAT", Date: "2024-02-01T00:00:00.000Z", Slot: models.SlotNight,
		Scores: models.SectionScores{VARC: 40, LRDI: 30, QA: 35}, Percentile: 99})
	if p.Editing() != "m9" || form.Date != "2024-02-01" || form.VARC != "40" {
		t.Errorf("Edit() form = %+v, editing = %q", form, p.Editing())
	}
	if err := p.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if res.updateCalls != 1 || res.createCalls != 1 {
		t.Errorf("update = %d, create = %d", res.updateCalls, res.createCalls)
	}
	if lastToast(t, ts).Message != "Performance record updated" || p.Editing() != "" {
		t.Error("edit not completed")
	}
}

func TestSubmitFailureUsesServerMessage(t *testing.T) {
	res := &countingResource{failSave: &api.Error{Status: 400, Message: "Percentile must be between 0 and 100"}}
	ts := toast.New()
	defer ts.Close()
	p := NewPage[models.MockRecord](res, filledMockForm(), ts, MockMessages)

	if err := p.Submit(context.Background()); err == nil {
		t.Fatal("Submit() should fail")
	}
	if got := lastToast(t, ts); got.Message != "Percentile must be between 0 and 100" {
		t.Errorf("toast = %q", got.Message)
	}
	if p.Submitting() {
		t.Error("submitting flag stuck")
	}

	res.failSave = errors.New("connection refused")
	_ = p.Submit(context.Background())
	if got := lastToast(t, ts); got.Message != "Failed to save entry" {
		t.Errorf("fallback toast = %q", got.Message)
	}
}

func TestSubmitRejectsReentry(t *testing.T) {
	res := &countingResource{}
	ts := toast.New()
	defer ts.Close()
	p := NewPage[models.MockRecord](res, filledMockForm(), ts, MockMessages)

	p.mu.Lock()
	p.submitting = true
	p.mu.Unlock()

	if err := p.Submit(context.Background()); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	if res.createCalls != 0 {
		t.Error("re-entrant submit reached the API")
	}
}

func newClient(t *testing.T) (*api.Client, *devserver.Server) {
	t.Helper()
	srv := devserver.New(devserver.Options{BcryptCost: bcrypt.MinCost})
	hs := httptest.NewServer(srv.Handler())
	t.Cleanup(hs.Close)
	store := session.NewMemoryStore()
	c := api.New(hs.URL+"/api", store)
	res, err := c.Auth.Register(context.Background(), models.Registration{Name: "Asha", Email: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatal(err)
	}
	_ = store.SetToken(res.Token)
	return c, srv
}

func TestSoftSkillRoundTrip(t *testing.T) {
	c, _ := newClient(t)
	ts := toast.New()
	defer ts.Close()
	p := NewSoftSkillPage(c.SoftSkills, ts)
	ctx := context.Background()

	form := p.Form().(*SoftSkillForm)
	form.Type, form.Topic, form.Duration, form.Rating, form.Date = "GD", "Remote work", "45", "4", "2024-03-05"
	if err := p.Submit(ctx); err != nil {
		t.Fatal(err)
	}

	items := p.Items()
	if len(items) != 1 {
		t.Fatalf("Items() = %v", items)
	}
	got := items[0]
	if got.Type != models.SkillGD || got.Topic != "Remote work" || got.Duration != 45 || got.Rating != 4 || got.Date != "2024-03-05" {
		t.Errorf("round trip = %+v", got)
	}
	if lastToast(t, ts).Message != "Entry saved" {
		t.Errorf("toast = %q", lastToast(t, ts).Message)
	}
}

func TestDailyPage(t *testing.T) {
	c, srv := newClient(t)
	ts := toast.New()
	defer ts.Close()
	p := NewDailyPage(c.Tracker, ts)
	ctx := context.Background()

	p.Change(func(f *DailyForm) {
		f.Date, f.Quant, f.VARC, f.Mood = "2024-03-05", true, true, "good"
	})
	if err := p.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	// the same payload twice leaves one entry
	if err := p.Submit(ctx); err != nil {
		t.Fatal(err)
	}
	if items := p.Items(); len(items) != 1 || items[0].CompletedCount() != 2 {
		t.Errorf("Items() = %+v", items)
	}
	if form := p.Snapshot(); form.Date != "2024-03-05" || !form.Quant {
		t.Error("daily form should keep its state after save")
	}

	p.SelectDate(ctx, "2024-03-06")
	if form := p.Snapshot(); form.Quant || form.VARC || form.Mood != "" || form.Date != "2024-03-06" {
		t.Errorf("missing date did not reset the form: %+v", form)
	}

	p.SelectDate(ctx, "2024-03-05")
	if form := p.Snapshot(); !form.Quant || !form.VARC || form.Mood != "good" {
		t.Errorf("existing entry not loaded: %+v", form)
	}

	srv.FailNext(http.MethodGet, "/tracker/2024-03-05", http.StatusInternalServerError, "boom")
	p.SelectDate(ctx, "2024-03-05")
	if p.Snapshot().Quant {
		t.Error("a failed lookup should reset the form")
	}

	p.RequestDelete("2024-03-05")
	if err := p.ConfirmDelete(ctx); err != nil {
		t.Fatal(err)
	}
	if len(p.Items()) != 0 || lastToast(t, ts).Message != "Entry deleted" {
		t.Error("delete not reflected")
	}
}

func TestFormValidation(t *testing.T) {
	tests := []struct {
		name string
		form interface{ Validate() error }
		want string
	}{
		{"daily bad date", &DailyForm{Date: "05/03/2024"}, "Please provide a valid date (YYYY-MM-DD)"},
		{"daily bad mood", &DailyForm{Date: "2024-03-05", Mood: "meh"}, "Invalid mood"},
		{"daily ok", &DailyForm{Date: "2024-03-05", Mood: "okay"}, ""},
		{"mock no name", &MockForm{Date: "2024-03-05", Slot: "morning"}, "Mock name is required"},
		{"mock bad slot", &MockForm{Name: "x", Date: "2024-03-05", Slot: "dawn"}, "Invalid slot"},
		{"mock bad percentile", &MockForm{Name: "x", Date: "2024-03-05", Slot: "night", VARC: "1", LRDI: "2", QA: "3", Percentile: "120"}, "Please provide a valid percentile (0-100)"},
		{"mock ok", filledMockForm(), ""},
		{"skill no topic", &SoftSkillForm{Type: "Essay", Date: "2024-03-05"}, "Topic is required"},
		{"skill bad duration", &SoftSkillForm{Type: "Essay", Topic: "t", Duration: "-5", Rating: "3", Date: "2024-03-05"}, "Duration must be a positive number of minutes"},
		{"skill bad rating", &SoftSkillForm{Type: "Essay", Topic: "t", Duration: "5", Rating: "6", Date: "2024-03-05"}, "Rating must be between 1 and 5"},
		{"skill bad type", &SoftSkillForm{Type: "Debate"}, "Invalid skill type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.form.Validate()
			if tt.want == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || err.Error() != tt.want {
				t.Errorf("Validate() = %v, want %q", err, tt.want)
			}
		})
	}
}

// slowDaily holds Get for one date until release is closed
type slowDaily struct {
	DailyAPI
	slowDate string
	release  chan struct{}
	entries  map[string]models.DailyEntry
}

func (s *slowDaily) Get(ctx context.Context, date string) (*models.DailyEntry, error) {
	if date == s.slowDate {
		<-s.release
	}
	e, ok := s.entries[date]
	if !ok {
		return nil, api.ErrNotFound
	}
	return &e, nil
}

func TestDailyPageLatestSelectionWins(t *testing.T) {
	ts := toast.New()
	defer ts.Close()
	dapi := &slowDaily{
		slowDate: "2024-03-05",
		release:  make(chan struct{}),
		entries: map[string]models.DailyEntry{
			"2024-03-05": {Date: "2024-03-05", Quant: true, Mood: models.MoodGood},
		},
	}
	p := NewDailyPage(dapi, ts)
	ctx := context.Background()

	first := p.BeginSelect("2024-03-05")
	done := make(chan Selection)
	go func() { done <- p.Fetch(ctx, first) }()

	if !p.SelectDate(ctx, "2024-03-06") {
		t.Fatal("the newest selection should apply")
	}
	close(dapi.release)
	if p.Apply(<-done) {
		t.Error("a stale lookup should be dropped")
	}

	form := p.Snapshot()
	if form.Date != "2024-03-06" || form.Quant || form.Mood != "" {
		t.Errorf("form = %+v, want blank checklist for 2024-03-06", form)
	}
}

func TestDailyPageChangeRefusedWhileSaving(t *testing.T) {
	ts := toast.New()
	defer ts.Close()
	p := NewDailyPage(&slowDaily{}, ts)

	p.mu.Lock()
	p.submitting = true
	p.mu.Unlock()
	if p.Change(func(f *DailyForm) { f.Quant = true }) {
		t.Error("Change should be refused during a save")
	}
	if p.Snapshot().Quant {
		t.Error("form changed during a save")
	}
}
