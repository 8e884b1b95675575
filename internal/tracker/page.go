// Package tracker drives the three history pages: daily habits, mock exams
// and soft-skills sessions. Each page lists recent records, edits one record
// through a form and deletes behind a confirmation.
package tracker

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/preptrack/internal/api"
	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/toast"
)

var (
	// ErrValidation matches every form rejection
	ErrValidation = errors.New("invalid form input")
	// ErrBusy is returned when a submit is already in flight
	ErrBusy = errors.New("a submission is already in progress")
	// ErrNoPendingDelete is returned by ConfirmDelete without a prior RequestDelete
	ErrNoPendingDelete = errors.New("no delete awaiting confirmation")
)

type Toaster interface {
	Success(message string) toast.Toast
	Error(message string) toast.Toast
}

// Messages are the toast texts of one page
type Messages struct {
	Created      string
	Updated      string
	SaveFailed   string
	Deleted      string
	DeleteFailed string
	LoadFailed   string
	// ServerSaveMessage prefers the server's message over SaveFailed
	ServerSaveMessage bool
	// KeepForm leaves the form populated after a successful save
	KeepForm bool
}

var (
	DailyMessages = Messages{
		Created:      "Entry saved",
		Updated:      "Entry saved",
		SaveFailed:   "Save failed",
		Deleted:      "Entry deleted",
		DeleteFailed: "Delete failed",
		LoadFailed:   "Failed to load past entries",
		KeepForm:     true,
	}
	MockMessages = Messages{
		Created:           "Mock saved",
		Updated:           "Performance record updated",
		SaveFailed:        "Failed to save entry",
		Deleted:           "Record erased",
		DeleteFailed:      "Deletion failed",
		LoadFailed:        "Failed to fetch mocks",
		ServerSaveMessage: true,
	}
	SoftSkillMessages = Messages{
		Created:           "Entry saved",
		Updated:           "Entry updated",
		SaveFailed:        "Save failed",
		Deleted:           "Session deleted",
		DeleteFailed:      "Deletion failed",
		LoadFailed:        "Failed to fetch skills",
		ServerSaveMessage: true,
	}
)

// Page is the state behind one tracker view. All failures surface as toasts;
// nothing is retried.
type Page[T any] struct {
	res    Resource[T]
	form   Form[T]
	toasts Toaster
	msgs   Messages

	mu            sync.Mutex
	items         []T
	loading       bool
	submitting    bool
	editing       string
	pendingDelete string
	deleteOpen    bool
}

func NewPage[T any](res Resource[T], form Form[T], toasts Toaster, msgs Messages) *Page[T] {
	return &Page[T]{res: res, form: form, toasts: toasts, msgs: msgs}
}

// Form exposes the bound form for the view layer
func (p *Page[T]) Form() Form[T] {
	return p.form
}

// Load fetches the history list
func (p *Page[T]) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loading = true
	p.mu.Unlock()

	items, err := p.res.List(ctx)

	p.mu.Lock()
	p.loading = false
	if err == nil {
		p.items = items
	}
	p.mu.Unlock()

	if err != nil {
		logger.Warn("failed to load history", "err", err)
		p.toasts.Error(p.msgs.LoadFailed)
		return err
	}
	return nil
}

// Submit validates the form, then creates or updates depending on whether a
// record is being edited, and refetches the list on success.
func (p *Page[T]) Submit(ctx context.Context) error {
	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return ErrBusy
	}
	if err := p.form.Validate(); err != nil {
		p.mu.Unlock()
		p.toasts.Error(apperrors.Message(err, p.msgs.SaveFailed))
		return err
	}
	p.submitting = true
	record := p.form.Record()
	editing := p.editing
	p.mu.Unlock()

	var err error
	if editing != "" {
		err = p.res.Update(ctx, editing, record)
	} else {
		err = p.res.Create(ctx, record)
	}

	p.mu.Lock()
	p.submitting = false
	if err == nil {
		p.editing = ""
		if !p.msgs.KeepForm {
			p.form.Reset()
		}
	}
	p.mu.Unlock()

	if err != nil {
		msg := p.msgs.SaveFailed
		if p.msgs.ServerSaveMessage {
			msg = apperrors.Message(err, p.msgs.SaveFailed)
		}
		p.toasts.Error(msg)
		return err
	}

	if editing != "" {
		p.toasts.Success(p.msgs.Updated)
	} else {
		p.toasts.Success(p.msgs.Created)
	}
	_ = p.Load(ctx)
	return nil
}

// Edit copies item into the form and marks it as the record being edited
func (p *Page[T]) Edit(item T) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.form.Load(item)
	p.editing = p.res.Key(item)
}

// CancelEdit drops the edit target and clears the form
func (p *Page[T]) CancelEdit() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.editing = ""
	p.form.Reset()
}

// RequestDelete opens the confirmation for key. Nothing is sent yet.
func (p *Page[T]) RequestDelete(key string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingDelete = key
	p.deleteOpen = true
}

// CancelDelete closes the confirmation without any request
func (p *Page[T]) CancelDelete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pendingDelete = ""
	p.deleteOpen = false
}

// PendingDelete returns the key awaiting confirmation
func (p *Page[T]) PendingDelete() (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pendingDelete, p.deleteOpen
}

// ConfirmDelete issues exactly one delete for the pending key and, on
// success, one list refetch. The dialog closes either way.
func (p *Page[T]) ConfirmDelete(ctx context.Context) error {
	p.mu.Lock()
	key, open := p.pendingDelete, p.deleteOpen
	p.pendingDelete = ""
	p.deleteOpen = false
	p.mu.Unlock()

	if !open {
		return ErrNoPendingDelete
	}

	if err := p.res.Delete(ctx, key); err != nil {
		p.toasts.Error(p.msgs.DeleteFailed)
		return err
	}
	p.toasts.Success(p.msgs.Deleted)
	_ = p.Load(ctx)
	return nil
}

func (p *Page[T]) Items() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]T(nil), p.items...)
}

func (p *Page[T]) Editing() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.editing
}

func (p *Page[T]) Submitting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.submitting
}

func (p *Page[T]) Loading() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loading
}

// DailyPage adds date selection to the daily tracker. The form always
// reflects the latest selected date's entry, or a blank checklist when there
// is none. Lookups may finish out of order; only the newest one is applied.
type DailyPage struct {
	*Page[models.DailyEntry]
	form *DailyForm
	api  DailyAPI
	gen  int
	// latest is the date of the newest selection, applied or not
	latest string
}

func NewDailyPage(dapi DailyAPI, toasts Toaster) *DailyPage {
	form := NewDailyForm()
	return &DailyPage{
		Page: NewPage[models.DailyEntry](DailyResource{API: dapi}, form, toasts, DailyMessages),
		form: form,
		api:  dapi,
	}
}

// Selection is one date lookup. Begin it with BeginSelect, fill it with
// Fetch and hand it to Apply.
type Selection struct {
	Date  string
	Entry *models.DailyEntry
	gen   int
}

// BeginSelect marks date as the newest selection; earlier lookups go stale
func (p *DailyPage) BeginSelect(date string) Selection {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
	p.latest = date
	return Selection{Date: date, gen: p.gen}
}

// LatestDate is the newest selected date, which may still be loading
func (p *DailyPage) LatestDate() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.latest == "" {
		return p.form.Date
	}
	return p.latest
}

// Fetch looks up the entry for sel.Date. It does not touch the form. A
// missing entry, or any error, leaves Entry nil.
func (p *DailyPage) Fetch(ctx context.Context, sel Selection) Selection {
	e, err := p.api.Get(ctx, sel.Date)
	if err != nil {
		if !errors.Is(err, api.ErrNotFound) {
			logger.Warn("failed to load daily entry", "date", sel.Date, "err", err)
		}
		return sel
	}
	sel.Entry = e
	return sel
}

// Apply binds the form to sel unless a newer selection was begun since. It
// reports whether the form changed.
func (p *DailyPage) Apply(sel Selection) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if sel.gen != p.gen {
		return false
	}
	if sel.Entry == nil {
		p.form.ResetFor(sel.Date)
		return true
	}
	p.form.Load(*sel.Entry)
	p.form.Date = sel.Date
	return true
}

// SelectDate loads the entry for date into the form in one call
func (p *DailyPage) SelectDate(ctx context.Context, date string) bool {
	return p.Apply(p.Fetch(ctx, p.BeginSelect(date)))
}

// SelectedDate is the date the form is bound to
func (p *DailyPage) SelectedDate() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.form.Date
}

// Snapshot returns a copy of the checklist for rendering
func (p *DailyPage) Snapshot() DailyForm {
	p.mu.Lock()
	defer p.mu.Unlock()
	return *p.form
}

// Change edits the checklist under the page lock. It is refused while a save
// is in flight and reports whether fn ran.
func (p *DailyPage) Change(fn func(f *DailyForm)) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.submitting {
		return false
	}
	fn(p.form)
	return true
}

func NewMockPage(mapi MockAPI, toasts Toaster) *Page[models.MockRecord] {
	return NewPage[models.MockRecord](MockResource{API: mapi}, NewMockForm(), toasts, MockMessages)
}

func NewSoftSkillPage(sapi SoftSkillAPI, toasts Toaster) *Page[models.SoftSkillSession] {
	return NewPage[models.SoftSkillSession](SoftSkillResource{API: sapi}, NewSoftSkillForm(), toasts, SoftSkillMessages)
}
