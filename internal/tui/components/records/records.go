// Package records is the list-plus-form view shared by the mock and soft
// skill trackers.
package records

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type loadedMsg struct{ path route.Path }

func (m loadedMsg) Target() route.Path { return m.path }

type savedMsg struct {
	path route.Path
	err  error
}

func (m savedMsg) Target() route.Path { return m.path }

type deletedMsg struct {
	path route.Path
	err  error
}

func (m deletedMsg) Target() route.Path { return m.path }

// Options describes one record type to the view
type Options[T any] struct {
	Path  route.Path
	Empty string
	// Describe renders one list row
	Describe func(T) (title, desc string)
	Key      func(T) string
	// NewForm binds a huh form to the page's tracker form
	NewForm       func() *huh.Form
	ConfirmDelete string
}

type item[T any] struct {
	record      T
	title, desc string
}

func (i item[T]) Title() string       { return i.title }
func (i item[T]) Description() string { return i.desc }
func (i item[T]) FilterValue() string { return i.title }

type KeyMap struct {
	Add    key.Binding
	Edit   key.Binding
	Delete key.Binding
	Reload key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "enter"),
			key.WithHelp("e", "edit"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
	}
}

type Model[T any] struct {
	ctx  context.Context
	page *tracker.Page[T]
	opts Options[T]
	keys KeyMap
	list list.Model

	form      *huh.Form
	confirm   *huh.Form
	confirmed bool
	width     int
	height    int
}

func New[T any](ctx context.Context, page *tracker.Page[T], opts Options[T]) *Model[T] {
	keys := DefaultKeyMap()
	l := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	return &Model[T]{ctx: ctx, page: page, opts: opts, keys: keys, list: l}
}

func (m *Model[T]) Enter() tea.Cmd {
	return m.load()
}

func (m *Model[T]) Leave() {
	m.closeForm()
	if m.confirm != nil {
		m.page.CancelDelete()
		m.confirm = nil
	}
}

func (m *Model[T]) load() tea.Cmd {
	ctx, page, path := m.ctx, m.page, m.opts.Path
	return func() tea.Msg {
		_ = page.Load(ctx)
		return loadedMsg{path: path}
	}
}

func (m *Model[T]) syncItems() {
	records := m.page.Items()
	items := make([]list.Item, len(records))
	for i, r := range records {
		title, desc := m.opts.Describe(r)
		items[i] = item[T]{record: r, title: title, desc: desc}
	}
	m.list.SetItems(items)
}

func (m *Model[T]) selected() (T, bool) {
	if it, ok := m.list.SelectedItem().(item[T]); ok {
		return it.record, true
	}
	var zero T
	return zero, false
}

func (m *Model[T]) openForm() tea.Cmd {
	m.form = m.opts.NewForm()
	return m.form.Init()
}

func (m *Model[T]) closeForm() {
	if m.form != nil {
		m.form = nil
		m.page.CancelEdit()
	}
}

func (m *Model[T]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		m.syncItems()
		return nil
	case savedMsg:
		if msg.err != nil {
			// keep the input so it can be corrected
			if m.form != nil {
				m.form.State = huh.StateNormal
			}
			return nil
		}
		m.form = nil
		m.syncItems()
		return nil
	case deletedMsg:
		m.syncItems()
		return nil
	}

	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	if m.form != nil {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Add):
			m.page.CancelEdit()
			return m.openForm()
		case key.Matches(msg, m.keys.Edit):
			if r, ok := m.selected(); ok {
				m.page.Edit(r)
				return m.openForm()
			}
			return nil
		case key.Matches(msg, m.keys.Delete):
			if _, ok := m.selected(); ok {
				m.requestDelete()
				return m.confirm.Init()
			}
			return nil
		case key.Matches(msg, m.keys.Reload):
			return m.load()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return cmd
}

func (m *Model[T]) requestDelete() {
	r, _ := m.selected()
	m.page.RequestDelete(m.opts.Key(r))
	m.confirmed = false
	m.confirm = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(m.opts.ConfirmDelete).
			Description("This action cannot be undone.").
			Affirmative("Delete").
			Negative("Cancel").
			Value(&m.confirmed),
	)).WithTheme(huh.ThemeDracula())
}

func (m *Model[T]) updateConfirm(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.page.CancelDelete()
		m.confirm = nil
		return nil
	}

	form, cmd := m.confirm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.confirm = f
	}

	switch m.confirm.State {
	case huh.StateCompleted:
		m.confirm = nil
		if !m.confirmed {
			m.page.CancelDelete()
			return cmd
		}
		ctx, page, path := m.ctx, m.page, m.opts.Path
		return tea.Batch(cmd, func() tea.Msg {
			return deletedMsg{path: path, err: page.ConfirmDelete(ctx)}
		})
	case huh.StateAborted:
		m.confirm = nil
		m.page.CancelDelete()
	}
	return cmd
}

func (m *Model[T]) updateForm(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.closeForm()
		return nil
	}
	if m.form.State == huh.StateCompleted {
		// submit in flight
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		ctx, page, path := m.ctx, m.page, m.opts.Path
		return tea.Batch(cmd, func() tea.Msg {
			return savedMsg{path: path, err: page.Submit(ctx)}
		})
	case huh.StateAborted:
		m.closeForm()
	}
	return cmd
}

func (m *Model[T]) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}
	if m.form != nil {
		heading := "New entry"
		if m.page.Editing() != "" {
			heading = "Edit entry"
		}
		if m.page.Submitting() {
			return heading + "\n\nSaving..."
		}
		return lipgloss.JoinVertical(lipgloss.Left, heading, "", m.form.View())
	}
	if m.page.Loading() && len(m.list.Items()) == 0 {
		return "Loading..."
	}
	if len(m.list.Items()) == 0 {
		return "\n  " + m.opts.Empty + "\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model[T]) SetSize(width, height int) {
	m.width, m.height = width, height
	m.list.SetSize(width, height)
}

// Capturing reports whether keystrokes belong to a form
func (m *Model[T]) Capturing() bool {
	return m.form != nil || m.confirm != nil
}

func (m *Model[T]) Keys() []key.Binding {
	return []key.Binding{m.keys.Add, m.keys.Edit, m.keys.Delete, m.keys.Reload}
}
