// Package daily is the habit checklist view. The checklist is bound to one
// date; the history below lists recent entries.
package daily

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type loadedMsg struct{}

func (loadedMsg) Target() route.Path { return route.DailyTracker }

type selectedMsg struct{ sel tracker.Selection }

func (selectedMsg) Target() route.Path { return route.DailyTracker }

type savedMsg struct{ err error }

func (savedMsg) Target() route.Path { return route.DailyTracker }

type deletedMsg struct {
	err error
	sel tracker.Selection
}

func (deletedMsg) Target() route.Path { return route.DailyTracker }

type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Mood   key.Binding
	Save   key.Binding
	Prev   key.Binding
	Next   key.Binding
	Today  key.Binding
	Delete key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Mood:   key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mood")),
		Save:   key.NewBinding(key.WithKeys("s", "enter"), key.WithHelp("s", "save")),
		Prev:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev day")),
		Next:   key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next day")),
		Today:  key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	}
}

type habit struct {
	label string
	field func(*tracker.DailyForm) *bool
}

var habits = []habit{
	{"Quant practice", func(f *tracker.DailyForm) *bool { return &f.Quant }},
	{"LRDI sets", func(f *tracker.DailyForm) *bool { return &f.LRDI }},
	{"VARC reading", func(f *tracker.DailyForm) *bool { return &f.VARC }},
	{"Soft skills", func(f *tracker.DailyForm) *bool { return &f.SoftSkill }},
	{"Exercise", func(f *tracker.DailyForm) *bool { return &f.Exercise }},
	{"Gaming (limit)", func(f *tracker.DailyForm) *bool { return &f.Gaming }},
}

var (
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	headStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
)

type Model struct {
	ctx  context.Context
	page *tracker.DailyPage
	keys KeyMap

	cursor    int
	confirm   *huh.Form
	confirmed bool
	width     int
}

func New(ctx context.Context, page *tracker.DailyPage) *Model {
	return &Model{ctx: ctx, page: page, keys: DefaultKeyMap()}
}

func (m *Model) Enter() tea.Cmd {
	date := m.page.SelectedDate()
	if date == "" {
		date = models.Today()
	}
	return tea.Batch(m.load(), m.selectDate(date))
}

func (m *Model) Leave() {
	if m.confirm != nil {
		m.page.CancelDelete()
		m.confirm = nil
	}
}

func (m *Model) load() tea.Cmd {
	ctx, page := m.ctx, m.page
	return func() tea.Msg {
		_ = page.Load(ctx)
		return loadedMsg{}
	}
}

// selectDate starts a lookup for date; the result is applied in Update so the
// checklist only changes on the update loop
func (m *Model) selectDate(date string) tea.Cmd {
	ctx, page := m.ctx, m.page
	sel := page.BeginSelect(date)
	return func() tea.Msg {
		return selectedMsg{sel: page.Fetch(ctx, sel)}
	}
}

// hasEntry reports whether the history holds an entry for date
func (m *Model) hasEntry(date string) bool {
	for _, e := range m.page.Items() {
		if models.Day(e.Date) == date {
			return true
		}
	}
	return false
}

func nextMood(cur string) string {
	if cur == "" {
		return string(models.Moods[0])
	}
	for i, mood := range models.Moods {
		if string(mood) == cur && i+1 < len(models.Moods) {
			return string(models.Moods[i+1])
		}
	}
	return string(models.MoodNone)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case selectedMsg:
		m.page.Apply(msg.sel)
		return nil
	case deletedMsg:
		if msg.err == nil {
			m.page.Apply(msg.sel)
		}
		return nil
	case loadedMsg, savedMsg:
		return nil
	case tea.KeyMsg:
		if m.confirm != nil {
			return m.updateConfirm(msg)
		}
		return m.handleKey(msg)
	}
	if m.confirm != nil {
		return m.updateConfirm(msg)
	}
	return nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(habits)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		field := habits[m.cursor].field
		m.page.Change(func(f *tracker.DailyForm) {
			p := field(f)
			*p = !*p
		})
	case key.Matches(msg, m.keys.Mood):
		m.page.Change(func(f *tracker.DailyForm) { f.Mood = nextMood(f.Mood) })
	case key.Matches(msg, m.keys.Save):
		ctx, page := m.ctx, m.page
		return func() tea.Msg { return savedMsg{err: page.Submit(ctx)} }
	case key.Matches(msg, m.keys.Prev):
		return m.selectDate(models.ShiftDay(m.page.LatestDate(), -1))
	case key.Matches(msg, m.keys.Next):
		return m.selectDate(models.ShiftDay(m.page.LatestDate(), 1))
	case key.Matches(msg, m.keys.Today):
		return m.selectDate(models.Today())
	case key.Matches(msg, m.keys.Delete):
		date := m.page.SelectedDate()
		if !m.hasEntry(date) {
			return nil
		}
		m.page.RequestDelete(date)
		m.confirmed = false
		m.confirm = huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete the entry for %s?", date)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(&m.confirmed),
		)).WithTheme(huh.ThemeDracula())
		return m.confirm.Init()
	}
	return nil
}

func (m *Model) updateConfirm(msg tea.Msg) tea.Cmd {
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
		ctx, page := m.ctx, m.page
		sel := page.BeginSelect(page.SelectedDate())
		return tea.Batch(cmd, func() tea.Msg {
			if err := page.ConfirmDelete(ctx); err != nil {
				return deletedMsg{err: err}
			}
			return deletedMsg{sel: page.Fetch(ctx, sel)}
		})
	case huh.StateAborted:
		m.confirm = nil
		m.page.CancelDelete()
	}
	return cmd
}

func (m *Model) View() string {
	if m.confirm != nil {
		return m.confirm.View()
	}
	snap := m.page.Snapshot()
	form := &snap

	var sb strings.Builder
	sb.WriteString(headStyle.Render("Checklist for "+form.Date) + "\n\n")
	for i, h := range habits {
		box := "[ ]"
		if *h.field(form) {
			box = doneStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s %s", box, h.label)
		if i == m.cursor {
			line = cursorStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		sb.WriteString(line + "\n")
	}
	fmt.Fprintf(&sb, "\n  Mood: %s\n", models.Mood(form.Mood).Label())
	if m.page.Submitting() {
		sb.WriteString(mutedStyle.Render("  Saving...") + "\n")
	}

	sb.WriteString("\n" + headStyle.Render("Recent entries") + "\n")
	items := m.page.Items()
	if len(items) == 0 {
		if m.page.Loading() {
			sb.WriteString(mutedStyle.Render("Loading..."))
		} else {
			sb.WriteString(mutedStyle.Render("No entries yet."))
		}
		return sb.String()
	}
	for _, e := range items {
		fmt.Fprintf(&sb, "%s  %-10s  mood: %s\n", models.Day(e.Date), e.Summary(), e.Mood.Label())
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (m *Model) SetSize(width, height int) {
	m.width = width
}

func (m *Model) Capturing() bool {
	return m.confirm != nil
}

func (m *Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Toggle, m.keys.Mood, m.keys.Save, m.keys.Prev, m.keys.Next, m.keys.Delete}
}
