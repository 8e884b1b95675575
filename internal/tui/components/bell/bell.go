// Package bell is the notification dropdown and its refresh loop
package bell

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/notify"
)

// refreshedMsg and actionMsg only trigger a redraw; state lives in the bell
type refreshedMsg struct{}

type actionMsg struct{}

type pollMsg struct{ gen int }

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1).
			Width(48)
	unreadStyle = lipgloss.NewStyle().Bold(true)
	readStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	badgeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("196")).Padding(0, 1)
)

type KeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Read    key.Binding
	ReadAll key.Binding
	Close   key.Binding
}

type Model struct {
	ctx      context.Context
	bell     *notify.Bell
	interval time.Duration
	keys     KeyMap
	cursor   int
	gen      int
}

func New(ctx context.Context, b *notify.Bell, interval time.Duration) *Model {
	return &Model{
		ctx:      ctx,
		bell:     b,
		interval: interval,
		keys: KeyMap{
			Up:      key.NewBinding(key.WithKeys("up", "k")),
			Down:    key.NewBinding(key.WithKeys("down", "j")),
			Read:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "mark read")),
			ReadAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "mark all read")),
			Close:   key.NewBinding(key.WithKeys("esc", "n"), key.WithHelp("n", "close")),
		},
	}
}

func (m *Model) refresh() tea.Cmd {
	ctx, b := m.ctx, m.bell
	return func() tea.Msg {
		_ = b.Refresh(ctx)
		return refreshedMsg{}
	}
}

func (m *Model) poll() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg { return pollMsg{gen: gen} })
}

// Start fetches once and keeps refreshing until Stop
func (m *Model) Start() tea.Cmd {
	m.gen++
	return tea.Batch(m.refresh(), m.poll())
}

// Stop ends the refresh loop and forgets the notifications
func (m *Model) Stop() {
	m.gen++
	m.cursor = 0
	m.bell.Reset()
}

func (m *Model) Open() bool { return m.bell.IsOpen() }

func (m *Model) Close() {
	m.cursor = 0
	m.bell.Close()
}

func (m *Model) Toggle() tea.Cmd {
	m.cursor = 0
	if m.bell.Toggle() {
		return m.refresh()
	}
	return nil
}

// Handles reports whether msg belongs to the bell
func Handles(msg tea.Msg) bool {
	switch msg.(type) {
	case refreshedMsg, actionMsg, pollMsg:
		return true
	}
	return false
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case pollMsg:
		if msg.gen != m.gen {
			return nil
		}
		return tea.Batch(m.refresh(), m.poll())
	case refreshedMsg, actionMsg:
		if n := len(m.bell.Items()); m.cursor >= n {
			m.cursor = max(n-1, 0)
		}
		return nil
	case tea.KeyMsg:
		cmd, _ := m.HandleKey(msg)
		return cmd
	}
	return nil
}

// HandleKey applies msg to the open panel. Any key the panel has no binding
// for closes it and reports false so the caller can act on the key itself.
func (m *Model) HandleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	items := m.bell.Items()
	switch {
	case key.Matches(msg, m.keys.Close):
		m.Close()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(items)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Read):
		if m.cursor < len(items) && !items[m.cursor].IsRead {
			ctx, b, id := m.ctx, m.bell, items[m.cursor].ID
			return func() tea.Msg {
				_ = b.MarkRead(ctx, id)
				return actionMsg{}
			}, true
		}
	case key.Matches(msg, m.keys.ReadAll):
		if m.bell.Unread() > 0 {
			ctx, b := m.ctx, m.bell
			return func() tea.Msg {
				_ = b.MarkAllRead(ctx)
				return actionMsg{}
			}, true
		}
	default:
		m.Close()
		return nil, false
	}
	return nil, true
}

// Badge renders the bell with its unread counter for the navbar
func (m *Model) Badge() string {
	if b := m.bell.Badge(); b != "" {
		return "🔔" + badgeStyle.Render(b)
	}
	return "🔔"
}

func (m *Model) View() string {
	items := m.bell.Items()
	var sb strings.Builder
	fmt.Fprintf(&sb, "Notifications (%d unread)", m.bell.Unread())
	if len(items) == 0 {
		sb.WriteString("\n\n" + readStyle.Render("You're all caught up"))
		return panelStyle.Render(sb.String())
	}
	for i, n := range items {
		prefix := "  "
		if i == m.cursor {
			prefix = cursorStyle.Render("> ")
		}
		style := readStyle
		if !n.IsRead {
			style = unreadStyle
		}
		line := fmt.Sprintf("%s %s", n.Type.Icon(), n.Title)
		sb.WriteString("\n" + prefix + style.Render(line))
		if n.Message != "" {
			sb.WriteString("\n    " + readStyle.Render(n.Message))
		}
	}
	sb.WriteString("\n\n" + readStyle.Render("enter mark read · a mark all · n close"))
	return panelStyle.Render(sb.String())
}
