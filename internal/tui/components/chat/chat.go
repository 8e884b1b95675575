// Package chat is the AI mentor conversation view
package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/mentor"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/route"
)

type replyMsg struct{}

func (replyMsg) Target() route.Path { return route.AIMentor }

var (
	userStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99")).Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type Model struct {
	ctx     context.Context
	conv    *mentor.Conversation
	input   textinput.Model
	view    viewport.Model
	spinner spinner.Model
	pick    key.Binding
	width   int
}

func New(ctx context.Context, conv *mentor.Conversation) *Model {
	ti := textinput.New()
	ti.Placeholder = "Ask about your preparation..."
	ti.CharLimit = 1000
	m := &Model{
		ctx:     ctx,
		conv:    conv,
		input:   ti,
		view:    viewport.New(0, 0),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		pick:    key.NewBinding(key.WithKeys("f1", "f2", "f3", "f4"), key.WithHelp("f1-f4", "suggestion")),
	}
	m.refresh()
	return m
}

func (m *Model) Enter() tea.Cmd {
	m.refresh()
	return m.input.Focus()
}

func (m *Model) Leave() {
	m.input.Blur()
}

func (m *Model) refresh() {
	var sb strings.Builder
	for i, msg := range m.conv.Messages() {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		label := assistantStyle.Render("Mentor")
		if msg.Role == models.RoleUser {
			label = userStyle.Render("You")
		}
		content := msg.Content
		if m.width > 4 {
			content = lipgloss.NewStyle().Width(m.width - 4).Render(content)
		}
		sb.WriteString(label + "\n" + content)
	}
	m.view.SetContent(sb.String())
	m.view.GotoBottom()
}

func (m *Model) send() tea.Cmd {
	text := m.input.Value()
	if strings.TrimSpace(text) == "" || m.conv.Sending() {
		return nil
	}
	m.input.SetValue("")
	ctx, conv := m.ctx, m.conv
	cmd := func() tea.Msg {
		conv.Send(ctx, text)
		return replyMsg{}
	}
	return tea.Batch(cmd, m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case replyMsg:
		m.refresh()
		return nil
	case spinner.TickMsg:
		if m.conv.Sending() {
			m.refresh()
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	case tea.KeyMsg:
		switch {
		case msg.Type == tea.KeyEnter:
			return m.send()
		case key.Matches(msg, m.pick):
			i := int(msg.String()[1] - '1')
			if s := mentor.Suggestions(); i >= 0 && i < len(s) {
				m.input.SetValue(s[i])
				m.input.CursorEnd()
			}
			return nil
		case msg.Type == tea.KeyPgUp || msg.Type == tea.KeyPgDown:
			var cmd tea.Cmd
			m.view, cmd = m.view.Update(msg)
			return cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) View() string {
	var hints []string
	for i, s := range mentor.Suggestions() {
		hints = append(hints, fmt.Sprintf("F%d %s", i+1, s))
	}
	status := ""
	if m.conv.Sending() {
		status = m.spinner.View() + " Mentor is thinking..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.view.View(),
		status,
		m.input.View(),
		hintStyle.Render(strings.Join(hints, "  ")),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.view.Width = width
	m.view.Height = max(height-4, 3)
	m.input.Width = max(width-4, 10)
	m.refresh()
}

// Capturing is always true: every printable key goes to the input
func (m *Model) Capturing() bool { return true }

// Captures leaves tab and shift+tab to the navbar
func (m *Model) Captures(k tea.KeyMsg) bool {
	return k.Type != tea.KeyTab && k.Type != tea.KeyShiftTab
}

func (m *Model) Keys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send")),
		m.pick,
	}
}
