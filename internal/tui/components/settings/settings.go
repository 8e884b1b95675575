// Package settings changes the password and toggles email notifications
package settings

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/route"
)

type Users interface {
	User() *models.User
}

type Account interface {
	ChangePassword(ctx context.Context, current, next, confirm string) error
	SetNotifications(ctx context.Context, enabled bool) (*models.User, error)
}

type doneMsg struct{ err error }

func (doneMsg) Target() route.Path { return route.Settings }

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(25)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginTop(1).
			MarginBottom(1)
)

type KeyMap struct {
	Password      key.Binding
	Notifications key.Binding
}

type passwordFields struct {
	Current, New, Confirm string
}

type Model struct {
	ctx     context.Context
	users   Users
	account Account
	keys    KeyMap

	pw   passwordFields
	form *huh.Form
	busy bool
}

func New(ctx context.Context, users Users, account Account) *Model {
	return &Model{
		ctx:     ctx,
		users:   users,
		account: account,
		keys: KeyMap{
			Password:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "change password")),
			Notifications: key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle notifications")),
		},
	}
}

func (m *Model) Enter() tea.Cmd { return nil }

func (m *Model) Leave() {
	m.form = nil
	m.pw = passwordFields{}
}

func (m *Model) passwordForm() *huh.Form {
	m.pw = passwordFields{}
	secret := func(title string, v *string) *huh.Input {
		return huh.NewInput().Title(title).EchoMode(huh.EchoModePassword).Value(v)
	}
	return huh.NewForm(huh.NewGroup(
		secret("Current password", &m.pw.Current),
		secret("New password", &m.pw.New),
		secret("Confirm new password", &m.pw.Confirm),
	)).WithTheme(huh.ThemeDracula())
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(doneMsg); ok {
		m.busy = false
		if msg.err == nil {
			m.form = nil
			m.pw = passwordFields{}
		} else if m.form != nil {
			m.form = m.passwordForm()
			return m.form.Init()
		}
		return nil
	}
	if m.busy {
		return nil
	}

	if m.form != nil {
		return m.updateForm(msg)
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(k, m.keys.Password):
		m.form = m.passwordForm()
		return m.form.Init()
	case key.Matches(k, m.keys.Notifications):
		u := m.users.User()
		if u == nil {
			return nil
		}
		m.busy = true
		ctx, account, enabled := m.ctx, m.account, !u.NotificationsEnabled
		return func() tea.Msg {
			_, err := account.SetNotifications(ctx, enabled)
			return doneMsg{err: err}
		}
	}
	return nil
}

func (m *Model) updateForm(msg tea.Msg) tea.Cmd {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		m.pw = passwordFields{}
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.busy = true
		ctx, account, pw := m.ctx, m.account, m.pw
		return tea.Batch(cmd, func() tea.Msg {
			return doneMsg{err: account.ChangePassword(ctx, pw.Current, pw.New, pw.Confirm)}
		})
	case huh.StateAborted:
		m.form = nil
	}
	return cmd
}

func (m *Model) View() string {
	if m.form != nil {
		if m.busy {
			return "Updating password..."
		}
		return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Change password"), m.form.View())
	}

	notifications := "disabled"
	if u := m.users.User(); u != nil && u.NotificationsEnabled {
		notifications = "enabled"
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Settings"),
		sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Email notifications:"), valueStyle.Render(notifications)),
			lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render("Password:"), valueStyle.Render("********")),
		)),
	)
}

func (m *Model) SetSize(width, height int) {}

func (m *Model) Capturing() bool { return m.form != nil }

func (m *Model) Keys() []key.Binding {
	return []key.Binding{m.keys.Password, m.keys.Notifications}
}
