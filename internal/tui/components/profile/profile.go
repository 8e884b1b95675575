// Package profile shows the signed-in user and edits name and email
package profile

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

type Updater interface {
	UpdateProfile(ctx context.Context, name, email string) (*models.User, error)
}

type savedMsg struct{ err error }

func (savedMsg) Target() route.Path { return route.Profile }

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(16)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true)
)

type Model struct {
	ctx     context.Context
	users   Users
	updater Updater
	edit    key.Binding

	name, email string
	form        *huh.Form
	saving      bool
}

func New(ctx context.Context, users Users, updater Updater) *Model {
	return &Model{
		ctx:     ctx,
		users:   users,
		updater: updater,
		edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit profile")),
	}
}

func (m *Model) Enter() tea.Cmd { return nil }

func (m *Model) Leave() {
	m.form = nil
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(savedMsg); ok {
		m.saving = false
		if msg.err != nil && m.form != nil {
			m.form.State = huh.StateNormal
			return nil
		}
		m.form = nil
		return nil
	}

	if m.form == nil {
		if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.edit) {
			if u := m.users.User(); u != nil {
				m.name, m.email = u.Name, u.Email
			}
			m.form = huh.NewForm(huh.NewGroup(
				huh.NewInput().Title("Name").Value(&m.name),
				huh.NewInput().Title("Email").Value(&m.email),
			)).WithTheme(huh.ThemeDracula())
			return m.form.Init()
		}
		return nil
	}

	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.form = nil
		return nil
	}
	if m.saving {
		return nil
	}
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.saving = true
		ctx, updater, name, email := m.ctx, m.updater, m.name, m.email
		return tea.Batch(cmd, func() tea.Msg {
			_, err := updater.UpdateProfile(ctx, name, email)
			return savedMsg{err: err}
		})
	case huh.StateAborted:
		m.form = nil
	}
	return cmd
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
}

func (m *Model) View() string {
	if m.form != nil {
		if m.saving {
			return "Saving..."
		}
		return lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render("Edit profile"), m.form.View())
	}
	u := m.users.User()
	if u == nil {
		return ""
	}
	role := u.Role
	if role == "" {
		role = "student"
	}
	since := "-"
	if !u.CreatedAt.IsZero() {
		since = u.CreatedAt.Format("January 2006")
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Profile"),
		row("Name", u.Name),
		row("Email", u.Email),
		row("Role", role),
		row("Member since", since),
		row("Notifications", onOff(u.NotificationsEnabled)),
	)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func (m *Model) SetSize(width, height int) {}

func (m *Model) Capturing() bool { return m.form != nil }

func (m *Model) Keys() []key.Binding { return []key.Binding{m.edit} }
