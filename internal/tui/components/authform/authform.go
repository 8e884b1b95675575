// Package authform holds the login and register forms, which share one
// container and switch with ctrl+r.
package authform

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/auth"
	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/models"
	"github.com/julianstephens/preptrack/internal/route"
)

type Signer interface {
	SignIn(ctx context.Context, email, password string) (*models.User, error)
	SignUp(ctx context.Context, name, email, password string) (*models.User, error)
}

// SignedInMsg reports the outcome of a login or register attempt. The root
// model navigates to the dashboard on success.
type SignedInMsg struct {
	User *models.User
	Err  error
}

func (SignedInMsg) Target() route.Path { return route.Login }

// SwitchMsg asks the root model to show the other form
type SwitchMsg struct {
	To route.Path
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("62")).Padding(1, 2)
)

type fields struct {
	Name     string
	Email    string
	Password string
}

type Model struct {
	ctx    context.Context
	signer Signer
	mode   route.Path
	swap   key.Binding

	in      fields
	form    *huh.Form
	err     string
	pending bool
}

func New(ctx context.Context, signer Signer) *Model {
	m := &Model{
		ctx:    ctx,
		signer: signer,
		mode:   route.Login,
		swap:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
	}
	m.form = m.build()
	return m
}

// Mode is route.Login or route.Register
func (m *Model) Mode() route.Path { return m.mode }

// Show switches to mode, keeping the email already typed
func (m *Model) Show(mode route.Path) tea.Cmd {
	if mode != route.Register {
		mode = route.Login
	}
	m.mode = mode
	m.err = ""
	m.pending = false
	m.in.Password = ""
	m.form = m.build()
	return m.form.Init()
}

func (m *Model) build() *huh.Form {
	email := huh.NewInput().Title("Email").Value(&m.in.Email)
	password := huh.NewInput().
		Title("Password").
		EchoMode(huh.EchoModePassword).
		Value(&m.in.Password)

	if m.mode == route.Register {
		password = password.DescriptionFunc(func() string {
			if s := auth.PasswordStrength(m.in.Password); s != auth.StrengthNone {
				return "Strength: " + s.String()
			}
			return ""
		}, &m.in.Password)
		return huh.NewForm(huh.NewGroup(
			huh.NewInput().Title("Name").Value(&m.in.Name),
			email,
			password,
		)).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
	}
	return huh.NewForm(huh.NewGroup(email, password)).WithTheme(huh.ThemeDracula()).WithShowHelp(false)
}

func (m *Model) Enter() tea.Cmd {
	return m.form.Init()
}

func (m *Model) Leave() {}

func (m *Model) submit() tea.Cmd {
	m.pending = true
	ctx, signer, mode, in := m.ctx, m.signer, m.mode, m.in
	return func() tea.Msg {
		var u *models.User
		var err error
		if mode == route.Register {
			u, err = signer.SignUp(ctx, in.Name, in.Email, in.Password)
		} else {
			u, err = signer.SignIn(ctx, in.Email, in.Password)
		}
		return SignedInMsg{User: u, Err: err}
	}
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case SignedInMsg:
		m.pending = false
		if msg.Err != nil {
			m.err = apperrors.Message(msg.Err, "Authorization failed")
			m.in.Password = ""
			m.form = m.build()
			return m.form.Init()
		}
		m.err = ""
		m.in = fields{}
		m.form = m.build()
		return nil
	case tea.KeyMsg:
		if key.Matches(msg, m.swap) {
			to := route.Register
			if m.mode == route.Register {
				to = route.Login
			}
			return func() tea.Msg { return SwitchMsg{To: to} }
		}
	}
	if m.pending {
		return nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	if m.form.State == huh.StateCompleted {
		return tea.Batch(cmd, m.submit())
	}
	return cmd
}

func (m *Model) View() string {
	title := "Welcome back"
	other := "No account? ctrl+r to register"
	if m.mode == route.Register {
		title = "Create your account"
		other = "Already registered? ctrl+r to sign in"
	}

	body := m.form.View()
	if m.pending {
		body = "Signing in..."
	}
	parts := []string{titleStyle.Render(title), "", body}
	if m.err != "" {
		parts = append(parts, "", errorStyle.Render(fmt.Sprintf("✗ %s", m.err)))
	}
	parts = append(parts, "", hintStyle.Render(other))
	return boxStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) SetSize(width, height int) {}

func (m *Model) Capturing() bool { return true }

func (m *Model) Keys() []key.Binding { return []key.Binding{m.swap} }
