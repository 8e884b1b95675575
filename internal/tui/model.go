package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/account"
	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/insights"
	"github.com/julianstephens/preptrack/internal/mentor"
	"github.com/julianstephens/preptrack/internal/notify"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/toast"
	"github.com/julianstephens/preptrack/internal/tracker"
	"github.com/julianstephens/preptrack/internal/tui/components/analysis"
	"github.com/julianstephens/preptrack/internal/tui/components/authform"
	"github.com/julianstephens/preptrack/internal/tui/components/bell"
	"github.com/julianstephens/preptrack/internal/tui/components/chat"
	"github.com/julianstephens/preptrack/internal/tui/components/daily"
	"github.com/julianstephens/preptrack/internal/tui/components/dashboard"
	"github.com/julianstephens/preptrack/internal/tui/components/profile"
	"github.com/julianstephens/preptrack/internal/tui/components/records"
	"github.com/julianstephens/preptrack/internal/tui/components/settings"
)

// Deps are the long-lived services the TUI drives
type Deps struct {
	Client *api.Client
	Auth   *auth.Store
	Toasts *toast.Store
	// PollInterval is the notification refresh period
	PollInterval time.Duration
}

// page is one routed view
type page interface {
	Enter() tea.Cmd
	Leave()
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	// Capturing reports whether the page consumes every keystroke
	Capturing() bool
	Keys() []key.Binding
}

// routed messages carry the path of the page that issued them
type routed interface {
	Target() route.Path
}

type authResolvedMsg struct {
	status auth.Status
}

type unauthorizedMsg struct{}

type toastsChangedMsg struct{}

type Model struct {
	ctx     context.Context
	deps    Deps
	keys    KeyMap
	help    help.Model
	spinner spinner.Model

	path      route.Path
	requested string
	pages     map[route.Path]page
	authPage  *authform.Model
	bell      *bell.Model

	width    int
	height   int
	quitting bool
}

func NewModel(ctx context.Context, deps Deps, start string) *Model {
	if deps.PollInterval <= 0 {
		deps.PollInterval = constants.NotificationPollInterval
	}
	m := &Model{
		ctx:       ctx,
		deps:      deps,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		requested: start,
		authPage:  authform.New(ctx, auth.NewService(deps.Client.Auth, deps.Auth)),
		bell:      bell.New(ctx, notify.NewBell(deps.Client.Notifications, deps.Toasts), deps.PollInterval),
	}
	m.buildPages()
	return m
}

// buildPages creates fresh page state; called again after sign-out so no
// data from the previous session survives.
func (m *Model) buildPages() {
	c, ts := m.deps.Client, m.deps.Toasts
	loader := insights.NewLoader(c.Mocks, c.SoftSkills)
	acct := account.New(c.Auth, m.deps.Auth, ts)

	m.pages = map[route.Path]page{
		route.Dashboard:    dashboard.New(m.ctx, loader),
		route.DailyTracker: daily.New(m.ctx, tracker.NewDailyPage(c.Tracker, ts)),
		route.MockTracker:  records.NewMocks(m.ctx, tracker.NewMockPage(c.Mocks, ts)),
		route.MockAnalysis: analysis.New(m.ctx, loader),
		route.SoftSkills:   records.NewSoftSkills(m.ctx, tracker.NewSoftSkillPage(c.SoftSkills, ts)),
		route.AIMentor:     chat.New(m.ctx, mentor.New(c.AI)),
		route.Profile:      profile.New(m.ctx, m.deps.Auth, acct),
		route.Settings:     settings.New(m.ctx, m.deps.Auth, acct),
		route.Login:        m.authPage,
		route.Register:     m.authPage,
	}
	if m.width > 0 {
		m.resize()
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.resolveAuth())
}

func (m *Model) resolveAuth() tea.Cmd {
	ctx, store := m.ctx, m.deps.Auth
	return func() tea.Msg {
		return authResolvedMsg{status: store.Init(ctx)}
	}
}

// Path is the route currently shown
func (m *Model) Path() route.Path { return m.path }

func (m *Model) active() page {
	return m.pages[m.path]
}

func (m *Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Quit, m.keys.Help}
	if m.deps.Auth.IsAuthenticated() {
		keys = append([]key.Binding{m.keys.Tab, m.keys.Bell, m.keys.Logout}, keys...)
	}
	if p := m.active(); p != nil {
		keys = append(keys, p.Keys()...)
	}
	return keys
}

func (m *Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Jump, m.keys.Bell, m.keys.Logout, m.keys.Quit, m.keys.Help}
	var actions []key.Binding
	if p := m.active(); p != nil {
		actions = p.Keys()
	}
	return [][]key.Binding{global, actions}
}
