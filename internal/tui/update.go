package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/tui/components/authform"
	"github.com/julianstephens/preptrack/internal/tui/components/bell"
)

// chrome is the rows taken by the navbar and help line
const chrome = 6

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case authResolvedMsg:
		logger.Debug("auth resolved", "status", msg.status)
		cmd := m.navigate(m.requested)
		if msg.status == auth.StatusAuthenticated {
			return m, tea.Batch(cmd, m.bell.Start())
		}
		return m, cmd

	case unauthorizedMsg:
		// the client already cleared the stored session
		if m.path == route.Login || m.path == route.Register {
			return m, nil
		}
		logger.Info("session rejected by server, signing out")
		m.deps.Auth.Reset()
		m.teardown()
		return m, m.show(route.Login)

	case toastsChangedMsg:
		return m, nil

	case authform.SignedInMsg:
		cmd := m.authPage.Update(msg)
		if msg.Err != nil {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.bell.Start(), m.show(route.Dashboard))

	case authform.SwitchMsg:
		return m, m.show(msg.To)

	case spinner.TickMsg:
		var cmd tea.Cmd
		if m.deps.Auth.Status() == auth.StatusLoading {
			m.spinner, cmd = m.spinner.Update(msg)
		}
		if p := m.active(); p != nil {
			return m, tea.Batch(cmd, p.Update(msg))
		}
		return m, cmd

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if bell.Handles(msg) {
		return m, m.bell.Update(msg)
	}
	if r, ok := msg.(routed); ok {
		if p, ok := m.pages[r.Target()]; ok {
			return m, p.Update(msg)
		}
		return m, nil
	}
	if p := m.active(); p != nil {
		return m, p.Update(msg)
	}
	return m, nil
}

// captures lets a page claim a key before the global bindings see it
func captures(p page, k tea.KeyMsg) bool {
	if c, ok := p.(interface{ Captures(tea.KeyMsg) bool }); ok {
		return c.Captures(k)
	}
	return p.Capturing()
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if key.Matches(msg, m.keys.Quit) {
		m.quitting = true
		return tea.Quit
	}
	if m.deps.Auth.Status() == auth.StatusLoading {
		return nil
	}
	if m.bell.Open() {
		if cmd, handled := m.bell.HandleKey(msg); handled {
			return cmd
		}
	}

	p := m.active()
	if p == nil {
		return nil
	}
	if captures(p, msg) {
		return p.Update(msg)
	}

	if m.deps.Auth.IsAuthenticated() && route.ShowNavbar(m.path) {
		switch {
		case key.Matches(msg, m.keys.Tab):
			return m.cycle(1)
		case key.Matches(msg, m.keys.ShiftTab):
			return m.cycle(-1)
		case key.Matches(msg, m.keys.Jump):
			nav := route.Nav()
			if len(msg.Runes) == 0 {
				return nil
			}
			if i := int(msg.Runes[0] - '1'); i >= 0 && i < len(nav) {
				return m.show(nav[i].Path)
			}
			return nil
		case key.Matches(msg, m.keys.Bell):
			return m.bell.Toggle()
		case key.Matches(msg, m.keys.Logout):
			m.logout()
			return m.show(route.Login)
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return nil
		}
	}
	return p.Update(msg)
}

func (m *Model) cycle(step int) tea.Cmd {
	nav := route.Nav()
	for i, r := range nav {
		if r.Path == m.path {
			next := (i + step + len(nav)) % len(nav)
			return m.show(nav[next].Path)
		}
	}
	return m.show(nav[0].Path)
}

// navigate runs the route guard for requested
func (m *Model) navigate(requested string) tea.Cmd {
	path, decision := route.Navigate(m.deps.Auth.Status(), requested)
	if decision == route.Wait {
		m.requested = requested
		return nil
	}
	return m.show(path)
}

// show switches to path, leaving the previous page
func (m *Model) show(path route.Path) tea.Cmd {
	if prev := m.active(); prev != nil && m.path != path {
		prev.Leave()
	}
	m.bell.Close()
	m.path = path
	if path == route.Login || path == route.Register {
		return m.authPage.Show(path)
	}
	if p := m.active(); p != nil {
		return p.Enter()
	}
	return nil
}

func (m *Model) logout() {
	logger.Info("user logged out")
	m.deps.Auth.Logout()
	m.teardown()
}

// teardown drops all signed-in state: the bell loop and every page
func (m *Model) teardown() {
	m.bell.Stop()
	if p := m.active(); p != nil {
		p.Leave()
	}
	m.buildPages()
	m.path = ""
}

func (m *Model) resize() {
	h := max(m.height-chrome, 5)
	w := max(m.width-4, 20)
	for _, p := range m.pages {
		p.SetSize(w, h)
	}
}
