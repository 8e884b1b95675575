package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/tui/components/toasts"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	if m.deps.Auth.Status() == auth.StatusLoading {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.spinner.View()+loadingStyle.Render(" Authenticating..."),
		)
	}

	var content string
	if p := m.active(); p != nil {
		content = p.View()
	}

	parts := []string{}
	if route.ShowNavbar(m.path) && m.deps.Auth.IsAuthenticated() {
		parts = append(parts, m.viewNavbar())
		if m.bell.Open() {
			parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, m.bell.View()))
		}
		parts = append(parts, docStyle.Render(content))
	} else {
		parts = append(parts, lipgloss.Place(m.width, max(m.height-chrome, 0), lipgloss.Center, lipgloss.Center, content))
	}

	if t := toasts.Render(m.deps.Toasts.Toasts()); t != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t))
	}
	parts = append(parts, m.help.View(m))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) viewNavbar() string {
	var tabs []string
	for _, r := range route.Nav() {
		if r.Path == m.path {
			tabs = append(tabs, activeTabStyle.Render(r.Title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(r.Title))
		}
	}
	left := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	right := m.bell.Badge()
	if u := m.deps.Auth.User(); u != nil {
		right = userStyle.Render(u.Name) + " " + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.JoinVertical(lipgloss.Left, left, right)
	}
	return left + lipgloss.NewStyle().Width(gap).Render("") + right
}
