package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the program and blocks until the user quits. start is the
// initial route; the guard decides where the user actually lands.
func Run(ctx context.Context, deps Deps, start string) error {
	m := NewModel(ctx, deps, start)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	// Send blocks until the loop reads, and these hooks can fire from the
	// loop itself
	deps.Client.OnUnauthorized(func() { go p.Send(unauthorizedMsg{}) })
	deps.Toasts.OnChange(func() { go p.Send(toastsChangedMsg{}) })
	defer deps.Client.OnUnauthorized(nil)
	defer deps.Toasts.OnChange(nil)

	_, err := p.Run()
	return err
}
