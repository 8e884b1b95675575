// Package toasts renders the toast stack in the corner of the screen
package toasts

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/toast"
)

var (
	base = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(40)

	kindColors = map[toast.Kind]lipgloss.Color{
		toast.KindSuccess: lipgloss.Color("42"),
		toast.KindError:   lipgloss.Color("196"),
		toast.KindWarning: lipgloss.Color("214"),
		toast.KindInfo:    lipgloss.Color("39"),
	}
)

// Render stacks toasts newest last. It returns "" when there are none.
func Render(list []toast.Toast) string {
	if len(list) == 0 {
		return ""
	}
	blocks := make([]string, len(list))
	for i, t := range list {
		c := kindColors[t.Kind]
		title := lipgloss.NewStyle().Bold(true).Foreground(c).Render(t.Kind.Title())
		blocks[i] = base.BorderForeground(c).Render(title + "\n" + strings.TrimSpace(t.Message))
	}
	return lipgloss.JoinVertical(lipgloss.Right, blocks...)
}
