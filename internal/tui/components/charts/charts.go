// Package charts renders the text bar charts and KPI tiles shared by the
// dashboard and analysis views.
package charts

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/insights"
)

var (
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(6)
	tileStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			Width(20)
	tileValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	TitleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginTop(1)
	MutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Bars draws one horizontal bar per entry, scaled to the largest value (or
// to scale when it is positive).
func Bars(bars []insights.Bar, width int, scale float64) string {
	if len(bars) == 0 {
		return MutedStyle.Render("No data yet")
	}
	if scale <= 0 {
		for _, b := range bars {
			scale = math.Max(scale, b.Value)
		}
	}
	width = clampWidth(width)

	var sb strings.Builder
	for i, b := range bars {
		n := 0
		if scale > 0 {
			n = int(math.Round(b.Value / scale * float64(width)))
		}
		n = min(max(n, 0), width)
		fmt.Fprintf(&sb, "%s %s %s", labelStyle.Render(b.Label), barStyle.Render(strings.Repeat("█", n)), formatValue(b.Value))
		if i < len(bars)-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Tiles renders KPI tiles side by side. value maps each tile to what is
// currently displayed, which lets callers animate the numbers.
func Tiles(tiles []insights.Tile, value func(insights.Tile) float64) string {
	blocks := make([]string, len(tiles))
	for i, t := range tiles {
		v := tileValueStyle.Render(formatValue(value(t)) + t.Suffix)
		blocks[i] = tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left, MutedStyle.Render(t.Label), v))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, blocks...)
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}

func clampWidth(w int) int {
	if w < 10 {
		return 10
	}
	if w > 60 {
		return 60
	}
	return w
}
