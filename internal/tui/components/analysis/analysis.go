// Package analysis is the mock performance analysis view
package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/preptrack/internal/insights"
	"github.com/julianstephens/preptrack/internal/route"
	"github.com/julianstephens/preptrack/internal/tui/components/charts"
)

type Loader interface {
	Analysis(ctx context.Context) (*insights.Analysis, error)
}

type loadedMsg struct {
	data *insights.Analysis
	err  error
}

func (loadedMsg) Target() route.Path { return route.MockAnalysis }

type tickMsg struct {
	gen int
}

func (tickMsg) Target() route.Path { return route.MockAnalysis }

type Model struct {
	ctx     context.Context
	loader  Loader
	refresh key.Binding
	spinner spinner.Model
	count   *insights.CountUp

	data    *insights.Analysis
	err     error
	loading bool
	gen     int
	active  bool
	width   int
}

func New(ctx context.Context, loader Loader) *Model {
	return &Model{
		ctx:     ctx,
		loader:  loader,
		refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot)),
		count:   insights.NewCountUp(),
	}
}

func (m *Model) Enter() tea.Cmd {
	m.active = true
	return m.reload()
}

func (m *Model) Leave() {
	m.active = false
	m.gen++
	m.count.Finish()
}

func (m *Model) reload() tea.Cmd {
	m.gen++
	m.loading = true
	m.err = nil
	ctx, loader := m.ctx, m.loader
	return tea.Batch(func() tea.Msg {
		a, err := loader.Analysis(ctx)
		return loadedMsg{data: a, err: err}
	}, m.spinner.Tick)
}

func (m *Model) tick() tea.Cmd {
	gen := m.gen
	return tea.Tick(m.count.Interval(), func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *Model) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case loadedMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return nil
		}
		m.data = msg.data
		m.count.Reset()
		if !m.active {
			m.count.Finish()
			return nil
		}
		return m.tick()
	case tickMsg:
		if msg.gen == m.gen && m.active && m.count.Tick() {
			return m.tick()
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.refresh) && !m.loading {
			return m.reload()
		}
	}
	return nil
}

func (m *Model) View() string {
	switch {
	case m.loading && m.data == nil:
		return m.spinner.View() + " Loading analysis..."
	case m.err != nil && m.data == nil:
		return charts.MutedStyle.Render("Failed to load analysis. Press 'r' to retry.")
	case m.data == nil:
		return ""
	case len(m.data.Mocks) == 0:
		return charts.MutedStyle.Render("No mocks recorded yet. Add one on the Mocks tab.")
	}

	w := m.width / 2
	return lipgloss.JoinVertical(lipgloss.Left,
		charts.Tiles(m.data.Tiles, func(t insights.Tile) float64 { return m.count.Value(t.Value) }),
		charts.TitleStyle.Render("Percentile trend"),
		charts.Bars(m.data.Percentiles, w, 100),
		charts.TitleStyle.Render("Total score trend"),
		charts.Bars(m.data.Totals, w, 0),
		charts.TitleStyle.Render("Section breakdown (last 5)"),
		sections(m.data.Sections),
	)
}

func sections(points []insights.SectionPoint) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %6s %6s %6s", "", "VARC", "LRDI", "QA")
	for _, p := range points {
		fmt.Fprintf(&sb, "\n%-6s %6.1f %6.1f %6.1f", p.Label, p.VARC, p.LRDI, p.QA)
	}
	return sb.String()
}

func (m *Model) SetSize(width, height int) {
	m.width = width
}

func (m *Model) Capturing() bool { return false }

func (m *Model) Keys() []key.Binding { return []key.Binding{m.refresh} }
