package dashboard

import (
	"context"
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
	Dashboard(ctx context.Context) (*insights.Dashboard, error)
}

type loadedMsg struct {
	data *insights.Dashboard
	err  error
}

func (loadedMsg) Target() route.Path { return route.Dashboard }

type tickMsg struct {
	gen int
}

func (tickMsg) Target() route.Path { return route.Dashboard }

type KeyMap struct {
	Refresh key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

type Model struct {
	ctx     context.Context
	loader  Loader
	keys    KeyMap
	spinner spinner.Model
	count   *insights.CountUp

	data    *insights.Dashboard
	err     error
	loading bool
	// gen invalidates tick chains started before the last Enter
	gen    int
	active bool
	width  int
}

func New(ctx context.Context, loader Loader) *Model {
	return &Model{
		ctx:     ctx,
		loader:  loader,
		keys:    DefaultKeyMap(),
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
	load := func() tea.Msg {
		d, err := loader.Dashboard(ctx)
		return loadedMsg{data: d, err: err}
	}
	return tea.Batch(load, m.spinner.Tick)
}

func tick(gen int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
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
		return tick(m.gen, m.count.Interval())
	case tickMsg:
		if msg.gen != m.gen || !m.active {
			return nil
		}
		if m.count.Tick() {
			return tick(m.gen, m.count.Interval())
		}
	case spinner.TickMsg:
		if m.loading {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Refresh) && !m.loading {
			return m.reload()
		}
	}
	return nil
}

func (m *Model) View() string {
	if m.loading && m.data == nil {
		return m.spinner.View() + " Loading dashboard..."
	}
	if m.err != nil && m.data == nil {
		return charts.MutedStyle.Render("Failed to load dashboard. Press 'r' to retry.")
	}
	if m.data == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		charts.Tiles(m.data.Tiles, func(t insights.Tile) float64 { return m.count.Value(t.Value) }),
		charts.TitleStyle.Render("Average section scores (last 5 mocks)"),
		charts.Bars(m.data.Sections, m.width/2, 0),
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
}

func (m *Model) Capturing() bool { return false }

func (m *Model) Keys() []key.Binding { return []key.Binding{m.keys.Refresh} }
