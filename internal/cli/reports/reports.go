package reports

import (
	"fmt"
	"strings"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/insights"
	"github.com/julianstephens/preptrack/internal/tui/components/charts"
)

func loader(ctx *cli.Context) *insights.Loader {
	return insights.NewLoader(ctx.Client.Mocks, ctx.Client.SoftSkills)
}

func exact(t insights.Tile) float64 { return t.Value }

type DashboardCmd struct {
	Summary bool `help:"Also show the server's all-time summary."`
	Width   int  `help:"Chart width in columns." default:"40"`
}

func (c *DashboardCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	d, err := loader(ctx).Dashboard(ctx.Base)
	if err != nil {
		return cli.Fail(err, "Failed to load dashboard")
	}
	ctx.Println(charts.Tiles(d.Tiles, exact))
	ctx.Println()
	ctx.Println(charts.TitleStyle.Render("Section averages (latest mocks)"))
	ctx.Println(charts.Bars(d.Sections, c.Width, 0))

	if !c.Summary {
		return nil
	}
	s, err := ctx.Client.Insights.Dashboard(ctx.Base, api.ListOptions{})
	if err != nil {
		return cli.Fail(err, "Failed to load summary")
	}
	ctx.Println()
	ctx.Println(charts.TitleStyle.Render("All time"))
	ctx.Printf("  Days logged:       %d\n", s.Tracker.TotalDays)
	ctx.Printf("  Mocks taken:       %d (avg %s%%ile)\n", s.Mocks.TotalMocks, s.Mocks.AveragePercentile)
	ctx.Printf("  Practice sessions: %d (%d min)\n", s.SoftSkills.TotalSessions, s.SoftSkills.TotalMinutes)
	return nil
}

type AnalysisCmd struct {
	Width int `help:"Chart width in columns." default:"40"`
}

func (c *AnalysisCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	a, err := loader(ctx).Analysis(ctx.Base)
	if err != nil {
		return cli.Fail(err, "Failed to load analysis")
	}
	if len(a.Mocks) == 0 {
		ctx.Println("No mocks recorded yet. Add one with 'preptrack mock add'.")
		return nil
	}

	ctx.Println(charts.Tiles(a.Tiles, exact))
	ctx.Println()
	ctx.Println(charts.TitleStyle.Render("Percentile trend"))
	ctx.Println(charts.Bars(a.Percentiles, c.Width, 100))
	ctx.Println()
	ctx.Println(charts.TitleStyle.Render("Total score trend"))
	ctx.Println(charts.Bars(a.Totals, c.Width, 0))
	ctx.Println()
	ctx.Println(charts.TitleStyle.Render("Recent section scores"))
	ctx.Printf("%-6s %6s %6s %6s\n", "Mock", "VARC", "LRDI", "QA")
	ctx.Println(strings.Repeat("-", 27))
	for _, p := range a.Sections {
		ctx.Printf("%-6s %6s %6s %6s\n", p.Label, num(p.VARC), num(p.LRDI), num(p.QA))
	}
	return nil
}

func num(v float64) string {
	return fmt.Sprintf("%g", v)
}
