package mocks

import (
	"strconv"
	"strings"

	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/models"
)

type MockListCmd struct {
	Limit int `short:"n" help:"Maximum number of mocks." default:"${mock_page_size}"`
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (c *MockListCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	mocks, err := ctx.Client.Mocks.List(ctx.Base, api.ListOptions{Limit: c.Limit})
	if err != nil {
		return cli.Fail(err, "Failed to load mocks")
	}

	if len(mocks) == 0 {
		ctx.Println("No mocks recorded yet.")
		return nil
	}

	ctx.Printf("%-24s %-24s %-10s %-10s %-6s %-6s %-6s %-7s %-6s\n",
		"ID", "Name", "Date", "Slot", "VARC", "LRDI", "QA", "Total", "%ile")
	ctx.Println(strings.Repeat("-", 110))
	for _, m := range mocks {
		ctx.Printf("%-24s %-24s %-10s %-10s %-6s %-6s %-6s %-7s %-6s\n",
			m.ID, cli.Truncate(m.Name, 24), models.Day(m.Date), m.Slot,
			formatScore(m.Scores.VARC), formatScore(m.Scores.LRDI), formatScore(m.Scores.QA),
			formatScore(m.TotalScore()), formatScore(m.Percentile))
	}
	return nil
}

type MockShowCmd struct {
	ID string `arg:"" help:"Mock ID."`
}

func (c *MockShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	m, err := ctx.Client.Mocks.Get(ctx.Base, c.ID)
	if err != nil {
		return cli.Fail(err, "Mock not found")
	}

	ctx.Printf("%s\n", m.Name)
	ctx.Printf("  ID:         %s\n", m.ID)
	ctx.Printf("  Date:       %s (%s)\n", models.Day(m.Date), m.Slot)
	ctx.Printf("  VARC:       %s\n", formatScore(m.Scores.VARC))
	ctx.Printf("  LRDI:       %s\n", formatScore(m.Scores.LRDI))
	ctx.Printf("  QA:         %s\n", formatScore(m.Scores.QA))
	ctx.Printf("  Total:      %s\n", formatScore(m.TotalScore()))
	ctx.Printf("  Percentile: %s\n", formatScore(m.Percentile))
	ctx.Printf("  Mood:       %s\n", m.Mood.Label())
	return nil
}
