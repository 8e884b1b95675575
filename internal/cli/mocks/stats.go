package mocks

import (
	"github.com/julianstephens/preptrack/internal/api"
	"github.com/julianstephens/preptrack/internal/cli"
)

type MockStatsCmd struct {
	Limit int `short:"n" help:"Only the latest N mocks (0 for all)."`
}

func (c *MockStatsCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	s, err := ctx.Client.Mocks.Stats(ctx.Base, api.ListOptions{Limit: c.Limit})
	if err != nil {
		return cli.Fail(err, "Failed to load stats")
	}

	ctx.Printf("Mocks taken:        %d\n", s.TotalMocks)
	ctx.Printf("Average percentile: %s\n", s.AveragePercentile)
	ctx.Printf("Best percentile:    %s\n", s.HighestPercentile)
	ctx.Printf("Average total:      %s\n", s.AverageTotal)
	ctx.Println("Section averages:")
	ctx.Printf("  VARC: %s\n", s.AverageScores.VARC)
	ctx.Printf("  LRDI: %s\n", s.AverageScores.LRDI)
	ctx.Printf("  QA:   %s\n", s.AverageScores.QA)
	return nil
}
