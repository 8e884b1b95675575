package mocks

import (
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type MockCmd struct {
	Add    MockAddCmd    `cmd:"" help:"Record a mock exam."`
	Edit   MockEditCmd   `cmd:"" help:"Edit a recorded mock."`
	List   MockListCmd   `cmd:"" help:"List recorded mocks."`
	Show   MockShowCmd   `cmd:"" help:"Show one mock."`
	Delete MockDeleteCmd `cmd:"" help:"Delete a mock."`
	Stats  MockStatsCmd  `cmd:"" help:"Show averages across mocks."`
}

type MockAddCmd struct {
	Name       string `arg:"" help:"Mock name, e.g. 'SIMCAT 4'."`
	Date       string `short:"d" help:"Date taken (YYYY-MM-DD, default: today)."`
	Slot       string `short:"s" help:"Slot (morning|afternoon|evening|night)." default:"morning"`
	VARC       string `name:"varc" help:"VARC score." required:""`
	LRDI       string `name:"lrdi" help:"LRDI score." required:""`
	QA         string `name:"qa" help:"QA score." required:""`
	Percentile string `short:"p" help:"Overall percentile (0-100)." required:""`
	Mood       string `short:"m" help:"Mood after the mock."`
}

func (c *MockAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	form := tracker.NewMockForm()
	form.Name = c.Name
	if c.Date != "" {
		form.Date = c.Date
	}
	if c.Slot != "" {
		form.Slot = c.Slot
	}
	form.VARC, form.LRDI, form.QA = c.VARC, c.LRDI, c.QA
	form.Percentile = c.Percentile
	form.Mood = c.Mood

	if err := form.Validate(); err != nil {
		return err
	}
	m, err := ctx.Client.Mocks.Create(ctx.Base, form.Record())
	if err != nil {
		return cli.Fail(err, "Failed to save mock")
	}

	ctx.Printf("Added mock: %s (ID: %s)\n", m.Name, m.ID)
	ctx.Printf("  Total %s, %s percentile\n", formatScore(m.TotalScore()), formatScore(m.Percentile))
	return nil
}
