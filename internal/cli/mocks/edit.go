package mocks

import (
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/tracker"
)

type MockEditCmd struct {
	ID         string  `arg:"" help:"Mock ID to edit."`
	Name       *string `help:"New name."`
	Date       *string `short:"d" help:"New date (YYYY-MM-DD)."`
	Slot       *string `short:"s" help:"New slot."`
	VARC       *string `name:"varc" help:"New VARC score."`
	LRDI       *string `name:"lrdi" help:"New LRDI score."`
	QA         *string `name:"qa" help:"New QA score."`
	Percentile *string `short:"p" help:"New percentile."`
	Mood       *string `short:"m" help:"New mood."`
}

func (c *MockEditCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	existing, err := ctx.Client.Mocks.Get(ctx.Base, c.ID)
	if err != nil {
		return cli.Fail(err, "Mock not found")
	}

	form := tracker.NewMockForm()
	form.Load(*existing)

	updated := false
	for _, f := range []struct {
		flag *string
		dst  *string
	}{
		{c.Name, &form.Name},
		{c.Date, &form.Date},
		{c.Slot, &form.Slot},
		{c.VARC, &form.VARC},
		{c.LRDI, &form.LRDI},
		{c.QA, &form.QA},
		{c.Percentile, &form.Percentile},
		{c.Mood, &form.Mood},
	} {
		if f.flag != nil {
			*f.dst = *f.flag
			updated = true
		}
	}
	if !updated {
		ctx.Println("No changes specified.")
		return nil
	}

	if err := form.Validate(); err != nil {
		return err
	}
	m, err := ctx.Client.Mocks.Update(ctx.Base, c.ID, form.Record())
	if err != nil {
		return cli.Fail(err, "Failed to save mock")
	}
	ctx.Printf("Updated mock: %s (ID: %s)\n", m.Name, c.ID)
	return nil
}
