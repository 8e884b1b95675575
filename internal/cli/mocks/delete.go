package mocks

import (
	"fmt"

	"github.com/julianstephens/preptrack/internal/cli"
)

type MockDeleteCmd struct {
	ID  string `arg:"" help:"Mock ID to delete."`
	Yes bool   `short:"y" help:"Do not ask for confirmation."`
}

func (c *MockDeleteCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	// Check the mock exists first so the prompt can name it
	m, err := ctx.Client.Mocks.Get(ctx.Base, c.ID)
	if err != nil {
		return cli.Fail(err, "Mock not found")
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete mock %q?", m.Name), c.Yes); err != nil {
		return err
	}

	if err := ctx.Client.Mocks.Delete(ctx.Base, c.ID); err != nil {
		return cli.Fail(err, "Failed to delete mock")
	}
	ctx.Printf("Deleted mock: %s (ID: %s)\n", m.Name, c.ID)
	return nil
}
