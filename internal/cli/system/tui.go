package system

import (
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/tui"
)

type TuiCmd struct {
	Page string `arg:"" optional:"" help:"Page to open, e.g. dashboard or mock-tracker." default:"/dashboard"`
}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// the TUI owns the terminal, keep log output in the file only
	if err := logger.Init(logger.Config{Debug: ctx.Config.Log.Debug, ConfigDir: ctx.Config.Dir, Quiet: true}); err != nil {
		return err
	}

	return tui.Run(ctx.Base, tui.Deps{
		Client:       ctx.Client,
		Auth:         ctx.Auth,
		Toasts:       ctx.Toasts,
		PollInterval: ctx.Config.Notifications.PollInterval,
	}, c.Page)
}
