package notifications

import (
	"path/filepath"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/notifier"
	"github.com/julianstephens/preptrack/internal/notify"
)

type WatchCmd struct {
	Schedule string `help:"Cron schedule for polling (default: every poll interval)."`
	Webhook  string `help:"Also POST each new notification to this URL." env:"PREPTRACK_WEBHOOK_URL"`
	Secret   string `help:"Shared secret sent with webhook calls." env:"PREPTRACK_WEBHOOK_SECRET"`
	Once     bool   `help:"Poll once and exit."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}

	schedule := c.Schedule
	if schedule == "" {
		schedule = "@every " + ctx.Config.Notifications.PollInterval.String()
	}
	w := notify.NewWatcher(ctx.Client.Notifications, ctx.Out, schedule)
	if c.Webhook != "" {
		n, err := notifier.New(c.Webhook, c.Secret)
		if err != nil {
			return err
		}
		w.ForwardTo(n)
	}

	if c.Once {
		fresh, err := w.Poll(ctx.Base)
		if err != nil {
			return cli.Fail(err, "Failed to load notifications")
		}
		if len(fresh) == 0 {
			ctx.Println("No unread notifications.")
		}
		return nil
	}

	lock, err := notify.AcquireLock(filepath.Join(ctx.Config.Dir, constants.WatchLockfileName))
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release watch lock", "err", err)
		}
	}()

	ctx.Printf("Watching for notifications (%s). Press Ctrl+C to stop.\n", schedule)
	return w.Run(ctx.Base)
}
