package notifications

import (
	"fmt"
	"time"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/notify"
)

type NotificationsCmd struct {
	List    ListCmd    `cmd:"" default:"1" help:"List notifications."`
	Read    ReadCmd    `cmd:"" help:"Mark a notification read."`
	ReadAll ReadAllCmd `cmd:"" name:"read-all" help:"Mark every notification read."`
	Watch   WatchCmd   `cmd:"" help:"Print new notifications as they arrive."`
}

// bell loads the current list the same way the TUI bell does
func bell(ctx *cli.Context) (*notify.Bell, error) {
	if _, err := ctx.RequireUser(); err != nil {
		return nil, err
	}
	b := notify.NewBell(ctx.Client.Notifications, ctx.Toasts)
	if err := b.Refresh(ctx.Base); err != nil {
		return nil, cli.Fail(err, "Failed to load notifications")
	}
	return b, nil
}

type ListCmd struct {
	Unread bool `short:"u" help:"Only unread notifications."`
}

func (c *ListCmd) Run(ctx *cli.Context) error {
	b, err := bell(ctx)
	if err != nil {
		return err
	}

	items := b.Items()
	shown := 0
	for _, n := range items {
		if c.Unread && n.IsRead {
			continue
		}
		marker := " "
		if !n.IsRead {
			marker = "●"
		}
		ctx.Printf("%s %s %-24s %s\n", marker, n.Type.Icon(), n.ID, n.Title)
		ctx.Printf("    %s\n", n.Message)
		if !n.CreatedAt.IsZero() {
			ctx.Printf("    %s\n", n.CreatedAt.Local().Format(time.DateTime))
		}
		shown++
	}

	if shown == 0 {
		ctx.Println("No notifications.")
		return nil
	}
	if unread := b.Unread(); unread > 0 {
		ctx.Printf("\n%s unread\n", notify.Badge(unread))
	}
	return nil
}

type ReadCmd struct {
	ID string `arg:"" help:"Notification ID."`
}

func (c *ReadCmd) Run(ctx *cli.Context) error {
	b, err := bell(ctx)
	if err != nil {
		return err
	}

	found := false
	for _, n := range b.Items() {
		if n.ID == c.ID {
			found = true
			if n.IsRead {
				ctx.Println("Already read.")
				return nil
			}
		}
	}
	if !found {
		return fmt.Errorf("no notification with ID %s", c.ID)
	}

	if err := ctx.Settle(b.MarkRead(ctx.Base, c.ID)); err != nil {
		return err
	}
	ctx.Printf("Marked read. %d unread left.\n", b.Unread())
	return nil
}

type ReadAllCmd struct{}

func (c *ReadAllCmd) Run(ctx *cli.Context) error {
	b, err := bell(ctx)
	if err != nil {
		return err
	}
	if b.Unread() == 0 {
		ctx.Println("Nothing unread.")
		return nil
	}
	return ctx.Settle(b.MarkAllRead(ctx.Base))
}
