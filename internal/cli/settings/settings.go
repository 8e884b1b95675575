package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/preptrack/internal/account"
	"github.com/julianstephens/preptrack/internal/cli"
)

type SettingsCmd struct {
	Notifications NotificationsCmd `cmd:"" help:"Show or change email notifications."`
}

type NotificationsCmd struct {
	State string `arg:"" optional:"" help:"on or off. Omit to show the current value."`
}

func parseState(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid state %q (expected on or off)", s)
}

func (c *NotificationsCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	if c.State == "" {
		ctx.Println("Current Settings:")
		if u.NotificationsEnabled {
			ctx.Println("  Notifications Enabled: true")
		} else {
			ctx.Println("  Notifications Enabled: false")
		}
		return nil
	}

	enabled, err := parseState(c.State)
	if err != nil {
		return err
	}
	if enabled == u.NotificationsEnabled {
		ctx.Println("No changes specified. Notifications are already set that way.")
		return nil
	}

	svc := account.New(ctx.Client.Auth, ctx.Auth, ctx.Toasts)
	_, err = svc.SetNotifications(ctx.Base, enabled)
	return ctx.Settle(err)
}
