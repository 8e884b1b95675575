package account

import (
	"strings"

	"github.com/julianstephens/preptrack/internal/account"
	"github.com/julianstephens/preptrack/internal/cli"
)

func service(ctx *cli.Context) *account.Service {
	return account.New(ctx.Client.Auth, ctx.Auth, ctx.Toasts)
}

type ProfileUpdateCmd struct {
	Name  string `short:"n" help:"New display name. Defaults to the current one."`
	Email string `short:"e" help:"New email. Defaults to the current one."`
}

func (c *ProfileUpdateCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}
	name, email := strings.TrimSpace(c.Name), strings.TrimSpace(c.Email)
	if name == "" && email == "" {
		ctx.Println("No changes specified. Use --name or --email to update your profile.")
		return nil
	}
	if name == "" {
		name = u.Name
	}
	if email == "" {
		email = u.Email
	}

	updated, err := service(ctx).UpdateProfile(ctx.Base, name, email)
	if err := ctx.Settle(err); err != nil {
		return err
	}
	ctx.Printf("  %s <%s>\n", updated.Name, updated.Email)
	return nil
}

type PasswordCmd struct {
	Current string `help:"Current password. Prompted for when omitted."`
	New     string `name:"new" help:"New password. Prompted for when omitted."`
	Confirm string `help:"New password again. Prompted for when omitted."`
}

func (c *PasswordCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUser(); err != nil {
		return err
	}
	if err := ctx.PromptSecret("Current password", &c.Current); err != nil {
		return err
	}
	if err := ctx.PromptSecret("New password", &c.New); err != nil {
		return err
	}
	if err := ctx.PromptSecret("Confirm new password", &c.Confirm); err != nil {
		return err
	}
	return ctx.Settle(service(ctx).ChangePassword(ctx.Base, c.Current, c.New, c.Confirm))
}
