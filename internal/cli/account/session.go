package account

import (
	"time"

	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/session"
)

type LoginCmd struct {
	Email    string `short:"e" help:"Account email."`
	Password string `short:"p" help:"Account password. Prompted for when omitted." env:"PREPTRACK_PASSWORD"`
}

func (c *LoginCmd) Run(ctx *cli.Context) error {
	if err := ctx.PromptText("Email", &c.Email); err != nil {
		return err
	}
	if err := ctx.PromptSecret("Password", &c.Password); err != nil {
		return err
	}

	u, err := auth.NewService(ctx.Client.Auth, ctx.Auth).SignIn(ctx.Base, c.Email, c.Password)
	if err != nil {
		return cli.Fail(err, "Authorization failed")
	}
	ctx.Printf("✓ Signed in as %s (%s)\n", u.Name, u.Email)
	return nil
}

type RegisterCmd struct {
	Name     string `short:"n" help:"Display name."`
	Email    string `short:"e" help:"Account email."`
	Password string `short:"p" help:"Account password. Prompted for when omitted." env:"PREPTRACK_PASSWORD"`
}

func (c *RegisterCmd) Run(ctx *cli.Context) error {
	if err := ctx.PromptText("Name", &c.Name); err != nil {
		return err
	}
	if err := ctx.PromptText("Email", &c.Email); err != nil {
		return err
	}
	if err := ctx.PromptSecret("Password", &c.Password); err != nil {
		return err
	}

	u, err := auth.NewService(ctx.Client.Auth, ctx.Auth).SignUp(ctx.Base, c.Name, c.Email, c.Password)
	if err != nil {
		return cli.Fail(err, "Registration failed")
	}
	ctx.Printf("✓ Account created for %s (%s)\n", u.Name, u.Email)
	ctx.Printf("  Password strength: %s\n", auth.PasswordStrength(c.Password))
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *cli.Context) error {
	ctx.Auth.Logout()
	ctx.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *cli.Context) error {
	u, err := ctx.RequireUser()
	if err != nil {
		return err
	}

	role := u.Role
	if role == "" {
		role = "student"
	}
	ctx.Printf("Name:          %s\n", u.Name)
	ctx.Printf("Email:         %s\n", u.Email)
	ctx.Printf("Role:          %s\n", role)
	if !u.CreatedAt.IsZero() {
		ctx.Printf("Member since:  %s\n", u.CreatedAt.Format("January 2006"))
	}
	ctx.Printf("Notifications: %s\n", onOff(u.NotificationsEnabled))

	token, err := ctx.Sessions.Token()
	if err != nil || token == "" {
		return nil
	}
	if info, err := session.InspectToken(token); err == nil && !info.ExpiresAt.IsZero() {
		ctx.Printf("Session until: %s\n", info.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
