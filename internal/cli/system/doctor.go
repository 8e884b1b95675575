package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/preptrack/internal/auth"
	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/keyring"
	"github.com/julianstephens/preptrack/internal/session"
)

// warning marks a check result that does not fail the run
type warning struct {
	msg string
}

func (w *warning) Error() string { return w.msg }

func warn(format string, args ...any) error {
	return &warning{msg: fmt.Sprintf(format, args...)}
}

type DoctorCmd struct {
	Timeout time.Duration `help:"Timeout for the API reachability check." default:"5s"`
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, err error) bool {
		var w *warning
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", name)
			return true
		case errors.As(err, &w):
			ctx.Printf("⚠ %s: WARNING\n", name)
			ctx.Printf("   %v\n", err)
			return true
		default:
			ctx.Printf("❌ %s: FAIL\n", name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			return false
		}
	}
	skip := func(name, why string) {
		ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, why)
	}

	report("Configuration", ctx.Config.Validate())
	apiReachable := report("API reachable", checkAPIReachable(ctx, cmd.Timeout))
	report("Session storage", checkSessionStorage(ctx))
	report("OS keyring", checkKeyring())
	tokenOK := report("Session token", checkToken(ctx))
	if token, _ := ctx.Sessions.Token(); apiReachable && tokenOK && token != "" {
		report("Signed in", checkSignedIn(ctx))
	} else {
		skip("Signed in", "API or session token unavailable")
	}
	report("Clock/timezone", checkClockTimezone())

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkAPIReachable(ctx *cli.Context, timeout time.Duration) error {
	c, cancel := context.WithTimeout(ctx.Base, timeout)
	defer cancel()
	if err := ctx.Client.Health(c); err != nil {
		return fmt.Errorf("%s: %w", ctx.Client.BaseURL(), err)
	}
	return nil
}

func checkSessionStorage(ctx *cli.Context) error {
	switch s := ctx.Sessions.(type) {
	case *session.SQLiteStore:
		current, latest, err := s.SchemaVersion(ctx.Base)
		if err != nil {
			return fmt.Errorf("failed to read schema version of %s: %w", s.Path(), err)
		}
		if current != latest {
			return fmt.Errorf("schema version %d, expected %d (%s)", current, latest, s.Path())
		}
	case *session.KeyringStore, *session.MemoryStore:
	default:
		return fmt.Errorf("unknown session store %T", s)
	}
	if _, err := ctx.Sessions.Token(); err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return warn("OS keyring is not available, sessions are stored in the local sqlite database")
	}
	return nil
}

func checkToken(ctx *cli.Context) error {
	token, err := ctx.Sessions.Token()
	if err != nil {
		return err
	}
	if token == "" {
		return warn("not signed in (run 'preptrack login')")
	}
	info, err := session.InspectToken(token)
	if err != nil {
		return err
	}
	if info.Expired(time.Now()) {
		return warn("session expired at %s, sign in again", info.ExpiresAt.Local().Format(time.DateTime))
	}
	return nil
}

func checkSignedIn(ctx *cli.Context) error {
	if ctx.Auth.Init(ctx.Base) != auth.StatusAuthenticated {
		return warn("the server rejected the stored session, sign in again")
	}
	return nil
}

func checkClockTimezone() error {
	// Check if system time is reasonable
	now := time.Now()

	// Check if time is in a reasonable range (after 2020 and before 2100)
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}

	return nil
}
