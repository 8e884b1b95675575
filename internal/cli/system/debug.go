package system

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"time"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/constants"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/session"
)

type DebugCmd struct {
	Paths  DebugPathsCmd  `cmd:"" help:"Show config, session and log paths."`
	Config DebugConfigCmd `cmd:"" help:"Dump the effective configuration as JSON."`
	Token  DebugTokenCmd  `cmd:"" help:"Show the stored token's claims."`
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}

type DebugPathsCmd struct{}

func (cmd *DebugPathsCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"config_dir":  ctx.Config.Dir,
		"config_file": filepath.Join(ctx.Config.Dir, constants.ConfigFileName),
		"log_file":    logger.FilePath(ctx.Config.Dir),
		"lock_file":   filepath.Join(ctx.Config.Dir, constants.WatchLockfileName),
	}
	if s, ok := ctx.Sessions.(*session.SQLiteStore); ok {
		output["session_db"] = s.Path()
	}
	return printJSON(ctx, output)
}

type DebugConfigCmd struct{}

func (cmd *DebugConfigCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	return printJSON(ctx, map[string]any{
		"api_url":         cfg.API.URL,
		"api_timeout":     cfg.API.Timeout.String(),
		"session_backend": cfg.Session.Backend,
		"session_path":    cfg.Session.Path,
		"toast_ttl":       cfg.Toast.TTL.String(),
		"toast_max":       cfg.Toast.Max,
		"poll_interval":   cfg.Notifications.PollInterval.String(),
		"debug":           cfg.Log.Debug,
	})
}

type DebugTokenCmd struct{}

func (cmd *DebugTokenCmd) Run(ctx *cli.Context) error {
	token, err := ctx.Sessions.Token()
	if err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}
	if token == "" {
		return cli.ErrNotSignedIn
	}
	info, err := session.InspectToken(token)
	if err != nil {
		return err
	}

	output := map[string]any{
		"subject": info.Subject,
		"expired": info.Expired(time.Now()),
	}
	if !info.ExpiresAt.IsZero() {
		output["expires_at"] = info.ExpiresAt.UTC().Format(time.RFC3339)
	}
	return printJSON(ctx, output)
}
