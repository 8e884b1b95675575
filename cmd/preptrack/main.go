package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/preptrack/internal/cli"
	"github.com/julianstephens/preptrack/internal/cli/account"
	"github.com/julianstephens/preptrack/internal/cli/daily"
	"github.com/julianstephens/preptrack/internal/cli/mentor"
	"github.com/julianstephens/preptrack/internal/cli/mocks"
	"github.com/julianstephens/preptrack/internal/cli/notifications"
	"github.com/julianstephens/preptrack/internal/cli/reports"
	"github.com/julianstephens/preptrack/internal/cli/settings"
	"github.com/julianstephens/preptrack/internal/cli/skills"
	"github.com/julianstephens/preptrack/internal/cli/system"
	"github.com/julianstephens/preptrack/internal/config"
	"github.com/julianstephens/preptrack/internal/constants"
	apperrors "github.com/julianstephens/preptrack/internal/errors"
	"github.com/julianstephens/preptrack/internal/logger"
	"github.com/julianstephens/preptrack/internal/session"
)

var CLI struct {
	Version kong.VersionFlag
	Dir     string `help:"Configuration directory." type:"path" default:"${config_dir}"`
	Config  string `help:"Config file path (defaults to config.yaml in the configuration directory)." type:"path"`
	Verbose bool   `short:"v" help:"Enable debug logging."`

	Tui      system.TuiCmd       `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Login    account.LoginCmd    `cmd:"" help:"Sign in to your account."`
	Register account.RegisterCmd `cmd:"" help:"Create a new account."`
	Logout   account.LogoutCmd   `cmd:"" help:"Sign out and forget the stored session."`
	Whoami   account.WhoamiCmd   `cmd:"" help:"Show the signed-in account."`
	Profile  struct {
		Show   account.WhoamiCmd        `cmd:"" help:"Show your profile." default:"1"`
		Update account.ProfileUpdateCmd `cmd:"" help:"Update your name or email."`
	} `cmd:"" help:"View and update your profile."`
	Password      account.PasswordCmd            `cmd:"" help:"Change your password."`
	Settings      settings.SettingsCmd           `cmd:"" help:"Manage account settings."`
	Daily         daily.DailyCmd                 `cmd:"" help:"Track daily study habits."`
	Mock          mocks.MockCmd                  `cmd:"" help:"Record and review mock test scores."`
	Skills        skills.SkillsCmd               `cmd:"" help:"Log soft-skill practice sessions."`
	Dashboard     reports.DashboardCmd           `cmd:"" help:"Show progress KPIs and recent activity."`
	Analysis      reports.AnalysisCmd            `cmd:"" help:"Show mock score trends and section breakdown."`
	Notifications notifications.NotificationsCmd `cmd:"" aliases:"notif" help:"List, read and watch notifications."`
	Chat          mentor.ChatCmd                 `cmd:"" help:"Ask the AI mentor."`
	Doctor        system.DoctorCmd               `cmd:"" help:"Run health checks and diagnostics."`
	Init          system.InitCmd                 `cmd:"" help:"Write a default configuration file."`
	Keyring       system.KeyringCmd              `cmd:"" help:"Inspect or clear the session stored in the OS keyring."`
	Debug         system.DebugCmd                `cmd:"" help:"Debug commands for troubleshooting."`
	Devserver     system.DevServerCmd            `cmd:"" hidden:"" help:"Run an in-memory development backend."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study progress tracker for aptitude test preparation"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":         constants.Version,
			"config_dir":      constants.DefaultConfigDir,
			"api_url":         constants.DefaultAPIURL,
			"daily_page_size": strconv.Itoa(constants.DailyPageSize),
			"mock_page_size":  strconv.Itoa(constants.MockPageSize),
			"skill_page_size": strconv.Itoa(constants.SoftSkillPageSize),
			"devserver_addr":  constants.DefaultDevServerAddr,
		},
	)

	cfg, err := config.Load(config.LoadOptions{Dir: CLI.Dir, File: CLI.Config})
	apperrors.Fatal(err)
	if CLI.Verbose {
		cfg.Log.Debug = true
	}
	if err := logger.Init(logger.Config{Debug: cfg.Log.Debug, ConfigDir: cfg.Dir}); err != nil {
		apperrors.Fatal(fmt.Errorf("failed to initialize logger: %w", err))
	}

	base, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sessions, err := session.Open(base, *cfg)
	apperrors.Fatal(err)
	appCtx := cli.NewContext(base, cfg, sessions)

	err = ctx.Run(appCtx)
	appCtx.Close()
	if err != nil {
		if !cli.IsReported(err) {
			fmt.Fprintln(os.Stderr, apperrors.Format(err))
		}
		os.Exit(1)
	}
}
