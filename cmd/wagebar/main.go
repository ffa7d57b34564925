package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/cli/backups"
	"github.com/julianstephens/wagebar/internal/cli/board"
	"github.com/julianstephens/wagebar/internal/cli/settings"
	"github.com/julianstephens/wagebar/internal/cli/system"
	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/errors"
	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/poem"
	"github.com/julianstephens/wagebar/internal/session"
)

var CLI struct {
	Version     kong.VersionFlag
	Config      string        `help:"SQLite file path or PostgreSQL connection string. For PostgreSQL, credentials must NOT be embedded in the connection string. Use the OS keyring or WAGEBAR_DB_CONNECTION instead." type:"string" env:"WAGEBAR_CONFIG" default:"${default_config}"`
	Debug       bool          `help:"Enable debug logging to stderr." env:"WAGEBAR_DEBUG"`
	PoemURL     string        `help:"Base URL of the poem service." env:"WAGEBAR_POEM_URL" default:"${poem_url}"`
	PoemTimeout time.Duration `help:"Timeout for the poem request." env:"WAGEBAR_POEM_TIMEOUT" default:"${poem_timeout}"`

	Init     system.InitCmd       `cmd:"" help:"Initialize wagebar storage."`
	Migrate  system.MigrateCmd    `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd     `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd        `cmd:"" help:"Launch the interactive widget." default:"1"`
	Now      board.NowCmd         `cmd:"" help:"Show today's progress and earnings."`
	Poem     board.PoemCmd        `cmd:"" help:"Print a poem."`
	Settings settings.SettingsCmd `cmd:"" help:"Show or change the work schedule and salary."`
	Backup   struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring system.KeyringCmd `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
}

// selfLoading commands open the store themselves, or never need it.
var selfLoading = map[string]bool{
	"init":    true,
	"migrate": true,
	"doctor":  true,
	"tui":     true,
	"poem":    true,
	"keyring": true,
}

// firstRun commands create a missing SQLite store instead of failing, so a new
// user can configure a schedule without running init.
var firstRun = map[string]bool{
	"now":      true,
	"settings": true,
}

func preload(ctx *cli.Context, command string) error {
	switch {
	case selfLoading[command]:
		return nil
	case firstRun[command]:
		return ctx.EnsureSession()
	}
	return ctx.LoadSession()
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Workday progress and earnings widget"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":        constants.Version,
			"default_config": constants.DefaultConfigPath,
			"poem_url":       constants.DefaultPoemURL,
			"poem_timeout":   constants.DefaultPoemTimeout.String(),
		},
	)

	store, source, err := openStore(CLI.Config, CLI.Config != constants.DefaultConfigPath)
	if err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{
		Store: store,
		Slot:  session.NewSlot(),
		Poems: poem.NewClientWithBaseURL(CLI.PoemURL, CLI.PoemTimeout),
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: appCtx.ResolveConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}
	logger.Debug("Starting wagebar", "command", ctx.Command(), "store", store.GetConfigPath())
	source.log()

	if err := preload(appCtx, topCommand(ctx)); err != nil {
		errors.Fatal(err)
	}

	runErr := ctx.Run(appCtx)
	if err := store.Close(); err != nil {
		logger.Warn("Failed to close store", "error", err)
	}
	errors.Fatal(runErr)
}

func topCommand(ctx *kong.Context) string {
	fields := strings.Fields(ctx.Command())
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
