package system

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/storage"
)

type DoctorCmd struct{}

type severity int

const (
	fatal severity = iota
	warning
)

type check struct {
	name     string
	needsDB  bool
	severity severity
	run      func(*cli.Context) error
}

var checks = []check{
	{"Database reachable", false, fatal, checkDBReachable},
	{"Schema version", true, fatal, checkSchemaVersion},
	{"Migrations complete", true, fatal, checkMigrationsComplete},
	{"Settings configured", true, warning, checkSettingsConfigured},
	{"Settings valid", true, fatal, checkSettingsValid},
	{"Backups present", false, warning, checkBackupsPresent},
	{"Clock", false, fatal, checkClock},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	failed := false
	dbReachable := false

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}

		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.severity == warning:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			failed = true
		}

		if c.name == "Database reachable" {
			dbReachable = err == nil
		}
	}

	ctx.Println()
	if failed {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migratable)
	if !ok {
		return nil
	}
	runner, err := m.Migrator()
	if err != nil {
		return err
	}
	return runner.ValidateVersion()
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(cli.Migratable)
	if !ok {
		return nil
	}
	runner, err := m.Migrator()
	if err != nil {
		return err
	}
	status, err := runner.Status()
	if err != nil {
		return err
	}
	if n := status.Pending(); n > 0 {
		return fmt.Errorf("%d pending migration(s) (current %d, latest %d) - run 'wagebar migrate'", n, status.Current, status.Latest)
	}
	return nil
}

func checkSettingsConfigured(ctx *cli.Context) error {
	ws, err := ctx.Store.GetSettings()
	if errors.Is(err, storage.ErrNotConfigured) {
		return fmt.Errorf("no work schedule saved yet - run 'wagebar settings --start HH:MM --end HH:MM'")
	}
	if err != nil {
		return err
	}
	if !ws.HasEarningsInputs() {
		return fmt.Errorf("monthly salary or work days not set - earnings will not be shown")
	}
	return nil
}

func checkSettingsValid(ctx *cli.Context) error {
	ws, err := ctx.Store.GetSettings()
	if errors.Is(err, storage.ErrNotConfigured) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	return ws.Validate()
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.Backups()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'wagebar backup create'")
	}
	return nil
}

func checkClock(ctx *cli.Context) error {
	now := ctx.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
