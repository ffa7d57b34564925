package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/wagebar/internal/cli"
)

type InitCmd struct {
	Force bool `help:"Delete the existing SQLite database before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if !ctx.IsFileStore() {
			return fmt.Errorf("--force is only supported for SQLite storage")
		}
		if err := removeDatabase(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized wagebar storage at: %s\n", ctx.Store.GetConfigPath())
	ctx.Println("Next: set your schedule with 'wagebar settings --start 09:00 --end 18:00' or run 'wagebar'.")
	return nil
}

func removeDatabase(ctx *cli.Context) error {
	dbPath := ctx.Store.GetConfigPath()

	_, err := os.Stat(dbPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing database: %w", err)
	}

	// Close first so the file is not held open while it is removed.
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing database: %w", err)
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete existing database: %w", err)
	}
	ctx.Printf("Deleted existing database at: %s\n", dbPath)
	return nil
}
