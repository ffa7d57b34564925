package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/wagebar/internal/backup"
	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/migration"
	"github.com/julianstephens/wagebar/internal/poem"
	"github.com/julianstephens/wagebar/internal/session"
	"github.com/julianstephens/wagebar/internal/storage"
	"github.com/julianstephens/wagebar/internal/storage/sqlite"
)

// Context is handed to every command's Run method.
type Context struct {
	Store storage.Provider
	Slot  *session.Slot
	Poems *poem.Client

	// ConfigDir holds logs, backups and the TUI lockfile.
	ConfigDir string

	Out   io.Writer
	In    io.Reader
	Clock func() time.Time
}

// Migratable is implemented by stores that expose their schema runner.
type Migratable interface {
	Migrator() (*migration.Runner, error)
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Now() time.Time {
	if c.Clock == nil {
		return time.Now()
	}
	return c.Clock()
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

// LoadSession loads the store and reads the saved settings into the slot.
func (c *Context) LoadSession() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	if c.Slot == nil {
		c.Slot = session.NewSlot()
	}
	return c.Slot.Reload(c.Store)
}

// EnsureSession is LoadSession for the commands a first run starts with. A
// missing SQLite file is created rather than reported, so an unconfigured user
// lands on the configure prompt instead of an error.
func (c *Context) EnsureSession() error {
	err := c.LoadSession()
	if !errors.Is(err, storage.ErrNotInitialized) || !c.IsFileStore() {
		return err
	}

	logger.Info("Creating settings store on first run", "path", c.Store.GetConfigPath())
	if err := c.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	return c.LoadSession()
}

// IsFileStore reports whether settings live in a local SQLite file, which is the
// only case where backups apply.
func (c *Context) IsFileStore() bool {
	_, ok := c.Store.(*sqlite.Store)
	return ok
}

func (c *Context) Backups() (*backup.Manager, error) {
	if !c.IsFileStore() {
		return nil, fmt.Errorf("backups are only supported for SQLite storage")
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// ResolveConfigDir falls back to the directory of the SQLite file.
func (c *Context) ResolveConfigDir() string {
	if c.ConfigDir != "" {
		return c.ConfigDir
	}
	if c.IsFileStore() {
		return filepath.Dir(c.Store.GetConfigPath())
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}
	return filepath.Join(dir, "wagebar")
}

// PerformAutomaticBackup creates a backup and only logs on failure.
func (c *Context) PerformAutomaticBackup() {
	mgr, err := c.Backups()
	if err != nil {
		logger.Debug("Skipping automatic backup", "reason", err)
		return
	}
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}
