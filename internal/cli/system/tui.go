package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/lockfile"
	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	lock, err := c.prepare(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("Failed to release TUI lock", "error", err)
		}
	}()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Slot, ctx.Poems), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui exited with an error: %w", err)
	}
	return nil
}

// prepare takes the single-instance lock and loads the session. On first run
// the store is created so the model can open the settings form.
func (c *TuiCmd) prepare(ctx *cli.Context) (*lockfile.Lock, error) {
	lock, err := lockfile.Acquire(ctx.ResolveConfigDir())
	if err != nil {
		return nil, err
	}

	if err := ctx.EnsureSession(); err != nil {
		if relErr := lock.Release(); relErr != nil {
			logger.Warn("Failed to release TUI lock", "error", relErr)
		}
		return nil, err
	}

	ctx.PerformAutomaticBackup()
	return lock, nil
}
