package errors

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/keyring"
	"github.com/julianstephens/wagebar/internal/lockfile"
	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/storage"
	"github.com/julianstephens/wagebar/internal/storage/postgres"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Hint returns a follow-up suggestion for known failure classes, or "" when there is none.
func Hint(err error) string {
	switch {
	case err == nil:
		return ""
	case stderrors.Is(err, storage.ErrNotConfigured):
		return "Run 'wagebar settings --start HH:MM --end HH:MM' or open the TUI to configure your schedule."
	case stderrors.Is(err, storage.ErrNotInitialized):
		return "Run 'wagebar init' first."
	case stderrors.Is(err, models.ErrScheduleMissing):
		return constants.MsgScheduleRequired + "."
	case stderrors.Is(err, lockfile.ErrAlreadyRunning):
		return "Close the other wagebar window, or use 'wagebar now --watch' alongside it."
	case stderrors.Is(err, postgres.ErrEmbeddedCredentials):
		return "Store the connection string with 'wagebar keyring set' or export " + constants.EnvDBConnection + "."
	case stderrors.Is(err, keyring.ErrKeyringUnavailable):
		return "The OS keyring is unavailable; use " + constants.EnvDBConnection + " instead."
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("Command execution failed", "error", err)
	fmt.Fprintf(os.Stderr, "%s\n", Format(err))
	if hint := Hint(err); hint != "" {
		fmt.Fprintf(os.Stderr, "       %s\n", hint)
	}
	os.Exit(1)
}
