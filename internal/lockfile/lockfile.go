// Package lockfile keeps a single interactive wagebar session per config directory.
package lockfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	ps "github.com/mitchellh/go-ps"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/logger"
)

var ErrAlreadyRunning = errors.New("another wagebar session is already running")

var (
	findProcessFunc = ps.FindProcess
	getpidFunc      = os.Getpid
)

// Lock is a held lockfile. Release removes it.
type Lock struct {
	path string
}

// Acquire writes the lockfile in dir. An existing lock is honoured only while its
// pid still belongs to a running wagebar process; anything else is treated as stale.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create lock directory: %w", err)
	}
	path := filepath.Join(dir, constants.TUILockfileName)

	if pid, ok := readPID(path); ok && pid != getpidFunc() && isWagebar(pid) {
		return nil, fmt.Errorf("%w (pid %d)", ErrAlreadyRunning, pid)
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(getpidFunc())+"\n"), 0600); err != nil {
		return nil, fmt.Errorf("failed to write lockfile: %w", err)
	}

	logger.Debug("Acquired TUI lock", "path", path)
	return &Lock{path: path}, nil
}

// Release removes the lockfile if it still names this process.
func (l *Lock) Release() error {
	if l == nil {
		return nil
	}
	if pid, ok := readPID(l.path); ok && pid != getpidFunc() {
		return nil
	}
	if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove lockfile: %w", err)
	}
	return nil
}

func (l *Lock) Path() string {
	return l.path
}

func readPID(path string) (int, bool) {
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(content)))
	if err != nil || pid <= 0 {
		logger.Warn("Ignoring malformed lockfile", "path", path)
		return 0, false
	}
	return pid, true
}

func isWagebar(pid int) bool {
	process, err := findProcessFunc(pid)
	if err != nil || process == nil {
		return false
	}
	return strings.HasPrefix(process.Executable(), constants.AppName)
}
