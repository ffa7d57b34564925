package storage

import (
	"errors"
	"net/url"
	"strings"

	"github.com/julianstephens/wagebar/internal/models"
)

var (
	// ErrNotConfigured is returned by GetSettings when no settings have been saved yet.
	ErrNotConfigured = errors.New("work settings are not configured")
	// ErrNotInitialized is returned by Load when the backing database does not exist.
	ErrNotInitialized = errors.New("storage not initialized")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.WorkSettings, error)
	SaveSettings(models.WorkSettings) error

	// Utils
	GetConfigPath() string
}

// IsPostgresURL reports whether a --config value names a PostgreSQL database.
func IsPostgresURL(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL URL carries a password.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil || u.User == nil {
		return false
	}
	_, set := u.User.Password()
	return set
}
