package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/keyring"
	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/storage"
	"github.com/julianstephens/wagebar/internal/storage/postgres"
	"github.com/julianstephens/wagebar/internal/storage/sqlite"
	"github.com/julianstephens/wagebar/internal/utils"
)

const sourceConfig = "--config"

// storeSource records how the backend was chosen. The store is picked before
// the logger exists, so this is logged once logging is up.
type storeSource struct {
	Name        string
	HasPassword bool
	LookupErr   error
}

func (s storeSource) log() {
	if s.LookupErr != nil {
		logger.Debug("Keyring lookup failed", "error", s.LookupErr)
	}
	if s.Name == "" {
		return
	}
	logger.Debug("Using PostgreSQL store", "source", s.Name)
	if s.HasPassword {
		logger.Warn("PostgreSQL connection string carries a password; prefer .pgpass or a passwordless role", "source", s.Name)
	}
}

// openStore picks the backend for a --config value. A postgres URL given on the
// command line must not carry a password. When --config is left at its default,
// a connection string from the environment or the OS keyring wins over SQLite.
func openStore(config string, explicit bool) (storage.Provider, storeSource, error) {
	if storage.IsPostgresURL(config) {
		if storage.HasEmbeddedCredentials(config) {
			return nil, storeSource{}, postgres.ErrEmbeddedCredentials
		}
		if err := postgres.ValidateConnString(config); err != nil {
			return nil, storeSource{}, err
		}
		return postgres.New(config), storeSource{Name: sourceConfig}, nil
	}

	var src storeSource
	if !explicit {
		connStr, name, lookupErr := lookupConnString()
		src.LookupErr = lookupErr
		if connStr != "" {
			err := postgres.ValidateConnString(connStr)
			if err != nil && !errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, src, fmt.Errorf("connection string from %s: %w", name, err)
			}
			src.Name = name
			src.HasPassword = err != nil
			return postgres.New(connStr), src, nil
		}
	}

	return sqlite.NewStore(utils.ExpandPath(config)), src, nil
}

// lookupConnString checks the environment, then the keyring. A missing keyring
// entry is not an error.
func lookupConnString() (connStr, source string, err error) {
	if v := os.Getenv(constants.EnvDBConnection); v != "" {
		return v, constants.EnvDBConnection, nil
	}

	v, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		return v, "keyring", nil
	case errors.Is(err, keyring.ErrNotFound):
		return "", "", nil
	}
	return "", "", err
}
