// Package session holds the settings record shared by the timer, render and save paths.
package session

import (
	"errors"
	"sync"

	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/storage"
)

// Slot is the exclusive "current settings" cell. Saves replace the whole
// record; readers always receive a copy.
type Slot struct {
	mu      sync.RWMutex
	current models.WorkSettings
	loaded  bool
}

// NewSlot returns an empty slot.
func NewSlot() *Slot {
	return &Slot{}
}

// Current returns a copy of the settings and whether any have been loaded or saved.
func (s *Slot) Current() (models.WorkSettings, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current.Clone(), s.loaded
}

// Replace swaps in a new record. Readers poll Current on every refresh, so no
// notification is needed.
func (s *Slot) Replace(ws models.WorkSettings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = ws.Clone()
	s.loaded = true
}

// Loader is the part of the store the slot reads from.
type Loader interface {
	GetSettings() (models.WorkSettings, error)
}

// Reload reads the persisted settings into the slot. A store with nothing
// saved leaves the slot empty and is not an error.
func (s *Slot) Reload(store Loader) error {
	ws, err := store.GetSettings()
	if err != nil {
		if errors.Is(err, storage.ErrNotConfigured) {
			logger.Debug("No saved settings found")
			return nil
		}
		return err
	}
	s.Replace(ws)
	return nil
}

// Saver is the part of the store used to persist a new record.
type Saver interface {
	SaveSettings(models.WorkSettings) error
}

// Save persists ws and, only on success, swaps it into the slot.
func (s *Slot) Save(store Saver, ws models.WorkSettings) error {
	if err := store.SaveSettings(ws); err != nil {
		return err
	}
	s.Replace(ws)
	logger.Info("Settings saved", "revision", ws.Revision)
	return nil
}
