package sqlite

import (
	"fmt"

	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/storage"
)

func (s *Store) GetSettings() (models.WorkSettings, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings")
	if err != nil {
		return models.WorkSettings{}, fmt.Errorf("failed to read settings: %w", err)
	}
	defer rows.Close()

	kv := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.WorkSettings{}, err
		}
		kv[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.WorkSettings{}, err
	}

	return storage.DecodeSettings(kv)
}

// SaveSettings replaces the stored record in a single transaction.
func (s *Store) SaveSettings(ws models.WorkSettings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM settings"); err != nil {
		return fmt.Errorf("failed to clear settings: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO settings (key, value) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()

	for key, value := range storage.EncodeSettings(ws) {
		if _, err := stmt.Exec(key, value); err != nil {
			return fmt.Errorf("failed to write %s: %w", key, err)
		}
	}

	return tx.Commit()
}
