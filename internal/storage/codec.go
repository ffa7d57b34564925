package storage

import (
	"fmt"
	"strconv"
	"time"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/models"
)

// EncodeSettings flattens a record into the key/value rows stored in the settings table.
// Unset optional fields are omitted so that a save deletes them.
func EncodeSettings(ws models.WorkSettings) map[string]string {
	kv := map[string]string{
		constants.KeyWorkStart:     ws.WorkStart,
		constants.KeyWorkEnd:       ws.WorkEnd,
		constants.KeyHasLunchBreak: strconv.FormatBool(ws.HasLunchBreak),
	}
	if ws.MonthlySalary != nil {
		kv[constants.KeyMonthlySalary] = strconv.FormatFloat(*ws.MonthlySalary, 'f', -1, 64)
	}
	if ws.WorkDays != nil {
		kv[constants.KeyWorkDays] = strconv.Itoa(*ws.WorkDays)
	}
	if ws.LunchStart != "" {
		kv[constants.KeyLunchStart] = ws.LunchStart
	}
	if ws.LunchEnd != "" {
		kv[constants.KeyLunchEnd] = ws.LunchEnd
	}
	if ws.Revision != "" {
		kv[constants.KeyRevision] = ws.Revision
	}
	if !ws.UpdatedAt.IsZero() {
		kv[constants.KeyUpdatedAt] = ws.UpdatedAt.UTC().Format(time.RFC3339)
	}
	return kv
}

// DecodeSettings rebuilds a record from settings rows. An empty map yields ErrNotConfigured.
func DecodeSettings(kv map[string]string) (models.WorkSettings, error) {
	if len(kv) == 0 {
		return models.WorkSettings{}, ErrNotConfigured
	}

	ws := models.WorkSettings{}
	for key, value := range kv {
		switch key {
		case constants.KeyMonthlySalary:
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return models.WorkSettings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			ws.MonthlySalary = &v
		case constants.KeyWorkDays:
			v, err := strconv.Atoi(value)
			if err != nil {
				return models.WorkSettings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			ws.WorkDays = &v
		case constants.KeyWorkStart:
			ws.WorkStart = value
		case constants.KeyWorkEnd:
			ws.WorkEnd = value
		case constants.KeyHasLunchBreak:
			ws.HasLunchBreak = value == "true"
		case constants.KeyLunchStart:
			ws.LunchStart = value
		case constants.KeyLunchEnd:
			ws.LunchEnd = value
		case constants.KeyRevision:
			ws.Revision = value
		case constants.KeyUpdatedAt:
			t, err := time.Parse(time.RFC3339, value)
			if err != nil {
				return models.WorkSettings{}, fmt.Errorf("parsing %s: %w", key, err)
			}
			ws.UpdatedAt = t
		}
	}

	return ws, nil
}
