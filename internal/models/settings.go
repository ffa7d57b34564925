package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/wagebar/internal/utils"
)

// ErrScheduleMissing is returned when a save is attempted without both work start and end.
var ErrScheduleMissing = errors.New("work start and end times are required")

// WorkSettings is the flat record describing the user's work schedule and pay.
// It is always replaced as a whole, never partially mutated.
type WorkSettings struct {
	MonthlySalary *float64  `json:"monthly_salary,omitempty"`
	WorkDays      *int      `json:"work_days,omitempty"`
	WorkStart     string    `json:"work_start"`
	WorkEnd       string    `json:"work_end"`
	HasLunchBreak bool      `json:"has_lunch_break"`
	LunchStart    string    `json:"lunch_start,omitempty"`
	LunchEnd      string    `json:"lunch_end,omitempty"`
	Revision      string    `json:"revision,omitempty"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// IsConfigured reports whether the work window is set.
func (s WorkSettings) IsConfigured() bool {
	return s.WorkStart != "" && s.WorkEnd != ""
}

// HasEarningsInputs reports whether both salary and work days are set.
func (s WorkSettings) HasEarningsInputs() bool {
	return s.MonthlySalary != nil && s.WorkDays != nil
}

// LunchConfigured reports whether a lunch break with both bounds is enabled.
func (s WorkSettings) LunchConfigured() bool {
	return s.HasLunchBreak && s.LunchStart != "" && s.LunchEnd != ""
}

// Validate checks the record before it is saved.
// The lunch window is only format-checked; it is not compared against the work window.
func (s WorkSettings) Validate() error {
	if !s.IsConfigured() {
		return ErrScheduleMissing
	}

	start, err := utils.ParseTimeToMinutes(s.WorkStart)
	if err != nil {
		return fmt.Errorf("invalid work start %q: expected HH:MM", s.WorkStart)
	}
	end, err := utils.ParseTimeToMinutes(s.WorkEnd)
	if err != nil {
		return fmt.Errorf("invalid work end %q: expected HH:MM", s.WorkEnd)
	}
	if end <= start {
		return fmt.Errorf("work end (%s) must be after work start (%s)", s.WorkEnd, s.WorkStart)
	}

	if s.HasLunchBreak {
		if s.LunchStart != "" && !utils.ValidateTimeFormat(s.LunchStart) {
			return fmt.Errorf("invalid lunch start %q: expected HH:MM", s.LunchStart)
		}
		if s.LunchEnd != "" && !utils.ValidateTimeFormat(s.LunchEnd) {
			return fmt.Errorf("invalid lunch end %q: expected HH:MM", s.LunchEnd)
		}
	}

	if s.MonthlySalary != nil && *s.MonthlySalary < 0 {
		return fmt.Errorf("monthly salary must not be negative")
	}
	if s.WorkDays != nil && *s.WorkDays <= 0 {
		return fmt.Errorf("work days must be a positive number")
	}

	return nil
}

// Stamp returns a copy of the settings with a fresh revision and save time.
func (s WorkSettings) Stamp(now time.Time) WorkSettings {
	s.Revision = uuid.New().String()
	s.UpdatedAt = now.UTC().Truncate(time.Second)
	return s
}

// Clone returns a deep copy so callers cannot mutate a shared record through its pointers.
func (s WorkSettings) Clone() WorkSettings {
	if s.MonthlySalary != nil {
		v := *s.MonthlySalary
		s.MonthlySalary = &v
	}
	if s.WorkDays != nil {
		v := *s.WorkDays
		s.WorkDays = &v
	}
	return s
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v.
func Int(v int) *int { return &v }
