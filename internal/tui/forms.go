package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/utils"
)

// SettingsFormModel holds the raw form input before it is parsed into a record.
type SettingsFormModel struct {
	MonthlySalary string
	WorkDays      string
	WorkStart     string
	WorkEnd       string
	HasLunchBreak bool
	LunchStart    string
	LunchEnd      string
}

func newSettingsFormModel(ws models.WorkSettings) *SettingsFormModel {
	fm := &SettingsFormModel{
		WorkStart:     ws.WorkStart,
		WorkEnd:       ws.WorkEnd,
		HasLunchBreak: ws.HasLunchBreak,
		LunchStart:    ws.LunchStart,
		LunchEnd:      ws.LunchEnd,
	}
	if ws.MonthlySalary != nil {
		fm.MonthlySalary = strconv.FormatFloat(*ws.MonthlySalary, 'f', -1, 64)
	}
	if ws.WorkDays != nil {
		fm.WorkDays = strconv.Itoa(*ws.WorkDays)
	}
	return fm
}

// Settings parses the form into a whole new record. Blank salary or work days
// leave the field unset.
func (fm *SettingsFormModel) Settings() (models.WorkSettings, error) {
	ws := models.WorkSettings{
		WorkStart:     strings.TrimSpace(fm.WorkStart),
		WorkEnd:       strings.TrimSpace(fm.WorkEnd),
		HasLunchBreak: fm.HasLunchBreak,
	}

	if s := strings.TrimSpace(fm.MonthlySalary); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return models.WorkSettings{}, fmt.Errorf("invalid monthly salary %q", s)
		}
		ws.MonthlySalary = models.Float(v)
	}
	if s := strings.TrimSpace(fm.WorkDays); s != "" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return models.WorkSettings{}, fmt.Errorf("invalid work days %q", s)
		}
		ws.WorkDays = models.Int(v)
	}

	if fm.HasLunchBreak {
		ws.LunchStart = strings.TrimSpace(fm.LunchStart)
		ws.LunchEnd = strings.TrimSpace(fm.LunchEnd)
	}

	if err := ws.Validate(); err != nil {
		return models.WorkSettings{}, err
	}
	return ws, nil
}

func requiredTime(label string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New(constants.MsgScheduleRequired)
		}
		if !utils.ValidateTimeFormat(strings.TrimSpace(s)) {
			return fmt.Errorf("invalid %s, use HH:MM", label)
		}
		return nil
	}
}

func optionalTime(label string) func(string) error {
	return func(s string) error {
		if s = strings.TrimSpace(s); s != "" && !utils.ValidateTimeFormat(s) {
			return fmt.Errorf("invalid %s, use HH:MM", label)
		}
		return nil
	}
}

// NewSettingsForm builds the edit form. The lunch times group is hidden
// until the lunch break is confirmed.
func NewSettingsForm(fm *SettingsFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Monthly salary").
				Description("Leave blank to hide earnings").
				Value(&fm.MonthlySalary).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s == "" {
						return nil
					}
					v, err := strconv.ParseFloat(s, 64)
					if err != nil || v < 0 {
						return fmt.Errorf("must be a non-negative number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Work days per month").
				Value(&fm.WorkDays).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil || i <= 0 {
						return fmt.Errorf("must be a positive number")
					}
					return nil
				}),
			huh.NewInput().
				Title("Work start (HH:MM)").
				Value(&fm.WorkStart).
				Validate(requiredTime("work start")),
			huh.NewInput().
				Title("Work end (HH:MM)").
				Value(&fm.WorkEnd).
				Validate(func(s string) error {
					if err := requiredTime("work end")(s); err != nil {
						return err
					}
					start, err := utils.ParseTimeToMinutes(strings.TrimSpace(fm.WorkStart))
					if err != nil {
						return nil
					}
					end, _ := utils.ParseTimeToMinutes(strings.TrimSpace(s))
					if end <= start {
						return fmt.Errorf("work end must be after work start")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Lunch break?").
				Value(&fm.HasLunchBreak),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Lunch start (HH:MM)").
				Value(&fm.LunchStart).
				Validate(optionalTime("lunch start")),
			huh.NewInput().
				Title("Lunch end (HH:MM)").
				Value(&fm.LunchEnd).
				Validate(optionalTime("lunch end")),
		).WithHideFunc(func() bool { return !fm.HasLunchBreak }),
	).WithTheme(huh.ThemeDracula())
}
