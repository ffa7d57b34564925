package settings

import (
	"fmt"
	"strings"

	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/models"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	Salary        *float64 `help:"Monthly salary." placeholder:"AMOUNT" xor:"salary"`
	ClearSalary   bool     `help:"Remove the monthly salary, hiding earnings." xor:"salary"`
	WorkDays      *int     `help:"Paid work days per month." placeholder:"DAYS" xor:"days"`
	ClearWorkDays bool     `help:"Remove the work days, hiding earnings." xor:"days"`
	Start         string   `help:"Work start time (HH:MM)." placeholder:"HH:MM"`
	End           string   `help:"Work end time (HH:MM)." placeholder:"HH:MM"`
	Lunch         bool     `help:"Enable the lunch break." xor:"lunch"`
	NoLunch       bool     `help:"Disable the lunch break." xor:"lunch"`
	LunchStart    string   `help:"Lunch start time (HH:MM)." placeholder:"HH:MM"`
	LunchEnd      string   `help:"Lunch end time (HH:MM)." placeholder:"HH:MM"`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	current, loaded := ctx.Slot.Current()

	if c.List {
		printSettings(ctx, current, loaded)
		return nil
	}

	next, changed := c.apply(current)
	if !changed {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
		return nil
	}

	if err := next.Validate(); err != nil {
		return err
	}

	next = next.Stamp(ctx.Now())
	if err := ctx.Slot.Save(ctx.Store, next); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	ctx.Println("Settings updated successfully.")
	return nil
}

// apply builds a whole new record from current plus the given flags.
func (c *SettingsCmd) apply(current models.WorkSettings) (models.WorkSettings, bool) {
	next := current.Clone()
	changed := false

	set := func(dst *string, v string) {
		if v != "" {
			*dst = strings.TrimSpace(v)
			changed = true
		}
	}
	set(&next.WorkStart, c.Start)
	set(&next.WorkEnd, c.End)
	set(&next.LunchStart, c.LunchStart)
	set(&next.LunchEnd, c.LunchEnd)

	switch {
	case c.Salary != nil:
		next.MonthlySalary = models.Float(*c.Salary)
		changed = true
	case c.ClearSalary:
		next.MonthlySalary = nil
		changed = true
	}

	switch {
	case c.WorkDays != nil:
		next.WorkDays = models.Int(*c.WorkDays)
		changed = true
	case c.ClearWorkDays:
		next.WorkDays = nil
		changed = true
	}

	switch {
	case c.Lunch:
		next.HasLunchBreak = true
		changed = true
	case c.NoLunch:
		next.HasLunchBreak = false
		changed = true
	case c.LunchStart != "" || c.LunchEnd != "":
		// Giving lunch times implies the break is on.
		next.HasLunchBreak = true
	}

	return next, changed
}

func printSettings(ctx *cli.Context, ws models.WorkSettings, loaded bool) {
	if !loaded {
		ctx.Println("No work schedule configured yet.")
		ctx.Println("Set one with: wagebar settings --start 09:00 --end 18:00")
		return
	}

	ctx.Println("Current Settings:")
	ctx.Printf("  Work Start:      %s\n", orDash(ws.WorkStart))
	ctx.Printf("  Work End:        %s\n", orDash(ws.WorkEnd))
	ctx.Printf("  Monthly Salary:  %s\n", formatSalary(ws.MonthlySalary))
	ctx.Printf("  Work Days:       %s\n", formatDays(ws.WorkDays))
	ctx.Printf("  Lunch Break:     %v\n", ws.HasLunchBreak)
	if ws.HasLunchBreak {
		ctx.Printf("  Lunch:           %s - %s\n", orDash(ws.LunchStart), orDash(ws.LunchEnd))
	}
	if !ws.UpdatedAt.IsZero() {
		ctx.Printf("\n  Updated:         %s (revision %s)\n", ws.UpdatedAt.Local().Format(constants.ClockFormat), ws.Revision)
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func formatSalary(v *float64) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *v)
}

func formatDays(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *v)
}
