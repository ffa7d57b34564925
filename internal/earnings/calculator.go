// Package earnings computes workday progress and the money nominally earned so far.
package earnings

import (
	"math"
	"time"

	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/utils"
)

// Phase describes where now falls relative to the work window.
type Phase int

const (
	PhaseNotConfigured Phase = iota
	PhaseBeforeWork
	PhaseWorking
	PhaseLunch
	PhaseAfterWork
)

func (p Phase) String() string {
	switch p {
	case PhaseBeforeWork:
		return "before work"
	case PhaseWorking:
		return "working"
	case PhaseLunch:
		return "lunch break"
	case PhaseAfterWork:
		return "after work"
	default:
		return "not configured"
	}
}

// Result is the outcome of one recomputation.
type Result struct {
	Configured bool
	Phase      Phase

	// Progress is the percentage (0-100) of the lunch-adjusted work window elapsed.
	Progress      float64
	TotalWorkTime time.Duration
	Elapsed       time.Duration

	// HasEarnings is false when salary or work days are unset, or the rate is undefined.
	HasEarnings bool
	HourlyRate  float64
	EarnedToday float64
}

// Compute derives progress and earnings from settings as of now.
// The schedule is read as today's times in now's location.
func Compute(s models.WorkSettings, now time.Time) Result {
	if !s.IsConfigured() {
		return Result{Phase: PhaseNotConfigured}
	}

	start, err := utils.TodayAt(now, s.WorkStart)
	if err != nil {
		return Result{Phase: PhaseNotConfigured}
	}
	end, err := utils.TodayAt(now, s.WorkEnd)
	if err != nil {
		return Result{Phase: PhaseNotConfigured}
	}

	total := end.Sub(start)
	elapsed := now.Sub(start)
	inLunch := false

	if s.LunchConfigured() {
		lunchStart, errStart := utils.TodayAt(now, s.LunchStart)
		lunchEnd, errEnd := utils.TodayAt(now, s.LunchEnd)
		if errStart == nil && errEnd == nil {
			lunch := lunchEnd.Sub(lunchStart)
			switch {
			case now.After(lunchStart) && now.Before(lunchEnd):
				// Only the part of lunch already passed is unpaid so far
				elapsed -= now.Sub(lunchStart)
				inLunch = true
			case !now.Before(lunchEnd):
				elapsed -= lunch
			}
			total -= lunch
		}
	}

	r := Result{
		Configured:    true,
		TotalWorkTime: total,
	}

	switch {
	case now.Before(start):
		r.Phase = PhaseBeforeWork
	case now.After(end):
		r.Phase = PhaseAfterWork
		r.Progress = 100
		r.Elapsed = total
	default:
		r.Phase = PhaseWorking
		if inLunch {
			r.Phase = PhaseLunch
		}
		r.Elapsed = elapsed
		if total > 0 {
			r.Progress = float64(elapsed) / float64(total) * 100
		}
	}

	r.HourlyRate, r.EarnedToday, r.HasEarnings = earningsFor(s, total, r.Elapsed)
	return r
}

// earningsFor returns the hourly rate and today's earnings. ok is false when
// the inputs are missing or the monthly hours are not positive.
func earningsFor(s models.WorkSettings, total, elapsed time.Duration) (hourly, earned float64, ok bool) {
	if !s.HasEarningsInputs() {
		return 0, 0, false
	}

	monthlyWorkHours := total.Hours() * float64(*s.WorkDays)
	if total <= 0 || monthlyWorkHours <= 0 {
		return 0, 0, false
	}

	hourly = *s.MonthlySalary / monthlyWorkHours
	earned = hourly * elapsed.Hours()
	return hourly, earned, true
}

// Fraction returns progress as a value in [0, 1] for progress bars.
func (r Result) Fraction() float64 {
	return math.Max(0, math.Min(1, r.Progress/100))
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
