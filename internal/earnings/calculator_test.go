package earnings

import (
	"math"
	"testing"
	"time"

	"github.com/julianstephens/wagebar/internal/models"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, 3, 15, hour, minute, 0, 0, time.Local)
}

func standardDay() models.WorkSettings {
	return models.WorkSettings{
		MonthlySalary: models.Float(10000),
		WorkDays:      models.Int(22),
		WorkStart:     "09:00",
		WorkEnd:       "18:00",
	}
}

func withLunch(s models.WorkSettings) models.WorkSettings {
	s.HasLunchBreak = true
	s.LunchStart = "12:00"
	s.LunchEnd = "13:00"
	return s
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestComputeWorkedExample(t *testing.T) {
	r := Compute(standardDay(), at(13, 30))

	if !r.Configured {
		t.Fatal("expected configured result")
	}
	if r.Phase != PhaseWorking {
		t.Errorf("Phase = %v, want %v", r.Phase, PhaseWorking)
	}
	if r.TotalWorkTime != 9*time.Hour {
		t.Errorf("TotalWorkTime = %v, want 9h", r.TotalWorkTime)
	}
	if r.Elapsed != 4*time.Hour+30*time.Minute {
		t.Errorf("Elapsed = %v, want 4h30m", r.Elapsed)
	}
	if !approx(r.Progress, 50) {
		t.Errorf("Progress = %v, want 50", r.Progress)
	}
	if !r.HasEarnings {
		t.Fatal("expected earnings to be computed")
	}
	if got := Round2(r.HourlyRate); got != 50.51 {
		t.Errorf("HourlyRate = %.2f, want 50.51", got)
	}
	if got := Round2(r.EarnedToday); got != 227.27 {
		t.Errorf("EarnedToday = %.2f, want 227.27", got)
	}
}

func TestComputeNotConfigured(t *testing.T) {
	tests := []struct {
		name     string
		settings models.WorkSettings
	}{
		{"empty", models.WorkSettings{}},
		{"missing end", models.WorkSettings{WorkStart: "09:00"}},
		{"missing start", models.WorkSettings{WorkEnd: "18:00"}},
		{"unparsable start", models.WorkSettings{WorkStart: "nine", WorkEnd: "18:00"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(tt.settings, at(10, 0))
			if r.Configured {
				t.Error("expected not configured")
			}
			if r.Phase != PhaseNotConfigured {
				t.Errorf("Phase = %v, want %v", r.Phase, PhaseNotConfigured)
			}
			if r.HasEarnings {
				t.Error("expected no earnings")
			}
		})
	}
}

func TestComputeBeforeWork(t *testing.T) {
	r := Compute(standardDay(), at(7, 15))

	if r.Phase != PhaseBeforeWork {
		t.Errorf("Phase = %v, want %v", r.Phase, PhaseBeforeWork)
	}
	if r.Progress != 0 {
		t.Errorf("Progress = %v, want 0", r.Progress)
	}
	if r.Elapsed != 0 {
		t.Errorf("Elapsed = %v, want 0", r.Elapsed)
	}
	if !r.HasEarnings || r.EarnedToday != 0 {
		t.Errorf("EarnedToday = %v (has=%v), want 0", r.EarnedToday, r.HasEarnings)
	}
}

func TestComputeAfterWork(t *testing.T) {
	s := standardDay()
	r := Compute(s, at(19, 0))
	later := Compute(s, at(23, 59))

	if r.Phase != PhaseAfterWork {
		t.Errorf("Phase = %v, want %v", r.Phase, PhaseAfterWork)
	}
	if r.Progress != 100 {
		t.Errorf("Progress = %v, want 100", r.Progress)
	}
	if r.Elapsed != r.TotalWorkTime {
		t.Errorf("Elapsed = %v, want clamped to %v", r.Elapsed, r.TotalWorkTime)
	}

	fullDay := 10000.0 / 22
	if !approx(r.EarnedToday, fullDay) {
		t.Errorf("EarnedToday = %v, want full day %v", r.EarnedToday, fullDay)
	}
	if later.EarnedToday != r.EarnedToday {
		t.Errorf("earnings kept growing after work: %v -> %v", r.EarnedToday, later.EarnedToday)
	}
}

func TestComputeBoundaries(t *testing.T) {
	s := standardDay()

	atStart := Compute(s, at(9, 0))
	if atStart.Phase != PhaseWorking || atStart.Progress != 0 {
		t.Errorf("at start: phase=%v progress=%v, want working/0", atStart.Phase, atStart.Progress)
	}

	atEnd := Compute(s, at(18, 0))
	if atEnd.Phase != PhaseWorking || !approx(atEnd.Progress, 100) {
		t.Errorf("at end: phase=%v progress=%v, want working/100", atEnd.Phase, atEnd.Progress)
	}
}

func TestComputeLunchBreak(t *testing.T) {
	s := withLunch(standardDay())

	tests := []struct {
		name         string
		now          time.Time
		wantPhase    Phase
		wantElapsed  time.Duration
		wantProgress float64
	}{
		{"morning", at(10, 0), PhaseWorking, 1 * time.Hour, 12.5},
		{"lunch starts", at(12, 0), PhaseWorking, 3 * time.Hour, 37.5},
		{"mid lunch", at(12, 30), PhaseLunch, 3 * time.Hour, 37.5},
		{"lunch ends", at(13, 0), PhaseWorking, 3 * time.Hour, 37.5},
		{"afternoon", at(14, 0), PhaseWorking, 4 * time.Hour, 50},
		{"after work", at(18, 30), PhaseAfterWork, 8 * time.Hour, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Compute(s, tt.now)
			if r.TotalWorkTime != 8*time.Hour {
				t.Errorf("TotalWorkTime = %v, want 8h regardless of now", r.TotalWorkTime)
			}
			if r.Phase != tt.wantPhase {
				t.Errorf("Phase = %v, want %v", r.Phase, tt.wantPhase)
			}
			if r.Elapsed != tt.wantElapsed {
				t.Errorf("Elapsed = %v, want %v", r.Elapsed, tt.wantElapsed)
			}
			if !approx(r.Progress, tt.wantProgress) {
				t.Errorf("Progress = %v, want %v", r.Progress, tt.wantProgress)
			}
		})
	}
}

func TestComputeLunchIgnoredWhenIncomplete(t *testing.T) {
	s := standardDay()
	s.HasLunchBreak = true
	s.LunchStart = "12:00"

	r := Compute(s, at(13, 30))
	if r.TotalWorkTime != 9*time.Hour {
		t.Errorf("TotalWorkTime = %v, want 9h when lunch end is missing", r.TotalWorkTime)
	}

	s = withLunch(standardDay())
	s.HasLunchBreak = false
	r = Compute(s, at(13, 30))
	if r.TotalWorkTime != 9*time.Hour {
		t.Errorf("TotalWorkTime = %v, want 9h when lunch is disabled", r.TotalWorkTime)
	}
}

func TestComputeProgressMonotonic(t *testing.T) {
	for _, s := range []models.WorkSettings{standardDay(), withLunch(standardDay())} {
		prev := -1.0
		prevEarned := -1.0
		for now := at(8, 0); now.Before(at(19, 0)); now = now.Add(time.Minute) {
			r := Compute(s, now)
			if r.Progress < prev {
				t.Fatalf("progress decreased at %s: %v -> %v", now.Format("15:04"), prev, r.Progress)
			}
			if r.EarnedToday < prevEarned {
				t.Fatalf("earnings decreased at %s: %v -> %v", now.Format("15:04"), prevEarned, r.EarnedToday)
			}
			prev = r.Progress
			prevEarned = r.EarnedToday
		}
	}
}

func TestComputeProgressFormulaWithoutLunch(t *testing.T) {
	s := standardDay()
	start := at(9, 0)
	total := 9 * time.Hour

	for _, offset := range []time.Duration{time.Minute, 90 * time.Minute, 5*time.Hour + 17*time.Minute, 8*time.Hour + 59*time.Minute} {
		now := start.Add(offset)
		r := Compute(s, now)
		want := float64(offset) / float64(total) * 100
		if !approx(r.Progress, want) {
			t.Errorf("at %s Progress = %v, want %v", now.Format("15:04"), r.Progress, want)
		}
	}
}

func TestComputeEarningsUnset(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*models.WorkSettings)
	}{
		{"no salary", func(s *models.WorkSettings) { s.MonthlySalary = nil }},
		{"no work days", func(s *models.WorkSettings) { s.WorkDays = nil }},
		{"zero work days", func(s *models.WorkSettings) { s.WorkDays = models.Int(0) }},
		{"lunch swallows the day", func(s *models.WorkSettings) {
			s.HasLunchBreak = true
			s.LunchStart = "09:00"
			s.LunchEnd = "18:00"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := standardDay()
			tt.modify(&s)
			r := Compute(s, at(11, 0))
			if r.HasEarnings {
				t.Errorf("HasEarnings = true, want false (rate=%v earned=%v)", r.HourlyRate, r.EarnedToday)
			}
			if math.IsNaN(r.Progress) || math.IsInf(r.Progress, 0) {
				t.Errorf("Progress = %v, want a finite value", r.Progress)
			}
			if !r.Configured {
				t.Error("progress should still be computed")
			}
		})
	}
}

func TestComputeDoesNotMutateSettings(t *testing.T) {
	s := withLunch(standardDay())
	before := s.Clone()

	Compute(s, at(12, 30))

	if *s.MonthlySalary != *before.MonthlySalary || *s.WorkDays != *before.WorkDays ||
		s.WorkStart != before.WorkStart || s.LunchEnd != before.LunchEnd {
		t.Error("Compute mutated its settings argument")
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		progress float64
		want     float64
	}{
		{0, 0},
		{50, 0.5},
		{100, 1},
		{-20, 0},
		{120, 1},
	}
	for _, tt := range tests {
		if got := (Result{Progress: tt.progress}).Fraction(); !approx(got, tt.want) {
			t.Errorf("Fraction(%v) = %v, want %v", tt.progress, got, tt.want)
		}
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseLunch.String() != "lunch break" {
		t.Errorf("PhaseLunch.String() = %q", PhaseLunch.String())
	}
	if Phase(99).String() != "not configured" {
		t.Errorf("unknown phase String() = %q", Phase(99).String())
	}
}
