// Package display turns a computed frame into text for whichever output sinks exist.
package display

import (
	"fmt"
	"time"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/earnings"
	"github.com/julianstephens/wagebar/internal/poem"
	"github.com/julianstephens/wagebar/internal/utils"
)

// Frame is one refresh: the clock reading and what was computed from it.
type Frame struct {
	Now    time.Time
	Result earnings.Result
}

type Displayer interface {
	Display(Frame)
}

// Fields routes a frame to optional sinks. A nil sink is skipped.
type Fields struct {
	Bar         func(fraction float64)
	Percentage  func(string)
	Earnings    func(string)
	HourlyRate  func(string)
	CurrentTime func(string)
}

func (f Fields) Display(frame Frame) {
	r := frame.Result

	if f.CurrentTime != nil {
		f.CurrentTime(CurrentTimeText(frame.Now))
	}
	if f.Bar != nil {
		f.Bar(r.Fraction())
	}
	if f.Percentage != nil {
		f.Percentage(PercentageText(r))
	}
	if f.Earnings != nil {
		f.Earnings(EarningsText(r))
	}
	if f.HourlyRate != nil {
		f.HourlyRate(HourlyRateText(r))
	}
}

func PercentageText(r earnings.Result) string {
	switch r.Phase {
	case earnings.PhaseNotConfigured, earnings.PhaseBeforeWork:
		return "0%"
	case earnings.PhaseAfterWork:
		return "100%"
	}
	return fmt.Sprintf("%.2f%%", r.Progress)
}

func EarningsText(r earnings.Result) string {
	switch {
	case !r.Configured:
		return constants.MsgConfigureSchedule
	case !r.HasEarnings:
		return constants.MsgSetSalary
	}
	return fmt.Sprintf("Earned today: %s%.2f", constants.CurrencySymbol, earnings.Round2(r.EarnedToday))
}

// HourlyRateText is empty whenever there is no rate to show.
func HourlyRateText(r earnings.Result) string {
	if !r.Configured || !r.HasEarnings {
		return ""
	}
	return fmt.Sprintf("Hourly rate: %s%.2f/hour", constants.CurrencySymbol, earnings.Round2(r.HourlyRate))
}

func CurrentTimeText(now time.Time) string {
	return "Current time: " + utils.FormatClock(now)
}

// PoemFields renders a poem the same guarded way as Fields.
type PoemFields struct {
	Text   func(string)
	Author func(string)
}

func (f PoemFields) Show(p poem.Poem) {
	if f.Text != nil {
		f.Text(p.Content)
	}
	if f.Author != nil {
		f.Author(p.AuthorLine())
	}
}
