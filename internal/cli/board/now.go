// Package board holds the non-interactive dashboard commands.
package board

import (
	"context"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"github.com/julianstephens/wagebar/internal/cli"
	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/display"
	"github.com/julianstephens/wagebar/internal/earnings"
	"github.com/julianstephens/wagebar/internal/poem"
)

const clearScreen = "\033[H\033[2J"

type NowCmd struct {
	Watch  bool `short:"w" help:"Refresh every second until interrupted."`
	NoPoem bool `help:"Do not fetch a poem."`
}

func (c *NowCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var quote *poem.Poem
	if !c.NoPoem && ctx.Poems != nil {
		p := ctx.Poems.FetchOrFallback(sigCtx)
		quote = &p
	}

	if !c.Watch {
		writeFrame(ctx.Stdout(), ctx, ctx.Now(), quote)
		return nil
	}
	return watch(sigCtx, ctx, quote, constants.RefreshInterval)
}

// watch redraws until runCtx is cancelled. The slot is read on every tick so
// a save from another command in this process shows up immediately.
func watch(runCtx context.Context, ctx *cli.Context, quote *poem.Poem, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	out := ctx.Stdout()
	redraw := func() {
		io.WriteString(out, clearScreen)
		writeFrame(out, ctx, ctx.Now(), quote)
	}

	redraw()
	for {
		select {
		case <-runCtx.Done():
			return nil
		case <-ticker.C:
			redraw()
		}
	}
}

func writeFrame(w io.Writer, ctx *cli.Context, now time.Time, quote *poem.Poem) {
	ws, _ := ctx.Slot.Current()
	frame := display.Frame{Now: now, Result: earnings.Compute(ws, now)}

	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(40))
	var clock, barView, percentage, earned, hourly string

	display.Fields{
		CurrentTime: func(s string) { clock = s },
		Bar:         func(f float64) { barView = bar.ViewAs(f) },
		Percentage:  func(s string) { percentage = s },
		Earnings:    func(s string) { earned = s },
		HourlyRate:  func(s string) { hourly = s },
	}.Display(frame)

	var b strings.Builder
	line := func(s string) {
		if s != "" {
			b.WriteString(s)
			b.WriteByte('\n')
		}
	}

	line(clock)
	line(barView + " " + percentage)
	line(earned)
	line(hourly)
	if frame.Result.Configured {
		line("Status: " + frame.Result.Phase.String())
	}

	if quote != nil {
		b.WriteByte('\n')
		display.PoemFields{Text: line, Author: line}.Show(*quote)
	}

	io.WriteString(w, b.String())
}
