// Package dashboard renders the live progress and earnings view.
package dashboard

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/display"
	"github.com/julianstephens/wagebar/internal/earnings"
	"github.com/julianstephens/wagebar/internal/poem"
	"github.com/julianstephens/wagebar/internal/session"
)

const maxBarWidth = 60

var (
	clockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	percentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	earningsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	rateStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Italic(true)

	poemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Italic(true).
			MarginTop(1)

	authorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// TickMsg drives the once-per-second refresh.
type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(constants.RefreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

type Model struct {
	slot     *session.Slot
	progress progress.Model
	poem     *poem.Poem
	Time     time.Time
	width    int
	height   int
}

func New(slot *session.Slot) Model {
	return Model{
		slot:     slot,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		Time:     time.Now(),
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		m.Time = time.Time(msg)
		return m, tick()
	}
	return m, nil
}

func (m *Model) SetPoem(p poem.Poem) {
	m.poem = &p
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.progress.Width = min(max(width-8, 10), maxBarWidth)
}

// Frame computes the current reading from whatever record the slot holds now.
func (m Model) Frame() display.Frame {
	ws, _ := m.slot.Current()
	return display.Frame{Now: m.Time, Result: earnings.Compute(ws, m.Time)}
}

func (m Model) View() string {
	frame := m.Frame()

	var clock, bar, percentage, earned, hourly string
	display.Fields{
		CurrentTime: func(s string) { clock = clockStyle.Render(s) },
		Bar:         func(f float64) { bar = m.progress.ViewAs(f) },
		Percentage:  func(s string) { percentage = percentStyle.Render(s) },
		Earnings: func(s string) {
			if frame.Result.HasEarnings {
				earned = earningsStyle.Render(s)
			} else {
				earned = promptStyle.Render(s)
			}
		},
		HourlyRate: func(s string) { hourly = rateStyle.Render(s) },
	}.Display(frame)

	rows := []string{
		clock,
		lipgloss.JoinHorizontal(lipgloss.Center, bar, " ", percentage),
		earned,
	}
	if hourly != "" {
		rows = append(rows, hourly)
	}
	if frame.Result.Configured {
		rows = append(rows, clockStyle.Render(frame.Result.Phase.String()))
	}

	if m.poem != nil {
		var text, author string
		display.PoemFields{
			Text:   func(s string) { text = poemStyle.Render(s) },
			Author: func(s string) { author = authorStyle.Render(s) },
		}.Show(*m.poem)
		rows = append(rows, text, author)
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
