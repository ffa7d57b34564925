package settings

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/models"
	"github.com/julianstephens/wagebar/internal/session"
)

const notSet = "not set"

type EditSettingsMsg struct{}

type Model struct {
	slot   *session.Slot
	width  int
	height int
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Width(18)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255")).
			Bold(true)

	sectionStyle = lipgloss.NewStyle().
			MarginBottom(1)
)

func New(slot *session.Slot) Model {
	return Model{slot: slot}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "e":
			return m, func() tea.Msg { return EditSettingsMsg{} }
		}
	}
	return m, nil
}

// Rows returns label/value pairs for the current record.
func (m Model) Rows() [][2]string {
	ws, _ := m.slot.Current()

	rows := [][2]string{
		{"Monthly salary:", salaryText(ws)},
		{"Work days:", daysText(ws)},
		{"Work start:", orNotSet(ws.WorkStart)},
		{"Work end:", orNotSet(ws.WorkEnd)},
		{"Lunch break:", lunchText(ws)},
	}
	if !ws.UpdatedAt.IsZero() {
		rows = append(rows, [2]string{"Last saved:", ws.UpdatedAt.Local().Format(constants.ClockFormat)})
	}
	return rows
}

func (m Model) View() string {
	lines := make([]string, 0, len(m.Rows()))
	for _, row := range m.Rows() {
		lines = append(lines, fmt.Sprintf("%s %s", labelStyle.Render(row[0]), valueStyle.Render(row[1])))
	}

	helpText := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")).
		Italic(true).
		Render("Press 'e' to edit settings")

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render("Work Settings"),
		sectionStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...)),
		helpText,
	)
}

func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func salaryText(ws models.WorkSettings) string {
	if ws.MonthlySalary == nil {
		return notSet
	}
	return fmt.Sprintf("%s%.2f", constants.CurrencySymbol, *ws.MonthlySalary)
}

func daysText(ws models.WorkSettings) string {
	if ws.WorkDays == nil {
		return notSet
	}
	return fmt.Sprintf("%d", *ws.WorkDays)
}

func lunchText(ws models.WorkSettings) string {
	if !ws.HasLunchBreak {
		return "no"
	}
	if !ws.LunchConfigured() {
		return "yes (times not set)"
	}
	return ws.LunchStart + " - " + ws.LunchEnd
}

func orNotSet(s string) string {
	if s == "" {
		return notSet
	}
	return s
}
