package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/wagebar/internal/constants"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	header := titleStyle.Render(constants.AppName)
	if ws, _ := m.slot.Current(); ws.IsConfigured() {
		header = lipgloss.JoinHorizontal(lipgloss.Top, header, hintStyle.Render(ws.WorkStart+" - "+ws.WorkEnd))
	}

	var content string
	switch m.state {
	case constants.StateSettings:
		content = m.settingsModel.View()
	case constants.StateEditSettings:
		content = m.viewEditSettings()
	default:
		content = m.dashboard.View()
	}

	return docStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		header,
		"",
		content,
		"",
		m.help.View(m),
	))
}

// viewEditSettings keeps the dashboard visible above the form so the
// configure prompt shows while nothing is saved yet.
func (m Model) viewEditSettings() string {
	rows := []string{m.dashboard.View(), "", m.form.View()}
	if m.formError != "" {
		rows = append(rows, dangerStyle.Render("Error: "+m.formError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
