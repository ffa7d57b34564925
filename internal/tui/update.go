package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/logger"
	"github.com/julianstephens/wagebar/internal/poem"
	"github.com/julianstephens/wagebar/internal/tui/components/dashboard"
	"github.com/julianstephens/wagebar/internal/tui/components/settings"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Ticks and the poem result apply in every state so the refresh chain never breaks.
	switch msg := msg.(type) {
	case dashboard.TickMsg:
		var cmd tea.Cmd
		m.dashboard, cmd = m.dashboard.Update(msg)
		return m, cmd
	case PoemMsg:
		m.dashboard.SetPoem(poem.Poem(msg))
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.dashboard.SetSize(msg.Width, msg.Height)
		m.settingsModel.SetSize(msg.Width, msg.Height)
		return m, nil
	case settings.EditSettingsMsg:
		cmd := m.openSettingsForm()
		return m, cmd
	}

	if m.state == constants.StateEditSettings {
		cmd := m.handleEditSettings(msg)
		return m, cmd
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Settings):
			if m.state == constants.StateSettings {
				m.state = constants.StateDashboard
			} else {
				m.state = constants.StateSettings
			}
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.state = constants.StateDashboard
			return m, nil
		}

		if m.state == constants.StateSettings {
			var cmd tea.Cmd
			m.settingsModel, cmd = m.settingsModel.Update(msg)
			return m, cmd
		}
		if key.Matches(msg, m.keys.Edit) {
			cmd := m.openSettingsForm()
			return m, cmd
		}
	}

	return m, nil
}

func (m *Model) handleEditSettings(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return tea.Quit
		case "esc":
			m.closeForm()
			return nil
		}
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if err := m.submitSettings(); err != nil {
			// Stay in the form so the user can correct the input
			m.formError = err.Error()
			m.form.State = huh.StateNormal
			return tea.Batch(cmds...)
		}
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}
	return tea.Batch(cmds...)
}

// submitSettings parses, stamps and saves the form as a whole new record.
// The slot is only replaced when the store accepted it.
func (m *Model) submitSettings() error {
	ws, err := m.settingsForm.Settings()
	if err != nil {
		return err
	}
	ws = ws.Stamp(m.now())

	if err := m.slot.Save(m.store, ws); err != nil {
		logger.Error("Failed to save settings", "error", err)
		return err
	}
	return nil
}

func (m *Model) closeForm() {
	m.formError = ""
	m.form = nil
	m.settingsForm = nil
	if m.previousState == constants.StateSettings {
		m.state = constants.StateSettings
		return
	}
	m.state = constants.StateDashboard
}
