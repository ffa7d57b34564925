// Package tui is the interactive workday widget.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/wagebar/internal/constants"
	"github.com/julianstephens/wagebar/internal/poem"
	"github.com/julianstephens/wagebar/internal/session"
	"github.com/julianstephens/wagebar/internal/storage"
	"github.com/julianstephens/wagebar/internal/tui/components/dashboard"
	"github.com/julianstephens/wagebar/internal/tui/components/settings"
)

// PoemMsg carries the result of the startup fetch, which is the fallback on failure.
type PoemMsg poem.Poem

type Model struct {
	store         storage.Provider
	slot          *session.Slot
	poems         *poem.Client
	now           func() time.Time
	state         constants.SessionState
	previousState constants.SessionState
	keys          KeyMap
	help          help.Model
	dashboard     dashboard.Model
	settingsModel settings.Model
	form          *huh.Form
	settingsForm  *SettingsFormModel
	formError     string
	quitting      bool
	width         int
	height        int
}

func NewModel(store storage.Provider, slot *session.Slot, poems *poem.Client) Model {
	m := Model{
		store:         store,
		slot:          slot,
		poems:         poems,
		now:           time.Now,
		state:         constants.StateDashboard,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		dashboard:     dashboard.New(slot),
		settingsModel: settings.New(slot),
	}

	if ws, _ := slot.Current(); !ws.IsConfigured() {
		m.openSettingsForm()
	}
	return m
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.dashboard.Init(), m.fetchPoem()}
	if m.form != nil && m.state == constants.StateEditSettings {
		cmds = append(cmds, m.form.Init())
	}
	return tea.Batch(cmds...)
}

func (m Model) fetchPoem() tea.Cmd {
	client := m.poems
	return func() tea.Msg {
		if client == nil {
			return PoemMsg(poem.Fallback())
		}
		return PoemMsg(client.FetchOrFallback(context.Background()))
	}
}

// openSettingsForm seeds the form from the current record.
func (m *Model) openSettingsForm() tea.Cmd {
	ws, _ := m.slot.Current()
	if m.state != constants.StateEditSettings {
		m.previousState = m.state
	}
	m.settingsForm = newSettingsFormModel(ws)
	m.form = NewSettingsForm(m.settingsForm)
	m.formError = ""
	m.state = constants.StateEditSettings
	return m.form.Init()
}

func (m Model) ShortHelp() []key.Binding {
	if m.state == constants.StateEditSettings {
		return []key.Binding{m.keys.Back}
	}
	return []key.Binding{m.keys.Settings, m.keys.Edit, m.keys.Help, m.keys.Quit}
}

func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keys.Settings, m.keys.Edit, m.keys.Back},
		{m.keys.Help, m.keys.Quit},
	}
}
