package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Update handles messages and updates the model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case MsgChoicesLoaded:
		m.loading = false
		m.task = msg.Task
		m.choices = msg.Choices
		m.cursor = m.currentParentIndex()
		return m, nil

	case MsgParentChanged:
		m.moved = msg.Task
		return m, tea.Quit

	case MsgError:
		m.loading = false
		m.err = msg.Err
		if m.task == nil {
			// Nothing to pick from.
			return m, tea.Quit
		}
		return m, nil

	case MsgMoveFailed:
		m.err = msg.Err
		// The tree may have changed under us; offer fresh choices.
		return m, m.loadChoices()
	}
	return m, nil
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	if m.loading || m.task == nil {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = max(len(m.choices)-1, 0)
	case key.Matches(msg, m.keys.Assign):
		if len(m.choices) == 0 {
			return m, nil
		}
		id := m.choices[m.cursor].ID
		m.err = nil
		m.loading = true
		return m, m.setParent(&id)
	case key.Matches(msg, m.keys.Root):
		if m.task.IsRoot() {
			return m, nil
		}
		m.err = nil
		m.loading = true
		return m, m.setParent(nil)
	}
	return m, nil
}

// currentParentIndex returns the index of the task's parent among the
// choices, or 0.
func (m *Model) currentParentIndex() int {
	if m.task == nil || m.task.ParentID == nil {
		return 0
	}
	for i, e := range m.choices {
		if e.ID == *m.task.ParentID {
			return i
		}
	}
	return 0
}
