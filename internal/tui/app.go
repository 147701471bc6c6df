// Package tui provides the terminal parent picker.
package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/runoshun/teamtasks/internal/app"
	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
	"github.com/runoshun/teamtasks/internal/usecase"
)

// Model is the bubbletea model of the parent picker for one task.
type Model struct {
	// Dependencies (pointers first for alignment)
	container *app.Container
	task      *domain.Task
	moved     *domain.Task // Set once a parent change was stored
	err       error

	// State
	choices []hierarchy.Entry

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Numeric fields
	taskID int
	cursor int
	width  int
	height int

	loading bool
}

// New creates a picker for taskID.
func New(c *app.Container, taskID int) *Model {
	return &Model{
		container: c,
		keys:      DefaultKeyMap(),
		styles:    DefaultStyles(),
		help:      help.New(),
		taskID:    taskID,
		loading:   true,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return m.loadChoices()
}

// Moved returns the task after its parent was changed, or nil when the
// picker was left without a change.
func (m *Model) Moved() *domain.Task {
	return m.moved
}

// loadChoices returns a command that loads the task's legal parents.
func (m *Model) loadChoices() tea.Cmd {
	return func() tea.Msg {
		out, err := m.container.ParentChoicesUseCase().Execute(context.Background(), usecase.ParentChoicesInput{TaskID: m.taskID})
		if err != nil {
			return MsgError{Err: err}
		}
		return MsgChoicesLoaded{Task: out.Task, Choices: out.Choices}
	}
}

// setParent returns a command that stores parentID (nil = root) through
// the EditTask use case, so the store's validator has the final word.
func (m *Model) setParent(parentID *int) tea.Cmd {
	in := usecase.EditTaskInput{TaskID: m.taskID, ParentID: parentID, MakeRoot: parentID == nil}
	return func() tea.Msg {
		out, err := m.container.EditTaskUseCase().Execute(context.Background(), in)
		if err != nil {
			return MsgMoveFailed{Err: err}
		}
		return MsgParentChanged{Task: out.Task}
	}
}

// Run shows the picker for taskID until the user leaves it.
func Run(c *app.Container, taskID int) (*domain.Task, error) {
	m := New(c, taskID)
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	fm, ok := final.(*Model)
	if !ok {
		return nil, nil
	}
	if fm.moved == nil && fm.task == nil && fm.err != nil {
		return nil, fm.err
	}
	return fm.moved, nil
}
