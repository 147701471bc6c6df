package tui

import (
	"github.com/runoshun/teamtasks/internal/domain"
	"github.com/runoshun/teamtasks/internal/hierarchy"
)

// Msg is the sealed interface for all picker messages.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgChoicesLoaded is sent when the task and its legal parents are loaded.
type MsgChoicesLoaded struct {
	Task    *domain.Task
	Choices []hierarchy.Entry
}

func (MsgChoicesLoaded) sealed() {}

// MsgParentChanged is sent when the new parent has been stored.
type MsgParentChanged struct {
	Task *domain.Task
}

func (MsgParentChanged) sealed() {}

// MsgError is sent when loading the choices fails.
type MsgError struct {
	Err error
}

func (MsgError) sealed() {}

// MsgMoveFailed is sent when storing the new parent fails.
type MsgMoveFailed struct {
	Err error
}

func (MsgMoveFailed) sealed() {}
