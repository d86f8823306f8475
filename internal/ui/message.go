package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/hbnb/internal/search"
	"github.com/desertthunder/hbnb/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgSnapshotLoaded MsgKind = iota
	MsgProgressUpdate
	MsgExportComplete
)

type snapshotLoaded struct {
	index *search.Index
	err   error
}

type exportComplete struct {
	result *tasks.BulkExportResult
	err    error
}

// snapshotLoadedMsg is the constructor for [MsgSnapshotLoaded]
func snapshotLoadedMsg(ix *search.Index, err error) Msg {
	return Msg{kind: MsgSnapshotLoaded, data: snapshotLoaded{ix, err}}
}

// progressUpdateMsg is the constructor for [MsgProgressUpdate]
func progressUpdateMsg(update tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgressUpdate, data: update}
}

// exportCompleteMsg is the constructor for [MsgExportComplete]
func exportCompleteMsg(result *tasks.BulkExportResult, err error) Msg {
	return Msg{kind: MsgExportComplete, data: exportComplete{result, err}}
}
