package view

import (
	tea "github.com/charmbracelet/bubbletea"
)

// CommonModel is embedded by all screens.
type CommonModel struct {
	Width  int
	Height int
}

// BackMsg asks the root model to return to the expenses screen.
type BackMsg struct{}

func Back() tea.Msg {
	return BackMsg{}
}

// OpenImportMsg asks the root model to show the CSV import screen.
type OpenImportMsg struct{}

func OpenImport() tea.Msg {
	return OpenImportMsg{}
}

// ImportedMsg reports a finished import back to the expenses screen so it
// can refresh its table.
type ImportedMsg struct {
	Count int
}
