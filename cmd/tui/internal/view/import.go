package view

import (
	"fmt"
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/importer"
)

// ImportModel lets the user pick a CSV file and load its rows into the
// store. On success it hands an ImportedMsg back to the expenses screen.
type ImportModel struct {
	CommonModel
	svc    *expense.Service
	parser *importer.Parser

	filePicker filepicker.Model
	importing  bool
	err        error
}

func NewImportModel(svc *expense.Service, parser *importer.Parser) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:        svc,
		parser:     parser,
		filePicker: fp,
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string { return "Enter: select file | Esc: back" }

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

type importResultMsg struct {
	count int
	err   error
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m, Back
		}

	case importResultMsg:
		m.importing = false

		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}

		count := msg.count

		return m, func() tea.Msg {
			return ImportedMsg{Count: count}
		}
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect && !m.importing {
		m.importing = true
		m.err = nil

		return m, tea.Batch(cmd, m.importCmd(path))
	}

	return m, cmd
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		params, err := m.parser.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := StoreCtx()
		defer cancel()

		added, err := m.svc.AddBatch(ctx, params)
		if err != nil {
			return importResultMsg{err: err}
		}

		return importResultMsg{count: len(added)}
	}
}

func (m ImportModel) View() string {
	if m.importing {
		return lipgloss.NewStyle().Padding(2).Render("Importing...")
	}

	content := "Pick a CSV file to import\n\n" + m.filePicker.View()

	if m.err != nil {
		content = fmt.Sprintf("Error: %v\n\n%s", m.err, content)
	}

	content += "\n" + lipgloss.NewStyle().Faint(true).Render(m.ShortHelp())

	return lipgloss.NewStyle().Padding(1).Render(content)
}
