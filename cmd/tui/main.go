package main

import (
	"context"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/Jamessshhh/Expense-Odyssey/cmd/tui/internal/view"
	"github.com/Jamessshhh/Expense-Odyssey/internal/config"
	"github.com/Jamessshhh/Expense-Odyssey/internal/database"
	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/expense/store"
	"github.com/Jamessshhh/Expense-Odyssey/internal/importer"
	"github.com/Jamessshhh/Expense-Odyssey/internal/prefs"
)

type View int

const (
	ViewExpenses View = 0
	ViewImport   View = 1
)

type model struct {
	svc    *expense.Service
	parser *importer.Parser

	currentView View

	expensesView view.ExpensesModel
	importView   view.ImportModel
}

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.Storage.Driver, cfg.DSN())
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		os.Exit(1)
	}

	svc, err := expense.NewService(context.Background(), store.New(prefs.New(db)))
	if err != nil {
		slog.Error("failed to load expenses", "error", err)
		os.Exit(1)
	}

	parser := importer.New()

	return model{
		svc:          svc,
		parser:       parser,
		currentView:  ViewExpenses,
		expensesView: view.NewExpensesModel(svc),
		importView:   view.NewImportModel(svc, parser),
	}
}

func (m model) Init() tea.Cmd {
	return m.expensesView.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

	case view.OpenImportMsg:
		m.currentView = ViewImport
		m.importView = view.NewImportModel(m.svc, m.parser)

		return m, m.importView.Init()

	case view.BackMsg:
		m.currentView = ViewExpenses
		return m, nil

	case view.ImportedMsg:
		// Jump back to the expenses screen and let it pick up the result.
		m.currentView = ViewExpenses

		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)

		return m, cmd
	}

	switch m.currentView {
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewImport:
		return m.importView.View()
	default:
		return m.expensesView.View()
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
