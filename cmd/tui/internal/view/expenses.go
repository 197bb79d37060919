package view

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateAdd
	expensesStateEdit
)

// ExpensesModel is the app's single screen: the filterable expense table
// with its running total, the category bar chart, and the add/edit forms.
type ExpensesModel struct {
	CommonModel
	svc *expense.Service

	state     expensesState
	table     table.Model
	rows      []*expense.Expense
	form      *huh.Form
	filters   []expense.Category
	filterIdx int
	showChart bool
	status    string

	editID uuid.UUID

	// Form bindings
	formAmount   string
	formCategory expense.Category
	formDate     string
	formNote     string
}

func NewExpensesModel(svc *expense.Service) ExpensesModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Category", Width: 15},
		{Title: "Amount", Width: 10},
		{Title: "Note", Width: 40},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	m := ExpensesModel{
		svc:     svc,
		table:   t,
		filters: append([]expense.Category{expense.CategoryAll}, expense.Categories()...),
	}
	m.refreshTable()

	return m
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	if m.state != expensesStateBrowse {
		return "Navigate form | Esc: cancel"
	}

	return "a: add | e: edit | d: delete | f: filter | c: chart | i: import | q: quit"
}

func (m ExpensesModel) Init() tea.Cmd {
	return nil
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.table.SetHeight(max(5, msg.Height-12))

		return m, nil

	case ImportedMsg:
		m.status = fmt.Sprintf("Imported %d expenses", msg.Count)
		m.refreshTable()

		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	default:
		return m.updateForm(msg)
	}
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc":
			return m, tea.Quit
		case "f":
			m.filterIdx = (m.filterIdx + 1) % len(m.filters)
			m.svc.SetFilter(m.filters[m.filterIdx])
			m.status = ""
			m.refreshTable()

			return m, nil
		case "a":
			return m.enterAdd()
		case "e":
			return m.enterEdit()
		case "d":
			return m.deleteSelected()
		case "c":
			m.showChart = !m.showChart
			return m, nil
		case "i":
			return m, OpenImport
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) enterAdd() (tea.Model, tea.Cmd) {
	m.formAmount = ""
	m.formCategory = expense.CategoryFood
	m.formDate = FormatDate(time.Now())
	m.formNote = ""
	m.buildForm()

	m.state = expensesStateAdd
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) enterEdit() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	e := m.rows[idx]
	m.editID = e.ID
	m.formAmount = FormatAmount(e.Amount)
	m.formCategory = e.Category
	m.formDate = FormatDate(e.Date)
	m.formNote = e.Note
	m.buildForm()

	m.state = expensesStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m *ExpensesModel) buildForm() {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.formAmount).
				Validate(func(s string) error {
					_, err := expense.ParseAmount(s)
					return err
				}),

			huh.NewSelect[expense.Category]().
				Key("category").
				Title("Category").
				Options(huh.NewOptions(expense.Categories()...)...).
				Value(&m.formCategory),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.formDate).
				Validate(func(s string) error {
					_, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
					return err
				}),

			huh.NewInput().
				Key("note").
				Title("Note").
				Value(&m.formNote),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.table.Focus()

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m.submitForm()
}

func (m ExpensesModel) submitForm() (tea.Model, tea.Cmd) {
	// The form validated these already.
	amount, err := expense.ParseAmount(m.form.GetString("amount"))
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m.leaveForm()
	}

	date, err := time.Parse(time.DateOnly, strings.TrimSpace(m.form.GetString("date")))
	if err != nil {
		m.status = fmt.Sprintf("Error: %v", err)
		return m.leaveForm()
	}

	category, _ := m.form.Get("category").(expense.Category)
	note := m.form.GetString("note")

	ctx, cancel := StoreCtx()
	defer cancel()

	switch m.state {
	case expensesStateAdd:
		_, err = m.svc.Add(ctx, expense.CreateParams{
			Amount:   amount,
			Category: category,
			Date:     date,
			Note:     note,
		})
	case expensesStateEdit:
		_, err = m.svc.Update(ctx, m.editID, expense.UpdateParams{
			Amount:   &amount,
			Category: &category,
			Date:     &date,
			Note:     &note,
		})
	}

	if err != nil {
		m.status = fmt.Sprintf("Error saving: %v", err)
	} else {
		m.status = ""
	}

	return m.leaveForm()
}

func (m ExpensesModel) leaveForm() (tea.Model, tea.Cmd) {
	m.state = expensesStateBrowse
	m.form = nil
	m.table.Focus()
	m.refreshTable()

	return m, nil
}

func (m ExpensesModel) deleteSelected() (tea.Model, tea.Cmd) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.rows) {
		return m, nil
	}

	ctx, cancel := StoreCtx()
	defer cancel()

	if err := m.svc.Delete(ctx, []int{idx}); err != nil {
		m.status = fmt.Sprintf("Error deleting: %v", err)
	} else {
		m.status = "Deleted"
	}

	m.refreshTable()

	return m, nil
}

func (m ExpensesModel) View() string {
	filterLabel := "All"
	if f := m.filters[m.filterIdx]; f != expense.CategoryAll {
		filterLabel = string(f)
	}

	header := fmt.Sprintf("Expenses | [f] Filter: %s", activeStyle(filterLabel))

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	footer := fmt.Sprintf("Total: %s", activeStyle(FormatAmount(m.svc.Total())))

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Render(footer),
		lipgloss.NewStyle().Faint(true).Render(m.ShortHelp()),
	)

	if m.showChart {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Render("By Category\n\n" + renderChart(m.svc.ByCategory(), 24))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.state != expensesStateBrowse && m.form != nil {
		title := "Add Expense"
		if m.state == expensesStateEdit {
			title = "Edit Expense"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

func (m *ExpensesModel) refreshTable() {
	m.rows = m.svc.Filtered()

	rows := make([]table.Row, 0, len(m.rows))
	for _, e := range m.rows {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			string(e.Category),
			FormatAmount(e.Amount),
			e.Note,
		})
	}

	m.table.SetRows(rows)
}

// renderChart draws one horizontal bar per category, sorted by name, scaled
// to the largest total.
func renderChart(byCategory map[expense.Category]int64, barWidth int) string {
	if len(byCategory) == 0 {
		return "Nothing to chart yet."
	}

	cats := make([]expense.Category, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}

	sort.Slice(cats, func(i, j int) bool { return cats[i] < cats[j] })

	var maxTotal int64

	for _, c := range cats {
		if byCategory[c] > maxTotal {
			maxTotal = byCategory[c]
		}
	}

	barStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("57"))

	lines := make([]string, 0, len(cats))

	for _, c := range cats {
		// All-zero totals get no bar glyphs at all.
		var bar string

		if maxTotal > 0 {
			n := int(byCategory[c] * int64(barWidth) / maxTotal)
			if n == 0 {
				n = 1
			}

			bar = barStyle.Render(strings.Repeat("█", n))
		}

		lines = append(lines, fmt.Sprintf("%-14s %s %s",
			c,
			bar,
			FormatAmount(byCategory[c]),
		))
	}

	return strings.Join(lines, "\n")
}
