package view

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/importer/spendwise"
)

type budgetState int

const (
	budgetStateBrowse budgetState = iota
	budgetStateEdit
)

type BudgetsModel struct {
	CommonModel
	budgetService *budget.Service

	state   budgetState
	period  analytics.Period
	table   table.Model
	budgets []*budget.Budget
	form    *huh.Form
	fields  *budgetFields

	loading bool
	err     error
	status  string
}

type budgetFields struct {
	category category.Category
	amount   string
}

func NewBudgetsModel(svc *budget.Service) BudgetsModel {
	columns := []table.Column{
		{Title: "Category", Width: 15},
		{Title: "Amount", Width: 12},
	}

	return BudgetsModel{
		budgetService: svc,
		period:        analytics.PeriodOf(time.Now()),
		table:         newTable(columns, 15),
		loading:       true,
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetStateEdit {
		return "Navigate form | Esc: cancel"
	}

	return "Esc: back | ←/→: month | a: add | e: edit amount | x: delete"
}

func (m BudgetsModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadBudgetsMsg:
		if msg.period != m.period {
			return m, nil
		}

		m.loading = false
		m.err = msg.err
		m.budgets = msg.budgets
		m.refreshTable()

		return m, nil

	case budgetSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}

		m.state = budgetStateBrowse
		m.form = nil
		m.table.Focus()

		return m, m.loadCmd()
	}

	if m.state == budgetStateEdit {
		return m.updateEdit(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.period = m.period.Previous()
			m.loading = true
			return m, m.loadCmd()
		case "right", "l":
			m.period = nextPeriod(m.period)
			m.loading = true
			return m, m.loadCmd()
		case "a":
			return m.enterEdit(&budgetFields{category: category.Food})
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.budgets) {
				return m, nil
			}

			b := m.budgets[idx]

			return m.enterEdit(&budgetFields{category: b.Category, amount: FormatAmount(b.Amount)})
		case "x":
			return m, m.deleteCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

// enterEdit opens the upsert form. Saving a category that already has a
// budget this month replaces its amount.
func (m BudgetsModel) enterEdit(fields *budgetFields) (tea.Model, tea.Cmd) {
	m.fields = fields
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[category.Category]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&m.fields.category),

			huh.NewInput().
				Key("amount").
				Title(fmt.Sprintf("Budget for %s", m.period)).
				Placeholder("120.00").
				Value(&m.fields.amount).
				Validate(validateBudgetAmount),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = budgetStateEdit
	m.table.Blur()

	return m, m.form.Init()
}

func (m BudgetsModel) updateEdit(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = budgetStateBrowse
		m.form = nil
		m.table.Focus()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BudgetsModel) View() string {
	title := headingStyle.Render(fmt.Sprintf("◀ %s ▶", m.period))

	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(title + "\n\nLoading budgets...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, "", boxed(m.table.View()))

	if m.state == budgetStateEdit && m.form != nil {
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panelStyle.Width(44).Render("Set Budget\n\n"+m.form.View()))
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *BudgetsModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.budgets))
	for _, b := range m.budgets {
		rows = append(rows, table.Row{b.Category.String(), FormatAmount(b.Amount)})
	}

	m.table.SetRows(rows)
}

// parseBudgetAmount reads a budget in cents. Zero is allowed.
func parseBudgetAmount(s string) (int64, error) {
	cents, err := spendwise.ParseAmount(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}

	if cents < 0 {
		return 0, errors.New("budget cannot be negative")
	}

	return cents, nil
}

func validateBudgetAmount(s string) error {
	_, err := parseBudgetAmount(s)
	return err
}

type loadBudgetsMsg struct {
	period  analytics.Period
	budgets []*budget.Budget
	err     error
}

type budgetSaveMsg struct {
	status string
	err    error
}

func (m BudgetsModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		budgets, err := m.budgetService.List(ctx, budget.ListFilter{Month: &period.Month, Year: &period.Year})

		return loadBudgetsMsg{period: period, budgets: budgets, err: err}
	}
}

func (m BudgetsModel) saveCmd() tea.Cmd {
	amount, err := parseBudgetAmount(m.fields.amount)
	if err != nil {
		return func() tea.Msg { return budgetSaveMsg{err: err} }
	}

	params := budget.SetParams{
		Category: m.fields.category,
		Amount:   amount,
		Month:    m.period.Month,
		Year:     m.period.Year,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		b, err := m.budgetService.Set(ctx, params)
		if err != nil {
			return budgetSaveMsg{err: err}
		}

		return budgetSaveMsg{status: fmt.Sprintf("%s budget set to %s", b.Category, FormatAmount(b.Amount))}
	}
}

func (m BudgetsModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.budgets) {
		return nil
	}

	b := m.budgets[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.budgetService.Delete(ctx, b.ID); err != nil {
			return budgetSaveMsg{err: err}
		}

		return budgetSaveMsg{status: fmt.Sprintf("Deleted %s budget", b.Category)}
	}
}
