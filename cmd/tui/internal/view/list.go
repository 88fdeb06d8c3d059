package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

type listState int

const (
	listStateBrowse listState = iota
	listStateAdd
)

type ListModel struct {
	CommonModel
	txService *transaction.Service

	state listState
	table table.Model
	txs   []*transaction.Transaction
	form  *huh.Form

	// Filter cycling; categoryIdx 0 means every category.
	categoryIdx int
	dateRange   DateRange

	filter  transaction.ListFilter
	loading bool
	err     error
	status  string

	// Form bindings live behind a pointer so they survive model copies.
	fields *txFields
}

type txFields struct {
	desc     string
	amount   string
	typ      transaction.Type
	category category.Category
	date     string
}

func NewListModel(txSvc *transaction.Service) ListModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Amount", Width: 12},
		{Title: "Category", Width: 15},
		{Title: "Description", Width: 40},
	}

	return ListModel{
		txService: txSvc,
		table:     newTable(columns, 15),
		loading:   true,
	}
}

func (m ListModel) Title() string { return "Transactions" }
func (m ListModel) ShortHelp() string {
	if m.state == listStateAdd {
		return "Navigate form | Esc: cancel"
	}
	return "Esc: back | a: add | x: delete | c: category filter | d: date filter | r: refresh"
}

func (m ListModel) Init() tea.Cmd {
	return m.loadTxsCmd()
}

func (m ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadListMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.txs = msg.txs
		m.refreshTable()
		return m, nil

	case listSaveMsg:
		m.status = msg.status
		if msg.err != nil {
			m.status = fmt.Sprintf("Error: %v", msg.err)
		}
		m.state = listStateBrowse
		m.form = nil
		m.table.Focus()
		return m, m.loadTxsCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case listStateBrowse:
		return m.updateBrowse(msg)
	case listStateAdd:
		return m.updateAdd(msg)
	}

	return m, nil
}

func (m ListModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadTxsCmd()
		case "a":
			return m.enterAddMode()
		case "x":
			return m, m.deleteCmd()
		case "c":
			m.categoryIdx = (m.categoryIdx + 1) % (len(category.All) + 1)
			m.applyFilter()
			return m, m.loadTxsCmd()
		case "d":
			m.dateRange = m.dateRange.Next()
			m.applyFilter()
			return m, m.loadTxsCmd()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ListModel) enterAddMode() (tea.Model, tea.Cmd) {
	m.fields = &txFields{
		typ:      transaction.TypeExpense,
		category: category.Other,
		date:     FormatDate(time.Now()),
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("description").
				Title("Description").
				CharLimit(transaction.MaxDescriptionLen).
				Value(&m.fields.desc).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("description cannot be empty")
					}
					return nil
				}),

			huh.NewInput().
				Key("amount").
				Title("Amount").
				Placeholder("12.50").
				Value(&m.fields.amount).
				Validate(validateMagnitude),

			huh.NewSelect[transaction.Type]().
				Key("type").
				Title("Type").
				Options(
					huh.NewOption("Expense", transaction.TypeExpense),
					huh.NewOption("Income", transaction.TypeIncome),
				).
				Value(&m.fields.typ),

			huh.NewSelect[category.Category]().
				Key("category").
				Title("Category").
				Options(categoryOptions()...).
				Value(&m.fields.category),

			huh.NewInput().
				Key("date").
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.fields.date).
				Validate(validateDate),
		),
	).WithWidth(45).WithShowHelp(false)

	m.state = listStateAdd
	m.table.Blur()
	return m, m.form.Init()
}

func (m ListModel) updateAdd(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = listStateBrowse
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

	return m, m.createCmd()
}

func (m ListModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading transactions...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	categoryLabel := "All"
	if m.filter.Category != nil {
		categoryLabel = m.filter.Category.String()
	}

	header := fmt.Sprintf(
		"Filter: [c] Category: %s | [d] Date: %s",
		activeStyle(categoryLabel),
		activeStyle(m.dateRange.String()),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		boxed(m.table.View()),
	)

	if m.state == listStateAdd && m.form != nil {
		panel := panelStyle.Width(48).Render("New Transaction\n\n" + m.form.View())
		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *ListModel) applyFilter() {
	m.filter.Category = nil
	if m.categoryIdx > 0 {
		m.filter.Category = new(category.All[m.categoryIdx-1])
	}

	m.filter.StartDate, m.filter.EndDate = m.dateRange.Bounds(time.Now())
}

func (m *ListModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type()),
			FormatAmount(tx.Amount),
			tx.Category.String(),
			tx.Description,
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadListMsg struct {
	txs []*transaction.Transaction
	err error
}

func (m ListModel) loadTxsCmd() tea.Cmd {
	filter := m.filter

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		txs, err := m.txService.List(ctx, filter)
		return loadListMsg{txs: txs, err: err}
	}
}

type listSaveMsg struct {
	status string
	err    error
}

func (m ListModel) createCmd() tea.Cmd {
	f := m.fields
	params, err := transactionParams(f.desc, f.amount, f.typ, f.category, f.date)
	if err != nil {
		return func() tea.Msg { return listSaveMsg{err: err} }
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		tx, err := m.txService.Create(ctx, params)
		if err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Added %s (%s)", tx.Description, FormatAmount(tx.Amount))}
	}
}

func (m ListModel) deleteCmd() tea.Cmd {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	tx := m.txs[idx]

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if err := m.txService.Delete(ctx, tx.ID); err != nil {
			return listSaveMsg{err: err}
		}

		return listSaveMsg{status: fmt.Sprintf("Deleted %s", tx.Description)}
	}
}
