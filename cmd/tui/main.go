package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendwise/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	budgetStore "github.com/MrJamesThe3rd/spendwise/internal/budget/store"
	"github.com/MrJamesThe3rd/spendwise/internal/config"
	"github.com/MrJamesThe3rd/spendwise/internal/database"
	"github.com/MrJamesThe3rd/spendwise/internal/export"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
	"github.com/MrJamesThe3rd/spendwise/internal/rule"
	ruleStore "github.com/MrJamesThe3rd/spendwise/internal/rule/store"
	"github.com/MrJamesThe3rd/spendwise/internal/seed"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
	txStore "github.com/MrJamesThe3rd/spendwise/internal/transaction/store"
)

type services struct {
	transactions *transaction.Service
	budgets      *budget.Service
	analytics    *analytics.Service
	imports      *importer.Service
	exports      *export.Service
	seed         *seed.Service
}

type model struct {
	svc services

	currentView View
	status      string
	active      view.View
}

type View int

const (
	ViewMenu View = iota
	ViewDashboard
	ViewTransactions
	ViewBudgets
	ViewImport
	ViewExport
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	txSvc := transaction.NewService(txStore.New(db))
	budgetSvc := budget.NewService(budgetStore.New(db))

	return model{
		svc: services{
			transactions: txSvc,
			budgets:      budgetSvc,
			analytics:    analytics.NewService(txSvc, budgetSvc, cfg.Cache.TTL, cfg.Cache.Cleanup),
			imports:      importer.NewService(rule.NewService(ruleStore.New(db))),
			exports:      export.NewService(txSvc),
			seed:         seed.NewService(txSvc, budgetSvc),
		},
		currentView: ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) open(v View) (tea.Model, tea.Cmd) {
	switch v {
	case ViewDashboard:
		m.active = view.NewDashboardModel(m.svc.analytics)
	case ViewTransactions:
		m.active = view.NewListModel(m.svc.transactions)
	case ViewBudgets:
		m.active = view.NewBudgetsModel(m.svc.budgets)
	case ViewImport:
		m.active = view.NewImportModel(m.svc.transactions, m.svc.imports)
	case ViewExport:
		m.active = view.NewExportModel(m.svc.exports)
	default:
		return m, nil
	}

	m.currentView = v
	m.status = ""

	return m, m.active.Init()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				return m.open(ViewDashboard)
			case "2":
				return m.open(ViewTransactions)
			case "3":
				return m.open(ViewBudgets)
			case "4":
				return m.open(ViewImport)
			case "5":
				return m.open(ViewExport)
			case "s":
				m.status = "Seeding sample data..."
				return m, m.seedCmd()
			}

			return m, nil
		}
	case seedMsg:
		m.status = msg.text
		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	newModel, cmd := m.active.Update(msg)
	m.active = newModel.(view.View)

	return m, cmd
}

func (m model) View() string {
	if m.currentView != ViewMenu && m.active != nil {
		help := lipgloss.NewStyle().Faint(true).Render(m.active.ShortHelp())
		return m.active.View() + "\n" + lipgloss.NewStyle().PaddingLeft(1).Render(help)
	}

	menu := "Spendwise\n\n" +
		"1. Dashboard\n" +
		"2. Transactions\n" +
		"3. Budgets\n" +
		"4. Import Transactions\n" +
		"5. Export Transactions\n\n" +
		"s. Seed sample data\n" +
		"q. Quit"

	if m.status != "" {
		menu += "\n\n" + lipgloss.NewStyle().Faint(true).Render(m.status)
	}

	return lipgloss.NewStyle().Padding(2).Render(menu)
}

type seedMsg struct {
	text string
}

func (m model) seedCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := view.DbCtx()
		defer cancel()

		res, err := m.svc.seed.Seed(ctx, time.Now())
		if err != nil {
			return seedMsg{text: fmt.Sprintf("Seed failed: %v", err)}
		}

		return seedMsg{text: fmt.Sprintf("Seeded %d transactions and %d budgets.", res.Transactions, res.Budgets)}
	}
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
