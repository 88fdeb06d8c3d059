package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
)

const barWidth = 30

var kindStyles = map[analytics.Kind]lipgloss.Style{
	analytics.KindWarning: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	analytics.KindInfo:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	analytics.KindSuccess: lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	analytics.KindTip:     lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
}

type DashboardModel struct {
	CommonModel
	analyticsService *analytics.Service

	period     analytics.Period
	dashboard  *analytics.Dashboard
	comparison table.Model

	loading bool
	err     error
}

func NewDashboardModel(svc *analytics.Service) DashboardModel {
	columns := []table.Column{
		{Title: "Category", Width: 15},
		{Title: "Budget", Width: 10},
		{Title: "Spent", Width: 10},
		{Title: "Used %", Width: 8},
		{Title: "Remaining", Width: 10},
	}

	return DashboardModel{
		analyticsService: svc,
		period:           analytics.PeriodOf(time.Now()),
		comparison:       newTable(columns, 8),
		loading:          true,
	}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | ←/→: month | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardMsg:
		if msg.period != m.period {
			return m, nil
		}

		m.loading = false
		m.err = msg.err
		m.dashboard = msg.dashboard

		if msg.dashboard != nil {
			m.comparison.SetRows(comparisonRows(msg.dashboard.Comparison))
		}

		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
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
		case "r":
			m.loading = true
			return m, m.loadCmd()
		}
	}

	var cmd tea.Cmd
	m.comparison, cmd = m.comparison.Update(msg)
	return m, cmd
}

func (m DashboardModel) View() string {
	title := headingStyle.Render(fmt.Sprintf("◀ %s ▶", m.period))

	if m.loading {
		return lipgloss.NewStyle().Padding(1).Render(title + "\n\nLoading dashboard...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	d := m.dashboard

	left := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Summary"),
		renderSummary(d.Summary),
		"",
		headingStyle.Render("Insights"),
		renderInsights(d.Insights),
		"",
		headingStyle.Render("Budget vs Actual"),
		boxed(m.comparison.View()),
	)

	right := lipgloss.JoinVertical(lipgloss.Left,
		headingStyle.Render("Monthly Expenses"),
		renderSeries(d.Monthly),
	)

	body := lipgloss.JoinHorizontal(lipgloss.Top, left, lipgloss.NewStyle().PaddingLeft(4).Render(right))

	return lipgloss.NewStyle().Padding(1).Render(title + "\n\n" + body)
}

func nextPeriod(p analytics.Period) analytics.Period {
	if p.Month == 11 {
		return analytics.Period{Month: 0, Year: p.Year + 1}
	}

	return analytics.Period{Month: p.Month + 1, Year: p.Year}
}

func renderSummary(s analytics.Summary) string {
	if s.Empty() {
		return "No transactions yet."
	}

	lines := []string{
		fmt.Sprintf("Total spent:     %s", FormatAmount(*s.TotalSpend)),
	}

	if s.TopByCount != nil {
		lines = append(lines, fmt.Sprintf("Most frequent:   %s (%d)", s.TopByCount.Category, s.TopByCount.Count))
	}

	if s.TopByAmount != nil {
		lines = append(lines, fmt.Sprintf("Highest spend:   %s (%s)", s.TopByAmount.Category, FormatAmount(s.TopByAmount.Amount)))
	}

	if s.MostRecent != nil {
		lines = append(lines, fmt.Sprintf("Most recent:     %s %s (%s)",
			FormatDate(s.MostRecent.Date), s.MostRecent.Description, FormatAmount(s.MostRecent.Amount)))
	}

	return strings.Join(lines, "\n")
}

func renderInsights(insights []analytics.Insight) string {
	lines := make([]string, 0, len(insights))
	for _, in := range insights {
		style, ok := kindStyles[in.Kind]
		if !ok {
			style = lipgloss.NewStyle()
		}

		lines = append(lines, style.Bold(true).Render(in.Title)+"\n  "+in.Description)
	}

	return strings.Join(lines, "\n")
}

func comparisonRows(rows []analytics.ComparisonRow) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		remaining := FormatAmount(r.Remaining)
		if r.IsOverBudget {
			remaining = "-" + FormatAmount(r.OverBudget)
		}

		out = append(out, table.Row{
			r.Category.String(),
			FormatAmount(r.BudgetAmount),
			FormatAmount(r.ActualAmount),
			fmt.Sprintf("%.0f", r.PercentageUsed),
			remaining,
		})
	}

	return out
}

func renderSeries(s analytics.Series) string {
	var peak int64
	for _, mt := range s {
		peak = max(peak, mt.Total)
	}

	lines := make([]string, 0, len(s))
	for _, mt := range s {
		lines = append(lines, fmt.Sprintf("%s %-*s %s", mt.Month, barWidth, bar(mt.Total, peak, barWidth), FormatAmount(mt.Total)))
	}

	return strings.Join(lines, "\n")
}

// bar scales v against peak into at most width blocks. Any non-zero value
// gets at least one block.
func bar(v, peak int64, width int) string {
	if v <= 0 || peak <= 0 {
		return ""
	}

	n := int(v * int64(width) / peak)
	if n == 0 {
		n = 1
	}

	return strings.Repeat("█", n)
}

type dashboardMsg struct {
	period    analytics.Period
	dashboard *analytics.Dashboard
	err       error
}

func (m DashboardModel) loadCmd() tea.Cmd {
	period := m.period

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		d, err := m.analyticsService.Dashboard(ctx, period)
		return dashboardMsg{period: period, dashboard: d, err: err}
	}
}
