package analytics

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

type Kind string

const (
	KindWarning Kind = "warning"
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindTip     Kind = "tip"
)

type Insight struct {
	Kind        Kind
	Title       string
	Description string
}

const (
	trendThreshold     = 0.2 // month-over-month change that counts as a trend
	wellManagedFloor   = 0.8
	underBudgetCeiling = 0.7
)

// Insights derives observations for the current month from its category
// totals, the previous month's totals and the month's budgets. The rules run
// in a fixed order and each may add entries:
//
//  1. the worst over-budget category, plus a count when more than one is over
//  2. the largest month-over-month increase above 20%
//  3. the largest month-over-month decrease above 20%
//  4. the number of budgets used between 80% and 100%
//  5. a tip when less than 70% of the total budget is spent
//  6. an overview tip when nothing else fired and a budget exists
//
// Ties in any ranking keep budget order (rules 1) or category enumeration
// order (rules 2 and 3).
func Insights(current, previous Totals, budgets []*budget.Budget) []Insight {
	insights := make([]Insight, 0, 4)

	insights = append(insights, overBudgetInsights(current, budgets)...)
	insights = append(insights, trendInsights(current, previous)...)
	insights = append(insights, wellManagedInsights(current, budgets)...)

	spent, total := budgetUsage(current, budgets)

	if float64(spent) < float64(total)*underBudgetCeiling {
		insights = append(insights, Insight{
			Kind:  KindTip,
			Title: "You're under budget",
			Description: fmt.Sprintf("You've only used %s%% of your total budget. Consider saving the difference!",
				formatPercent(percentOf(spent, total))),
		})
	}

	if len(insights) == 0 && total > 0 {
		insights = append(insights, Insight{
			Kind:  KindTip,
			Title: "Budget overview",
			Description: fmt.Sprintf("You've used %s%% of your total budget so far this month.",
				formatPercent(percentOf(spent, total))),
		})
	}

	return insights
}

type overage struct {
	budget *budget.Budget
	spent  int64
}

func (o overage) amount() int64 { return o.spent - o.budget.Amount }

func overBudgetInsights(current Totals, budgets []*budget.Budget) []Insight {
	var (
		over  []overage
		count int
	)

	for _, b := range budgets {
		spent := current[b.Category]
		if spent <= b.Amount {
			continue
		}

		count++

		// A zero budget has no percent-over, so it is only counted.
		if b.Amount > 0 {
			over = append(over, overage{budget: b, spent: spent})
		}
	}

	var out []Insight

	if len(over) > 0 {
		slices.SortStableFunc(over, func(a, b overage) int {
			return cmp.Compare(b.amount(), a.amount())
		})

		worst := over[0]
		percentOver := (float64(worst.spent)/float64(worst.budget.Amount) - 1) * 100

		out = append(out, Insight{
			Kind:  KindWarning,
			Title: fmt.Sprintf("%s is over budget", worst.budget.Category),
			Description: fmt.Sprintf("You've exceeded your %s budget by %s (%s%% over)",
				worst.budget.Category, formatAmount(worst.amount()), formatPercent(percentOver)),
		})
	}

	if count > 1 {
		out = append(out, Insight{
			Kind:        KindWarning,
			Title:       fmt.Sprintf("%d categories over budget", count),
			Description: fmt.Sprintf("You have %d categories where spending exceeds the budget", count),
		})
	}

	return out
}

type delta struct {
	category category.Category
	current  int64
	previous int64
}

func trendInsights(current, previous Totals) []Insight {
	var increased, decreased []delta

	for _, c := range current.Ordered() {
		prev := previous[c]
		if prev <= 0 {
			continue
		}

		d := delta{category: c, current: current[c], previous: prev}

		switch {
		case float64(d.current) > float64(prev)*(1+trendThreshold):
			increased = append(increased, d)
		case float64(d.current) < float64(prev)*(1-trendThreshold):
			decreased = append(decreased, d)
		}
	}

	var out []Insight

	if len(increased) > 0 {
		slices.SortStableFunc(increased, func(a, b delta) int {
			return cmp.Compare(b.current-b.previous, a.current-a.previous)
		})

		top := increased[0]
		out = append(out, Insight{
			Kind:  KindInfo,
			Title: fmt.Sprintf("%s spending increased", top.category),
			Description: fmt.Sprintf("Spending on %s increased by %s%% compared to last month",
				top.category, formatPercent((float64(top.current)/float64(top.previous)-1)*100)),
		})
	}

	if len(decreased) > 0 {
		slices.SortStableFunc(decreased, func(a, b delta) int {
			return cmp.Compare(b.previous-b.current, a.previous-a.current)
		})

		top := decreased[0]
		out = append(out, Insight{
			Kind:  KindSuccess,
			Title: fmt.Sprintf("%s spending decreased", top.category),
			Description: fmt.Sprintf("Spending on %s decreased by %s%% compared to last month",
				top.category, formatPercent(float64(top.previous-top.current)/float64(top.previous)*100)),
		})
	}

	return out
}

func wellManagedInsights(current Totals, budgets []*budget.Budget) []Insight {
	count := 0

	for _, b := range budgets {
		spent := current[b.Category]
		if float64(spent) >= float64(b.Amount)*wellManagedFloor && spent <= b.Amount {
			count++
		}
	}

	if count == 0 {
		return nil
	}

	return []Insight{{
		Kind:        KindSuccess,
		Title:       "Well managed budgets",
		Description: fmt.Sprintf("You're staying within budget for %d categories", count),
	}}
}

// budgetUsage returns the spend across budgeted categories and the sum of all
// budget amounts.
func budgetUsage(current Totals, budgets []*budget.Budget) (spent, total int64) {
	seen := make(map[category.Category]struct{}, len(budgets))

	for _, b := range budgets {
		total += b.Amount

		if _, dup := seen[b.Category]; dup {
			continue
		}

		seen[b.Category] = struct{}{}
		spent += current[b.Category]
	}

	return spent, total
}

func percentOf(part, whole int64) float64 {
	if whole == 0 {
		return 0
	}

	return float64(part) / float64(whole) * 100
}

// formatAmount renders cents as a plain two-decimal number.
func formatAmount(cents int64) string {
	return decimal.New(cents, -2).StringFixed(2)
}

func formatPercent(p float64) string {
	return decimal.NewFromFloat(p).Round(0).String()
}
