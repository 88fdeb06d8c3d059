package analytics

import (
	"cmp"
	"slices"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

// ComparisonRow sets one budget against the actual spend of its category.
type ComparisonRow struct {
	Category       category.Category
	BudgetAmount   int64
	ActualAmount   int64
	PercentageUsed float64 // 0 when BudgetAmount is 0
	Remaining      int64   // max(0, budget - actual)
	OverBudget     int64   // max(0, actual - budget)
	IsOverBudget   bool
}

func newComparisonRow(b *budget.Budget, actual int64) ComparisonRow {
	row := ComparisonRow{
		Category:     b.Category,
		BudgetAmount: b.Amount,
		ActualAmount: actual,
		Remaining:    max(0, b.Amount-actual),
		OverBudget:   max(0, actual-b.Amount),
		IsOverBudget: actual > b.Amount,
	}

	if b.Amount > 0 {
		row.PercentageUsed = float64(actual) / float64(b.Amount) * 100
	}

	return row
}

// Compare produces one row per budget, most utilised first. Budgets drive the
// row set: spend in a category without a budget is not shown. Rows with equal
// utilisation keep the order of budgets.
func Compare(totals Totals, budgets []*budget.Budget) []ComparisonRow {
	rows := make([]ComparisonRow, 0, len(budgets))
	for _, b := range budgets {
		rows = append(rows, newComparisonRow(b, totals[b.Category]))
	}

	slices.SortStableFunc(rows, func(a, b ComparisonRow) int {
		return cmp.Compare(b.PercentageUsed, a.PercentageUsed)
	})

	return rows
}
