package view

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

func TestNextPeriod(t *testing.T) {
	assert.Equal(t, analytics.Period{Month: 0, Year: 2026}, nextPeriod(analytics.Period{Month: 11, Year: 2025}))
	assert.Equal(t, analytics.Period{Month: 5, Year: 2025}, nextPeriod(analytics.Period{Month: 4, Year: 2025}))
}

func TestBar(t *testing.T) {
	type testCase struct {
		name string
		v    int64
		peak int64
		want int
	}

	tests := []testCase{
		{name: "peak fills the width", v: 500, peak: 500, want: 10},
		{name: "half", v: 250, peak: 500, want: 5},
		{name: "tiny value still shows", v: 1, peak: 500, want: 1},
		{name: "zero is empty", v: 0, peak: 500, want: 0},
		{name: "no peak", v: 0, peak: 0, want: 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, strings.Count(bar(tc.v, tc.peak, 10), "█"))
		})
	}
}

func TestRenderSummary(t *testing.T) {
	assert.Equal(t, "No transactions yet.", renderSummary(analytics.Summary{}))

	s := analytics.Summarize([]*transaction.Transaction{
		{Amount: -4200, Description: "Groceries", Category: category.Food, Date: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)},
	})

	out := renderSummary(s)
	assert.Contains(t, out, "Total spent:     42.00")
	assert.Contains(t, out, "Most frequent:   Food (1)")
	assert.Contains(t, out, "2025-10-03 Groceries (-42.00)")
}

func TestComparisonRows(t *testing.T) {
	rows := comparisonRows([]analytics.ComparisonRow{
		{Category: category.Food, BudgetAmount: 10000, ActualAmount: 12000, PercentageUsed: 120, OverBudget: 2000, IsOverBudget: true},
		{Category: category.Housing, BudgetAmount: 35000, ActualAmount: 28000, PercentageUsed: 80, Remaining: 7000},
	})

	assert.Equal(t, []string{"Food", "100.00", "120.00", "120", "-20.00"}, []string(rows[0]))
	assert.Equal(t, []string{"Housing", "350.00", "280.00", "80", "70.00"}, []string(rows[1]))
}
