package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

func TestTransactionParams(t *testing.T) {
	type testCase struct {
		name       string
		amount     string
		typ        transaction.Type
		date       string
		wantAmount int64
		wantErr    bool
	}

	tests := []testCase{
		{name: "expense is negative", amount: "12.50", typ: transaction.TypeExpense, date: "2025-10-03", wantAmount: -1250},
		{name: "income is positive", amount: "850", typ: transaction.TypeIncome, date: "2025-10-01", wantAmount: 85000},
		{name: "zero rejected", amount: "0", typ: transaction.TypeExpense, date: "2025-10-01", wantErr: true},
		{name: "negative input rejected", amount: "-5", typ: transaction.TypeIncome, date: "2025-10-01", wantErr: true},
		{name: "garbage amount", amount: "abc", typ: transaction.TypeIncome, date: "2025-10-01", wantErr: true},
		{name: "bad date", amount: "5", typ: transaction.TypeIncome, date: "03/10/2025", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			params, err := transactionParams(" Lunch ", tc.amount, tc.typ, category.Food, tc.date)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.wantAmount, params.Amount)
			assert.Equal(t, "Lunch", params.Description)
			assert.Equal(t, category.Food, params.Category)
			assert.Equal(t, time.UTC, params.Date.Location())
		})
	}
}

func TestCategoryOptions(t *testing.T) {
	opts := categoryOptions()

	require.Len(t, opts, len(category.All))
	assert.Equal(t, category.Housing, opts[0].Value)
	assert.Equal(t, category.Other, opts[len(opts)-1].Value)
}

func TestParseBudgetAmount(t *testing.T) {
	type testCase struct {
		in      string
		want    int64
		wantErr bool
	}

	tests := []testCase{
		{in: "120", want: 12000},
		{in: " 45.5 ", want: 4550},
		{in: "0", want: 0},
		{in: "-1", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := parseBudgetAmount(tc.in)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
