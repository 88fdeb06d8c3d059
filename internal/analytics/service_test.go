package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

func TestService_Dashboard(t *testing.T) {
	budgetFilter := budget.ListFilter{Month: new(october.Month), Year: new(october.Year)}

	t.Run("ComputesAndCaches", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txSource := analytics.NewMockTransactionSource(ctrl)
		budgetSource := analytics.NewMockBudgetSource(ctrl)

		txs := []*transaction.Transaction{
			newTx(category.Food, -120000, day(2025, time.October, 4)),
		}
		budgets := []*budget.Budget{newBudget(category.Food, 100000)}

		txSource.EXPECT().List(gomock.Any(), transaction.ListFilter{}).Return(txs, nil).Times(2)
		budgetSource.EXPECT().List(gomock.Any(), budgetFilter).Return(budgets, nil).Times(2)

		svc := analytics.NewService(txSource, budgetSource, time.Minute, time.Minute)

		first, err := svc.Dashboard(context.Background(), october)
		require.NoError(t, err)

		want, err := analytics.Compute(october, txs, budgets)
		require.NoError(t, err)
		assert.Equal(t, want, first)

		second, err := svc.Dashboard(context.Background(), october)
		require.NoError(t, err)
		assert.Equal(t, want, second)
		assert.NotSame(t, first, second)
	})

	t.Run("CallersCannotCorruptCache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txSource := analytics.NewMockTransactionSource(ctrl)
		budgetSource := analytics.NewMockBudgetSource(ctrl)

		txs := []*transaction.Transaction{
			newTx(category.Food, -120000, day(2025, time.October, 4)),
		}
		budgets := []*budget.Budget{newBudget(category.Food, 100000)}

		txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(txs, nil).Times(2)
		budgetSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(budgets, nil).Times(2)

		svc := analytics.NewService(txSource, budgetSource, time.Minute, time.Minute)

		want, err := analytics.Compute(october, txs, budgets)
		require.NoError(t, err)

		first, err := svc.Dashboard(context.Background(), october)
		require.NoError(t, err)

		first.Categories[category.Food] = 0
		first.AllTimeCategories[category.Travel] = 1
		first.Comparison[0].ActualAmount = 0
		first.Insights[0].Title = "changed"
		*first.Summary.TotalSpend = 0
		first.Summary.TopByAmount.Amount = 0
		first.Summary.MostRecent.Description = "changed"

		second, err := svc.Dashboard(context.Background(), october)
		require.NoError(t, err)
		assert.Equal(t, want, second)
	})

	t.Run("SnapshotChangeRecomputes", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txSource := analytics.NewMockTransactionSource(ctrl)
		budgetSource := analytics.NewMockBudgetSource(ctrl)

		before := []*transaction.Transaction{newTx(category.Food, -100, day(2025, time.October, 4))}
		after := []*transaction.Transaction{before[0], newTx(category.Travel, -900, day(2025, time.October, 5))}

		gomock.InOrder(
			txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(before, nil),
			txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(after, nil),
		)
		budgetSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).Times(2)

		svc := analytics.NewService(txSource, budgetSource, time.Minute, time.Minute)

		first, err := svc.Dashboard(context.Background(), october)
		require.NoError(t, err)

		second, err := svc.Dashboard(context.Background(), october)
		require.NoError(t, err)

		assert.NotSame(t, first, second)
		assert.Equal(t, int64(100), *first.Summary.TotalSpend)
		assert.Equal(t, int64(1000), *second.Summary.TotalSpend)
	})

	t.Run("SourceError", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txSource := analytics.NewMockTransactionSource(ctrl)
		budgetSource := analytics.NewMockBudgetSource(ctrl)

		dbErr := errors.New("connection refused")

		txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, dbErr)
		budgetSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		svc := analytics.NewService(txSource, budgetSource, time.Minute, time.Minute)

		_, err := svc.Dashboard(context.Background(), october)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("InvalidSnapshot", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txSource := analytics.NewMockTransactionSource(ctrl)
		budgetSource := analytics.NewMockBudgetSource(ctrl)

		txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, nil)
		budgetSource.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*budget.Budget{newBudget(category.Food, -5)}, nil)

		svc := analytics.NewService(txSource, budgetSource, time.Minute, time.Minute)

		_, err := svc.Dashboard(context.Background(), october)
		assert.ErrorIs(t, err, analytics.ErrInvalidInput)
	})

	t.Run("InvalidPeriod", func(t *testing.T) {
		ctrl := gomock.NewController(t)

		svc := analytics.NewService(
			analytics.NewMockTransactionSource(ctrl),
			analytics.NewMockBudgetSource(ctrl),
			time.Minute, time.Minute,
		)

		_, err := svc.Dashboard(context.Background(), analytics.Period{Month: 12, Year: 2025})
		assert.ErrorIs(t, err, analytics.ErrInvalidInput)
	})
}
