package seed_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/seed"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

var now = time.Date(2026, time.January, 15, 10, 0, 0, 0, time.UTC)

func TestService_Seed_EmptyLedger(t *testing.T) {
	ctrl := gomock.NewController(t)
	txs := seed.NewMockTransactions(ctrl)
	budgets := seed.NewMockBudgets(ctrl)

	var created []transaction.CreateParams

	txs.EXPECT().List(gomock.Any(), transaction.ListFilter{}).Return(nil, nil)
	txs.EXPECT().CreateBatch(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params []transaction.CreateParams) ([]*transaction.Transaction, error) {
			created = params
			return make([]*transaction.Transaction, len(params)), nil
		})
	budgets.EXPECT().Set(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, p budget.SetParams) (*budget.Budget, error) {
			assert.Equal(t, 0, p.Month)
			assert.Equal(t, 2026, p.Year)
			return &budget.Budget{Category: p.Category, Amount: p.Amount}, nil
		}).
		Times(8)

	res, err := seed.NewService(txs, budgets).Seed(context.Background(), now)
	require.NoError(t, err)

	assert.Equal(t, len(created), res.Transactions)
	assert.Equal(t, 8, res.Budgets)

	var current, previous int

	for _, p := range created {
		require.NoError(t, (&transaction.Transaction{
			Amount: p.Amount, Description: p.Description, Category: p.Category, Date: p.Date,
		}).Validate())

		switch {
		case p.Date.Year() == 2026 && p.Date.Month() == time.January:
			current++
		case p.Date.Year() == 2025 && p.Date.Month() == time.December:
			previous++
		default:
			t.Errorf("unexpected seed date %s", p.Date)
		}
	}

	assert.Equal(t, 13, current)
	assert.Equal(t, 6, previous)
}

func TestService_Seed_ExistingLedgerOnlyUpsertsBudgets(t *testing.T) {
	ctrl := gomock.NewController(t)
	txs := seed.NewMockTransactions(ctrl)
	budgets := seed.NewMockBudgets(ctrl)

	txs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{{}}, nil)
	budgets.EXPECT().Set(gomock.Any(), gomock.Any()).Return(&budget.Budget{}, nil).Times(8)

	res, err := seed.NewService(txs, budgets).Seed(context.Background(), now)
	require.NoError(t, err)

	assert.Zero(t, res.Transactions)
	assert.Equal(t, 8, res.Budgets)
}

func TestService_Seed_Errors(t *testing.T) {
	dbErr := errors.New("db down")

	t.Run("List", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txs := seed.NewMockTransactions(ctrl)

		txs.EXPECT().List(gomock.Any(), gomock.Any()).Return(nil, dbErr)

		_, err := seed.NewService(txs, seed.NewMockBudgets(ctrl)).Seed(context.Background(), now)
		assert.ErrorIs(t, err, dbErr)
	})

	t.Run("Budget", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		txs := seed.NewMockTransactions(ctrl)
		budgets := seed.NewMockBudgets(ctrl)

		txs.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{{}}, nil)
		budgets.EXPECT().Set(gomock.Any(), gomock.Any()).Return(nil, dbErr)

		_, err := seed.NewService(txs, budgets).Seed(context.Background(), now)
		assert.ErrorIs(t, err, dbErr)
	})
}
