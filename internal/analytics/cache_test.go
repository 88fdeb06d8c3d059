package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

func TestService_DashboardStoresOneEntryPerSnapshot(t *testing.T) {
	ctrl := gomock.NewController(t)
	txSource := NewMockTransactionSource(ctrl)
	budgetSource := NewMockBudgetSource(ctrl)

	txs := []*transaction.Transaction{{
		Amount:      -500,
		Description: "Cinema",
		Category:    category.Entertainment,
		Date:        time.Date(2025, time.October, 8, 0, 0, 0, 0, time.UTC),
	}}

	txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(txs, nil).Times(3)
	budgetSource.EXPECT().List(gomock.Any(), gomock.Any()).Return([]*budget.Budget(nil), nil).Times(3)

	svc := NewService(txSource, budgetSource, time.Minute, time.Minute)
	period := Period{Month: 9, Year: 2025}

	for range 3 {
		_, err := svc.Dashboard(context.Background(), period)
		require.NoError(t, err)
	}

	assert.Equal(t, 1, svc.cache.ItemCount())
}
