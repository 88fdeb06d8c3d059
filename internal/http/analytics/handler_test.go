package analytics

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/analytics"
	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

func newTestRouter(t *testing.T, txs []*transaction.Transaction, budgets []*budget.Budget) http.Handler {
	ctrl := gomock.NewController(t)
	txSource := analytics.NewMockTransactionSource(ctrl)
	budgetSource := analytics.NewMockBudgetSource(ctrl)

	txSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(txs, nil).AnyTimes()
	budgetSource.EXPECT().List(gomock.Any(), gomock.Any()).Return(budgets, nil).AnyTimes()

	h := NewHandler(analytics.NewService(txSource, budgetSource, time.Minute, time.Minute))
	h.now = func() time.Time { return time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC) }

	r := chi.NewRouter()
	r.Route("/analytics", h.Routes)

	return r
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	return rec
}

func TestHandler_Dashboard(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: uuid.New(), Amount: -120000, Description: "Groceries", Category: category.Food, Date: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Amount: -5000, Description: "Bus pass", Category: category.Transportation, Date: time.Date(2025, 9, 3, 0, 0, 0, 0, time.UTC)},
	}
	budgets := []*budget.Budget{{ID: uuid.New(), Category: category.Food, Amount: 100000, Month: 9, Year: 2025}}

	rec := get(t, newTestRouter(t, txs, budgets), "/analytics/dashboard")
	require.Equal(t, http.StatusOK, rec.Code)

	var got dashboardResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, periodResponse{Month: 9, Year: 2025}, got.Period)
	assert.Equal(t, []categoryTotalResponse{{Category: category.Food, Total: 120000}}, got.Categories)
	assert.Len(t, got.AllTimeCategories, 2)
	assert.Len(t, got.Monthly, 12)
	require.Len(t, got.Comparison, 1)
	assert.True(t, got.Comparison[0].IsOverBudget)
	require.Len(t, got.Insights, 1)
	assert.Equal(t, analytics.KindWarning, got.Insights[0].Type)
	assert.Equal(t, "You've exceeded your Food budget by 200.00 (20% over)", got.Insights[0].Description)
	require.NotNil(t, got.Summary.TotalSpend)
	assert.Equal(t, int64(125000), *got.Summary.TotalSpend)
}

func TestHandler_Categories(t *testing.T) {
	txs := []*transaction.Transaction{
		{ID: uuid.New(), Amount: -100, Description: "a", Category: category.Food, Date: time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC)},
		{ID: uuid.New(), Amount: -300, Description: "b", Category: category.Food, Date: time.Date(2024, 3, 3, 0, 0, 0, 0, time.UTC)},
	}

	router := newTestRouter(t, txs, nil)

	rec := get(t, router, "/analytics/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"category":"Food","total":400}]`, rec.Body.String())

	rec = get(t, router, "/analytics/categories?month=2&year=2024")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"category":"Food","total":300}]`, rec.Body.String())
}

func TestHandler_SummaryEmpty(t *testing.T) {
	rec := get(t, newTestRouter(t, nil, nil), "/analytics/summary")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"total_spend": null,
		"top_category_by_count": null,
		"top_category_by_amount": null,
		"most_recent_transaction": null
	}`, rec.Body.String())
}

func TestHandler_InsightsFallback(t *testing.T) {
	budgets := []*budget.Budget{{ID: uuid.New(), Category: category.Food, Amount: 1000, Month: 9, Year: 2025}}

	rec := get(t, newTestRouter(t, nil, budgets), "/analytics/insights")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{
		"type": "tip",
		"title": "You're under budget",
		"description": "You've only used 0% of your total budget. Consider saving the difference!"
	}]`, rec.Body.String())
}

func TestHandler_BadPeriod(t *testing.T) {
	router := newTestRouter(t, nil, nil)

	for _, target := range []string{
		"/analytics/monthly?month=12",
		"/analytics/comparison?month=x",
		"/analytics/summary?year=abc",
	} {
		rec := get(t, router, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}
