package budget_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/budget"
	"github.com/MrJamesThe3rd/spendwise/internal/category"
	httpbudget "github.com/MrJamesThe3rd/spendwise/internal/http/budget"
)

func TestHandler(t *testing.T) {
	id := uuid.New()

	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *budget.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "SetUpserts",
			method: http.MethodPost,
			target: "/budgets/",
			body:   `{"category":"food","amount":12000,"month":9,"year":2025}`,
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().UpsertBudget(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *budget.Budget) error {
						assert.Equal(t, category.Food, b.Category)
						b.ID = id
						return nil
					})
			},
			wantStatus: http.StatusOK,
			wantBody:   `"category":"Food"`,
		},
		{
			name:       "SetRejectsMonthOutOfRange",
			method:     http.MethodPost,
			target:     "/budgets/",
			body:       `{"category":"Food","amount":1,"month":12,"year":2025}`,
			setupMock:  func(m *budget.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "SetRejectsNegativeAmount",
			method:     http.MethodPost,
			target:     "/budgets/",
			body:       `{"category":"Food","amount":-1,"month":1,"year":2025}`,
			setupMock:  func(m *budget.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "ListByPeriod",
			method: http.MethodGet,
			target: "/budgets/?month=9&year=2025",
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().ListBudgets(gomock.Any(), budget.ListFilter{Month: new(9), Year: new(2025)}).
					Return([]*budget.Budget{{ID: id, Category: category.Food, Amount: 100, Month: 9, Year: 2025}}, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"amount":100`,
		},
		{
			name:       "ListMonthWithoutYear",
			method:     http.MethodGet,
			target:     "/budgets/?month=9",
			setupMock:  func(m *budget.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "UpdateAmountNotFound",
			method: http.MethodPut,
			target: "/budgets/" + id.String(),
			body:   `{"amount":500}`,
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().UpdateAmount(gomock.Any(), id, int64(500)).Return(nil, budget.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "Delete",
			method: http.MethodDelete,
			target: "/budgets/" + id.String(),
			setupMock: func(m *budget.MockRepository) {
				m.EXPECT().DeleteBudget(gomock.Any(), id).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := budget.NewMockRepository(ctrl)
			tt.setupMock(repo)

			r := chi.NewRouter()
			r.Route("/budgets", httpbudget.NewHandler(budget.NewService(repo)).Routes)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
		})
	}
}
