package rule_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	httprule "github.com/MrJamesThe3rd/spendwise/internal/http/rule"
	"github.com/MrJamesThe3rd/spendwise/internal/rule"
)

func TestHandler(t *testing.T) {
	type testCase struct {
		name       string
		method     string
		target     string
		body       string
		setupMock  func(m *rule.MockRepository)
		wantStatus int
		wantBody   string
	}

	tests := []testCase{
		{
			name:   "Suggest",
			method: http.MethodGet,
			target: "/rules/suggest?description=UBER+TRIP",
			setupMock: func(m *rule.MockRepository) {
				m.EXPECT().FindCategory(gomock.Any(), "UBER TRIP").Return(category.Transportation, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `{"description":"UBER TRIP","category":"Transportation"}`,
		},
		{
			name:       "SuggestMissingDescription",
			method:     http.MethodGet,
			target:     "/rules/suggest",
			setupMock:  func(m *rule.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Learn",
			method: http.MethodPost,
			target: "/rules/",
			body:   `{"pattern":"uber","category":"transportation"}`,
			setupMock: func(m *rule.MockRepository) {
				m.EXPECT().CreateRule(gomock.Any(), "uber", category.Transportation).Return(nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "LearnEmptyPattern",
			method:     http.MethodPost,
			target:     "/rules/",
			body:       `{"pattern":"","category":"Food"}`,
			setupMock:  func(m *rule.MockRepository) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := rule.NewMockRepository(ctrl)
			tt.setupMock(repo)

			r := chi.NewRouter()
			r.Route("/rules", httprule.NewHandler(rule.NewService(repo)).Routes)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)

			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rec.Body.String())
			}
		})
	}
}
