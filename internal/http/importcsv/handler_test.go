package importcsv_test

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
	"github.com/MrJamesThe3rd/spendwise/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendwise/internal/importer"
	"github.com/MrJamesThe3rd/spendwise/internal/transaction"
)

const upload = "date;description;amount;category\n2025-10-03;Lunch;-9.50;Food\n"

func multipartBody(t *testing.T, profile, content string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("profile", profile))

	fw, err := mw.CreateFormFile("file", "export.csv")
	require.NoError(t, err)

	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	return &buf, mw.FormDataContentType()
}

func newRouter(t *testing.T, setup func(repo *transaction.MockRepository, itx *transaction.MockImportTx)) http.Handler {
	ctrl := gomock.NewController(t)
	repo := transaction.NewMockRepository(ctrl)
	itx := transaction.NewMockImportTx(ctrl)
	setup(repo, itx)

	h := importcsv.NewHandler(importer.NewService(nil), transaction.NewService(repo))

	r := chi.NewRouter()
	r.Route("/import", h.Routes)

	return r
}

func TestHandler_Import(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		router := newRouter(t, func(repo *transaction.MockRepository, itx *transaction.MockImportTx) {
			repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
			itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return(nil, nil)
			itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, txs []*transaction.Transaction) error {
					require.Len(t, txs, 1)
					assert.Equal(t, int64(-950), txs[0].Amount)
					assert.Equal(t, category.Food, txs[0].Category)
					return nil
				})
			itx.EXPECT().Commit().Return(nil)
			itx.EXPECT().Rollback().Return(nil)
		})

		body, contentType := multipartBody(t, "spendwise", upload)
		req := httptest.NewRequest(http.MethodPost, "/import/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"imported":1`)
	})

	t.Run("Conflict", func(t *testing.T) {
		existing := &transaction.Transaction{
			ID:          uuid.New(),
			Amount:      -950,
			Description: "Lunch",
			Category:    category.Food,
			Date:        time.Date(2025, 10, 3, 0, 0, 0, 0, time.UTC),
		}

		router := newRouter(t, func(repo *transaction.MockRepository, itx *transaction.MockImportTx) {
			repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
			itx.EXPECT().FindDuplicates(gomock.Any(), gomock.Any()).Return([]*transaction.Transaction{existing}, nil)
			itx.EXPECT().Rollback().Return(nil)
		})

		body, contentType := multipartBody(t, "spendwise", upload)
		req := httptest.NewRequest(http.MethodPost, "/import/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), existing.ID.String())
	})

	t.Run("UnknownProfile", func(t *testing.T) {
		router := newRouter(t, func(*transaction.MockRepository, *transaction.MockImportTx) {})

		body, contentType := multipartBody(t, "revolut", upload)
		req := httptest.NewRequest(http.MethodPost, "/import/", body)
		req.Header.Set("Content-Type", contentType)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_Confirm(t *testing.T) {
	router := newRouter(t, func(repo *transaction.MockRepository, itx *transaction.MockImportTx) {
		repo.EXPECT().BeginImport(gomock.Any(), gomock.Any(), gomock.Any()).Return(itx, nil)
		itx.EXPECT().CreateTransactions(gomock.Any(), gomock.Any()).Return(nil)
		itx.EXPECT().Commit().Return(nil)
		itx.EXPECT().Rollback().Return(nil)
	})

	body := `{"params":[{"amount":-950,"description":"Lunch","category":"Food","date":"2025-10-03T00:00:00Z"}]}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/import/confirm", strings.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"imported":1`)
}
