package importcsv_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	"github.com/Jamessshhh/Expense-Odyssey/internal/http/importcsv"
	"github.com/Jamessshhh/Expense-Odyssey/internal/importer"
)

func multipartCSV(t *testing.T, csv string) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "expenses.csv")
	require.NoError(t, err)

	_, err = part.Write([]byte(csv))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	return &buf, w.FormDataContentType()
}

func newTestRouter(t *testing.T) (http.Handler, *expense.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc, err := expense.NewService(context.Background(), repo)
	require.NoError(t, err)

	router := chi.NewRouter()
	importcsv.NewHandler(importer.New(), svc).Routes(router)

	return router, svc
}

func TestHandler_ImportCSV(t *testing.T) {
	router, svc := newTestRouter(t)

	body, contentType := multipartCSV(t, "Date,Amount,Category,Note\n2024-01-01,12.50,Food,lunch\n2024-01-02,30.00,Transport,taxi\n")

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Imported int `json:"imported"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Imported)

	assert.Len(t, svc.List(expense.CategoryAll), 2)
	assert.Equal(t, int64(4250), svc.Summary(expense.CategoryAll).Total)
}

func TestHandler_ImportCSV_BadFile(t *testing.T) {
	router, svc := newTestRouter(t)

	body, contentType := multipartCSV(t, "nothing,resembling,a\nledger,export,here\n")

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", contentType)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.List(expense.CategoryAll))
}

func TestHandler_ImportCSV_MissingFile(t *testing.T) {
	router, _ := newTestRouter(t)

	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
