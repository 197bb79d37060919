package expense_test

import (
	"context"
	"encoding/json"
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

	"github.com/Jamessshhh/Expense-Odyssey/internal/expense"
	expenseHandler "github.com/Jamessshhh/Expense-Odyssey/internal/http/expense"
)

func newTestRouter(t *testing.T, loaded []*expense.Expense) (http.Handler, *expense.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := expense.NewMockRepository(ctrl)
	repo.EXPECT().Load(gomock.Any()).Return(loaded, nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	svc, err := expense.NewService(context.Background(), repo)
	require.NoError(t, err)

	router := chi.NewRouter()
	expenseHandler.NewHandler(svc).Routes(router)

	return router, svc
}

func fixture() []*expense.Expense {
	return []*expense.Expense{
		{
			ID:       uuid.New(),
			Amount:   1250,
			Category: expense.CategoryFood,
			Date:     time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
			Note:     "lunch",
		},
		{
			ID:       uuid.New(),
			Amount:   3000,
			Category: expense.CategoryTransport,
			Date:     time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			Note:     "taxi",
		},
	}
}

func TestHandler_List(t *testing.T) {
	router, _ := newTestRouter(t, fixture())

	t.Run("All", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "lunch", got[0]["note"])
		assert.Equal(t, "2024-01-01", got[0]["date"])
	})

	t.Run("ByCategory", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?category=Transport", nil))

		require.Equal(t, http.StatusOK, rec.Code)

		var got []map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Len(t, got, 1)
		assert.Equal(t, "taxi", got[0]["note"])
	})
}

func TestHandler_Create(t *testing.T) {
	router, svc := newTestRouter(t, nil)

	body := `{"amount":999,"category":"Health","date":"2024-06-01","note":"pharmacy"}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code)

	var got map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, float64(999), got["amount"])
	assert.NotEmpty(t, got["id"])

	assert.Len(t, svc.List(expense.CategoryAll), 1)
}

func TestHandler_Create_BadInput(t *testing.T) {
	router, svc := newTestRouter(t, nil)

	for name, body := range map[string]string{
		"BadDate":        `{"amount":999,"category":"Health","date":"01/06/2024"}`,
		"NegativeAmount": `{"amount":-1,"category":"Health","date":"2024-06-01"}`,
		"NotJSON":        `nope`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}

	assert.Empty(t, svc.List(expense.CategoryAll))
}

func TestHandler_Update(t *testing.T) {
	existing := fixture()
	router, svc := newTestRouter(t, existing)

	body := `{"note":"brunch","amount":1500}`
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+existing[0].ID.String(), strings.NewReader(body)))

	require.Equal(t, http.StatusOK, rec.Code)

	all := svc.List(expense.CategoryAll)
	assert.Equal(t, "brunch", all[0].Note)
	assert.Equal(t, int64(1500), all[0].Amount)
	assert.Equal(t, expense.CategoryFood, all[0].Category, "unset fields untouched")
}

func TestHandler_Update_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, fixture())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/"+uuid.NewString(), strings.NewReader(`{"note":"x"}`)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_Delete(t *testing.T) {
	existing := fixture()
	router, svc := newTestRouter(t, existing)

	// Capture the target URL up front: the service takes ownership of the
	// loaded slice, so existing[0] is no longer the deleted record after
	// the first request.
	target := "/" + existing[0].ID.String()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, target, nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	require.Len(t, svc.List(expense.CategoryAll), 1)
}

func TestHandler_Summary(t *testing.T) {
	router, _ := newTestRouter(t, fixture())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/summary", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Total      int64            `json:"total"`
		ByCategory map[string]int64 `json:"by_category"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))

	assert.Equal(t, int64(4250), got.Total)
	assert.Equal(t, map[string]int64{"Food": 1250, "Transport": 3000}, got.ByCategory)
}
