package cashflow

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BBS-backend/internal/platform/web"
)

const testID = "01J8Z4K6Q2W3E4R5T6Y7U8I9O0"

var testNow = time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

type fixedID struct{}

func (fixedID) New() (string, error) { return testID, nil }

var entryColumns = []string{"entry_id", "entry_type", "category_id", "code", "name", "amount", "occurred_on",
	"description", "reference", "schedule_id", "created_at", "updated_at"}

func setup(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
	require.NoError(t, web.RegisterValidators())
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })

	svc := NewService(conn)
	svc.clock = fixedClock{}
	svc.id = fixedID{}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, svc)
	return r, mock
}

func do(r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func expectCategory(mock sqlmock.Sqlmock, id uint, disabled bool) {
	mock.ExpectQuery("FROM cashflow_categories WHERE category_id").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "name", "code", "is_disabled"}).
			AddRow(id, "Donations", "DON", disabled))
}

func TestCreateCategoryUppercasesCode(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectExec("INSERT INTO cashflow_categories").WithArgs("Donations", "DON").
		WillReturnResult(sqlmock.NewResult(7, 1))

	rec := do(r, http.MethodPost, "/cashflow/categories", map[string]any{"name": " Donations ", "code": "don"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/cashflow/categories/7", rec.Header().Get("Location"))
	assert.JSONEq(t, `{"id":7,"name":"Donations","code":"DON","is_disabled":false}`, rec.Body.String())
}

func TestCreateCategoryDuplicate(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectExec("INSERT INTO cashflow_categories").WillReturnError(&mysql.MySQLError{Number: 1062})

	rec := do(r, http.MethodPost, "/cashflow/categories", map[string]any{"name": "Donations", "code": "DON"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestCategoryInvalidID(t *testing.T) {
	r, _ := setup(t)
	rec := do(r, http.MethodGet, "/cashflow/categories/abc", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateEntry(t *testing.T) {
	r, mock := setup(t)
	expectCategory(mock, 3, false)
	mock.ExpectExec("INSERT INTO cashflow_entries").
		WithArgs(testID, "income", uint(3), int64(25000), "2025-03-01", "March donation", nil, nil, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := do(r, http.MethodPost, "/cashflow/entries", map[string]any{
		"type": "income", "category_id": 3, "amount": 25000, "occurred_on": "2025-03-01",
		"description": " March donation ",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got EntryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "DON", got.CategoryCode)
	assert.Equal(t, int64(25000), got.Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntryDisabledCategory(t *testing.T) {
	r, mock := setup(t)
	expectCategory(mock, 3, true)

	rec := do(r, http.MethodPost, "/cashflow/entries", map[string]any{
		"type": "expense", "category_id": 3, "amount": 100, "occurred_on": "2025-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "disabled")
}

func TestCreateEntryUnknownCategory(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("FROM cashflow_categories WHERE category_id").WithArgs(uint(9)).
		WillReturnRows(sqlmock.NewRows([]string{"category_id", "name", "code", "is_disabled"}))

	rec := do(r, http.MethodPost, "/cashflow/entries", map[string]any{
		"type": "income", "category_id": 9, "amount": 100, "occurred_on": "2025-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "category does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateEntryRejectsNonPositiveAmount(t *testing.T) {
	r, _ := setup(t)
	rec := do(r, http.MethodPost, "/cashflow/entries", map[string]any{
		"type": "expense", "category_id": 3, "amount": -5, "occurred_on": "2025-03-01",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSummaryDefaultsToCurrentMonth(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("FROM cashflow_entries e").WithArgs("2025-03-01", "2025-03-31").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("e1", "income", 1, "DON", "Donations", 30000, "2025-03-02", nil, nil, nil, testNow, testNow).
			AddRow("e2", "expense", 2, "BUS", "Transport", 4500, "2025-03-05", nil, nil, nil, testNow, testNow))

	rec := do(r, http.MethodGet, "/cashflow/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "2025-03-01", got.From)
	assert.Equal(t, "2025-03-31", got.To)
	assert.Equal(t, int64(25500), got.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSummaryRejectsInvertedRange(t *testing.T) {
	r, _ := setup(t)
	rec := do(r, http.MethodGet, "/cashflow/summary?from=2025-04-01&to=2025-03-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("FROM cashflow_entries e").WithArgs("2025-01-01", "2025-01-31").
		WillReturnRows(sqlmock.NewRows(entryColumns).
			AddRow("e1", "income", 1, "DON", "Donations", 30000, "2025-01-02", nil, "R-1", nil, testNow, testNow))

	rec := do(r, http.MethodGet, "/cashflow/export?from=2025-01-01&to=2025-01-31", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "cashflow_2025-01-01_2025-01-31.csv")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\xEF\xBB\xBF")))
	assert.Contains(t, rec.Body.String(), "2025-01-02,income,DON,Donations,30000,,R-1,")
}
