package schools

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
)

const testID = "01J8Z4K6Q2W3E4R5T6Y7U8I9O0"

var testNow = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

type fixedClock struct{}

func (fixedClock) Now() time.Time { return testNow }

type fixedID struct{}

func (fixedID) New() (string, error) { return testID, nil }

var schoolColumns = []string{"school_id", "name", "address", "contact_person", "contact_phone",
	"contact_email", "notes", "is_active", "created_at", "updated_at"}

func setup(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	t.Helper()
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

func TestCreateSchool(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectExec("INSERT INTO schools").
		WithArgs(testID, "Greenfield Primary", "12 Hill Rd", nil, nil, nil, nil, true, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := do(r, http.MethodPost, "/schools", map[string]any{
		"name":    "  Greenfield   Primary ",
		"address": "12 Hill Rd",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/schools/"+testID, rec.Header().Get("Location"))

	var got SchoolResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Greenfield Primary", got.Name)
	assert.True(t, got.IsActive)
	assert.Nil(t, got.ContactEmail)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchoolErrors(t *testing.T) {
	t.Run("missing name", func(t *testing.T) {
		r, _ := setup(t)
		rec := do(r, http.MethodPost, "/schools", map[string]any{"address": "x"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_ARGUMENT")
	})
	t.Run("bad email", func(t *testing.T) {
		r, _ := setup(t)
		rec := do(r, http.MethodPost, "/schools", map[string]any{"name": "A", "contact_email": "nope"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
	t.Run("duplicate", func(t *testing.T) {
		r, mock := setup(t)
		mock.ExpectExec("INSERT INTO schools").WillReturnError(&mysql.MySQLError{Number: 1062})
		rec := do(r, http.MethodPost, "/schools", map[string]any{"name": "A"})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "CONFLICT")
	})
}

func TestGetSchoolNotFound(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("FROM schools WHERE school_id").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(schoolColumns))

	rec := do(r, http.MethodGet, "/schools/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"school not found"}}`, rec.Body.String())
}

func TestListSchools(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM schools WHERE`).
		WithArgs("%Green%", "%Green%", true).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT school_id, name").
		WithArgs("%Green%", "%Green%", true).
		WillReturnRows(sqlmock.NewRows(schoolColumns).
			AddRow("a", "Greenfield", nil, nil, nil, nil, nil, true, testNow, testNow).
			AddRow("b", "Greenhill", "Main St", "Mr. B", nil, nil, nil, true, testNow, testNow))

	rec := do(r, http.MethodGet, "/schools?q=Green&active=1&limit=2", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got struct {
		Items      []SchoolResponse `json:"items"`
		Total      int64            `json:"total"`
		NextOffset int              `json:"next_offset"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Items, 2)
	assert.Equal(t, int64(3), got.Total)
	assert.Equal(t, 2, got.NextOffset)
	assert.Equal(t, "Mr. B", *got.Items[1].ContactPerson)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateSchool(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("FROM schools WHERE school_id").
		WithArgs("a").
		WillReturnRows(sqlmock.NewRows(schoolColumns).
			AddRow("a", "Greenfield", nil, nil, nil, nil, "old", true, testNow.Add(-time.Hour), testNow.Add(-time.Hour)))
	mock.ExpectExec("UPDATE schools").
		WithArgs("Greenfield", nil, nil, nil, nil, "old", false, testNow, "a").
		WillReturnResult(sqlmock.NewResult(0, 1))

	rec := do(r, http.MethodPut, "/schools/a", map[string]any{"is_active": false})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"is_active":false`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteSchool(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r, mock := setup(t)
		mock.ExpectExec("DELETE FROM schools").WithArgs("a").WillReturnResult(sqlmock.NewResult(0, 1))
		rec := do(r, http.MethodDelete, "/schools/a", nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
	t.Run("referenced", func(t *testing.T) {
		r, mock := setup(t)
		mock.ExpectExec("DELETE FROM schools").WillReturnError(&mysql.MySQLError{Number: 1451})
		rec := do(r, http.MethodDelete, "/schools/a", nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})
	t.Run("missing", func(t *testing.T) {
		r, mock := setup(t)
		mock.ExpectExec("DELETE FROM schools").WillReturnResult(sqlmock.NewResult(0, 0))
		rec := do(r, http.MethodDelete, "/schools/a", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
