package attendance

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

var recordColumns = []string{"attendance_id", "schedule_id", "student_id", "name", "attendance_status",
	"knowledge_score", "participation_score", "notes", "created_at", "updated_at"}

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

func expectSchedule(mock sqlmock.Sqlmock, id, status string) {
	mock.ExpectQuery("SELECT status FROM schedules").WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow(status))
}

func TestMarkCreates(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectBegin()
	expectSchedule(mock, "sch1", "completed")
	mock.ExpectQuery("FROM attendance_records").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}))
	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(testID, "sch1", "stu1", "present", 80.0, nil, nil, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM attendance_records a").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow(testID, "sch1", "stu1", "Mina", "present", 80.0, nil, nil, testNow, testNow))
	mock.ExpectCommit()

	rec := do(r, http.MethodPost, "/attendance", map[string]any{
		"schedule_id": "sch1", "student_id": "stu1", "attendance_status": "present", "knowledge_score": 80,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "/attendance/"+testID, rec.Header().Get("Location"))

	var got RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "Mina", got.StudentName)
	require.NotNil(t, got.KnowledgeScore)
	assert.Equal(t, 80.0, *got.KnowledgeScore)
	assert.Nil(t, got.ParticipationScore)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkUpdatesExisting(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectBegin()
	expectSchedule(mock, "sch1", "completed")
	mock.ExpectQuery("FROM attendance_records").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}).AddRow("existing"))
	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs("existing", "sch1", "stu1", "late", nil, nil, nil, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("FROM attendance_records a").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("existing", "sch1", "stu1", "Mina", "late", nil, nil, nil, testNow, testNow))
	mock.ExpectCommit()

	rec := do(r, http.MethodPost, "/attendance", map[string]any{
		"schedule_id": "sch1", "student_id": "stu1", "attendance_status": "late",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkLosesFirstInsertRace(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectBegin()
	expectSchedule(mock, "sch1", "completed")
	mock.ExpectQuery("FROM attendance_records").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}))
	// another request inserted the pair first, so the upsert updated its row
	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs(testID, "sch1", "stu1", "present", nil, nil, nil, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectQuery("FROM attendance_records a").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("winner", "sch1", "stu1", "Mina", "present", nil, nil, nil, testNow, testNow))
	mock.ExpectCommit()

	rec := do(r, http.MethodPost, "/attendance", map[string]any{
		"schedule_id": "sch1", "student_id": "stu1", "attendance_status": "present",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Empty(t, rec.Header().Get("Location"))

	var got RecordResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "winner", got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkDeadlock(t *testing.T) {
	r, mock := setup(t)
	deadlock := &mysql.MySQLError{Number: 1213, Message: "Deadlock found when trying to get lock"}
	for i := 0; i < 2; i++ {
		mock.ExpectBegin()
		expectSchedule(mock, "sch1", "completed")
		mock.ExpectQuery("FROM attendance_records").WithArgs("sch1", "stu1").
			WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}))
		mock.ExpectExec("INSERT INTO attendance_records").WillReturnError(deadlock)
		mock.ExpectRollback()
	}

	rec := do(r, http.MethodPost, "/attendance", map[string]any{
		"schedule_id": "sch1", "student_id": "stu1", "attendance_status": "present",
	})
	assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"CONFLICT"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRetriesAfterDeadlock(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectBegin()
	expectSchedule(mock, "sch1", "completed")
	mock.ExpectQuery("FROM attendance_records").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}))
	mock.ExpectExec("INSERT INTO attendance_records").WillReturnError(&mysql.MySQLError{Number: 1213})
	mock.ExpectRollback()

	mock.ExpectBegin()
	expectSchedule(mock, "sch1", "completed")
	mock.ExpectQuery("FROM attendance_records").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows([]string{"attendance_id"}).AddRow("winner"))
	mock.ExpectExec("INSERT INTO attendance_records").
		WithArgs("winner", "sch1", "stu1", "present", nil, nil, nil, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("FROM attendance_records a").WithArgs("sch1", "stu1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("winner", "sch1", "stu1", "Mina", "present", nil, nil, nil, testNow, testNow))
	mock.ExpectCommit()

	rec := do(r, http.MethodPost, "/attendance", map[string]any{
		"schedule_id": "sch1", "student_id": "stu1", "attendance_status": "present",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkRejectsInvalidInput(t *testing.T) {
	r, _ := setup(t)
	for name, body := range map[string]map[string]any{
		"unknown status": {"schedule_id": "s", "student_id": "x", "attendance_status": "excused"},
		"score too high": {"schedule_id": "s", "student_id": "x", "attendance_status": "present", "knowledge_score": 101},
		"negative score": {"schedule_id": "s", "student_id": "x", "attendance_status": "present", "participation_score": -1},
		"missing ids":    {"attendance_status": "present"},
	} {
		t.Run(name, func(t *testing.T) {
			rec := do(r, http.MethodPost, "/attendance", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestBulkUnknownSchedule(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM schedules").WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"status"}))
	mock.ExpectRollback()

	rec := do(r, http.MethodPut, "/schedules/missing/attendance", map[string]any{
		"records": []map[string]any{{"student_id": "stu1", "attendance_status": "present"}},
	})
	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"NOT_FOUND"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkDuplicateStudent(t *testing.T) {
	r, _ := setup(t)
	rec := do(r, http.MethodPut, "/schedules/sch1/attendance", map[string]any{
		"records": []map[string]any{
			{"student_id": "stu1", "attendance_status": "present"},
			{"student_id": "stu1", "attendance_status": "absent"},
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatisticsNotCompleted(t *testing.T) {
	r, mock := setup(t)
	expectSchedule(mock, "sch1", "scheduled")

	rec := do(r, http.MethodGet, "/schedules/sch1/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"schedule_id":"sch1","status":"scheduled","has_data":false,"statistics":null}`, rec.Body.String())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsCompleted(t *testing.T) {
	r, mock := setup(t)
	expectSchedule(mock, "sch1", "completed")
	mock.ExpectQuery("FROM attendance_records a").WithArgs("sch1").
		WillReturnRows(sqlmock.NewRows(recordColumns).
			AddRow("a1", "sch1", "s1", "A", "present", 80.0, 90.0, nil, testNow, testNow).
			AddRow("a2", "sch1", "s2", "B", "late", 60.0, nil, nil, testNow, testNow).
			AddRow("a3", "sch1", "s3", "C", "absent", nil, nil, nil, testNow, testNow))

	rec := do(r, http.MethodGet, "/schedules/sch1/statistics", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got StatisticsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.HasData)
	require.NotNil(t, got.Statistics)
	assert.Equal(t, 3, got.Statistics.StudentCount)
	assert.Equal(t, 66.7, got.Statistics.AttendanceRate)
	assert.Equal(t, 70.0, got.Statistics.AvgKnowledge)
	assert.Equal(t, 90.0, got.Statistics.AvgParticipation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentHistorySummarizesCompletedOnly(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("SELECT 1 FROM students").WithArgs("stu1").
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	cols := append(append([]string{}, recordColumns...), "scheduled_date", "status")
	mock.ExpectQuery("FROM attendance_records a").WithArgs("stu1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("a1", "sch1", "stu1", "Mina", "present", 90.0, nil, nil, testNow, testNow, "2025-01-10", "completed").
			AddRow("a2", "sch2", "stu1", "Mina", "absent", 10.0, nil, nil, testNow, testNow, "2025-01-03", "cancelled"))

	rec := do(r, http.MethodGet, "/students/stu1/attendance", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var got StudentHistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Len(t, got.Records, 2)
	require.True(t, got.HasData)
	require.NotNil(t, got.Summary)
	assert.Equal(t, 1, got.Summary.Sessions)
	assert.Equal(t, 100.0, got.Summary.AttendanceRate)
	assert.Equal(t, 90.0, got.Summary.AvgKnowledge)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentHistoryUnknownStudent(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectQuery("SELECT 1 FROM students").WithArgs("nobody").
		WillReturnRows(sqlmock.NewRows([]string{"1"}))

	rec := do(r, http.MethodGet, "/students/nobody/attendance", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteMissing(t *testing.T) {
	r, mock := setup(t)
	mock.ExpectExec("DELETE FROM attendance_records").WithArgs("a9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	rec := do(r, http.MethodDelete, "/attendance/a9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
