package lessons

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BBS-backend/internal/platform/web"
)

type stubClock struct{ t time.Time }

func (c stubClock) Now() time.Time { return c.t }

type stubID string

func (s stubID) New() (string, error) { return string(s), nil }

var (
	testNow       = time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	lessonColumns = []string{"lesson_id", "title", "description", "objectives", "duration_minutes", "is_active", "created_at", "updated_at"}
)

func newTestService(t *testing.T) (*Service, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	svc := NewService(conn)
	svc.clock = stubClock{testNow}
	svc.id = stubID("01JLESSON0000000000000000A")
	return svc, mock
}

func TestCreateDefaultsDuration(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectExec("INSERT INTO lessons").
		WithArgs("01JLESSON0000000000000000A", "Water Cycle", nil, nil, DefaultDurationMinutes, true, testNow, testNow).
		WillReturnResult(sqlmock.NewResult(0, 1))

	got, err := svc.Create(context.Background(), CreateLessonRequest{Title: " Water   Cycle "})
	require.NoError(t, err)
	assert.Equal(t, DefaultDurationMinutes, got.DurationMinutes)
	assert.True(t, got.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateDuplicateTitle(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectExec("INSERT INTO lessons").WillReturnError(&mysql.MySQLError{Number: 1062})

	_, err := svc.Create(context.Background(), CreateLessonRequest{Title: "Water Cycle", DurationMinutes: 45})
	assert.Equal(t, 409, web.ToHTTPStatus(err))
}

func TestUpdateDeactivates(t *testing.T) {
	svc, mock := newTestService(t)
	created := testNow.Add(-48 * time.Hour)
	mock.ExpectQuery("FROM lessons").WithArgs("l1").
		WillReturnRows(sqlmock.NewRows(lessonColumns).
			AddRow("l1", "Water Cycle", nil, nil, 60, true, created, created))
	mock.ExpectExec("UPDATE lessons").
		WithArgs("Water Cycle", nil, nil, 60, false, testNow, "l1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	inactive := false
	got, err := svc.Update(context.Background(), "l1", UpdateLessonRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, got.IsActive)
	assert.Equal(t, testNow, got.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteReferenced(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectExec("DELETE FROM lessons").WithArgs("l1").WillReturnError(&mysql.MySQLError{Number: 1451})

	err := svc.Delete(context.Background(), "l1")
	assert.Equal(t, 409, web.ToHTTPStatus(err))
}
