package schedules

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreGetResolvesLinks(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("FROM schedules s").WithArgs("s1").WillReturnRows(
		sqlmock.NewRows([]string{"schedule_id", "date", "time", "duration_minutes", "status", "school_id", "school_name", "notes", "created_at", "updated_at"}).
			AddRow("s1", "2025-01-15", "10:00", 60, "completed", "sch1", "North High", nil, now, now))
	mock.ExpectQuery("FROM schedule_lessons").WithArgs("s1").WillReturnRows(
		sqlmock.NewRows([]string{"schedule_id", "lesson_id", "title"}).AddRow("s1", "l1", "Fractions"))
	mock.ExpectQuery("FROM schedule_teachers").WithArgs("s1").WillReturnRows(
		sqlmock.NewRows([]string{"schedule_id", "teacher_id", "name"}).
			AddRow("s1", "t1", "Ana  Lopez").
			AddRow("s1", "t2", "Ben Kim"))

	got, err := NewStore(conn).Get(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "North High", got.SchoolName)
	assert.Equal(t, []string{"Fractions"}, got.LessonTitles)
	assert.Equal(t, []string{"t1", "t2"}, got.TeacherIDs)
	assert.Equal(t, []string{"Ana Lopez", "Ben Kim"}, got.TeacherNames)
	assert.Nil(t, got.Notes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreCreateRollsBack(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO schedules").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM schedule_lessons").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("DELETE FROM schedule_teachers").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO schedule_lessons").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	m := scheduleFixture()
	err = NewStore(conn).Create(context.Background(), &m)
	assert.ErrorIs(t, err, assert.AnError)
	assert.NoError(t, mock.ExpectationsWereMet())
}
