package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/web"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

const selectRecord = `
	SELECT a.attendance_id, a.schedule_id, a.student_id, st.name, a.attendance_status,
	       a.knowledge_score, a.participation_score, a.notes, a.created_at, a.updated_at
	FROM attendance_records a
	LEFT JOIN students st ON st.student_id = a.student_id`

func scanRecord(sc interface{ Scan(...any) error }, extra ...any) (domain.AttendanceRecord, error) {
	var r recordRow
	dest := []any{&r.ID, &r.ScheduleID, &r.StudentID, &r.StudentName, &r.Status,
		&r.KnowledgeScore, &r.ParticipationScore, &r.Notes, &r.CreatedAt, &r.UpdatedAt}
	if err := sc.Scan(append(dest, extra...)...); err != nil {
		return domain.AttendanceRecord{}, err
	}
	return r.toModel(), nil
}

// ScheduleStatus returns the status of a schedule or NOT_FOUND.
func (s *Store) ScheduleStatus(ctx context.Context, scheduleID string) (domain.ScheduleStatus, error) {
	var status string
	err := s.db.QueryRowContext(ctx, `SELECT status FROM schedules WHERE schedule_id = ?`, scheduleID).Scan(&status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", web.ErrNotFound("schedule not found")
		}
		return "", fmt.Errorf("get schedule status: %w", err)
	}
	return domain.ScheduleStatus(status), nil
}

func (s *Store) StudentExists(ctx context.Context, studentID string) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM students WHERE student_id = ? LIMIT 1`, studentID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check student: %w", err)
	}
	return true, nil
}

// FindID looks up the record for (schedule, student). The row is locked when
// called inside a transaction.
func (s *Store) FindID(ctx context.Context, scheduleID, studentID string) (string, bool, error) {
	var id string
	err := s.db.QueryRowContext(ctx, `
	SELECT attendance_id FROM attendance_records
	WHERE schedule_id = ? AND student_id = ?
	FOR UPDATE`, scheduleID, studentID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("find attendance: %w", err)
	}
	return id, true, nil
}

// Upsert writes rec keyed by (schedule_id, student_id). On an existing row
// only the outcome columns and updated_at change.
func (s *Store) Upsert(ctx context.Context, rec *domain.AttendanceRecord) error {
	const q = `
	INSERT INTO attendance_records
		(attendance_id, schedule_id, student_id, attendance_status, knowledge_score, participation_score, notes, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON DUPLICATE KEY UPDATE
		attendance_status   = VALUES(attendance_status),
		knowledge_score     = VALUES(knowledge_score),
		participation_score = VALUES(participation_score),
		notes               = VALUES(notes),
		updated_at          = VALUES(updated_at)`
	_, err := s.db.ExecContext(ctx, q, rec.ID, rec.ScheduleID, rec.StudentID, string(rec.Status),
		rec.KnowledgeScore, rec.ParticipationScore, rec.Notes, rec.CreatedAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert attendance: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.AttendanceRecord, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+` WHERE a.attendance_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AttendanceRecord{}, web.ErrNotFound("attendance record not found")
		}
		return domain.AttendanceRecord{}, fmt.Errorf("get attendance: %w", err)
	}
	return rec, nil
}

// GetByPair reads the record for (schedule, student). The pair is unique, so
// this finds the row whichever writer created it.
func (s *Store) GetByPair(ctx context.Context, scheduleID, studentID string) (domain.AttendanceRecord, error) {
	rec, err := scanRecord(s.db.QueryRowContext(ctx, selectRecord+` WHERE a.schedule_id = ? AND a.student_id = ?`, scheduleID, studentID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.AttendanceRecord{}, web.ErrNotFound("attendance record not found")
		}
		return domain.AttendanceRecord{}, fmt.Errorf("get attendance: %w", err)
	}
	return rec, nil
}

func (s *Store) ListBySchedule(ctx context.Context, scheduleID string) ([]domain.AttendanceRecord, error) {
	return s.list(ctx, selectRecord+` WHERE a.schedule_id = ? ORDER BY st.name ASC, a.student_id ASC`, scheduleID)
}

// ListBySchedules returns records for every given schedule keyed by schedule id.
func (s *Store) ListBySchedules(ctx context.Context, scheduleIDs []string) (map[string][]domain.AttendanceRecord, error) {
	out := make(map[string][]domain.AttendanceRecord, len(scheduleIDs))
	if len(scheduleIDs) == 0 {
		return out, nil
	}
	args := make([]any, len(scheduleIDs))
	for i, id := range scheduleIDs {
		args[i] = id
	}
	recs, err := s.list(ctx, selectRecord+` WHERE a.schedule_id IN (`+db.Placeholders(len(args))+`)
	ORDER BY a.schedule_id ASC, st.name ASC, a.student_id ASC`, args...)
	if err != nil {
		return nil, err
	}
	for _, r := range recs {
		out[r.ScheduleID] = append(out[r.ScheduleID], r)
	}
	return out, nil
}

func (s *Store) ListByStudent(ctx context.Context, studentID string) ([]StudentRecord, error) {
	const q = `
	SELECT a.attendance_id, a.schedule_id, a.student_id, st.name, a.attendance_status,
	       a.knowledge_score, a.participation_score, a.notes, a.created_at, a.updated_at,
	       DATE_FORMAT(sc.scheduled_date, '%Y-%m-%d'), sc.status
	FROM attendance_records a
	JOIN schedules sc ON sc.schedule_id = a.schedule_id
	LEFT JOIN students st ON st.student_id = a.student_id
	WHERE a.student_id = ?
	ORDER BY sc.scheduled_date DESC, sc.scheduled_time DESC`
	rows, err := s.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, fmt.Errorf("list student attendance: %w", err)
	}
	defer rows.Close()

	out := []StudentRecord{}
	for rows.Next() {
		var (
			date, status string
		)
		rec, err := scanRecord(rows, &date, &status)
		if err != nil {
			return nil, err
		}
		out = append(out, StudentRecord{AttendanceRecord: rec, ScheduledDate: date, ScheduleStatus: domain.ScheduleStatus(status)})
	}
	return out, rows.Err()
}

func (s *Store) list(ctx context.Context, q string, args ...any) ([]domain.AttendanceRecord, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	defer rows.Close()

	out := []domain.AttendanceRecord{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM attendance_records WHERE attendance_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete attendance: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("attendance record not found")
	}
	return nil
}
