package schedules

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/textnorm"
	"BBS-backend/internal/platform/web"
)

type Store struct{ db *sql.DB }

func NewStore(conn *sql.DB) *Store { return &Store{db: conn} }

const selectSchedule = `
	SELECT s.schedule_id, DATE_FORMAT(s.scheduled_date, '%Y-%m-%d'), TIME_FORMAT(s.scheduled_time, '%H:%i'),
	       s.duration_minutes, s.status, s.school_id, COALESCE(sc.name, ''), s.notes, s.created_at, s.updated_at
	FROM schedules s
	LEFT JOIN schools sc ON sc.school_id = s.school_id`

func scanSchedule(sc interface{ Scan(...any) error }) (domain.Schedule, error) {
	var (
		m      domain.Schedule
		status string
		notes  sql.NullString
	)
	err := sc.Scan(&m.ID, &m.ScheduledDate, &m.ScheduledTime, &m.DurationMinutes, &status, &m.SchoolID,
		&m.SchoolName, &notes, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return domain.Schedule{}, err
	}
	m.Status = domain.ScheduleStatus(status)
	if notes.Valid {
		m.Notes = &notes.String
	}
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	return m, nil
}

// Create inserts the schedule and its lesson/teacher links in one transaction.
func (s *Store) Create(ctx context.Context, m *domain.Schedule) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const q = `
		INSERT INTO schedules (schedule_id, school_id, scheduled_date, scheduled_time, duration_minutes, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
		if _, err := tx.ExecContext(ctx, q, m.ID, m.SchoolID, m.ScheduledDate, m.ScheduledTime, m.DurationMinutes,
			string(m.Status), m.Notes, m.CreatedAt, m.UpdatedAt); err != nil {
			return fmt.Errorf("insert schedule: %w", err)
		}
		return replaceLinks(ctx, tx, m.ID, m.LessonIDs, m.TeacherIDs)
	})
}

// Update writes the row; links are replaced only when links is true.
func (s *Store) Update(ctx context.Context, m *domain.Schedule, links bool) error {
	return db.RunInTx(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		const q = `
		UPDATE schedules
		SET school_id = ?, scheduled_date = ?, scheduled_time = ?, duration_minutes = ?, status = ?, notes = ?, updated_at = ?
		WHERE schedule_id = ?`
		res, err := tx.ExecContext(ctx, q, m.SchoolID, m.ScheduledDate, m.ScheduledTime, m.DurationMinutes,
			string(m.Status), m.Notes, m.UpdatedAt, m.ID)
		if err != nil {
			return fmt.Errorf("update schedule: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return web.ErrNotFound("schedule not found")
		}
		if !links {
			return nil
		}
		return replaceLinks(ctx, tx, m.ID, m.LessonIDs, m.TeacherIDs)
	})
}

func replaceLinks(ctx context.Context, tx db.DBTX, id string, lessonIDs, teacherIDs []string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_lessons WHERE schedule_id = ?`, id); err != nil {
		return fmt.Errorf("clear schedule lessons: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM schedule_teachers WHERE schedule_id = ?`, id); err != nil {
		return fmt.Errorf("clear schedule teachers: %w", err)
	}
	for i, lid := range lessonIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_lessons (schedule_id, lesson_id, position) VALUES (?, ?, ?)`, id, lid, i); err != nil {
			return fmt.Errorf("link lesson: %w", err)
		}
	}
	for i, tid := range teacherIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO schedule_teachers (schedule_id, teacher_id, position) VALUES (?, ?, ?)`, id, tid, i); err != nil {
			return fmt.Errorf("link teacher: %w", err)
		}
	}
	return nil
}

func (s *Store) UpdateStatus(ctx context.Context, m *domain.Schedule) error {
	res, err := s.db.ExecContext(ctx, `UPDATE schedules SET status = ?, updated_at = ? WHERE schedule_id = ?`,
		string(m.Status), m.UpdatedAt, m.ID)
	if err != nil {
		return fmt.Errorf("update schedule status: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("schedule not found")
	}
	return nil
}

// Delete removes the schedule; links and attendance rows cascade.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schedules WHERE schedule_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("schedule not found")
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (domain.Schedule, error) {
	m, err := scanSchedule(s.db.QueryRowContext(ctx, selectSchedule+` WHERE s.schedule_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Schedule{}, web.ErrNotFound("schedule not found")
		}
		return domain.Schedule{}, fmt.Errorf("get schedule: %w", err)
	}
	out := []domain.Schedule{m}
	if err := s.attachLinks(ctx, out); err != nil {
		return domain.Schedule{}, err
	}
	return out[0], nil
}

func buildWhere(f Filter) (string, []any) {
	var (
		wheres []string
		args   []any
	)
	if f.From != nil {
		wheres = append(wheres, "s.scheduled_date >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		wheres = append(wheres, "s.scheduled_date <= ?")
		args = append(args, *f.To)
	}
	if f.Status != nil {
		wheres = append(wheres, "s.status = ?")
		args = append(args, string(*f.Status))
	}
	if f.SchoolID != nil {
		wheres = append(wheres, "s.school_id = ?")
		args = append(args, *f.SchoolID)
	}
	if f.TeacherID != nil {
		wheres = append(wheres, "EXISTS (SELECT 1 FROM schedule_teachers x WHERE x.schedule_id = s.schedule_id AND x.teacher_id = ?)")
		args = append(args, *f.TeacherID)
	}
	if len(wheres) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wheres, " AND "), args
}

func (s *Store) List(ctx context.Context, f Filter, p web.Page) ([]domain.Schedule, int64, error) {
	where, args := buildWhere(f)

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schedules s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schedules: %w", err)
	}
	o := p.SQLOrder()
	query := selectSchedule + where +
		fmt.Sprintf(" ORDER BY s.scheduled_date %s, s.scheduled_time %s, s.schedule_id %s LIMIT %d OFFSET %d", o, o, o, p.Limit, p.Offset)
	out, err := s.query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// ListAll returns every schedule matching f in date/time order. Used for
// month views where the range itself bounds the result.
func (s *Store) ListAll(ctx context.Context, f Filter) ([]domain.Schedule, error) {
	where, args := buildWhere(f)
	return s.query(ctx, selectSchedule+where+" ORDER BY s.scheduled_date ASC, s.scheduled_time ASC, s.schedule_id ASC", args...)
}

func (s *Store) query(ctx context.Context, query string, args ...any) ([]domain.Schedule, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	var out []domain.Schedule
	for rows.Next() {
		m, err := scanSchedule(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := s.attachLinks(ctx, out); err != nil {
		return nil, err
	}
	return out, nil
}

// attachLinks fills LessonIDs/LessonTitles and TeacherIDs/TeacherNames for
// the given schedules with one query per link table. Slices are never nil.
func (s *Store) attachLinks(ctx context.Context, list []domain.Schedule) error {
	if len(list) == 0 {
		return nil
	}
	index := make(map[string]int, len(list))
	args := make([]any, 0, len(list))
	for i := range list {
		list[i].LessonIDs, list[i].LessonTitles = []string{}, []string{}
		list[i].TeacherIDs, list[i].TeacherNames = []string{}, []string{}
		index[list[i].ID] = i
		args = append(args, list[i].ID)
	}
	in := db.Placeholders(len(args))

	lessons, err := s.db.QueryContext(ctx, `
	SELECT sl.schedule_id, sl.lesson_id, COALESCE(l.title, '')
	FROM schedule_lessons sl
	LEFT JOIN lessons l ON l.lesson_id = sl.lesson_id
	WHERE sl.schedule_id IN (`+in+`)
	ORDER BY sl.schedule_id, sl.position`, args...)
	if err != nil {
		return fmt.Errorf("load schedule lessons: %w", err)
	}
	err = scanLinks(lessons, func(i int, id, label string) {
		list[i].LessonIDs = append(list[i].LessonIDs, id)
		list[i].LessonTitles = append(list[i].LessonTitles, label)
	}, index)
	if err != nil {
		return err
	}

	teachers, err := s.db.QueryContext(ctx, `
	SELECT st.schedule_id, st.teacher_id, COALESCE(t.name, '')
	FROM schedule_teachers st
	LEFT JOIN teachers t ON t.teacher_id = st.teacher_id
	WHERE st.schedule_id IN (`+in+`)
	ORDER BY st.schedule_id, st.position`, args...)
	if err != nil {
		return fmt.Errorf("load schedule teachers: %w", err)
	}
	return scanLinks(teachers, func(i int, id, label string) {
		list[i].TeacherIDs = append(list[i].TeacherIDs, id)
		list[i].TeacherNames = append(list[i].TeacherNames, textnorm.Name(label))
	}, index)
}

func scanLinks(rows *sql.Rows, add func(i int, id, label string), index map[string]int) error {
	defer rows.Close()
	for rows.Next() {
		var scheduleID, id, label string
		if err := rows.Scan(&scheduleID, &id, &label); err != nil {
			return err
		}
		if i, ok := index[scheduleID]; ok {
			add(i, id, label)
		}
	}
	return rows.Err()
}
