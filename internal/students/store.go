package students

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/web"
)

type Store struct{ db db.DBTX }

func NewStore(conn db.DBTX) *Store { return &Store{db: conn} }

const selectStudent = `
	SELECT st.student_id, st.school_id, COALESCE(sc.name, ''), st.name, st.grade_level, st.gender, st.notes,
	       st.is_active, st.created_at, st.updated_at
	FROM students st
	LEFT JOIN schools sc ON sc.school_id = st.school_id`

func scanStudent(sc interface{ Scan(...any) error }) (Student, error) {
	var s Student
	err := sc.Scan(&s.StudentID, &s.SchoolID, &s.SchoolName, &s.Name, &s.GradeLevel, &s.Gender, &s.Notes,
		&s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (s *Store) Insert(ctx context.Context, m *Student) error {
	const q = `
	INSERT INTO students (student_id, school_id, name, grade_level, gender, notes, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, m.StudentID, m.SchoolID, m.Name, m.GradeLevel, m.Gender, m.Notes,
		m.IsActive, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Student, error) {
	m, err := scanStudent(s.db.QueryRowContext(ctx, selectStudent+` WHERE st.student_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Student{}, web.ErrNotFound("student not found")
		}
		return Student{}, fmt.Errorf("get student: %w", err)
	}
	return m, nil
}

func (s *Store) Update(ctx context.Context, m *Student) error {
	const q = `
	UPDATE students
	SET school_id = ?, name = ?, grade_level = ?, gender = ?, notes = ?, is_active = ?, updated_at = ?
	WHERE student_id = ?`
	res, err := s.db.ExecContext(ctx, q, m.SchoolID, m.Name, m.GradeLevel, m.Gender, m.Notes, m.IsActive, m.UpdatedAt, m.StudentID)
	if err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("student not found")
	}
	return nil
}

// Delete removes the student; attendance rows go with it (ON DELETE CASCADE).
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM students WHERE student_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("student not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, q SearchQuery, p web.Page) ([]Student, int64, error) {
	var (
		wheres []string
		args   []any
	)
	if q.SchoolID != nil {
		wheres = append(wheres, "st.school_id = ?")
		args = append(args, *q.SchoolID)
	}
	if q.Q != nil {
		wheres = append(wheres, "st.name LIKE ?")
		args = append(args, "%"+*q.Q+"%")
	}
	if q.Active != nil {
		wheres = append(wheres, "st.is_active = ?")
		args = append(args, *q.Active)
	}
	where := ""
	if len(wheres) > 0 {
		where = " WHERE " + strings.Join(wheres, " AND ")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students st`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	query := selectStudent + where +
		fmt.Sprintf(" ORDER BY st.created_at %s, st.student_id %s LIMIT %d OFFSET %d", p.SQLOrder(), p.SQLOrder(), p.Limit, p.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}
	defer rows.Close()

	var out []Student
	for rows.Next() {
		m, err := scanStudent(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM students WHERE is_active = 1`).Scan(&n)
	return n, err
}
