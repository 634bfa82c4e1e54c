package teachers

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

const selectTeacher = `
	SELECT teacher_id, name, email, phone, specialization, is_active, created_at, updated_at
	FROM teachers`

func scanTeacher(sc interface{ Scan(...any) error }) (Teacher, error) {
	var t Teacher
	err := sc.Scan(&t.TeacherID, &t.Name, &t.Email, &t.Phone, &t.Specialization, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (s *Store) Insert(ctx context.Context, m *Teacher) error {
	const q = `
	INSERT INTO teachers (teacher_id, name, email, phone, specialization, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, m.TeacherID, m.Name, m.Email, m.Phone, m.Specialization,
		m.IsActive, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("insert teacher: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Teacher, error) {
	m, err := scanTeacher(s.db.QueryRowContext(ctx, selectTeacher+` WHERE teacher_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Teacher{}, web.ErrNotFound("teacher not found")
		}
		return Teacher{}, fmt.Errorf("get teacher: %w", err)
	}
	return m, nil
}

func (s *Store) Update(ctx context.Context, m *Teacher) error {
	const q = `
	UPDATE teachers
	SET name = ?, email = ?, phone = ?, specialization = ?, is_active = ?, updated_at = ?
	WHERE teacher_id = ?`
	res, err := s.db.ExecContext(ctx, q, m.Name, m.Email, m.Phone, m.Specialization, m.IsActive, m.UpdatedAt, m.TeacherID)
	if err != nil {
		return fmt.Errorf("update teacher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("teacher not found")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM teachers WHERE teacher_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete teacher: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("teacher not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, q SearchQuery, p web.Page) ([]Teacher, int64, error) {
	var (
		wheres []string
		args   []any
	)
	if q.Q != nil {
		wheres = append(wheres, "(name LIKE ? OR email LIKE ? OR specialization LIKE ?)")
		like := "%" + *q.Q + "%"
		args = append(args, like, like, like)
	}
	if q.Active != nil {
		wheres = append(wheres, "is_active = ?")
		args = append(args, *q.Active)
	}
	where := ""
	if len(wheres) > 0 {
		where = " WHERE " + strings.Join(wheres, " AND ")
	}

	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count teachers: %w", err)
	}
	query := selectTeacher + where +
		fmt.Sprintf(" ORDER BY created_at %s, teacher_id %s LIMIT %d OFFSET %d", p.SQLOrder(), p.SQLOrder(), p.Limit, p.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list teachers: %w", err)
	}
	defer rows.Close()

	var out []Teacher
	for rows.Next() {
		m, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM teachers WHERE is_active = 1`).Scan(&n)
	return n, err
}
