package lessons

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

const selectLesson = `
	SELECT lesson_id, title, description, objectives, duration_minutes, is_active, created_at, updated_at
	FROM lessons`

func scanLesson(sc interface{ Scan(...any) error }) (Lesson, error) {
	var l Lesson
	err := sc.Scan(&l.LessonID, &l.Title, &l.Description, &l.Objectives, &l.DurationMinutes, &l.IsActive, &l.CreatedAt, &l.UpdatedAt)
	return l, err
}

func (s *Store) Insert(ctx context.Context, m *Lesson) error {
	const q = `
	INSERT INTO lessons (lesson_id, title, description, objectives, duration_minutes, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, m.LessonID, m.Title, m.Description, m.Objectives, m.DurationMinutes,
		m.IsActive, m.CreatedAt, m.UpdatedAt); err != nil {
		return fmt.Errorf("insert lesson: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (Lesson, error) {
	m, err := scanLesson(s.db.QueryRowContext(ctx, selectLesson+` WHERE lesson_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Lesson{}, web.ErrNotFound("lesson not found")
		}
		return Lesson{}, fmt.Errorf("get lesson: %w", err)
	}
	return m, nil
}

func (s *Store) Update(ctx context.Context, m *Lesson) error {
	const q = `
	UPDATE lessons
	SET title = ?, description = ?, objectives = ?, duration_minutes = ?, is_active = ?, updated_at = ?
	WHERE lesson_id = ?`
	res, err := s.db.ExecContext(ctx, q, m.Title, m.Description, m.Objectives, m.DurationMinutes, m.IsActive, m.UpdatedAt, m.LessonID)
	if err != nil {
		return fmt.Errorf("update lesson: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("lesson not found")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM lessons WHERE lesson_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("lesson not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, q SearchQuery, p web.Page) ([]Lesson, int64, error) {
	var (
		wheres []string
		args   []any
	)
	if q.Q != nil {
		wheres = append(wheres, "(title LIKE ? OR description LIKE ?)")
		like := "%" + *q.Q + "%"
		args = append(args, like, like)
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
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count lessons: %w", err)
	}
	query := selectLesson + where +
		fmt.Sprintf(" ORDER BY created_at %s, lesson_id %s LIMIT %d OFFSET %d", p.SQLOrder(), p.SQLOrder(), p.Limit, p.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()

	var out []Lesson
	for rows.Next() {
		m, err := scanLesson(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM lessons WHERE is_active = 1`).Scan(&n)
	return n, err
}
