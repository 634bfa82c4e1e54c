package schools

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

const selectSchool = `
	SELECT school_id, name, address, contact_person, contact_phone, contact_email, notes, is_active, created_at, updated_at
	FROM schools`

func scanSchool(sc interface{ Scan(...any) error }) (School, error) {
	var s School
	err := sc.Scan(&s.SchoolID, &s.Name, &s.Address, &s.ContactPerson, &s.ContactPhone,
		&s.ContactEmail, &s.Notes, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (s *Store) Insert(ctx context.Context, m *School) error {
	const q = `
	INSERT INTO schools (school_id, name, address, contact_person, contact_phone, contact_email, notes, is_active, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, q, m.SchoolID, m.Name, m.Address, m.ContactPerson, m.ContactPhone,
		m.ContactEmail, m.Notes, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert school: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (School, error) {
	row := s.db.QueryRowContext(ctx, selectSchool+` WHERE school_id = ?`, id)
	m, err := scanSchool(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return School{}, web.ErrNotFound("school not found")
		}
		return School{}, fmt.Errorf("get school: %w", err)
	}
	return m, nil
}

func (s *Store) Update(ctx context.Context, m *School) error {
	const q = `
	UPDATE schools
	SET name = ?, address = ?, contact_person = ?, contact_phone = ?, contact_email = ?, notes = ?, is_active = ?, updated_at = ?
	WHERE school_id = ?`
	res, err := s.db.ExecContext(ctx, q, m.Name, m.Address, m.ContactPerson, m.ContactPhone,
		m.ContactEmail, m.Notes, m.IsActive, m.UpdatedAt, m.SchoolID)
	if err != nil {
		return fmt.Errorf("update school: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("school not found")
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM schools WHERE school_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete school: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("school not found")
	}
	return nil
}

func (s *Store) List(ctx context.Context, q SearchQuery, p web.Page) ([]School, int64, error) {
	var (
		wheres []string
		args   []any
	)
	if q.Q != nil {
		wheres = append(wheres, "(name LIKE ? OR contact_person LIKE ?)")
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
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schools`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count schools: %w", err)
	}

	query := selectSchool + where +
		fmt.Sprintf(" ORDER BY created_at %s, school_id %s LIMIT %d OFFSET %d", p.SQLOrder(), p.SQLOrder(), p.Limit, p.Offset)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list schools: %w", err)
	}
	defer rows.Close()

	var out []School
	for rows.Next() {
		m, err := scanSchool(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func (s *Store) Count(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schools WHERE is_active = 1`).Scan(&n)
	return n, err
}
