package cashflow

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

// ===== categories =====

func (s *Store) ListCategories(ctx context.Context, includeDisabled bool) ([]Category, error) {
	q := `SELECT category_id, name, code, is_disabled FROM cashflow_categories`
	if !includeDisabled {
		q += ` WHERE is_disabled = 0`
	}
	q += ` ORDER BY category_id`

	rows, err := s.db.QueryContext(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	res := make([]Category, 0, 16)
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.CategoryID, &c.Name, &c.Code, &c.IsDisabled); err != nil {
			return nil, err
		}
		res = append(res, c)
	}
	return res, rows.Err()
}

func (s *Store) GetCategory(ctx context.Context, id uint) (Category, error) {
	var c Category
	err := s.db.QueryRowContext(ctx,
		`SELECT category_id, name, code, is_disabled FROM cashflow_categories WHERE category_id = ?`, id).
		Scan(&c.CategoryID, &c.Name, &c.Code, &c.IsDisabled)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, web.ErrNotFound("category not found")
		}
		return Category{}, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (s *Store) CreateCategory(ctx context.Context, name, code string) (Category, error) {
	r, err := s.db.ExecContext(ctx,
		`INSERT INTO cashflow_categories (name, code, is_disabled) VALUES (?, ?, 0)`, name, code)
	if err != nil {
		return Category{}, fmt.Errorf("insert category: %w", err)
	}
	lastID, err := r.LastInsertId()
	if err != nil {
		return Category{}, err
	}
	return Category{CategoryID: uint(lastID), Name: name, Code: code}, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c Category) error {
	r, err := s.db.ExecContext(ctx,
		`UPDATE cashflow_categories SET name = ?, code = ?, is_disabled = ? WHERE category_id = ?`,
		c.Name, c.Code, c.IsDisabled, c.CategoryID)
	if err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	if aff, _ := r.RowsAffected(); aff == 0 {
		return web.ErrNotFound("category not found")
	}
	return nil
}

// DisableCategory is the delete operation: entries keep pointing at the row.
func (s *Store) DisableCategory(ctx context.Context, id uint) error {
	r, err := s.db.ExecContext(ctx, `UPDATE cashflow_categories SET is_disabled = 1 WHERE category_id = ?`, id)
	if err != nil {
		return fmt.Errorf("disable category: %w", err)
	}
	if aff, _ := r.RowsAffected(); aff == 0 {
		return web.ErrNotFound("category not found")
	}
	return nil
}

// ===== entries =====

const selectEntry = `
	SELECT e.entry_id, e.entry_type, e.category_id, COALESCE(c.code, ''), COALESCE(c.name, ''), e.amount,
	       DATE_FORMAT(e.occurred_on, '%Y-%m-%d'), e.description, e.reference, e.schedule_id, e.created_at, e.updated_at
	FROM cashflow_entries e
	LEFT JOIN cashflow_categories c ON c.category_id = e.category_id`

func scanEntry(sc interface{ Scan(...any) error }) (Entry, error) {
	var (
		e Entry
		t string
	)
	err := sc.Scan(&e.EntryID, &t, &e.CategoryID, &e.CategoryCode, &e.CategoryName, &e.Amount, &e.OccurredOn,
		&e.Description, &e.Reference, &e.ScheduleID, &e.CreatedAt, &e.UpdatedAt)
	e.Type = EntryType(t)
	return e, err
}

func (s *Store) InsertEntry(ctx context.Context, e *Entry) error {
	const q = `
	INSERT INTO cashflow_entries
		(entry_id, entry_type, category_id, amount, occurred_on, description, reference, schedule_id, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := s.db.ExecContext(ctx, q, e.EntryID, string(e.Type), e.CategoryID, e.Amount, e.OccurredOn,
		e.Description, e.Reference, e.ScheduleID, e.CreatedAt, e.UpdatedAt); err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (s *Store) UpdateEntry(ctx context.Context, e *Entry) error {
	const q = `
	UPDATE cashflow_entries
	SET entry_type = ?, category_id = ?, amount = ?, occurred_on = ?, description = ?, reference = ?, schedule_id = ?, updated_at = ?
	WHERE entry_id = ?`
	res, err := s.db.ExecContext(ctx, q, string(e.Type), e.CategoryID, e.Amount, e.OccurredOn,
		e.Description, e.Reference, e.ScheduleID, e.UpdatedAt, e.EntryID)
	if err != nil {
		return fmt.Errorf("update entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("entry not found")
	}
	return nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM cashflow_entries WHERE entry_id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return web.ErrNotFound("entry not found")
	}
	return nil
}

func (s *Store) GetEntry(ctx context.Context, id string) (Entry, error) {
	e, err := scanEntry(s.db.QueryRowContext(ctx, selectEntry+` WHERE e.entry_id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, web.ErrNotFound("entry not found")
		}
		return Entry{}, fmt.Errorf("get entry: %w", err)
	}
	return e, nil
}

func entryWhere(f EntryFilter) (string, []any) {
	var (
		wheres []string
		args   []any
	)
	if f.From != nil {
		wheres = append(wheres, "e.occurred_on >= ?")
		args = append(args, *f.From)
	}
	if f.To != nil {
		wheres = append(wheres, "e.occurred_on <= ?")
		args = append(args, *f.To)
	}
	if f.Type != nil {
		wheres = append(wheres, "e.entry_type = ?")
		args = append(args, string(*f.Type))
	}
	if f.CategoryID != nil {
		wheres = append(wheres, "e.category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if len(wheres) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(wheres, " AND "), args
}

func (s *Store) ListEntries(ctx context.Context, f EntryFilter, p web.Page) ([]Entry, int64, error) {
	where, args := entryWhere(f)
	var total int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM cashflow_entries e`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count entries: %w", err)
	}
	o := p.SQLOrder()
	q := selectEntry + where + fmt.Sprintf(" ORDER BY e.occurred_on %s, e.entry_id %s LIMIT %d OFFSET %d", o, o, p.Limit, p.Offset)
	out, err := s.queryEntries(ctx, q, args...)
	return out, total, err
}

// AllEntries returns every entry matching f oldest first.
func (s *Store) AllEntries(ctx context.Context, f EntryFilter) ([]Entry, error) {
	where, args := entryWhere(f)
	return s.queryEntries(ctx, selectEntry+where+" ORDER BY e.occurred_on ASC, e.entry_id ASC", args...)
}

func (s *Store) queryEntries(ctx context.Context, q string, args ...any) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
