package cashflow

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/ids"
	"BBS-backend/internal/platform/textnorm"
	"BBS-backend/internal/platform/web"
)

type Service struct {
	store *Store
	clock ids.Clock
	id    ids.Generator
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: ids.RealClock{}, id: ids.NewULID()}
}

// ===== categories =====

func normalizeCategory(name, code string) (string, string, error) {
	name = textnorm.Name(name)
	if name == "" {
		return "", "", web.ErrInvalid("name is required")
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", "", web.ErrInvalid("code is required")
	}
	return name, code, nil
}

func (s *Service) ListCategories(ctx context.Context, includeDisabled bool) ([]CategoryResponse, error) {
	rows, err := s.store.ListCategories(ctx, includeDisabled)
	if err != nil {
		return nil, err
	}
	out := make([]CategoryResponse, 0, len(rows))
	for _, c := range rows {
		out = append(out, c.toDTO())
	}
	return out, nil
}

func (s *Service) GetCategory(ctx context.Context, id uint) (CategoryResponse, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		return CategoryResponse{}, err
	}
	return c.toDTO(), nil
}

func (s *Service) CreateCategory(ctx context.Context, in CreateCategoryRequest) (CategoryResponse, error) {
	name, code, err := normalizeCategory(in.Name, in.Code)
	if err != nil {
		return CategoryResponse{}, err
	}
	c, err := s.store.CreateCategory(ctx, name, code)
	if err != nil {
		if db.IsDuplicateKey(err) {
			return CategoryResponse{}, web.ErrConflict("category code already exists")
		}
		return CategoryResponse{}, err
	}
	return c.toDTO(), nil
}

func (s *Service) UpdateCategory(ctx context.Context, id uint, in UpdateCategoryRequest) (CategoryResponse, error) {
	name, code, err := normalizeCategory(in.Name, in.Code)
	if err != nil {
		return CategoryResponse{}, err
	}
	c := Category{CategoryID: id, Name: name, Code: code, IsDisabled: in.IsDisabled}
	if err := s.store.UpdateCategory(ctx, c); err != nil {
		if db.IsDuplicateKey(err) {
			return CategoryResponse{}, web.ErrConflict("category code already exists")
		}
		return CategoryResponse{}, err
	}
	return c.toDTO(), nil
}

func (s *Service) DisableCategory(ctx context.Context, id uint) error {
	return s.store.DisableCategory(ctx, id)
}

// ===== entries =====

func (s *Service) activeCategory(ctx context.Context, id uint) (Category, error) {
	c, err := s.store.GetCategory(ctx, id)
	if err != nil {
		if web.IsNotFound(err) {
			return Category{}, web.ErrInvalid("category does not exist")
		}
		return Category{}, err
	}
	if c.IsDisabled {
		return Category{}, web.ErrInvalid("category is disabled")
	}
	return c, nil
}

func entryWriteErr(err error) error {
	if db.IsMissingReference(err) {
		return web.ErrInvalid("category or schedule does not exist")
	}
	return err
}

func (s *Service) CreateEntry(ctx context.Context, in CreateEntryRequest) (EntryResponse, error) {
	t := EntryType(in.Type)
	if !t.Valid() {
		return EntryResponse{}, web.ErrInvalid("type must be income or expense")
	}
	if in.Amount <= 0 {
		return EntryResponse{}, web.ErrInvalid("amount must be positive")
	}
	on, ok := domain.DateKey(in.OccurredOn)
	if !ok {
		return EntryResponse{}, web.ErrInvalid("occurred_on must be YYYY-MM-DD")
	}
	cat, err := s.activeCategory(ctx, in.CategoryID)
	if err != nil {
		return EntryResponse{}, err
	}
	id, err := s.id.New()
	if err != nil {
		return EntryResponse{}, err
	}
	now := s.clock.Now()
	e := Entry{
		EntryID:      id,
		Type:         t,
		CategoryID:   cat.CategoryID,
		CategoryCode: cat.Code,
		CategoryName: cat.Name,
		Amount:       in.Amount,
		OccurredOn:   on,
		Description:  ptrToNull(textnorm.Optional(in.Description)),
		Reference:    ptrToNull(textnorm.Optional(in.Reference)),
		ScheduleID:   ptrToNull(textnorm.Optional(in.ScheduleID)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.InsertEntry(ctx, &e); err != nil {
		return EntryResponse{}, entryWriteErr(err)
	}
	return e.toDTO(), nil
}

func (s *Service) GetEntry(ctx context.Context, id string) (EntryResponse, error) {
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return EntryResponse{}, err
	}
	return e.toDTO(), nil
}

func (s *Service) UpdateEntry(ctx context.Context, id string, in UpdateEntryRequest) (EntryResponse, error) {
	e, err := s.store.GetEntry(ctx, id)
	if err != nil {
		return EntryResponse{}, err
	}
	if in.Type != nil {
		t := EntryType(*in.Type)
		if !t.Valid() {
			return EntryResponse{}, web.ErrInvalid("type must be income or expense")
		}
		e.Type = t
	}
	if in.CategoryID != nil && *in.CategoryID != e.CategoryID {
		cat, err := s.activeCategory(ctx, *in.CategoryID)
		if err != nil {
			return EntryResponse{}, err
		}
		e.CategoryID, e.CategoryCode, e.CategoryName = cat.CategoryID, cat.Code, cat.Name
	}
	if in.Amount != nil {
		if *in.Amount <= 0 {
			return EntryResponse{}, web.ErrInvalid("amount must be positive")
		}
		e.Amount = *in.Amount
	}
	if in.OccurredOn != nil {
		on, ok := domain.DateKey(*in.OccurredOn)
		if !ok {
			return EntryResponse{}, web.ErrInvalid("occurred_on must be YYYY-MM-DD")
		}
		e.OccurredOn = on
	}
	if in.Description != nil {
		e.Description = ptrToNull(textnorm.Optional(in.Description))
	}
	if in.Reference != nil {
		e.Reference = ptrToNull(textnorm.Optional(in.Reference))
	}
	if in.ScheduleID != nil {
		e.ScheduleID = ptrToNull(textnorm.Optional(in.ScheduleID))
	}
	e.UpdatedAt = s.clock.Now()

	if err := s.store.UpdateEntry(ctx, &e); err != nil {
		return EntryResponse{}, entryWriteErr(err)
	}
	return e.toDTO(), nil
}

func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	return s.store.DeleteEntry(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context, f EntryFilter, p web.Page) ([]EntryResponse, int64, error) {
	if err := normalizeRange(&f); err != nil {
		return nil, 0, err
	}
	if f.Type != nil && !f.Type.Valid() {
		return nil, 0, web.ErrInvalid("type must be income or expense")
	}
	rows, total, err := s.store.ListEntries(ctx, f, p.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]EntryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

func normalizeRange(f *EntryFilter) error {
	for _, d := range []*string{f.From, f.To} {
		if d == nil {
			continue
		}
		k, ok := domain.DateKey(*d)
		if !ok {
			return web.ErrInvalid("from/to must be YYYY-MM-DD")
		}
		*d = k
	}
	if f.From != nil && f.To != nil && *f.From > *f.To {
		return web.ErrInvalid("from must not be after to")
	}
	return nil
}

// monthRange returns the first and last civil date of the month containing now.
func monthRange(now time.Time) (string, string) {
	now = now.UTC()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format(domain.DateLayout), last.Format(domain.DateLayout)
}

// resolveRange defaults a missing bound to the current month's.
func (s *Service) resolveRange(from, to *string) (EntryFilter, error) {
	first, last := monthRange(s.clock.Now())
	if from == nil {
		from = &first
	}
	if to == nil {
		to = &last
	}
	f := EntryFilter{From: from, To: to}
	return f, normalizeRange(&f)
}

// Summary totals entries between from and to. Both default to the current month.
func (s *Service) Summary(ctx context.Context, from, to *string) (Summary, error) {
	f, err := s.resolveRange(from, to)
	if err != nil {
		return Summary{}, err
	}
	entries, err := s.store.AllEntries(ctx, f)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(*f.From, *f.To, entries), nil
}

// Export loads the entries of the range and the download file name for it.
// Nothing is written until the query succeeded, so errors still reach the
// client as JSON.
func (s *Service) Export(ctx context.Context, from, to *string) ([]Entry, string, error) {
	f, err := s.resolveRange(from, to)
	if err != nil {
		return nil, "", err
	}
	entries, err := s.store.AllEntries(ctx, f)
	if err != nil {
		return nil, "", err
	}
	return entries, "cashflow_" + *f.From + "_" + *f.To + ".csv", nil
}
