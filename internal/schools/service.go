package schools

import (
	"context"
	"database/sql"

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

// POST /schools
func (s *Service) Create(ctx context.Context, in CreateSchoolRequest) (SchoolResponse, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return SchoolResponse{}, web.ErrInvalid("name is required")
	}
	id, err := s.id.New()
	if err != nil {
		return SchoolResponse{}, err
	}
	now := s.clock.Now()
	m := School{
		SchoolID:      id,
		Name:          name,
		Address:       ptrToNull(textnorm.Optional(in.Address)),
		ContactPerson: ptrToNull(textnorm.Optional(in.ContactPerson)),
		ContactPhone:  ptrToNull(textnorm.Optional(in.ContactPhone)),
		ContactEmail:  ptrToNull(textnorm.Optional(in.ContactEmail)),
		Notes:         ptrToNull(textnorm.Optional(in.Notes)),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.store.Insert(ctx, &m); err != nil {
		if db.IsDuplicateKey(err) {
			return SchoolResponse{}, web.ErrConflict("school name already exists")
		}
		return SchoolResponse{}, err
	}
	return m.toDTO(), nil
}

// GET /schools/:id
func (s *Service) Get(ctx context.Context, id string) (SchoolResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return SchoolResponse{}, err
	}
	return m.toDTO(), nil
}

// GET /schools
func (s *Service) List(ctx context.Context, q SearchQuery, p web.Page) ([]SchoolResponse, int64, error) {
	rows, total, err := s.store.List(ctx, q, p.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]SchoolResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

// PUT /schools/:id
func (s *Service) Update(ctx context.Context, id string, in UpdateSchoolRequest) (SchoolResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return SchoolResponse{}, err
	}
	if in.Name != nil {
		name := textnorm.Name(*in.Name)
		if name == "" {
			return SchoolResponse{}, web.ErrInvalid("name must not be blank")
		}
		m.Name = name
	}
	if in.Address != nil {
		m.Address = ptrToNull(textnorm.Optional(in.Address))
	}
	if in.ContactPerson != nil {
		m.ContactPerson = ptrToNull(textnorm.Optional(in.ContactPerson))
	}
	if in.ContactPhone != nil {
		m.ContactPhone = ptrToNull(textnorm.Optional(in.ContactPhone))
	}
	if in.ContactEmail != nil {
		m.ContactEmail = ptrToNull(textnorm.Optional(in.ContactEmail))
	}
	if in.Notes != nil {
		m.Notes = ptrToNull(textnorm.Optional(in.Notes))
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = s.clock.Now()

	if err := s.store.Update(ctx, &m); err != nil {
		if db.IsDuplicateKey(err) {
			return SchoolResponse{}, web.ErrConflict("school name already exists")
		}
		return SchoolResponse{}, err
	}
	return m.toDTO(), nil
}

// DELETE /schools/:id
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if db.IsReferenced(err) {
			return web.ErrConflict("school still has students or schedules; deactivate it instead")
		}
		return err
	}
	return nil
}

func (s *Service) CountActive(ctx context.Context) (int64, error) { return s.store.Count(ctx) }
