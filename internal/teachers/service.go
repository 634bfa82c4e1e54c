package teachers

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

func (s *Service) Create(ctx context.Context, in CreateTeacherRequest) (TeacherResponse, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return TeacherResponse{}, web.ErrInvalid("name is required")
	}
	id, err := s.id.New()
	if err != nil {
		return TeacherResponse{}, err
	}
	now := s.clock.Now()
	m := Teacher{
		TeacherID:      id,
		Name:           name,
		Email:          ptrToNull(normalizeEmail(in.Email)),
		Phone:          ptrToNull(textnorm.Optional(in.Phone)),
		Specialization: ptrToNull(textnorm.Optional(in.Specialization)),
		IsActive:       true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Insert(ctx, &m); err != nil {
		if db.IsDuplicateKey(err) {
			return TeacherResponse{}, web.ErrConflict("teacher email already exists")
		}
		return TeacherResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) Get(ctx context.Context, id string) (TeacherResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return TeacherResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) List(ctx context.Context, q SearchQuery, p web.Page) ([]TeacherResponse, int64, error) {
	rows, total, err := s.store.List(ctx, q, p.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]TeacherResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateTeacherRequest) (TeacherResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return TeacherResponse{}, err
	}
	if in.Name != nil {
		name := textnorm.Name(*in.Name)
		if name == "" {
			return TeacherResponse{}, web.ErrInvalid("name must not be blank")
		}
		m.Name = name
	}
	if in.Email != nil {
		m.Email = ptrToNull(normalizeEmail(in.Email))
	}
	if in.Phone != nil {
		m.Phone = ptrToNull(textnorm.Optional(in.Phone))
	}
	if in.Specialization != nil {
		m.Specialization = ptrToNull(textnorm.Optional(in.Specialization))
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = s.clock.Now()

	if err := s.store.Update(ctx, &m); err != nil {
		if db.IsDuplicateKey(err) {
			return TeacherResponse{}, web.ErrConflict("teacher email already exists")
		}
		return TeacherResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if db.IsReferenced(err) {
			return web.ErrConflict("teacher is assigned to schedules; deactivate instead")
		}
		return err
	}
	return nil
}

func (s *Service) CountActive(ctx context.Context) (int64, error) { return s.store.Count(ctx) }
