package students

import (
	"context"
	"database/sql"
	"strings"

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

func (s *Service) Create(ctx context.Context, in CreateStudentRequest) (StudentResponse, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return StudentResponse{}, web.ErrInvalid("name is required")
	}
	schoolID := strings.TrimSpace(in.SchoolID)
	if schoolID == "" {
		return StudentResponse{}, web.ErrInvalid("school_id is required")
	}
	id, err := s.id.New()
	if err != nil {
		return StudentResponse{}, err
	}
	now := s.clock.Now()
	m := Student{
		StudentID:  id,
		SchoolID:   schoolID,
		Name:       name,
		GradeLevel: ptrToNull(textnorm.Optional(in.GradeLevel)),
		Gender:     ptrToNull(textnorm.Optional(in.Gender)),
		Notes:      ptrToNull(textnorm.Optional(in.Notes)),
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Insert(ctx, &m); err != nil {
		if db.IsMissingReference(err) {
			return StudentResponse{}, web.ErrInvalid("school_id does not exist")
		}
		return StudentResponse{}, err
	}
	// re-read for the joined school name
	return s.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (StudentResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return StudentResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) List(ctx context.Context, q SearchQuery, p web.Page) ([]StudentResponse, int64, error) {
	rows, total, err := s.store.List(ctx, q, p.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]StudentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateStudentRequest) (StudentResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return StudentResponse{}, err
	}
	if in.SchoolID != nil {
		sid := strings.TrimSpace(*in.SchoolID)
		if sid == "" {
			return StudentResponse{}, web.ErrInvalid("school_id must not be blank")
		}
		m.SchoolID = sid
	}
	if in.Name != nil {
		name := textnorm.Name(*in.Name)
		if name == "" {
			return StudentResponse{}, web.ErrInvalid("name must not be blank")
		}
		m.Name = name
	}
	if in.GradeLevel != nil {
		m.GradeLevel = ptrToNull(textnorm.Optional(in.GradeLevel))
	}
	if in.Gender != nil {
		m.Gender = ptrToNull(textnorm.Optional(in.Gender))
	}
	if in.Notes != nil {
		m.Notes = ptrToNull(textnorm.Optional(in.Notes))
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = s.clock.Now()

	if err := s.store.Update(ctx, &m); err != nil {
		if db.IsMissingReference(err) {
			return StudentResponse{}, web.ErrInvalid("school_id does not exist")
		}
		return StudentResponse{}, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string) error { return s.store.Delete(ctx, id) }

func (s *Service) CountActive(ctx context.Context) (int64, error) { return s.store.Count(ctx) }
