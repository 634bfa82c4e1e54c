package lessons

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

func (s *Service) Create(ctx context.Context, in CreateLessonRequest) (LessonResponse, error) {
	title := textnorm.Name(in.Title)
	if title == "" {
		return LessonResponse{}, web.ErrInvalid("title is required")
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}
	id, err := s.id.New()
	if err != nil {
		return LessonResponse{}, err
	}
	now := s.clock.Now()
	m := Lesson{
		LessonID:        id,
		Title:           title,
		Description:     ptrToNull(textnorm.Optional(in.Description)),
		Objectives:      ptrToNull(textnorm.Optional(in.Objectives)),
		DurationMinutes: duration,
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Insert(ctx, &m); err != nil {
		if db.IsDuplicateKey(err) {
			return LessonResponse{}, web.ErrConflict("lesson title already exists")
		}
		return LessonResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) Get(ctx context.Context, id string) (LessonResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return LessonResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) List(ctx context.Context, q SearchQuery, p web.Page) ([]LessonResponse, int64, error) {
	rows, total, err := s.store.List(ctx, q, p.Normalize())
	if err != nil {
		return nil, 0, err
	}
	out := make([]LessonResponse, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].toDTO())
	}
	return out, total, nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateLessonRequest) (LessonResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return LessonResponse{}, err
	}
	if in.Title != nil {
		title := textnorm.Name(*in.Title)
		if title == "" {
			return LessonResponse{}, web.ErrInvalid("title must not be blank")
		}
		m.Title = title
	}
	if in.Description != nil {
		m.Description = ptrToNull(textnorm.Optional(in.Description))
	}
	if in.Objectives != nil {
		m.Objectives = ptrToNull(textnorm.Optional(in.Objectives))
	}
	if in.DurationMinutes != nil {
		m.DurationMinutes = *in.DurationMinutes
	}
	if in.IsActive != nil {
		m.IsActive = *in.IsActive
	}
	m.UpdatedAt = s.clock.Now()

	if err := s.store.Update(ctx, &m); err != nil {
		if db.IsDuplicateKey(err) {
			return LessonResponse{}, web.ErrConflict("lesson title already exists")
		}
		return LessonResponse{}, err
	}
	return m.toDTO(), nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if db.IsReferenced(err) {
			return web.ErrConflict("lesson is used by schedules; deactivate instead")
		}
		return err
	}
	return nil
}

func (s *Service) CountActive(ctx context.Context) (int64, error) { return s.store.Count(ctx) }
