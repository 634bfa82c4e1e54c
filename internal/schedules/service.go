package schedules

import (
	"context"
	"database/sql"
	"strings"

	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/ids"
	"BBS-backend/internal/platform/textnorm"
	"BBS-backend/internal/platform/web"
)

const DefaultDurationMinutes = 60

type repository interface {
	Create(ctx context.Context, m *domain.Schedule) error
	Update(ctx context.Context, m *domain.Schedule, links bool) error
	UpdateStatus(ctx context.Context, m *domain.Schedule) error
	Delete(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (domain.Schedule, error)
	List(ctx context.Context, f Filter, p web.Page) ([]domain.Schedule, int64, error)
	ListAll(ctx context.Context, f Filter) ([]domain.Schedule, error)
}

type Service struct {
	store repository
	clock ids.Clock
	id    ids.Generator
}

func NewService(conn *sql.DB) *Service {
	return &Service{store: NewStore(conn), clock: ids.RealClock{}, id: ids.NewULID()}
}

// uniqueIDs trims, drops blanks and keeps the first occurrence of each id.
func uniqueIDs(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func writeErr(err error) error {
	if db.IsMissingReference(err) {
		return web.ErrInvalid("school, lesson or teacher does not exist")
	}
	return err
}

func (s *Service) Create(ctx context.Context, in CreateScheduleRequest) (ScheduleResponse, error) {
	date, ok := domain.DateKey(in.ScheduledDate)
	if !ok {
		return ScheduleResponse{}, web.ErrInvalid("scheduled_date must be YYYY-MM-DD")
	}
	status := domain.ScheduleScheduled
	if in.Status != "" {
		status = domain.ScheduleStatus(in.Status)
	}
	if !status.Valid() {
		return ScheduleResponse{}, web.ErrInvalid("unknown schedule status")
	}
	duration := in.DurationMinutes
	if duration == 0 {
		duration = DefaultDurationMinutes
	}
	schoolID := strings.TrimSpace(in.SchoolID)
	if schoolID == "" {
		return ScheduleResponse{}, web.ErrInvalid("school_id is required")
	}

	id, err := s.id.New()
	if err != nil {
		return ScheduleResponse{}, err
	}
	now := s.clock.Now()
	m := domain.Schedule{
		ID:              id,
		ScheduledDate:   date,
		ScheduledTime:   in.ScheduledTime,
		DurationMinutes: duration,
		Status:          status,
		SchoolID:        schoolID,
		LessonIDs:       uniqueIDs(in.LessonIDs),
		TeacherIDs:      uniqueIDs(in.TeacherIDs),
		Notes:           textnorm.Optional(in.Notes),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.store.Create(ctx, &m); err != nil {
		return ScheduleResponse{}, writeErr(err)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id string) (ScheduleResponse, error) {
	return s.store.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, f Filter, p web.Page) ([]ScheduleResponse, int64, error) {
	if err := validateFilter(f); err != nil {
		return nil, 0, err
	}
	return s.store.List(ctx, f, p.Normalize())
}

// Range returns every schedule between from and to inclusive.
func (s *Service) Range(ctx context.Context, from, to string, schoolID *string) ([]domain.Schedule, error) {
	f := Filter{From: &from, To: &to, SchoolID: schoolID}
	if err := validateFilter(f); err != nil {
		return nil, err
	}
	return s.store.ListAll(ctx, f)
}

// Upcoming returns the next n scheduled sessions from today.
func (s *Service) Upcoming(ctx context.Context, n int) ([]domain.Schedule, error) {
	today := domain.Today(s.clock.Now())
	status := domain.ScheduleScheduled
	items, _, err := s.store.List(ctx, Filter{From: &today, Status: &status}, web.Page{Limit: n, Order: "asc"}.Normalize())
	return items, err
}

// RecentCompleted returns the last n completed sessions up to today, newest first.
func (s *Service) RecentCompleted(ctx context.Context, n int) ([]domain.Schedule, error) {
	today := domain.Today(s.clock.Now())
	status := domain.ScheduleCompleted
	items, _, err := s.store.List(ctx, Filter{To: &today, Status: &status}, web.Page{Limit: n, Order: "desc"}.Normalize())
	return items, err
}

func validateFilter(f Filter) error {
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
	if f.Status != nil && !f.Status.Valid() {
		return web.ErrInvalid("unknown schedule status")
	}
	return nil
}

func (s *Service) Update(ctx context.Context, id string, in UpdateScheduleRequest) (ScheduleResponse, error) {
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return ScheduleResponse{}, err
	}
	if in.ScheduledDate != nil {
		date, ok := domain.DateKey(*in.ScheduledDate)
		if !ok {
			return ScheduleResponse{}, web.ErrInvalid("scheduled_date must be YYYY-MM-DD")
		}
		m.ScheduledDate = date
	}
	if in.ScheduledTime != nil {
		m.ScheduledTime = *in.ScheduledTime
	}
	if in.DurationMinutes != nil {
		m.DurationMinutes = *in.DurationMinutes
	}
	if in.Status != nil {
		st := domain.ScheduleStatus(*in.Status)
		if !st.Valid() {
			return ScheduleResponse{}, web.ErrInvalid("unknown schedule status")
		}
		m.Status = st
	}
	if in.SchoolID != nil {
		sid := strings.TrimSpace(*in.SchoolID)
		if sid == "" {
			return ScheduleResponse{}, web.ErrInvalid("school_id must not be blank")
		}
		m.SchoolID = sid
	}
	links := in.LessonIDs != nil || in.TeacherIDs != nil
	if in.LessonIDs != nil {
		m.LessonIDs = uniqueIDs(*in.LessonIDs)
	}
	if in.TeacherIDs != nil {
		m.TeacherIDs = uniqueIDs(*in.TeacherIDs)
	}
	if in.Notes != nil {
		m.Notes = textnorm.Optional(in.Notes)
	}
	m.UpdatedAt = s.clock.Now()

	if err := s.store.Update(ctx, &m, links); err != nil {
		return ScheduleResponse{}, writeErr(err)
	}
	return s.store.Get(ctx, id)
}

func (s *Service) SetStatus(ctx context.Context, id string, status domain.ScheduleStatus) (ScheduleResponse, error) {
	if !status.Valid() {
		return ScheduleResponse{}, web.ErrInvalid("unknown schedule status")
	}
	m, err := s.store.Get(ctx, id)
	if err != nil {
		return ScheduleResponse{}, err
	}
	m.Status = status
	m.UpdatedAt = s.clock.Now()
	if err := s.store.UpdateStatus(ctx, &m); err != nil {
		return ScheduleResponse{}, err
	}
	return m, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if db.IsReferenced(err) {
			return web.ErrConflict("schedule is referenced by cash-flow entries")
		}
		return err
	}
	return nil
}
