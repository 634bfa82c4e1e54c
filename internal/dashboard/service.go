// Package dashboard assembles read-only overviews from the other modules.
// Every source is fetched concurrently; a failing source is logged and
// treated as empty so the rest of the page still renders.
package dashboard

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"BBS-backend/internal/calendar"
	"BBS-backend/internal/cashflow"
	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/ids"
	"BBS-backend/internal/platform/web"
	"BBS-backend/internal/stats"
)

const (
	DefaultUpcoming = 5
	DefaultRecent   = 10
	maxParallel     = 4
	attendanceChunk = 50
	minCalendarYear = 1900
	maxCalendarYear = 9999
)

type Counter interface {
	CountActive(ctx context.Context) (int64, error)
}

type ScheduleSource interface {
	Upcoming(ctx context.Context, n int) ([]domain.Schedule, error)
	RecentCompleted(ctx context.Context, n int) ([]domain.Schedule, error)
	Range(ctx context.Context, from, to string, schoolID *string) ([]domain.Schedule, error)
}

type AttendanceSource interface {
	ForSchedules(ctx context.Context, scheduleIDs []string) (map[string][]domain.AttendanceRecord, error)
}

type CashflowSource interface {
	Summary(ctx context.Context, from, to *string) (cashflow.Summary, error)
}

type Sources struct {
	Schools    Counter
	Teachers   Counter
	Students   Counter
	Lessons    Counter
	Schedules  ScheduleSource
	Attendance AttendanceSource
	Cashflow   CashflowSource
}

type Service struct {
	src      Sources
	clock    ids.Clock
	upcoming int
	recent   int
}

func NewService(src Sources) *Service {
	return &Service{src: src, clock: ids.RealClock{}, upcoming: DefaultUpcoming, recent: DefaultRecent}
}

// fanout runs fetchers with bounded parallelism. A fetcher error is logged
// and its name collected; it never cancels the others.
type fanout struct {
	g      *errgroup.Group
	ctx    context.Context
	mu     sync.Mutex
	failed []string
}

func newFanout(ctx context.Context) *fanout {
	g := new(errgroup.Group)
	g.SetLimit(maxParallel)
	return &fanout{g: g, ctx: ctx}
}

func (f *fanout) Go(source string, fn func(ctx context.Context) error) {
	f.g.Go(func() error {
		if err := fn(f.ctx); err != nil {
			log.WithError(err).WithField("source", source).Warn("dashboard source failed; using empty result")
			f.mu.Lock()
			f.failed = append(f.failed, source)
			f.mu.Unlock()
		}
		return nil
	})
}

// Wait returns the names of the failed sources, never nil.
func (f *fanout) Wait() []string {
	_ = f.g.Wait()
	if f.failed == nil {
		return []string{}
	}
	return f.failed
}

func (s *Service) Overview(ctx context.Context) (Overview, error) {
	var (
		out       Overview
		recent    []domain.Schedule
		cash      cashflow.Summary
		cashValid bool
	)
	out.Upcoming = []domain.Schedule{}

	f := newFanout(ctx)
	count := func(name string, c Counter, dst *int64) {
		if c == nil {
			return
		}
		f.Go(name, func(ctx context.Context) error {
			n, err := c.CountActive(ctx)
			*dst = n
			return err
		})
	}
	count("schools", s.src.Schools, &out.Counts.Schools)
	count("teachers", s.src.Teachers, &out.Counts.Teachers)
	count("students", s.src.Students, &out.Counts.Students)
	count("lessons", s.src.Lessons, &out.Counts.Lessons)

	f.Go("upcoming_schedules", func(ctx context.Context) error {
		items, err := s.src.Schedules.Upcoming(ctx, s.upcoming)
		if err == nil && items != nil {
			out.Upcoming = items
		}
		return err
	})
	f.Go("recent_schedules", func(ctx context.Context) error {
		items, err := s.src.Schedules.RecentCompleted(ctx, s.recent)
		recent = items
		return err
	})
	f.Go("cashflow", func(ctx context.Context) error {
		sum, err := s.src.Cashflow.Summary(ctx, nil, nil)
		cash, cashValid = sum, err == nil
		return err
	})
	failed := f.Wait()

	if cashValid {
		out.Cashflow = &CashflowMonth{From: cash.From, To: cash.To, Income: cash.Income, Expense: cash.Expense, Balance: cash.Balance}
	}

	byID := s.attendanceFor(ctx, recent, &failed)
	if st, ok := stats.Overall(byID); ok {
		out.RecentAttendance = &st
	}
	out.RecentSessions = len(recent)
	out.Degraded = failed
	return out, nil
}

// attendanceFor loads records for the given schedules in chunks. A failed
// chunk leaves its schedules without records.
func (s *Service) attendanceFor(ctx context.Context, list []domain.Schedule, failed *[]string) map[string][]domain.AttendanceRecord {
	out := make(map[string][]domain.AttendanceRecord, len(list))
	if len(list) == 0 {
		return out
	}
	idsOf := make([]string, 0, len(list))
	for _, sc := range list {
		idsOf = append(idsOf, sc.ID)
	}

	var mu sync.Mutex
	f := newFanout(ctx)
	for start := 0; start < len(idsOf); start += attendanceChunk {
		end := min(start+attendanceChunk, len(idsOf))
		chunk := idsOf[start:end]
		f.Go("attendance", func(ctx context.Context) error {
			got, err := s.src.Attendance.ForSchedules(ctx, chunk)
			if err != nil {
				return err
			}
			mu.Lock()
			for k, v := range got {
				out[k] = v
			}
			mu.Unlock()
			return nil
		})
	}
	*failed = append(*failed, f.Wait()...)
	return out
}

// Calendar builds the month grid with per-schedule statistics. Only
// completed schedules carry statistics.
func (s *Service) Calendar(ctx context.Context, year, month int, schoolID *string) (CalendarResponse, error) {
	if month < 1 || month > 12 {
		return CalendarResponse{}, web.ErrInvalid("month must be 1-12")
	}
	if year < minCalendarYear || year > maxCalendarYear {
		return CalendarResponse{}, web.ErrInvalid("year out of range")
	}
	first, last := calendar.Month(year, time.Month(month))

	var list []domain.Schedule
	f := newFanout(ctx)
	f.Go("schedules", func(ctx context.Context) error {
		var err error
		list, err = s.src.Schedules.Range(ctx, first.Format(domain.DateLayout), last.Format(domain.DateLayout), schoolID)
		return err
	})
	failed := f.Wait()

	var completed []domain.Schedule
	for _, sc := range list {
		if sc.Status == domain.ScheduleCompleted {
			completed = append(completed, sc)
		}
	}
	records := s.attendanceFor(ctx, completed, &failed)

	items := make([]CalendarItem, 0, len(list))
	for _, sc := range list {
		it := CalendarItem{Schedule: sc}
		if st, ok := stats.ForSchedule(sc.Status, records[sc.ID]); ok {
			it.HasData = true
			it.Statistics = &st
		}
		items = append(items, it)
	}

	grid := calendar.Build(year, time.Month(month), items, func(it CalendarItem) string { return it.ScheduledDate })
	return CalendarResponse{
		Year:          year,
		Month:         month,
		LeadingBlanks: calendar.LeadingBlanks(year, time.Month(month)),
		Weeks:         grid,
		Total:         len(items),
		Degraded:      failed,
	}, nil
}
