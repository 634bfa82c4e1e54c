package attendance

import (
	"context"
	"database/sql"
	"strings"

	"BBS-backend/internal/domain"
	"BBS-backend/internal/platform/db"
	"BBS-backend/internal/platform/ids"
	"BBS-backend/internal/platform/textnorm"
	"BBS-backend/internal/platform/web"
	"BBS-backend/internal/stats"
)

type Service struct {
	db    *sql.DB
	store *Store
	clock ids.Clock
	id    ids.Generator
}

func NewService(conn *sql.DB) *Service {
	return &Service{db: conn, store: NewStore(conn), clock: ids.RealClock{}, id: ids.NewULID()}
}

func validScore(v *float64) bool { return v == nil || (*v >= 0 && *v <= 100) }

func (s *Service) upsertOne(ctx context.Context, st *Store, scheduleID string, e BulkEntry) (domain.AttendanceRecord, bool, error) {
	studentID := strings.TrimSpace(e.StudentID)
	if studentID == "" {
		return domain.AttendanceRecord{}, false, web.ErrInvalid("student_id is required")
	}
	status := domain.AttendanceStatus(e.Status)
	if !status.Valid() {
		return domain.AttendanceRecord{}, false, web.ErrInvalid("attendance_status must be present, absent or late")
	}
	if !validScore(e.KnowledgeScore) || !validScore(e.ParticipationScore) {
		return domain.AttendanceRecord{}, false, web.ErrInvalid("scores must be between 0 and 100")
	}

	id, found, err := st.FindID(ctx, scheduleID, studentID)
	if err != nil {
		return domain.AttendanceRecord{}, false, err
	}
	if !found {
		if id, err = s.id.New(); err != nil {
			return domain.AttendanceRecord{}, false, err
		}
	}
	now := s.clock.Now()
	rec := domain.AttendanceRecord{
		ID:                 id,
		ScheduleID:         scheduleID,
		StudentID:          studentID,
		Status:             status,
		KnowledgeScore:     e.KnowledgeScore,
		ParticipationScore: e.ParticipationScore,
		Notes:              textnorm.Optional(e.Notes),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := st.Upsert(ctx, &rec); err != nil {
		if db.IsMissingReference(err) {
			return domain.AttendanceRecord{}, false, web.ErrInvalid("student does not exist: " + studentID)
		}
		return domain.AttendanceRecord{}, false, err
	}
	return rec, !found, nil
}

func lockErr(err error) error {
	if db.IsDeadlock(err) {
		return web.ErrConflict("attendance is being updated concurrently, try again")
	}
	return err
}

// Mark creates or updates the record for (schedule, student).
// The bool reports whether a new record was created.
func (s *Service) Mark(ctx context.Context, in MarkRequest) (RecordResponse, bool, error) {
	var (
		out     domain.AttendanceRecord
		created bool
	)
	scheduleID := strings.TrimSpace(in.ScheduleID)
	err := db.RunInTxRetry(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		if _, err := st.ScheduleStatus(ctx, scheduleID); err != nil {
			return err
		}
		rec, isNew, err := s.upsertOne(ctx, st, scheduleID, BulkEntry{
			StudentID:          in.StudentID,
			Status:             in.Status,
			KnowledgeScore:     in.KnowledgeScore,
			ParticipationScore: in.ParticipationScore,
			Notes:              in.Notes,
		})
		if err != nil {
			return err
		}
		// a concurrent first mark may have inserted the row between our lookup
		// and our insert; the stored id tells whose insert won
		out, err = st.GetByPair(ctx, scheduleID, rec.StudentID)
		if err != nil {
			return err
		}
		created = isNew && out.ID == rec.ID
		return nil
	})
	if err != nil {
		return RecordResponse{}, false, lockErr(err)
	}
	return out, created, nil
}

// MarkBulk upserts every entry for one schedule atomically and returns the
// schedule's full record list afterwards.
func (s *Service) MarkBulk(ctx context.Context, scheduleID string, in BulkRequest) ([]RecordResponse, error) {
	seen := make(map[string]struct{}, len(in.Records))
	for _, e := range in.Records {
		k := strings.TrimSpace(e.StudentID)
		if _, dup := seen[k]; dup {
			return nil, web.ErrInvalid("student listed twice: " + k)
		}
		seen[k] = struct{}{}
	}

	var out []domain.AttendanceRecord
	err := db.RunInTxRetry(ctx, s.db, nil, func(ctx context.Context, tx db.DBTX) error {
		st := NewStore(tx)
		if _, err := st.ScheduleStatus(ctx, scheduleID); err != nil {
			return err
		}
		for _, e := range in.Records {
			if _, _, err := s.upsertOne(ctx, st, scheduleID, e); err != nil {
				return err
			}
		}
		var err error
		out, err = st.ListBySchedule(ctx, scheduleID)
		return err
	})
	if err != nil {
		return nil, lockErr(err)
	}
	return out, nil
}

func (s *Service) ListForSchedule(ctx context.Context, scheduleID string) ([]RecordResponse, error) {
	if _, err := s.store.ScheduleStatus(ctx, scheduleID); err != nil {
		return nil, err
	}
	return s.store.ListBySchedule(ctx, scheduleID)
}

// ForSchedules is the batch read used by the dashboard.
func (s *Service) ForSchedules(ctx context.Context, scheduleIDs []string) (map[string][]domain.AttendanceRecord, error) {
	return s.store.ListBySchedules(ctx, scheduleIDs)
}

func (s *Service) StudentHistory(ctx context.Context, studentID string) (StudentHistoryResponse, error) {
	ok, err := s.store.StudentExists(ctx, studentID)
	if err != nil {
		return StudentHistoryResponse{}, err
	}
	if !ok {
		return StudentHistoryResponse{}, web.ErrNotFound("student not found")
	}
	recs, err := s.store.ListByStudent(ctx, studentID)
	if err != nil {
		return StudentHistoryResponse{}, err
	}
	sessions := make([]stats.Session, len(recs))
	for i := range recs {
		sessions[i] = stats.Session{Status: recs[i].ScheduleStatus, Record: recs[i].AttendanceRecord}
	}
	res := StudentHistoryResponse{StudentID: studentID, Records: recs}
	if sum, ok := stats.SummarizeStudent(studentID, sessions); ok {
		res.HasData = true
		res.Summary = &sum
	}
	return res, nil
}

// Statistics reduces a schedule's records. Only completed schedules have data.
func (s *Service) Statistics(ctx context.Context, scheduleID string) (StatisticsResponse, error) {
	status, err := s.store.ScheduleStatus(ctx, scheduleID)
	if err != nil {
		return StatisticsResponse{}, err
	}
	res := StatisticsResponse{ScheduleID: scheduleID, Status: status}
	if status != domain.ScheduleCompleted {
		return res, nil
	}
	recs, err := s.store.ListBySchedule(ctx, scheduleID)
	if err != nil {
		return StatisticsResponse{}, err
	}
	if st, ok := stats.ForSchedule(status, recs); ok {
		res.HasData = true
		res.Statistics = &st
	}
	return res, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Delete(ctx, id)
}
