package attendance

import (
	"database/sql"
	"time"

	"BBS-backend/internal/domain"
)

// recordRow mirrors attendance_records joined with students.
type recordRow struct {
	ID                 string
	ScheduleID         string
	StudentID          string
	StudentName        sql.NullString
	Status             string
	KnowledgeScore     sql.NullFloat64
	ParticipationScore sql.NullFloat64
	Notes              sql.NullString
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func (r recordRow) toModel() domain.AttendanceRecord {
	rec := domain.AttendanceRecord{
		ID:                 r.ID,
		ScheduleID:         r.ScheduleID,
		StudentID:          r.StudentID,
		StudentName:        r.StudentName.String,
		Status:             domain.AttendanceStatus(r.Status),
		KnowledgeScore:     nullFloat(r.KnowledgeScore),
		ParticipationScore: nullFloat(r.ParticipationScore),
		CreatedAt:          r.CreatedAt.UTC(),
		UpdatedAt:          r.UpdatedAt.UTC(),
	}
	if r.Notes.Valid {
		n := r.Notes.String
		rec.Notes = &n
	}
	return rec
}
