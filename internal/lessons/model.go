package lessons

import (
	"database/sql"
	"time"
)

const DefaultDurationMinutes = 60

type Lesson struct {
	LessonID        string
	Title           string
	Description     sql.NullString
	Objectives      sql.NullString
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (l Lesson) toDTO() LessonResponse {
	return LessonResponse{
		LessonID:        l.LessonID,
		Title:           l.Title,
		Description:     nullToPtr(l.Description),
		Objectives:      nullToPtr(l.Objectives),
		DurationMinutes: l.DurationMinutes,
		IsActive:        l.IsActive,
		CreatedAt:       l.CreatedAt.UTC(),
		UpdatedAt:       l.UpdatedAt.UTC(),
	}
}

func nullToPtr(n sql.NullString) *string {
	if !n.Valid {
		return nil
	}
	v := n.String
	return &v
}

func ptrToNull(p *string) sql.NullString {
	if p == nil || *p == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}
