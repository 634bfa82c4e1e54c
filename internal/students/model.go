package students

import (
	"database/sql"
	"time"
)

type Student struct {
	StudentID  string
	SchoolID   string
	SchoolName string // joined, read-only
	Name       string
	GradeLevel sql.NullString
	Gender     sql.NullString
	Notes      sql.NullString
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s Student) toDTO() StudentResponse {
	return StudentResponse{
		StudentID:  s.StudentID,
		SchoolID:   s.SchoolID,
		SchoolName: s.SchoolName,
		Name:       s.Name,
		GradeLevel: nullToPtr(s.GradeLevel),
		Gender:     nullToPtr(s.Gender),
		Notes:      nullToPtr(s.Notes),
		IsActive:   s.IsActive,
		CreatedAt:  s.CreatedAt.UTC(),
		UpdatedAt:  s.UpdatedAt.UTC(),
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
