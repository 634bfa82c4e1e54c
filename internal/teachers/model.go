package teachers

import (
	"database/sql"
	"strings"
	"time"
)

type Teacher struct {
	TeacherID      string
	Name           string
	Email          sql.NullString
	Phone          sql.NullString
	Specialization sql.NullString
	IsActive       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (t Teacher) toDTO() TeacherResponse {
	return TeacherResponse{
		TeacherID:      t.TeacherID,
		Name:           t.Name,
		Email:          nullToPtr(t.Email),
		Phone:          nullToPtr(t.Phone),
		Specialization: nullToPtr(t.Specialization),
		IsActive:       t.IsActive,
		CreatedAt:      t.CreatedAt.UTC(),
		UpdatedAt:      t.UpdatedAt.UTC(),
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

// emails are unique case-insensitively
func normalizeEmail(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.ToLower(strings.TrimSpace(*p))
	if v == "" {
		return nil
	}
	return &v
}
