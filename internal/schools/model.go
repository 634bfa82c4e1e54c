package schools

import (
	"database/sql"
	"time"
)

// School mirrors one row of the schools table.
type School struct {
	SchoolID      string
	Name          string
	Address       sql.NullString
	ContactPerson sql.NullString
	ContactPhone  sql.NullString
	ContactEmail  sql.NullString
	Notes         sql.NullString
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (s School) toDTO() SchoolResponse {
	return SchoolResponse{
		SchoolID:      s.SchoolID,
		Name:          s.Name,
		Address:       nullToPtr(s.Address),
		ContactPerson: nullToPtr(s.ContactPerson),
		ContactPhone:  nullToPtr(s.ContactPhone),
		ContactEmail:  nullToPtr(s.ContactEmail),
		Notes:         nullToPtr(s.Notes),
		IsActive:      s.IsActive,
		CreatedAt:     s.CreatedAt.UTC(),
		UpdatedAt:     s.UpdatedAt.UTC(),
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
