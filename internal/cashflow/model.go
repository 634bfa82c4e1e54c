package cashflow

import (
	"database/sql"
	"time"
)

type Category struct {
	CategoryID uint
	Name       string
	Code       string
	IsDisabled bool
}

func (c Category) toDTO() CategoryResponse {
	return CategoryResponse{ID: c.CategoryID, Name: c.Name, Code: c.Code, IsDisabled: c.IsDisabled}
}

type Entry struct {
	EntryID      string
	Type         EntryType
	CategoryID   uint
	CategoryCode string
	CategoryName string
	Amount       int64
	OccurredOn   string // YYYY-MM-DD
	Description  sql.NullString
	Reference    sql.NullString
	ScheduleID   sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func nullToPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	s := v.String
	return &s
}

func ptrToNull(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func (e Entry) toDTO() EntryResponse {
	return EntryResponse{
		ID:           e.EntryID,
		Type:         e.Type,
		CategoryID:   e.CategoryID,
		CategoryCode: e.CategoryCode,
		CategoryName: e.CategoryName,
		Amount:       e.Amount,
		OccurredOn:   e.OccurredOn,
		Description:  nullToPtr(e.Description),
		Reference:    nullToPtr(e.Reference),
		ScheduleID:   nullToPtr(e.ScheduleID),
		CreatedAt:    e.CreatedAt.UTC(),
		UpdatedAt:    e.UpdatedAt.UTC(),
	}
}
