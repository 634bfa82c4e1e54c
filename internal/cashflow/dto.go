package cashflow

import "time"

type EntryType string

const (
	Income  EntryType = "income"
	Expense EntryType = "expense"
)

func (t EntryType) Valid() bool { return t == Income || t == Expense }

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required"`
	Code string `json:"code" binding:"required"`
}

type UpdateCategoryRequest struct {
	Name       string `json:"name" binding:"required"`
	Code       string `json:"code" binding:"required"`
	IsDisabled bool   `json:"is_disabled"`
}

type CategoryResponse struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Code       string `json:"code"`
	IsDisabled bool   `json:"is_disabled"`
}

// Amounts are integer minor units (e.g. cents).
type CreateEntryRequest struct {
	Type        string  `json:"type" binding:"required,oneof=income expense"`
	CategoryID  uint    `json:"category_id" binding:"required"`
	Amount      int64   `json:"amount" binding:"required,gt=0"`
	OccurredOn  string  `json:"occurred_on" binding:"required,civildate"`
	Description *string `json:"description,omitempty"`
	Reference   *string `json:"reference,omitempty"`
	ScheduleID  *string `json:"schedule_id,omitempty"`
}

type UpdateEntryRequest struct {
	Type        *string `json:"type,omitempty" binding:"omitempty,oneof=income expense"`
	CategoryID  *uint   `json:"category_id,omitempty" binding:"omitempty,gt=0"`
	Amount      *int64  `json:"amount,omitempty" binding:"omitempty,gt=0"`
	OccurredOn  *string `json:"occurred_on,omitempty" binding:"omitempty,civildate"`
	Description *string `json:"description,omitempty"`
	Reference   *string `json:"reference,omitempty"`
	ScheduleID  *string `json:"schedule_id,omitempty"`
}

type EntryResponse struct {
	ID           string    `json:"id"`
	Type         EntryType `json:"type"`
	CategoryID   uint      `json:"category_id"`
	CategoryCode string    `json:"category_code"`
	CategoryName string    `json:"category_name"`
	Amount       int64     `json:"amount"`
	OccurredOn   string    `json:"occurred_on"`
	Description  *string   `json:"description,omitempty"`
	Reference    *string   `json:"reference,omitempty"`
	ScheduleID   *string   `json:"schedule_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type EntryFilter struct {
	From       *string
	To         *string
	Type       *EntryType
	CategoryID *uint
}
