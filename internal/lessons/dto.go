package lessons

import "time"

type CreateLessonRequest struct {
	Title           string  `json:"title" binding:"required,max=200"`
	Description     *string `json:"description,omitempty"`
	Objectives      *string `json:"objectives,omitempty"`
	DurationMinutes int     `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
}

type UpdateLessonRequest struct {
	Title           *string `json:"title,omitempty" binding:"omitempty,max=200"`
	Description     *string `json:"description,omitempty"`
	Objectives      *string `json:"objectives,omitempty"`
	DurationMinutes *int    `json:"duration_minutes,omitempty" binding:"omitempty,min=1,max=1440"`
	IsActive        *bool   `json:"is_active,omitempty"`
}

type LessonResponse struct {
	LessonID        string    `json:"id"`
	Title           string    `json:"title"`
	Description     *string   `json:"description,omitempty"`
	Objectives      *string   `json:"objectives,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type SearchQuery struct {
	Q      *string
	Active *bool
}
