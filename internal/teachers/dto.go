package teachers

import "time"

type CreateTeacherRequest struct {
	Name           string  `json:"name" binding:"required,max=200"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=200"`
}

type UpdateTeacherRequest struct {
	Name           *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Email          *string `json:"email,omitempty" binding:"omitempty,email"`
	Phone          *string `json:"phone,omitempty" binding:"omitempty,max=50"`
	Specialization *string `json:"specialization,omitempty" binding:"omitempty,max=200"`
	IsActive       *bool   `json:"is_active,omitempty"`
}

type TeacherResponse struct {
	TeacherID      string    `json:"id"`
	Name           string    `json:"name"`
	Email          *string   `json:"email,omitempty"`
	Phone          *string   `json:"phone,omitempty"`
	Specialization *string   `json:"specialization,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type SearchQuery struct {
	Q      *string
	Active *bool
}
