package students

import "time"

type CreateStudentRequest struct {
	SchoolID   string  `json:"school_id" binding:"required"`
	Name       string  `json:"name" binding:"required,max=200"`
	GradeLevel *string `json:"grade_level,omitempty" binding:"omitempty,max=50"`
	Gender     *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Notes      *string `json:"notes,omitempty"`
}

type UpdateStudentRequest struct {
	SchoolID   *string `json:"school_id,omitempty"`
	Name       *string `json:"name,omitempty" binding:"omitempty,max=200"`
	GradeLevel *string `json:"grade_level,omitempty" binding:"omitempty,max=50"`
	Gender     *string `json:"gender,omitempty" binding:"omitempty,oneof=male female other"`
	Notes      *string `json:"notes,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type StudentResponse struct {
	StudentID  string    `json:"id"`
	SchoolID   string    `json:"school_id"`
	SchoolName string    `json:"school_name"`
	Name       string    `json:"name"`
	GradeLevel *string   `json:"grade_level,omitempty"`
	Gender     *string   `json:"gender,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type SearchQuery struct {
	SchoolID *string
	Q        *string
	Active   *bool
}
