package schools

import "time"

type CreateSchoolRequest struct {
	Name          string  `json:"name" binding:"required,max=200"`
	Address       *string `json:"address,omitempty" binding:"omitempty,max=500"`
	ContactPerson *string `json:"contact_person,omitempty" binding:"omitempty,max=200"`
	ContactPhone  *string `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	ContactEmail  *string `json:"contact_email,omitempty" binding:"omitempty,email"`
	Notes         *string `json:"notes,omitempty"`
}

type UpdateSchoolRequest struct {
	Name          *string `json:"name,omitempty" binding:"omitempty,max=200"`
	Address       *string `json:"address,omitempty" binding:"omitempty,max=500"`
	ContactPerson *string `json:"contact_person,omitempty" binding:"omitempty,max=200"`
	ContactPhone  *string `json:"contact_phone,omitempty" binding:"omitempty,max=50"`
	ContactEmail  *string `json:"contact_email,omitempty" binding:"omitempty,email"`
	Notes         *string `json:"notes,omitempty"`
	IsActive      *bool   `json:"is_active,omitempty"`
}

type SchoolResponse struct {
	SchoolID      string    `json:"id"`
	Name          string    `json:"name"`
	Address       *string   `json:"address,omitempty"`
	ContactPerson *string   `json:"contact_person,omitempty"`
	ContactPhone  *string   `json:"contact_phone,omitempty"`
	ContactEmail  *string   `json:"contact_email,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SearchQuery struct {
	Q      *string // matches name or contact person
	Active *bool
}
