package schedules

import "BBS-backend/internal/domain"

type CreateScheduleRequest struct {
	ScheduledDate   string   `json:"scheduled_date" binding:"required,civildate"`
	ScheduledTime   string   `json:"scheduled_time" binding:"required,clocktime"`
	DurationMinutes int      `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	Status          string   `json:"status" binding:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	SchoolID        string   `json:"school_id" binding:"required"`
	LessonIDs       []string `json:"lesson_ids" binding:"omitempty,dive,required"`
	TeacherIDs      []string `json:"teacher_ids" binding:"omitempty,dive,required"`
	Notes           *string  `json:"notes,omitempty"`
}

// UpdateScheduleRequest replaces lesson/teacher sets only when the field is present.
type UpdateScheduleRequest struct {
	ScheduledDate   *string   `json:"scheduled_date,omitempty" binding:"omitempty,civildate"`
	ScheduledTime   *string   `json:"scheduled_time,omitempty" binding:"omitempty,clocktime"`
	DurationMinutes *int      `json:"duration_minutes,omitempty" binding:"omitempty,min=1,max=1440"`
	Status          *string   `json:"status,omitempty" binding:"omitempty,oneof=scheduled completed cancelled rescheduled"`
	SchoolID        *string   `json:"school_id,omitempty"`
	LessonIDs       *[]string `json:"lesson_ids,omitempty"`
	TeacherIDs      *[]string `json:"teacher_ids,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled rescheduled"`
}

type ScheduleResponse = domain.Schedule

type Filter struct {
	From      *string // YYYY-MM-DD inclusive
	To        *string // YYYY-MM-DD inclusive
	Status    *domain.ScheduleStatus
	SchoolID  *string
	TeacherID *string
}
