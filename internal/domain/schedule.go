package domain

import "time"

type ScheduleStatus string

const (
	ScheduleScheduled   ScheduleStatus = "scheduled"
	ScheduleCompleted   ScheduleStatus = "completed"
	ScheduleCancelled   ScheduleStatus = "cancelled"
	ScheduleRescheduled ScheduleStatus = "rescheduled"
)

func (s ScheduleStatus) Valid() bool {
	switch s {
	case ScheduleScheduled, ScheduleCompleted, ScheduleCancelled, ScheduleRescheduled:
		return true
	default:
		return false
	}
}

// Schedule is a teaching session at one school.
// ScheduledDate is a civil date (YYYY-MM-DD); ScheduledTime is HH:MM.
// TeacherNames and LessonTitles are resolved by the store and line up with
// TeacherIDs and LessonIDs.
type Schedule struct {
	ID              string         `json:"id"`
	ScheduledDate   string         `json:"scheduled_date"`
	ScheduledTime   string         `json:"scheduled_time"`
	DurationMinutes int            `json:"duration_minutes"`
	Status          ScheduleStatus `json:"status"`
	SchoolID        string         `json:"school_id"`
	SchoolName      string         `json:"school_name,omitempty"`
	LessonIDs       []string       `json:"lesson_ids"`
	LessonTitles    []string       `json:"lesson_titles"`
	TeacherIDs      []string       `json:"teacher_ids"`
	TeacherNames    []string       `json:"teacher_names"`
	Notes           *string        `json:"notes,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}
