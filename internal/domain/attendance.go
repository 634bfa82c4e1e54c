package domain

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate:
		return true
	default:
		return false
	}
}

// AttendanceRecord is one student's outcome for one schedule.
// A nil score means "not graded yet".
type AttendanceRecord struct {
	ID                 string           `json:"id"`
	ScheduleID         string           `json:"schedule_id"`
	StudentID          string           `json:"student_id"`
	StudentName        string           `json:"student_name,omitempty"`
	Status             AttendanceStatus `json:"attendance_status"`
	KnowledgeScore     *float64         `json:"knowledge_score"`
	ParticipationScore *float64         `json:"participation_score"`
	Notes              *string          `json:"notes,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
