package attendance

import (
	"BBS-backend/internal/domain"
	"BBS-backend/internal/stats"
)

// MarkRequest records one student's outcome for one schedule.
// Scores are optional; a missing score means "not graded".
type MarkRequest struct {
	ScheduleID         string   `json:"schedule_id" binding:"required"`
	StudentID          string   `json:"student_id" binding:"required"`
	Status             string   `json:"attendance_status" binding:"required,oneof=present absent late"`
	KnowledgeScore     *float64 `json:"knowledge_score,omitempty" binding:"omitempty,min=0,max=100"`
	ParticipationScore *float64 `json:"participation_score,omitempty" binding:"omitempty,min=0,max=100"`
	Notes              *string  `json:"notes,omitempty"`
}

type BulkEntry struct {
	StudentID          string   `json:"student_id" binding:"required"`
	Status             string   `json:"attendance_status" binding:"required,oneof=present absent late"`
	KnowledgeScore     *float64 `json:"knowledge_score,omitempty" binding:"omitempty,min=0,max=100"`
	ParticipationScore *float64 `json:"participation_score,omitempty" binding:"omitempty,min=0,max=100"`
	Notes              *string  `json:"notes,omitempty"`
}

type BulkRequest struct {
	Records []BulkEntry `json:"records" binding:"required,dive"`
}

type RecordResponse = domain.AttendanceRecord

// StudentRecord is a record plus the schedule it belongs to.
type StudentRecord struct {
	domain.AttendanceRecord
	ScheduledDate  string                `json:"scheduled_date"`
	ScheduleStatus domain.ScheduleStatus `json:"schedule_status"`
}

type StudentHistoryResponse struct {
	StudentID string               `json:"student_id"`
	Records   []StudentRecord      `json:"records"`
	HasData   bool                 `json:"has_data"`
	Summary   *stats.StudentSummary `json:"summary"`
}

type StatisticsResponse struct {
	ScheduleID string                    `json:"schedule_id"`
	Status     domain.ScheduleStatus     `json:"status"`
	HasData    bool                      `json:"has_data"`
	Statistics *stats.ScheduleStatistics `json:"statistics"`
}
