package stats

import (
	"sort"

	"BBS-backend/internal/domain"
)

// StudentSummary is the per-student view of the same reduction:
// Sessions is the number of completed schedules the student has a record for.
type StudentSummary struct {
	StudentID string `json:"student_id"`
	Sessions  int    `json:"sessions"`
	ScheduleStatistics
}

// Session is one of a student's records with the status of its schedule.
type Session struct {
	Status domain.ScheduleStatus
	Record domain.AttendanceRecord
}

// SummarizeStudent reduces the records of completed schedules only. It
// returns false when the student has no such record.
func SummarizeStudent(studentID string, sessions []Session) (StudentSummary, bool) {
	records := make([]domain.AttendanceRecord, 0, len(sessions))
	for _, s := range sessions {
		if s.Status == domain.ScheduleCompleted {
			records = append(records, s.Record)
		}
	}
	st, ok := ComputeScheduleStatistics(records)
	if !ok {
		return StudentSummary{StudentID: studentID}, false
	}
	return StudentSummary{StudentID: studentID, Sessions: st.StudentCount, ScheduleStatistics: st}, true
}

// Overall merges per-schedule record sets into one reduction, e.g. the
// attendance rate across the last N completed sessions.
func Overall(bySchedule map[string][]domain.AttendanceRecord) (ScheduleStatistics, bool) {
	keys := make([]string, 0, len(bySchedule))
	n := 0
	for k, recs := range bySchedule {
		keys = append(keys, k)
		n += len(recs)
	}
	sort.Strings(keys)
	all := make([]domain.AttendanceRecord, 0, n)
	for _, k := range keys {
		all = append(all, bySchedule[k]...)
	}
	return ComputeScheduleStatistics(all)
}
