// Package stats reduces attendance records into summary metrics.
//
// Everything here is pure: no I/O, no shared state. The same reduction
// serves one schedule (one record per student) and one student (one record
// per session).
package stats

import (
	"math"

	"BBS-backend/internal/domain"
)

const (
	MinScore = 0
	MaxScore = 100
)

// ScheduleStatistics summarizes a set of attendance records.
//
// PresentCount+LateCount+AbsentCount equals StudentCount unless some records
// carry an unrecognized status; those are counted in UnrecognizedCount only.
// AvgKnowledge and AvgParticipation are 0 when the matching *Graded count is 0.
type ScheduleStatistics struct {
	StudentCount        int     `json:"student_count"`
	PresentCount        int     `json:"present_count"`
	LateCount           int     `json:"late_count"`
	AbsentCount         int     `json:"absent_count"`
	UnrecognizedCount   int     `json:"unrecognized_count"`
	AvgKnowledge        float64 `json:"avg_knowledge"`
	AvgParticipation    float64 `json:"avg_participation"`
	KnowledgeGraded     int     `json:"knowledge_graded"`
	ParticipationGraded int     `json:"participation_graded"`
	AttendanceRate      float64 `json:"attendance_rate"`
}

// Options tune the reduction. The zero value does not validate scores.
type Options struct {
	// ClampScores forces each defined score into [MinScore, MaxScore] before averaging.
	ClampScores bool
}

// ComputeScheduleStatistics returns false when records is empty ("no data").
func ComputeScheduleStatistics(records []domain.AttendanceRecord) (ScheduleStatistics, bool) {
	return ComputeWithOptions(records, Options{})
}

func ComputeWithOptions(records []domain.AttendanceRecord, opts Options) (ScheduleStatistics, bool) {
	if len(records) == 0 {
		return ScheduleStatistics{}, false
	}

	var (
		st                       ScheduleStatistics
		knowledge, participation mean
	)
	st.StudentCount = len(records)
	for i := range records {
		r := &records[i]
		switch r.Status {
		case domain.AttendancePresent:
			st.PresentCount++
		case domain.AttendanceLate:
			st.LateCount++
		case domain.AttendanceAbsent:
			st.AbsentCount++
		default:
			st.UnrecognizedCount++
		}
		knowledge.add(r.KnowledgeScore, opts)
		participation.add(r.ParticipationScore, opts)
	}

	st.AvgKnowledge, st.KnowledgeGraded = knowledge.result()
	st.AvgParticipation, st.ParticipationGraded = participation.result()
	st.AttendanceRate = Rate(st.PresentCount+st.LateCount, st.StudentCount)
	return st, true
}

// ForSchedule applies the completed-only rule: statistics of a schedule that
// is not completed are "no data" whatever records exist.
func ForSchedule(status domain.ScheduleStatus, records []domain.AttendanceRecord) (ScheduleStatistics, bool) {
	if status != domain.ScheduleCompleted {
		return ScheduleStatistics{}, false
	}
	return ComputeScheduleStatistics(records)
}

// Rate returns part/whole as a percentage rounded to one decimal; 0 when whole is 0.
func Rate(part, whole int) float64 {
	if whole <= 0 {
		return 0
	}
	return Round1(float64(part) / float64(whole) * 100)
}

// Round1 rounds half away from zero to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v *float64, opts Options) {
	if v == nil || math.IsNaN(*v) {
		return
	}
	x := *v
	if opts.ClampScores {
		x = math.Max(MinScore, math.Min(MaxScore, x))
	}
	m.sum += x
	m.n++
}

func (m mean) result() (float64, int) {
	if m.n == 0 {
		return 0, 0
	}
	return Round1(m.sum / float64(m.n)), m.n
}
