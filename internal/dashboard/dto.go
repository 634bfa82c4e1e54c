package dashboard

import (
	"BBS-backend/internal/calendar"
	"BBS-backend/internal/domain"
	"BBS-backend/internal/stats"
)

type Counts struct {
	Schools  int64 `json:"schools"`
	Teachers int64 `json:"teachers"`
	Students int64 `json:"students"`
	Lessons  int64 `json:"lessons"`
}

type CashflowMonth struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Income  int64  `json:"income"`
	Expense int64  `json:"expense"`
	Balance int64  `json:"balance"`
}

// Overview is the landing page payload. Degraded lists the sources that
// failed and were replaced by empty values.
type Overview struct {
	Counts           Counts                    `json:"counts"`
	Upcoming         []domain.Schedule         `json:"upcoming"`
	Cashflow         *CashflowMonth            `json:"cashflow"`
	RecentSessions   int                       `json:"recent_sessions"`
	RecentAttendance *stats.ScheduleStatistics `json:"recent_attendance"`
	Degraded         []string                  `json:"degraded"`
}

type CalendarItem struct {
	domain.Schedule
	HasData    bool                      `json:"has_data"`
	Statistics *stats.ScheduleStatistics `json:"statistics"`
}

type CalendarResponse struct {
	Year          int                         `json:"year"`
	Month         int                         `json:"month"`
	LeadingBlanks int                         `json:"leading_blanks"`
	Weeks         calendar.Grid[CalendarItem] `json:"weeks"`
	Total         int                         `json:"total"`
	Degraded      []string                    `json:"degraded"`
}
