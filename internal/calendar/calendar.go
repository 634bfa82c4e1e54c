// Package calendar lays schedules out on a month grid.
package calendar

import (
	"time"

	"BBS-backend/internal/domain"
)

const DaysPerWeek = 7

// Cell is one day of the month. Grid positions before day 1 and after the
// last day are nil.
type Cell[T any] struct {
	Date  string `json:"date"`
	Day   int    `json:"day"`
	Items []T    `json:"items"`
}

// Grid is rows of DaysPerWeek cells, Sunday first.
type Grid[T any] [][]*Cell[T]

// Month returns the first and last civil dates of the month. month is
// normalized the way time.Date does it (13 is January of the next year).
func Month(year int, month time.Month) (first, last time.Time) {
	first = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last = first.AddDate(0, 1, -1)
	return first, last
}

// LeadingBlanks is the number of nil cells before day 1 (0 = Sunday).
func LeadingBlanks(year int, month time.Month) int {
	first, _ := Month(year, month)
	return int(first.Weekday())
}

// Build groups items by the civil date dateOf returns. Items dated outside
// the month, or with an unreadable date, are dropped. Within a cell the
// input order is kept.
func Build[T any](year int, month time.Month, items []T, dateOf func(T) string) Grid[T] {
	first, last := Month(year, month)
	days := last.Day()
	lead := int(first.Weekday())

	cells := make([]*Cell[T], days)
	for d := 0; d < days; d++ {
		cells[d] = &Cell[T]{
			Date:  first.AddDate(0, 0, d).Format(domain.DateLayout),
			Day:   d + 1,
			Items: []T{},
		}
	}

	for _, it := range items {
		t, err := domain.ParseDate(dateOf(it))
		if err != nil || t.Year() != first.Year() || t.Month() != first.Month() {
			continue
		}
		c := cells[t.Day()-1]
		c.Items = append(c.Items, it)
	}

	total := lead + days
	rows := (total + DaysPerWeek - 1) / DaysPerWeek
	grid := make(Grid[T], rows)
	for r := range grid {
		grid[r] = make([]*Cell[T], DaysPerWeek)
	}
	for d, c := range cells {
		pos := lead + d
		grid[pos/DaysPerWeek][pos%DaysPerWeek] = c
	}
	return grid
}

// BuildGrid is Build for schedules keyed by ScheduledDate.
func BuildGrid(year int, month time.Month, schedules []domain.Schedule) Grid[domain.Schedule] {
	return Build(year, month, schedules, func(s domain.Schedule) string { return s.ScheduledDate })
}

// Flatten returns the cells row by row, nil padding included; index i sits
// at row i/7, column i%7.
func (g Grid[T]) Flatten() []*Cell[T] {
	out := make([]*Cell[T], 0, len(g)*DaysPerWeek)
	for _, row := range g {
		out = append(out, row...)
	}
	return out
}

// Day returns the cell for a day of the month, or nil.
func (g Grid[T]) Day(day int) *Cell[T] {
	for _, row := range g {
		for _, c := range row {
			if c != nil && c.Day == day {
				return c
			}
		}
	}
	return nil
}
