package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"BBS-backend/internal/domain"
)

func sched(id, date string) domain.Schedule {
	return domain.Schedule{ID: id, ScheduledDate: date}
}

func ids(c *Cell[domain.Schedule]) []string {
	out := []string{}
	for _, s := range c.Items {
		out = append(out, s.ID)
	}
	return out
}

func TestLeadingBlanksWednesdayStart(t *testing.T) {
	// January 2025 starts on a Wednesday.
	require.Equal(t, 3, LeadingBlanks(2025, time.January))

	grid := BuildGrid(2025, time.January, nil)
	flat := grid.Flatten()
	for i := 0; i < 3; i++ {
		assert.Nil(t, flat[i], "cell %d", i)
	}
	require.NotNil(t, flat[3])
	assert.Equal(t, 1, flat[3].Day)
	assert.Equal(t, "2025-01-01", flat[3].Date)
}

func TestGridShape(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		rows  int
	}{
		{"feb 2026 fits four rows", 2026, time.February, 4},
		{"jan 2025", 2025, time.January, 5},
		{"may 2026 needs six rows", 2026, time.May, 6},
		{"leap february", 2024, time.February, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grid := BuildGrid(tt.year, tt.month, nil)
			require.Len(t, grid, tt.rows)
			days := 0
			for _, row := range grid {
				assert.Len(t, row, DaysPerWeek)
				for _, c := range row {
					if c != nil {
						days++
						assert.Empty(t, c.Items)
					}
				}
			}
			_, last := Month(tt.year, tt.month)
			assert.Equal(t, last.Day(), days)
		})
	}
}

func TestBuildGridGroupsByDate(t *testing.T) {
	schedules := []domain.Schedule{
		sched("b", "2025-01-15"),
		sched("a", "2025-01-15T08:00:00Z"),
		sched("c", "2025-01-15 14:00:00"),
		sched("d", "2025-01-02"),
		sched("prev", "2024-12-31"),
		sched("next", "2025-02-01"),
		sched("bad", "15/01/2025"),
	}
	grid := BuildGrid(2025, time.January, schedules)

	// caller order preserved, no sort
	assert.Equal(t, []string{"b", "a", "c"}, ids(grid.Day(15)))
	assert.Equal(t, []string{"d"}, ids(grid.Day(2)))

	total := 0
	for _, c := range grid.Flatten() {
		if c != nil {
			total += len(c.Items)
		}
	}
	assert.Equal(t, 4, total, "out-of-month and unreadable dates are dropped")
}

// A time with a negative offset late in the evening stays on its written date.
func TestBuildGridIgnoresOffset(t *testing.T) {
	grid := BuildGrid(2025, time.January, []domain.Schedule{sched("x", "2025-01-31T23:30:00-05:00")})
	assert.Equal(t, []string{"x"}, ids(grid.Day(31)))
}

func TestBuildGridLastDayOfMonth(t *testing.T) {
	grid := BuildGrid(2024, time.February, []domain.Schedule{sched("leap", "2024-02-29")})
	flat := grid.Flatten()

	var lastPopulated *Cell[domain.Schedule]
	for _, c := range flat {
		if c != nil {
			lastPopulated = c
		}
	}
	require.NotNil(t, lastPopulated)
	assert.Equal(t, 29, lastPopulated.Day)
	assert.Equal(t, []string{"leap"}, ids(lastPopulated))

	march := BuildGrid(2024, time.March, []domain.Schedule{sched("leap", "2024-02-29")})
	for _, c := range march.Flatten() {
		if c != nil {
			assert.Empty(t, c.Items)
		}
	}
}

func TestBuildIsStateless(t *testing.T) {
	in := []domain.Schedule{sched("a", "2025-03-10")}
	g1 := BuildGrid(2025, time.March, in)
	g2 := BuildGrid(2025, time.March, in)
	assert.Equal(t, g1, g2)
	g1.Day(10).Items = append(g1.Day(10).Items, sched("z", "2025-03-10"))
	assert.Len(t, g2.Day(10).Items, 1)
}

func TestMonthNormalization(t *testing.T) {
	first, last := Month(2025, 13)
	assert.Equal(t, "2026-01-01", first.Format(domain.DateLayout))
	assert.Equal(t, "2026-01-31", last.Format(domain.DateLayout))
}
