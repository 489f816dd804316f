package activity

import (
	"time"

	"github.com/starford/dagaz/internal/models"
)

// rollingWindowDays is the size of the default calendar window.
const rollingWindowDays = 365

// YearData returns an ordered, gapless list of DayCells. Passing zero or
// the current year yields a rolling 365-day window ending today inclusive;
// a past year yields that calendar year, January 1 through December 31
// (366 cells in leap years). Every date in range produces a cell:
// zero-activity days are emitted as real zero-intensity cells so the
// rendered grid has no holes.
func (s *Store) YearData(year int) []models.DayCell {
	today := s.now()

	var start, end time.Time
	if year == 0 || year == today.Year() {
		end = midnight(today)
		start = end.AddDate(0, 0, -(rollingWindowDays - 1))
	} else {
		start = time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
		end = time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
	}

	byDate := s.activitiesByDate()

	cells := make([]models.DayCell, 0, rollingWindowDays+1)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := dayString(day)
		acts := byDate[date]
		if acts == nil {
			acts = []models.Activity{}
		}
		cells = append(cells, models.DayCell{
			Date:       date,
			Intensity:  ResolveIntensity(acts),
			Activities: acts,
		})
	}
	return cells
}

// WeekColumns re-buckets a flat DayCell list into Sunday-aligned week
// columns for GitHub-style rendering. Each column holds seven rows, Sunday
// through Saturday. Padding days before the range start and after the
// range end are nil placeholders: visually blank and non-interactive,
// distinct from a real zero-intensity cell inside the tracked range.
func WeekColumns(cells []models.DayCell) [][]*models.DayCell {
	if len(cells) == 0 {
		return [][]*models.DayCell{}
	}

	first, err := time.Parse(models.DateFormat, cells[0].Date)
	if err != nil {
		return [][]*models.DayCell{}
	}

	// Index of the range start within its Sunday-aligned week.
	lead := int(first.Weekday())

	weeks := [][]*models.DayCell{}
	week := make([]*models.DayCell, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, nil)
	}
	for i := range cells {
		week = append(week, &cells[i])
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]*models.DayCell, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, nil)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// activitiesByDate groups a snapshot of the collection by date.
func (s *Store) activitiesByDate() map[string][]models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byDate := make(map[string][]models.Activity)
	for _, a := range s.activities {
		byDate[a.Date] = append(byDate[a.Date], a)
	}
	return byDate
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
