package activity

import (
	"time"

	"github.com/starford/dagaz/internal/models"
)

// maxStreakDays bounds the backward walk; the streak makes no claim about
// runs longer than one year.
const maxStreakDays = 365

// CurrentStreak returns the number of consecutive calendar days, anchored
// at today or yesterday, that each have at least one activity. A gap of
// two or more days before the most recent activity fully resets the streak
// to zero, even when older runs exist.
func (s *Store) CurrentStreak() int {
	s.mu.RLock()
	dates := make(map[string]struct{}, len(s.activities))
	for _, a := range s.activities {
		dates[a.Date] = struct{}{}
	}
	s.mu.RUnlock()

	if len(dates) == 0 {
		return 0
	}

	today := s.now()
	anchor := today
	if _, ok := dates[dayString(today)]; !ok {
		yesterday := today.AddDate(0, 0, -1)
		if _, ok := dates[dayString(yesterday)]; !ok {
			return 0
		}
		anchor = yesterday
	}

	streak := 0
	for day := anchor; streak < maxStreakDays; day = day.AddDate(0, 0, -1) {
		if _, ok := dates[dayString(day)]; !ok {
			break
		}
		streak++
	}
	return streak
}

func dayString(t time.Time) string {
	return t.Format(models.DateFormat)
}
