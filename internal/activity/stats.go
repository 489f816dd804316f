package activity

import (
	"strings"

	"github.com/starford/dagaz/internal/models"
)

// Stats returns the summary counters shown on the dashboard. ThisYear and
// ThisMonth filter by the current calendar year and month.
//
// AveragePerMonth divides this year's count by a fixed 12 regardless of how
// many months have elapsed, so early in the year it reads as an annualized
// rate rather than a running mean.
func (s *Store) Stats() models.Stats {
	now := s.now()
	yearPrefix := now.Format("2006")
	monthPrefix := now.Format("2006-01")

	s.mu.RLock()
	stats := models.Stats{
		Total:  len(s.activities),
		ByType: make(map[models.ActivityType]int, len(models.ActivityTypes)),
	}
	for _, t := range models.ActivityTypes {
		stats.ByType[t] = 0
	}
	for _, a := range s.activities {
		stats.ByType[a.Type]++
		if strings.HasPrefix(a.Date, yearPrefix) {
			stats.ThisYear++
		}
		if strings.HasPrefix(a.Date, monthPrefix) {
			stats.ThisMonth++
		}
	}
	s.mu.RUnlock()

	stats.Streak = s.CurrentStreak()
	stats.AveragePerMonth = float64(stats.ThisYear) / 12
	return stats
}
