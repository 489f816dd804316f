package activity

import (
	"fmt"

	"github.com/starford/dagaz/internal/models"
)

// Seed populates the store with sample data covering the last two weeks.
// It is invoked only from the CLI seed command at bootstrap, never from a
// query path.
func Seed(s *Store) error {
	samples := []struct {
		daysAgo   int
		typ       models.ActivityType
		title     string
		intensity int
	}{
		{0, models.TypePost, "Hello world", 3},
		{1, models.TypeProject, "Portfolio redesign", 3},
		{1, models.TypeMedia, "header.png", 1},
		{2, models.TypeUpdate, "Refreshed the about page", 2},
		{4, models.TypePost, "Notes on contribution graphs", 3},
		{4, models.TypeProject, "Ledger prototype", 2},
		{5, models.TypeUpdate, "Small copy fixes", 1},
		{7, models.TypeMedia, "screenshot.webp", 1},
		{9, models.TypePost, "Streaks and why they reset", 2},
		{12, models.TypeProject, "Calendar widget", 4},
	}

	for _, sm := range samples {
		date := s.Now().AddDate(0, 0, -sm.daysAgo).Format(models.DateFormat)
		if _, _, err := s.Add(AddInput{
			Date:      date,
			Type:      sm.typ,
			Title:     sm.title,
			Intensity: sm.intensity,
		}); err != nil {
			return fmt.Errorf("seed %q: %w", sm.title, err)
		}
	}
	return nil
}
