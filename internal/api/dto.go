package api

import (
	"github.com/starford/dagaz/internal/index"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/storage"
)

// CreateActivityRequest is the request body for recording an activity.
type CreateActivityRequest struct {
	Date        string `json:"date" example:"2025-06-01" validate:"required"`
	Type        string `json:"type" example:"post" validate:"required"`
	Title       string `json:"title" example:"Hello world" validate:"required"`
	Description string `json:"description,omitempty" example:"First post"`
	Intensity   int    `json:"intensity" example:"3" validate:"required"`
}

// UpdateActivityRequest is the request body for a partial update.
// Absent fields are left unchanged.
type UpdateActivityRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Intensity   *int    `json:"intensity,omitempty"`
}

// TrackRequest is the request body for the post/project track endpoints.
type TrackRequest struct {
	Title    string `json:"title" example:"Hello world" validate:"required"`
	IsUpdate bool   `json:"is_update" example:"false"`
}

// TrackMediaRequest is the request body for the media track endpoint.
type TrackMediaRequest struct {
	Filename string `json:"filename" example:"header.png" validate:"required"`
}

// ActivityResponse wraps a single activity.
type ActivityResponse struct {
	Activity models.Activity `json:"activity"`
	Merged   bool            `json:"merged"`
}

// ActivityListResponse wraps an activity listing.
type ActivityListResponse struct {
	Activities []models.Activity `json:"activities"`
	Total      int               `json:"total" example:"42"`
}

// CalendarResponse is the contribution-calendar payload. Weeks are
// Sunday-aligned columns of seven cells; null entries are padding outside
// the tracked range, distinct from real zero-intensity cells.
type CalendarResponse struct {
	Year  int                 `json:"year"`
	Days  []models.DayCell    `json:"days"`
	Weeks [][]*models.DayCell `json:"weeks"`
}

// StreakResponse wraps the current streak.
type StreakResponse struct {
	Streak int `json:"streak" example:"7"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// MediaListResponse wraps the files currently in the media directory.
type MediaListResponse struct {
	Files []storage.FileInfo `json:"files"`
}

// MediaUploadResponse is returned after a successful media upload.
type MediaUploadResponse struct {
	Filename string          `json:"filename" example:"image.png"`
	Size     int64           `json:"size" example:"12345"`
	URL      string          `json:"url" example:"/media/image.png"`
	Activity models.Activity `json:"activity"`
}
