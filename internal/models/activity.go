// Package models defines the domain types for Dagaz.
package models

import "time"

// DateFormat is the canonical calendar-date layout. Dates are stored as
// plain YYYY-MM-DD strings so that lexicographic ordering equals
// chronological ordering.
const DateFormat = "2006-01-02"

// ActivityType classifies a tracked unit of work.
type ActivityType string

const (
	TypePost    ActivityType = "post"
	TypeProject ActivityType = "project"
	TypeUpdate  ActivityType = "update"
	TypeMedia   ActivityType = "media"
)

// ActivityTypes lists every valid type, in display order.
var ActivityTypes = []ActivityType{TypePost, TypeProject, TypeUpdate, TypeMedia}

// Valid reports whether t is one of the known activity types.
func (t ActivityType) Valid() bool {
	switch t {
	case TypePost, TypeProject, TypeUpdate, TypeMedia:
		return true
	}
	return false
}

// Activity is one recorded unit of tracked work on a specific date.
// At most one Activity exists per (Date, Type) pair; a second write to the
// same pair merges into the existing record.
type Activity struct {
	ID          string       `json:"id"`
	Date        string       `json:"date"` // YYYY-MM-DD
	Type        ActivityType `json:"type"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Intensity   int          `json:"intensity"` // 1..4 as stored per event
}

// Day returns the activity date as a time.Time (midnight UTC).
func (a Activity) Day() (time.Time, error) {
	return time.Parse(DateFormat, a.Date)
}

// DayCell is the derived per-date view used by the contribution calendar.
// Intensity is the resolved display value (0 = no activity that day).
// DayCells are recomputed on every read and never persisted.
type DayCell struct {
	Date       string     `json:"date"`
	Intensity  int        `json:"intensity"` // 0..4 resolved per day
	Activities []Activity `json:"activities"`
}

// Stats summarises the whole ledger for dashboard rendering.
type Stats struct {
	Total           int                  `json:"total"`
	ThisYear        int                  `json:"this_year"`
	ThisMonth       int                  `json:"this_month"`
	Streak          int                  `json:"streak"`
	ByType          map[ActivityType]int `json:"by_type"`
	AveragePerMonth float64              `json:"average_per_month"`
}
