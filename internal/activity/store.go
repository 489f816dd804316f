// Package activity implements the activity ledger: a store of dated events
// plus the derived contribution-calendar, streak, and stats views.
package activity

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/dagaz/internal/apperr"
	"github.com/starford/dagaz/internal/checksum"
	"github.com/starford/dagaz/internal/ledger"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/storage"
)

// Store owns the canonical activity collection. All mutation and lookup
// passes through it. Every mutation re-serializes the whole collection to
// the ledger file; the mutex keeps the one-record-per-(date,type) invariant
// safe under concurrent writers.
type Store struct {
	files  storage.Provider
	logger *slog.Logger
	now    func() time.Time

	mu         sync.RWMutex
	activities []models.Activity
	lastWrite  string // checksum of the last payload this process wrote
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNow overrides the store's clock.
func WithNow(now func() time.Time) StoreOption {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore creates a Store and loads the ledger from the data directory.
// A missing or corrupt ledger file loads as an empty collection.
func NewStore(files storage.Provider, logger *slog.Logger, opts ...StoreOption) *Store {
	s := &Store{
		files:  files,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.activities = ledger.Load(files, logger)
	return s
}

// AddInput is the payload for Add.
type AddInput struct {
	Date        string
	Type        models.ActivityType
	Title       string
	Description string
	Intensity   int
}

// Validate checks the input against the ledger's invariants.
func (in AddInput) Validate() error {
	if err := validation.ValidateStruct(&in,
		validation.Field(&in.Date, validation.Required, validation.Date(models.DateFormat).Error(apperr.ErrInvalidDate.Error())),
		validation.Field(&in.Title, validation.Required, validation.Length(1, 200)),
	); err != nil {
		return err
	}
	if in.Intensity < 1 || in.Intensity > 4 {
		return fmt.Errorf("%w: %d", apperr.ErrInvalidIntensity, in.Intensity)
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: %q", apperr.ErrInvalidType, in.Type)
	}
	return nil
}

// Add records an activity. When an activity already exists for the same
// (date, type) pair the write merges instead: intensity becomes the max of
// old and new, title and description are replaced, and the original ID is
// preserved. The returned bool reports whether a merge happened.
func (s *Store) Add(in AddInput) (models.Activity, bool, error) {
	if err := in.Validate(); err != nil {
		return models.Activity{}, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.activities {
		if a.Date == in.Date && a.Type == in.Type {
			merged := a
			merged.Title = in.Title
			merged.Description = in.Description
			if in.Intensity > merged.Intensity {
				merged.Intensity = in.Intensity
			}
			s.activities[i] = merged
			return merged, true, s.persistLocked()
		}
	}

	created := models.Activity{
		ID:          uuid.NewString(),
		Date:        in.Date,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Intensity:   in.Intensity,
	}
	s.activities = append(s.activities, created)
	return created, false, s.persistLocked()
}

// Patch holds the updatable fields of an activity. Nil fields are left
// unchanged. Date and type are immutable after creation so the
// (date, type) invariant never needs a reader-side check.
type Patch struct {
	Title       *string
	Description *string
	Intensity   *int
}

// Update applies a partial update to the activity with the given ID.
// An unknown ID is a no-op, never an error.
func (s *Store) Update(id string, p Patch) error {
	if p.Intensity != nil && (*p.Intensity < 1 || *p.Intensity > 4) {
		return fmt.Errorf("%w: %d", apperr.ErrInvalidIntensity, *p.Intensity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.activities {
		if a.ID != id {
			continue
		}
		if p.Title != nil {
			a.Title = *p.Title
		}
		if p.Description != nil {
			a.Description = *p.Description
		}
		if p.Intensity != nil {
			a.Intensity = *p.Intensity
		}
		s.activities[i] = a
		return s.persistLocked()
	}
	return nil
}

// Delete removes the activity with the given ID. Unknown IDs are a no-op.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, a := range s.activities {
		if a.ID == id {
			s.activities = append(s.activities[:i], s.activities[i+1:]...)
			return s.persistLocked()
		}
	}
	return nil
}

// Get returns the activity with the given ID.
func (s *Store) Get(id string) (models.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.activities {
		if a.ID == id {
			return a, nil
		}
	}
	return models.Activity{}, apperr.ErrNotFound
}

// All returns a copy of every activity. Order is unspecified; callers sort
// when order matters.
func (s *Store) All() []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// ForDate returns all activities recorded on the given date.
func (s *Store) ForDate(date string) []models.Activity {
	return s.ForDateRange(date, date)
}

// ForDateRange returns all activities with start <= date <= end. The
// inclusive string comparison is valid because the ISO date format orders
// lexicographically.
func (s *Store) ForDateRange(start, end string) []models.Activity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []models.Activity{}
	for _, a := range s.activities {
		if a.Date >= start && a.Date <= end {
			out = append(out, a)
		}
	}
	return out
}

// Reload replaces the in-memory collection with the ledger's current
// on-disk contents. Used by the watcher after an out-of-band rewrite.
func (s *Store) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activities = ledger.Load(s.files, s.logger)
}

// LastChecksum returns the checksum of the most recent ledger payload this
// process wrote, or empty if it has not written yet.
func (s *Store) LastChecksum() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastWrite
}

// Now returns the store's current time.
func (s *Store) Now() time.Time {
	return s.now()
}

// Today returns the store's current date as a YYYY-MM-DD string.
func (s *Store) Today() string {
	return s.now().Format(models.DateFormat)
}

// persistLocked re-serializes the collection to the ledger file. The
// caller must hold the write lock. On failure the in-memory state keeps
// the mutation for the rest of the session; the error is logged and
// returned so callers can surface it.
func (s *Store) persistLocked() error {
	data, err := ledger.Encode(s.activities)
	if err != nil {
		return fmt.Errorf("activity: encode ledger: %w", err)
	}
	s.lastWrite = checksum.Sum(data)
	if err := s.files.Write(ledger.FileName, data); err != nil {
		s.logger.Error("activity: persist failed, in-memory state retained",
			slog.String("error", err.Error()))
		return fmt.Errorf("activity: persist ledger: %w", err)
	}
	return nil
}

// IsValidationError reports whether err came from input validation rather
// than persistence, so transports can map it to a 400.
func IsValidationError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, apperr.ErrInvalidDate) ||
		errors.Is(err, apperr.ErrInvalidIntensity) ||
		errors.Is(err, apperr.ErrInvalidType) {
		return true
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		return true
	}
	var verr validation.Error
	return errors.As(err, &verr)
}
