// Package ledger encodes and decodes the activity ledger file.
//
// The ledger is a single JSON document holding the full activity list.
// Decoding is fail-open: corrupt or unreadable data yields an empty list
// rather than an error, so a storage glitch never blocks the rest of the
// application.
package ledger

import (
	"encoding/json"
	"log/slog"

	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/storage"
)

// FileName is the ledger's location inside the data directory.
const FileName = "ledger.json"

// CurrentVersion is the schema version written by this build.
const CurrentVersion = 1

// Document is the on-disk ledger format.
type Document struct {
	Version    int               `json:"version"`
	Activities []models.Activity `json:"activities"`
}

// Encode marshals activities into the current document format.
func Encode(activities []models.Activity) ([]byte, error) {
	if activities == nil {
		activities = []models.Activity{}
	}
	return json.MarshalIndent(Document{
		Version:    CurrentVersion,
		Activities: activities,
	}, "", "  ")
}

// Decode parses raw ledger bytes. Legacy payloads written before the
// document wrapper existed (a bare JSON array) are migrated as version 0.
// Anything unparseable, or a version newer than this build understands,
// decodes to an empty list with a warning.
func Decode(data []byte, logger *slog.Logger) []models.Activity {
	if len(data) == 0 {
		return []models.Activity{}
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && doc.Version > 0 {
		if doc.Version > CurrentVersion {
			logger.Warn("ledger: version newer than supported, starting empty",
				slog.Int("version", doc.Version),
				slog.Int("supported", CurrentVersion))
			return []models.Activity{}
		}
		if doc.Activities == nil {
			return []models.Activity{}
		}
		return doc.Activities
	}

	// Version 0: the original format was a flat array with no version tag.
	var legacy []models.Activity
	if err := json.Unmarshal(data, &legacy); err == nil {
		logger.Info("ledger: migrated legacy flat-array format",
			slog.Int("activities", len(legacy)))
		return legacy
	}

	logger.Warn("ledger: unparseable data, starting empty",
		slog.Int("bytes", len(data)))
	return []models.Activity{}
}

// Load reads and decodes the ledger from the data directory.
// A missing file is an empty ledger.
func Load(store storage.Provider, logger *slog.Logger) []models.Activity {
	data, err := store.Read(FileName)
	if err != nil {
		return []models.Activity{}
	}
	return Decode(data, logger)
}
