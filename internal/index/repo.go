package index

import (
	"fmt"

	"github.com/starford/dagaz/internal/models"
)

// SearchResult is one search hit.
type SearchResult struct {
	ID      string              `json:"id"`
	Date    string              `json:"date"`
	Type    models.ActivityType `json:"type"`
	Title   string              `json:"title"`
	Snippet string              `json:"snippet"`
}

// Upsert inserts or replaces an activity row and its FTS entry within a
// transaction.
func (db *DB) Upsert(a models.Activity) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	_, err = tx.Exec(`
		INSERT INTO activities (id, date, type, title, description, intensity)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date        = excluded.date,
			type        = excluded.type,
			title       = excluded.title,
			description = excluded.description,
			intensity   = excluded.intensity
	`, a.ID, a.Date, string(a.Type), a.Title, a.Description, a.Intensity)
	if err != nil {
		return fmt.Errorf("index: upsert activity: %w", err)
	}

	// FTS upsert (no-op when the FTS5 tag is absent).
	if err := ftsUpsert(tx, a.ID, a.Title, a.Description); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an activity row and its FTS entry.
func (db *DB) Delete(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, id)
	_, _ = tx.Exec(`DELETE FROM activities WHERE id = ?`, id)

	return tx.Commit()
}

// AllIDs returns every indexed activity ID.
func (db *DB) AllIDs() (map[string]struct{}, error) {
	rows, err := db.conn.Query(`SELECT id FROM activities`)
	if err != nil {
		return nil, fmt.Errorf("index: all ids: %w", err)
	}
	defer rows.Close()
	out := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out[id] = struct{}{}
	}
	return out, rows.Err()
}

// Count returns the number of indexed activities.
func (db *DB) Count() (int, error) {
	var n int
	if err := db.conn.QueryRow(`SELECT count(*) FROM activities`).Scan(&n); err != nil {
		return 0, fmt.Errorf("index: count: %w", err)
	}
	return n, nil
}
