//go:build sqlite_fts5

package index

import (
	"database/sql"
	"fmt"
)

func initFTS(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE VIRTUAL TABLE IF NOT EXISTS activities_fts USING fts5(
			id UNINDEXED,
			title,
			description,
			tokenize = 'unicode61 remove_diacritics 2'
		);
	`)
	return err
}

func ftsUpsert(tx *sql.Tx, id, title, description string) error {
	_, _ = tx.Exec(`DELETE FROM activities_fts WHERE id = ?`, id)
	_, err := tx.Exec(`INSERT INTO activities_fts (id, title, description) VALUES (?, ?, ?)`,
		id, title, description)
	if err != nil {
		return fmt.Errorf("index: upsert fts: %w", err)
	}
	return nil
}

func ftsDelete(tx *sql.Tx, id string) {
	_, _ = tx.Exec(`DELETE FROM activities_fts WHERE id = ?`, id)
}

// Search performs an FTS5 full-text search over activity titles and
// descriptions and returns matching results with snippets.
func (db *DB) Search(query string, limit int) ([]SearchResult, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT a.id,
		       a.date,
		       a.type,
		       a.title,
		       snippet(activities_fts, 2, '<b>', '</b>', '...', 32)
		FROM activities_fts f
		JOIN activities a ON a.id = f.id
		WHERE activities_fts MATCH ?
		ORDER BY rank
		LIMIT ?
	`, query, limit)
	if err != nil {
		return nil, fmt.Errorf("index: search: %w", err)
	}
	defer rows.Close()

	var out []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(&r.ID, &r.Date, &r.Type, &r.Title, &r.Snippet); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
