//go:build sqlite_fts5

package index

import (
	"testing"

	"github.com/starford/dagaz/internal/models"
)

func TestFTS5_TableExists(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM activities_fts`).Scan(&count); err != nil {
		t.Fatalf("activities_fts table missing: %v", err)
	}
}

func TestFTS5_SearchWithSnippet(t *testing.T) {
	db := testDB(t)
	a := models.Activity{
		ID:          "f1",
		Date:        "2025-06-01",
		Type:        models.TypePost,
		Title:       "FTS Post",
		Description: "Dagaz provides powerful full-text search capabilities.",
		Intensity:   2,
	}
	if err := db.Upsert(a); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	results, err := db.Search("powerful", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].ID != "f1" {
		t.Errorf("id = %q", results[0].ID)
	}
	if results[0].Snippet == "" {
		t.Error("expected non-empty snippet")
	}
}

func TestFTS5_DeleteRemovesFromFTS(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "gone", Date: "2025-06-01", Type: models.TypePost, Title: "x", Description: "vanishing content", Intensity: 1})
	_ = db.Delete("gone")

	results, _ := db.Search("vanishing", 10)
	for _, r := range results {
		if r.ID == "gone" {
			t.Error("deleted activity still in FTS index")
		}
	}
}

func TestFTS5_UpsertReplacesContent(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "evo", Date: "2025-06-01", Type: models.TypePost, Title: "Old", Description: "original text", Intensity: 1})
	_ = db.Upsert(models.Activity{ID: "evo", Date: "2025-06-01", Type: models.TypePost, Title: "New", Description: "replacement text", Intensity: 2})

	results, _ := db.Search("original", 10)
	if len(results) != 0 {
		t.Error("old FTS content should be gone")
	}
	results, _ = db.Search("replacement", 10)
	if len(results) != 1 || results[0].Title != "New" {
		t.Errorf("FTS not updated: %+v", results)
	}
}
