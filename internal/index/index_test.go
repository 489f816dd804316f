package index

import (
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/starford/dagaz/internal/activity"
	"github.com/starford/dagaz/internal/models"
	"github.com/starford/dagaz/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "dagaz-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testStore(t *testing.T) *activity.Store {
	t.Helper()
	files, err := storage.NewFS(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	now := time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)
	return activity.NewStore(files, discardLogger(), activity.WithNow(func() time.Time { return now }))
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM activities`).Scan(&count); err != nil {
		t.Fatalf("activities table missing: %v", err)
	}
}

func TestUpsertAndCount(t *testing.T) {
	db := testDB(t)
	a := models.Activity{ID: "a1", Date: "2025-06-01", Type: models.TypePost, Title: "Hello", Intensity: 3}
	if err := db.Upsert(a); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	n, err := db.Count()
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if n != 1 {
		t.Errorf("Count = %d, want 1", n)
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "a1", Date: "2025-06-01", Type: models.TypePost, Title: "Old", Intensity: 1})
	_ = db.Upsert(models.Activity{ID: "a1", Date: "2025-06-01", Type: models.TypePost, Title: "New", Intensity: 3})

	var title string
	var intensity int
	if err := db.conn.QueryRow(`SELECT title, intensity FROM activities WHERE id = 'a1'`).Scan(&title, &intensity); err != nil {
		t.Fatal(err)
	}
	if title != "New" || intensity != 3 {
		t.Errorf("got %q/%d, want New/3", title, intensity)
	}
	if n, _ := db.Count(); n != 1 {
		t.Errorf("Count = %d, want 1 after upsert of same id", n)
	}
}

func TestDelete(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "del", Date: "2025-06-01", Type: models.TypeMedia, Title: "x", Intensity: 1})

	if err := db.Delete("del"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if n, _ := db.Count(); n != 0 {
		t.Errorf("Count = %d after delete, want 0", n)
	}
}

func TestAllIDs(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "a", Date: "2025-06-01", Type: models.TypePost, Intensity: 1})
	_ = db.Upsert(models.Activity{ID: "b", Date: "2025-06-02", Type: models.TypePost, Intensity: 1})

	ids, err := db.AllIDs()
	if err != nil {
		t.Fatalf("AllIDs: %v", err)
	}
	if len(ids) != 2 {
		t.Fatalf("got %d ids, want 2", len(ids))
	}
	if _, ok := ids["a"]; !ok {
		t.Error("missing id a")
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "s1", Date: "2025-06-01", Type: models.TypePost, Title: "Search Me", Description: "uniqueword appears here", Intensity: 2})
	_ = db.Upsert(models.Activity{ID: "s2", Date: "2025-06-02", Type: models.TypeProject, Title: "Other", Description: "nothing relevant", Intensity: 2})

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].ID != "s1" {
		t.Errorf("search results = %+v, want 1 hit for s1", results)
	}
}

func TestSearch_MatchesTitle(t *testing.T) {
	db := testDB(t)
	_ = db.Upsert(models.Activity{ID: "t1", Date: "2025-06-01", Type: models.TypePost, Title: "Kubernetes notes", Intensity: 2})

	results, err := db.Search("Kubernetes", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestSync_UpsertsAndRemovesStale(t *testing.T) {
	db := testDB(t)
	store := testStore(t)

	if _, _, err := store.Add(activity.AddInput{Date: "2025-06-01", Type: models.TypePost, Title: "kept", Intensity: 2}); err != nil {
		t.Fatal(err)
	}
	// A row with no live activity behind it.
	_ = db.Upsert(models.Activity{ID: "stale", Date: "2025-01-01", Type: models.TypeMedia, Title: "gone", Intensity: 1})

	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	ids, err := db.AllIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("got %d ids after sync, want 1: %v", len(ids), ids)
	}
	if _, ok := ids["stale"]; ok {
		t.Error("stale row survived sync")
	}
}

func TestSync_ReassignedIDConvergesInOnePass(t *testing.T) {
	db := testDB(t)
	store := testStore(t)

	// The index holds the record under its old ID, as after an
	// out-of-band ledger rewrite that regenerated IDs.
	_ = db.Upsert(models.Activity{ID: "old", Date: "2025-06-01", Type: models.TypePost, Title: "before", Intensity: 2})
	if _, _, err := store.Add(activity.AddInput{Date: "2025-06-01", Type: models.TypePost, Title: "after", Intensity: 2}); err != nil {
		t.Fatal(err)
	}

	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	ids, err := db.AllIDs()
	if err != nil {
		t.Fatal(err)
	}
	if len(ids) != 1 {
		t.Fatalf("got %d ids after sync, want 1: %v", len(ids), ids)
	}
	if _, ok := ids["old"]; ok {
		t.Error("old id survived sync")
	}
	liveID := store.All()[0].ID
	if _, ok := ids[liveID]; !ok {
		t.Errorf("live id %s missing from index", liveID)
	}
}

func TestSync_EmptyStoreClearsIndex(t *testing.T) {
	db := testDB(t)
	store := testStore(t)
	_ = db.Upsert(models.Activity{ID: "x", Date: "2025-01-01", Type: models.TypePost, Intensity: 1})

	if err := Sync(db, store, discardLogger()); err != nil {
		t.Fatal(err)
	}
	if n, _ := db.Count(); n != 0 {
		t.Errorf("Count = %d after syncing empty store, want 0", n)
	}
}
