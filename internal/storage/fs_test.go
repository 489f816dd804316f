package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func tempData(t *testing.T) *FS {
	t.Helper()
	dir := t.TempDir()
	fs, err := NewFS(dir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	return fs
}

func TestWriteAndRead(t *testing.T) {
	s := tempData(t)
	content := []byte(`{"version":1,"activities":[]}`)
	if err := s.Write("ledger.json", content); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("ledger.json")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != string(content) {
		t.Errorf("content mismatch: got %q", got)
	}
}

func TestWriteCreatesSubdirs(t *testing.T) {
	s := tempData(t)
	if err := s.Write("media/2025/photo.jpg", []byte("deep")); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := s.Read("media/2025/photo.jpg")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if string(got) != "deep" {
		t.Errorf("content = %q", got)
	}
}

func TestDelete(t *testing.T) {
	s := tempData(t)
	_ = s.Write("del.json", []byte("bye"))
	if err := s.Delete("del.json"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Read("del.json"); err == nil {
		t.Error("expected error reading deleted file")
	}
}

func TestList(t *testing.T) {
	s := tempData(t)
	_ = s.Write("ledger.json", []byte("a"))
	_ = s.Write("media/b.png", []byte("b"))
	_ = s.Write("notes.txt", []byte("c"))

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	// media/ is a directory and is skipped.
	if len(items) != 2 {
		t.Errorf("len = %d, want 2: %+v", len(items), items)
	}

	items, err = s.List("media")
	if err != nil {
		t.Fatalf("List media: %v", err)
	}
	if len(items) != 1 || items[0].Name != "b.png" {
		t.Errorf("media items = %+v", items)
	}
}

func TestListMissingDir(t *testing.T) {
	s := tempData(t)
	items, err := s.List("nope")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items = %+v, want none", items)
	}
}

func TestTraversalBlocked(t *testing.T) {
	s := tempData(t)

	cases := []string{
		"../../etc/passwd",
		"../outside.json",
		"/etc/shadow",
	}
	for _, p := range cases {
		if _, err := s.Read(p); err == nil {
			t.Errorf("expected error for path %q", p)
		}
		if err := s.Write(p, []byte("x")); err == nil {
			t.Errorf("expected error for write to %q", p)
		}
	}
}

func TestAtomicWriteNoCorruption(t *testing.T) {
	// Verify that overwriting replaces content cleanly and leaves no temp
	// files behind (the rename is atomic on POSIX).
	s := tempData(t)
	original := []byte("original content")
	_ = s.Write("atomic.json", original)

	updated := []byte("updated content")
	if err := s.Write("atomic.json", updated); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, _ := s.Read("atomic.json")
	if string(got) != string(updated) {
		t.Errorf("expected updated content, got %q", got)
	}

	matches, _ := filepath.Glob(filepath.Join(s.root, ".dagaz-tmp-*"))
	if len(matches) != 0 {
		t.Errorf("leftover temp files: %v", matches)
	}
}

func TestListSkipsTempFiles(t *testing.T) {
	s := tempData(t)
	_ = s.Write("real.json", []byte("x"))
	_ = os.WriteFile(filepath.Join(s.root, ".dagaz-tmp-123"), []byte("junk"), 0o644)

	items, err := s.List("")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Name != "real.json" {
		t.Errorf("items = %+v, want only real.json", items)
	}
}

func TestNewFS_NonExistentDir(t *testing.T) {
	_, err := NewFS("/tmp/dagaz-does-not-exist-" + t.Name())
	if err == nil {
		t.Error("expected error for non-existent dir")
	}
}
