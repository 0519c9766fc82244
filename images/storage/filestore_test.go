package storage

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rgeary/imagehost/images/domain"
)

func TestDiskStore_SaveAndRead(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	content := []byte("fake image content")
	if err := store.Save("abc123.png", content); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	path, err := store.Path("abc123.png")
	if err != nil {
		t.Fatalf("Path() error = %v", err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read saved file: %v", err)
	}

	if !bytes.Equal(got, content) {
		t.Errorf("saved content = %q, want %q", got, content)
	}
}

func TestDiskStore_SaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	if err := store.Save("abc123.png", []byte("content")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to read directory: %v", err)
	}

	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".upload-") {
			t.Errorf("temp file %s left behind after publish", e.Name())
		}
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d, want 1", len(entries))
	}
}

func TestDiskStore_Remove(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	if err := store.Save("abc123.png", []byte("content")); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if err := store.Remove("abc123.png"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}

	// Removing again reports the file as already missing
	err = store.Remove("abc123.png")
	if !errors.Is(err, domain.ErrFileMissing) {
		t.Errorf("second Remove() err = %v, want domain.ErrFileMissing", err)
	}
}

func TestDiskStore_PathRejectsTraversal(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	bad := []string{
		"",
		".",
		"..",
		"../escape.png",
		"sub/dir.png",
		"/etc/passwd",
	}

	for _, name := range bad {
		if _, err := store.Path(name); err == nil {
			t.Errorf("Path(%q) should be rejected", name)
		}
	}
}

func TestNewDiskStore_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "images")

	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore() error = %v", err)
	}

	info, err := os.Stat(store.Dir())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}
	if !info.IsDir() {
		t.Error("storage path is not a directory")
	}
}
