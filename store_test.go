package kasku

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileStoreRoundtrip(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStateStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := store.LastSheet(); got != "" {
		t.Errorf("fresh store LastSheet() = %q; want empty", got)
	}
	if err := store.SaveLastSheet("Mei"); err != nil {
		t.Fatal(err)
	}
	if got := store.LastSheet(); got != "Mei" {
		t.Errorf("LastSheet() = %q; want Mei", got)
	}

	// A second store over the same directory sees the saved slot.
	again, err := NewStateStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := again.LastSheet(); got != "Mei" {
		t.Errorf("reopened LastSheet() = %q; want Mei", got)
	}
}

func TestFileStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, stateFileName), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	store, err := NewStateStore(dir)
	if err != nil {
		t.Fatal(err)
	}
	if got := store.LastSheet(); got != "" {
		t.Errorf("corrupt state file LastSheet() = %q; want empty", got)
	}
	if err := store.SaveLastSheet("Juni"); err != nil {
		t.Fatal(err)
	}
	if got := store.LastSheet(); got != "Juni" {
		t.Errorf("LastSheet() after rewrite = %q; want Juni", got)
	}
}

func TestFileStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")
	if _, err := NewStateStore(dir); err != nil {
		t.Fatalf("NewStateStore(%q) = %v", dir, err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("state dir not created: %v", err)
	}
}
