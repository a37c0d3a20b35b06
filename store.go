package kasku

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// lsKey is the one durable local slot: the last selected sheet. No ledger
// data is ever persisted locally.
const lsKey = "ls_v1"

const stateFileName = "state.json"

// SheetStore persists the last selected sheet across sessions.
type SheetStore interface {
	// LastSheet returns the remembered sheet name, empty when none.
	LastSheet() string
	// SaveLastSheet remembers the sheet name.
	SaveLastSheet(name string) error
}

// fileStore keeps the slot in a small JSON file under the state directory.
type fileStore struct {
	path string
}

// NewStateStore returns a SheetStore backed by dir/state.json, creating the
// directory as needed.
func NewStateStore(dir string) (SheetStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create state dir %q: %w", dir, err)
	}
	return &fileStore{path: filepath.Join(dir, stateFileName)}, nil
}

func (f *fileStore) read() map[string]string {
	content, err := os.ReadFile(f.path)
	if err != nil {
		return map[string]string{}
	}
	slots := map[string]string{}
	if err := json.Unmarshal(content, &slots); err != nil {
		// A corrupt state file is not worth failing over: start fresh.
		return map[string]string{}
	}
	return slots
}

func (f *fileStore) LastSheet() string { return f.read()[lsKey] }

func (f *fileStore) SaveLastSheet(name string) error {
	slots := f.read()
	slots[lsKey] = name
	content, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	if err := os.WriteFile(f.path, content, 0o644); err != nil {
		return fmt.Errorf("cannot write state file %q: %w", f.path, err)
	}
	return nil
}

// NopStore is a SheetStore that remembers nothing, for tests and one-shot use.
type NopStore struct{ Sheet string }

func (n *NopStore) LastSheet() string { return n.Sheet }
func (n *NopStore) SaveLastSheet(name string) error {
	n.Sheet = name
	return nil
}
