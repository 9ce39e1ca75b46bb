package trash

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// journal is the durable record of every trashed item and the sole source
// of truth for restore and expiry. Callers never see it mid-write: persist
// serializes to a temp file and renames it over the old journal atomically.
type journal struct {
	path  string
	items []Item
}

func openJournal(path string) (*journal, error) {
	j := &journal{path: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return j, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read trash journal: %w", err)
	}

	if err := json.Unmarshal(data, &j.items); err != nil {
		return nil, fmt.Errorf("failed to parse trash journal: %w", err)
	}
	return j, nil
}

func (j *journal) append(item Item) {
	j.items = append(j.items, item)
}

func (j *journal) find(id string) (Item, bool) {
	for _, item := range j.items {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

func (j *journal) remove(id string) (Item, bool) {
	for i, item := range j.items {
		if item.ID == id {
			j.items = append(j.items[:i], j.items[i+1:]...)
			return item, true
		}
	}
	return Item{}, false
}

func (j *journal) list() []Item {
	out := make([]Item, len(j.items))
	copy(out, j.items)
	return out
}

func (j *journal) replace(items []Item) {
	j.items = items
}

// persist rewrites the journal wholesale via write-to-temp-then-rename so a
// crash mid-write can never leave a truncated journal behind.
func (j *journal) persist() error {
	data, err := json.MarshalIndent(j.items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal trash journal: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(j.path), ".journal-*")
	if err != nil {
		return fmt.Errorf("failed to create journal temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write journal temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close journal temp file: %w", err)
	}

	if err := os.Rename(tmpPath, j.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace journal: %w", err)
	}
	return nil
}
