// Package trash makes deletions reversible for a bounded retention window.
// Objects are renamed into a private trash root keyed by an opaque ID, and
// a journal records every live object under that root. An item is either
// active on the filesystem, trashed and journaled, or purged; there are no
// other states.
package trash

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

// Item kinds.
const (
	KindFile      = "file"
	KindDirectory = "directory"
	KindSymlink   = "symlink"
)

var (
	// ErrNotFound means no journal entry exists for the given ID.
	ErrNotFound = errors.New("item not found in trash")
	// ErrGone means the journal entry existed but its backing object
	// vanished out-of-band; the stale entry has been dropped.
	ErrGone = errors.New("item no longer exists in trash")
	// ErrTargetExists means something already occupies the original path,
	// so restoring would overwrite it.
	ErrTargetExists = errors.New("restore target already exists")
)

// Metadata carries optional caller context for a trashed item.
type Metadata struct {
	Category  string `json:"category"`
	RiskLevel int    `json:"risk_level"`
	Reason    string `json:"reason"`
}

// Item is one journaled trash entry.
type Item struct {
	ID           string    `json:"id"`
	OriginalPath string    `json:"original_path"`
	TrashPath    string    `json:"trash_path"`
	DeletedAt    time.Time `json:"deleted_at"`
	ExpiresAt    time.Time `json:"expires_at"`
	Size         int64     `json:"size"`
	Kind         string    `json:"kind"`
	Metadata     *Metadata `json:"metadata,omitempty"`
}

// Data is the full journal plus aggregates, for listing.
type Data struct {
	Items      []Item `json:"items"`
	TotalSize  int64  `json:"total_size"`
	TotalItems int    `json:"total_items"`
}

// Trash owns a trash root directory and its journal. All journal
// read-modify-write cycles run under one mutex so concurrent operations
// cannot lose entries.
type Trash struct {
	root string
	mu   sync.Mutex
	jrnl *journal
	now  func() time.Time
}

// Open prepares the trash root and loads its journal.
func Open(root string) (*Trash, error) {
	if err := os.MkdirAll(root, 0700); err != nil {
		return nil, fmt.Errorf("failed to create trash root: %w", err)
	}

	jrnl, err := openJournal(filepath.Join(root, "journal.json"))
	if err != nil {
		return nil, err
	}

	return &Trash{root: root, jrnl: jrnl, now: time.Now}, nil
}

// Move renames path into the trash root under a fresh ID and journals it.
// The rename keeps the operation atomic on one filesystem and avoids double
// disk usage; a cross-device source fails here rather than being copied.
// A journal persist failure after the rename is fatal to the operation: an
// un-journaled trashed file is effectively lost, so it is surfaced loudly.
func (t *Trash) Move(path string, retentionDays int, md *Metadata) (Item, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	info, err := os.Lstat(path)
	if err != nil {
		return Item{}, fmt.Errorf("path does not exist: %s: %w", path, err)
	}

	var size int64
	kind := KindFile
	switch {
	case info.IsDir():
		kind = KindDirectory
		size = utils.DirSize(path)
	case info.Mode()&os.ModeSymlink != 0:
		kind = KindSymlink
	default:
		size = info.Size()
	}

	id := uuid.NewString()
	trashPath := filepath.Join(t.root, id)

	if err := os.Rename(path, trashPath); err != nil {
		return Item{}, fmt.Errorf("failed to move to trash: %w", err)
	}

	now := t.now()
	item := Item{
		ID:           id,
		OriginalPath: path,
		TrashPath:    trashPath,
		DeletedAt:    now,
		ExpiresAt:    now.Add(time.Duration(retentionDays) * 24 * time.Hour),
		Size:         size,
		Kind:         kind,
		Metadata:     md,
	}

	t.jrnl.append(item)
	if err := t.jrnl.persist(); err != nil {
		logging.L().WithFields(logrus.Fields{
			"id":   id,
			"path": path,
		}).Error("trash journal write failed after move; item is un-journaled")
		return Item{}, fmt.Errorf("journal persistence failed for trashed item %s (file already moved to %s): %w", id, trashPath, err)
	}

	return item, nil
}

// Restore moves a trashed item back to its original path and removes its
// journal entry. It refuses to overwrite anything already at that path, and
// reconciles out-of-band tampering by dropping stale entries.
func (t *Trash) Restore(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.jrnl.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if _, err := os.Lstat(item.TrashPath); os.IsNotExist(err) {
		t.jrnl.remove(id)
		if perr := t.jrnl.persist(); perr != nil {
			logging.L().WithField("id", id).Warn("failed to drop stale journal entry")
		}
		return fmt.Errorf("%w: %s", ErrGone, id)
	}

	if _, err := os.Lstat(item.OriginalPath); err == nil {
		return fmt.Errorf("%w: %s", ErrTargetExists, item.OriginalPath)
	}

	if parent := filepath.Dir(item.OriginalPath); parent != "" {
		if err := os.MkdirAll(parent, 0755); err != nil {
			return fmt.Errorf("failed to recreate parent directory: %w", err)
		}
	}

	if err := os.Rename(item.TrashPath, item.OriginalPath); err != nil {
		return fmt.Errorf("failed to restore: %w", err)
	}

	t.jrnl.remove(id)
	return t.jrnl.persist()
}

// Delete permanently removes one trashed object and its journal entry.
func (t *Trash) Delete(id string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	item, ok := t.jrnl.find(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	if err := removePath(item.TrashPath); err != nil {
		return fmt.Errorf("failed to delete from trash: %w", err)
	}

	t.jrnl.remove(id)
	return t.jrnl.persist()
}

// Empty permanently removes every trashed object. Removal errors are
// collected, not fatal: the journal is cleared for all items regardless so
// stale entries never accumulate. Returns how many entries were purged.
func (t *Trash) Empty() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := t.jrnl.list()
	var errs *multierror.Error

	for _, item := range items {
		if err := removePath(item.TrashPath); err != nil {
			logging.L().WithField("id", item.ID).WithError(err).Warn("failed to remove trashed object")
			errs = multierror.Append(errs, err)
		}
	}

	t.jrnl.replace(nil)
	if err := t.jrnl.persist(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return len(items), errs.ErrorOrNil()
}

// CleanupExpired purges every entry whose retention window has passed and
// returns the count removed. Running it twice in a row removes nothing the
// second time.
func (t *Trash) CleanupExpired() (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	var remaining []Item
	var errs *multierror.Error
	removed := 0

	for _, item := range t.jrnl.list() {
		if item.ExpiresAt.After(now) {
			remaining = append(remaining, item)
			continue
		}
		if err := removePath(item.TrashPath); err != nil {
			logging.L().WithField("id", item.ID).WithError(err).Warn("failed to remove expired trashed object")
			errs = multierror.Append(errs, err)
		}
		removed++
	}

	if removed > 0 {
		t.jrnl.replace(remaining)
		if err := t.jrnl.persist(); err != nil {
			errs = multierror.Append(errs, err)
		}
	}

	return removed, errs.ErrorOrNil()
}

// Items returns the full journal plus aggregate size and count.
func (t *Trash) Items() Data {
	t.mu.Lock()
	defer t.mu.Unlock()

	items := t.jrnl.list()
	var totalSize int64
	for _, item := range items {
		totalSize += item.Size
	}

	return Data{Items: items, TotalSize: totalSize, TotalItems: len(items)}
}

func removePath(path string) error {
	info, err := os.Lstat(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if info.IsDir() {
		return os.RemoveAll(path)
	}
	return os.Remove(path)
}
