package trash

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTrash(t *testing.T) (*Trash, string) {
	t.Helper()

	root := filepath.Join(t.TempDir(), "trash")
	tr, err := Open(root)
	require.NoError(t, err)
	return tr, root
}

func TestMoveAndRestoreRoundTrip(t *testing.T) {
	tr, root := newTestTrash(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "victim.txt")
	require.NoError(t, os.WriteFile(path, []byte("payload"), 0644))

	item, err := tr.Move(path, 3, &Metadata{Category: "large_file", RiskLevel: 2, Reason: "test"})
	require.NoError(t, err)

	assert.NoFileExists(t, path)
	assert.FileExists(t, item.TrashPath)
	assert.Equal(t, path, item.OriginalPath)
	assert.Equal(t, int64(7), item.Size)
	assert.Equal(t, KindFile, item.Kind)

	// The journal must survive a reopen.
	tr2, err := Open(root)
	require.NoError(t, err)
	require.NoError(t, tr2.Restore(item.ID))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(content))
	assert.Equal(t, 0, tr2.Items().TotalItems)
}

func TestMoveDirectoryRecordsRecursiveSize(t *testing.T) {
	tr, _ := newTestTrash(t)

	dir := filepath.Join(t.TempDir(), "project")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), make([]byte, 100), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "b.txt"), make([]byte, 50), 0644))

	item, err := tr.Move(dir, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, KindDirectory, item.Kind)
	assert.Equal(t, int64(150), item.Size)
}

func TestMoveEmptyDirectory(t *testing.T) {
	tr, _ := newTestTrash(t)
	tr.now = func() time.Time { return time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC) }

	dir := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.Mkdir(dir, 0755))

	item, err := tr.Move(dir, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(0), item.Size)
	assert.Equal(t, time.Date(2026, 1, 13, 12, 0, 0, 0, time.UTC), item.ExpiresAt)

	data := tr.Items()
	assert.Equal(t, 1, data.TotalItems)
	assert.Equal(t, int64(0), data.TotalSize)
}

func TestMoveMissingPath(t *testing.T) {
	tr, _ := newTestTrash(t)

	_, err := tr.Move(filepath.Join(t.TempDir(), "ghost"), 3, nil)
	assert.Error(t, err)
}

func TestRestoreUnknownID(t *testing.T) {
	tr, _ := newTestTrash(t)

	err := tr.Restore("no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestoreGoneDropsStaleEntry(t *testing.T) {
	tr, _ := newTestTrash(t)

	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	item, err := tr.Move(path, 3, nil)
	require.NoError(t, err)

	// Something removed the object behind our back.
	require.NoError(t, os.Remove(item.TrashPath))

	err = tr.Restore(item.ID)
	assert.ErrorIs(t, err, ErrGone)
	assert.Equal(t, 0, tr.Items().TotalItems, "stale entry must be dropped")
}

func TestRestoreRefusesToOverwrite(t *testing.T) {
	tr, _ := newTestTrash(t)

	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))

	item, err := tr.Move(path, 3, nil)
	require.NoError(t, err)

	// A new file appears at the original path before restore.
	require.NoError(t, os.WriteFile(path, []byte("new"), 0644))

	err = tr.Restore(item.ID)
	assert.ErrorIs(t, err, ErrTargetExists)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
	assert.Equal(t, 1, tr.Items().TotalItems, "entry stays restorable")
}

func TestRestoreRecreatesParents(t *testing.T) {
	tr, _ := newTestTrash(t)

	base := t.TempDir()
	path := filepath.Join(base, "deep", "nested", "f.txt")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	item, err := tr.Move(path, 3, nil)
	require.NoError(t, err)

	require.NoError(t, os.RemoveAll(filepath.Join(base, "deep")))
	require.NoError(t, tr.Restore(item.ID))
	assert.FileExists(t, path)
}

func TestDelete(t *testing.T) {
	tr, _ := newTestTrash(t)

	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	item, err := tr.Move(path, 3, nil)
	require.NoError(t, err)

	require.NoError(t, tr.Delete(item.ID))
	assert.NoFileExists(t, item.TrashPath)
	assert.Equal(t, 0, tr.Items().TotalItems)

	assert.ErrorIs(t, tr.Delete(item.ID), ErrNotFound)
}

func TestEmpty(t *testing.T) {
	tr, _ := newTestTrash(t)

	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
		_, err := tr.Move(path, 3, nil)
		require.NoError(t, err)
	}

	removed, err := tr.Empty()
	require.NoError(t, err)
	assert.Equal(t, 3, removed)
	assert.Equal(t, 0, tr.Items().TotalItems)
}

func TestCleanupExpiredIsIdempotent(t *testing.T) {
	tr, _ := newTestTrash(t)

	clock := time.Now()
	tr.now = func() time.Time { return clock }

	dir := t.TempDir()
	keepPath := filepath.Join(dir, "keep.txt")
	losePath := filepath.Join(dir, "lose.txt")
	require.NoError(t, os.WriteFile(keepPath, []byte("k"), 0644))
	require.NoError(t, os.WriteFile(losePath, []byte("l"), 0644))

	keep, err := tr.Move(keepPath, 10, nil)
	require.NoError(t, err)
	_, err = tr.Move(losePath, 1, nil)
	require.NoError(t, err)

	clock = clock.Add(2 * 24 * time.Hour)

	removed, err := tr.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = tr.CleanupExpired()
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	data := tr.Items()
	require.Equal(t, 1, data.TotalItems)
	assert.Equal(t, keep.ID, data.Items[0].ID)
}

func TestJournalSurvivesCorruptTempLeftovers(t *testing.T) {
	tr, root := newTestTrash(t)

	path := filepath.Join(t.TempDir(), "f.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	_, err := tr.Move(path, 3, nil)
	require.NoError(t, err)

	// A stray temp file from an interrupted persist must not break reopen.
	require.NoError(t, os.WriteFile(filepath.Join(root, ".journal-stray"), []byte("{"), 0644))

	tr2, err := Open(root)
	require.NoError(t, err)
	assert.Equal(t, 1, tr2.Items().TotalItems)
}
