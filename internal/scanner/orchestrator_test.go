package scanner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithZeroMaxFilesReturnsImmediately(t *testing.T) {
	s, _ := newTestScanner(t)

	results, err := s.Run(context.Background(), Options{
		Caches:   true,
		Packages: true,
		Logs:     true,
	})
	require.NoError(t, err)

	assert.Empty(t, results.Items)
	assert.Empty(t, results.FailedCategories)
	assert.Equal(t, 0, results.TotalItems)
	assert.Equal(t, int64(0), results.TotalSize)
}

func TestRunFindsCacheDirectories(t *testing.T) {
	s, f := newTestScanner(t)

	f.CreateFile(".cache/app/data.bin", make([]byte, 2048))

	results, err := s.Run(context.Background(), Options{Caches: true, MaxFiles: 1000})
	require.NoError(t, err)

	require.NotEmpty(t, results.Items)
	assert.Empty(t, results.FailedCategories)
	assert.Equal(t, len(results.Items), results.TotalItems)

	var cacheItem *Item
	for i := range results.Items {
		if results.Items[i].Path == f.CacheDir {
			cacheItem = &results.Items[i]
		}
	}
	require.NotNil(t, cacheItem, "user cache dir should be reported")
	assert.Equal(t, CategoryCache, cacheItem.Category)
	assert.Equal(t, RiskSafe, cacheItem.RiskLevel)
	assert.Equal(t, int64(2048), cacheItem.Size)
}

func TestRunAbortsOnMemoryCeiling(t *testing.T) {
	s, _ := newTestScanner(t)

	// Any live Go process is over 1 MB resident.
	_, err := s.Run(context.Background(), Options{
		Caches:      true,
		MaxFiles:    1000,
		MaxMemoryMB: 1,
	})
	assert.ErrorIs(t, err, ErrMemoryLimit)
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	s, _ := newTestScanner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := s.Run(ctx, Options{Caches: true, MaxFiles: 1000})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotNil(t, results, "partial results come back even when interrupted")
}

func TestRunServesCachedResults(t *testing.T) {
	s, f := newTestScanner(t)

	f.CreateFile(".cache/app/data.bin", make([]byte, 2048))

	opts := Options{Caches: true, MaxFiles: 1000}
	first, err := s.Run(context.Background(), opts)
	require.NoError(t, err)

	// New data appears, but the cached result is still inside its TTL.
	f.CreateFile(".cache/other/more.bin", make([]byte, 4096))

	second, err := s.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, first.TotalSize, second.TotalSize)

	s.InvalidateCaches()
	third, err := s.Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Greater(t, third.TotalSize, first.TotalSize)
}

func TestRunStorageRecoveryTotals(t *testing.T) {
	s, f := newTestScanner(t)

	content := make([]byte, 4096)
	for i := range content {
		content[i] = byte(i)
	}
	f.CreateFile("Documents/one.dat", content)
	f.CreateFile("Documents/two.dat", content)

	results, err := s.RunStorageRecovery(context.Background())
	require.NoError(t, err)

	require.Len(t, results.DuplicateGroups, 1)
	// One copy stays, so only the redundant copy counts as recoverable.
	assert.Equal(t, int64(4096), results.TotalDuplicateSize)
	assert.Equal(t, results.TotalDuplicateSize+results.TotalLargeFileSize+results.TotalOldDownloadSize,
		results.TotalRecoverableSize)
}

func TestRunHealthAbortsOnMemoryCeiling(t *testing.T) {
	s, _ := newTestScanner(t)
	s.config.Limits.MaxMemoryMB = 1

	_, err := s.RunHealth(context.Background())
	assert.ErrorIs(t, err, ErrMemoryLimit)
}

func TestRunHealthStopsOnCancelledContext(t *testing.T) {
	s, _ := newTestScanner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RunHealth(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunStorageRecoveryAbortsOnMemoryCeiling(t *testing.T) {
	s, _ := newTestScanner(t)
	s.config.Limits.MaxMemoryMB = 1

	_, err := s.RunStorageRecovery(context.Background())
	assert.ErrorIs(t, err, ErrMemoryLimit)
}

func TestRunStorageRecoveryStopsOnCancelledContext(t *testing.T) {
	s, _ := newTestScanner(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.RunStorageRecovery(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
