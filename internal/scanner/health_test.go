package scanner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/reclaim/internal/testutil"
)

// fillStandardDirs drops a file into each fixture directory so the standard
// layout itself never shows up as empty directories.
func fillStandardDirs(t *testing.T, f *testutil.Fixture) {
	t.Helper()
	for _, rel := range []string{"tmp/.keep", "logs/.keep", "Downloads/.keep", "Documents/.keep", ".cache/.keep"} {
		f.CreateFile(rel, []byte("x"))
	}
}

func TestRunHealthFindsEmptyDirs(t *testing.T) {
	s, f := newTestScanner(t)
	fillStandardDirs(t, f)

	f.CreateDir("projects/abandoned")
	f.CreateFile("projects/active/main.go", []byte("package main"))

	results, err := s.RunHealth(context.Background())
	require.NoError(t, err)

	paths := itemPaths(results.EmptyDirs)
	assert.Contains(t, paths, f.HomeDir+"/projects/abandoned")
	assert.NotContains(t, paths, f.HomeDir+"/projects/active")
}

func TestRunHealthFindsBrokenSymlinks(t *testing.T) {
	s, f := newTestScanner(t)
	fillStandardDirs(t, f)

	target := f.CreateFile("Documents/real.txt", []byte("x"))
	good := f.CreateSymlink("Documents/good-link", target)
	broken := f.CreateSymlink("Documents/broken-link", f.HomeDir+"/Documents/vanished.txt")

	results, err := s.RunHealth(context.Background())
	require.NoError(t, err)

	paths := itemPaths(results.BrokenSymlinks)
	assert.Contains(t, paths, broken)
	assert.NotContains(t, paths, good)
	for _, item := range results.BrokenSymlinks {
		assert.Equal(t, KindSymlink, item.Kind)
		assert.Equal(t, RiskSafe, item.RiskLevel)
	}
}

func TestRunHealthFollowsSymlinkChains(t *testing.T) {
	s, f := newTestScanner(t)
	fillStandardDirs(t, f)

	real := f.CreateFile("Documents/real.txt", []byte("x"))
	goodHop := f.CreateSymlink("Documents/good-hop", real)
	goodChain := f.CreateSymlink("Documents/good-chain", goodHop)

	deadHop := f.CreateSymlink("Documents/dead-hop", f.HomeDir+"/Documents/vanished.txt")
	deadChain := f.CreateSymlink("Documents/dead-chain", deadHop)

	results, err := s.RunHealth(context.Background())
	require.NoError(t, err)

	paths := itemPaths(results.BrokenSymlinks)
	assert.Contains(t, paths, deadChain, "a link to a link whose target is gone is broken")
	assert.Contains(t, paths, deadHop)
	assert.NotContains(t, paths, goodChain, "a chain ending at a real file is healthy")
	assert.NotContains(t, paths, goodHop)
}

func TestRunHealthFindsStaleTempFiles(t *testing.T) {
	s, f := newTestScanner(t)
	fillStandardDirs(t, f)

	stale := f.CreateFileWithAge("Documents/draft.tmp", []byte("stale"), 60*24*time.Hour)
	fresh := f.CreateFile("Documents/current.tmp", []byte("fresh"))
	staleSwap := f.CreateFileWithAge("projects/.main.go.swp", []byte("swap"), 45*24*time.Hour)
	inTempDir := f.CreateFileWithAge("tmp/scratch.dat", []byte("scratch"), 60*24*time.Hour)

	results, err := s.RunHealth(context.Background())
	require.NoError(t, err)

	paths := itemPaths(results.OrphanedTemp)
	assert.Contains(t, paths, stale)
	assert.Contains(t, paths, staleSwap)
	assert.Contains(t, paths, inTempDir, "anything stale in a temp dir counts regardless of name")
	assert.NotContains(t, paths, fresh)
}

func TestRunHealthTotals(t *testing.T) {
	s, f := newTestScanner(t)
	fillStandardDirs(t, f)

	f.CreateDir("hollow")
	f.CreateFileWithAge("Documents/big.tmp", make([]byte, 500), 60*24*time.Hour)

	results, err := s.RunHealth(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(500), results.TotalSize, "only temp files carry size")
	assert.Equal(t,
		len(results.EmptyDirs)+len(results.BrokenSymlinks)+len(results.OrphanedTemp),
		results.TotalItems)
}

func itemPaths(items []Item) []string {
	paths := make([]string, 0, len(items))
	for _, item := range items {
		paths = append(paths, item.Path)
	}
	return paths
}
