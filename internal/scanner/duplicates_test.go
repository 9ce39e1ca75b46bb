package scanner

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fenilsonani/reclaim/internal/config"
	"github.com/fenilsonani/reclaim/internal/platform"
	"github.com/fenilsonani/reclaim/internal/testutil"
)

func newTestScanner(t *testing.T) (*Scanner, *testutil.Fixture) {
	t.Helper()

	f := testutil.NewFixture(t)
	t.Setenv("XDG_CACHE_HOME", f.CacheDir)

	cfg := config.GetDefault()
	return New(cfg, platform.ForHome(f.HomeDir, "tester")), f
}

func TestScanDuplicatesGroupsIdenticalFiles(t *testing.T) {
	s, f := newTestScanner(t)

	content := bytes.Repeat([]byte("duplicate-me"), 200)
	f.CreateFile("Documents/copy1.dat", content)
	f.CreateFile("Documents/copy2.dat", content)
	f.CreateFile("Downloads/copy3.dat", content)

	groups, err := s.scanDuplicates(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	g := groups[0]
	assert.Equal(t, 3, g.Count)
	assert.Len(t, g.Files, 3)
	assert.Equal(t, int64(len(content)*3), g.TotalSize)
	assert.NotEmpty(t, g.ID)
	for _, file := range g.Files {
		assert.Equal(t, CategoryDuplicate, file.Category)
		assert.Equal(t, RiskMedium, file.RiskLevel)
	}
}

func TestScanDuplicatesSplitsBySampledContent(t *testing.T) {
	s, f := newTestScanner(t)

	// Same size, different first byte.
	a := bytes.Repeat([]byte{0xAA}, 4096)
	b := append([]byte(nil), a...)
	b[0] = 0xBB
	f.CreateFile("Documents/a.dat", a)
	f.CreateFile("Documents/b.dat", b)

	groups, err := s.scanDuplicates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

// Files big enough to be sampled rather than fully read must still split
// when only their tails differ.
func TestScanDuplicatesLargeFilesTailDiffers(t *testing.T) {
	s, f := newTestScanner(t)

	a := bytes.Repeat([]byte{0x55}, 2*1024*1024)
	b := append([]byte(nil), a...)
	for i := len(b) - 10; i < len(b); i++ {
		b[i] = 0x66
	}
	f.CreateFile("Documents/big-a.dat", a)
	f.CreateFile("Documents/big-b.dat", b)

	groups, err := s.scanDuplicates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestScanDuplicatesSkipsTinyFiles(t *testing.T) {
	s, f := newTestScanner(t)

	content := []byte("tiny")
	f.CreateFile("Documents/t1.dat", content)
	f.CreateFile("Documents/t2.dat", content)

	groups, err := s.scanDuplicates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}

func TestScanDuplicatesSingletonSizesNeverFingerprinted(t *testing.T) {
	s, f := newTestScanner(t)

	f.CreateFileOfSize("Documents/only-1500.dat", 1500, 0x01)
	f.CreateFileOfSize("Documents/only-1600.dat", 1600, 0x01)

	groups, err := s.scanDuplicates(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
}
