// Package testutil provides fixtures for tests that need a realistic home
// directory layout. Everything lives under t.TempDir() and is cleaned
// automatically.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// Fixture is a throwaway home directory tree.
type Fixture struct {
	T       *testing.T
	HomeDir string

	CacheDir     string
	TempDir      string
	LogsDir      string
	DownloadsDir string
	DocumentsDir string
	TrashRoot    string
}

// NewFixture builds the standard directory layout under a temp root.
func NewFixture(t *testing.T) *Fixture {
	t.Helper()

	home := t.TempDir()
	f := &Fixture{
		T:            t,
		HomeDir:      home,
		CacheDir:     filepath.Join(home, ".cache"),
		TempDir:      filepath.Join(home, "tmp"),
		LogsDir:      filepath.Join(home, "logs"),
		DownloadsDir: filepath.Join(home, "Downloads"),
		DocumentsDir: filepath.Join(home, "Documents"),
		TrashRoot:    filepath.Join(home, ".local", "share", "reclaim", "trash"),
	}

	for _, dir := range []string{f.CacheDir, f.TempDir, f.LogsDir, f.DownloadsDir, f.DocumentsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}
	return f
}

// CreateFile writes a file relative to the fixture home, creating parents.
func (f *Fixture) CreateFile(relPath string, content []byte) string {
	f.T.Helper()

	fullPath := filepath.Join(f.HomeDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		f.T.Fatalf("failed to create file %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateFileWithAge writes a file and backdates its modification time.
func (f *Fixture) CreateFileWithAge(relPath string, content []byte, age time.Duration) string {
	f.T.Helper()

	fullPath := f.CreateFile(relPath, content)
	oldTime := time.Now().Add(-age)
	if err := os.Chtimes(fullPath, oldTime, oldTime); err != nil {
		f.T.Fatalf("failed to backdate %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateFileOfSize writes a file of the given size filled with a repeating
// byte pattern, so identical sizes do not imply identical content.
func (f *Fixture) CreateFileOfSize(relPath string, size int, fill byte) string {
	f.T.Helper()

	content := make([]byte, size)
	for i := range content {
		content[i] = fill
	}
	return f.CreateFile(relPath, content)
}

// CreateDir creates a directory relative to the fixture home.
func (f *Fixture) CreateDir(relPath string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.HomeDir, relPath)
	if err := os.MkdirAll(fullPath, 0755); err != nil {
		f.T.Fatalf("failed to create directory %s: %v", fullPath, err)
	}
	return fullPath
}

// CreateSymlink creates a symlink at relPath pointing at target.
func (f *Fixture) CreateSymlink(relPath, target string) string {
	f.T.Helper()

	fullPath := filepath.Join(f.HomeDir, relPath)
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		f.T.Fatalf("failed to create directory for %s: %v", fullPath, err)
	}
	if err := os.Symlink(target, fullPath); err != nil {
		f.T.Fatalf("failed to create symlink %s: %v", fullPath, err)
	}
	return fullPath
}
