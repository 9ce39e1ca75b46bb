package scanner

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
)

var errStopWalk = errors.New("stop walk")

// walkTree walks root without following symlinks, bounded by a directory
// depth limit and a visited-entry cap. Unreadable entries and subtrees are
// skipped, never fatal. fn returns false to stop the walk early.
func walkTree(root string, maxDepth, maxEntries int, fn func(path string, d fs.DirEntry) bool) {
	if maxEntries <= 0 {
		return
	}

	seen := 0
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// permission denied or vanished mid-walk: skip and continue
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}

		if maxDepth > 0 && d.IsDir() && depthBelow(root, path) >= maxDepth {
			if !fn(path, d) {
				return errStopWalk
			}
			seen++
			if seen >= maxEntries {
				return errStopWalk
			}
			return fs.SkipDir
		}

		if !fn(path, d) {
			return errStopWalk
		}
		seen++
		if seen >= maxEntries {
			return errStopWalk
		}
		return nil
	})
}

func depthBelow(root, path string) int {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return 0
	}
	return strings.Count(rel, string(filepath.Separator)) + 1
}
