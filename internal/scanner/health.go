package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// tempNamePatterns match editor droppings, backup copies, and abandoned
// lock files.
var tempNamePatterns = []string{
	"*.tmp", "*.temp", "*.swp", "*.bak", "*.orig", "*.old",
	"~*", "*~", "*.lock", "*.pid",
}

// RunHealth scans the home directory tree for filesystem hygiene problems:
// empty directories, symlinks whose target is gone, and stale temporary
// files. The context deadline and the memory ceiling apply between the
// sub-scans.
func (s *Scanner) RunHealth(ctx context.Context) (*HealthResults, error) {
	results := &HealthResults{}

	if err := s.guard(ctx, "empty directory scan"); err != nil {
		return nil, err
	}
	s.publish("health", 0, "Scanning for empty directories", 0, 0)
	results.EmptyDirs = s.scanEmptyDirs()

	if err := s.guard(ctx, "broken symlink scan"); err != nil {
		return nil, err
	}
	s.publish("health", 33, "Scanning for broken symlinks", len(results.EmptyDirs), 0)
	results.BrokenSymlinks = s.scanBrokenSymlinks()

	if err := s.guard(ctx, "orphaned temp file scan"); err != nil {
		return nil, err
	}
	s.publish("health", 66, "Scanning for orphaned temporary files", len(results.BrokenSymlinks), 0)
	results.OrphanedTemp = s.scanOrphanedTemp()

	for _, item := range results.OrphanedTemp {
		results.TotalSize += item.Size
	}
	results.TotalItems = len(results.EmptyDirs) + len(results.BrokenSymlinks) + len(results.OrphanedTemp)

	s.publish("health", 100, "Health scan complete", results.TotalItems, results.TotalSize)
	return results, nil
}

func (s *Scanner) scanEmptyDirs() []Item {
	var items []Item
	walkTree(s.platform.HomeDir, s.config.Limits.MaxDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
		if !d.IsDir() || strings.HasPrefix(d.Name(), ".") {
			return true
		}
		if !dirIsEmpty(path) {
			return true
		}
		// Re-check once so directories briefly emptied mid-write are not
		// reported.
		if !dirIsEmpty(path) {
			return true
		}

		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        d.Name(),
			Path:        path,
			Size:        0,
			Kind:        KindDirectory,
			Category:    CategoryEmptyDir,
			RiskLevel:   RiskSafe,
			Description: "Empty directory",
		})
		return true
	})
	return items
}

func (s *Scanner) scanBrokenSymlinks() []Item {
	var items []Item
	walkTree(s.platform.HomeDir, s.config.Limits.MaxDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
		if d.Type()&fs.ModeSymlink == 0 {
			return true
		}

		target, err := os.Readlink(path)
		if err != nil {
			return true
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		// Stat follows the whole chain, so a link to a link whose final
		// target vanished is still broken.
		if _, err := os.Stat(path); err == nil || !os.IsNotExist(err) {
			return true
		}

		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        d.Name(),
			Path:        path,
			Size:        0,
			Kind:        KindSymlink,
			Category:    CategoryBrokenSymlink,
			RiskLevel:   RiskSafe,
			Description: "Symlink target no longer exists: " + target,
		})
		return true
	})
	return items
}

func (s *Scanner) scanOrphanedTemp() []Item {
	var items []Item
	seen := make(map[string]bool)

	record := func(path string, d fs.DirEntry) {
		if d.IsDir() || seen[path] {
			return
		}
		info, err := d.Info()
		if err != nil {
			return
		}
		if !olderThan(info.ModTime(), s.config.AgeThresholds.TempFiles) {
			return
		}

		seen[path] = true
		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        d.Name(),
			Path:        path,
			Size:        info.Size(),
			Kind:        KindFile,
			Category:    CategoryOrphanedTemp,
			RiskLevel:   RiskLow,
			Description: "Orphaned temporary file",
		})
	}

	// Temp-named files anywhere under home must also be stale.
	walkTree(s.platform.HomeDir, s.config.Limits.MaxDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
		if !d.IsDir() && matchesTempName(d.Name()) {
			record(path, d)
		}
		return true
	})

	// Anything stale inside a dedicated temp directory counts regardless of
	// its name.
	for _, root := range s.platform.TempDirs {
		walkTree(root, s.config.Limits.MaxDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
			record(path, d)
			return true
		})
	}

	return items
}

func matchesTempName(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range tempNamePatterns {
		if ok, _ := filepath.Match(pattern, lower); ok {
			return true
		}
	}
	return false
}

func dirIsEmpty(path string) bool {
	entries, err := os.ReadDir(path)
	return err == nil && len(entries) == 0
}
