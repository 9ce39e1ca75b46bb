package scanner

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/google/uuid"
)

const (
	cacheChildFloor  = 5 * 1024 * 1024 // ignore subdirectories below this
	maxCacheChildren = 10
)

// scanCaches reports user-level cache roots, each aggregated with its
// largest subdirectories as child items, plus browser caches above a size
// floor.
func (s *Scanner) scanCaches() ([]Item, error) {
	var items []Item

	for _, dir := range s.platform.CacheDirs {
		if _, err := os.Stat(dir.Path); os.IsNotExist(err) {
			continue
		}

		size := s.dirSize(dir.Path)
		if size == 0 {
			continue
		}

		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        dir.Name,
			Path:        dir.Path,
			Size:        size,
			Kind:        KindDirectory,
			Category:    CategoryCache,
			RiskLevel:   RiskSafe,
			Description: "Cache directory - safe to remove",
			Children:    s.cacheChildren(dir.Path),
		})
	}

	for _, dir := range s.platform.BrowserDirs {
		if _, err := os.Stat(dir.Path); os.IsNotExist(err) {
			continue
		}

		size := s.dirSize(dir.Path)
		if size <= s.config.SizeThresholds.BrowserCache {
			continue
		}

		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        dir.Name,
			Path:        dir.Path,
			Size:        size,
			Kind:        KindDirectory,
			Category:    CategoryBrowser,
			RiskLevel:   RiskSafe,
			Description: "Browser cache - safe to remove",
		})
	}

	return items, nil
}

// cacheChildren lists the largest immediate subdirectories of a cache root.
func (s *Scanner) cacheChildren(root string) []Item {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil
	}

	var children []Item
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		path := filepath.Join(root, entry.Name())
		size := s.dirSize(path)
		if size <= cacheChildFloor {
			continue
		}

		children = append(children, Item{
			ID:          uuid.NewString(),
			Name:        entry.Name(),
			Path:        path,
			Size:        size,
			Kind:        KindDirectory,
			Category:    CategoryCache,
			RiskLevel:   RiskSafe,
			Description: "Application cache",
		})
	}

	if len(children) == 0 {
		return nil
	}

	sort.Slice(children, func(i, j int) bool { return children[i].Size > children[j].Size })
	if len(children) > maxCacheChildren {
		children = children[:maxCacheChildren]
	}
	return children
}
