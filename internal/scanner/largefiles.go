package scanner

import (
	"io/fs"
	"sort"

	"github.com/google/uuid"
)

const (
	maxLargeFiles = 20
	downloadDepth = 2
)

// scanLargeFiles reports the largest files under the Downloads and Documents
// directories, capped at maxLargeFiles.
func (s *Scanner) scanLargeFiles() ([]Item, error) {
	var items []Item

	roots := []string{s.platform.DownloadsDir, s.platform.DocumentsDir}
	for _, root := range roots {
		if root == "" {
			continue
		}
		walkTree(root, s.config.Limits.MaxDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
			if d.IsDir() {
				return true
			}

			info, err := d.Info()
			if err != nil || info.Size() < s.config.SizeThresholds.LargeFile {
				return true
			}

			items = append(items, Item{
				ID:          uuid.NewString(),
				Name:        d.Name(),
				Path:        path,
				Size:        info.Size(),
				Kind:        KindFile,
				Category:    CategoryLargeFile,
				RiskLevel:   RiskMedium,
				Description: "Large file - review before removing",
			})
			return true
		})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Size > items[j].Size })
	if len(items) > maxLargeFiles {
		items = items[:maxLargeFiles]
	}
	return items, nil
}

// scanOldDownloads reports files in the Downloads directory that have not
// been modified within the configured age threshold.
func (s *Scanner) scanOldDownloads() ([]Item, error) {
	root := s.platform.DownloadsDir
	if root == "" {
		return nil, nil
	}

	var items []Item
	walkTree(root, downloadDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
		if d.IsDir() {
			return true
		}

		info, err := d.Info()
		if err != nil {
			return true
		}
		if !olderThan(info.ModTime(), s.config.AgeThresholds.OldDownloads) {
			return true
		}

		items = append(items, Item{
			ID:          uuid.NewString(),
			Name:        d.Name(),
			Path:        path,
			Size:        info.Size(),
			Kind:        KindFile,
			Category:    CategoryOldDownload,
			RiskLevel:   RiskLow,
			Description: "Download not touched in a long time",
		})
		return true
	})

	return items, nil
}
