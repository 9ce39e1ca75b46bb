package scanner

import (
	"io/fs"
	"strings"

	"github.com/google/uuid"
)

// scanLogs walks the known log directories and reports individual log files
// above the configured size floor.
func (s *Scanner) scanLogs() ([]Item, error) {
	var items []Item

	for _, root := range s.platform.LogDirs {
		walkTree(root, s.config.Limits.MaxDepth, s.config.Limits.MaxFiles, func(path string, d fs.DirEntry) bool {
			if d.IsDir() || !isLogName(d.Name()) {
				return true
			}

			info, err := d.Info()
			if err != nil || info.Size() <= s.config.SizeThresholds.LogFile {
				return true
			}

			items = append(items, Item{
				ID:          uuid.NewString(),
				Name:        d.Name(),
				Path:        path,
				Size:        info.Size(),
				Kind:        KindFile,
				Category:    CategoryLogs,
				RiskLevel:   RiskLow,
				Description: "Large log file",
			})
			return true
		})
	}

	return items, nil
}

// isLogName matches plain and rotated log file names, e.g. app.log and
// app.log.1.
func isLogName(name string) bool {
	lower := strings.ToLower(name)
	if strings.HasSuffix(lower, ".log") {
		return true
	}
	return strings.Contains(lower, ".log.")
}
