package scanner

import (
	"fmt"
	"os"

	"github.com/google/uuid"
)

// scanPackages reports known package manager cache directories that hold
// re-downloadable artifacts.
func (s *Scanner) scanPackages() ([]Item, error) {
	var items []Item

	for _, dir := range s.platform.PackageDirs {
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
			Category:    CategoryPackage,
			RiskLevel:   RiskSafe,
			Description: fmt.Sprintf("%s cache - packages can be re-downloaded", dir.Name),
		})
	}

	return items, nil
}
