package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

// scanDuplicates finds groups of byte-identical files in two passes. The
// first pass buckets every regular file above the minimum size by exact
// size; only buckets with more than one member survive. The second pass
// fingerprints the survivors by hashing the file size plus sampled windows
// from the start, middle, and end of the content, so multi-gigabyte files
// never get read in full. Files with equal fingerprints form a group.
// Fingerprinting is the expensive pass, so the context is re-checked per
// size bucket.
func (s *Scanner) scanDuplicates(ctx context.Context) ([]DuplicateGroup, error) {
	minSize := s.config.Duplicates.MinFileSize
	chunkSize := int64(s.config.Duplicates.ChunkSizeKB) * 1024
	if chunkSize <= 0 {
		chunkSize = utils.DefaultChunkSize
	}

	type candidate struct {
		path string
		size int64
	}

	bySize := make(map[int64][]candidate)
	walkTree(s.platform.HomeDir, s.config.Limits.MaxDepth, s.config.Duplicates.MaxScanFiles, func(path string, d fs.DirEntry) bool {
		if d.IsDir() || !d.Type().IsRegular() {
			return true
		}
		info, err := d.Info()
		if err != nil || info.Size() <= minSize {
			return true
		}
		bySize[info.Size()] = append(bySize[info.Size()], candidate{path: path, size: info.Size()})
		return true
	})

	byFingerprint := make(map[string][]candidate)
	for _, bucket := range bySize {
		if len(bucket) < 2 {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("scan interrupted while fingerprinting duplicate candidates: %w", err)
		}
		for _, c := range bucket {
			fp, err := utils.Fingerprint(c.path, chunkSize)
			if err != nil {
				logging.L().WithField("path", c.path).WithError(err).Debug("skipping unreadable duplicate candidate")
				continue
			}
			byFingerprint[fp] = append(byFingerprint[fp], c)
		}
	}

	var groups []DuplicateGroup
	for _, members := range byFingerprint {
		if len(members) < 2 {
			continue
		}

		group := DuplicateGroup{ID: uuid.NewString(), Count: len(members)}
		for _, m := range members {
			group.Files = append(group.Files, Item{
				ID:          uuid.NewString(),
				Name:        filepath.Base(m.path),
				Path:        m.path,
				Size:        m.size,
				Kind:        KindFile,
				Category:    CategoryDuplicate,
				RiskLevel:   RiskMedium,
				Description: "Duplicate file - keep one copy",
			})
			group.TotalSize += m.size
		}
		groups = append(groups, group)
	}

	return groups, nil
}
