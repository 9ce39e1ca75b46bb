package scanner

import "context"

// RunStorageRecovery performs the deep scan: duplicate groups, files over
// the huge-file floor, and stale downloads, with per-category and overall
// recoverable totals. For duplicates only the redundant copies count as
// recoverable, one copy of each group stays. The context deadline and the
// memory ceiling apply between the sub-scans and inside the duplicate pass.
func (s *Scanner) RunStorageRecovery(ctx context.Context) (*RecoveryResults, error) {
	results := &RecoveryResults{}

	if err := s.guard(ctx, "duplicate scan"); err != nil {
		return nil, err
	}
	s.publish("recovery", 0, "Scanning for duplicate files", 0, 0)
	groups, err := s.scanDuplicates(ctx)
	if err != nil {
		return nil, err
	}
	results.DuplicateGroups = groups
	for _, g := range groups {
		if g.Count > 1 {
			perFile := g.TotalSize / int64(g.Count)
			results.TotalDuplicateSize += g.TotalSize - perFile
		}
	}

	if err := s.guard(ctx, "large file scan"); err != nil {
		return nil, err
	}
	s.publish("recovery", 40, "Scanning for very large files", len(groups), results.TotalDuplicateSize)
	large, err := s.scanLargeFiles()
	if err != nil {
		return nil, err
	}
	for _, item := range large {
		if item.Size < s.config.SizeThresholds.HugeFile {
			continue
		}
		item.RiskLevel = RiskHigh
		results.LargeFiles = append(results.LargeFiles, item)
		results.TotalLargeFileSize += item.Size
	}

	if err := s.guard(ctx, "old download scan"); err != nil {
		return nil, err
	}
	s.publish("recovery", 75, "Scanning for old downloads", len(results.LargeFiles), results.TotalLargeFileSize)
	old, err := s.scanOldDownloads()
	if err != nil {
		return nil, err
	}
	results.OldDownloads = old
	for _, item := range old {
		results.TotalOldDownloadSize += item.Size
	}

	results.TotalRecoverableSize = results.TotalDuplicateSize +
		results.TotalLargeFileSize + results.TotalOldDownloadSize

	s.publish("recovery", 100, "Storage recovery scan complete",
		len(results.LargeFiles)+len(results.OldDownloads), results.TotalRecoverableSize)
	return results, nil
}
