// Package scanner locates reclaimable disk space: cache and package-cache
// directories, oversized logs, large and stale files, duplicate files, and
// filesystem health issues. Scans are read-only; nothing here deletes.
package scanner

import (
	"time"

	"github.com/fenilsonani/reclaim/internal/cache"
	"github.com/fenilsonani/reclaim/internal/config"
	"github.com/fenilsonani/reclaim/internal/platform"
	"github.com/fenilsonani/reclaim/internal/progress"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

// Scanner coordinates all scan operations over one platform layout.
type Scanner struct {
	config   *config.Config
	platform *platform.Info
	reporter *progress.Reporter

	dirSizes    *cache.TTL[string, int64]
	scanResults *cache.TTL[string, Results]
}

// New creates a Scanner.
func New(cfg *config.Config, info *platform.Info) *Scanner {
	return &Scanner{
		config:      cfg,
		platform:    info,
		reporter:    progress.NewReporter(),
		dirSizes:    cache.New[string, int64](cfg.DirSizeTTL()),
		scanResults: cache.New[string, Results](cfg.ScanResultTTL()),
	}
}

// SetReporter replaces the progress reporter.
func (s *Scanner) SetReporter(r *progress.Reporter) {
	s.reporter = r
}

// Reporter returns the scanner's progress reporter.
func (s *Scanner) Reporter() *progress.Reporter {
	return s.reporter
}

// dirSize computes the recursive size of a directory, memoized for the
// configured TTL so repeated scans do not re-walk unchanged trees.
func (s *Scanner) dirSize(path string) int64 {
	if size, ok := s.dirSizes.Get(path); ok {
		return size
	}
	size := utils.DirSize(path)
	s.dirSizes.Set(path, size)
	return size
}

// CleanupCaches sweeps expired memoization entries.
func (s *Scanner) CleanupCaches() int {
	return s.dirSizes.Cleanup() + s.scanResults.Cleanup()
}

// InvalidateCaches drops all memoized values, for callers that just mutated
// the filesystem under a scanned root.
func (s *Scanner) InvalidateCaches() {
	s.dirSizes.Clear()
	s.scanResults.Clear()
}

func (s *Scanner) publish(category string, pct int, message string, found int, size int64) {
	if s.reporter == nil {
		return
	}
	s.reporter.Publish(progress.Event{
		Category:    category,
		Percent:     pct,
		Message:     message,
		ItemsFound:  found,
		CurrentSize: size,
	})
}

func olderThan(modTime time.Time, days int) bool {
	return time.Since(modTime) > time.Duration(days)*24*time.Hour
}
