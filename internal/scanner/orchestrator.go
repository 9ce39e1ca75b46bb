package scanner

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/internal/progress"
)

// phase is one independently failable scan category.
type phase struct {
	category string
	enabled  bool
	run      func() ([]Item, error)
}

// Run executes the enabled scan phases in order. A phase failure is
// recorded in FailedCategories and the run continues; crossing the memory
// ceiling or a cancelled context aborts the whole run. Results for an
// identical option set are served from cache while the TTL holds.
func (s *Scanner) Run(ctx context.Context, opts Options) (*Results, error) {
	if opts.MaxFiles == 0 {
		return &Results{Items: []Item{}}, nil
	}

	key := cacheKey(opts)
	if cached, ok := s.scanResults.Get(key); ok {
		return &cached, nil
	}

	// Run-scoped limit overrides.
	cfg := *s.config
	cfg.Limits.MaxFiles = opts.MaxFiles
	if opts.MaxDepth > 0 {
		cfg.Limits.MaxDepth = opts.MaxDepth
	}
	if opts.MaxMemoryMB > 0 {
		cfg.Limits.MaxMemoryMB = opts.MaxMemoryMB
	}
	run := &Scanner{
		config:      &cfg,
		platform:    s.platform,
		reporter:    s.reporter,
		dirSizes:    s.dirSizes,
		scanResults: s.scanResults,
	}

	phases := []phase{
		{category: CategoryCache, enabled: opts.Caches, run: run.scanCaches},
		{category: CategoryPackage, enabled: opts.Packages, run: run.scanPackages},
		{category: CategoryLogs, enabled: opts.Logs, run: run.scanLogs},
		{category: CategoryLargeFile, enabled: opts.LargeFiles, run: run.scanLargeFiles},
	}

	enabled := 0
	for _, p := range phases {
		if p.enabled {
			enabled++
		}
	}

	started := time.Now()
	results := &Results{Items: []Item{}}
	done := 0

	for _, p := range phases {
		if !p.enabled {
			continue
		}

		if err := run.guard(ctx, p.category+" phase"); err != nil {
			return results, err
		}

		s.publish(p.category, progress.Overall(done, 0, enabled), "Scanning "+p.category, results.TotalItems, results.TotalSize)

		items, err := p.run()
		if err != nil {
			logging.L().WithField("category", p.category).WithError(err).Warn("scan phase failed")
			results.FailedCategories = append(results.FailedCategories, FailedCategory{
				Category: p.category,
				Error:    err.Error(),
			})
		} else {
			for _, item := range items {
				results.Items = append(results.Items, item)
				results.TotalSize += item.Size
			}
		}

		done++
		s.publish(p.category, progress.Overall(done, 0, enabled), "Finished "+p.category, results.TotalItems, results.TotalSize)
	}

	results.TotalItems = len(results.Items)
	results.ElapsedMS = time.Since(started).Milliseconds()

	if len(results.FailedCategories) == 0 {
		s.scanResults.Set(key, *results)
	}
	return results, nil
}

// guard is the gate every scan stage passes before it starts: the caller's
// deadline and the memory ceiling apply to all scan entry points, not just
// the phased run.
func (s *Scanner) guard(ctx context.Context, stage string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan interrupted before %s: %w", stage, err)
	}
	return checkMemory(s.config.Limits.MaxMemoryMB)
}

// checkMemory compares this process's resident set size against the
// configured ceiling. A sampling failure is not fatal; running blind beats
// aborting a healthy scan.
func checkMemory(limitMB int) error {
	if limitMB <= 0 {
		return nil
	}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logging.L().WithError(err).Debug("cannot inspect own process for memory check")
		return nil
	}
	mem, err := proc.MemoryInfo()
	if err != nil {
		logging.L().WithError(err).Debug("memory sample failed")
		return nil
	}

	usedMB := int(mem.RSS / (1024 * 1024))
	if usedMB > limitMB {
		return fmt.Errorf("%w: using %d MB of %d MB allowed", ErrMemoryLimit, usedMB, limitMB)
	}
	return nil
}

func cacheKey(opts Options) string {
	return fmt.Sprintf("c=%t p=%t l=%t lf=%t mf=%d md=%d",
		opts.Caches, opts.Packages, opts.Logs, opts.LargeFiles, opts.MaxFiles, opts.MaxDepth)
}
