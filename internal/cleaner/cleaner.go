// Package cleaner removes validated cleanup targets, either reversibly
// through the trash or permanently. Each item commits independently; one
// bad path never aborts the batch.
package cleaner

import (
	"context"
	"fmt"
	"os"

	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/internal/security"
	"github.com/fenilsonani/reclaim/internal/trash"
	"github.com/fenilsonani/reclaim/pkg/utils"
)

// Request is one batch of paths to remove. IDs are the caller's scan item
// identifiers, zipped positionally with Paths when present; removal is
// driven by the paths alone.
type Request struct {
	IDs           []string
	Paths         []string
	UseTrash      bool
	RetentionDays int
	Metadata      *trash.Metadata
}

// Failure records one path that could not be cleaned, echoing the caller's
// item ID when one was supplied.
type Failure struct {
	ID    string `json:"id,omitempty"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// Result reports what a batch actually did. When the context expires
// mid-batch, Cleaned plus Failed still accounts for every path attempted;
// the remainder was never reached.
type Result struct {
	Cleaned   int       `json:"cleaned"`
	Failed    int       `json:"failed"`
	TotalSize int64     `json:"total_size"`
	Failures  []Failure `json:"failures,omitempty"`
}

// Cleaner validates and removes filesystem items.
type Cleaner struct {
	validator *security.Validator
	trash     *trash.Trash
}

// New creates a Cleaner. The trash may be nil if callers never request
// reversible deletion.
func New(validator *security.Validator, tr *trash.Trash) *Cleaner {
	return &Cleaner{validator: validator, trash: tr}
}

// Clean processes every path in the request. Each path is re-validated at
// deletion time regardless of what any earlier scan reported about it.
func (c *Cleaner) Clean(ctx context.Context, req Request) (*Result, error) {
	result := &Result{}

	for i, path := range req.Paths {
		if err := ctx.Err(); err != nil {
			return result, fmt.Errorf("cleanup interrupted after %d cleaned, %d failed: %w",
				result.Cleaned, result.Failed, err)
		}

		var id string
		if i < len(req.IDs) {
			id = req.IDs[i]
		}

		size, err := c.cleanOne(path, req)
		if err != nil {
			logging.L().WithField("path", path).WithError(err).Warn("cleanup failed")
			result.Failed++
			result.Failures = append(result.Failures, Failure{ID: id, Path: path, Error: err.Error()})
			continue
		}

		result.Cleaned++
		result.TotalSize += size
		logging.L().WithField("path", path).WithField("size", utils.FormatBytes(size)).Debug("cleaned")
	}

	return result, nil
}

func (c *Cleaner) cleanOne(path string, req Request) (int64, error) {
	if err := c.validator.Validate(path, security.ContextDeletion); err != nil {
		return 0, err
	}

	if req.UseTrash {
		if c.trash == nil {
			return 0, fmt.Errorf("trash requested but not available")
		}
		item, err := c.trash.Move(path, req.RetentionDays, req.Metadata)
		if err != nil {
			return 0, err
		}
		return item.Size, nil
	}

	info, err := os.Lstat(path)
	if err != nil {
		return 0, err
	}
	size := info.Size()
	if info.IsDir() {
		size = utils.DirSize(path)
	}
	if err := os.RemoveAll(path); err != nil {
		return 0, err
	}
	return size, nil
}
