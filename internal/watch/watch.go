// Package watch runs the long-lived background tasks: a periodic sweeper
// that expires trashed items and stale cache entries, and a filesystem
// watcher that records change events. The tasks share nothing except an
// append-only event log.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/fenilsonani/reclaim/internal/logging"
	"github.com/fenilsonani/reclaim/internal/scanner"
	"github.com/fenilsonani/reclaim/internal/trash"
)

// Event is one recorded occurrence, either a sweep outcome or a filesystem
// change.
type Event struct {
	Time    time.Time `json:"time"`
	Source  string    `json:"source"` // "sweeper" or "watcher"
	Message string    `json:"message"`
	Path    string    `json:"path,omitempty"`
}

// Log is an append-only event log. Appended events are never mutated or
// removed; Events returns a copy.
type Log struct {
	mu     sync.Mutex
	events []Event
}

func (l *Log) Append(e Event) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if e.Time.IsZero() {
		e.Time = time.Now()
	}
	l.events = append(l.events, e)
}

func (l *Log) Events() []Event {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.events)
}

// Sweeper periodically expires trashed items past retention and sweeps the
// scanner's memoization caches.
type Sweeper struct {
	trash    *trash.Trash
	scanner  *scanner.Scanner
	interval time.Duration
	log      *Log
}

// NewSweeper creates a Sweeper. Either trash or scanner may be nil.
func NewSweeper(tr *trash.Trash, sc *scanner.Scanner, interval time.Duration, log *Log) *Sweeper {
	return &Sweeper{trash: tr, scanner: sc, interval: interval, log: log}
}

// Run sweeps once immediately, then on every tick until the context is
// cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.sweep()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *Sweeper) sweep() {
	if s.trash != nil {
		removed, err := s.trash.CleanupExpired()
		if err != nil {
			logging.L().WithError(err).Warn("trash expiry sweep incomplete")
		}
		if removed > 0 {
			s.record(Event{Source: "sweeper", Message: fmt.Sprintf("removed %d expired trash items", removed)})
			logging.L().WithField("removed", removed).Info("expired trash items removed")
		}
	}
	if s.scanner != nil {
		if swept := s.scanner.CleanupCaches(); swept > 0 {
			logging.L().WithField("entries", swept).Debug("cache entries expired")
		}
	}
}

func (s *Sweeper) record(e Event) {
	if s.log != nil {
		s.log.Append(e)
	}
}

// Watcher records filesystem change events under a set of roots.
type Watcher struct {
	fs  *fsnotify.Watcher
	log *Log
}

// NewWatcher starts watching the given roots. Roots that cannot be watched
// are skipped with a warning.
func NewWatcher(roots []string, log *Log) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	for _, root := range roots {
		if err := fsw.Add(root); err != nil {
			logging.L().WithField("path", root).WithError(err).Warn("cannot watch directory")
		}
	}
	return &Watcher{fs: fsw, log: log}, nil
}

// Run consumes change events until the context is cancelled, appending each
// to the log.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.log.Append(Event{Source: "watcher", Message: ev.Op.String(), Path: ev.Name})
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			logging.L().WithError(err).Warn("watch error")
		}
	}
}
