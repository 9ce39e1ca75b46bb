// Package progress carries best-effort scan progress events to optional
// consumers. Emission never blocks and is never required for correctness.
package progress

import "sync"

// Event is one progress update during a scan run.
type Event struct {
	Category    string // phase currently running, or "complete"
	Percent     int    // rolled-up overall percentage, 0-100
	Message     string
	ItemsFound  int
	CurrentSize int64
}

// Reporter fans Events out to subscribed channels. Listeners that cannot
// keep up miss updates rather than stalling the scan.
type Reporter struct {
	mu        sync.Mutex
	listeners []chan Event
}

// NewReporter creates an empty Reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Subscribe returns a channel that receives future events.
func (r *Reporter) Subscribe() <-chan Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	ch := make(chan Event, 16)
	r.listeners = append(r.listeners, ch)
	return ch
}

// Unsubscribe closes and removes a listener channel.
func (r *Reporter) Unsubscribe(ch <-chan Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, listener := range r.listeners {
		if listener == ch {
			close(listener)
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return
		}
	}
}

// Publish delivers an event to every listener without blocking.
func (r *Reporter) Publish(e Event) {
	r.mu.Lock()
	listeners := make([]chan Event, len(r.listeners))
	copy(listeners, r.listeners)
	r.mu.Unlock()

	for _, listener := range listeners {
		select {
		case listener <- e:
		default:
			// listener is full, drop the update
		}
	}
}

// Overall rolls a per-phase percentage up into the run-wide one.
func Overall(phasesDone, phasePct, totalPhases int) int {
	if totalPhases <= 0 {
		return 0
	}
	pct := (phasesDone*100 + phasePct) / totalPhases
	if pct > 100 {
		pct = 100
	}
	return pct
}
