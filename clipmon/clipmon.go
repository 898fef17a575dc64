// Package clipmon watches the system clipboard for changes by polling.
//
// Polling is a deliberate portability choice: event-driven clipboard
// notification APIs are not uniformly available across target operating
// systems. The monitor keeps only a fingerprint of the last observed text,
// never the text itself, so passive monitoring leaks nothing.
package clipmon

import (
	"context"
	"hash/fnv"
	"log/slog"
	"strings"
	"sync"
	"time"

	"keypaste/platform"
)

// DefaultInterval is the poll period. Worst-case detection latency is one
// interval; idle cost is one clipboard read per interval.
const DefaultInterval = 500 * time.Millisecond

// Event describes a detected clipboard change. It carries the fingerprint
// and size of the new content, not the content.
type Event struct {
	Fingerprint uint64
	Size        int
}

// Monitor polls the clipboard and emits an Event whenever the text content's
// fingerprint changes.
type Monitor struct {
	clip     platform.Clipboard
	interval time.Duration
	events   chan Event

	// mu guards the fingerprint state; Run loops may overlap briefly when
	// monitoring is toggled off and back on.
	mu       sync.Mutex
	last     uint64
	haveLast bool
}

// New creates a Monitor. interval <= 0 uses DefaultInterval.
func New(clip platform.Clipboard, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{
		clip:     clip,
		interval: interval,
		events:   make(chan Event, 4),
	}
}

// Events returns the change event channel.
func (m *Monitor) Events() <-chan Event {
	return m.events
}

// Run polls until ctx is cancelled. Transient read errors are logged and
// retried on the next tick; they never stop the loop.
func (m *Monitor) Run(ctx context.Context) {
	t := time.NewTicker(m.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ev, changed, err := m.Poll()
			if err != nil {
				slog.Debug("clipboard poll failed", "error", err)
				continue
			}
			if !changed {
				continue
			}
			select {
			case m.events <- ev:
			default:
				// Consumer is behind; the next change supersedes this one.
			}
		}
	}
}

// Poll reads the clipboard once and reports whether its text changed since
// the previous successful observation. Empty or whitespace-only content
// never counts as a change, so clipboard-clear operations stay silent.
func (m *Monitor) Poll() (Event, bool, error) {
	text, err := m.clip.Get()
	if err != nil {
		// Transient: the stored fingerprint is left untouched so the change
		// is still detected on the next successful read.
		return Event{}, false, err
	}

	if strings.TrimSpace(text) == "" {
		return Event{}, false, nil
	}

	fp := Fingerprint(text)
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.haveLast && fp == m.last {
		return Event{}, false, nil
	}
	m.last = fp
	m.haveLast = true

	return Event{Fingerprint: fp, Size: len(text)}, true, nil
}

// Fingerprint returns a fast 64-bit FNV-1a hash of the text. Collisions are
// tolerated; a missed change event costs one poll interval at worst.
func Fingerprint(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}
