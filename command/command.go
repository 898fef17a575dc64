// Package command is the narrow surface the application shell (tray, hotkey
// listener) uses to drive the typing pipeline: paste-now, cancel, and a
// state snapshot.
package command

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"keypaste/cancel"
	"keypaste/platform"
	"keypaste/typing"
)

var (
	// ErrEmptyClipboard is returned when the clipboard has no text to type.
	ErrEmptyClipboard = errors.New("clipboard is empty")

	// ErrBusy is returned when a paste is requested while a job is running.
	// Concurrent requests are rejected, not queued; queuing would introduce
	// ordering concerns this system otherwise doesn't have.
	ErrBusy = errors.New("a typing job is already running")
)

// Recorder receives finished-job metrics. Implemented by storage.DB; nil
// disables recording.
type Recorder interface {
	SaveJob(jobID int64, speed string, charCount, typedCount, chunkCount int, duration time.Duration, outcome string) error
}

// Surface owns job creation and the one-job-at-a-time policy.
type Surface struct {
	clip  platform.Clipboard
	eng   *typing.Engine
	coord *cancel.Coordinator
	rec   Recorder

	mu     sync.Mutex
	active bool
	nextID atomic.Int64
}

// New creates a command surface. rec may be nil.
func New(clip platform.Clipboard, eng *typing.Engine, coord *cancel.Coordinator, rec Recorder) *Surface {
	return &Surface{clip: clip, eng: eng, coord: coord, rec: rec}
}

// PasteNow reads the clipboard and starts typing it on a fresh goroutine.
// Returns the job id, or an error without starting a job: ErrBusy while a
// job is running, ErrEmptyClipboard when there is nothing to type, or a
// wrapped read error when the clipboard is inaccessible.
func (s *Surface) PasteNow(speed typing.Speed) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active {
		return 0, ErrBusy
	}

	text, err := s.clip.Get()
	if err != nil {
		return 0, fmt.Errorf("read clipboard: %w", err)
	}
	// Only a truly empty clipboard is rejected. Whitespace-only content is
	// typed verbatim; pasted indentation is a legitimate use. The monitor's
	// whitespace filter applies to passive change detection only.
	if text == "" {
		return 0, ErrEmptyClipboard
	}

	job := typing.Job{
		ID:    s.nextID.Add(1),
		Text:  text,
		Speed: speed,
	}
	s.active = true
	go s.run(job)

	return job.ID, nil
}

// CancelCurrent signals the emergency stop. It succeeds even when no job is
// running; the signal is simply consumed by the next state reset.
func (s *Surface) CancelCurrent() {
	s.coord.Signal()
}

// QueryState returns a non-blocking snapshot of the engine's state machine.
func (s *Surface) QueryState() typing.State {
	return s.eng.State()
}

func (s *Surface) run(job typing.Job) {
	start := time.Now()
	typed, err := s.eng.Type(job)
	elapsed := time.Since(start)

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()

	outcome := "completed"
	switch {
	case errors.Is(err, typing.ErrCancelled):
		outcome = "cancelled"
	case err != nil:
		outcome = "failed"
		// Characters already delivered are not rolled back; surface that as
		// a warning rather than swallowing it.
		slog.Warn("job failed after partial output",
			"job", job.ID, "typed", typed, "error", err)
	}

	if s.rec != nil {
		charCount := len([]rune(job.Text))
		chunkCount := len(typing.Chunk(job.Text, s.eng.ChunkSize()))
		if err := s.rec.SaveJob(job.ID, job.Speed.String(), charCount, typed, chunkCount, elapsed, outcome); err != nil {
			slog.Warn("failed to record job metrics", "job", job.ID, "error", err)
		}
	}
}
