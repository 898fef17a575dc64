// Package typing converts text into a paced stream of synthetic key events,
// checking the emergency-stop flag at fine granularity throughout.
package typing

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"keypaste/cancel"
	"keypaste/platform"
)

// State is the engine's lifecycle state. Idle is initial; every terminal
// state allows a new job to start.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateCancelled
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateCancelled:
		return "cancelled"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

var (
	// ErrCancelled marks a job stopped by the emergency-stop flag. It is a
	// first-class outcome, not a failure.
	ErrCancelled = errors.New("typing cancelled")

	// ErrBusy is returned when a job is submitted while another is running.
	ErrBusy = errors.New("a typing job is already running")
)

const (
	// cancelCheckEvery is the in-chunk cancellation check cadence. The check
	// also runs unconditionally at the start of every chunk.
	cancelCheckEvery = 10

	// interChunkPause lets the receiving application drain its input buffer
	// between chunks. Stability measure, not performance tuning.
	interChunkPause = 100 * time.Millisecond
)

// Job represents one accepted type-this-text request. Text is an owned copy;
// later clipboard changes cannot race with an in-flight job.
type Job struct {
	ID    int64
	Text  string
	Speed Speed
}

// Engine drives the synthetic-input driver for one job at a time. The
// one-job-at-a-time rule is enforced by the command surface; the engine only
// defends against misuse.
type Engine struct {
	typist    platform.Typist
	coord     *cancel.Coordinator
	chunkSize int
	pause     time.Duration
	state     atomic.Int32

	sleep func(time.Duration)
}

// NewEngine creates an engine. chunkSize <= 0 uses DefaultChunkSize.
func NewEngine(typist platform.Typist, coord *cancel.Coordinator, chunkSize int) *Engine {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Engine{
		typist:    typist,
		coord:     coord,
		chunkSize: chunkSize,
		pause:     interChunkPause,
		sleep:     time.Sleep,
	}
}

// ChunkSize returns the configured chunk size.
func (e *Engine) ChunkSize() int {
	return e.chunkSize
}

// State returns a non-blocking snapshot of the engine state.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Type runs the job synchronously and returns the number of characters
// actually emitted. Callers wanting concurrency spawn their own goroutine.
//
// Characters already delivered are never rolled back: keystrokes handed to a
// third-party application are irreversible, on cancellation and on failure
// alike.
func (e *Engine) Type(job Job) (int, error) {
	for {
		cur := e.state.Load()
		if State(cur) == StateRunning {
			return 0, ErrBusy
		}
		if e.state.CompareAndSwap(cur, int32(StateRunning)) {
			break
		}
	}

	// Reset exactly once, at job start. A cancellation signalled after this
	// point is honored; one that arrived strictly before is deliberately
	// discarded as belonging to the previous job.
	e.coord.Reset()

	delay := job.Speed.Delay()
	chunks := Chunk(job.Text, e.chunkSize)

	slog.Info("typing started",
		"job", job.ID, "chars", len([]rune(job.Text)),
		"chunks", len(chunks), "speed", job.Speed.String())

	typed := 0
	for ci, chunk := range chunks {
		for i, r := range chunk {
			if i%cancelCheckEvery == 0 && e.coord.IsCancelled() {
				e.state.Store(int32(StateCancelled))
				slog.Info("typing cancelled", "job", job.ID, "typed", typed)
				return typed, ErrCancelled
			}

			if err := e.emit(r); err != nil {
				e.state.Store(int32(StateFailed))
				slog.Error("typing failed", "job", job.ID, "typed", typed, "error", err)
				return typed, fmt.Errorf("emit character %d: %w", typed, err)
			}
			typed++
			e.sleep(delay)
		}

		if ci < len(chunks)-1 {
			e.sleep(e.pause)
		}
	}

	e.state.Store(int32(StateCompleted))
	slog.Info("typing completed", "job", job.ID, "typed", typed)
	return typed, nil
}

// emit translates control characters to their semantic key equivalents and
// sends everything else as a literal character event.
func (e *Engine) emit(r rune) error {
	switch r {
	case '\n':
		return e.click(platform.KeyEnter)
	case '\t':
		return e.click(platform.KeyTab)
	default:
		return e.typist.TypeChar(r)
	}
}

func (e *Engine) click(k platform.Key) error {
	if err := e.typist.PressKey(k); err != nil {
		return err
	}
	return e.typist.ReleaseKey(k)
}
