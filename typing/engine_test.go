package typing

import (
	"errors"
	"strings"
	"testing"
	"time"

	"keypaste/cancel"
	"keypaste/platform"
)

func newTestEngine(typist platform.Typist, chunkSize int) (*Engine, *cancel.Coordinator) {
	coord := cancel.New(0)
	e := NewEngine(typist, coord, chunkSize)
	e.sleep = func(time.Duration) {}
	return e, coord
}

func TestTypeMapsControlCharacters(t *testing.T) {
	mock := &platform.MockTypist{}
	e, _ := newTestEngine(mock, 0)

	typed, err := e.Type(Job{ID: 1, Text: "hello\nworld", Speed: Fast})
	if err != nil {
		t.Fatalf("Type failed: %v", err)
	}
	if typed != 11 {
		t.Errorf("typed = %d, want 11", typed)
	}
	if e.State() != StateCompleted {
		t.Errorf("state = %s, want completed", e.State())
	}

	want := []string{"h", "e", "l", "l", "o", "+enter", "-enter", "w", "o", "r", "l", "d"}
	got := mock.Events()
	if len(got) != len(want) {
		t.Fatalf("got %d events, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestTypeTab(t *testing.T) {
	mock := &platform.MockTypist{}
	e, _ := newTestEngine(mock, 0)

	if _, err := e.Type(Job{ID: 1, Text: "a\tb", Speed: Fast}); err != nil {
		t.Fatalf("Type failed: %v", err)
	}
	got := mock.Events()
	want := []string{"a", "+tab", "-tab", "b"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// cancelAfterTypist signals the coordinator once the Nth character has been
// emitted, simulating a hotkey arriving mid-job.
type cancelAfterTypist struct {
	platform.MockTypist
	coord  *cancel.Coordinator
	fireAt int
	n      int
}

func (c *cancelAfterTypist) TypeChar(r rune) error {
	err := c.MockTypist.TypeChar(r)
	c.n++
	if c.n == c.fireAt {
		c.coord.Signal()
	}
	return err
}

func TestCancellationStopsWithinCheckCadence(t *testing.T) {
	coord := cancel.New(0)
	mock := &cancelAfterTypist{coord: coord, fireAt: 250}
	e := NewEngine(mock, coord, 200)
	e.sleep = func(time.Duration) {}

	text := strings.Repeat("a", 1000)
	typed, err := e.Type(Job{ID: 2, Text: text, Speed: Fast})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}
	if e.State() != StateCancelled {
		t.Errorf("state = %s, want cancelled", e.State())
	}
	// Signal lands at character 250; the next check is at most 10 characters
	// later, so no more than 260 may have been emitted.
	if typed < 250 || typed > 260 {
		t.Errorf("typed = %d, want between 250 and 260", typed)
	}
	if got := len(mock.Events()); got != typed {
		t.Errorf("event log has %d entries, typed reports %d", got, typed)
	}
}

func TestEmittedCharactersAreAPrefix(t *testing.T) {
	coord := cancel.New(0)
	mock := &cancelAfterTypist{coord: coord, fireAt: 37}
	e := NewEngine(mock, coord, 50)
	e.sleep = func(time.Duration) {}

	text := "abcdefghijklmnopqrstuvwxyz0123456789abcdefghijklmnopqrstuvwxyz"
	typed, err := e.Type(Job{ID: 3, Text: text, Speed: Fast})
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("err = %v, want ErrCancelled", err)
	}

	got := strings.Join(mock.Events(), "")
	if got != text[:typed] {
		t.Errorf("emitted %q is not the %d-character prefix of the input", got, typed)
	}
}

func TestStaleCancellationClearedAtJobStart(t *testing.T) {
	mock := &platform.MockTypist{}
	e, coord := newTestEngine(mock, 0)

	coord.Signal()
	typed, err := e.Type(Job{ID: 4, Text: "ok", Speed: Fast})
	if err != nil {
		t.Fatalf("stale cancellation blocked a new job: %v", err)
	}
	if typed != 2 {
		t.Errorf("typed = %d, want 2", typed)
	}
	if e.State() != StateCompleted {
		t.Errorf("state = %s, want completed", e.State())
	}
}

func TestDriverFailureIsTerminal(t *testing.T) {
	driverErr := errors.New("input rejected")
	mock := &platform.MockTypist{FailAfter: 4, Err: driverErr}
	e, _ := newTestEngine(mock, 0)

	typed, err := e.Type(Job{ID: 5, Text: "abcdef", Speed: Fast})
	if err == nil || !errors.Is(err, driverErr) {
		t.Fatalf("err = %v, want wrapped driver error", err)
	}
	if e.State() != StateFailed {
		t.Errorf("state = %s, want failed", e.State())
	}
	if typed != 3 {
		t.Errorf("typed = %d, want 3", typed)
	}
}

func TestConcurrentTypeRejected(t *testing.T) {
	gate := make(chan struct{})
	started := make(chan struct{})
	mock := &platform.MockTypist{}
	e, _ := newTestEngine(mock, 0)
	first := true
	e.sleep = func(time.Duration) {
		if first {
			first = false
			close(started)
			<-gate
		}
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if _, err := e.Type(Job{ID: 6, Text: "long text", Speed: Fast}); err != nil {
			t.Errorf("first job failed: %v", err)
		}
	}()

	<-started
	if _, err := e.Type(Job{ID: 7, Text: "second", Speed: Fast}); !errors.Is(err, ErrBusy) {
		t.Errorf("err = %v, want ErrBusy", err)
	}
	close(gate)
	<-done

	if e.State() != StateCompleted {
		t.Errorf("state = %s, want completed after first job finished", e.State())
	}
}

func TestSpeedDelays(t *testing.T) {
	if Slow.Delay() != 50*time.Millisecond ||
		Normal.Delay() != 25*time.Millisecond ||
		Fast.Delay() != 10*time.Millisecond {
		t.Error("speed delays do not match the documented values")
	}
}

func TestParseSpeed(t *testing.T) {
	for in, want := range map[string]Speed{
		"slow": Slow, "normal": Normal, "fast": Fast, "": Normal,
	} {
		got, err := ParseSpeed(in)
		if err != nil || got != want {
			t.Errorf("ParseSpeed(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseSpeed("ludicrous"); err == nil {
		t.Error("ParseSpeed should reject unknown values")
	}
}
