package cancel

import (
	"testing"
	"time"
)

// fakeClock steps time manually so window boundaries are exact.
type fakeClock struct {
	t time.Time
}

func (f *fakeClock) now() time.Time { return f.t }

func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCoordinator(window time.Duration) (*Coordinator, *fakeClock) {
	clk := &fakeClock{t: time.UnixMilli(1_000_000)}
	c := New(window)
	c.now = clk.now
	return c, clk
}

func TestResetClearsFlag(t *testing.T) {
	c, _ := newTestCoordinator(0)

	c.Signal()
	if !c.IsCancelled() {
		t.Fatal("Signal did not set flag")
	}
	c.Reset()
	if c.IsCancelled() {
		t.Fatal("Reset did not clear flag")
	}
}

func TestSignalIdempotent(t *testing.T) {
	c, _ := newTestCoordinator(0)

	c.Signal()
	c.Signal()
	if !c.IsCancelled() {
		t.Fatal("flag should remain set")
	}
}

func TestSingleActivationIgnored(t *testing.T) {
	c, _ := newTestCoordinator(500 * time.Millisecond)

	if c.Activate() {
		t.Fatal("single activation should not fire")
	}
	if c.IsCancelled() {
		t.Fatal("flag should not be set after single activation")
	}
}

func TestDoubleActivationWithinWindowFires(t *testing.T) {
	c, clk := newTestCoordinator(500 * time.Millisecond)

	c.Activate()
	clk.advance(300 * time.Millisecond)
	if !c.Activate() {
		t.Fatal("double activation within window should fire")
	}
	if !c.IsCancelled() {
		t.Fatal("flag should be set")
	}
}

func TestDoubleActivationAtWindowBoundaryFires(t *testing.T) {
	c, clk := newTestCoordinator(500 * time.Millisecond)

	c.Activate()
	clk.advance(500 * time.Millisecond)
	if !c.Activate() {
		t.Fatal("activation exactly at the window boundary should fire")
	}
}

func TestSlowActivationsNeverFire(t *testing.T) {
	c, clk := newTestCoordinator(500 * time.Millisecond)

	for i := 0; i < 5; i++ {
		if c.Activate() {
			t.Fatalf("activation %d fired despite being outside the window", i)
		}
		clk.advance(501 * time.Millisecond)
	}
	if c.IsCancelled() {
		t.Fatal("flag should not be set")
	}
}

func TestTriplePressDoesNotRetrigger(t *testing.T) {
	c, clk := newTestCoordinator(500 * time.Millisecond)

	c.Activate()
	clk.advance(100 * time.Millisecond)
	if !c.Activate() {
		t.Fatal("second press should fire")
	}

	c.Reset()
	clk.advance(100 * time.Millisecond)
	if c.Activate() {
		t.Fatal("third press alone should not re-trigger after the pair fired")
	}
	if c.IsCancelled() {
		t.Fatal("flag should stay clear until a fresh pair arrives")
	}
}
