package clipmon

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"keypaste/platform"
)

func TestFingerprintDistinguishesContent(t *testing.T) {
	if Fingerprint("abc") == Fingerprint("abd") {
		t.Error("fingerprints of different text should differ")
	}
	if Fingerprint("abc") != Fingerprint("abc") {
		t.Error("fingerprint must be deterministic")
	}
}

func TestPollDetectsChangeOnce(t *testing.T) {
	clip := &platform.MockClipboard{}
	m := New(clip, 0)

	clip.Set("first")
	ev, changed, err := m.Poll()
	if err != nil || !changed {
		t.Fatalf("first poll: changed=%v err=%v, want change", changed, err)
	}
	if ev.Size != 5 {
		t.Errorf("event size = %d, want 5", ev.Size)
	}
	if ev.Fingerprint != Fingerprint("first") {
		t.Error("event fingerprint does not match content")
	}

	// Same content: polling twice with no clipboard change never raises a
	// second event.
	if _, changed, _ := m.Poll(); changed {
		t.Error("unchanged clipboard raised a change event")
	}

	clip.Set("second")
	if _, changed, _ := m.Poll(); !changed {
		t.Error("new content did not raise a change event")
	}
}

func TestPollIgnoresEmptyAndWhitespace(t *testing.T) {
	clip := &platform.MockClipboard{}
	m := New(clip, 0)

	for _, content := range []string{"", "   ", "\n\t  \n"} {
		clip.Set(content)
		if _, changed, err := m.Poll(); changed || err != nil {
			t.Errorf("content %q: changed=%v err=%v, want silent", content, changed, err)
		}
	}
}

func TestPollRetriesAfterTransientError(t *testing.T) {
	clip := &platform.MockClipboard{}
	m := New(clip, 0)

	clip.Set("before")
	if _, changed, _ := m.Poll(); !changed {
		t.Fatal("setup poll should detect content")
	}

	clip.Set("after")
	clip.GetErr = errors.New("clipboard locked")
	if _, changed, err := m.Poll(); err == nil || changed {
		t.Fatal("locked clipboard should surface an error, not a change")
	}

	// The failed read must not eat the pending change.
	clip.GetErr = nil
	if _, changed, _ := m.Poll(); !changed {
		t.Error("change was lost across a transient error")
	}
}

func TestConcurrentPollsDetectChangeOnce(t *testing.T) {
	clip := &platform.MockClipboard{}
	clip.Set("shared content")
	m := New(clip, 0)

	// Overlapping polls happen when monitoring is toggled off and back on
	// while the old loop is mid-poll. The change must be detected by exactly
	// one of them.
	var changes atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, changed, err := m.Poll(); err != nil {
				t.Errorf("Poll failed: %v", err)
			} else if changed {
				changes.Add(1)
			}
		}()
	}
	wg.Wait()

	if got := changes.Load(); got != 1 {
		t.Errorf("%d polls reported the change, want exactly 1", got)
	}
}

func TestClearThenRestoreStaysSilent(t *testing.T) {
	clip := &platform.MockClipboard{}
	m := New(clip, 0)

	clip.Set("content")
	m.Poll()
	clip.Set("")
	m.Poll()
	clip.Set("content")
	if _, changed, _ := m.Poll(); changed {
		t.Error("restoring identical content after a clear should not raise a change")
	}
}
