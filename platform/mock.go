package platform

import "sync"

// MockTypist records every emitted key event instead of touching the host
// keyboard. It is the implementation tests must use: a test suite that types
// on the developer's machine is not a test suite.
type MockTypist struct {
	mu     sync.Mutex
	events []string
	// FailAfter makes event number N (1-based) return Err. Zero disables.
	FailAfter int
	Err       error
	count     int
}

func (m *MockTypist) record(ev string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.count++
	if m.FailAfter > 0 && m.count >= m.FailAfter {
		return m.Err
	}
	m.events = append(m.events, ev)
	return nil
}

func (m *MockTypist) PressKey(k Key) error   { return m.record("+" + k.String()) }
func (m *MockTypist) ReleaseKey(k Key) error { return m.record("-" + k.String()) }
func (m *MockTypist) TypeChar(r rune) error  { return m.record(string(r)) }

// Events returns a copy of the recorded event log. Literal characters appear
// as themselves; named keys as "+name"/"-name" pairs.
func (m *MockTypist) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.events))
	copy(out, m.events)
	return out
}

// MockClipboard is an in-memory Clipboard for tests.
type MockClipboard struct {
	mu   sync.Mutex
	text string
	// GetErr, when set, is returned by Get to simulate an unreadable clipboard.
	GetErr error
}

func (m *MockClipboard) Get() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return "", m.GetErr
	}
	return m.text, nil
}

func (m *MockClipboard) Set(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}
