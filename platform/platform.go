// Package platform hides OS-specific input facilities behind small
// capability interfaces so the rest of the program can be tested without
// touching the real clipboard or keyboard.
package platform

import (
	"context"
	"errors"
)

// ErrUnsupported is returned by backends that cannot run on this platform.
var ErrUnsupported = errors.New("not supported on this platform")

// Clipboard provides clipboard access
type Clipboard interface {
	Get() (string, error)
	Set(text string) error
}

// Key identifies a named key the typist can press independently of a
// printable character.
type Key int

const (
	KeyEnter Key = iota
	KeyTab
)

func (k Key) String() string {
	switch k {
	case KeyEnter:
		return "enter"
	case KeyTab:
		return "tab"
	}
	return "unknown"
}

// Typist is the synthetic-input driver. Implementations inject keyboard
// events as if a physical keyboard produced them.
type Typist interface {
	// PressKey and ReleaseKey emit a down/up event for a named key.
	PressKey(k Key) error
	ReleaseKey(k Key) error
	// TypeChar emits one literal character as an atomic type event.
	TypeChar(r rune) error
}

// EventType represents the type of hotkey event
type EventType int

const (
	Pressed EventType = iota
	Released
)

// Event represents a hotkey event
type Event struct {
	Type EventType
}

// KeyCombo represents a keyboard key combination. Key is a lowercase key
// name ("esc", "v", "f9", ...); it may be empty for modifier-only combos.
type KeyCombo struct {
	Ctrl  bool
	Shift bool
	Alt   bool
	Win   bool
	Key   string
}

// Hotkey provides global hotkey detection
type Hotkey interface {
	Listen(ctx context.Context, combo KeyCombo) (<-chan Event, error)
}
