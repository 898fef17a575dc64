//go:build !windows

package platform

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"

	gohook "github.com/robotn/gohook"
)

// GohookHotkey implements the Hotkey interface on macOS and Linux using the
// gohook global event tap.
type GohookHotkey struct{}

// NewHotkey creates a gohook-backed hotkey listener
func NewHotkey() Hotkey {
	return &GohookHotkey{}
}

// Listen starts listening for the specified key combination
func (h *GohookHotkey) Listen(ctx context.Context, combo KeyCombo) (<-chan Event, error) {
	keyCodes, err := rawcodes(combo.Key)
	if err != nil {
		return nil, err
	}

	evChan := gohook.Start()
	if evChan == nil {
		return nil, fmt.Errorf("gohook start failed")
	}

	events := make(chan Event, 10)
	go func() {
		defer gohook.End()

		mods := modifierState{}
		pressed := false

		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-evChan:
				if !ok {
					slog.Warn("hotkey event channel closed")
					return
				}
				if ev.Kind != gohook.KeyDown && ev.Kind != gohook.KeyUp {
					continue
				}
				mods.update(ev.Rawcode, ev.Kind == gohook.KeyDown)

				if !containsCode(keyCodes, ev.Rawcode) {
					continue
				}
				if ev.Kind == gohook.KeyDown {
					if !pressed && mods.matches(combo) {
						pressed = true
						select {
						case events <- Event{Type: Pressed}:
						default:
						}
					}
				} else if pressed {
					pressed = false
					select {
					case events <- Event{Type: Released}:
					default:
					}
				}
			}
		}
	}()

	return events, nil
}

type modifierState struct {
	ctrl, shift, alt, win bool
}

func (m *modifierState) update(rawcode uint16, down bool) {
	switch {
	case containsCode(modCtrl(), rawcode):
		m.ctrl = down
	case containsCode(modShift(), rawcode):
		m.shift = down
	case containsCode(modAlt(), rawcode):
		m.alt = down
	case containsCode(modWin(), rawcode):
		m.win = down
	}
}

func (m *modifierState) matches(c KeyCombo) bool {
	return m.ctrl == c.Ctrl && m.shift == c.Shift && m.alt == c.Alt && m.win == c.Win
}

func containsCode(codes []uint16, c uint16) bool {
	for _, v := range codes {
		if v == c {
			return true
		}
	}
	return false
}

// Raw key codes differ between the macOS event tap and X11 keysyms, so each
// lookup switches on GOOS.

func modCtrl() []uint16 {
	if runtime.GOOS == "darwin" {
		return []uint16{59, 62}
	}
	return []uint16{65507, 65508}
}

func modShift() []uint16 {
	if runtime.GOOS == "darwin" {
		return []uint16{56, 60}
	}
	return []uint16{65505, 65506}
}

func modAlt() []uint16 {
	if runtime.GOOS == "darwin" {
		return []uint16{58, 61}
	}
	return []uint16{65513, 65514}
}

func modWin() []uint16 {
	if runtime.GOOS == "darwin" {
		return []uint16{54, 55}
	}
	return []uint16{65515, 65516}
}

// rawcodes maps a key name to the raw codes gohook reports for it.
func rawcodes(key string) ([]uint16, error) {
	darwin := runtime.GOOS == "darwin"
	switch key {
	case "":
		return nil, fmt.Errorf("modifier-only hotkeys are not supported on %s", runtime.GOOS)
	case "esc":
		if darwin {
			return []uint16{53}, nil
		}
		return []uint16{65307}, nil
	case "space":
		if darwin {
			return []uint16{49}, nil
		}
		return []uint16{32}, nil
	case "enter":
		if darwin {
			return []uint16{36}, nil
		}
		return []uint16{65293}, nil
	case "tab":
		if darwin {
			return []uint16{48}, nil
		}
		return []uint16{65289}, nil
	}
	if len(key) == 1 {
		r := rune(key[0])
		if r >= 'a' && r <= 'z' || r >= '0' && r <= '9' {
			if darwin {
				return nil, fmt.Errorf("letter hotkeys not mapped on darwin: %s", key)
			}
			// X11 keysyms for ASCII letters and digits equal their codepoint
			return []uint16{uint16(r)}, nil
		}
	}
	return nil, fmt.Errorf("unknown key: %s", key)
}
