//go:build linux

package platform

import (
	"fmt"
	"os/exec"
)

// XdoTypist implements the Typist interface by shelling out to xdotool.
// One process per key event is slow in absolute terms but well under the
// inter-character pacing delay the typing engine applies anyway.
type XdoTypist struct {
	bin string
}

// NewTypist creates the Linux synthetic-input driver
func NewTypist() (Typist, error) {
	bin, err := exec.LookPath("xdotool")
	if err != nil {
		return nil, fmt.Errorf("xdotool not found: %w", err)
	}
	return &XdoTypist{bin: bin}, nil
}

func xdoKeyName(k Key) string {
	switch k {
	case KeyEnter:
		return "Return"
	case KeyTab:
		return "Tab"
	}
	return ""
}

func (t *XdoTypist) PressKey(k Key) error {
	name := xdoKeyName(k)
	if name == "" {
		return fmt.Errorf("no key name for %s", k)
	}
	return t.run("keydown", name)
}

func (t *XdoTypist) ReleaseKey(k Key) error {
	name := xdoKeyName(k)
	if name == "" {
		return fmt.Errorf("no key name for %s", k)
	}
	return t.run("keyup", name)
}

func (t *XdoTypist) TypeChar(r rune) error {
	// --delay 0: pacing belongs to the typing engine, not xdotool
	return t.run("type", "--delay", "0", "--", string(r))
}

func (t *XdoTypist) run(args ...string) error {
	if out, err := exec.Command(t.bin, args...).CombinedOutput(); err != nil {
		return fmt.Errorf("xdotool %s failed: %w (%d bytes of output)", args[0], err, len(out))
	}
	return nil
}
