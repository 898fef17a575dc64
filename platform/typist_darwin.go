//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

// OsaTypist implements the Typist interface through AppleScript System
// Events. Requires the accessibility permission to have been granted.
type OsaTypist struct{}

// NewTypist creates the macOS synthetic-input driver
func NewTypist() (Typist, error) {
	if _, err := exec.LookPath("osascript"); err != nil {
		return nil, fmt.Errorf("osascript not found: %w", err)
	}
	return &OsaTypist{}, nil
}

func osaKeyName(k Key) string {
	switch k {
	case KeyEnter:
		return "return"
	case KeyTab:
		return "tab"
	}
	return ""
}

func (t *OsaTypist) PressKey(k Key) error {
	name := osaKeyName(k)
	if name == "" {
		return fmt.Errorf("no key name for %s", k)
	}
	return t.run(fmt.Sprintf("key down %s", name))
}

func (t *OsaTypist) ReleaseKey(k Key) error {
	name := osaKeyName(k)
	if name == "" {
		return fmt.Errorf("no key name for %s", k)
	}
	return t.run(fmt.Sprintf("key up %s", name))
}

func (t *OsaTypist) TypeChar(r rune) error {
	s := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(string(r))
	return t.run(`keystroke "` + s + `"`)
}

func (t *OsaTypist) run(action string) error {
	script := fmt.Sprintf("tell application \"System Events\" to %s", action)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript failed: %w", err)
	}
	return nil
}
