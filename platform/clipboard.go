//go:build !windows

package platform

import (
	"fmt"
	"sync"

	xclip "golang.design/x/clipboard"
)

var (
	clipOnce sync.Once
	clipErr  error
)

// SystemClipboard implements the Clipboard interface on top of
// golang.design/x/clipboard, which handles Windows, macOS and X11.
type SystemClipboard struct{}

// NewClipboard initializes the system clipboard. Initialization happens once
// per process; on headless systems it fails and the error is returned to
// every caller.
func NewClipboard() (Clipboard, error) {
	clipOnce.Do(func() {
		clipErr = xclip.Init()
	})
	if clipErr != nil {
		return nil, fmt.Errorf("clipboard init failed: %w", clipErr)
	}
	return &SystemClipboard{}, nil
}

// Get retrieves text from the clipboard. Returns an empty string when the
// clipboard is empty or holds non-text content.
func (c *SystemClipboard) Get() (string, error) {
	return string(xclip.Read(xclip.FmtText)), nil
}

// Set sets text to the clipboard
func (c *SystemClipboard) Set(text string) error {
	xclip.Write(xclip.FmtText, []byte(text))
	return nil
}
