//go:build windows

package platform

import (
	"fmt"
	"unicode/utf16"
	"unsafe"

	"golang.org/x/sys/windows"
)

var (
	user32         = windows.NewLazySystemDLL("user32.dll")
	sendInput      = user32.NewProc("SendInput")
	mapVirtualKeyW = user32.NewProc("MapVirtualKeyW")
)

const (
	inputKeyboard    = 1
	keyeventfKeyup   = 0x0002
	keyeventfUnicode = 0x0004
	mapvkVkToVsc     = 0
	vkReturn         = 0x0D
	vkTab            = 0x09
)

type keyboardInput struct {
	wVk         uint16
	wScan       uint16
	dwFlags     uint32
	time        uint32
	dwExtraInfo uintptr
}

type input struct {
	inputType uint32
	ki        keyboardInput
	padding   [8]byte // Padding to match C struct size
}

// WindowsTypist implements the Typist interface via SendInput
type WindowsTypist struct{}

// NewTypist creates the Windows synthetic-input driver
func NewTypist() (Typist, error) {
	return &WindowsTypist{}, nil
}

func vkFor(k Key) uint16 {
	switch k {
	case KeyEnter:
		return vkReturn
	case KeyTab:
		return vkTab
	}
	return 0
}

// PressKey emits a key-down event for a named key, with the scan code
// included for better compatibility with elevated applications
func (t *WindowsTypist) PressKey(k Key) error {
	vk := vkFor(k)
	if vk == 0 {
		return fmt.Errorf("no virtual key for %s", k)
	}
	scan, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)
	return t.send([]input{{
		inputType: inputKeyboard,
		ki:        keyboardInput{wVk: vk, wScan: uint16(scan)},
	}})
}

// ReleaseKey emits a key-up event for a named key
func (t *WindowsTypist) ReleaseKey(k Key) error {
	vk := vkFor(k)
	if vk == 0 {
		return fmt.Errorf("no virtual key for %s", k)
	}
	scan, _, _ := mapVirtualKeyW.Call(uintptr(vk), mapvkVkToVsc)
	return t.send([]input{{
		inputType: inputKeyboard,
		ki:        keyboardInput{wVk: vk, wScan: uint16(scan), dwFlags: keyeventfKeyup},
	}})
}

// TypeChar emits one literal character as a KEYEVENTF_UNICODE down/up pair.
// Runes outside the BMP are sent as a surrogate pair.
func (t *WindowsTypist) TypeChar(r rune) error {
	units := utf16.Encode([]rune{r})
	inputs := make([]input, 0, len(units)*2)
	for _, u := range units {
		inputs = append(inputs,
			input{
				inputType: inputKeyboard,
				ki:        keyboardInput{wScan: u, dwFlags: keyeventfUnicode},
			},
			input{
				inputType: inputKeyboard,
				ki:        keyboardInput{wScan: u, dwFlags: keyeventfUnicode | keyeventfKeyup},
			},
		)
	}
	return t.send(inputs)
}

// send submits all inputs in one SendInput call for better atomicity
func (t *WindowsTypist) send(inputs []input) error {
	ret, _, err := sendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if ret != uintptr(len(inputs)) {
		return fmt.Errorf("SendInput failed: %w", err)
	}
	return nil
}
