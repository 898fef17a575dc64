// Package systray renders the tray menu and forwards user actions to the
// agent. It holds no pipeline state of its own.
package systray

import (
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"keypaste/typing"
)

// ActionKind identifies a tray menu action
type ActionKind int

const (
	ActionPaste ActionKind = iota
	ActionCancel
	ActionSetSpeed
	ActionToggleMonitor
)

// Action is one user interaction with the tray menu
type Action struct {
	Kind  ActionKind
	Speed typing.Speed // valid for ActionSetSpeed
}

// Manager manages the system tray icon and menu
type Manager struct {
	iconData       []byte
	speed          typing.Speed
	monitorEnabled bool

	actions chan Action
	quit    chan struct{}

	speedItems  map[typing.Speed]*systray.MenuItem
	monitorItem *systray.MenuItem

	mu        sync.Mutex
	statsText string
	statsItem *systray.MenuItem
}

// New creates a systray manager reflecting the current settings
func New(iconData []byte, speed typing.Speed, monitorEnabled bool) *Manager {
	return &Manager{
		iconData:       iconData,
		speed:          speed,
		monitorEnabled: monitorEnabled,
		actions:        make(chan Action, 8),
		quit:           make(chan struct{}),
	}
}

// Run starts the system tray (blocking call)
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Stop stops the system tray
func (m *Manager) Stop() {
	systray.Quit()
}

// Actions returns the channel of user menu actions
func (m *Manager) Actions() <-chan Action {
	return m.actions
}

// WaitForQuit returns a channel that will be closed when user clicks Quit
func (m *Manager) WaitForQuit() <-chan struct{} {
	return m.quit
}

// onReady is called when the systray is ready
func (m *Manager) onReady() {
	if len(m.iconData) > 0 {
		systray.SetIcon(m.iconData)
	}
	systray.SetTitle("keypaste")
	systray.SetTooltip("keypaste - clipboard typing")

	mPaste := systray.AddMenuItem("Paste Now", "Type the clipboard into the focused window")
	mCancel := systray.AddMenuItem("Cancel Typing", "Stop the typing job in progress")
	systray.AddSeparator()

	mSpeed := systray.AddMenuItem("Typing Speed", "Inter-character delay")
	m.speedItems = map[typing.Speed]*systray.MenuItem{
		typing.Slow:   mSpeed.AddSubMenuItemCheckbox("Slow", "50ms per character", m.speed == typing.Slow),
		typing.Normal: mSpeed.AddSubMenuItemCheckbox("Normal", "25ms per character", m.speed == typing.Normal),
		typing.Fast:   mSpeed.AddSubMenuItemCheckbox("Fast", "10ms per character", m.speed == typing.Fast),
	}

	m.monitorItem = systray.AddMenuItemCheckbox("Monitor Clipboard", "Watch the clipboard for changes", m.monitorEnabled)
	systray.AddSeparator()

	m.mu.Lock()
	text := m.statsText
	if text == "" {
		text = "No jobs yet"
	}
	m.statsItem = systray.AddMenuItem(text, "Typing history, last 7 days")
	m.statsItem.Disable()
	m.mu.Unlock()

	mQuit := systray.AddMenuItem("Quit", "Exit keypaste")

	go func() {
		for {
			select {
			case <-mPaste.ClickedCh:
				m.emit(Action{Kind: ActionPaste})
			case <-mCancel.ClickedCh:
				m.emit(Action{Kind: ActionCancel})
			case <-m.speedItems[typing.Slow].ClickedCh:
				m.selectSpeed(typing.Slow)
			case <-m.speedItems[typing.Normal].ClickedCh:
				m.selectSpeed(typing.Normal)
			case <-m.speedItems[typing.Fast].ClickedCh:
				m.selectSpeed(typing.Fast)
			case <-m.monitorItem.ClickedCh:
				m.toggleMonitor()
			case <-mQuit.ClickedCh:
				slog.Info("User requested quit from system tray")
				// Quit is not an Action; the agent observes it through
				// WaitForQuit.
				close(m.quit)
				systray.Quit()
				return
			}
		}
	}()
}

func (m *Manager) selectSpeed(speed typing.Speed) {
	m.speed = speed
	for s, item := range m.speedItems {
		if s == speed {
			item.Check()
		} else {
			item.Uncheck()
		}
	}
	m.emit(Action{Kind: ActionSetSpeed, Speed: speed})
}

func (m *Manager) toggleMonitor() {
	m.monitorEnabled = !m.monitorEnabled
	if m.monitorEnabled {
		m.monitorItem.Check()
	} else {
		m.monitorItem.Uncheck()
	}
	m.emit(Action{Kind: ActionToggleMonitor})
}

// SetStats updates the read-only stats line. Safe to call before the tray
// is ready; the text is applied when the menu is built.
func (m *Manager) SetStats(text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statsText = text
	if m.statsItem != nil {
		m.statsItem.SetTitle(text)
	}
}

func (m *Manager) emit(a Action) {
	select {
	case m.actions <- a:
	default:
		slog.Warn("tray action dropped, agent not consuming", "kind", a.Kind)
	}
}

// onExit is called when the systray is exiting
func (m *Manager) onExit() {
	slog.Info("System tray exited")
}
