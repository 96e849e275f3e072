package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"tfclock/internal/core/clock"
)

const menuTitle = "25 + 5 Clock"

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
	SetSystemTrayIcon(icon fyne.Resource)
}

// Icons are swapped when the clock starts or stops.
type Icons struct {
	Idle    fyne.Resource
	Running fyne.Resource
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnReset       func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	icons      Icons
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	running    bool
	rendered   bool
}

// New creates a tray manager with the provided callbacks.
func New(host Host, icons Icons, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		icons:     icons,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true
	manager.toggleItem = fyne.NewMenuItem("Start", invoke(&manager.callbacks.OnToggle))

	manager.refreshMenu()
	if icons.Idle != nil {
		host.SetSystemTrayIcon(icons.Idle)
	}
	return manager
}

// SetState updates the status line, toggle label and icon.
func (manager *Manager) SetState(state clock.State) {
	manager.statusItem.Label = StatusText(state)
	if state.Running {
		manager.toggleItem.Label = "Stop"
	} else {
		manager.toggleItem.Label = "Start"
	}
	if !manager.rendered || state.Running != manager.running {
		manager.setIcon(state.Running)
	}
	manager.running = state.Running
	manager.rendered = true
	manager.refreshMenu()
}

// StatusText renders the one-line tray status for state.
func StatusText(state clock.State) string {
	status := fmt.Sprintf("%s %s", state.Label, state.Display())
	if !state.Running {
		status += " (stopped)"
	}
	return status
}

func (manager *Manager) setIcon(running bool) {
	icon := manager.icons.Idle
	if running {
		icon = manager.icons.Running
	}
	if icon != nil {
		manager.host.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.host == nil {
		return
	}
	manager.host.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show clock", invoke(&manager.callbacks.OnShow)),
		manager.toggleItem,
		fyne.NewMenuItem("Reset", invoke(&manager.callbacks.OnReset)),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Preferences", invoke(&manager.callbacks.OnPreferences)),
		fyne.NewMenuItem("Quit", invoke(&manager.callbacks.OnQuit)),
	))
}

func invoke(handler *func()) func() {
	return func() {
		if *handler != nil {
			(*handler)()
		}
	}
}
