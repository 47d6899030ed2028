// Package tray builds the system tray menu: timer controls, the do-not-disturb
// toggle and the timer message entries.
package tray

import (
	"fmt"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/timer"
	"pomonotify/internal/ui/banner"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Pomodoro"

// Callbacks defines tray action handlers. They run on the event loop.
type Callbacks struct {
	OnToggle       func()
	OnReset        func()
	OnDoNotDisturb func(enabled bool)
	OnPreferences  func()
	OnQuit         func()
}

// Manager handles system tray state. Its methods are called on the event
// loop goroutine; menu item handlers are posted back there.
type Manager struct {
	setMenu   func(*fyne.Menu)
	do        func(func())
	post      func(func())
	callbacks Callbacks

	state        timer.State
	paused       bool
	doNotDisturb bool
	dndHidden    bool
	message      *messageSurface
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, loop *eventloop.Loop, callbacks Callbacks) *Manager {
	return newManager(app.SetSystemTrayMenu, fyne.Do, loop.Post, callbacks)
}

func newManager(setMenu func(*fyne.Menu), do func(func()), post func(func()), callbacks Callbacks) *Manager {
	manager := &Manager{
		setMenu:   setMenu,
		do:        do,
		post:      post,
		callbacks: callbacks,
		state:     timer.StateIdle,
	}
	manager.refreshMenu()
	return manager
}

// SetTimerState updates the status line and the start/pause item.
func (manager *Manager) SetTimerState(state timer.State, paused bool) {
	if manager.state == state && manager.paused == paused {
		return
	}
	manager.state = state
	manager.paused = paused
	manager.refreshMenu()
}

// DoNotDisturb reports whether the user silenced banners.
func (manager *Manager) DoNotDisturb() bool {
	return manager.doNotDisturb
}

// HideDoNotDisturb removes the do-not-disturb toggle from the menu.
func (manager *Manager) HideDoNotDisturb() {
	if manager.dndHidden {
		return
	}
	manager.dndHidden = true
	manager.refreshMenu()
}

// ShowDoNotDisturb puts the do-not-disturb toggle back.
func (manager *Manager) ShowDoNotDisturb() {
	if !manager.dndHidden {
		return
	}
	manager.dndHidden = false
	manager.refreshMenu()
}

// MessageSurface adds timer message entries to the menu and returns the
// surface writing into them. A previous message surface is closed first.
func (manager *Manager) MessageSurface() banner.Surface {
	if manager.message != nil {
		manager.message.Close()
	}
	manager.message = &messageSurface{manager: manager}
	manager.refreshMenu()
	return manager.message
}

func (manager *Manager) statusLabel() string {
	status := "idle"
	if label := manager.state.Label(); label != "" {
		status = label
	}
	if manager.paused {
		status = fmt.Sprintf("%s (paused)", status)
	}
	return fmt.Sprintf("Status: %s", status)
}

func (manager *Manager) toggleLabel() string {
	switch {
	case manager.state == timer.StateIdle:
		return "Start"
	case manager.paused:
		return "Resume"
	default:
		return "Pause"
	}
}

func (manager *Manager) buildMenu() *fyne.Menu {
	statusItem := fyne.NewMenuItem(manager.statusLabel(), nil)
	statusItem.Disabled = true

	items := []*fyne.MenuItem{statusItem}
	if manager.message != nil {
		items = append(items, manager.message.items()...)
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.item(manager.toggleLabel(), manager.callbacks.OnToggle),
	)
	reset := manager.item("Reset", manager.callbacks.OnReset)
	reset.Disabled = manager.state == timer.StateIdle
	items = append(items, reset)

	if !manager.dndHidden {
		dnd := fyne.NewMenuItem("Do not disturb", func() {
			manager.post(manager.toggleDoNotDisturb)
		})
		dnd.Checked = manager.doNotDisturb
		items = append(items, dnd)
	}

	items = append(items,
		fyne.NewMenuItemSeparator(),
		manager.item("Preferences", manager.callbacks.OnPreferences),
		manager.item("Quit", manager.callbacks.OnQuit),
	)
	return fyne.NewMenu(menuTitle, items...)
}

func (manager *Manager) item(label string, callback func()) *fyne.MenuItem {
	return fyne.NewMenuItem(label, func() {
		if callback != nil {
			manager.post(callback)
		}
	})
}

func (manager *Manager) toggleDoNotDisturb() {
	manager.doNotDisturb = !manager.doNotDisturb
	manager.refreshMenu()
	if manager.callbacks.OnDoNotDisturb != nil {
		manager.callbacks.OnDoNotDisturb(manager.doNotDisturb)
	}
}

func (manager *Manager) refreshMenu() {
	menu := manager.buildMenu()
	manager.do(func() {
		manager.setMenu(menu)
	})
}
