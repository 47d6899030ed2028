package tray

import (
	"pomonotify/internal/ui/banner"

	"fyne.io/fyne/v2"
)

// messageSurface renders a timer message as disabled title and body entries
// followed by its actions.
type messageSurface struct {
	manager  *Manager
	title    string
	body     string
	actions  []*messageAction
	closed   bool
	onClosed []func()
}

type messageAction struct {
	owner    *messageSurface
	label    string
	callback func()
	removed  bool
}

func (message *messageSurface) SetTitle(title string) {
	if message.closed || message.title == title {
		return
	}
	message.title = title
	message.manager.refreshMenu()
}

func (message *messageSurface) SetBody(body string) {
	if message.closed || message.body == body {
		return
	}
	message.body = body
	message.manager.refreshMenu()
}

// Unexpand does nothing: menu entries have no expanded state.
func (message *messageSurface) Unexpand() {}

func (message *messageSurface) AddAction(label string, callback func()) banner.Action {
	action := &messageAction{owner: message, label: label, callback: callback}
	if message.closed {
		action.removed = true
		return action
	}
	message.actions = append(message.actions, action)
	message.manager.refreshMenu()
	return action
}

func (message *messageSurface) Close() {
	if message.closed {
		return
	}
	message.closed = true
	if message.manager.message == message {
		message.manager.message = nil
		message.manager.refreshMenu()
	}
	for _, handler := range message.onClosed {
		handler()
	}
	message.onClosed = nil
}

func (message *messageSurface) Mapped() bool { return !message.closed }

func (message *messageSurface) OnClosed(handler func()) {
	if message.closed {
		return
	}
	message.onClosed = append(message.onClosed, handler)
}

func (message *messageSurface) items() []*fyne.MenuItem {
	var items []*fyne.MenuItem
	if message.title != "" {
		title := fyne.NewMenuItem(message.title, nil)
		title.Disabled = true
		items = append(items, title)
	}
	if message.body != "" {
		body := fyne.NewMenuItem(message.body, nil)
		body.Disabled = true
		items = append(items, body)
	}
	for _, action := range message.actions {
		items = append(items, action.menuItem())
	}
	return items
}

func (action *messageAction) menuItem() *fyne.MenuItem {
	manager := action.owner.manager
	return fyne.NewMenuItem(action.label, func() {
		manager.post(func() {
			if !action.removed && !action.owner.closed {
				action.callback()
			}
		})
	})
}

func (action *messageAction) Remove() {
	if action.removed {
		return
	}
	action.removed = true
	owner := action.owner
	for index, candidate := range owner.actions {
		if candidate == action {
			owner.actions = append(owner.actions[:index], owner.actions[index+1:]...)
			break
		}
	}
	if !owner.closed {
		owner.manager.refreshMenu()
	}
}
