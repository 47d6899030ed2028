package banner

import (
	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"
	"pomonotify/internal/notifications"
)

// TimerMessage is the persistent tray entry showing the timer next to a
// notification. It offers "Skip" and an extend button.
type TimerMessage struct {
	timer        notifications.Timer
	notification *notifications.Notification
	surface      Surface

	hasState bool
	state    timer.State
	paused   bool
	body     string
	closed   bool

	updateID  signal.HandlerID
	destroyID signal.HandlerID
}

// NewTimerMessage mirrors source into surface until notification is destroyed
// or the surface is closed.
func NewTimerMessage(source notifications.Timer, notification *notifications.Notification, surface Surface) *TimerMessage {
	message := &TimerMessage{
		timer:        source,
		notification: notification,
		surface:      surface,
	}
	if notification.Destroying() {
		message.closed = true
		surface.Close()
		return message
	}

	surface.AddAction("Skip", message.skip)
	surface.AddAction(extendLabel(notification.ExtendIncrement()), message.extend)

	message.updateID = source.OnUpdate(message.onTimerUpdate)
	message.destroyID = notification.OnDestroy(message.Close)
	surface.OnClosed(message.release)

	message.onTimerUpdate()
	return message
}

// Closed reports whether the message stopped mirroring.
func (message *TimerMessage) Closed() bool {
	return message.closed
}

// Close stops mirroring and closes the surface.
func (message *TimerMessage) Close() {
	if message.closed {
		return
	}
	message.release()
	message.surface.Close()
}

func (message *TimerMessage) onTimerUpdate() {
	state := message.timer.State()
	paused := message.timer.IsPaused()
	if !message.hasState || state != message.state || paused != message.paused {
		message.hasState = true
		message.state = state
		message.paused = paused

		title := state.Label()
		if paused {
			title = "Paused"
		}
		if title != "" {
			message.surface.SetTitle(title)
		}
	}

	if state == timer.StateIdle {
		return
	}
	body := notifications.BodyText(message.timer.Remaining())
	if body != message.body {
		message.body = body
		message.surface.SetBody(body)
	}
}

func (message *TimerMessage) skip() {
	if message.closed {
		return
	}
	message.timer.Skip()
	if !message.notification.Destroying() {
		message.notification.Destroy(notifications.ReasonDismissed)
	}
}

func (message *TimerMessage) extend() {
	if message.closed {
		return
	}
	message.timer.SetStateDuration(message.timer.StateDuration() + message.notification.ExtendIncrement())
}

func (message *TimerMessage) release() {
	if message.closed {
		return
	}
	message.closed = true
	if message.updateID != 0 {
		message.timer.Disconnect(message.updateID)
		message.updateID = 0
	}
	if message.destroyID != 0 {
		message.notification.Disconnect(message.destroyID)
		message.destroyID = 0
	}
}
