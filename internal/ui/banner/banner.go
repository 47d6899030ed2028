// Package banner mirrors notifications into visible surfaces.
package banner

import (
	"fmt"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"
	"pomonotify/internal/notifications"
)

// Surface is a visible widget a banner writes into.
//
// Action callbacks and OnClosed handlers must run on the event loop goroutine.
type Surface interface {
	SetTitle(title string)
	SetBody(body string)
	Unexpand()
	AddAction(label string, callback func()) Action
	Close()
	Mapped() bool
	OnClosed(handler func())
}

// Action is a button added to a surface.
type Action interface {
	Remove()
}

// Banner keeps a surface in sync with a start or end notification.
type Banner struct {
	notification *notifications.Notification
	timer        notifications.Timer
	surface      Surface
	loop         *eventloop.Loop

	initialState timer.State
	body         string
	pending      bool
	stale        bool
	extendAction Action
	closed       bool

	updateID  signal.HandlerID
	changedID signal.HandlerID
	destroyID signal.HandlerID
}

// New attaches a banner for notification to surface.
func New(notification *notifications.Notification, surface Surface, loop *eventloop.Loop) *Banner {
	banner := &Banner{
		notification: notification,
		timer:        notification.Timer(),
		surface:      surface,
		loop:         loop,
		initialState: notification.Timer().State(),
	}
	if notification.Destroying() {
		banner.closed = true
		surface.Close()
		return banner
	}

	if notification.Kind() == notifications.KindEnd {
		surface.AddAction("Skip Break", banner.skipBreak)
		surface.AddAction(extendLabel(notification.ExtendIncrement()), banner.extend)
	}

	banner.updateID = banner.timer.OnUpdate(banner.onTimerUpdate)
	banner.changedID = notification.OnChanged(banner.onChanged)
	banner.destroyID = notification.OnDestroy(banner.Close)
	surface.OnClosed(banner.release)

	banner.onChanged()
	banner.onTimerUpdate()
	return banner
}

// Frozen reports whether content updates are currently held back.
func (banner *Banner) Frozen() bool {
	if banner.pending {
		return true
	}
	// Start banners follow the phase they announce, so only end banners freeze on a phase change.
	return banner.notification.Kind() == notifications.KindEnd &&
		banner.surface.Mapped() &&
		banner.timer.State() != banner.initialState
}

// Closed reports whether the banner stopped mirroring.
func (banner *Banner) Closed() bool {
	return banner.closed
}

// Close stops mirroring and closes the surface.
func (banner *Banner) Close() {
	if banner.closed {
		return
	}
	banner.release()
	banner.surface.Close()
}

func (banner *Banner) onChanged() {
	if banner.Frozen() {
		banner.stale = true
	} else {
		banner.refreshTitle()
	}

	if banner.notification.Kind() != notifications.KindStart {
		return
	}
	switch {
	case banner.timer.IsBreak() && banner.extendAction == nil:
		banner.extendAction = banner.surface.AddAction(extendLabel(banner.notification.ExtendIncrement()), banner.extend)
	case !banner.timer.IsBreak() && banner.extendAction != nil:
		banner.extendAction.Remove()
		banner.extendAction = nil
	}
}

func (banner *Banner) onTimerUpdate() {
	if banner.Frozen() {
		return
	}
	if banner.stale {
		banner.refreshTitle()
	}
	body := notifications.BodyText(banner.timer.Remaining())
	if body != banner.body {
		banner.body = body
		banner.surface.SetBody(body)
	}
}

func (banner *Banner) refreshTitle() {
	banner.stale = false
	title := banner.notification.Title()
	state := banner.timer.State()
	if banner.notification.Kind() == notifications.KindEnd && state.IsBreak() {
		title = state.Label()
	}
	banner.surface.SetTitle(title)
	banner.surface.Unexpand()
}

func (banner *Banner) skipBreak() {
	if banner.closed {
		return
	}
	banner.hold()
	banner.surface.Close()
	banner.timer.SetState(timer.StatePomodoro)
}

func (banner *Banner) extend() {
	if banner.closed {
		return
	}
	banner.hold()
	banner.notification.Extend()
}

// hold freezes the banner until the current batch of events is handled.
func (banner *Banner) hold() {
	if banner.pending {
		return
	}
	banner.pending = true
	banner.loop.Idle(func() {
		banner.pending = false
	})
}

func (banner *Banner) release() {
	if banner.closed {
		return
	}
	banner.closed = true
	if banner.updateID != 0 {
		banner.timer.Disconnect(banner.updateID)
		banner.updateID = 0
	}
	if banner.changedID != 0 {
		banner.notification.Disconnect(banner.changedID)
		banner.changedID = 0
	}
	if banner.destroyID != 0 {
		banner.notification.Disconnect(banner.destroyID)
		banner.destroyID = 0
	}
}

func extendLabel(increment time.Duration) string {
	minutes := int(increment.Round(time.Minute) / time.Minute)
	if minutes <= 1 {
		return "+1 Minute"
	}
	return fmt.Sprintf("+%d Minutes", minutes)
}
