package notifications

import (
	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"

	"github.com/rs/zerolog"
)

// DispatcherOptions selects which notifications the dispatcher shows.
type DispatcherOptions struct {
	StartNotifications bool
	EndNotifications   bool
	ScreenShield       bool
}

// Dispatcher decides when notifications are created and dismissed.
//
// It shows the end notification when a pomodoro enters the pre-announcement
// window and when a break starts, swaps it for the start notification when
// the break enters the window, keeps a screen-shield notification while the
// screen is locked, and clears everything once the timer goes idle.
type Dispatcher struct {
	timer    Timer
	registry *Registry
	options  DispatcherOptions
	logger   zerolog.Logger
	present  func(*Notification)

	current   *Notification
	shield    *Notification
	locked    bool
	announced bool

	stateChangedID signal.HandlerID
	updateID       signal.HandlerID
}

// NewDispatcher creates a dispatcher following source.
func NewDispatcher(source Timer, registry *Registry, options DispatcherOptions, logger zerolog.Logger) *Dispatcher {
	dispatcher := &Dispatcher{
		timer:    source,
		registry: registry,
		options:  options,
		logger:   logger.With().Str("component", "dispatcher").Logger(),
	}
	dispatcher.stateChangedID = source.OnStateChanged(dispatcher.onStateChanged)
	dispatcher.updateID = source.OnUpdate(dispatcher.onUpdate)
	return dispatcher
}

// SetPresenter sets a callback invoked for every notification right before
// it is shown, e.g. to attach a banner.
func (dispatcher *Dispatcher) SetPresenter(present func(*Notification)) {
	dispatcher.present = present
}

// SetOptions replaces the options. Notifications already shown stay.
func (dispatcher *Dispatcher) SetOptions(options DispatcherOptions) {
	dispatcher.options = options
	dispatcher.syncShield()
}

// Current returns the start or end notification on display, or nil.
func (dispatcher *Dispatcher) Current() *Notification {
	return dispatcher.current
}

// Shield returns the screen-shield notification, or nil.
func (dispatcher *Dispatcher) Shield() *Notification {
	return dispatcher.shield
}

// SetScreenLocked tells the dispatcher whether the session is locked.
func (dispatcher *Dispatcher) SetScreenLocked(locked bool) {
	if dispatcher.locked == locked {
		return
	}
	dispatcher.locked = locked
	dispatcher.syncShield()
}

// Destroy dismisses every notification and stops following the timer.
func (dispatcher *Dispatcher) Destroy() {
	if dispatcher.stateChangedID != 0 {
		dispatcher.timer.Disconnect(dispatcher.stateChangedID)
		dispatcher.stateChangedID = 0
	}
	if dispatcher.updateID != 0 {
		dispatcher.timer.Disconnect(dispatcher.updateID)
		dispatcher.updateID = 0
	}
	dispatcher.dismissCurrent(ReasonDismissed)
	if dispatcher.shield != nil {
		dispatcher.shield.Destroy(ReasonDismissed)
	}
}

func (dispatcher *Dispatcher) onStateChanged() {
	state := dispatcher.timer.State()
	dispatcher.announced = false

	switch {
	case state == timer.StateIdle:
		dispatcher.dismissCurrent(ReasonDismissed)
	case state == timer.StatePomodoro:
		if dispatcher.currentIs(KindEnd) {
			dispatcher.dismissCurrent(ReasonReplaced)
		}
	case state.IsBreak():
		if dispatcher.currentIs(KindStart) {
			dispatcher.dismissCurrent(ReasonReplaced)
		}
		if dispatcher.options.EndNotifications && dispatcher.current == nil {
			dispatcher.show(KindEnd)
		}
	}

	dispatcher.syncShield()
}

func (dispatcher *Dispatcher) onUpdate() {
	state := dispatcher.timer.State()
	if state == timer.StateIdle || dispatcher.timer.IsPaused() || dispatcher.announced {
		return
	}
	if dispatcher.timer.Remaining() > dispatcher.registry.options.PreAnnouncement {
		return
	}

	want := KindStart
	enabled := dispatcher.options.StartNotifications
	if state == timer.StatePomodoro {
		want = KindEnd
		enabled = dispatcher.options.EndNotifications
	}
	dispatcher.announced = true
	if !enabled || dispatcher.currentIs(want) {
		return
	}

	dispatcher.dismissCurrent(ReasonReplaced)
	dispatcher.show(want)
}

func (dispatcher *Dispatcher) show(kind Kind) {
	notification := NewNotification(kind, dispatcher.timer, dispatcher.registry)
	dispatcher.current = notification
	notification.OnDestroy(func() {
		if dispatcher.current == notification {
			dispatcher.current = nil
		}
	})

	if dispatcher.present != nil {
		dispatcher.present(notification)
	}
	notification.Show()
	dispatcher.logger.Debug().Str("kind", kind.String()).Msg("notification shown")
}

func (dispatcher *Dispatcher) syncShield() {
	want := dispatcher.locked && dispatcher.options.ScreenShield && dispatcher.timer.State() != timer.StateIdle
	switch {
	case want && dispatcher.shield == nil:
		shield := NewNotification(KindScreenShield, dispatcher.timer, dispatcher.registry)
		dispatcher.shield = shield
		shield.OnDestroy(func() {
			if dispatcher.shield == shield {
				dispatcher.shield = nil
			}
		})
		shield.Show()
	case !want && dispatcher.shield != nil:
		dispatcher.shield.Destroy(ReasonDismissed)
	}
}

func (dispatcher *Dispatcher) currentIs(kind Kind) bool {
	return dispatcher.current != nil && dispatcher.current.Kind() == kind
}

func (dispatcher *Dispatcher) dismissCurrent(reason DestroyReason) {
	if dispatcher.current != nil {
		dispatcher.current.Destroy(reason)
	}
}
