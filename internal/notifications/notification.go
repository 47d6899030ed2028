// Package notifications keeps desktop notifications in sync with the
// pomodoro timer.
package notifications

import (
	"time"

	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"

	"github.com/rs/zerolog"
)

type lifecycle int

const (
	lifecycleUninitialized lifecycle = iota
	lifecycleActive
	lifecycleDestroying
)

// Notification is one notification and the controller keeping it in sync
// with the timer.
//
// It subscribes to the timer on creation, applies content only when it
// differs from what is displayed, and fires OnChanged once per applied
// change. Destroy is one-shot.
type Notification struct {
	id        uint64
	kind      Kind
	timer     Timer
	registry  *Registry
	logger    zerolog.Logger
	createdAt time.Time

	content Content
	actions []Action

	lifecycle  lifecycle
	destroying bool
	reason     DestroyReason

	hasPhase   bool
	lastPhase  timer.State
	lastPaused bool

	stateChangedID signal.HandlerID
	updateID       signal.HandlerID

	source    *Source
	handle    Handle
	graceHold bool

	changed   signal.Signal
	destroyed signal.Signal
}

// NewNotification creates a notification of the given kind following timer.
// It is not displayed until Show is called.
func NewNotification(kind Kind, source Timer, registry *Registry) *Notification {
	notification := &Notification{
		id:        registry.newID(),
		kind:      kind,
		timer:     source,
		registry:  registry,
		createdAt: time.Now(),
	}
	notification.logger = registry.logger.With().
		Uint64("notification", notification.id).
		Str("kind", kind.String()).
		Logger()

	notification.stateChangedID = source.OnStateChanged(notification.onStateChanged)
	notification.updateID = source.OnUpdate(notification.onUpdate)
	notification.lifecycle = lifecycleActive

	notification.onStateChanged()
	return notification
}

// ID returns the process-unique id of the notification.
func (notification *Notification) ID() uint64 {
	return notification.id
}

// Kind returns the notification kind.
func (notification *Notification) Kind() Kind {
	return notification.kind
}

// Timer returns the timer the notification follows.
func (notification *Notification) Timer() Timer {
	return notification.timer
}

// Content returns the currently applied content.
func (notification *Notification) Content() Content {
	return notification.content
}

// Title returns the currently applied title.
func (notification *Notification) Title() string {
	return notification.content.Title
}

// CreatedAt returns the creation time.
func (notification *Notification) CreatedAt() time.Time {
	return notification.createdAt
}

// Destroying reports whether Destroy has been called.
func (notification *Notification) Destroying() bool {
	return notification.destroying
}

// Reason returns why the notification was destroyed, or zero.
func (notification *Notification) Reason() DestroyReason {
	return notification.reason
}

// Active reports whether the notification is live and following the timer.
func (notification *Notification) Active() bool {
	return notification.lifecycle == lifecycleActive
}

// Subscribed reports whether the notification still listens to the timer.
func (notification *Notification) Subscribed() bool {
	return notification.stateChangedID != 0 || notification.updateID != 0
}

// PreventingAutoClose reports whether the notification is held resident
// until the event loop goes idle.
func (notification *Notification) PreventingAutoClose() bool {
	return notification.graceHold
}

// ExtendIncrement returns how much Extend adds to the current phase.
func (notification *Notification) ExtendIncrement() time.Duration {
	return notification.registry.options.ExtendIncrement
}

// Source returns the source the notification is shown through, or nil.
func (notification *Notification) Source() *Source {
	return notification.source
}

// AddAction adds a button. Actions added after Show are sent with the next
// update.
func (notification *Notification) AddAction(label string, callback func()) {
	notification.actions = append(notification.actions, Action{Label: label, Callback: callback})
	if notification.handle != nil && !notification.destroying {
		notification.push()
	}
}

// OnChanged connects a handler fired once per applied content change.
func (notification *Notification) OnChanged(handler func()) signal.HandlerID {
	return notification.changed.Connect(handler)
}

// OnDestroy connects a handler fired when the notification is destroyed.
func (notification *Notification) OnDestroy(handler func()) signal.HandlerID {
	return notification.destroyed.Connect(handler)
}

// Disconnect releases a handler connected with OnChanged or OnDestroy.
func (notification *Notification) Disconnect(id signal.HandlerID) {
	if notification.changed.Disconnect(id) {
		return
	}
	notification.destroyed.Disconnect(id)
}

// Show displays the notification through the registry's source.
func (notification *Notification) Show() {
	if notification.destroying {
		notification.logger.Warn().Msg("show called after destroy")
		return
	}

	if notification.source == nil {
		source, err := notification.registry.GetOrCreate()
		if err != nil {
			notification.logger.Warn().Err(err).Msg("notification dropped")
			return
		}
		notification.source = source
	}

	if err := notification.source.Show(notification); err != nil {
		notification.logger.Warn().Err(err).Msg("notification dropped")
	}
}

// Extend adds the extend increment to the current phase and keeps the
// notification from closing on its own until the event loop goes idle.
func (notification *Notification) Extend() {
	if notification.destroying {
		return
	}
	notification.preventAutoClose()

	increment := notification.registry.options.ExtendIncrement
	notification.timer.SetStateDuration(notification.timer.StateDuration() + increment)
}

// Destroy removes the notification. Only the first call has any effect;
// later calls are logged.
func (notification *Notification) Destroy(reason DestroyReason) {
	if notification.destroying {
		notification.logger.Warn().
			Str("reason", reason.String()).
			Msg("notification already destroyed")
		return
	}
	notification.destroying = true
	notification.lifecycle = lifecycleDestroying
	notification.reason = reason

	notification.release()

	if notification.handle != nil {
		notification.handle.Destroy(reason)
	}
	if notification.source != nil {
		notification.source.remove(notification)
	}

	notification.logger.Debug().Str("reason", reason.String()).Msg("notification destroyed")

	notification.destroyed.Emit()
	notification.destroyed.DisconnectAll()
	notification.changed.DisconnectAll()
}

func (notification *Notification) attach(source *Source, handle Handle) {
	notification.source = source
	notification.handle = handle
	handle.OnClosed(func(reason DestroyReason) {
		notification.Destroy(reason)
	})
}

func (notification *Notification) release() {
	if notification.stateChangedID != 0 {
		notification.timer.Disconnect(notification.stateChangedID)
		notification.stateChangedID = 0
	}
	if notification.updateID != 0 {
		notification.timer.Disconnect(notification.updateID)
		notification.updateID = 0
	}
}

func (notification *Notification) onStateChanged() {
	input := InputFrom(notification.timer)
	if notification.kind != KindScreenShield {
		// Only the lock screen variant renders the paused flag.
		input.Paused = false
	}
	if notification.hasPhase && notification.lastPhase == input.State && notification.lastPaused == input.Paused {
		return
	}
	notification.hasPhase = true
	notification.lastPhase = input.State
	notification.lastPaused = input.Paused

	content, ok := Evaluate(notification.kind, input)
	if !ok {
		return
	}
	if notification.apply(content) && notification.kind == KindScreenShield && notification.source != nil {
		notification.source.SetTitle(input.State.Label())
	}
}

func (notification *Notification) onUpdate() {
	if notification.kind == KindScreenShield {
		// The lock screen variant also tracks pause changes, which only
		// arrive as updates.
		notification.onStateChanged()
	}
	if notification.content == (Content{}) {
		return
	}

	input := InputFrom(notification.timer)
	content := notification.content
	switch notification.kind {
	case KindStart, KindEnd:
		content.Body = BodyText(input.Remaining)
	case KindScreenShield:
		if input.State != timer.StateIdle {
			content.Body = ScreenShieldBodyText(input.Remaining)
		}
	default:
		return
	}
	content.Urgency = DecayUrgency(content.Urgency, input.Remaining, notification.registry.options.PreAnnouncement)

	if notification.apply(content) && notification.kind == KindScreenShield && notification.source != nil {
		notification.source.NotifyCount()
	}
}

func (notification *Notification) apply(content Content) bool {
	if notification.destroying || content == notification.content {
		return false
	}
	notification.content = content
	notification.push()
	notification.changed.Emit()
	return true
}

func (notification *Notification) push() {
	if notification.handle == nil {
		return
	}
	if err := notification.handle.Update(notification.effectiveContent(), notification.actions); err != nil {
		notification.logger.Warn().Err(err).Msg("update notification")
	}
}

func (notification *Notification) effectiveContent() Content {
	content := notification.content
	if notification.graceHold {
		content = content.WithResident(true)
	}
	return content
}

func (notification *Notification) preventAutoClose() {
	if notification.content.Resident || notification.destroying || notification.graceHold {
		return
	}
	notification.graceHold = true
	notification.push()

	notification.registry.loop.Idle(func() {
		notification.graceHold = false
		if !notification.destroying {
			notification.push()
		}
	})
}
