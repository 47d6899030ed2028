package notifications

import (
	"fmt"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/signal"

	"github.com/rs/zerolog"
)

// Options configures the notification subsystem.
type Options struct {
	SourceName      string
	IconName        string
	PreAnnouncement time.Duration
	ExtendIncrement time.Duration
}

// DefaultOptions returns the stock source name, icon and timings.
func DefaultOptions() Options {
	return Options{
		SourceName:      "Pomodoro Timer",
		IconName:        "gnome-pomodoro-symbolic",
		PreAnnouncement: DefaultPreAnnouncement,
		ExtendIncrement: DefaultExtendIncrement,
	}
}

func (options Options) normalized() Options {
	defaults := DefaultOptions()
	if options.SourceName == "" {
		options.SourceName = defaults.SourceName
	}
	if options.IconName == "" {
		options.IconName = defaults.IconName
	}
	if options.PreAnnouncement <= 0 {
		options.PreAnnouncement = defaults.PreAnnouncement
	}
	if options.ExtendIncrement <= 0 {
		options.ExtendIncrement = defaults.ExtendIncrement
	}
	return options
}

// Registry owns the single notification source of the process.
//
// The source is created on the first request and torn down once its last
// notification is gone. The registry is held by the application, never by
// the notifications themselves.
type Registry struct {
	host    Host
	loop    *eventloop.Loop
	logger  zerolog.Logger
	options Options

	source  *Source
	created int
	nextID  uint64
	shown   signal.Signal
}

// NewRegistry creates a registry without a source.
func NewRegistry(host Host, loop *eventloop.Loop, options Options, logger zerolog.Logger) *Registry {
	return &Registry{
		host:    host,
		loop:    loop,
		logger:  logger.With().Str("component", "notifications").Logger(),
		options: options.normalized(),
	}
}

// Options returns the normalized options.
func (registry *Registry) Options() Options {
	return registry.options
}

// SetOptions replaces the options. Shown notifications pick up the new
// timings on their next update.
func (registry *Registry) SetOptions(options Options) {
	registry.options = options.normalized()
}

// GetOrCreate returns the live source or builds a new one.
func (registry *Registry) GetOrCreate() (*Source, error) {
	if registry.source != nil {
		return registry.source, nil
	}

	hostSource, err := registry.host.NewSource(registry.options.SourceName, registry.options.IconName)
	if err != nil {
		return nil, fmt.Errorf("create notification source: %w", err)
	}

	registry.created++
	registry.source = &Source{
		registry: registry,
		host:     hostSource,
		logger:   registry.logger,
	}
	registry.logger.Debug().Int("generation", registry.created).Msg("notification source created")
	return registry.source, nil
}

// Current returns the live source, or nil.
func (registry *Registry) Current() *Source {
	return registry.source
}

// SourcesCreated returns how many sources were built over the registry's life.
func (registry *Registry) SourcesCreated() int {
	return registry.created
}

// Owns reports whether the notification is shown through the live source.
func (registry *Registry) Owns(notification *Notification) bool {
	if registry.source == nil || notification == nil {
		return false
	}
	return registry.source.Contains(notification)
}

// Announces reports whether the notification is a start or end notification
// built by this registry, whether or not it is shown yet.
func (registry *Registry) Announces(notification *Notification) bool {
	if notification == nil || notification.registry != registry {
		return false
	}
	return notification.kind == KindStart || notification.kind == KindEnd
}

// OnShow connects a handler fired every time a notification is shown.
func (registry *Registry) OnShow(handler func()) signal.HandlerID {
	return registry.shown.Connect(handler)
}

// Close destroys the live source, if any.
func (registry *Registry) Close() {
	if registry.source != nil {
		registry.source.Destroy()
	}
}

func (registry *Registry) newID() uint64 {
	registry.nextID++
	return registry.nextID
}

func (registry *Registry) sourceDestroyed(source *Source) {
	if registry.source == source {
		registry.source = nil
	}
}

// Source is the tray entry grouping the notifications of this process.
type Source struct {
	registry *Registry
	host     HostSource
	logger   zerolog.Logger

	notifications      []*Notification
	pendingAutoDestroy bool
	destroyed          bool
	destroyedSignal    signal.Signal
}

// Notifications returns a copy of the notifications shown through the source.
func (source *Source) Notifications() []*Notification {
	return append([]*Notification(nil), source.notifications...)
}

// Len returns the number of notifications shown through the source.
func (source *Source) Len() int {
	return len(source.notifications)
}

// Contains reports whether the notification belongs to the source.
func (source *Source) Contains(notification *Notification) bool {
	return source.indexOf(notification) >= 0
}

// Destroyed reports whether the source was torn down.
func (source *Source) Destroyed() bool {
	return source.destroyed
}

// PendingAutoDestroy reports whether an emptiness check is queued.
func (source *Source) PendingAutoDestroy() bool {
	return source.pendingAutoDestroy
}

// SetTitle renames the tray entry.
func (source *Source) SetTitle(title string) {
	if source.destroyed {
		return
	}
	source.host.SetTitle(title)
}

// NotifyCount re-announces the notification count so hosts refresh the
// entry, e.g. the lock screen.
func (source *Source) NotifyCount() {
	if source.destroyed {
		return
	}
	source.host.CountUpdated(len(source.notifications))
}

// OnDestroy connects a handler fired when the source is torn down.
func (source *Source) OnDestroy(handler func()) signal.HandlerID {
	return source.destroyedSignal.Connect(handler)
}

// Show displays the notification through the source, or refreshes it when
// it is already shown.
func (source *Source) Show(notification *Notification) error {
	if source.destroyed {
		return ErrSourceDestroyed
	}

	if notification.handle != nil && source.Contains(notification) {
		notification.push()
		source.registry.shown.Emit()
		return nil
	}

	handle, err := source.host.Show(notification.effectiveContent(), notification.actions)
	if err != nil {
		return fmt.Errorf("show notification: %w", err)
	}

	notification.attach(source, handle)
	source.notifications = append(source.notifications, notification)
	source.host.CountUpdated(len(source.notifications))
	source.registry.shown.Emit()
	return nil
}

// Destroy tears down the source and every notification in it.
func (source *Source) Destroy() {
	if source.destroyed {
		return
	}
	source.destroyed = true
	source.pendingAutoDestroy = false

	for _, notification := range source.Notifications() {
		notification.Destroy(ReasonSourceClosed)
	}
	source.notifications = nil

	source.host.Destroy()
	source.registry.sourceDestroyed(source)
	source.logger.Debug().Msg("notification source destroyed")

	source.destroyedSignal.Emit()
	source.destroyedSignal.DisconnectAll()
}

func (source *Source) remove(notification *Notification) {
	index := source.indexOf(notification)
	if index < 0 {
		return
	}
	source.notifications = append(source.notifications[:index], source.notifications[index+1:]...)
	if source.destroyed {
		return
	}

	source.host.CountUpdated(len(source.notifications))
	if len(source.notifications) == 0 {
		source.lastNotificationRemoved()
	}
}

func (source *Source) lastNotificationRemoved() {
	if source.pendingAutoDestroy {
		return
	}
	source.pendingAutoDestroy = true
	source.registry.loop.Idle(func() {
		source.pendingAutoDestroy = false
		if !source.destroyed && len(source.notifications) == 0 {
			source.Destroy()
		}
	})
}

func (source *Source) indexOf(notification *Notification) int {
	for index, candidate := range source.notifications {
		if candidate == notification {
			return index
		}
	}
	return -1
}
