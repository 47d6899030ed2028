package freedesktop

import (
	"fmt"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/notifications"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

type notifyCaller interface {
	Call(method string, flags dbus.Flags, args ...interface{}) *dbus.Call
}

// Host implements notifications.Host on top of the notification server.
//
// Signals from the bus are posted onto the event loop; every other method
// must be called from the loop goroutine.
type Host struct {
	obj     notifyCaller
	loop    *eventloop.Loop
	logger  zerolog.Logger
	config  Config
	handles map[uint32]*handle
	closer  func() error
}

func newHost(obj notifyCaller, loop *eventloop.Loop, config Config, logger zerolog.Logger) *Host {
	return &Host{
		obj:     obj,
		loop:    loop,
		logger:  logger.With().Str("component", "freedesktop").Logger(),
		config:  config,
		handles: make(map[uint32]*handle),
	}
}

// NewSource returns a source whose notifications carry displayName as the
// application name.
func (host *Host) NewSource(displayName, iconName string) (notifications.HostSource, error) {
	appName := displayName
	if appName == "" {
		appName = host.config.AppName
	}
	return &source{host: host, appName: appName, icon: iconName}, nil
}

// Close stops listening to the bus and releases the connection.
func (host *Host) Close() error {
	if host.closer == nil {
		return nil
	}
	closer := host.closer
	host.closer = nil
	return closer()
}

func (host *Host) notify(replacesID uint32, owner *source, content notifications.Content, actions []notifications.Action) (uint32, error) {
	call := host.obj.Call(
		dbusNotifyInterface+".Notify",
		0,
		owner.appName,
		replacesID,
		owner.icon,
		content.Title,
		content.Body,
		actionList(actions),
		buildHints(content, host.config.DesktopEntry),
		expireTimeout(content),
	)
	if call.Err != nil {
		return 0, fmt.Errorf("notify: %w", call.Err)
	}

	var id uint32
	if err := call.Store(&id); err != nil {
		return 0, fmt.Errorf("notify: %w", err)
	}
	return id, nil
}

func (host *Host) closeNotification(id uint32) error {
	call := host.obj.Call(dbusNotifyInterface+".CloseNotification", 0, id)
	return call.Err
}

func (host *Host) handleSignal(signal *dbus.Signal) {
	if signal == nil || len(signal.Body) < 2 {
		return
	}
	id, ok := signal.Body[0].(uint32)
	if !ok {
		return
	}
	target := host.handles[id]
	if target == nil {
		return
	}

	switch signal.Name {
	case dbusNotifyInterface + ".ActionInvoked":
		key, _ := signal.Body[1].(string)
		index, ok := parseActionKey(key)
		if !ok || index >= len(target.actions) || target.actions[index].Callback == nil {
			return
		}
		target.actions[index].Callback()
	case dbusNotifyInterface + ".NotificationClosed":
		reason, _ := signal.Body[1].(uint32)
		target.closed = true
		delete(host.handles, id)
		target.owner.forget(target)
		host.logger.Debug().Uint32("id", id).Uint32("reason", reason).Msg("notification closed by server")
		if target.onClosed != nil {
			target.onClosed(destroyReason(reason))
		}
	}
}

type source struct {
	host      *Host
	appName   string
	icon      string
	live      []*handle
	destroyed bool
}

func (owner *source) Show(content notifications.Content, actions []notifications.Action) (notifications.Handle, error) {
	if owner.destroyed {
		return nil, notifications.ErrSourceDestroyed
	}
	id, err := owner.host.notify(0, owner, content, actions)
	if err != nil {
		return nil, err
	}

	shown := &handle{owner: owner, id: id, content: content, actions: actions}
	owner.host.handles[id] = shown
	owner.live = append(owner.live, shown)
	return shown, nil
}

// SetTitle renames the application on notifications still on screen.
func (owner *source) SetTitle(title string) {
	if owner.destroyed || title == "" || title == owner.appName {
		return
	}
	owner.appName = title
	for _, shown := range owner.live {
		if err := shown.Update(shown.content, shown.actions); err != nil {
			owner.host.logger.Warn().Err(err).Msg("retitle notification")
		}
	}
}

func (owner *source) CountUpdated(count int) {
	owner.host.logger.Debug().Str("source", owner.appName).Int("count", count).Msg("notification count")
}

func (owner *source) Destroy() {
	if owner.destroyed {
		return
	}
	owner.destroyed = true
	for _, shown := range append([]*handle(nil), owner.live...) {
		shown.Destroy(notifications.ReasonSourceClosed)
	}
}

func (owner *source) forget(target *handle) {
	for index, shown := range owner.live {
		if shown == target {
			owner.live = append(owner.live[:index], owner.live[index+1:]...)
			return
		}
	}
}

type handle struct {
	owner    *source
	id       uint32
	content  notifications.Content
	actions  []notifications.Action
	closed   bool
	onClosed func(notifications.DestroyReason)
}

func (shown *handle) Update(content notifications.Content, actions []notifications.Action) error {
	if shown.closed {
		return nil
	}
	host := shown.owner.host
	id, err := host.notify(shown.id, shown.owner, content, actions)
	if err != nil {
		return err
	}
	shown.content = content
	shown.actions = actions
	if id != shown.id {
		delete(host.handles, shown.id)
		shown.id = id
		host.handles[id] = shown
	}
	return nil
}

func (shown *handle) Destroy(reason notifications.DestroyReason) {
	if shown.closed {
		return
	}
	shown.closed = true
	host := shown.owner.host
	delete(host.handles, shown.id)
	shown.owner.forget(shown)

	if err := host.closeNotification(shown.id); err != nil {
		host.logger.Warn().Err(err).Uint32("id", shown.id).Str("reason", reason.String()).Msg("close notification")
	}
}

func (shown *handle) OnClosed(handler func(notifications.DestroyReason)) {
	shown.onClosed = handler
}
