//go:build linux

package freedesktop

import (
	"fmt"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/notifications"

	"github.com/godbus/dbus/v5"
	"github.com/rs/zerolog"
)

// New connects to the session bus and checks that a notification server is
// running. Errors wrap notifications.ErrHostUnavailable.
func New(loop *eventloop.Loop, config Config, logger zerolog.Logger) (*Host, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", notifications.ErrHostUnavailable, err)
	}

	obj := conn.Object(dbusNotifyDest, dbusNotifyPath)
	var name, vendor, version, specVersion string
	call := obj.Call(dbusNotifyInterface+".GetServerInformation", 0)
	if err := call.Store(&name, &vendor, &version, &specVersion); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: %v", notifications.ErrHostUnavailable, err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchObjectPath(dbusNotifyPath),
		dbus.WithMatchInterface(dbusNotifyInterface),
	)
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("subscribe to notification signals: %w", err)
	}

	host := newHost(obj, loop, config, logger)
	host.logger.Info().
		Str("server", name).
		Str("vendor", vendor).
		Str("version", version).
		Str("spec_version", specVersion).
		Msg("notification server found")

	signals := make(chan *dbus.Signal, 16)
	done := make(chan struct{})
	conn.Signal(signals)
	go func() {
		for {
			select {
			case <-done:
				return
			case signal, ok := <-signals:
				if !ok {
					return
				}
				loop.Post(func() {
					host.handleSignal(signal)
				})
			}
		}
	}()

	host.closer = func() error {
		close(done)
		conn.RemoveSignal(signals)
		return conn.Close()
	}
	return host, nil
}

// WatchScreenSaver calls onChange on the event loop whenever the session's
// screen saver is activated or deactivated. The returned function stops
// watching.
func WatchScreenSaver(loop *eventloop.Loop, logger zerolog.Logger, onChange func(locked bool)) (func() error, error) {
	conn, err := dbus.ConnectSessionBus()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", notifications.ErrHostUnavailable, err)
	}

	for _, iface := range screenSaverInterfaces {
		err := conn.AddMatchSignal(
			dbus.WithMatchInterface(iface),
			dbus.WithMatchMember("ActiveChanged"),
		)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("subscribe to %s: %w", iface, err)
		}
	}

	logger = logger.With().Str("component", "screensaver").Logger()
	signals := make(chan *dbus.Signal, 4)
	done := make(chan struct{})
	conn.Signal(signals)
	go func() {
		for {
			select {
			case <-done:
				return
			case signal, ok := <-signals:
				if !ok {
					return
				}
				active, ok := screenSaverActive(signal)
				if !ok {
					continue
				}
				logger.Debug().Bool("active", active).Msg("screen saver changed")
				loop.Post(func() {
					onChange(active)
				})
			}
		}
	}()

	return func() error {
		close(done)
		conn.RemoveSignal(signals)
		return conn.Close()
	}, nil
}
