//go:build !linux

package freedesktop

import (
	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/notifications"

	"github.com/rs/zerolog"
)

// New always fails: the notification server is only reachable on Linux.
func New(_ *eventloop.Loop, _ Config, _ zerolog.Logger) (*Host, error) {
	return nil, notifications.ErrHostUnavailable
}

// WatchScreenSaver always fails outside Linux.
func WatchScreenSaver(_ *eventloop.Loop, _ zerolog.Logger, _ func(locked bool)) (func() error, error) {
	return nil, notifications.ErrHostUnavailable
}
