package notifications

import (
	"errors"
	"time"

	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"
)

var (
	// ErrSourceDestroyed is returned when a notification is shown through a
	// source that was already torn down.
	ErrSourceDestroyed = errors.New("notification source destroyed")
	// ErrHostUnavailable indicates the notification host could not be reached.
	ErrHostUnavailable = errors.New("notification host unavailable")
)

// Timer is the view of the pomodoro timer the notifications need.
type Timer interface {
	State() timer.State
	IsPaused() bool
	IsBreak() bool
	Remaining() time.Duration
	StateDuration() time.Duration
	SetStateDuration(duration time.Duration)
	SetState(state timer.State)
	Skip()
	OnStateChanged(handler func()) signal.HandlerID
	OnUpdate(handler func()) signal.HandlerID
	Disconnect(id signal.HandlerID)
}

// DestroyReason tells why a notification went away.
type DestroyReason int

const (
	ReasonDismissed DestroyReason = iota + 1
	ReasonExpired
	ReasonSourceClosed
	ReasonReplaced
)

func (reason DestroyReason) String() string {
	switch reason {
	case ReasonDismissed:
		return "dismissed"
	case ReasonExpired:
		return "expired"
	case ReasonSourceClosed:
		return "source-closed"
	case ReasonReplaced:
		return "replaced"
	default:
		return "unknown"
	}
}

// Action is a button shown on a notification.
type Action struct {
	Label    string
	Callback func()
}

// Host creates tray sources on the desktop notification service.
//
// Callbacks a host hands back (action invocations, OnClosed handlers) must be
// delivered on the event loop goroutine.
type Host interface {
	NewSource(displayName, iconName string) (HostSource, error)
}

// HostSource groups the notifications of one application in the tray.
type HostSource interface {
	Show(content Content, actions []Action) (Handle, error)
	SetTitle(title string)
	CountUpdated(count int)
	Destroy()
}

// Handle is a notification displayed by the host.
type Handle interface {
	Update(content Content, actions []Action) error
	Destroy(reason DestroyReason)
	OnClosed(handler func(reason DestroyReason))
}

// TrayHost exposes the ambient tray behaviour TrayMode overrides while the
// timer is running.
type TrayHost interface {
	HideDoNotDisturb()
	ShowDoNotDisturb()
	SuppressAutoExpand(match func(*Notification) bool)
	RestoreAutoExpand()
}
