// Package freedesktop shows notifications through the
// org.freedesktop.Notifications D-Bus service.
package freedesktop

import (
	"strconv"
	"strings"

	"pomonotify/internal/notifications"

	"github.com/godbus/dbus/v5"
)

const (
	dbusNotifyDest      = "org.freedesktop.Notifications"
	dbusNotifyPath      = "/org/freedesktop/Notifications"
	dbusNotifyInterface = "org.freedesktop.Notifications"

	actionKeyPrefix = "action-"

	// Expiration timeouts in milliseconds.
	timeoutServerDefault int32 = -1
	timeoutNever         int32 = 0
)

// Close reasons of the NotificationClosed signal.
const (
	closedExpired   uint32 = 1
	closedDismissed uint32 = 2
	closedByCall    uint32 = 3
)

// Config identifies the application to the notification server.
type Config struct {
	AppName      string
	DesktopEntry string
}

func urgencyByte(urgency notifications.Urgency) byte {
	switch urgency {
	case notifications.UrgencyLow:
		return 0
	case notifications.UrgencyCritical:
		return 2
	default:
		return 1
	}
}

func buildHints(content notifications.Content, desktopEntry string) map[string]dbus.Variant {
	hints := map[string]dbus.Variant{
		"urgency":   dbus.MakeVariant(urgencyByte(content.Urgency)),
		"resident":  dbus.MakeVariant(content.Resident),
		"transient": dbus.MakeVariant(content.Transient),
	}
	if desktopEntry != "" {
		hints["desktop-entry"] = dbus.MakeVariant(desktopEntry)
	}
	return hints
}

func expireTimeout(content notifications.Content) int32 {
	if content.Resident {
		return timeoutNever
	}
	return timeoutServerDefault
}

// actionList flattens actions into the key/label pairs Notify expects.
func actionList(actions []notifications.Action) []string {
	list := make([]string, 0, len(actions)*2)
	for index, action := range actions {
		list = append(list, actionKeyPrefix+strconv.Itoa(index), action.Label)
	}
	return list
}

func parseActionKey(key string) (int, bool) {
	if !strings.HasPrefix(key, actionKeyPrefix) {
		return 0, false
	}
	index, err := strconv.Atoi(strings.TrimPrefix(key, actionKeyPrefix))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func destroyReason(reason uint32) notifications.DestroyReason {
	switch reason {
	case closedExpired:
		return notifications.ReasonExpired
	case closedByCall:
		return notifications.ReasonSourceClosed
	default:
		return notifications.ReasonDismissed
	}
}

var screenSaverInterfaces = []string{"org.gnome.ScreenSaver", "org.freedesktop.ScreenSaver"}

// screenSaverActive extracts the state of an ActiveChanged signal.
func screenSaverActive(signal *dbus.Signal) (active, ok bool) {
	if signal == nil || len(signal.Body) != 1 {
		return false, false
	}
	for _, iface := range screenSaverInterfaces {
		if signal.Name == iface+".ActiveChanged" {
			active, ok = signal.Body[0].(bool)
			return active, ok
		}
	}
	return false, false
}
