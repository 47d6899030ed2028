package platform

import (
	"errors"
	"strings"

	"github.com/adrg/xdg"
)

// ErrAutostartUnsupported is returned where login items are not implemented.
var ErrAutostartUnsupported = errors.New("autostart not supported on this platform")

// Autostart manages the login item starting the timer with the session.
type Autostart struct {
	appName   string
	configDir string
}

// NewAutostart returns the login item manager for appName in the user's
// config dir.
func NewAutostart(appName string) (*Autostart, error) {
	if strings.TrimSpace(appName) == "" {
		return nil, errors.New("autostart: app name is empty")
	}
	return &Autostart{appName: appName, configDir: xdg.ConfigHome}, nil
}

// DesktopEntryName returns the desktop file id for appName, without the
// .desktop suffix. Notification servers use it to find the app icon.
func DesktopEntryName(appName string) string {
	name := strings.ToLower(strings.TrimSpace(appName))
	if name == "" {
		name = "pomonotify"
	}
	return strings.ReplaceAll(name, " ", "-")
}
