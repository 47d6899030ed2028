//go:build linux

package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Enable writes the XDG autostart entry launching execPath.
func (autostart *Autostart) Enable(execPath string) error {
	if execPath == "" {
		return fmt.Errorf("enable autostart: exec path is empty")
	}

	autostartDir := filepath.Join(autostart.configDir, "autostart")
	if err := os.MkdirAll(autostartDir, 0o755); err != nil {
		return fmt.Errorf("enable autostart: create autostart dir: %w", err)
	}

	entry := buildDesktopEntry(autostart.appName, execPath)
	if err := os.WriteFile(autostart.entryPath(), []byte(entry), 0o644); err != nil {
		return fmt.Errorf("enable autostart: write desktop entry: %w", err)
	}
	return nil
}

// Disable removes the autostart entry. A missing entry is not an error.
func (autostart *Autostart) Disable() error {
	if err := os.Remove(autostart.entryPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("disable autostart: remove desktop entry: %w", err)
	}
	return nil
}

// Enabled reports whether the autostart entry exists.
func (autostart *Autostart) Enabled() bool {
	_, err := os.Stat(autostart.entryPath())
	return err == nil
}

func (autostart *Autostart) entryPath() string {
	return filepath.Join(autostart.configDir, "autostart", DesktopEntryName(autostart.appName)+".desktop")
}

func buildDesktopEntry(appName, execPath string) string {
	execLine := execPath
	if strings.Contains(execLine, " ") && !strings.HasPrefix(execLine, `"`) {
		execLine = `"` + execLine + `"`
	}

	return fmt.Sprintf(
		`[Desktop Entry]
Type=Application
Name=%s
Exec=%s
Icon=gnome-pomodoro-symbolic
X-GNOME-Autostart-enabled=true
Terminal=false
`,
		appName,
		execLine,
	)
}
