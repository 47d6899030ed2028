package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"pomonotify/internal/ui/preferences"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettings(filepath.Join(t.TempDir(), "settings.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pomonotify", "settings.yaml")
	settings := preferences.DefaultSettings()
	settings.PomodoroDuration = 50 * time.Minute
	settings.PreAnnouncement = 30 * time.Second
	settings.ScreenShield = false
	settings.LogLevel = "debug"

	require.NoError(t, SaveSettings(path, settings))
	loaded, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, settings, loaded)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pomodoro_minutes: 45\nend_notifications: false\nshort_break_minutes: -1\n"), 0o644))

	settings, err := LoadSettings(path)

	require.NoError(t, err)
	assert.Equal(t, 45*time.Minute, settings.PomodoroDuration)
	assert.Equal(t, 5*time.Minute, settings.ShortBreakDuration)
	assert.False(t, settings.EndNotifications)
	assert.True(t, settings.StartNotifications)
	assert.True(t, settings.Banners)
}

func TestLoadInvalidYaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pomodoro_minutes: [oops"), 0o644))

	settings, err := LoadSettings(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestDefaultPathUsesConfigHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	path, err := DefaultPath("pomonotify")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "pomonotify", "settings.yaml"), path)
	assert.DirExists(t, filepath.Dir(path))
}
