package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pomonotify/internal/ui/preferences"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	PomodoroMinutes        int    `yaml:"pomodoro_minutes"`
	ShortBreakMinutes      int    `yaml:"short_break_minutes"`
	LongBreakMinutes       int    `yaml:"long_break_minutes"`
	LongBreakInterval      int    `yaml:"long_break_interval"`
	PreAnnouncementSeconds int    `yaml:"pre_announcement_seconds"`
	ExtendMinutes          int    `yaml:"extend_minutes"`
	StartNotifications     *bool  `yaml:"start_notifications,omitempty"`
	EndNotifications       *bool  `yaml:"end_notifications,omitempty"`
	ScreenShield           *bool  `yaml:"screen_shield,omitempty"`
	Banners                *bool  `yaml:"banners,omitempty"`
	LogLevel               string `yaml:"log_level,omitempty"`
}

// DefaultPath returns the settings file location in the user config dir,
// creating the directory if needed.
func DefaultPath(appName string) (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(appName, settingsFileName))
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return path, nil
}

// LoadSettings reads user preferences from the YAML file at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the YAML file at path.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	fileData := yamlSettings{
		PomodoroMinutes:        int(settings.PomodoroDuration / time.Minute),
		ShortBreakMinutes:      int(settings.ShortBreakDuration / time.Minute),
		LongBreakMinutes:       int(settings.LongBreakDuration / time.Minute),
		LongBreakInterval:      settings.LongBreakInterval,
		PreAnnouncementSeconds: int(settings.PreAnnouncement / time.Second),
		ExtendMinutes:          int(settings.ExtendIncrement / time.Minute),
		StartNotifications:     &settings.StartNotifications,
		EndNotifications:       &settings.EndNotifications,
		ScreenShield:           &settings.ScreenShield,
		Banners:                &settings.Banners,
		LogLevel:               settings.LogLevel,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.PomodoroMinutes > 0 {
		settings.PomodoroDuration = time.Duration(fileData.PomodoroMinutes) * time.Minute
	}
	if fileData.ShortBreakMinutes > 0 {
		settings.ShortBreakDuration = time.Duration(fileData.ShortBreakMinutes) * time.Minute
	}
	if fileData.LongBreakMinutes > 0 {
		settings.LongBreakDuration = time.Duration(fileData.LongBreakMinutes) * time.Minute
	}
	if fileData.LongBreakInterval > 0 {
		settings.LongBreakInterval = fileData.LongBreakInterval
	}
	if fileData.PreAnnouncementSeconds > 0 {
		settings.PreAnnouncement = time.Duration(fileData.PreAnnouncementSeconds) * time.Second
	}
	if fileData.ExtendMinutes > 0 {
		settings.ExtendIncrement = time.Duration(fileData.ExtendMinutes) * time.Minute
	}

	if fileData.StartNotifications != nil {
		settings.StartNotifications = *fileData.StartNotifications
	}
	if fileData.EndNotifications != nil {
		settings.EndNotifications = *fileData.EndNotifications
	}
	if fileData.ScreenShield != nil {
		settings.ScreenShield = *fileData.ScreenShield
	}
	if fileData.Banners != nil {
		settings.Banners = *fileData.Banners
	}
	if fileData.LogLevel != "" {
		settings.LogLevel = fileData.LogLevel
	}
}
