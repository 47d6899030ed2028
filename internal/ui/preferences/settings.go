package preferences

import (
	"time"

	"pomonotify/internal/core/model"
	"pomonotify/internal/notifications"
)

// Settings defines editable user preferences.
type Settings struct {
	PomodoroDuration   time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration
	LongBreakInterval  int

	PreAnnouncement time.Duration
	ExtendIncrement time.Duration

	StartNotifications bool
	EndNotifications   bool
	ScreenShield       bool
	Banners            bool

	LogLevel string
}

// DefaultSettings returns default settings.
func DefaultSettings() Settings {
	timer := model.DefaultTimerConfig()
	return Settings{
		PomodoroDuration:   timer.PomodoroDuration,
		ShortBreakDuration: timer.ShortBreakDuration,
		LongBreakDuration:  timer.LongBreakDuration,
		LongBreakInterval:  timer.LongBreakInterval,
		PreAnnouncement:    notifications.DefaultPreAnnouncement,
		ExtendIncrement:    notifications.DefaultExtendIncrement,
		StartNotifications: true,
		EndNotifications:   true,
		ScreenShield:       true,
		Banners:            true,
		LogLevel:           "info",
	}
}

// TimerConfig converts settings to a TimerConfig.
func (settings Settings) TimerConfig() model.TimerConfig {
	return model.TimerConfig{
		PomodoroDuration:   settings.PomodoroDuration,
		ShortBreakDuration: settings.ShortBreakDuration,
		LongBreakDuration:  settings.LongBreakDuration,
		LongBreakInterval:  settings.LongBreakInterval,
	}.Normalized()
}

// NotificationOptions converts settings to registry options.
func (settings Settings) NotificationOptions() notifications.Options {
	options := notifications.DefaultOptions()
	options.PreAnnouncement = settings.PreAnnouncement
	options.ExtendIncrement = settings.ExtendIncrement
	return options
}

// DispatcherOptions converts settings to dispatcher options.
func (settings Settings) DispatcherOptions() notifications.DispatcherOptions {
	return notifications.DispatcherOptions{
		StartNotifications: settings.StartNotifications,
		EndNotifications:   settings.EndNotifications,
		ScreenShield:       settings.ScreenShield,
	}
}
