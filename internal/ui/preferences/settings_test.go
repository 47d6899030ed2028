package preferences

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettingsConvert(t *testing.T) {
	settings := DefaultSettings()

	timer := settings.TimerConfig()
	assert.Equal(t, 25*time.Minute, timer.PomodoroDuration)
	assert.Equal(t, 4, timer.LongBreakInterval)

	options := settings.NotificationOptions()
	assert.Equal(t, 10*time.Second, options.PreAnnouncement)
	assert.Equal(t, time.Minute, options.ExtendIncrement)
	assert.Equal(t, "Pomodoro Timer", options.SourceName)

	dispatcher := settings.DispatcherOptions()
	assert.True(t, dispatcher.StartNotifications)
	assert.True(t, dispatcher.EndNotifications)
	assert.True(t, dispatcher.ScreenShield)
}

func TestTimerConfigIsNormalized(t *testing.T) {
	settings := DefaultSettings()
	settings.LongBreakInterval = 0

	assert.Equal(t, 4, settings.TimerConfig().LongBreakInterval)
}

func TestFormRoundTrip(t *testing.T) {
	settings := DefaultSettings()

	assert.Equal(t, settings, applyValues(settings, valuesFromSettings(settings)))
}

func TestApplyValues(t *testing.T) {
	values := valuesFromSettings(DefaultSettings())
	values.Pomodoro = " 50 "
	values.ShortBreak = "ten"
	values.LongBreakInterval = "-2"
	values.PreAnnouncement = "30"
	values.ExtendIncrement = "2"
	values.ScreenShield = false
	values.LogLevel = "debug"

	settings := applyValues(DefaultSettings(), values)

	assert.Equal(t, 50*time.Minute, settings.PomodoroDuration)
	assert.Equal(t, 5*time.Minute, settings.ShortBreakDuration, "invalid entry keeps the previous value")
	assert.Equal(t, 4, settings.LongBreakInterval)
	assert.Equal(t, 30*time.Second, settings.PreAnnouncement)
	assert.Equal(t, 2*time.Minute, settings.ExtendIncrement)
	assert.False(t, settings.ScreenShield)
	assert.Equal(t, "debug", settings.LogLevel)
}
