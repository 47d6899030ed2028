package banner

import (
	"testing"
	"time"

	"pomonotify/internal/core/timer"
	"pomonotify/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerMessageFollowsTimer(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StatePomodoro)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{}

	NewTimerMessage(h.timer, notification, surface)

	assert.Equal(t, []string{"Pomodoro"}, surface.titles)
	assert.Equal(t, "25 minutes remaining", surface.body())
	assert.Equal(t, []string{"Skip", "+1 Minute"}, surface.liveActions())

	h.timer.Pause()
	assert.Equal(t, "Paused", surface.title())

	h.timer.Resume()
	assert.Equal(t, "Pomodoro", surface.title())

	h.timer.Advance(24*time.Minute + 20*time.Second)
	assert.Equal(t, "40 seconds remaining", surface.body())
	assert.Len(t, surface.titles, 3, "title only moves with phase or pause")
}

func TestTimerMessageKeepsBodyWhenIdle(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StateShortBreak)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	surface := &fakeSurface{}
	NewTimerMessage(h.timer, notification, surface)
	bodies := len(surface.bodies)

	h.timer.Reset()

	assert.Equal(t, "Short Break", surface.title())
	assert.Len(t, surface.bodies, bodies)
}

func TestTimerMessageSkip(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StatePomodoro)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{}
	message := NewTimerMessage(h.timer, notification, surface)

	require.True(t, surface.invoke("Skip"))

	assert.Equal(t, timer.StateShortBreak, h.timer.State())
	assert.True(t, notification.Destroying())
	assert.Equal(t, notifications.ReasonDismissed, notification.Reason())
	assert.True(t, message.Closed())
	assert.Equal(t, 1, surface.closed)
}

func TestTimerMessageExtend(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StateShortBreak)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	surface := &fakeSurface{}
	NewTimerMessage(h.timer, notification, surface)

	require.True(t, surface.invoke("+1 Minute"))

	assert.Equal(t, 6*time.Minute, h.timer.StateDuration())
	assert.Equal(t, "6 minutes remaining", surface.body())
	assert.False(t, notification.Destroying())
}

func TestTimerMessageStopsWhenSurfaceCloses(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StatePomodoro)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{}
	message := NewTimerMessage(h.timer, notification, surface)
	bodies := len(surface.bodies)

	surface.Close()
	h.timer.Advance(10 * time.Minute)

	assert.True(t, message.Closed())
	assert.Len(t, surface.bodies, bodies)

	surface.invoke("Skip")
	assert.Equal(t, timer.StatePomodoro, h.timer.State(), "closed message ignores its buttons")
}
