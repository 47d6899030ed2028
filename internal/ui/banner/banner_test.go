package banner

import (
	"testing"
	"time"

	"pomonotify/internal/core/timer"
	"pomonotify/internal/notifications"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndBannerMirrorsNotification(t *testing.T) {
	h := newHarness(t)
	h.enterAt(timer.StatePomodoro, 8*time.Second)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}

	banner := New(notification, surface, h.loop)

	assert.False(t, banner.Frozen())
	assert.Equal(t, "Pomodoro is about to end", surface.title())
	assert.Equal(t, "8 seconds remaining", surface.body())
	assert.Equal(t, []string{"Skip Break", "+1 Minute"}, surface.liveActions())
	assert.Equal(t, 1, surface.unexpands)

	h.timer.Advance(time.Second)
	assert.Equal(t, "7 seconds remaining", surface.body())
}

func TestEndBannerFreezesAcrossPhaseChangeWhileMapped(t *testing.T) {
	h := newHarness(t)
	h.enterAt(timer.StatePomodoro, 3*time.Second)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}
	banner := New(notification, surface, h.loop)

	h.timer.Advance(3 * time.Second)
	require.Equal(t, timer.StateShortBreak, h.timer.State())

	assert.True(t, banner.Frozen())
	assert.Equal(t, "Take a break", notification.Title())
	assert.Equal(t, "Pomodoro is about to end", surface.title())
	assert.Equal(t, "3 seconds remaining", surface.body())

	surface.mapped = false
	h.timer.Advance(time.Second)

	assert.False(t, banner.Frozen())
	assert.Equal(t, "Short Break", surface.title())
	assert.Equal(t, "5 minutes remaining", surface.body())
}

func TestStartBannerFollowsPhaseChangeWhileMapped(t *testing.T) {
	h := newHarness(t)
	h.enterAt(timer.StateShortBreak, 3*time.Second)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}
	banner := New(notification, surface, h.loop)

	h.timer.Advance(3 * time.Second)
	require.Equal(t, timer.StatePomodoro, h.timer.State())

	assert.False(t, banner.Frozen())
	assert.Equal(t, "Pomodoro", surface.title())
}

func TestSkipBreakClosesBannerAndStartsPomodoro(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StateShortBreak)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}
	banner := New(notification, surface, h.loop)
	require.Equal(t, "Short Break", surface.title())

	require.True(t, surface.invoke("Skip Break"))

	assert.Equal(t, timer.StatePomodoro, h.timer.State())
	assert.Equal(t, 1, surface.closed)
	assert.True(t, banner.Closed())
	assert.Equal(t, "Short Break", surface.title(), "closed banner is not rewritten")
	assert.False(t, notification.Destroying())

	h.loop.Drain()
	assert.False(t, banner.Frozen())
}

func TestExtendHoldsBannerUntilIdle(t *testing.T) {
	h := newHarness(t)
	h.enterAt(timer.StatePomodoro, 5*time.Second)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	notification.Show()
	surface := &fakeSurface{mapped: true}
	banner := New(notification, surface, h.loop)
	bodies := len(surface.bodies)

	require.True(t, surface.invoke("+1 Minute"))

	assert.Equal(t, 26*time.Minute, h.timer.StateDuration())
	assert.True(t, banner.Frozen())
	assert.Len(t, surface.bodies, bodies, "held while the action is pending")
	assert.Equal(t, notifications.UrgencyHigh, notification.Content().Urgency)

	h.loop.Drain()
	assert.False(t, banner.Frozen())
	assert.False(t, notification.PreventingAutoClose())

	h.timer.Advance(time.Second)
	assert.Equal(t, "1 minute remaining", surface.body())
}

func TestStartBannerExtendOnlyDuringBreaks(t *testing.T) {
	h := newHarness(t)
	h.enterAt(timer.StateShortBreak, 9*time.Second)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}
	New(notification, surface, h.loop)

	assert.Equal(t, "Break is about to end", surface.title())
	assert.Equal(t, []string{"+1 Minute"}, surface.liveActions())

	h.timer.Advance(9 * time.Second)
	require.Equal(t, timer.StatePomodoro, h.timer.State())

	assert.Equal(t, "Pomodoro", surface.title(), "start banners follow the new phase")
	assert.Empty(t, surface.liveActions())

	h.timer.SetState(timer.StateLongBreak)
	assert.Equal(t, []string{"+1 Minute"}, surface.liveActions())
	assert.Len(t, surface.actions, 2)
}

func TestBannerClosesWithNotification(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StatePomodoro)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}
	banner := New(notification, surface, h.loop)
	bodies := len(surface.bodies)

	notification.Destroy(notifications.ReasonDismissed)

	assert.True(t, banner.Closed())
	assert.Equal(t, 1, surface.closed)

	h.timer.Advance(10 * time.Minute)
	assert.Len(t, surface.bodies, bodies)
}

func TestBannerStopsWhenSurfaceCloses(t *testing.T) {
	h := newHarness(t)
	h.timer.SetState(timer.StatePomodoro)
	notification := notifications.NewNotification(notifications.KindStart, h.timer, h.registry)
	surface := &fakeSurface{mapped: true}
	banner := New(notification, surface, h.loop)
	bodies := len(surface.bodies)

	surface.Close()

	assert.True(t, banner.Closed())
	assert.False(t, notification.Destroying(), "the notification stays in the tray")
	h.timer.Advance(10 * time.Minute)
	assert.Len(t, surface.bodies, bodies)

	banner.Close()
	assert.Equal(t, 1, surface.closed)
}

func TestBannerForDestroyedNotification(t *testing.T) {
	h := newHarness(t)
	notification := notifications.NewNotification(notifications.KindEnd, h.timer, h.registry)
	notification.Destroy(notifications.ReasonDismissed)
	surface := &fakeSurface{}

	banner := New(notification, surface, h.loop)

	assert.True(t, banner.Closed())
	assert.Equal(t, 1, surface.closed)
	assert.Empty(t, surface.actions)
}

func TestExtendLabel(t *testing.T) {
	assert.Equal(t, "+1 Minute", extendLabel(time.Minute))
	assert.Equal(t, "+1 Minute", extendLabel(30*time.Second))
	assert.Equal(t, "+5 Minutes", extendLabel(5*time.Minute))
}
