package timer

import (
	"testing"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTimer(t *testing.T) *Timer {
	t.Helper()
	config := model.TimerConfig{
		PomodoroDuration:   25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
		LongBreakInterval:  2,
	}
	return New(eventloop.New(zerolog.Nop()), config, Options{}, zerolog.Nop())
}

func TestSetStateEmitsStateChangedThenUpdate(t *testing.T) {
	keeper := newTestTimer(t)
	var events []string
	keeper.OnStateChanged(func() { events = append(events, "state-changed") })
	keeper.OnUpdate(func() { events = append(events, "update") })

	keeper.SetState(StatePomodoro)

	assert.Equal(t, []string{"state-changed", "update"}, events)
	assert.Equal(t, StatePomodoro, keeper.State())
	assert.Equal(t, 25*time.Minute, keeper.StateDuration())
	assert.Equal(t, 25*time.Minute, keeper.Remaining())
}

func TestAdvanceCountsDown(t *testing.T) {
	keeper := newTestTimer(t)
	keeper.SetState(StatePomodoro)
	updates := 0
	keeper.OnUpdate(func() { updates++ })

	keeper.Advance(time.Minute)

	assert.Equal(t, 1, updates)
	assert.Equal(t, time.Minute, keeper.Elapsed())
	assert.Equal(t, 24*time.Minute, keeper.Remaining())
}

func TestAdvanceIgnoredWhilePausedOrIdle(t *testing.T) {
	keeper := newTestTimer(t)
	keeper.Advance(time.Minute)
	assert.Zero(t, keeper.Elapsed())

	keeper.SetState(StatePomodoro)
	keeper.Pause()
	keeper.Advance(time.Minute)
	assert.Zero(t, keeper.Elapsed())
	assert.True(t, keeper.IsPaused())

	keeper.Resume()
	keeper.Advance(time.Minute)
	assert.Equal(t, time.Minute, keeper.Elapsed())
}

func TestPhaseCycle(t *testing.T) {
	keeper := newTestTimer(t)
	keeper.SetState(StatePomodoro)

	keeper.Advance(25 * time.Minute)
	require.Equal(t, StateShortBreak, keeper.State())
	assert.Equal(t, 1, keeper.CompletedPomodoros())

	keeper.Advance(5 * time.Minute)
	require.Equal(t, StatePomodoro, keeper.State())

	keeper.Advance(25 * time.Minute)
	require.Equal(t, StateLongBreak, keeper.State())
	assert.True(t, keeper.IsBreak())
	assert.Equal(t, 15*time.Minute, keeper.Remaining())
}

func TestSetStateDurationExtendsPhase(t *testing.T) {
	keeper := newTestTimer(t)
	keeper.SetState(StateShortBreak)
	keeper.Advance(5*time.Minute - 5*time.Second)
	require.Equal(t, 5*time.Second, keeper.Remaining())

	keeper.SetStateDuration(keeper.StateDuration() + time.Minute)

	assert.Equal(t, StateShortBreak, keeper.State())
	assert.Equal(t, 65*time.Second, keeper.Remaining())
}

func TestSkipAndReset(t *testing.T) {
	keeper := newTestTimer(t)
	keeper.Skip()
	assert.Equal(t, StatePomodoro, keeper.State())

	keeper.Skip()
	assert.Equal(t, StateShortBreak, keeper.State())

	keeper.Reset()
	assert.Equal(t, StateIdle, keeper.State())
	assert.Zero(t, keeper.Remaining())
}

func TestDisconnect(t *testing.T) {
	keeper := newTestTimer(t)
	calls := 0
	stateID := keeper.OnStateChanged(func() { calls++ })
	updateID := keeper.OnUpdate(func() { calls++ })

	keeper.Disconnect(stateID)
	keeper.Disconnect(updateID)
	keeper.SetState(StatePomodoro)

	assert.Zero(t, calls)
}

func TestStateLabels(t *testing.T) {
	assert.Equal(t, "Pomodoro", StatePomodoro.Label())
	assert.Equal(t, "Short Break", StateShortBreak.Label())
	assert.Equal(t, "Long Break", StateLongBreak.Label())
	assert.Empty(t, StateIdle.Label())

	state, ok := ParseState("long-break")
	assert.True(t, ok)
	assert.Equal(t, StateLongBreak, state)

	_, ok = ParseState("lunch")
	assert.False(t, ok)
}
