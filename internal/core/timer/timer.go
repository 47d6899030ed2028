// Package timer implements the pomodoro timer that drives the notifications.
package timer

import (
	"sync"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/model"
	"pomonotify/internal/core/signal"

	"github.com/rs/zerolog"
)

// Options contains runtime options for the Timer.
type Options struct {
	TickInterval time.Duration
}

// Timer is a state machine cycling through pomodoros and breaks.
//
// All methods except Start and Stop must be called from the event loop
// goroutine; the ticker only posts work onto the loop.
type Timer struct {
	loop    *eventloop.Loop
	logger  zerolog.Logger
	config  model.TimerConfig
	options Options

	state         State
	paused        bool
	elapsed       time.Duration
	stateDuration time.Duration
	completed     int

	stateChanged signal.Signal
	update       signal.Signal

	tickerMu sync.Mutex
	stopCh   chan struct{}
}

// New creates an idle Timer.
func New(loop *eventloop.Loop, config model.TimerConfig, options Options, logger zerolog.Logger) *Timer {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &Timer{
		loop:    loop,
		logger:  logger.With().Str("component", "timer").Logger(),
		config:  config.Normalized(),
		options: options,
		state:   StateIdle,
	}
}

// State returns the current phase.
func (keeper *Timer) State() State {
	return keeper.state
}

// IsPaused reports whether the timer is paused.
func (keeper *Timer) IsPaused() bool {
	return keeper.paused
}

// IsBreak reports whether the current phase is a break.
func (keeper *Timer) IsBreak() bool {
	return keeper.state.IsBreak()
}

// Elapsed returns the time spent in the current phase.
func (keeper *Timer) Elapsed() time.Duration {
	return keeper.elapsed
}

// StateDuration returns the length of the current phase.
func (keeper *Timer) StateDuration() time.Duration {
	return keeper.stateDuration
}

// Remaining returns the time left in the current phase, never negative.
func (keeper *Timer) Remaining() time.Duration {
	remaining := keeper.stateDuration - keeper.elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CompletedPomodoros returns the number of pomodoros finished since Start.
func (keeper *Timer) CompletedPomodoros() int {
	return keeper.completed
}

// SetStateDuration changes the length of the current phase.
func (keeper *Timer) SetStateDuration(duration time.Duration) {
	if keeper.state == StateIdle {
		return
	}
	if duration < 0 {
		duration = 0
	}
	keeper.stateDuration = duration
	keeper.update.Emit()
	keeper.completeIfElapsed()
}

// SetState switches to the given phase and restarts its countdown.
func (keeper *Timer) SetState(state State) {
	previous := keeper.state
	keeper.state = state
	keeper.elapsed = 0
	keeper.stateDuration = keeper.durationFor(state)
	if state == StateIdle {
		keeper.paused = false
		keeper.completed = 0
	}

	keeper.logger.Debug().
		Str("from", string(previous)).
		Str("to", string(state)).
		Dur("duration", keeper.stateDuration).
		Msg("state changed")

	keeper.stateChanged.Emit()
	keeper.update.Emit()
}

// Skip moves on to the phase that follows the current one.
func (keeper *Timer) Skip() {
	keeper.SetState(keeper.nextState())
}

// Pause freezes the countdown.
func (keeper *Timer) Pause() {
	if keeper.paused || keeper.state == StateIdle {
		return
	}
	keeper.paused = true
	keeper.update.Emit()
}

// Resume unfreezes the countdown.
func (keeper *Timer) Resume() {
	if !keeper.paused {
		return
	}
	keeper.paused = false
	keeper.update.Emit()
}

// Reset returns the timer to idle.
func (keeper *Timer) Reset() {
	if keeper.state == StateIdle {
		return
	}
	keeper.SetState(StateIdle)
}

// OnStateChanged connects a handler fired on every phase transition.
func (keeper *Timer) OnStateChanged(handler func()) signal.HandlerID {
	return keeper.stateChanged.Connect(handler)
}

// OnUpdate connects a handler fired on every tick.
func (keeper *Timer) OnUpdate(handler func()) signal.HandlerID {
	return keeper.update.Connect(handler)
}

// Disconnect releases a handler connected with OnStateChanged or OnUpdate.
func (keeper *Timer) Disconnect(id signal.HandlerID) {
	if keeper.stateChanged.Disconnect(id) {
		return
	}
	keeper.update.Disconnect(id)
}

// Advance moves the countdown forward by delta.
func (keeper *Timer) Advance(delta time.Duration) {
	if keeper.state == StateIdle || keeper.paused || delta <= 0 {
		return
	}
	keeper.elapsed += delta
	if keeper.completeIfElapsed() {
		return
	}
	keeper.update.Emit()
}

// Start begins a pomodoro, if idle, and launches the ticker.
func (keeper *Timer) Start() {
	keeper.tickerMu.Lock()
	if keeper.stopCh == nil {
		keeper.stopCh = make(chan struct{})
		go keeper.run(keeper.stopCh)
	}
	keeper.tickerMu.Unlock()

	keeper.loop.Post(func() {
		if keeper.state == StateIdle {
			keeper.SetState(StatePomodoro)
		}
	})
}

// Stop halts the ticker and returns the timer to idle.
func (keeper *Timer) Stop() {
	keeper.tickerMu.Lock()
	if keeper.stopCh != nil {
		close(keeper.stopCh)
		keeper.stopCh = nil
	}
	keeper.tickerMu.Unlock()

	keeper.loop.Post(keeper.Reset)
}

// UpdateConfig applies new phase durations from the next transition on.
func (keeper *Timer) UpdateConfig(config model.TimerConfig) {
	keeper.config = config.Normalized()
}

func (keeper *Timer) run(stopCh chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			keeper.loop.Post(func() {
				keeper.Advance(keeper.options.TickInterval)
			})
		}
	}
}

func (keeper *Timer) completeIfElapsed() bool {
	if keeper.elapsed < keeper.stateDuration {
		return false
	}
	if keeper.state == StatePomodoro {
		keeper.completed++
	}
	keeper.SetState(keeper.nextState())
	return true
}

func (keeper *Timer) nextState() State {
	switch keeper.state {
	case StatePomodoro:
		if keeper.completed > 0 && keeper.completed%keeper.config.LongBreakInterval == 0 {
			return StateLongBreak
		}
		return StateShortBreak
	default:
		return StatePomodoro
	}
}

func (keeper *Timer) durationFor(state State) time.Duration {
	switch state {
	case StatePomodoro:
		return keeper.config.PomodoroDuration
	case StateShortBreak:
		return keeper.config.ShortBreakDuration
	case StateLongBreak:
		return keeper.config.LongBreakDuration
	default:
		return 0
	}
}
