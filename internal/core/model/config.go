package model

import "time"

// TimerConfig contains the phase durations of the pomodoro cycle.
type TimerConfig struct {
	PomodoroDuration   time.Duration
	ShortBreakDuration time.Duration
	LongBreakDuration  time.Duration

	// LongBreakInterval is the number of pomodoros completed before a long
	// break replaces the short one.
	LongBreakInterval int
}

// DefaultTimerConfig returns the classic 25/5/15 cycle.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		PomodoroDuration:   25 * time.Minute,
		ShortBreakDuration: 5 * time.Minute,
		LongBreakDuration:  15 * time.Minute,
		LongBreakInterval:  4,
	}
}

// Normalized fills zero or negative values with defaults.
func (config TimerConfig) Normalized() TimerConfig {
	defaults := DefaultTimerConfig()
	if config.PomodoroDuration <= 0 {
		config.PomodoroDuration = defaults.PomodoroDuration
	}
	if config.ShortBreakDuration <= 0 {
		config.ShortBreakDuration = defaults.ShortBreakDuration
	}
	if config.LongBreakDuration <= 0 {
		config.LongBreakDuration = defaults.LongBreakDuration
	}
	if config.LongBreakInterval <= 0 {
		config.LongBreakInterval = defaults.LongBreakInterval
	}
	return config
}
