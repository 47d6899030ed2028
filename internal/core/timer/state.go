package timer

// State represents the current timer phase.
type State string

const (
	StateIdle       State = "null"
	StatePomodoro   State = "pomodoro"
	StateShortBreak State = "short-break"
	StateLongBreak  State = "long-break"
)

// IsBreak reports whether the state is a short or long break.
func (state State) IsBreak() bool {
	return state == StateShortBreak || state == StateLongBreak
}

// Label returns the user facing name of the state. Idle has no label.
func (state State) Label() string {
	switch state {
	case StatePomodoro:
		return "Pomodoro"
	case StateShortBreak:
		return "Short Break"
	case StateLongBreak:
		return "Long Break"
	default:
		return ""
	}
}

// ParseState converts a stored state name back to a State.
func ParseState(value string) (State, bool) {
	switch State(value) {
	case StateIdle, StatePomodoro, StateShortBreak, StateLongBreak:
		return State(value), true
	default:
		return StateIdle, false
	}
}
