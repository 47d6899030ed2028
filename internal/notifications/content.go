package notifications

import (
	"math"
	"time"

	"pomonotify/internal/core/timer"
)

// Urgency is the presentation priority of a notification.
type Urgency int

const (
	UrgencyLow Urgency = iota
	UrgencyNormal
	UrgencyHigh
	UrgencyCritical
)

func (urgency Urgency) String() string {
	switch urgency {
	case UrgencyLow:
		return "low"
	case UrgencyNormal:
		return "normal"
	case UrgencyHigh:
		return "high"
	case UrgencyCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// Kind selects which content rules a notification follows.
type Kind int

const (
	// KindStart pre-announces the pomodoro that follows a break.
	KindStart Kind = iota + 1
	// KindEnd announces the end of a pomodoro and prompts for the break.
	KindEnd
	// KindScreenShield mirrors the timer while the screen is locked.
	KindScreenShield
	// KindIssue reports a problem; it does not follow the timer.
	KindIssue
)

func (kind Kind) String() string {
	switch kind {
	case KindStart:
		return "pomodoro-start"
	case KindEnd:
		return "pomodoro-end"
	case KindScreenShield:
		return "screen-shield"
	case KindIssue:
		return "issue"
	default:
		return "unknown"
	}
}

const (
	// DefaultPreAnnouncement is how long before the end of a phase a
	// notification is escalated to critical urgency.
	DefaultPreAnnouncement = 10 * time.Second
	// DefaultExtendIncrement is added to the phase by the "+1 Minute" action.
	DefaultExtendIncrement = time.Minute

	minutesThreshold     = 45 * time.Second
	screenShieldRounding = 15
)

const pausedTitle = "Paused"

// Content is what a notification displays. Values are compared with == to
// decide whether anything has to be redrawn.
type Content struct {
	Title     string
	Body      string
	Urgency   Urgency
	Resident  bool
	Transient bool
}

// WithResident returns a copy with the resident flag set and transient set to
// its complement.
func (content Content) WithResident(resident bool) Content {
	content.Resident = resident
	content.Transient = !resident
	return content
}

// Input is the slice of timer state the policy looks at.
type Input struct {
	State     timer.State
	Paused    bool
	Remaining time.Duration
}

// InputFrom reads the policy input from a timer.
func InputFrom(source Timer) Input {
	return Input{
		State:     source.State(),
		Paused:    source.IsPaused(),
		Remaining: source.Remaining(),
	}
}

// Evaluate maps a timer snapshot to the content of a notification of the
// given kind. It reports false when the kind has no content for the state, in
// which case the previous content should be kept.
func Evaluate(kind Kind, input Input) (Content, bool) {
	switch kind {
	case KindStart:
		return evaluateStart(input)
	case KindEnd:
		return evaluateEnd(input)
	case KindScreenShield:
		return evaluateScreenShield(input)
	default:
		return Content{}, false
	}
}

func evaluateStart(input Input) (Content, bool) {
	var content Content
	switch input.State {
	case timer.StateShortBreak, timer.StateLongBreak:
		content = Content{Title: "Break is about to end", Urgency: UrgencyCritical}
	case timer.StatePomodoro:
		content = Content{Title: "Pomodoro", Urgency: UrgencyHigh}
	default:
		return Content{}, false
	}
	content = content.WithResident(false)
	content.Body = BodyText(input.Remaining)
	return content, true
}

func evaluateEnd(input Input) (Content, bool) {
	var content Content
	switch input.State {
	case timer.StatePomodoro:
		content = Content{Title: "Pomodoro is about to end", Urgency: UrgencyCritical}.WithResident(false)
	case timer.StateShortBreak, timer.StateLongBreak:
		content = Content{Title: "Take a break", Urgency: UrgencyHigh}.WithResident(true)
	default:
		return Content{}, false
	}
	content.Body = BodyText(input.Remaining)
	return content, true
}

func evaluateScreenShield(input Input) (Content, bool) {
	if input.State == timer.StateIdle {
		return Content{}, false
	}
	title := input.State.Label()
	if input.Paused {
		title = pausedTitle
	}
	content := Content{
		Title:   title,
		Body:    ScreenShieldBodyText(input.Remaining),
		Urgency: UrgencyHigh,
	}
	return content.WithResident(true), true
}

// DecayUrgency demotes critical urgency once the remaining time is back
// outside the pre-announcement window.
func DecayUrgency(urgency Urgency, remaining, window time.Duration) Urgency {
	if urgency == UrgencyCritical && remaining > window {
		return UrgencyHigh
	}
	return urgency
}

// BodyText formats the countdown shown in the notification body.
func BodyText(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := remaining.Seconds()
	if remaining > minutesThreshold {
		return minutesRemaining(int(math.Round(seconds / 60)))
	}
	return secondsRemaining(int(math.Round(math.Mod(seconds, 60))))
}

// ScreenShieldBodyText is BodyText with the seconds rounded up to a multiple
// of 15 while more than 15 seconds remain, so the lock screen changes less
// often.
func ScreenShieldBodyText(remaining time.Duration) string {
	if remaining < 0 {
		remaining = 0
	}
	seconds := remaining.Seconds()
	if remaining > minutesThreshold {
		return minutesRemaining(int(math.Round(seconds / 60)))
	}
	rounded := int(math.Round(math.Mod(seconds, 60)))
	if seconds > screenShieldRounding {
		rounded = int(math.Ceil(float64(rounded)/screenShieldRounding)) * screenShieldRounding
	}
	return secondsRemaining(rounded)
}
