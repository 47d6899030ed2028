package notifications

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"

	"github.com/rs/zerolog"
)

type fakeTimer struct {
	state         timer.State
	paused        bool
	stateDuration time.Duration
	elapsed       time.Duration

	stateChanged signal.Signal
	update       signal.Signal
	disconnects  int
}

func (fake *fakeTimer) State() timer.State { return fake.state }
func (fake *fakeTimer) IsPaused() bool     { return fake.paused }
func (fake *fakeTimer) IsBreak() bool      { return fake.state.IsBreak() }

func (fake *fakeTimer) Remaining() time.Duration {
	if fake.stateDuration < fake.elapsed {
		return 0
	}
	return fake.stateDuration - fake.elapsed
}

func (fake *fakeTimer) StateDuration() time.Duration { return fake.stateDuration }

// SetStateDuration does not emit; the change is picked up by the next tick.
func (fake *fakeTimer) SetStateDuration(duration time.Duration) { fake.stateDuration = duration }

func (fake *fakeTimer) SetState(state timer.State) {
	fake.enter(state, 25*time.Minute)
}

func (fake *fakeTimer) Skip() {
	if fake.state == timer.StatePomodoro {
		fake.enter(timer.StateShortBreak, 5*time.Minute)
		return
	}
	fake.enter(timer.StatePomodoro, 25*time.Minute)
}

func (fake *fakeTimer) OnStateChanged(handler func()) signal.HandlerID {
	return fake.stateChanged.Connect(handler)
}

func (fake *fakeTimer) OnUpdate(handler func()) signal.HandlerID {
	return fake.update.Connect(handler)
}

func (fake *fakeTimer) Disconnect(id signal.HandlerID) {
	fake.disconnects++
	if fake.stateChanged.Disconnect(id) {
		return
	}
	fake.update.Disconnect(id)
}

// enter switches phase and fires state-changed followed by update, like the
// real timer.
func (fake *fakeTimer) enter(state timer.State, duration time.Duration) {
	fake.state = state
	fake.stateDuration = duration
	fake.elapsed = 0
	if state == timer.StateIdle {
		fake.stateDuration = 0
	}
	fake.stateChanged.Emit()
	fake.update.Emit()
}

// tickAt sets the remaining time and fires update.
func (fake *fakeTimer) tickAt(remaining time.Duration) {
	fake.elapsed = fake.stateDuration - remaining
	fake.update.Emit()
}

func (fake *fakeTimer) tick() {
	fake.update.Emit()
}

func (fake *fakeTimer) handlers() int {
	return fake.stateChanged.Len() + fake.update.Len()
}

type fakeHost struct {
	sources []*fakeSource
	err     error
}

func (host *fakeHost) NewSource(displayName, iconName string) (HostSource, error) {
	if host.err != nil {
		return nil, host.err
	}
	source := &fakeSource{name: displayName, icon: iconName}
	host.sources = append(host.sources, source)
	return source, nil
}

func (host *fakeHost) last() *fakeSource {
	if len(host.sources) == 0 {
		return nil
	}
	return host.sources[len(host.sources)-1]
}

type fakeSource struct {
	name      string
	icon      string
	titles    []string
	counts    []int
	handles   []*fakeHandle
	destroyed int
	showErr   error
}

func (source *fakeSource) Show(content Content, actions []Action) (Handle, error) {
	if source.showErr != nil {
		return nil, source.showErr
	}
	handle := &fakeHandle{updates: []Content{content}, actions: actions}
	source.handles = append(source.handles, handle)
	return handle, nil
}

func (source *fakeSource) SetTitle(title string) { source.titles = append(source.titles, title) }
func (source *fakeSource) CountUpdated(count int) {
	source.counts = append(source.counts, count)
}
func (source *fakeSource) Destroy() { source.destroyed++ }

type fakeHandle struct {
	updates   []Content
	actions   []Action
	destroyed []DestroyReason
	onClosed  func(DestroyReason)
}

func (handle *fakeHandle) Update(content Content, actions []Action) error {
	handle.updates = append(handle.updates, content)
	handle.actions = actions
	return nil
}

func (handle *fakeHandle) Destroy(reason DestroyReason) {
	handle.destroyed = append(handle.destroyed, reason)
}

func (handle *fakeHandle) OnClosed(handler func(DestroyReason)) { handle.onClosed = handler }

func (handle *fakeHandle) last() Content { return handle.updates[len(handle.updates)-1] }

func (handle *fakeHandle) invoke(label string) bool {
	for _, action := range handle.actions {
		if action.Label == label {
			action.Callback()
			return true
		}
	}
	return false
}

type harness struct {
	loop     *eventloop.Loop
	timer    *fakeTimer
	host     *fakeHost
	registry *Registry
	logs     *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	logs := &bytes.Buffer{}
	logger := zerolog.New(logs)
	loop := eventloop.New(logger)
	host := &fakeHost{}
	return &harness{
		loop:     loop,
		timer:    &fakeTimer{state: timer.StateIdle},
		host:     host,
		registry: NewRegistry(host, loop, DefaultOptions(), logger),
		logs:     logs,
	}
}

func (h *harness) warnings() int {
	return strings.Count(h.logs.String(), `"level":"warn"`)
}

func (h *harness) changes(notification *Notification) *int {
	count := 0
	notification.OnChanged(func() { count++ })
	return &count
}

var errHostDown = errors.New("host down")
