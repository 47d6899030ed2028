package banner

import (
	"testing"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/model"
	"pomonotify/internal/core/timer"
	"pomonotify/internal/notifications"

	"github.com/rs/zerolog"
)

type fakeAction struct {
	label    string
	callback func()
	removed  bool
}

func (action *fakeAction) Remove() { action.removed = true }

type fakeSurface struct {
	titles    []string
	bodies    []string
	unexpands int
	actions   []*fakeAction
	closed    int
	mapped    bool
	onClosed  []func()
}

func (surface *fakeSurface) SetTitle(title string) { surface.titles = append(surface.titles, title) }
func (surface *fakeSurface) SetBody(body string)   { surface.bodies = append(surface.bodies, body) }
func (surface *fakeSurface) Unexpand()             { surface.unexpands++ }
func (surface *fakeSurface) Mapped() bool          { return surface.mapped }
func (surface *fakeSurface) OnClosed(handler func()) {
	surface.onClosed = append(surface.onClosed, handler)
}

func (surface *fakeSurface) AddAction(label string, callback func()) Action {
	action := &fakeAction{label: label, callback: callback}
	surface.actions = append(surface.actions, action)
	return action
}

func (surface *fakeSurface) Close() {
	surface.closed++
	if surface.closed > 1 {
		return
	}
	surface.mapped = false
	for _, handler := range surface.onClosed {
		handler()
	}
}

func (surface *fakeSurface) title() string {
	if len(surface.titles) == 0 {
		return ""
	}
	return surface.titles[len(surface.titles)-1]
}

func (surface *fakeSurface) body() string {
	if len(surface.bodies) == 0 {
		return ""
	}
	return surface.bodies[len(surface.bodies)-1]
}

// liveActions returns the labels of actions that were not removed.
func (surface *fakeSurface) liveActions() []string {
	var labels []string
	for _, action := range surface.actions {
		if !action.removed {
			labels = append(labels, action.label)
		}
	}
	return labels
}

func (surface *fakeSurface) invoke(label string) bool {
	for _, action := range surface.actions {
		if action.label == label && !action.removed {
			action.callback()
			return true
		}
	}
	return false
}

type nopHost struct{}

func (nopHost) NewSource(string, string) (notifications.HostSource, error) {
	return nopSource{}, nil
}

type nopSource struct{}

func (nopSource) Show(notifications.Content, []notifications.Action) (notifications.Handle, error) {
	return nopHandle{}, nil
}
func (nopSource) SetTitle(string)  {}
func (nopSource) CountUpdated(int) {}
func (nopSource) Destroy()         {}

type nopHandle struct{}

func (nopHandle) Update(notifications.Content, []notifications.Action) error { return nil }
func (nopHandle) Destroy(notifications.DestroyReason)                       {}
func (nopHandle) OnClosed(func(notifications.DestroyReason))                {}

type harness struct {
	loop     *eventloop.Loop
	timer    *timer.Timer
	registry *notifications.Registry
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	loop := eventloop.New(zerolog.Nop())
	return &harness{
		loop:     loop,
		timer:    timer.New(loop, model.DefaultTimerConfig(), timer.Options{}, zerolog.Nop()),
		registry: notifications.NewRegistry(nopHost{}, loop, notifications.DefaultOptions(), zerolog.Nop()),
	}
}

// enterAt switches to state and moves the countdown to remaining.
func (h *harness) enterAt(state timer.State, remaining time.Duration) {
	h.timer.SetState(state)
	h.timer.Advance(h.timer.StateDuration() - remaining)
}
