package main

import (
	"testing"

	"pomonotify/internal/core/timer"
	"pomonotify/resources"

	"github.com/stretchr/testify/assert"
)

type fakeControls struct {
	state  timer.State
	paused bool
	calls  []string
}

func (controls *fakeControls) State() timer.State { return controls.state }
func (controls *fakeControls) IsPaused() bool     { return controls.paused }
func (controls *fakeControls) Start()             { controls.calls = append(controls.calls, "start") }
func (controls *fakeControls) Pause()             { controls.calls = append(controls.calls, "pause") }
func (controls *fakeControls) Resume()            { controls.calls = append(controls.calls, "resume") }

func TestToggleTimer(t *testing.T) {
	cases := []struct {
		name   string
		state  timer.State
		paused bool
		want   string
	}{
		{name: "idle starts", state: timer.StateIdle, want: "start"},
		{name: "running pauses", state: timer.StatePomodoro, want: "pause"},
		{name: "paused resumes", state: timer.StateShortBreak, paused: true, want: "resume"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			controls := &fakeControls{state: tc.state, paused: tc.paused}
			toggleTimer(controls)
			assert.Equal(t, []string{tc.want}, controls.calls)
		})
	}
}

func TestTrayIconName(t *testing.T) {
	assert.Equal(t, resources.IconIdle, trayIconName(timer.StateIdle, false))
	assert.Equal(t, resources.IconIdle, trayIconName(timer.StatePomodoro, true))
	assert.Equal(t, resources.IconPomodoro, trayIconName(timer.StatePomodoro, false))
	assert.Equal(t, resources.IconBreak, trayIconName(timer.StateLongBreak, false))
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()

	for _, name := range []string{"config", "log-level", "no-tray"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
	autostart, _, err := cmd.Find([]string{"autostart", "enable"})
	assert.NoError(t, err)
	assert.Equal(t, "enable", autostart.Name())
}
