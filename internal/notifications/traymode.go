package notifications

import (
	"pomonotify/internal/core/signal"
	"pomonotify/internal/core/timer"

	"github.com/rs/zerolog"
)

// TrayMode applies the tray overrides while the timer is running and
// reverts them once it goes idle.
type TrayMode struct {
	timer    Timer
	host     TrayHost
	registry *Registry
	logger   zerolog.Logger

	active         bool
	stateChangedID signal.HandlerID
}

// NewTrayMode creates a TrayMode and syncs it with the current timer state.
func NewTrayMode(source Timer, host TrayHost, registry *Registry, logger zerolog.Logger) *TrayMode {
	mode := &TrayMode{
		timer:    source,
		host:     host,
		registry: registry,
		logger:   logger.With().Str("component", "tray-mode").Logger(),
	}
	mode.stateChangedID = source.OnStateChanged(mode.sync)
	mode.sync()
	return mode
}

// Active reports whether the overrides are applied.
func (mode *TrayMode) Active() bool {
	return mode.active
}

// Activate applies the overrides. Repeated calls are ignored.
func (mode *TrayMode) Activate() {
	if mode.active {
		return
	}
	mode.active = true
	mode.host.SuppressAutoExpand(mode.registry.Announces)
	mode.host.HideDoNotDisturb()
	mode.logger.Debug().Msg("tray mode activated")
}

// Deactivate reverts the overrides. Repeated calls are ignored.
func (mode *TrayMode) Deactivate() {
	if !mode.active {
		return
	}
	mode.active = false
	mode.host.RestoreAutoExpand()
	mode.host.ShowDoNotDisturb()
	mode.logger.Debug().Msg("tray mode deactivated")
}

// Destroy reverts the overrides and stops following the timer.
func (mode *TrayMode) Destroy() {
	mode.Deactivate()
	if mode.stateChangedID != 0 {
		mode.timer.Disconnect(mode.stateChangedID)
		mode.stateChangedID = 0
	}
}

func (mode *TrayMode) sync() {
	if mode.timer.State() != timer.StateIdle {
		mode.Activate()
		return
	}
	mode.Deactivate()
}
