package main

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/core/timer"
	"pomonotify/internal/logging"
	"pomonotify/internal/notifications"
	"pomonotify/internal/platform"
	"pomonotify/internal/platform/freedesktop"
	"pomonotify/internal/storage"
	"pomonotify/internal/ui/overlay"
	"pomonotify/internal/ui/preferences"
	"pomonotify/internal/ui/toast"
	"pomonotify/internal/ui/tray"
	"pomonotify/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

func runApp(ctx context.Context, options appOptions) error {
	entryName := platform.DesktopEntryName(appName)

	guard, err := platform.AcquireSingleInstance(platform.DefaultLockPath(entryName))
	if err != nil {
		return fmt.Errorf("single instance: %w", err)
	}
	defer func() {
		_ = guard.Release()
	}()

	settingsPath := options.configPath
	if settingsPath == "" {
		settingsPath, err = storage.DefaultPath(entryName)
		if err != nil {
			return err
		}
	}
	settings, loadErr := storage.LoadSettings(settingsPath)

	level := settings.LogLevel
	if options.logLevel != "" {
		level = options.logLevel
	}
	logger := logging.New(logging.Config{
		Level:   level,
		Console: isatty.IsTerminal(os.Stderr.Fd()),
	}, os.Stderr)
	if loadErr != nil {
		logger.Warn().Err(loadErr).Str("path", settingsPath).Msg("settings not loaded, using defaults")
	}

	loop := eventloop.New(logger)
	fyneApp := app.NewWithID(appID)
	fyneApp.SetIcon(resources.MustIcon(resources.IconPomodoro))

	notifyHost, closeHost := newNotificationHost(fyneApp, loop, logger)
	defer func() {
		if err := closeHost(); err != nil {
			logger.Debug().Err(err).Msg("close notification host")
		}
	}()

	keeper := timer.New(loop, settings.TimerConfig(), timer.Options{TickInterval: time.Second}, logger)
	registry := notifications.NewRegistry(notifyHost, loop, settings.NotificationOptions(), logger)
	banners := overlay.New(fyneApp, loop)
	overrides := &trayHost{banners: banners}
	// Connected ahead of the dispatcher so overrides are in place before a banner opens.
	mode := notifications.NewTrayMode(keeper, overrides, registry, logger)
	dispatcher := notifications.NewDispatcher(keeper, registry, settings.DispatcherOptions(), logger)
	present := newPresenter(loop, keeper, banners, nil, settings.Banners)
	dispatcher.SetPresenter(present.present)

	shutdown := func() {
		dispatcher.Destroy()
		mode.Destroy()
		registry.Close()
		keeper.Stop()
		fyne.Do(fyneApp.Quit)
	}

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		loop.Post(func() {
			if err := storage.SaveSettings(settingsPath, updated); err != nil {
				logger.Warn().Err(err).Str("path", settingsPath).Msg("settings not saved")
			}
			keeper.UpdateConfig(updated.TimerConfig())
			registry.SetOptions(updated.NotificationOptions())
			dispatcher.SetOptions(updated.DispatcherOptions())
			present.setEnabled(updated.Banners)
			logger.Info().Msg("settings applied")
		})
	})

	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray && !options.noTray {
		menu := tray.New(desktopApp, loop, tray.Callbacks{
			OnToggle: func() {
				toggleTimer(keeper)
			},
			OnReset:        keeper.Reset,
			OnDoNotDisturb: present.setDoNotDisturb,
			OnPreferences: func() {
				fyne.Do(prefsWindow.Show)
			},
			OnQuit: shutdown,
		})
		present.messages = menu
		overrides.menu = menu
		setupTrayWindow(fyneApp, desktopApp)
		followTimer(keeper, menu, desktopApp.SetSystemTrayIcon)
	} else {
		if !options.noTray {
			logger.Warn().Msg("system tray unsupported on this platform")
		}
		keeper.Start()
	}

	stopWatching, err := freedesktop.WatchScreenSaver(loop, logger, dispatcher.SetScreenLocked)
	if err != nil {
		logger.Info().Err(err).Msg("screen lock not tracked")
	} else {
		defer func() {
			_ = stopWatching()
		}()
	}

	if loadErr != nil {
		loop.Post(func() {
			message := fmt.Sprintf("Settings could not be read: %v", loadErr)
			notifications.NewIssueNotification(message, issueURL, keeper, registry, openURL(fyneApp, logger)).Show()
		})
	}

	loopCtx, cancelLoop := context.WithCancel(context.Background())
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		if err := loop.Run(loopCtx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("event loop stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		select {
		case <-ctx.Done():
			logger.Info().Msg("shutting down")
			loop.Post(shutdown)
		case <-loopDone:
		}
	}()

	logger.Info().Str("settings", settingsPath).Msg("pomodoro timer started")
	fyneApp.Run()

	cancelLoop()
	<-loopDone
	return nil
}

// newNotificationHost connects to the desktop notification server, falling
// back to fyne's own notifications.
func newNotificationHost(fyneApp fyne.App, loop *eventloop.Loop, logger zerolog.Logger) (notifications.Host, func() error) {
	host, err := freedesktop.New(loop, freedesktop.Config{
		AppName:      appName,
		DesktopEntry: platform.DesktopEntryName(appName),
	}, logger)
	if err != nil {
		logger.Warn().Err(err).Msg("notification server unavailable, using fyne notifications")
		return toast.New(fyneApp, logger), func() error { return nil }
	}
	return host, host.Close
}

func setupTrayWindow(fyneApp fyne.App, desktopApp desktop.App) {
	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("The pomodoro timer is running in the system tray."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)
}

type timerControls interface {
	State() timer.State
	IsPaused() bool
	Start()
	Pause()
	Resume()
}

func toggleTimer(keeper timerControls) {
	switch {
	case keeper.State() == timer.StateIdle:
		keeper.Start()
	case keeper.IsPaused():
		keeper.Resume()
	default:
		keeper.Pause()
	}
}

// followTimer keeps the tray status line and icon in step with the timer.
func followTimer(keeper *timer.Timer, menu *tray.Manager, setIcon func(fyne.Resource)) {
	icon := ""
	sync := func() {
		state := keeper.State()
		paused := keeper.IsPaused()
		menu.SetTimerState(state, paused)

		name := trayIconName(state, paused)
		if name == icon {
			return
		}
		icon = name
		resource := resources.MustIcon(name)
		fyne.Do(func() {
			setIcon(resource)
		})
	}
	keeper.OnStateChanged(sync)
	keeper.OnUpdate(sync)
	sync()
}

func trayIconName(state timer.State, paused bool) string {
	switch {
	case state == timer.StateIdle || paused:
		return resources.IconIdle
	case state.IsBreak():
		return resources.IconBreak
	default:
		return resources.IconPomodoro
	}
}

func openURL(fyneApp fyne.App, logger zerolog.Logger) func(string) error {
	return func(raw string) error {
		target, err := url.Parse(raw)
		if err != nil {
			return fmt.Errorf("parse url: %w", err)
		}
		fyne.Do(func() {
			if err := fyneApp.OpenURL(target); err != nil {
				logger.Warn().Err(err).Str("url", raw).Msg("open url")
			}
		})
		return nil
	}
}
