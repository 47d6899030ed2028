package preferences

import (
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var logLevels = []string{"debug", "info", "warn", "error"}

// formValues is the raw content of the preferences form.
type formValues struct {
	Pomodoro          string
	ShortBreak        string
	LongBreak         string
	LongBreakInterval string
	PreAnnouncement   string
	ExtendIncrement   string

	StartNotifications bool
	EndNotifications   bool
	ScreenShield       bool
	Banners            bool
	LogLevel           string
}

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	settings Settings
	onSave   func(Settings)

	pomodoro        *widget.Entry
	shortBreak      *widget.Entry
	longBreak       *widget.Entry
	interval        *widget.Entry
	preAnnouncement *widget.Entry
	extend          *widget.Entry
	start           *widget.Check
	end             *widget.Check
	shield          *widget.Check
	banners         *widget.Check
	logLevel        *widget.Select
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Pomodoro Preferences")

	prefs := &Window{
		window:          window,
		settings:        settings,
		onSave:          onSave,
		pomodoro:        widget.NewEntry(),
		shortBreak:      widget.NewEntry(),
		longBreak:       widget.NewEntry(),
		interval:        widget.NewEntry(),
		preAnnouncement: widget.NewEntry(),
		extend:          widget.NewEntry(),
		start:           widget.NewCheck("Notify when a break is about to end", nil),
		end:             widget.NewCheck("Notify when a pomodoro is about to end", nil),
		shield:          widget.NewCheck("Show the timer on the lock screen", nil),
		banners:         widget.NewCheck("Show banner window", nil),
		logLevel:        widget.NewSelect(logLevels, nil),
	}

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Pomodoro duration"), prefs.pomodoro, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break duration"), prefs.shortBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break duration"), prefs.longBreak, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.interval, widget.NewLabel("pomodoros")),
		widget.NewLabelWithStyle("Notifications", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Announce"), prefs.preAnnouncement, widget.NewLabel("sec before the end")),
		container.NewHBox(widget.NewLabel("Extend by"), prefs.extend, widget.NewLabel("min")),
		prefs.start,
		prefs.end,
		prefs.shield,
		prefs.banners,
		container.NewHBox(widget.NewLabel("Log level"), prefs.logLevel),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", prefs.handleCancel)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(440, 460))
	window.SetCloseIntercept(prefs.handleCancel)

	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	values := valuesFromSettings(settings)
	prefs.pomodoro.SetText(values.Pomodoro)
	prefs.shortBreak.SetText(values.ShortBreak)
	prefs.longBreak.SetText(values.LongBreak)
	prefs.interval.SetText(values.LongBreakInterval)
	prefs.preAnnouncement.SetText(values.PreAnnouncement)
	prefs.extend.SetText(values.ExtendIncrement)
	prefs.start.SetChecked(values.StartNotifications)
	prefs.end.SetChecked(values.EndNotifications)
	prefs.shield.SetChecked(values.ScreenShield)
	prefs.banners.SetChecked(values.Banners)
	prefs.logLevel.SetSelected(values.LogLevel)
}

func (prefs *Window) handleSave() {
	settings := applyValues(prefs.settings, formValues{
		Pomodoro:           prefs.pomodoro.Text,
		ShortBreak:         prefs.shortBreak.Text,
		LongBreak:          prefs.longBreak.Text,
		LongBreakInterval:  prefs.interval.Text,
		PreAnnouncement:    prefs.preAnnouncement.Text,
		ExtendIncrement:    prefs.extend.Text,
		StartNotifications: prefs.start.Checked,
		EndNotifications:   prefs.end.Checked,
		ScreenShield:       prefs.shield.Checked,
		Banners:            prefs.banners.Checked,
		LogLevel:           prefs.logLevel.Selected,
	})

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

// handleCancel drops unsaved edits and hides the window.
func (prefs *Window) handleCancel() {
	prefs.UpdateSettings(prefs.settings)
	prefs.window.Hide()
}

func valuesFromSettings(settings Settings) formValues {
	return formValues{
		Pomodoro:           strconv.Itoa(int(settings.PomodoroDuration / time.Minute)),
		ShortBreak:         strconv.Itoa(int(settings.ShortBreakDuration / time.Minute)),
		LongBreak:          strconv.Itoa(int(settings.LongBreakDuration / time.Minute)),
		LongBreakInterval:  strconv.Itoa(settings.LongBreakInterval),
		PreAnnouncement:    strconv.Itoa(int(settings.PreAnnouncement / time.Second)),
		ExtendIncrement:    strconv.Itoa(int(settings.ExtendIncrement / time.Minute)),
		StartNotifications: settings.StartNotifications,
		EndNotifications:   settings.EndNotifications,
		ScreenShield:       settings.ScreenShield,
		Banners:            settings.Banners,
		LogLevel:           settings.LogLevel,
	}
}

// applyValues returns settings updated with the valid entries of values.
// Invalid numbers keep the previous value.
func applyValues(settings Settings, values formValues) Settings {
	if minutes, ok := parsePositiveInt(values.Pomodoro); ok {
		settings.PomodoroDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(values.ShortBreak); ok {
		settings.ShortBreakDuration = time.Duration(minutes) * time.Minute
	}
	if minutes, ok := parsePositiveInt(values.LongBreak); ok {
		settings.LongBreakDuration = time.Duration(minutes) * time.Minute
	}
	if count, ok := parsePositiveInt(values.LongBreakInterval); ok {
		settings.LongBreakInterval = count
	}
	if seconds, ok := parsePositiveInt(values.PreAnnouncement); ok {
		settings.PreAnnouncement = time.Duration(seconds) * time.Second
	}
	if minutes, ok := parsePositiveInt(values.ExtendIncrement); ok {
		settings.ExtendIncrement = time.Duration(minutes) * time.Minute
	}

	settings.StartNotifications = values.StartNotifications
	settings.EndNotifications = values.EndNotifications
	settings.ScreenShield = values.ScreenShield
	settings.Banners = values.Banners
	if values.LogLevel != "" {
		settings.LogLevel = values.LogLevel
	}
	return settings
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
