// Package toast is the fallback notification host for desktops without a
// freedesktop notification server. It uses the fyne app's notifications,
// which can be neither updated nor closed, so only title changes are sent.
package toast

import (
	"pomonotify/internal/notifications"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// Host sends notifications through fyne.
type Host struct {
	send   func(*fyne.Notification)
	logger zerolog.Logger
}

// New creates a host sending through app.
func New(app fyne.App, logger zerolog.Logger) *Host {
	return newHost(func(notification *fyne.Notification) {
		fyne.Do(func() {
			app.SendNotification(notification)
		})
	}, logger)
}

func newHost(send func(*fyne.Notification), logger zerolog.Logger) *Host {
	return &Host{
		send:   send,
		logger: logger.With().Str("component", "toast").Logger(),
	}
}

// NewSource returns a source. fyne shows the app name itself.
func (host *Host) NewSource(displayName, _ string) (notifications.HostSource, error) {
	return &source{host: host, name: displayName}, nil
}

type source struct {
	host      *Host
	name      string
	destroyed bool
}

func (owner *source) Show(content notifications.Content, _ []notifications.Action) (notifications.Handle, error) {
	if owner.destroyed {
		return nil, notifications.ErrSourceDestroyed
	}
	shown := &handle{owner: owner}
	shown.post(content)
	return shown, nil
}

func (owner *source) SetTitle(title string) {
	owner.name = title
}

func (owner *source) CountUpdated(int) {}

func (owner *source) Destroy() {
	owner.destroyed = true
}

type handle struct {
	owner  *source
	title  string
	closed bool
}

func (shown *handle) Update(content notifications.Content, _ []notifications.Action) error {
	if shown.closed || content.Title == shown.title {
		return nil
	}
	shown.post(content)
	return nil
}

func (shown *handle) Destroy(notifications.DestroyReason) {
	shown.closed = true
}

// OnClosed is never fired: fyne does not report closed notifications.
func (shown *handle) OnClosed(func(notifications.DestroyReason)) {}

func (shown *handle) post(content notifications.Content) {
	if content.Title == "" {
		return
	}
	shown.title = content.Title
	shown.owner.host.logger.Debug().Str("title", content.Title).Msg("send notification")
	shown.owner.host.send(fyne.NewNotification(content.Title, content.Body))
}
