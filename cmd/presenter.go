package main

import (
	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/notifications"
	"pomonotify/internal/ui/banner"
)

type bannerOpener interface {
	Open(notification *notifications.Notification) banner.Surface
}

type messageOpener interface {
	MessageSurface() banner.Surface
}

// presenter attaches the visible parts to every start and end notification:
// a banner window and the timer message in the tray menu. It runs on the
// event loop.
type presenter struct {
	loop     *eventloop.Loop
	timer    notifications.Timer
	banners  bannerOpener
	messages messageOpener

	enabled      bool
	doNotDisturb bool
}

func newPresenter(loop *eventloop.Loop, source notifications.Timer, banners bannerOpener, messages messageOpener, enabled bool) *presenter {
	return &presenter{
		loop:     loop,
		timer:    source,
		banners:  banners,
		messages: messages,
		enabled:  enabled,
	}
}

func (shown *presenter) present(notification *notifications.Notification) {
	if shown.enabled && !shown.doNotDisturb && shown.banners != nil {
		banner.New(notification, shown.banners.Open(notification), shown.loop)
	}
	if shown.messages != nil {
		banner.NewTimerMessage(shown.timer, notification, shown.messages.MessageSurface())
	}
}

func (shown *presenter) setEnabled(enabled bool) {
	shown.enabled = enabled
}

func (shown *presenter) setDoNotDisturb(enabled bool) {
	shown.doNotDisturb = enabled
}

// trayHost combines the tray menu and the banner window into the
// capabilities tray mode overrides. Either part may be missing.
type trayHost struct {
	menu interface {
		HideDoNotDisturb()
		ShowDoNotDisturb()
	}
	banners interface {
		SuppressAutoExpand(match func(*notifications.Notification) bool)
		RestoreAutoExpand()
	}
}

func (host trayHost) HideDoNotDisturb() {
	if host.menu != nil {
		host.menu.HideDoNotDisturb()
	}
}

func (host trayHost) ShowDoNotDisturb() {
	if host.menu != nil {
		host.menu.ShowDoNotDisturb()
	}
}

func (host trayHost) SuppressAutoExpand(match func(*notifications.Notification) bool) {
	if host.banners != nil {
		host.banners.SuppressAutoExpand(match)
	}
}

func (host trayHost) RestoreAutoExpand() {
	if host.banners != nil {
		host.banners.RestoreAutoExpand()
	}
}
