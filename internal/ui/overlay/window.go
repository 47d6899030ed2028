// Package overlay shows notification banners in a small undecorated window.
package overlay

import (
	"image/color"

	"pomonotify/internal/core/eventloop"
	"pomonotify/internal/notifications"
	"pomonotify/internal/ui/banner"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Window manages the banner window. It shows one surface at a time; opening
// a new one closes the previous.
//
// Surface methods are called from the event loop goroutine and hand widget
// changes to fyne with fyne.Do.
type Window struct {
	window       fyne.Window
	loop         *eventloop.Loop
	do           func(func())
	background   *canvas.Rectangle
	titleLabel   *canvas.Text
	bodyLabel    *canvas.Text
	actions      *fyne.Container
	expandButton *widget.Button

	generation uint64
	current    *surface
	suppress   func(*notifications.Notification) bool
}

const (
	overlayWidthFraction  = float32(0.22)
	overlayHeightFraction = float32(0.12)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the banner window. It stays hidden until a surface is opened.
func New(app fyne.App, loop *eventloop.Loop) *Window {
	window := app.NewWindow("Pomodoro")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(color.NRGBA{R: 0, G: 0, B: 0, A: 220})

	titleLabel := canvas.NewText("", color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	titleLabel.Alignment = fyne.TextAlignLeading
	titleLabel.TextStyle = fyne.TextStyle{Bold: true}
	titleLabel.TextSize = 18

	bodyLabel := canvas.NewText("", color.NRGBA{R: 232, G: 190, B: 66, A: 255})
	bodyLabel.Alignment = fyne.TextAlignLeading
	bodyLabel.TextSize = 14

	actions := container.NewHBox()
	overlay := &Window{
		window:     window,
		loop:       loop,
		do:         fyne.Do,
		background: background,
		titleLabel: titleLabel,
		bodyLabel:  bodyLabel,
		actions:    actions,
	}
	overlay.expandButton = widget.NewButton("…", func() {
		actions.Show()
		overlay.expandButton.Hide()
	})

	content := container.New(&bannerLayout{}, titleLabel, bodyLabel, container.NewHBox(actions, overlay.expandButton))
	window.SetContent(container.NewStack(background, content))
	window.SetCloseIntercept(func() {
		window.Hide()
		loop.Post(overlay.closeCurrent)
	})
	return overlay
}

// Open shows an empty banner for notification and returns its surface.
// Call it on the event loop goroutine.
func (overlay *Window) Open(notification *notifications.Notification) banner.Surface {
	overlay.closeCurrent()

	overlay.generation++
	current := &surface{overlay: overlay, generation: overlay.generation, mapped: true}
	overlay.current = current

	expand := overlay.suppress == nil || !overlay.suppress(notification)
	overlay.do(func() {
		overlay.titleLabel.Text = ""
		overlay.bodyLabel.Text = ""
		overlay.actions.RemoveAll()
		if expand {
			overlay.actions.Show()
			overlay.expandButton.Hide()
		} else {
			overlay.actions.Hide()
			overlay.expandButton.Show()
		}
		overlay.titleLabel.Refresh()
		overlay.bodyLabel.Refresh()
		overlay.resizeToScreenFraction()
		overlay.window.Show()
		if expand {
			overlay.window.RequestFocus()
		}
	})
	return current
}

// SuppressAutoExpand keeps banners of matching notifications collapsed and
// unfocused when they open.
func (overlay *Window) SuppressAutoExpand(match func(*notifications.Notification) bool) {
	overlay.suppress = match
}

// RestoreAutoExpand undoes SuppressAutoExpand.
func (overlay *Window) RestoreAutoExpand() {
	overlay.suppress = nil
}

func (overlay *Window) closeCurrent() {
	if overlay.current != nil {
		overlay.current.Close()
	}
}

func (overlay *Window) isCurrent(generation uint64) bool {
	return overlay.current != nil && overlay.current.generation == generation
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}

// surface is one banner session on the window. Calls made after the window
// moved on to a newer session are ignored.
type surface struct {
	overlay    *Window
	generation uint64
	mapped     bool
	closed     bool
	onClosed   []func()
}

func (shown *surface) SetTitle(title string) {
	shown.apply(func(overlay *Window) {
		overlay.titleLabel.Text = title
		overlay.titleLabel.Refresh()
	})
}

func (shown *surface) SetBody(body string) {
	shown.apply(func(overlay *Window) {
		overlay.bodyLabel.Text = body
		overlay.bodyLabel.Refresh()
	})
}

func (shown *surface) Unexpand() {
	shown.apply(func(overlay *Window) {
		overlay.actions.Hide()
		overlay.expandButton.Show()
	})
}

func (shown *surface) AddAction(label string, callback func()) banner.Action {
	overlay := shown.overlay
	generation := shown.generation
	button := widget.NewButton(label, func() {
		overlay.loop.Post(func() {
			if overlay.isCurrent(generation) {
				callback()
			}
		})
	})
	shown.apply(func(overlay *Window) {
		overlay.actions.Add(button)
	})
	return &action{surface: shown, button: button}
}

func (shown *surface) Close() {
	if shown.closed {
		return
	}
	shown.closed = true
	shown.mapped = false
	if shown.overlay.current == shown {
		shown.overlay.current = nil
		shown.overlay.do(func() {
			shown.overlay.window.Hide()
		})
	}
	for _, handler := range shown.onClosed {
		handler()
	}
	shown.onClosed = nil
}

func (shown *surface) Mapped() bool { return shown.mapped }

func (shown *surface) OnClosed(handler func()) {
	if shown.closed {
		return
	}
	shown.onClosed = append(shown.onClosed, handler)
}

func (shown *surface) apply(change func(*Window)) {
	if shown.closed {
		return
	}
	overlay := shown.overlay
	overlay.do(func() {
		change(overlay)
	})
}

type action struct {
	surface *surface
	button  *widget.Button
}

func (item *action) Remove() {
	button := item.button
	item.surface.apply(func(overlay *Window) {
		overlay.actions.Remove(button)
	})
}

// bannerLayout stacks the title, the body and the action row.
type bannerLayout struct{}

func (layout *bannerLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	if len(objects) < 3 {
		return
	}
	title := objects[0]
	body := objects[1]
	actions := objects[2]

	pad := size.Height * 0.08
	availableWidth := size.Width - pad*2
	if availableWidth < 0 {
		availableWidth = 0
	}

	titleSize := title.MinSize()
	title.Move(fyne.NewPos(pad, pad))
	title.Resize(fyne.NewSize(availableWidth, titleSize.Height))

	bodySize := body.MinSize()
	bodyY := pad + titleSize.Height + 6
	body.Move(fyne.NewPos(pad, bodyY))
	body.Resize(fyne.NewSize(availableWidth, bodySize.Height))

	actionsSize := actions.MinSize()
	actionsY := size.Height - pad - actionsSize.Height
	if actionsY < bodyY+bodySize.Height {
		actionsY = bodyY + bodySize.Height
	}
	actionsX := size.Width - pad - actionsSize.Width
	if actionsX < pad {
		actionsX = pad
	}
	actions.Move(fyne.NewPos(actionsX, actionsY))
	actions.Resize(actionsSize)
}

func (layout *bannerLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	if len(objects) < 3 {
		return fyne.NewSize(0, 0)
	}
	titleSize := objects[0].MinSize()
	bodySize := objects[1].MinSize()
	actionsSize := objects[2].MinSize()

	width := titleSize.Width
	if bodySize.Width > width {
		width = bodySize.Width
	}
	if actionsSize.Width > width {
		width = actionsSize.Width
	}
	height := titleSize.Height + bodySize.Height + actionsSize.Height + 30
	return fyne.NewSize(width+20, height)
}
