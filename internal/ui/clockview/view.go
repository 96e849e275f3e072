package clockview

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"tfclock/internal/core/clock"
)

// Title is shown above the controls and in the window bar.
const Title = "25 + 5 Clock"

var (
	backgroundColor = color.NRGBA{R: 30, G: 85, B: 92, A: 255}
	panelColor      = color.NRGBA{R: 19, G: 53, B: 58, A: 255}
	textColor       = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Controller is the clock surface the view drives.
type Controller interface {
	State() clock.State
	IncrementBreak() bool
	DecrementBreak() bool
	IncrementSession() bool
	DecrementSession() bool
	ToggleRunning() bool
	Reset()
}

// View is the main clock window.
type View struct {
	window     fyne.Window
	controller Controller
	onRender   func(clock.State)

	breakLength   *canvas.Text
	sessionLength *canvas.Text
	breakDec      *widget.Button
	breakInc      *widget.Button
	sessionDec    *widget.Button
	sessionInc    *widget.Button
	timerLabel    *canvas.Text
	timeLeft      *canvas.Text
	startStop     *widget.Button
	reset         *widget.Button
}

// New builds the clock window for controller.
func New(app fyne.App, controller Controller) *View {
	view := &View{
		window:     app.NewWindow(Title),
		controller: controller,
	}
	if app.Icon() != nil {
		view.window.SetIcon(app.Icon())
	}

	view.breakLength = newText("", 24, false)
	view.sessionLength = newText("", 24, false)
	view.timerLabel = newText("", 24, false)
	view.timeLeft = newText("", 48, true)

	view.breakDec = widget.NewButtonWithIcon("", theme.MoveDownIcon(), view.handle(controller.DecrementBreak))
	view.breakInc = widget.NewButtonWithIcon("", theme.MoveUpIcon(), view.handle(controller.IncrementBreak))
	view.sessionDec = widget.NewButtonWithIcon("", theme.MoveDownIcon(), view.handle(controller.DecrementSession))
	view.sessionInc = widget.NewButtonWithIcon("", theme.MoveUpIcon(), view.handle(controller.IncrementSession))
	view.startStop = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), view.handle(controller.ToggleRunning))
	view.reset = widget.NewButtonWithIcon("", theme.MediaReplayIcon(), func() {
		controller.Reset()
		view.Render(controller.State())
	})

	lengths := container.NewHBox(
		layout.NewSpacer(),
		lengthControl("Break Length", view.breakDec, view.breakLength, view.breakInc),
		layout.NewSpacer(),
		lengthControl("Session Length", view.sessionDec, view.sessionLength, view.sessionInc),
		layout.NewSpacer(),
	)

	panelBorder := canvas.NewRectangle(color.Transparent)
	panelBorder.StrokeColor = panelColor
	panelBorder.StrokeWidth = 4
	panelBorder.CornerRadius = 24
	panel := container.NewStack(
		panelBorder,
		container.NewPadded(container.NewVBox(view.timerLabel, view.timeLeft)),
	)

	controls := container.NewHBox(layout.NewSpacer(), view.startStop, view.reset, layout.NewSpacer())

	content := container.NewVBox(
		newText(Title, 40, true),
		lengths,
		container.NewCenter(panel),
		controls,
	)
	background := canvas.NewRectangle(backgroundColor)
	view.window.SetContent(container.NewStack(background, container.NewCenter(container.NewPadded(content))))
	view.window.Resize(fyne.NewSize(520, 460))

	view.Render(controller.State())
	return view
}

// Window returns the underlying Fyne window.
func (view *View) Window() fyne.Window {
	return view.window
}

// Show displays the window and focuses it.
func (view *View) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SetOnRender registers a hook run after every render.
func (view *View) SetOnRender(handler func(clock.State)) {
	view.onRender = handler
}

// Watch re-renders on every clock event until the channel is closed.
func (view *View) Watch(events <-chan clock.Event) {
	for event := range events {
		state := event.State
		fyne.Do(func() {
			view.Render(state)
		})
	}
}

// Render projects state onto the widgets. Call it from the UI goroutine.
func (view *View) Render(state clock.State) {
	view.breakLength.Text = strconv.Itoa(state.BreakLength)
	view.sessionLength.Text = strconv.Itoa(state.SessionLength)
	view.timerLabel.Text = string(state.Label)
	view.timeLeft.Text = state.Display()

	for _, button := range []*widget.Button{view.breakDec, view.breakInc, view.sessionDec, view.sessionInc} {
		if state.Running {
			button.Disable()
		} else {
			button.Enable()
		}
	}
	if state.Running {
		view.startStop.SetIcon(theme.MediaPauseIcon())
	} else {
		view.startStop.SetIcon(theme.MediaPlayIcon())
	}

	view.breakLength.Refresh()
	view.sessionLength.Refresh()
	view.timerLabel.Refresh()
	view.timeLeft.Refresh()

	if view.onRender != nil {
		view.onRender(state)
	}
}

func (view *View) handle(action func() bool) func() {
	return func() {
		action()
		view.Render(view.controller.State())
	}
}

func lengthControl(title string, decrement *widget.Button, value *canvas.Text, increment *widget.Button) fyne.CanvasObject {
	return container.NewVBox(
		newText(title, 22, false),
		container.NewHBox(decrement, container.NewPadded(value), increment),
	)
}

func newText(text string, size float32, bold bool) *canvas.Text {
	label := canvas.NewText(text, textColor)
	label.Alignment = fyne.TextAlignCenter
	label.TextSize = size
	label.TextStyle = fyne.TextStyle{Bold: bold}
	return label
}
