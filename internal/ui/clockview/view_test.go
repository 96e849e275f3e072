package clockview

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfclock/internal/core/clock"
	"tfclock/internal/core/model"
)

type heldTimer struct{}

func (heldTimer) Stop() bool { return true }

// heldScheduler never fires, so tests observe the view without ticks.
type heldScheduler struct{}

func (heldScheduler) AfterFunc(time.Duration, func()) clock.Timer { return heldTimer{} }

func newTestView(t *testing.T) (*View, *clock.Clock) {
	t.Helper()
	app := test.NewTempApp(t)
	controller := clock.New(model.DefaultClockConfig(), clock.Options{Scheduler: heldScheduler{}})
	t.Cleanup(controller.Close)
	return New(app, controller), controller
}

func TestInitialRender(t *testing.T) {
	view, _ := newTestView(t)

	assert.Equal(t, "5", view.breakLength.Text)
	assert.Equal(t, "25", view.sessionLength.Text)
	assert.Equal(t, "Session", view.timerLabel.Text)
	assert.Equal(t, "25:00", view.timeLeft.Text)
	assert.False(t, view.sessionInc.Disabled())
	assert.Equal(t, Title, view.Window().Title())
}

func TestLengthButtons(t *testing.T) {
	view, controller := newTestView(t)

	test.Tap(view.sessionInc)
	test.Tap(view.breakDec)

	assert.Equal(t, "26", view.sessionLength.Text)
	assert.Equal(t, "26:00", view.timeLeft.Text)
	assert.Equal(t, "4", view.breakLength.Text)
	assert.Equal(t, 26, controller.State().SessionLength)
}

func TestStartDisablesLengthControls(t *testing.T) {
	view, controller := newTestView(t)

	test.Tap(view.startStop)
	require.True(t, controller.State().Running)

	for _, button := range []interface{ Disabled() bool }{view.breakDec, view.breakInc, view.sessionDec, view.sessionInc} {
		assert.True(t, button.Disabled())
	}

	test.Tap(view.sessionInc)
	assert.Equal(t, 25, controller.State().SessionLength)

	test.Tap(view.startStop)
	assert.False(t, controller.State().Running)
	assert.False(t, view.sessionInc.Disabled())
}

func TestResetButton(t *testing.T) {
	view, controller := newTestView(t)
	test.Tap(view.breakInc)
	test.Tap(view.sessionDec)
	test.Tap(view.startStop)

	test.Tap(view.reset)

	assert.Equal(t, "5", view.breakLength.Text)
	assert.Equal(t, "25:00", view.timeLeft.Text)
	assert.False(t, controller.State().Running)
	assert.False(t, view.breakInc.Disabled())
}

func TestRenderHook(t *testing.T) {
	view, _ := newTestView(t)
	var rendered []clock.State
	view.SetOnRender(func(state clock.State) { rendered = append(rendered, state) })

	view.Render(clock.State{BreakLength: 5, SessionLength: 25, Label: clock.LabelBreak, TimeRemaining: 65, Running: true})

	require.Len(t, rendered, 1)
	assert.Equal(t, "Break", view.timerLabel.Text)
	assert.Equal(t, "01:05", view.timeLeft.Text)
}
