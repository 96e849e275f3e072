package tray

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tfclock/internal/core/clock"
)

type fakeHost struct {
	menu  *fyne.Menu
	icons []fyne.Resource
}

func (host *fakeHost) SetSystemTrayMenu(menu *fyne.Menu)   { host.menu = menu }
func (host *fakeHost) SetSystemTrayIcon(icon fyne.Resource) { host.icons = append(host.icons, icon) }

func findItem(t *testing.T, menu *fyne.Menu, label string) *fyne.MenuItem {
	t.Helper()
	for _, item := range menu.Items {
		if item.Label == label {
			return item
		}
	}
	require.Failf(t, "menu item not found", "label %q", label)
	return nil
}

var (
	idleIcon    = fyne.NewStaticResource("idle.png", []byte{1})
	runningIcon = fyne.NewStaticResource("running.png", []byte{2})
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "Session 25:00 (stopped)", StatusText(clock.State{Label: clock.LabelSession, TimeRemaining: 1500}))
	assert.Equal(t, "Session 04:59", StatusText(clock.State{Label: clock.LabelSession, TimeRemaining: 299, Running: true}))
}

func TestMenuCallbacks(t *testing.T) {
	host := &fakeHost{}
	var toggled, reset, shown, quit int
	New(host, Icons{Idle: idleIcon, Running: runningIcon}, Callbacks{
		OnShow:   func() { shown++ },
		OnToggle: func() { toggled++ },
		OnReset:  func() { reset++ },
		OnQuit:   func() { quit++ },
	})

	findItem(t, host.menu, "Start").Action()
	findItem(t, host.menu, "Reset").Action()
	findItem(t, host.menu, "Show clock").Action()
	findItem(t, host.menu, "Quit").Action()
	findItem(t, host.menu, "Preferences").Action()

	assert.Equal(t, []int{1, 1, 1, 1}, []int{toggled, reset, shown, quit})
	assert.Equal(t, []fyne.Resource{idleIcon}, host.icons)
}

func TestSetStateSwapsLabelAndIcon(t *testing.T) {
	host := &fakeHost{}
	manager := New(host, Icons{Idle: idleIcon, Running: runningIcon}, Callbacks{})

	manager.SetState(clock.State{Label: clock.LabelSession, TimeRemaining: 1499, Running: true})
	assert.Equal(t, "Session 24:59", host.menu.Items[0].Label)
	findItem(t, host.menu, "Stop")
	assert.Equal(t, runningIcon, host.icons[len(host.icons)-1])

	iconCount := len(host.icons)
	manager.SetState(clock.State{Label: clock.LabelSession, TimeRemaining: 1498, Running: true})
	assert.Len(t, host.icons, iconCount)

	manager.SetState(clock.State{Label: clock.LabelSession, TimeRemaining: 1498})
	findItem(t, host.menu, "Start")
	assert.Equal(t, idleIcon, host.icons[len(host.icons)-1])
}
