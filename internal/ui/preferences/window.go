package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  Settings
	onSave    func(Settings)
	volume    *widget.Slider
	muted     *widget.Check
	soundFile *widget.Entry
	switchLbl *widget.Check
	idleCheck *widget.Check
	idleAfter *widget.Entry
	autostart *widget.Check
	trayCheck *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("25 + 5 Clock Settings")

	volume := widget.NewSlider(MinVolume, MaxVolume)
	volume.Step = 0.25

	muted := widget.NewCheck("Mute alert", nil)

	soundFile := widget.NewEntry()
	soundFile.SetPlaceHolder("built-in beep")

	switchLbl := widget.NewCheck("Switch label between Session and Break", nil)
	idleCheck := widget.NewCheck("Pause when I am away", nil)
	idleAfter := widget.NewEntry()
	autostart := widget.NewCheck("Launch at login", nil)
	trayCheck := widget.NewCheck("Show tray icon (applies on restart)", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Alert", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel("Volume"),
		volume,
		muted,
		container.NewBorder(nil, nil, widget.NewLabel("WAV file (on restart)"), nil, soundFile),
		widget.NewLabelWithStyle("Timer", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		switchLbl,
		idleCheck,
		container.NewHBox(widget.NewLabel("Away for"), idleAfter, widget.NewLabel("min")),
		widget.NewLabelWithStyle("System", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		autostart,
		trayCheck,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(420, 460))

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		volume:    volume,
		muted:     muted,
		soundFile: soundFile,
		switchLbl: switchLbl,
		idleCheck: idleCheck,
		idleAfter: idleAfter,
		autostart: autostart,
		trayCheck: trayCheck,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(cancelButton.OnTapped)

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
	prefs.volume.SetValue(settings.Volume)
	prefs.muted.SetChecked(settings.Muted)
	prefs.soundFile.SetText(settings.SoundFile)
	prefs.switchLbl.SetChecked(settings.SwitchLabel)
	prefs.idleCheck.SetChecked(settings.IdlePauseEnabled)
	prefs.idleAfter.SetText(fmt.Sprintf("%d", int(settings.IdlePauseAfter.Minutes())))
	prefs.autostart.SetChecked(settings.LaunchAtLogin)
	prefs.trayCheck.SetChecked(settings.TrayEnabled)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	settings.Volume = prefs.volume.Value
	settings.Muted = prefs.muted.Checked
	settings.SoundFile = strings.TrimSpace(prefs.soundFile.Text)
	settings.SwitchLabel = prefs.switchLbl.Checked
	settings.IdlePauseEnabled = prefs.idleCheck.Checked
	if minutes, ok := parsePositiveInt(prefs.idleAfter.Text); ok {
		settings.IdlePauseAfter = time.Duration(minutes) * time.Minute
	}
	settings.LaunchAtLogin = prefs.autostart.Checked
	settings.TrayEnabled = prefs.trayCheck.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
