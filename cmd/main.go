package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/faiface/beep"
	"github.com/spf13/cobra"

	"tfclock/internal/audio"
	"tfclock/internal/core/clock"
	"tfclock/internal/platform"
	"tfclock/internal/storage"
	"tfclock/internal/ui/clockview"
	"tfclock/internal/ui/preferences"
	"tfclock/internal/ui/tray"
	"tfclock/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "tfclock"
	appID   = "com.tfclock.app"
)

type runOptions struct {
	configPath  string
	soundFile   string
	muted       bool
	noTray      bool
	switchLabel bool
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	options := runOptions{}
	command := &cobra.Command{
		Use:          appName,
		Short:        "25 + 5 session and break countdown clock",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			return run(options, flagOverrides{
				muted:       flags.Changed("muted"),
				noTray:      flags.Changed("no-tray"),
				switchLabel: flags.Changed("switch-label"),
				soundFile:   flags.Changed("sound"),
			})
		},
	}

	flags := command.Flags()
	flags.StringVar(&options.configPath, "config", "", "settings file (default <user config dir>/tfclock/settings.yaml)")
	flags.StringVar(&options.soundFile, "sound", "", "WAV file played when the countdown expires")
	flags.BoolVar(&options.muted, "muted", false, "do not play the expiry alert")
	flags.BoolVar(&options.noTray, "no-tray", false, "do not install a system tray icon")
	flags.BoolVar(&options.switchLabel, "switch-label", false, "switch the label between Session and Break on expiry")
	return command
}

type flagOverrides struct {
	muted       bool
	noTray      bool
	switchLabel bool
	soundFile   bool
}

func applyOverrides(settings preferences.Settings, options runOptions, changed flagOverrides) preferences.Settings {
	if changed.muted {
		settings.Muted = options.muted
	}
	if changed.noTray {
		settings.TrayEnabled = !options.noTray
	}
	if changed.switchLabel {
		settings.SwitchLabel = options.switchLabel
	}
	if changed.soundFile {
		settings.SoundFile = options.soundFile
	}
	return settings
}

func run(options runOptions, changed flagOverrides) error {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			log.Printf("single instance: %v, raised the running clock", err)
			return nil
		}
		return err
	}
	defer func() {
		_ = guard.Release()
	}()

	service := platform.NewService()
	settingsPath := options.configPath
	if settingsPath == "" {
		configDir, err := service.GetConfigDir()
		if err != nil {
			return fmt.Errorf("resolve settings path: %w", err)
		}
		settingsPath = storage.SettingsPath(configDir, appName)
	}

	settings, err := storage.LoadSettings(settingsPath)
	if err != nil {
		log.Printf("settings: %v, using defaults", err)
	}
	settings = applyOverrides(settings, options, changed)

	fyneApp := app.NewWithID(appID)
	idleIcon := resources.MustLogo(resources.IdleIcon)
	fyneApp.SetIcon(idleIcon)

	var alert clock.Alert
	beeper := newBeeper(settings)
	if beeper != nil {
		alert = beeper
	}

	clockState := clock.New(settings.ClockConfig(), clock.Options{Alert: alert})
	defer clockState.Close()

	view := clockview.New(fyneApp, clockState)

	idleWatcher := clock.NewIdleWatcher(clockState, platform.NewIdleProvider(), clock.IdleConfig{
		Enabled:     settings.IdlePauseEnabled,
		PauseAfter:  settings.IdlePauseAfter,
		Unsupported: platform.ErrIdleUnsupported,
	})
	idleWatcher.SetHandlers(func(idle time.Duration) {
		log.Printf("idle: paused after %s away", idle.Round(time.Second))
		fyne.Do(func() {
			fyneApp.SendNotification(fyne.NewNotification(clockview.Title, "Paused while you were away."))
		})
	}, func(err error) {
		log.Printf("idle: %v", err)
	})

	prefsWindow := preferences.New(fyneApp, settings, func(updated preferences.Settings) {
		settings = updated
		if err := storage.SaveSettings(settingsPath, settings); err != nil {
			log.Printf("settings: %v", err)
		}
		clockState.SetSwitchLabel(settings.SwitchLabel)
		if beeper != nil {
			beeper.SetConfig(settings.AudioConfig())
		}
		idleWatcher.UpdateConfig(settings.IdlePauseEnabled, settings.IdlePauseAfter)
		if err := platform.SyncAutostart(service, appName, settings.LaunchAtLogin); err != nil {
			log.Printf("autostart: %v", err)
		}
	})

	desktopApp, hasTray := fyneApp.(desktop.App)
	if settings.TrayEnabled && hasTray {
		trayManager := tray.New(desktopApp, tray.Icons{
			Idle:    idleIcon,
			Running: resources.MustLogo(resources.RunningIcon),
		}, tray.Callbacks{
			OnShow:        view.Show,
			OnToggle:      func() { clockState.ToggleRunning() },
			OnReset:       clockState.Reset,
			OnPreferences: prefsWindow.Show,
			OnQuit:        fyneApp.Quit,
		})
		view.SetOnRender(trayManager.SetState)
		trayManager.SetState(clockState.State())
		view.Window().SetCloseIntercept(view.Window().Hide)
	} else {
		if settings.TrayEnabled {
			log.Printf("system tray unsupported on this platform")
		}
		view.Window().SetMaster()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go idleWatcher.Run(ctx)
	go guard.Serve(func() {
		fyne.Do(view.Show)
	})
	go view.Watch(clockState.Subscribe(16))
	go notifyExpiry(fyneApp, clockState.Subscribe(4))

	view.Show()
	fyneApp.Run()
	return nil
}

func newBeeper(settings preferences.Settings) *audio.Beeper {
	buffer, err := loadSound(settings.SoundFile)
	if err != nil {
		log.Printf("audio: %v, falling back to built-in beep", err)
		buffer, err = loadSound("")
		if err != nil {
			log.Printf("audio: %v", err)
			return nil
		}
	}
	beeper, err := audio.NewSpeaker(buffer, settings.AudioConfig())
	if err != nil {
		log.Printf("audio: %v, alerts are silent", err)
		return nil
	}
	return beeper
}

func loadSound(path string) (*beep.Buffer, error) {
	if path != "" {
		return audio.DecodeFile(path)
	}
	data, err := resources.Sound(resources.AlertSound)
	if err != nil {
		return nil, err
	}
	return audio.Decode(bytes.NewReader(data))
}

func notifyExpiry(fyneApp fyne.App, events <-chan clock.Event) {
	for event := range events {
		if event.Type != clock.EventExpired {
			continue
		}
		message := fmt.Sprintf("%s time is up.", event.State.Label)
		fyne.Do(func() {
			fyneApp.SendNotification(fyne.NewNotification(clockview.Title, message))
		})
	}
}
