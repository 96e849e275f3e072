package preferences

import (
	"time"

	"tfclock/internal/audio"
	"tfclock/internal/core/model"
)

const (
	// MinVolume and MaxVolume bound the base-2 gain exponent.
	MinVolume = -3.0
	MaxVolume = 1.0
)

// Settings defines editable user preferences.
type Settings struct {
	Volume    float64
	Muted     bool
	SoundFile string

	SwitchLabel bool

	IdlePauseEnabled bool
	IdlePauseAfter   time.Duration

	LaunchAtLogin bool
	TrayEnabled   bool
}

// DefaultSettings returns default settings for the clock.
func DefaultSettings() Settings {
	return Settings{
		Volume:           0,
		Muted:            false,
		SwitchLabel:      false,
		IdlePauseEnabled: false,
		IdlePauseAfter:   10 * time.Minute,
		LaunchAtLogin:    false,
		TrayEnabled:      true,
	}
}

// ClockConfig converts settings to a ClockConfig.
func (settings Settings) ClockConfig() model.ClockConfig {
	config := model.DefaultClockConfig()
	config.SwitchLabel = settings.SwitchLabel
	return config
}

// AudioConfig converts settings to playback options.
func (settings Settings) AudioConfig() audio.Config {
	return audio.Config{
		Volume: settings.Volume,
		Muted:  settings.Muted,
	}
}
