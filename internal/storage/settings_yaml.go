package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"tfclock/internal/ui/preferences"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Volume                *float64 `yaml:"volume"`
	Muted                 bool     `yaml:"muted"`
	SoundFile             string   `yaml:"sound_file,omitempty"`
	SwitchLabel           bool     `yaml:"switch_label"`
	IdlePauseEnabled      bool     `yaml:"idle_pause_enabled"`
	IdlePauseAfterMinutes int      `yaml:"idle_pause_after_minutes"`
	LaunchAtLogin         bool     `yaml:"launch_at_login"`
	TrayEnabled           *bool    `yaml:"tray_enabled"`
}

// SettingsPath returns the settings file location inside configDir.
func SettingsPath(configDir, appName string) string {
	return filepath.Join(configDir, appName, settingsFileName)
}

// LoadSettings reads user preferences from YAML.
// If the config file does not exist, default settings are returned.
func LoadSettings(path string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to YAML.
func SaveSettings(path string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	volume := settings.Volume
	trayEnabled := settings.TrayEnabled
	fileData := yamlSettings{
		Volume:                &volume,
		Muted:                 settings.Muted,
		SoundFile:             settings.SoundFile,
		SwitchLabel:           settings.SwitchLabel,
		IdlePauseEnabled:      settings.IdlePauseEnabled,
		IdlePauseAfterMinutes: int(settings.IdlePauseAfter / time.Minute),
		LaunchAtLogin:         settings.LaunchAtLogin,
		TrayEnabled:           &trayEnabled,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.Volume != nil && *fileData.Volume >= preferences.MinVolume && *fileData.Volume <= preferences.MaxVolume {
		settings.Volume = *fileData.Volume
	}
	if fileData.IdlePauseAfterMinutes > 0 {
		settings.IdlePauseAfter = time.Duration(fileData.IdlePauseAfterMinutes) * time.Minute
	}
	if fileData.TrayEnabled != nil {
		settings.TrayEnabled = *fileData.TrayEnabled
	}

	settings.Muted = fileData.Muted
	settings.SoundFile = fileData.SoundFile
	settings.SwitchLabel = fileData.SwitchLabel
	settings.IdlePauseEnabled = fileData.IdlePauseEnabled
	settings.LaunchAtLogin = fileData.LaunchAtLogin
}
