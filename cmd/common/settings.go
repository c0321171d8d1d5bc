package common

import (
	"github.com/gigurra/mctrainer/cmd/common/config"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
)

// SettingsFlags are the flags shared by every command that renders audio.
// Zero values defer to the config file and environment.
type SettingsFlags struct {
	Speed         int
	Frequency     float64
	MaxWordLength int
	WordsFile     string
}

// Resolve layers flags over the loaded config.
func (f SettingsFlags) Resolve(cfg *config.Config) *config.Config {
	out := *cfg
	if f.Speed != 0 {
		out.Speed = f.Speed
	}
	if f.Frequency != 0 {
		out.Frequency = f.Frequency
	}
	if f.MaxWordLength != 0 {
		out.MaxWordLength = f.MaxWordLength
	}
	if f.WordsFile != "" {
		out.WordsFile = f.WordsFile
	}
	return &out
}

// LoadSettings loads config, applies flags and validates the result.
func LoadSettings(f SettingsFlags) (*config.Config, trainer.Settings, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, trainer.Settings{}, err
	}
	cfg = f.Resolve(cfg)
	settings := cfg.Settings()
	if err := settings.Validate(); err != nil {
		return nil, trainer.Settings{}, err
	}
	return cfg, settings, nil
}
