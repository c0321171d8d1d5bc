// Package config provides configuration loading for mctrainer.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/gigurra/mctrainer/cmd/morse/trainer"
)

// EnvPrefix is prepended to every environment override, e.g. MCTRAINER_SPEED.
const EnvPrefix = "MCTRAINER_"

// Config represents the mctrainer configuration file structure.
type Config struct {
	Speed         int     `json:"speed" env:"SPEED"`
	Frequency     float64 `json:"frequency" env:"FREQUENCY"`
	MaxWordLength int     `json:"max_word_length" env:"MAX_WORD_LENGTH"`
	// WordsFile is a flat word list, one word per line. Empty means the
	// built-in list.
	WordsFile string `json:"words_file,omitempty" env:"WORDS"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	d := trainer.DefaultSettings()
	return &Config{
		Speed:         d.Speed,
		Frequency:     d.Frequency,
		MaxWordLength: d.MaxWordLength,
	}
}

// ConfigDir returns the config directory (~/.mctrainer), or
// $MCTRAINER_CONFIG_DIR when set.
func ConfigDir() string {
	if dir := os.Getenv(EnvPrefix + "CONFIG_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".mctrainer")
}

// ConfigPath returns the path to the config file (~/.mctrainer/config.json).
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.json")
}

// Load loads the config from ConfigPath and applies environment overrides.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom loads the config at path. A missing file yields the defaults.
// MCTRAINER_* variables override what the file says.
func LoadFrom(path string) (*Config, error) {
	config, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("reading environment: %w", err)
	}
	return config, nil
}

// LoadFile reads path over the defaults without looking at the environment.
// Use it before Save so overrides don't leak into the file.
func LoadFile(path string) (*Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	if err == nil {
		// Keys missing from the file keep their defaults. An explicit zero
		// stays zero so validation can reject it.
		if err := json.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	return config, nil
}

// Save saves the config to ConfigPath.
func Save(config *Config) error {
	return SaveTo(ConfigPath(), config)
}

func SaveTo(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Settings converts the config to trainer settings.
func (c *Config) Settings() trainer.Settings {
	return trainer.Settings{
		Speed:         c.Speed,
		Frequency:     c.Frequency,
		MaxWordLength: c.MaxWordLength,
	}
}

// Words loads the configured word list, or the built-in one.
func (c *Config) Words() ([]string, error) {
	if c.WordsFile == "" {
		return trainer.DefaultWords(), nil
	}
	return trainer.LoadWords(c.WordsFile)
}
