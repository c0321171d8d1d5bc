// Package common holds what every mctrainer command shares: flag enrichment,
// settings resolution and log setup.
package common

import (
	"os"
	"path/filepath"

	"github.com/GiGurra/boa/pkg/boa"
)

func DefaultParamEnricher() boa.ParamEnricher {
	return boa.ParamEnricherCombine(
		boa.ParamEnricherBool,
		boa.ParamEnricherName,
		boa.ParamEnricherShort,
	)
}

// CacheDir holds log files. It follows XDG_CACHE_HOME when set.
// https://specifications.freedesktop.org/basedir/latest/#variables
func CacheDir() string {
	dir := os.Getenv("XDG_CACHE_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".cache")
	}
	return filepath.Join(dir, "mctrainer")
}

// LogPath is where full screen commands write their log.
func LogPath(name string) string {
	return filepath.Join(CacheDir(), name)
}
