package common

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// SetupLogging routes slog through a charmbracelet/log handler.
func SetupLogging(w io.Writer, verbose bool) {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "mctrainer",
	})
	slog.SetDefault(slog.New(handler))
}

// LogToFile sends logs to name inside the cache dir, for full screen modes
// where stderr is not usable. The returned func closes the file.
func LogToFile(name string, verbose bool) (func(), error) {
	path := LogPath(name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}
	SetupLogging(f, verbose)
	return func() { _ = f.Close() }, nil
}
