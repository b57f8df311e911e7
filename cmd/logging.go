package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Coeai-9487/kidney-meals-lottery/internal/config"
	"github.com/rs/zerolog"
)

// newLogger builds the process logger. The TUI owns the terminal, so it only
// logs to a file (log_file, or the state dir with --debug). One-shot commands
// log warnings to stderr.
func newLogger(cfg *config.Config, interactive bool) (zerolog.Logger, io.Closer, error) {
	level := zerolog.InfoLevel
	if flagDebug {
		level = zerolog.DebugLevel
	}

	if !interactive {
		if !flagDebug {
			level = zerolog.WarnLevel
		}
		w := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
		return zerolog.New(w).Level(level).With().Timestamp().Logger(), nopCloser{}, nil
	}

	path := cfg.LogFile
	if path == "" && flagDebug {
		path = config.DefaultLogPath()
	}
	if path == "" {
		return zerolog.Nop(), nopCloser{}, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, fmt.Errorf("opening log file: %w", err)
	}
	return zerolog.New(f).Level(level).With().Timestamp().Logger(), f, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
