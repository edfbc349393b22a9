package app

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// newLogger builds the diagnostic logger. The terminal belongs to the UI, so
// output goes to path, or nowhere when path is empty. verbose forces debug.
func newLogger(path, level string, verbose bool) (*logrus.Logger, func() error, error) {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
		DisableColors: true,
	})

	lvl := logrus.InfoLevel
	if strings.TrimSpace(level) != "" {
		parsed, err := logrus.ParseLevel(level)
		if err != nil {
			return nil, nil, fmt.Errorf("parse log level: %w", err)
		}
		lvl = parsed
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	logger.SetLevel(lvl)

	if strings.TrimSpace(path) == "" {
		logger.SetOutput(io.Discard)
		return logger, func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger.SetOutput(file)
	return logger, file.Close, nil
}
