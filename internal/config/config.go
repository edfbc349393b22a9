package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures herotail's settings.
type Config struct {
	BufferCapacity  int
	HerokuBin       string // empty means discover
	ExportDir       string
	ExportCompress  bool
	LogFile         string
	LogLevel        string
	TickInterval    time.Duration
	MonitorInterval time.Duration
}

const (
	defaultConfigPath      = "~/.config/herotail/config.toml"
	defaultLogFile         = "~/.local/state/herotail/herotail.log"
	defaultExportDir       = "."
	defaultLogLevel        = "info"
	defaultBufferCapacity  = 10_000
	defaultTickInterval    = 100 * time.Millisecond
	defaultMonitorInterval = 2 * time.Second
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		BufferCapacity:  defaultBufferCapacity,
		ExportDir:       mustExpand(defaultExportDir),
		LogFile:         mustExpand(defaultLogFile),
		LogLevel:        defaultLogLevel,
		TickInterval:    defaultTickInterval,
		MonitorInterval: defaultMonitorInterval,
	}
}

// DefaultPath returns the config file location used when none is given.
func DefaultPath() string {
	return defaultConfigPath
}

// Load parses the config at path, falling back to defaults when it is missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BufferCapacity    int    `toml:"buffer_capacity"`
		HerokuBin         string `toml:"heroku_bin"`
		ExportDir         string `toml:"export_dir"`
		ExportCompress    bool   `toml:"export_compress"`
		LogFile           string `toml:"log_file"`
		LogLevel          string `toml:"log_level"`
		TickIntervalMS    int    `toml:"tick_interval_ms"`
		MonitorIntervalMS int    `toml:"monitor_interval_ms"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if raw.BufferCapacity > 0 {
		cfg.BufferCapacity = raw.BufferCapacity
	}
	if bin := strings.TrimSpace(raw.HerokuBin); bin != "" {
		cfg.HerokuBin = mustExpand(bin)
	}
	if dir := strings.TrimSpace(raw.ExportDir); dir != "" {
		cfg.ExportDir = mustExpand(dir)
	}
	cfg.ExportCompress = raw.ExportCompress
	if logFile := strings.TrimSpace(raw.LogFile); logFile != "" {
		cfg.LogFile = mustExpand(logFile)
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}
	if raw.TickIntervalMS > 0 {
		cfg.TickInterval = time.Duration(raw.TickIntervalMS) * time.Millisecond
	}
	if raw.MonitorIntervalMS > 0 {
		cfg.MonitorInterval = time.Duration(raw.MonitorIntervalMS) * time.Millisecond
	}

	return cfg, nil
}

// ExpandPath resolves a leading ~ and makes path absolute.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
