// Package config loads exam-calendar settings.
//
// Settings are layered: built-in defaults, then an optional JSON file, then
// EXAM_CALENDAR_* environment variables. Command-line flags are applied on
// top by the cli package.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"
	_ "time/tzdata" // exam times resolve on hosts without zoneinfo

	"github.com/pfrederiksen/exam-calendar/internal/logger"
	"github.com/pfrederiksen/exam-calendar/internal/scraper"
)

// Environment variables that override file settings.
const (
	EnvURL      = "EXAM_CALENDAR_URL"
	EnvDataDir  = "EXAM_CALENDAR_DATA_DIR"
	EnvTimezone = "EXAM_CALENDAR_TIMEZONE"
	EnvLogLevel = "EXAM_CALENDAR_LOG_LEVEL"
)

// DefaultTimezone is the zone exam times are published in.
const DefaultTimezone = "America/New_York"

// DefaultDataDir holds the saved catalog between runs.
const DefaultDataDir = "~/.local/share/exam-calendar"

// Config holds all settings for a run.
type Config struct {
	URL      string `json:"url"`
	DataDir  string `json:"data_dir"`
	Timezone string `json:"timezone"`
	LogLevel string `json:"log_level"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		URL:      scraper.ExamCalendarURL,
		DataDir:  DefaultDataDir,
		Timezone: DefaultTimezone,
		LogLevel: string(logger.LevelInfo),
	}
}

// Load builds a Config from defaults, the JSON file at path (skipped when
// path is empty) and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.mergeEnv(os.Getenv)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	defer file.Close()

	var fromFile Config
	if err := json.NewDecoder(file).Decode(&fromFile); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	c.merge(fromFile)
	return nil
}

func (c *Config) mergeEnv(getenv func(string) string) {
	c.merge(Config{
		URL:      getenv(EnvURL),
		DataDir:  getenv(EnvDataDir),
		Timezone: getenv(EnvTimezone),
		LogLevel: getenv(EnvLogLevel),
	})
}

// merge copies the non-empty fields of other over c
func (c *Config) merge(other Config) {
	if v := strings.TrimSpace(other.URL); v != "" {
		c.URL = v
	}
	if v := strings.TrimSpace(other.DataDir); v != "" {
		c.DataDir = v
	}
	if v := strings.TrimSpace(other.Timezone); v != "" {
		c.Timezone = v
	}
	if v := strings.TrimSpace(other.LogLevel); v != "" {
		c.LogLevel = v
	}
}

// Validate checks that every setting is usable
func (c *Config) Validate() error {
	var errs []error
	if c.URL == "" {
		errs = append(errs, errors.New("url cannot be empty"))
	}
	if c.DataDir == "" {
		errs = append(errs, errors.New("data_dir cannot be empty"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, err)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Location resolves the configured time zone
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("unknown timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Level returns the parsed log level
func (c *Config) Level() logger.Level {
	level, err := logger.ParseLevel(c.LogLevel)
	if err != nil {
		return logger.LevelInfo
	}
	return level
}
