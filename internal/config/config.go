package config

import (
	"time"

	"github.com/conn-castle/dep-autosync/internal/gate"
)

// Config is the parsed autosync.toml.
type Config struct {
	Thresholds Thresholds    `toml:"thresholds"`
	AutoApply  AutoApply     `toml:"auto_apply"`
	Preflight  CommandConfig `toml:"preflight"`
	Guard      CommandConfig `toml:"guard"`
	Upgrade    CommandConfig `toml:"upgrade"`
	Schedule   Schedule      `toml:"schedule"`
	Log        Log           `toml:"log"`
	Metrics    Metrics       `toml:"metrics"`
}

// Thresholds caps how many packages per tier may be auto-applied.
// A missing key means the tier is unlimited.
type Thresholds struct {
	MaxMajor *int `toml:"max_major"`
	MaxMinor *int `toml:"max_minor"`
	MaxPatch *int `toml:"max_patch"`
}

// AutoApply toggles automatic upgrades when the gate allows them.
type AutoApply struct {
	Safe *bool `toml:"safe"`
}

// CommandConfig describes an external collaborator command.
type CommandConfig struct {
	Command []string `toml:"command"`
	Timeout string   `toml:"timeout"`
}

// Schedule configures watch mode.
type Schedule struct {
	Cron     string `toml:"cron"`
	Deadline string `toml:"deadline"`
}

// Log configures the structured logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Metrics configures the Prometheus endpoint served in watch mode.
type Metrics struct {
	Listen string `toml:"listen"`
}

// Policy builds the immutable gate policy from the validated thresholds.
func (c *Config) Policy() (gate.Policy, error) {
	safe := c.AutoApply.Safe != nil && *c.AutoApply.Safe
	return gate.NewPolicy(c.Thresholds.MaxMajor, c.Thresholds.MaxMinor, c.Thresholds.MaxPatch, safe)
}

// CommandTimeout returns the parsed timeout for a command section, or zero when unset.
// Validate has already rejected malformed values.
func (c CommandConfig) CommandTimeout() time.Duration {
	if c.Timeout == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// ScheduleDeadline returns the per-run deadline for watch mode, or zero when unset.
func (c *Config) ScheduleDeadline() time.Duration {
	if c.Schedule.Deadline == "" {
		return 0
	}
	d, err := time.ParseDuration(c.Schedule.Deadline)
	if err != nil {
		return 0
	}
	return d
}

// LogLevel returns the configured level with the default applied.
func (c *Config) LogLevel() string {
	if c.Log.Level == "" {
		return "info"
	}
	return c.Log.Level
}

// LogFormat returns the configured encoding with the default applied.
func (c *Config) LogFormat() string {
	if c.Log.Format == "" {
		return "console"
	}
	return c.Log.Format
}
