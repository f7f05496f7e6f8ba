package config

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap/zapcore"

	"github.com/conn-castle/dep-autosync/internal/messages"
)

var validLogFormats = map[string]struct{}{
	"":        {},
	"console": {},
	"json":    {},
}

// Validate ensures the config is complete and consistent.
func (c *Config) Validate(path string) error {
	if c.AutoApply.Safe == nil {
		return fmt.Errorf(messages.ConfigAutoApplySafeRequiredFmt, path)
	}

	limits := []struct {
		name  string
		value *int
	}{
		{"major", c.Thresholds.MaxMajor},
		{"minor", c.Thresholds.MaxMinor},
		{"patch", c.Thresholds.MaxPatch},
	}
	for _, limit := range limits {
		if limit.value != nil && *limit.value < 0 {
			return fmt.Errorf(messages.ConfigThresholdNegativeFmt, path, limit.name, *limit.value)
		}
	}

	if len(c.Guard.Command) == 0 {
		return fmt.Errorf(messages.ConfigGuardCommandRequiredFmt, path)
	}
	if len(c.Upgrade.Command) == 0 {
		return fmt.Errorf(messages.ConfigUpgradeCommandRequiredFmt, path)
	}
	sections := []struct {
		name string
		cmd  CommandConfig
	}{
		{"preflight", c.Preflight},
		{"guard", c.Guard},
		{"upgrade", c.Upgrade},
	}
	for _, section := range sections {
		if err := validateCommand(path, section.name, section.cmd); err != nil {
			return err
		}
	}

	if c.Schedule.Cron != "" {
		if _, err := cron.ParseStandard(c.Schedule.Cron); err != nil {
			return fmt.Errorf(messages.ConfigScheduleCronInvalidFmt, path, c.Schedule.Cron, err)
		}
	}
	if c.Schedule.Deadline != "" {
		d, err := time.ParseDuration(c.Schedule.Deadline)
		if err != nil || d <= 0 {
			return fmt.Errorf(messages.ConfigScheduleDeadlineInvalidFmt, path, c.Schedule.Deadline)
		}
	}

	if c.Log.Level != "" {
		if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf(messages.ConfigLogLevelInvalidFmt, path)
		}
	}
	if _, ok := validLogFormats[c.Log.Format]; !ok {
		return fmt.Errorf(messages.ConfigLogFormatInvalidFmt, path)
	}
	return nil
}

func validateCommand(path string, name string, cmd CommandConfig) error {
	for i, arg := range cmd.Command {
		if arg == "" {
			return fmt.Errorf(messages.ConfigCommandEmptyArgFmt, path, name, i)
		}
	}
	if cmd.Timeout == "" {
		return nil
	}
	d, err := time.ParseDuration(cmd.Timeout)
	if err != nil {
		return fmt.Errorf(messages.ConfigTimeoutInvalidFmt, path, name, cmd.Timeout)
	}
	if d <= 0 {
		return fmt.Errorf(messages.ConfigTimeoutNegativeFmt, path, name)
	}
	return nil
}
