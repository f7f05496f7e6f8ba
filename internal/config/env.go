package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/conn-castle/dep-autosync/internal/messages"
)

// Environment override keys.
const (
	EnvMaxMajor      = "AUTOSYNC_MAX_MAJOR"
	EnvMaxMinor      = "AUTOSYNC_MAX_MINOR"
	EnvMaxPatch      = "AUTOSYNC_MAX_PATCH"
	EnvAutoApplySafe = "AUTOSYNC_AUTO_APPLY_SAFE"
	EnvLogLevel      = "AUTOSYNC_LOG_LEVEL"

	envPrefix    = "AUTOSYNC_"
	envUnlimited = "unlimited"
)

// LoadEnv reads a .env file into a key-value map restricted to the AUTOSYNC_ namespace.
func LoadEnv(path string) (map[string]string, error) {
	env, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf(messages.ConfigInvalidEnvFileFmt, path, err)
	}
	return filterAutosyncEnv(env), nil
}

// filterAutosyncEnv restricts values to the AUTOSYNC_ namespace.
func filterAutosyncEnv(env map[string]string) map[string]string {
	if len(env) == 0 {
		return env
	}
	filtered := make(map[string]string, len(env))
	for key, value := range env {
		if strings.HasPrefix(key, envPrefix) {
			filtered[key] = value
		}
	}
	return filtered
}

// ApplyEnv overlays AUTOSYNC_ overrides onto the config.
func (c *Config) ApplyEnv(env map[string]string) error {
	limits := []struct {
		key    string
		target **int
	}{
		{EnvMaxMajor, &c.Thresholds.MaxMajor},
		{EnvMaxMinor, &c.Thresholds.MaxMinor},
		{EnvMaxPatch, &c.Thresholds.MaxPatch},
	}
	for _, limit := range limits {
		raw, ok := env[limit.key]
		if !ok {
			continue
		}
		value, err := parseLimit(limit.key, raw)
		if err != nil {
			return err
		}
		*limit.target = value
	}

	if raw, ok := env[EnvAutoApplySafe]; ok {
		parsed, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return fmt.Errorf(messages.ConfigEnvBoolInvalidFmt, EnvAutoApplySafe, raw)
		}
		c.AutoApply.Safe = &parsed
	}
	if raw, ok := env[EnvLogLevel]; ok && strings.TrimSpace(raw) != "" {
		c.Log.Level = strings.TrimSpace(raw)
	}
	return nil
}

func parseLimit(key string, raw string) (*int, error) {
	trimmed := strings.TrimSpace(raw)
	if strings.EqualFold(trimmed, envUnlimited) {
		return nil, nil
	}
	value, err := strconv.Atoi(trimmed)
	if err != nil || value < 0 {
		return nil, fmt.Errorf(messages.ConfigEnvIntInvalidFmt, key, raw)
	}
	return &value, nil
}
