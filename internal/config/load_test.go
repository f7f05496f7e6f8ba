package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/conn-castle/dep-autosync/internal/risk"
)

const validConfig = `
[thresholds]
max_major = 0
max_minor = 0
max_patch = 5

[auto_apply]
safe = true

[preflight]
command = ["dep-preflight"]

[guard]
command = ["dep-guard", "--json"]
timeout = "2m"

[upgrade]
command = ["dep-upgrade"]

[schedule]
cron = "@daily"
deadline = "30m"

[log]
level = "debug"
format = "json"

[metrics]
listen = ":9464"
`

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "autosync.toml")
	require.NoError(t, os.WriteFile(path, []byte(validConfig), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)

	require.Equal(t, []string{"dep-guard", "--json"}, cfg.Guard.Command)
	require.Equal(t, 2*time.Minute, cfg.Guard.CommandTimeout())
	require.Zero(t, cfg.Upgrade.CommandTimeout())
	require.Equal(t, 30*time.Minute, cfg.ScheduleDeadline())
	require.Equal(t, "debug", cfg.LogLevel())
	require.Equal(t, "json", cfg.LogFormat())
	require.Equal(t, ":9464", cfg.Metrics.Listen)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.True(t, policy.AutoApplySafe())
	limit, ok := policy.Limit(risk.Patch)
	require.True(t, ok)
	require.Equal(t, 5, limit)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"), nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
[auto_apply]
safe = false
[guard]
command = ["g"]
[upgrade]
command = ["u"]
`), "test", nil)
	require.NoError(t, err)
	require.Equal(t, "info", cfg.LogLevel())
	require.Equal(t, "console", cfg.LogFormat())
	require.Zero(t, cfg.ScheduleDeadline())

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.False(t, policy.AutoApplySafe())
	for _, tier := range risk.Levels {
		_, ok := policy.Limit(tier)
		require.False(t, ok, "tier %s should be unlimited", tier)
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := ParseConfig([]byte("[thresholds"), "broken", nil)
	require.Error(t, err)
	require.False(t, errors.Is(err, ErrConfigValidation))
}

func TestParseConfigValidationErrors(t *testing.T) {
	base := `
[auto_apply]
safe = true
[guard]
command = ["g"]
[upgrade]
command = ["u"]
`
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: base + "[thresholds]\nmax_critical = 1\n", want: "unrecognized config keys"},
		{name: "negative threshold", content: base + "[thresholds]\nmax_minor = -1\n", want: "thresholds.max_minor must be >= 0"},
		{name: "missing safe", content: "[guard]\ncommand = [\"g\"]\n[upgrade]\ncommand = [\"u\"]\n", want: "auto_apply.safe is required"},
		{name: "missing guard", content: "[auto_apply]\nsafe = true\n[upgrade]\ncommand = [\"u\"]\n", want: "guard.command is required"},
		{name: "missing upgrade", content: "[auto_apply]\nsafe = true\n[guard]\ncommand = [\"g\"]\n", want: "upgrade.command is required"},
		{name: "empty arg", content: "[auto_apply]\nsafe = true\n[guard]\ncommand = [\"g\", \"\"]\n[upgrade]\ncommand = [\"u\"]\n", want: "guard.command[1] must not be empty"},
		{name: "bad timeout", content: "[auto_apply]\nsafe = true\n[guard]\ncommand = [\"g\"]\ntimeout = \"soon\"\n[upgrade]\ncommand = [\"u\"]\n", want: "guard.timeout"},
		{name: "zero timeout", content: "[auto_apply]\nsafe = true\n[guard]\ncommand = [\"g\"]\n[upgrade]\ncommand = [\"u\"]\ntimeout = \"0s\"\n", want: "upgrade.timeout must be positive"},
		{name: "bad cron", content: base + "[schedule]\ncron = \"every tuesday\"\n", want: "schedule.cron"},
		{name: "bad deadline", content: base + "[schedule]\ndeadline = \"-1m\"\n", want: "schedule.deadline"},
		{name: "bad level", content: base + "[log]\nlevel = \"loud\"\n", want: "log.level"},
		{name: "bad format", content: base + "[log]\nformat = \"xml\"\n", want: "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.content), "autosync.toml", nil)
			require.Error(t, err)
			require.True(t, errors.Is(err, ErrConfigValidation), "expected validation error, got %v", err)
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestParseConfigLenientSkipsValidation(t *testing.T) {
	cfg, err := ParseConfigLenient([]byte("[thresholds]\nmax_major = -3\n"), "lenient")
	require.NoError(t, err)
	require.Equal(t, -3, *cfg.Thresholds.MaxMajor)
}
