package messages

// Config messages for configuration loading and validation.
const (
	// ConfigMissingFileFmt formats missing config file errors.
	ConfigMissingFileFmt      = "missing config file %s: %w"
	ConfigInvalidConfigFmt    = "invalid config %s: %w"
	ConfigUnrecognizedKeysFmt = "%s: unrecognized config keys: %v"
	ConfigInvalidEnvFileFmt   = "invalid env file %s: %w"
	ConfigValidationGuidance  = "(edit the config file to fix the listed field)"

	ConfigAutoApplySafeRequiredFmt   = "%s: auto_apply.safe is required"
	ConfigThresholdNegativeFmt       = "%s: thresholds.max_%s must be >= 0 (got %d)"
	ConfigGuardCommandRequiredFmt    = "%s: guard.command is required"
	ConfigUpgradeCommandRequiredFmt  = "%s: upgrade.command is required"
	ConfigCommandEmptyArgFmt         = "%s: %s.command[%d] must not be empty"
	ConfigTimeoutInvalidFmt          = "%s: %s.timeout %q is not a valid duration"
	ConfigTimeoutNegativeFmt         = "%s: %s.timeout must be positive"
	ConfigScheduleCronInvalidFmt     = "%s: schedule.cron %q is invalid: %v"
	ConfigScheduleDeadlineInvalidFmt = "%s: schedule.deadline %q is not a valid positive duration"
	ConfigLogLevelInvalidFmt         = "%s: log.level must be one of debug, info, warn, error"
	ConfigLogFormatInvalidFmt        = "%s: log.format must be console or json"

	ConfigEnvIntInvalidFmt  = "%s=%q must be a non-negative integer or \"unlimited\""
	ConfigEnvBoolInvalidFmt = "%s=%q must be true or false"
)
