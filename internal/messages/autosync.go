package messages

// Engine messages for classification, gating, orchestration, and collaborators.
const (
	RiskUnknownTierFmt = "unknown risk tier %q"

	GateNegativeThreshold    = "negative threshold"
	GateNegativeThresholdFmt = "max_%s must be >= 0 (got %d)"

	AutosyncNilCoordinator = "auto-sync coordinator is required"
	AutosyncStageFailedFmt = "%s failed: %v"

	CommandRequiredFmt      = "%s command is required"
	CommandRunFailedFmt     = "run %s command: %w"
	CommandDecodeScanFmt    = "decode guard output: %w"
	CommandEncodeRequestFmt = "encode upgrade request: %w"
	CommandEmptyArgv        = "command argv is empty"

	LoggingLevelInvalidFmt  = "invalid log level %q: %w"
	LoggingFormatInvalidFmt = "invalid log format %q"

	ScheduleInvalidSpecFmt   = "invalid schedule %q: %w"
	ScheduleExecutorRequired = "schedule executor is required"

	McpRunPlanServerFailedFmt = "run MCP plan server: %w"
	McpServerRunnerNil        = "server runner is nil"
	McpPlanToolDescription    = "Run preflight and guard, then classify and gate the upgrade candidates. Never applies upgrades."
)

// Run warnings.
const (
	WarningUnclassifiedFmt  = "%d candidate(s) have versions that cannot be classified and were skipped"
	WarningUnclassifiedFix  = "Upgrade these packages manually or report the version scheme to the guard scanner"
	WarningThresholdFmt     = "%s upgrades (%d) exceed the configured threshold; nothing was applied"
	WarningThresholdFix     = "Review the listed packages and upgrade them manually, or raise the threshold"
	WarningUpgradeFailed    = "The upgrade executor reported failure for the dispatched packages"
	WarningUpgradeFailedFix = "Inspect the executor plan and rerun once the failure is resolved"
)
