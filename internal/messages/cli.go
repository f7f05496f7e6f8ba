package messages

// CLI messages for user-facing commands and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "autosync"
	// RootShort is the short description for the root command.
	RootShort          = "Risk-gated automatic dependency upgrades"
	RootFlagConfig     = "Path to autosync.toml (default ~/.config/autosync/autosync.toml)"
	RootFlagEnvFile    = "Path to a .env file with AUTOSYNC_ overrides"
	RootDefaultConfig  = "~/.config/autosync/autosync.toml"
	RootResolvePathFmt = "resolve %s: %w"

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// RunUse is the run command name.
	RunUse             = "run"
	RunShort           = "Scan, classify, gate, and apply safe upgrades once"
	RunFlagJSON        = "Print the result as JSON"
	RunFlagDryRun      = "Assess and gate without applying upgrades"
	RunFlagFailOnBlock = "Exit with status 2 when the gate blocks auto-apply"

	// AssessUse is the assess command name.
	AssessUse           = "assess"
	AssessShort         = "Classify and gate a candidate list without running collaborators"
	AssessFlagInput     = "Read candidates JSON from this file instead of stdin"
	AssessFlagMaxMajor  = "Maximum major upgrades (unlimited when unset)"
	AssessFlagMaxMinor  = "Maximum minor upgrades (unlimited when unset)"
	AssessFlagMaxPatch  = "Maximum patch upgrades (unlimited when unset)"
	AssessReadInputFmt  = "read candidates %s: %w"
	AssessDecodeFmt     = "decode candidates %s: %w"
	AssessStdinSource   = "stdin"
	AssessInvalidPolicy = "invalid thresholds: %w"

	// WatchUse is the watch command name.
	WatchUse                = "watch"
	WatchShort              = "Run auto-sync on the configured cron schedule"
	WatchScheduleRequired   = "schedule.cron is required for watch"
	WatchMetricsServerFmt   = "metrics server: %w"
	WatchMetricsListenFmt   = "Serving metrics on %s\n"
	WatchStartedFmt         = "Watching with schedule %q (deadline %s)\n"
	WatchRegisterMetricsFmt = "register metrics: %w"

	// McpUse is the hidden MCP server command name.
	McpUse   = "mcp"
	McpShort = "Run an MCP stdio server exposing a dry-run auto-sync plan"

	RenderHeaderFmt       = "Auto-sync run %s\n"
	RenderCountsFmt       = "Candidates: %d major, %d minor, %d patch, %d unclassified\n"
	RenderTierLineFmt     = "  %s: %s\n"
	RenderUnclassifiedFmt = "  unclassified (never auto-applied): %s\n"
	RenderBlockedFmt      = "Auto-apply blocked: %s exceeded its threshold\n"
	RenderDisabledFmt     = "Auto-apply disabled; %d package(s) within thresholds: %s\n"
	RenderNothingMsg      = "Nothing to upgrade."
	RenderAssessHeader    = "Assessment"
	RenderAppliedFmt      = "Applied %d upgrade(s): %s\n"
	RenderApplyFailedFmt  = "Upgrade of %d package(s) was attempted and failed: %s\n"
	RenderNone            = "(none)"
	RenderPlanHeader      = "Executor plan:"
)
