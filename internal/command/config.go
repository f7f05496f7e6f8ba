package command

import "github.com/conn-castle/dep-autosync/internal/config"

// FromConfig maps the validated config sections onto Commands.
func FromConfig(cfg *config.Config) Commands {
	return Commands{
		Preflight:        cfg.Preflight.Command,
		Guard:            cfg.Guard.Command,
		Upgrade:          cfg.Upgrade.Command,
		PreflightTimeout: cfg.Preflight.CommandTimeout(),
		GuardTimeout:     cfg.Guard.CommandTimeout(),
		UpgradeTimeout:   cfg.Upgrade.CommandTimeout(),
	}
}
