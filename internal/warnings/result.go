package warnings

import (
	"fmt"
	"strings"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/messages"
)

// FromResult lists the warnings an operator should see for one auto-sync result.
// Order is stable: unclassified versions, then exceedances, then executor failure.
func FromResult(result autosync.Result) []Warning {
	var out []Warning
	if names := result.Assessment.Unclassified; len(names) > 0 {
		out = append(out, Warning{
			Code:    CodeUnclassifiedVersion,
			Subject: strings.Join(names, ", "),
			Message: fmt.Sprintf(messages.WarningUnclassifiedFmt, len(names)),
			Fix:     messages.WarningUnclassifiedFix,
		})
	}
	decision := result.AutoApply
	for _, tier := range decision.Exceedances {
		out = append(out, Warning{
			Code:     CodeThresholdExceeded,
			Subject:  tier.String(),
			Message:  fmt.Sprintf(messages.WarningThresholdFmt, tier, result.Assessment.Counts.Get(tier)),
			Fix:      messages.WarningThresholdFix,
			Details:  result.Assessment.Packages(tier),
			Severity: SeverityCritical,
		})
	}
	if decision.Applied && decision.Succeeded != nil && !*decision.Succeeded {
		out = append(out, Warning{
			Code:     CodeUpgradeReportedFail,
			Subject:  strings.Join(decision.Flatten(), ", "),
			Message:  messages.WarningUpgradeFailed,
			Fix:      messages.WarningUpgradeFailedFix,
			Severity: SeverityCritical,
		})
	}
	return out
}
