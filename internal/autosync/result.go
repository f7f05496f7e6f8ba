package autosync

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/conn-castle/dep-autosync/internal/gate"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

// Result is the composite outcome of one Execute call.
type Result struct {
	RunID      string          `json:"run_id"`
	Preflight  json.RawMessage `json:"preflight,omitempty"`
	Assessment risk.Assessment `json:"assessment"`
	AutoApply  gate.Decision   `json:"auto_apply"`
}

// Outcome summarizes a run for logs, metrics, and exit codes.
type Outcome string

// Run outcomes.
const (
	OutcomeApplied  Outcome = "applied"
	OutcomeFailed   Outcome = "failed"
	OutcomeBlocked  Outcome = "blocked"
	OutcomeDisabled Outcome = "disabled"
	OutcomeNoop     Outcome = "noop"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeError    Outcome = "error"
)

// OutcomeOf classifies a Result and the error returned alongside it.
func OutcomeOf(result Result, err error) Outcome {
	if err != nil {
		if stage, ok := FailedStage(err); ok && stage == StageUpgrade && result.AutoApply.Applied {
			return OutcomeFailed
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return OutcomeTimeout
		}
		return OutcomeError
	}
	decision := result.AutoApply
	switch {
	case !decision.Allowed:
		return OutcomeBlocked
	case decision.Applied && decision.Succeeded != nil && !*decision.Succeeded:
		return OutcomeFailed
	case decision.Applied:
		return OutcomeApplied
	case result.Assessment.Counts == (risk.Counts{}):
		return OutcomeNoop
	default:
		return OutcomeDisabled
	}
}

// planSucceeded reads an optional top-level "success" flag from the executor's plan.
// Plans without the flag, or that are not JSON objects, count as success.
func planSucceeded(plan json.RawMessage) bool {
	var payload struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(plan, &payload); err != nil {
		return true
	}
	if payload.Success == nil {
		return true
	}
	return *payload.Success
}
