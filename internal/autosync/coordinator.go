package autosync

import (
	"context"
	"encoding/json"

	"github.com/conn-castle/dep-autosync/internal/risk"
)

// Coordinator is the set of external collaborators the orchestrator drives.
// Implementations must be safe for concurrent use if one Coordinator is shared
// by concurrent Execute calls.
type Coordinator interface {
	// Preflight runs the readiness probe. Its report is advisory and is forwarded
	// to Guard as a hint.
	Preflight(ctx context.Context) (json.RawMessage, error)
	// Guard scans for upgrade candidates.
	Guard(ctx context.Context, hint json.RawMessage) (ScanResult, error)
	// Upgrade applies the selected packages and returns the executor's result verbatim.
	Upgrade(ctx context.Context, req UpgradeRequest) (json.RawMessage, error)
}

// ScanResult is the guard scanner output. A missing packages key is an empty scan.
type ScanResult struct {
	Packages []risk.Candidate `json:"packages"`
}

// UpgradeRequest is handed to the upgrade executor.
type UpgradeRequest struct {
	Packages       []string `json:"packages"`
	AutoApply      bool     `json:"auto_apply"`
	GenerateAdvice bool     `json:"generate_advice"`
}
