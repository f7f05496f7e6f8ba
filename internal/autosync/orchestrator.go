package autosync

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conn-castle/dep-autosync/internal/gate"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

// Orchestrator runs preflight, guard, assessment, gating, and (when allowed) upgrade.
// It holds no mutable state; concurrent Execute calls are safe when the
// Coordinator is.
type Orchestrator struct {
	policy      gate.Policy
	coordinator Coordinator
	logger      *zap.Logger
	newRunID    func() string
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the structured logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithRunIDFunc overrides run ID generation.
func WithRunIDFunc(fn func() string) Option {
	return func(o *Orchestrator) {
		if fn != nil {
			o.newRunID = fn
		}
	}
}

// New returns an Orchestrator bound to policy and coordinator.
func New(policy gate.Policy, coordinator Coordinator, opts ...Option) (*Orchestrator, error) {
	if coordinator == nil {
		return nil, ErrNilCoordinator
	}
	o := &Orchestrator{
		policy:      policy,
		coordinator: coordinator,
		logger:      zap.NewNop(),
		newRunID:    func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Policy returns the gate policy the orchestrator was built with.
func (o *Orchestrator) Policy() gate.Policy {
	return o.policy
}

// Execute performs one auto-sync pass.
//
// Collaborator errors are returned wrapped in a *StageError. When the upgrade
// executor fails, the returned Result is still populated with Applied=true and
// Succeeded=false so callers can tell a failed attempt from a blocked run.
func (o *Orchestrator) Execute(ctx context.Context) (Result, error) {
	result := Result{RunID: o.newRunID()}
	logger := o.logger.With(zap.String("run_id", result.RunID))

	report, err := o.coordinator.Preflight(ctx)
	if err != nil {
		logger.Error("preflight failed", zap.Error(err))
		return result, &StageError{Stage: StagePreflight, Err: err}
	}
	result.Preflight = report
	logger.Debug("preflight complete")

	scan, err := o.coordinator.Guard(ctx, report)
	if err != nil {
		logger.Error("guard scan failed", zap.Error(err))
		return result, &StageError{Stage: StageGuard, Err: err}
	}

	result.Assessment = risk.Assess(scan.Packages)
	logger.Info("assessment complete",
		zap.Int("candidates", len(scan.Packages)),
		zap.Int("major", result.Assessment.Counts.Major),
		zap.Int("minor", result.Assessment.Counts.Minor),
		zap.Int("patch", result.Assessment.Counts.Patch),
		zap.Int("unclassified", len(result.Assessment.Unclassified)),
	)

	result.AutoApply = gate.Evaluate(result.Assessment, o.policy)
	if !result.AutoApply.Allowed {
		logger.Warn("auto-apply blocked", zap.Stringers("exceedances", result.AutoApply.Exceedances))
		return result, nil
	}
	if !result.AutoApply.Applied {
		logger.Info("auto-apply disabled", zap.Int("eligible", result.Assessment.Counts.Major+result.Assessment.Counts.Minor+result.Assessment.Counts.Patch))
		return result, nil
	}

	req := UpgradeRequest{
		Packages:       result.AutoApply.Flatten(),
		AutoApply:      true,
		GenerateAdvice: false,
	}
	logger.Info("dispatching upgrade", zap.Strings("packages", req.Packages))
	plan, err := o.coordinator.Upgrade(ctx, req)
	if err != nil {
		failed := false
		result.AutoApply.Succeeded = &failed
		logger.Error("upgrade failed", zap.Error(err))
		return result, &StageError{Stage: StageUpgrade, Err: err}
	}
	succeeded := planSucceeded(plan)
	result.AutoApply.Plan = plan
	result.AutoApply.Succeeded = &succeeded
	logger.Info("upgrade dispatched", zap.Bool("succeeded", succeeded))
	return result, nil
}
