package gate

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/conn-castle/dep-autosync/internal/messages"
	"github.com/conn-castle/dep-autosync/internal/risk"
)

// ErrNegativeThreshold is returned when a tier limit is below zero.
var ErrNegativeThreshold = errors.New(messages.GateNegativeThreshold)

// Policy bounds automatic upgrades. A nil limit means the tier is unlimited.
// Build it with NewPolicy; a Policy is never mutated after construction.
type Policy struct {
	maxMajor      *int
	maxMinor      *int
	maxPatch      *int
	autoApplySafe bool
}

// NewPolicy validates the per-tier limits and returns an immutable Policy.
func NewPolicy(maxMajor, maxMinor, maxPatch *int, autoApplySafe bool) (Policy, error) {
	limits := []struct {
		tier  risk.Tier
		value *int
	}{
		{risk.Major, maxMajor},
		{risk.Minor, maxMinor},
		{risk.Patch, maxPatch},
	}
	for _, limit := range limits {
		if limit.value != nil && *limit.value < 0 {
			return Policy{}, fmt.Errorf("%w: "+messages.GateNegativeThresholdFmt, ErrNegativeThreshold, limit.tier, *limit.value)
		}
	}
	return Policy{
		maxMajor:      copyInt(maxMajor),
		maxMinor:      copyInt(maxMinor),
		maxPatch:      copyInt(maxPatch),
		autoApplySafe: autoApplySafe,
	}, nil
}

// Limit returns the configured maximum for tier and whether one is set.
func (p Policy) Limit(tier risk.Tier) (int, bool) {
	var limit *int
	switch tier {
	case risk.Major:
		limit = p.maxMajor
	case risk.Minor:
		limit = p.maxMinor
	case risk.Patch:
		limit = p.maxPatch
	}
	if limit == nil {
		return 0, false
	}
	return *limit, true
}

// AutoApplySafe reports whether allowed decisions should be applied.
func (p Policy) AutoApplySafe() bool {
	return p.autoApplySafe
}

// WithAutoApply returns a copy of p with the auto-apply toggle replaced.
func (p Policy) WithAutoApply(enabled bool) Policy {
	p.autoApplySafe = enabled
	return p
}

// Decision is the outcome of gating one assessment.
type Decision struct {
	Allowed     bool
	Exceedances []risk.Tier
	// Applied reports that an upgrade should be (or was) dispatched.
	Applied  bool
	Packages map[risk.Tier][]string
	// Plan is the executor's raw result; nil unless an upgrade ran.
	Plan json.RawMessage
	// Succeeded is nil unless an upgrade was dispatched.
	Succeeded *bool
}

// Flatten returns the selected packages in Major, Minor, Patch order.
func (d Decision) Flatten() []string {
	out := []string{}
	for _, tier := range risk.Levels {
		out = append(out, d.Packages[tier]...)
	}
	return out
}

// MarshalJSON renders the decision using the stable auto_apply report shape.
func (d Decision) MarshalJSON() ([]byte, error) {
	exceedances := make([]string, 0, len(d.Exceedances))
	for _, tier := range d.Exceedances {
		exceedances = append(exceedances, tier.String())
	}
	plan := d.Plan
	if len(plan) == 0 {
		plan = json.RawMessage("null")
	}
	return json.Marshal(struct {
		Allowed     bool                `json:"allowed"`
		Exceedances []string            `json:"exceedances"`
		Applied     bool                `json:"applied"`
		Succeeded   *bool               `json:"succeeded"`
		Packages    map[string][]string `json:"packages"`
		Plan        json.RawMessage     `json:"plan"`
	}{
		Allowed:     d.Allowed,
		Exceedances: exceedances,
		Applied:     d.Applied,
		Succeeded:   d.Succeeded,
		Packages:    risk.TierLists(d.Packages),
		Plan:        plan,
	})
}

// Evaluate compares assessment counts against policy limits.
// Gating is atomic: one exceeding tier blocks every tier's packages.
// Unclassified packages never count against a limit and are never selected.
func Evaluate(assessment risk.Assessment, policy Policy) Decision {
	decision := Decision{
		Exceedances: []risk.Tier{},
		Packages:    map[risk.Tier][]string{},
	}
	for _, tier := range risk.Levels {
		limit, ok := policy.Limit(tier)
		if ok && assessment.Counts.Get(tier) > limit {
			decision.Exceedances = append(decision.Exceedances, tier)
		}
	}
	decision.Allowed = len(decision.Exceedances) == 0
	if !decision.Allowed || !policy.AutoApplySafe() {
		return decision
	}

	for _, tier := range risk.Levels {
		names := assessment.Packages(tier)
		if len(names) == 0 {
			continue
		}
		decision.Packages[tier] = append([]string(nil), names...)
	}
	decision.Applied = true
	return decision
}

func copyInt(value *int) *int {
	if value == nil {
		return nil
	}
	v := *value
	return &v
}
