package risk

import (
	"encoding/json"
	"strings"
)

// Candidate is one package the guard scanner proposes to upgrade.
// A null or missing version decodes to the empty string.
type Candidate struct {
	Name      string   `json:"name"`
	Current   string   `json:"current"`
	Candidate string   `json:"candidate"`
	Reasons   []string `json:"reasons,omitempty"`
}

// reasonOverrides is checked in order; the first keyword found in any reason wins.
var reasonOverrides = []struct {
	keyword string
	tier    Tier
}{
	{keyword: "major", tier: Major},
	{keyword: "minor", tier: Minor},
	{keyword: "patch", tier: Patch},
}

// Assessment partitions candidate names by tier.
// Every name appears in exactly one tier list or in Unclassified, in first-seen order.
type Assessment struct {
	Counts       Counts
	ByLevel      map[Tier][]string
	Unclassified []string
}

// Packages returns the names assessed at tier in first-seen order.
func (a Assessment) Packages(tier Tier) []string {
	if tier == Unclassified {
		return a.Unclassified
	}
	return a.ByLevel[tier]
}

// Total returns the number of distinct names in the assessment.
func (a Assessment) Total() int {
	return a.Counts.Major + a.Counts.Minor + a.Counts.Patch + len(a.Unclassified)
}

// MarshalJSON renders the assessment with every tier key present.
func (a Assessment) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Counts          Counts              `json:"counts"`
		PackagesByLevel map[string][]string `json:"packages_by_level"`
		Unclassified    []string            `json:"unclassified"`
	}{
		Counts:          a.Counts,
		PackagesByLevel: TierLists(a.ByLevel),
		Unclassified:    nonNil(a.Unclassified),
	})
}

// TierLists renders per-tier lists keyed by tier name with all three tiers present.
func TierLists(byLevel map[Tier][]string) map[string][]string {
	out := make(map[string][]string, len(Levels))
	for _, tier := range Levels {
		out[tier.String()] = nonNil(byLevel[tier])
	}
	return out
}

// Assess classifies each candidate, applying reason keyword overrides on top of
// the numeric classification. An empty input yields an empty assessment.
func Assess(candidates []Candidate) Assessment {
	assessment := Assessment{ByLevel: make(map[Tier][]string, len(Levels))}
	seen := make(map[string]struct{}, len(candidates))
	for _, candidate := range candidates {
		if _, ok := seen[candidate.Name]; ok {
			continue
		}
		seen[candidate.Name] = struct{}{}

		tier := TierFor(candidate)
		if tier == Unclassified {
			assessment.Unclassified = append(assessment.Unclassified, candidate.Name)
			continue
		}
		assessment.ByLevel[tier] = append(assessment.ByLevel[tier], candidate.Name)
		assessment.Counts.inc(tier)
	}
	return assessment
}

// TierFor returns the final tier for a single candidate.
func TierFor(candidate Candidate) Tier {
	if tier, ok := overrideFromReasons(candidate.Reasons); ok {
		return tier
	}
	return Classify(candidate.Current, candidate.Candidate)
}

// overrideFromReasons scans reasons for tier keywords in severity order.
func overrideFromReasons(reasons []string) (Tier, bool) {
	if len(reasons) == 0 {
		return Unclassified, false
	}
	lowered := make([]string, len(reasons))
	for i, reason := range reasons {
		lowered[i] = strings.ToLower(reason)
	}
	for _, override := range reasonOverrides {
		for _, reason := range lowered {
			if strings.Contains(reason, override.keyword) {
				return override.tier, true
			}
		}
	}
	return Unclassified, false
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
