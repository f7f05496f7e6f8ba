package risk

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/conn-castle/dep-autosync/internal/messages"
)

// Tier labels the severity of a version change.
type Tier int

// Tiers in descending severity. Unclassified sorts last and is never gated.
const (
	Major Tier = iota
	Minor
	Patch
	Unclassified
)

// Levels lists the gated tiers in severity order.
var Levels = []Tier{Major, Minor, Patch}

func (t Tier) String() string {
	switch t {
	case Major:
		return "major"
	case Minor:
		return "minor"
	case Patch:
		return "patch"
	case Unclassified:
		return "unclassified"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// ParseTier converts a tier name (any case) into a Tier.
func ParseTier(raw string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "major":
		return Major, nil
	case "minor":
		return Minor, nil
	case "patch":
		return Patch, nil
	case "unclassified":
		return Unclassified, nil
	default:
		return Unclassified, fmt.Errorf(messages.RiskUnknownTierFmt, raw)
	}
}

// MarshalText renders the tier name so tiers work as JSON values and map keys.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText parses a tier name.
func (t *Tier) UnmarshalText(data []byte) error {
	parsed, err := ParseTier(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

var _ json.Marshaler = Counts{}

// Counts holds the number of candidates per gated tier.
type Counts struct {
	Major int
	Minor int
	Patch int
}

// Get returns the count for tier; Unclassified always reports zero.
func (c Counts) Get(tier Tier) int {
	switch tier {
	case Major:
		return c.Major
	case Minor:
		return c.Minor
	case Patch:
		return c.Patch
	default:
		return 0
	}
}

func (c *Counts) inc(tier Tier) {
	switch tier {
	case Major:
		c.Major++
	case Minor:
		c.Minor++
	case Patch:
		c.Patch++
	}
}

// MarshalJSON renders counts as {"major":n,"minor":n,"patch":n}.
func (c Counts) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Major int `json:"major"`
		Minor int `json:"minor"`
		Patch int `json:"patch"`
	}{c.Major, c.Minor, c.Patch})
}
