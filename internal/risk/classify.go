package risk

import "strings"

// Classify reports which tier changed between current and candidate.
// Versions must be dot-separated non-negative integers; anything else, including
// an empty side, is Unclassified. Identical versions classify as Patch.
func Classify(current string, candidate string) Tier {
	from, ok := parseVersion(current)
	if !ok {
		return Unclassified
	}
	to, ok := parseVersion(candidate)
	if !ok {
		return Unclassified
	}

	width := max(len(from), len(to))
	for i := 0; i < width; i++ {
		if component(from, i) == component(to, i) {
			continue
		}
		switch i {
		case 0:
			return Major
		case 1:
			return Minor
		default:
			return Patch
		}
	}
	return Patch
}

// parseVersion splits raw into numeric components with leading zeros removed,
// so components of any length compare by string equality.
func parseVersion(raw string) ([]string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return nil, false
	}
	parts := strings.Split(trimmed, ".")
	out := make([]string, len(parts))
	for i, part := range parts {
		if part == "" || strings.TrimLeft(part, "0123456789") != "" {
			return nil, false
		}
		digits := strings.TrimLeft(part, "0")
		if digits == "" {
			digits = "0"
		}
		out[i] = digits
	}
	return out, true
}

// component returns parts[i], treating missing trailing components as zero.
func component(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return "0"
}
