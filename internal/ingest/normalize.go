package ingest

import (
	"fmt"
	"strconv"
	"strings"
)

// stripNonDigits drops everything but 0-9 from s.
func stripNonDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripNonNumeric drops everything but digits and the decimal point from s.
func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// NormalizeWater reduces a water-presence payload to 0 or 1. The reduction
// is deliberately lossy: only a payload whose digits are exactly "1" means
// presence, everything else means absence. Never an error.
func NormalizeWater(payload string) int {
	if stripNonDigits(strings.TrimSpace(payload)) == "1" {
		return 1
	}
	return 0
}

// NormalizeNumeric parses a humidity/light payload into a float after
// stripping units and other noise. A payload that strips to nothing
// parseable is rejected.
func NormalizeNumeric(payload string) (float64, error) {
	cleaned := stripNonNumeric(strings.TrimSpace(payload))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("payload %q is not numeric (cleaned: %q)", payload, cleaned)
	}
	return v, nil
}

// IsActivation reports whether a switch payload is a light-activation edge.
// The payload is compared verbatim to "1"; anything else is a no-op, not an
// error.
func IsActivation(payload string) bool {
	return strings.TrimSpace(payload) == "1"
}
