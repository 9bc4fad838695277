package geolib

import "github.com/juju/errors"

// Confidence is a coarse rating of how much corroborating evidence
// backs a location guess. Values are ordered, higher means more
// evidence.
type Confidence int

const (
	ConfidenceNone Confidence = iota
	ConfidenceLow
	ConfidenceMedium
	ConfidenceHigh
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// MarshalText makes Confidence usable both as a JSON value and as a
// JSON object key.
func (c Confidence) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText is the inverse of MarshalText.
func (c *Confidence) UnmarshalText(text []byte) error {
	switch string(text) {
	case "high":
		*c = ConfidenceHigh
	case "medium":
		*c = ConfidenceMedium
	case "low":
		*c = ConfidenceLow
	case "none":
		*c = ConfidenceNone
	default:
		return errors.Errorf("Unknown confidence level %s", text)
	}

	return nil
}

// Score rates a partially assembled result. The rubric is additive with
// fixed weights and is kept bit-for-bit compatible with prior reports:
//
//	coordinates (both)          +2
//	city name                   +2
//	hostname                    +1
//	dns hint                    +2
//	accuracy radius below 50km  +1
//
// 6 points and up is high, 4-5 medium, 2-3 low, below 2 none.
func Score(result *LookupResult) Confidence {
	score := 0

	if result.Latitude != nil && result.Longitude != nil {
		score += 2
	}

	if result.City != "" {
		score += 2
	}

	if result.Hostname != "" {
		score++
	}

	if result.DNSHints != "" {
		score += 2
	}

	if result.AccuracyRadius != nil && *result.AccuracyRadius < 50 {
		score++
	}

	switch {
	case score >= 6:
		return ConfidenceHigh
	case score >= 4:
		return ConfidenceMedium
	case score >= 2:
		return ConfidenceLow
	default:
		return ConfidenceNone
	}
}
