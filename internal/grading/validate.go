package grading

import "math"

// ValidateScore checks a raw percentage against the legal 0-100 range and
// normalizes it to one decimal place. Pure function, no side effects. Every
// write path and every grade lookup must pass through here so that invalid
// scores never reach persistence or the boundary table.
func ValidateScore(raw float64) (float64, error) {
	if raw < 0 {
		return 0, Errorf(KindNegativeScore,
			"Score cannot be negative. You entered: %g%%. Valid range: 0-100%%", raw)
	}
	if raw > 100 {
		return 0, Errorf(KindScoreTooHigh,
			"Score cannot exceed 100%%. You entered: %g%%. Valid range: 0-100%%", raw)
	}
	return math.Round(raw*10) / 10, nil
}
