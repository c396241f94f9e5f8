package layout

import "math"

// PatternBoost is the factor patterns are drawn at relative to the configured
// grid opacity.
const PatternBoost = 1.5

// PatternOpacity returns the opacity a pattern is drawn at. The result is not
// clamped and may exceed 1.
func PatternOpacity(base float64) float64 { return base * PatternBoost }

// ClampOpacity limits v to [0, 1]. NaN becomes 0.
func ClampOpacity(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return min(1, max(0, v))
}
