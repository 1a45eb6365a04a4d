package matching

// Engagement rate thresholds (fractions, not percent).
const (
	engagementExcellent = 0.05
	engagementFloor     = 0.02
	lowEngagementFactor = 0.5
)

// EngagementQuality maps a raw engagement-rate fraction to a quality score in
// [0,1]. 5% and above is the "excellent" ceiling; rates below the 2% floor
// carry an extra 0.5 penalty.
//
// The curve is intentionally NOT continuous at 0.02: approaching from below
// the value tends to 0.5, while at the boundary it is 0.02/0.05 = 0.4.
// Published scores depend on these exact values, so the jump must stay.
func EngagementQuality(rate float64) float64 {
	if rate < 0 {
		rate = 0
	}
	switch {
	case rate >= engagementExcellent:
		return 1.0
	case rate >= engagementFloor:
		return rate / engagementExcellent
	default:
		return (rate / engagementFloor) * lowEngagementFactor
	}
}
