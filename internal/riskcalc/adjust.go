package riskcalc

import "math"

// Each 1 mmol/L of LDL-C lowering buys roughly 22% relative risk reduction,
// saturating at 60%.
const (
	rrrPerMmol = 22.0
	rrrCap     = 60.0
)

// AdjustRisk maps an LDL-C drop to the post-treatment risk percentage.
// A negative drop (projected LDL above baseline) produces a negative
// relative risk reduction and inflates the result; that is the formula's
// natural behavior, not an error. The result is intentionally not re-clamped
// to the [1.0, 99.0] band the baseline estimate uses.
func AdjustRisk(baselineRisk, baselineLDL, projectedLDL float64) float64 {
	drop := baselineLDL - projectedLDL
	rrr := math.Min(rrrPerMmol*drop, rrrCap)
	return baselineRisk * (1 - rrr/100)
}

// Tier is the qualitative risk band of a post-treatment estimate.
type Tier string

const (
	TierVeryHigh Tier = "VERY_HIGH"
	TierHigh     Tier = "HIGH"
	TierModerate Tier = "MODERATE"
)

// Recommendation pairs a risk tier with its advisory text.
type Recommendation struct {
	Tier   Tier   `json:"tier"`
	Advice string `json:"advice"`
}

// Recommend maps a final risk percentage to its treatment recommendation.
// Both thresholds are inclusive: 30.0 is VeryHigh and 20.0 is High.
func Recommend(finalRisk float64) Recommendation {
	switch {
	case finalRisk >= 30:
		return Recommendation{
			Tier:   TierVeryHigh,
			Advice: "High-intensity statin, PCSK9 inhibitor, target SBP <130 mmHg.",
		}
	case finalRisk >= 20:
		return Recommendation{
			Tier:   TierHigh,
			Advice: "Moderate-intensity statin, target SBP <130 mmHg.",
		}
	default:
		return Recommendation{
			Tier:   TierModerate,
			Advice: "Reinforce lifestyle adherence; reassess annually.",
		}
	}
}
