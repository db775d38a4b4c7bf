// Package types contains small shared types used across the domain packages.
package types

// Score scale bounds shared by every derived score.
const (
	ScoreMin = 0.0
	ScoreMax = 100.0
)

// Tier is the coarse skill bucket a rank token falls into.
type Tier string

const (
	TierLow  Tier = "low"
	TierMid  Tier = "mid"
	TierHigh Tier = "high"
)

func (t Tier) String() string { return string(t) }

// Clamp bounds v to the shared score scale.
func Clamp(v float64) float64 {
	if v < ScoreMin {
		return ScoreMin
	}
	if v > ScoreMax {
		return ScoreMax
	}
	return v
}
