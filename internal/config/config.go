// Package config defines the tunable parameters of the scoring pipeline and
// the team optimizer.
//
// Conventions:
// - New() builds a Config carrying the documented defaults.
// - Load() layers an optional YAML file and RONDO_-prefixed env vars on top.
// - A Config is immutable after Load; components share it by reference.
package config

import "github.com/okian/rondo/internal/domain/types"

// RankStep maps one rank token to its 0-100 score. The position of a step in
// the Ranks slice is the token's ordinal, lowest rank first.
type RankStep struct {
	Token string  `koanf:"token"`
	Score float64 `koanf:"score"`
}

// TierBounds partitions rank ordinals into tiers. Ordinals up to LowMax are
// low, up to MidMax are mid, everything above is high.
type TierBounds struct {
	LowMax int `koanf:"low_max"`
	MidMax int `koanf:"mid_max"`
}

// Breakpoint is one (threshold, score) pair of a piecewise-linear table.
type Breakpoint struct {
	Value float64 `koanf:"value"`
	Score float64 `koanf:"score"`
}

// RankWeights blends current and peak rank into the rank score.
type RankWeights struct {
	Current float64 `koanf:"current"`
	Peak    float64 `koanf:"peak"`
}

// StatsWeights blends the KD-derived and ACS-derived components.
type StatsWeights struct {
	KD  float64 `koanf:"kd"`
	ACS float64 `koanf:"acs"`
}

// EngineWeights blends rank score and stats score into the engine score.
type EngineWeights struct {
	Rank  float64 `koanf:"rank"`
	Stats float64 `koanf:"stats"`
}

// Suspicion holds the nine anomaly factor weights and their trigger
// thresholds. Weights are additive and should sum to at most 100.
type Suspicion struct {
	// Threshold at or above which a profile is flagged.
	Threshold float64 `koanf:"threshold"`
	// BoostCeiling caps the engine score adjustment applied to flagged
	// profiles.
	BoostCeiling float64 `koanf:"boost_ceiling"`

	// Stats-based factors.
	LowLevelThreshold   int     `koanf:"low_level_threshold"`
	LowLevelWeight      float64 `koanf:"low_level_weight"`
	LowMatchesThreshold int     `koanf:"low_matches_threshold"`
	LowMatchesWeight    float64 `koanf:"low_matches_weight"`

	KDCaps   map[string]float64 `koanf:"kd_caps"`
	KDWeight float64            `koanf:"kd_weight"`

	WinRateCaps   map[string]float64 `koanf:"win_rate_caps"`
	WinRateWeight float64            `koanf:"win_rate_weight"`

	HeadshotCaps   map[string]float64 `koanf:"headshot_caps"`
	HeadshotWeight float64            `koanf:"headshot_weight"`

	// Admin-based factors, evaluated only when the admin fields exist.
	ExpectedAdmin   map[string]float64 `koanf:"expected_admin"`
	AdminOverDelta  float64            `koanf:"admin_over_delta"`
	AdminOverWeight float64            `koanf:"admin_over_weight"`

	FamiliarityMin    int     `koanf:"familiarity_min"`
	AdminGapDelta     float64 `koanf:"admin_gap_delta"`
	FamiliarityWeight float64 `koanf:"familiarity_weight"`

	StatsGapDelta  float64 `koanf:"stats_gap_delta"`
	StatsGapWeight float64 `koanf:"stats_gap_weight"`

	AdminUnderMax    float64 `koanf:"admin_under_max"`
	AdminUnderWeight float64 `koanf:"admin_under_weight"`
}

// Balance holds the partitioner parameters.
type Balance struct {
	// Iterations is the default local-search budget.
	Iterations int `koanf:"iterations"`
	// MaxTeamRange is the hard ceiling on a team's internal score range.
	MaxTeamRange float64 `koanf:"max_team_range"`
	// HomogeneityWeight trades cross-team equality against per-team
	// homogeneity in the fairness score.
	HomogeneityWeight float64 `koanf:"homogeneity_weight"`
}

// Config is the process-wide parameter table.
type Config struct {
	LogLevel string `koanf:"log_level"`

	// Ranks is the ordered ordinal->score table, lowest rank first.
	Ranks []RankStep `koanf:"ranks"`
	// DefaultRankScore is the documented fallback for unknown tokens.
	DefaultRankScore float64    `koanf:"default_rank_score"`
	TierBounds       TierBounds `koanf:"tier_bounds"`

	RankWeights  RankWeights  `koanf:"rank_weights"`
	StatsWeights StatsWeights `koanf:"stats_weights"`

	// Interpolation tables keyed by tier ("low", "mid", "high").
	KDBreakpoints  map[string][]Breakpoint `koanf:"kd_breakpoints"`
	ACSBreakpoints map[string][]Breakpoint `koanf:"acs_breakpoints"`

	EngineWeights EngineWeights `koanf:"engine_weights"`

	// FamiliarityAlpha maps familiarity 1..5 (index 0..4) to the weight the
	// community score receives in the final blend.
	FamiliarityAlpha []float64 `koanf:"familiarity_alpha"`

	Suspicion Suspicion `koanf:"suspicion"`
	Balance   Balance   `koanf:"balance"`
}

// New returns a Config with the documented defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",

		Ranks: []RankStep{
			{Token: "Iron 1", Score: 7},
			{Token: "Iron 2", Score: 10},
			{Token: "Iron 3", Score: 13},
			{Token: "Bronze 1", Score: 16},
			{Token: "Bronze 2", Score: 19},
			{Token: "Bronze 3", Score: 22},
			{Token: "Silver 1", Score: 25},
			{Token: "Silver 2", Score: 28},
			{Token: "Silver 3", Score: 31},
			{Token: "Gold 1", Score: 34},
			{Token: "Gold 2", Score: 37},
			{Token: "Gold 3", Score: 40},
			{Token: "Platinum 1", Score: 43},
			{Token: "Platinum 2", Score: 46},
			{Token: "Platinum 3", Score: 49},
			{Token: "Diamond 1", Score: 52},
			{Token: "Diamond 2", Score: 55},
			{Token: "Diamond 3", Score: 58},
			{Token: "Ascendant 1", Score: 64},
			{Token: "Ascendant 2", Score: 69},
			{Token: "Ascendant 3", Score: 74},
			{Token: "Immortal 1", Score: 80},
			{Token: "Immortal 2", Score: 86},
			{Token: "Immortal 3", Score: 92},
			{Token: "Radiant", Score: 98},
		},
		DefaultRankScore: 50,
		TierBounds: TierBounds{
			LowMax: 11, // Iron 1 .. Gold 3
			MidMax: 17, // Platinum 1 .. Diamond 3
		},

		RankWeights:  RankWeights{Current: 0.6, Peak: 0.4},
		StatsWeights: StatsWeights{KD: 0.6, ACS: 0.4},

		KDBreakpoints: map[string][]Breakpoint{
			types.TierLow.String(): {
				{Value: 0.6, Score: 20},
				{Value: 0.8, Score: 40},
				{Value: 1.0, Score: 60},
				{Value: 1.2, Score: 80},
				{Value: 1.5, Score: 95},
				{Value: 1.8, Score: 100},
			},
			types.TierMid.String(): {
				{Value: 0.6, Score: 10},
				{Value: 0.8, Score: 30},
				{Value: 1.0, Score: 50},
				{Value: 1.2, Score: 70},
				{Value: 1.5, Score: 90},
				{Value: 1.8, Score: 100},
			},
			types.TierHigh.String(): {
				{Value: 0.8, Score: 20},
				{Value: 1.0, Score: 40},
				{Value: 1.2, Score: 60},
				{Value: 1.5, Score: 80},
				{Value: 1.8, Score: 95},
				{Value: 2.2, Score: 100},
			},
		},
		ACSBreakpoints: map[string][]Breakpoint{
			types.TierLow.String(): {
				{Value: 120, Score: 20},
				{Value: 160, Score: 40},
				{Value: 200, Score: 60},
				{Value: 240, Score: 80},
				{Value: 280, Score: 95},
				{Value: 320, Score: 100},
			},
			types.TierMid.String(): {
				{Value: 120, Score: 10},
				{Value: 160, Score: 30},
				{Value: 200, Score: 50},
				{Value: 240, Score: 70},
				{Value: 280, Score: 90},
				{Value: 320, Score: 100},
			},
			types.TierHigh.String(): {
				{Value: 140, Score: 10},
				{Value: 180, Score: 25},
				{Value: 220, Score: 45},
				{Value: 260, Score: 65},
				{Value: 300, Score: 85},
				{Value: 340, Score: 100},
			},
		},

		EngineWeights: EngineWeights{Rank: 0.6, Stats: 0.4},

		FamiliarityAlpha: []float64{0.20, 0.35, 0.50, 0.65, 0.80},

		Suspicion: Suspicion{
			Threshold:    60,
			BoostCeiling: 95,

			LowLevelThreshold:   60,
			LowLevelWeight:      15,
			LowMatchesThreshold: 80,
			LowMatchesWeight:    10,

			KDCaps: map[string]float64{
				types.TierLow.String():  1.15,
				types.TierMid.String():  1.25,
				types.TierHigh.String(): 1.35,
			},
			KDWeight: 15,

			WinRateCaps: map[string]float64{
				types.TierLow.String():  58,
				types.TierMid.String():  60,
				types.TierHigh.String(): 62,
			},
			WinRateWeight: 10,

			HeadshotCaps: map[string]float64{
				types.TierLow.String():  25,
				types.TierMid.String():  30,
				types.TierHigh.String(): 35,
			},
			HeadshotWeight: 10,

			ExpectedAdmin: map[string]float64{
				types.TierLow.String():  3.5,
				types.TierMid.String():  5.5,
				types.TierHigh.String(): 7.5,
			},
			AdminOverDelta:  2.5,
			AdminOverWeight: 15,

			FamiliarityMin:    4,
			AdminGapDelta:     2.0,
			FamiliarityWeight: 10,

			StatsGapDelta:  35,
			StatsGapWeight: 10,

			AdminUnderMax:    3,
			AdminUnderWeight: 5,
		},

		Balance: Balance{
			Iterations:        5000,
			MaxTeamRange:      50,
			HomogeneityWeight: 0.1,
		},
	}
}
