// Package anomaly flags competitors whose signals are internally
// inconsistent, indicating a likely smurf or boosted account.
//
// Nine independent factors each carry a configured weight. A triggered factor
// contributes its full weight, the sum is capped at 100, and a profile is
// flagged once the sum reaches the configured threshold. Admin-based factors
// are skipped entirely when their input field is absent; their weight is never
// redistributed. The detector reads rank and stats scores but never the
// engine score, so the dependency on the score engine stays one-directional.
package anomaly

import (
	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/types"
)

// Result is the outcome of evaluating one profile.
type Result struct {
	Score   float64 // 0-100
	Flagged bool
	// Factors lists the names of triggered factors, in evaluation order.
	Factors []string
}

// Detector evaluates the nine suspicion factors against a profile.
type Detector struct {
	cfg *config.Suspicion
}

// New builds a Detector reading its weights and thresholds from cfg.
func New(cfg *config.Config) *Detector {
	return &Detector{cfg: &cfg.Suspicion}
}

// Evaluate computes the suspicion score and flag for a profile. The profile
// must already carry its tier, rank score, and stats score.
func (d *Detector) Evaluate(p model.Profile) Result {
	var res Result

	trigger := func(name string, weight float64) {
		res.Score += weight
		res.Factors = append(res.Factors, name)
	}

	// Stats-based factors. An absent optional field cannot trigger.
	if p.AccountLevel != nil && *p.AccountLevel < d.cfg.LowLevelThreshold {
		trigger("low_account_level", d.cfg.LowLevelWeight)
	}
	if p.RankedMatches != nil && *p.RankedMatches < d.cfg.LowMatchesThreshold {
		trigger("low_match_count", d.cfg.LowMatchesWeight)
	}
	if p.KDRatio > tierCap(d.cfg.KDCaps, p.Tier) {
		trigger("high_kd_for_rank", d.cfg.KDWeight)
	}
	if p.WinRate != nil && *p.WinRate > tierCap(d.cfg.WinRateCaps, p.Tier) {
		trigger("high_win_rate", d.cfg.WinRateWeight)
	}
	if p.HeadshotRate != nil && *p.HeadshotRate > tierCap(d.cfg.HeadshotCaps, p.Tier) {
		trigger("high_headshot_rate", d.cfg.HeadshotWeight)
	}

	// Rank-vs-stats disagreement.
	if p.StatsScore-p.RankScore > d.cfg.StatsGapDelta {
		trigger("rank_stats_gap", d.cfg.StatsGapWeight)
	}

	// Admin-based factors, only when the admin fields exist.
	if p.AdminRating != nil {
		rating := float64(*p.AdminRating)
		expected := tierCap(d.cfg.ExpectedAdmin, p.Tier)

		if rating >= expected+d.cfg.AdminOverDelta {
			trigger("admin_overrate", d.cfg.AdminOverWeight)
		}
		if rating <= d.cfg.AdminUnderMax && p.Tier != types.TierLow {
			trigger("admin_underrate", d.cfg.AdminUnderWeight)
		}
		if p.Familiarity != nil && *p.Familiarity >= d.cfg.FamiliarityMin {
			if gap := rating - expected; gap > d.cfg.AdminGapDelta || gap < -d.cfg.AdminGapDelta {
				trigger("familiarity_mismatch", d.cfg.FamiliarityWeight)
			}
		}
	}

	if res.Score > types.ScoreMax {
		res.Score = types.ScoreMax
	}
	res.Flagged = res.Score >= d.cfg.Threshold
	return res
}

// tierCap looks up a per-tier value, falling back to the mid tier.
func tierCap(caps map[string]float64, tier types.Tier) float64 {
	if v, ok := caps[tier.String()]; ok {
		return v
	}
	return caps[types.TierMid.String()]
}
