// Package scoring derives the skill scores of one competitor at a time.
//
// The pipeline order is a contract: rank score, stats score, anomaly
// detection, engine score, community blend, final score. Each stage reads
// only fields populated by earlier stages; ScoreProfile runs them in order
// over a snapshot and returns the augmented copy.
package scoring

import (
	"context"
	"fmt"

	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/internal/domain/anomaly"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/types"
	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

// Engine computes derived scores from raw profile fields.
type Engine struct {
	cfg      *config.Config
	detector *anomaly.Detector
	ordinals map[string]int
	log      logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine builds an Engine bound to an immutable configuration.
func NewEngine(cfg *config.Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:      cfg,
		detector: anomaly.New(cfg),
		ordinals: make(map[string]int, len(cfg.Ranks)),
		log:      logger.Named("scoring"),
	}
	for i, step := range cfg.Ranks {
		e.ordinals[step.Token] = i
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ScoreProfile runs the full ordered pipeline over p and returns the scored
// copy. It is idempotent: re-running it on the returned profile yields the
// same derived fields.
func (e *Engine) ScoreProfile(ctx context.Context, p model.Profile) (model.Profile, error) {
	if err := ctx.Err(); err != nil {
		return model.Profile{}, fmt.Errorf("scoring %q: %w", p.Name, err)
	}

	p.Tier = e.TierOf(p.RankCurrent)
	p.RankScore = e.rankScore(ctx, p)
	p.StatsScore = e.statsScore(p)

	res := e.detector.Evaluate(p)
	p.Suspicion = res.Score
	p.Suspected = res.Flagged
	metrics.ObserveSuspicion(res.Score)
	if res.Flagged {
		metrics.RecordSuspicionFlag()
		e.log.Debug(ctx, "profile flagged as suspect",
			logger.String("name", p.Name),
			logger.Float64("suspicion", res.Score),
			logger.Any("factors", res.Factors),
		)
	}

	p.EngineScore = e.engineScore(p)
	p.CommunityScore = e.communityScore(p)
	p.FinalScore = e.finalScore(p)

	metrics.RecordProfileScored()
	return p, nil
}

// TierOf classifies a rank token into low, mid, or high by ordinal. The
// function is total: unknown tokens classify as mid.
func (e *Engine) TierOf(token string) types.Tier {
	ord, ok := e.ordinals[token]
	if !ok {
		return types.TierMid
	}
	switch {
	case ord <= e.cfg.TierBounds.LowMax:
		return types.TierLow
	case ord <= e.cfg.TierBounds.MidMax:
		return types.TierMid
	default:
		return types.TierHigh
	}
}

// rankScore blends the current and peak rank scores. A missing peak falls
// back to the current rank alone.
func (e *Engine) rankScore(ctx context.Context, p model.Profile) float64 {
	current := e.tokenScore(ctx, p.RankCurrent, p.Name)
	if p.RankPeak == "" {
		return current
	}
	peak := e.tokenScore(ctx, p.RankPeak, p.Name)
	w := e.cfg.RankWeights
	return w.Current*current + w.Peak*peak
}

// tokenScore maps a rank token through the ordinal table. Unknown tokens fall
// back to the configured default score; the fallback is logged, never silent.
func (e *Engine) tokenScore(ctx context.Context, token, name string) float64 {
	if ord, ok := e.ordinals[token]; ok {
		return e.cfg.Ranks[ord].Score
	}
	e.log.Warn(ctx, "unknown rank token, using default score",
		logger.String("name", name),
		logger.String("token", token),
		logger.Float64("default", e.cfg.DefaultRankScore),
	)
	return e.cfg.DefaultRankScore
}

// statsScore blends the KD and combat-score components through the tier's
// interpolation tables. Missing combat score reduces to the KD component.
func (e *Engine) statsScore(p model.Profile) float64 {
	kd := Interpolate(p.KDRatio, e.breakpoints(e.cfg.KDBreakpoints, p.Tier))
	if p.CombatScore == nil {
		return kd
	}
	acs := Interpolate(*p.CombatScore, e.breakpoints(e.cfg.ACSBreakpoints, p.Tier))
	w := e.cfg.StatsWeights
	return w.KD*kd + w.ACS*acs
}

func (e *Engine) breakpoints(table map[string][]config.Breakpoint, tier types.Tier) []config.Breakpoint {
	if points, ok := table[tier.String()]; ok {
		return points
	}
	return table[types.TierMid.String()]
}

// engineScore blends rank and stats scores. For flagged profiles the blend is
// lifted toward the configured ceiling in proportion to the suspicion score;
// the result never drops below the raw blend and never exceeds the ceiling.
func (e *Engine) engineScore(p model.Profile) float64 {
	w := e.cfg.EngineWeights
	base := w.Rank*p.RankScore + w.Stats*p.StatsScore
	if !p.Suspected {
		return types.Clamp(base)
	}
	ceiling := e.cfg.Suspicion.BoostCeiling
	if ceiling <= base {
		return types.Clamp(base)
	}
	adjusted := base + (ceiling-base)*(p.Suspicion/types.ScoreMax)
	return types.Clamp(adjusted)
}

// communityScore maps the admin rating onto the shared scale, or reports its
// absence. Absent is not zero: a missing rating must not drag the blend down.
func (e *Engine) communityScore(p model.Profile) *float64 {
	if p.AdminRating == nil {
		return nil
	}
	score := types.Clamp(float64(*p.AdminRating) * 10)
	return &score
}

// alpha returns the community weight for the final blend as a step function
// of familiarity. Missing familiarity gets the lowest configured trust.
func (e *Engine) alpha(p model.Profile) float64 {
	table := e.cfg.FamiliarityAlpha
	if p.Familiarity == nil {
		return table[0]
	}
	idx := *p.Familiarity - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(table) {
		idx = len(table) - 1
	}
	return table[idx]
}

// finalScore blends community and engine scores when a community score
// exists; otherwise the engine score stands alone.
func (e *Engine) finalScore(p model.Profile) float64 {
	if p.CommunityScore == nil {
		return types.Clamp(p.EngineScore)
	}
	a := e.alpha(p)
	return types.Clamp(a*(*p.CommunityScore) + (1-a)*p.EngineScore)
}
