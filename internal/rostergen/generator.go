// Package rostergen produces synthetic rosters for demos and benchmarks.
// Generation is seeded, so a count+seed pair always yields the same roster.
package rostergen

import (
	"fmt"
	"math/rand"

	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/internal/domain/model"
)

// Archetype cases drawn per generated competitor.
const (
	caseRegular = iota
	caseVeteran
	caseFreshAccount
	caseSmurf
	caseRatedRegular
	archetypeCount
)

// Generator builds synthetic competitor profiles from the configured rank
// table.
type Generator struct {
	cfg *config.Config
	rng *rand.Rand
}

// New builds a Generator with its own seeded source.
func New(cfg *config.Config, seed int64) *Generator {
	return &Generator{
		cfg: cfg,
		rng: rand.New(rand.NewSource(seed)), //nolint:gosec // synthetic data only
	}
}

// Roster generates count raw profiles ready for the scoring pipeline.
func (g *Generator) Roster(count int) []model.Profile {
	profiles := make([]model.Profile, count)
	for i := range profiles {
		profiles[i] = g.profile(i + 1)
	}
	return profiles
}

func (g *Generator) profile(id int) model.Profile {
	ranks := g.cfg.Ranks
	ord := g.rng.Intn(len(ranks))
	peakOrd := ord + g.rng.Intn(3)
	if peakOrd >= len(ranks) {
		peakOrd = len(ranks) - 1
	}

	p := model.Profile{
		ID:          id,
		Name:        fmt.Sprintf("player-%03d", id),
		RankCurrent: ranks[ord].Token,
		RankPeak:    ranks[peakOrd].Token,
		KDRatio:     round2(0.7 + g.rng.Float64()*0.6),
	}
	p.CombatScore = ptr(round2(150 + g.rng.Float64()*100))
	p.WinRate = ptr(round2(42 + g.rng.Float64()*16))
	p.HeadshotRate = ptr(round2(14 + g.rng.Float64()*14))
	p.AccountLevel = ptrInt(80 + g.rng.Intn(300))
	p.RankedMatches = ptrInt(100 + g.rng.Intn(500))

	switch g.rng.Intn(archetypeCount) {
	case caseVeteran:
		p.AccountLevel = ptrInt(300 + g.rng.Intn(200))
		p.RankedMatches = ptrInt(600 + g.rng.Intn(900))
	case caseFreshAccount:
		p.AccountLevel = ptrInt(10 + g.rng.Intn(40))
		p.RankedMatches = ptrInt(10 + g.rng.Intn(60))
	case caseSmurf:
		// Fresh account with stats well above its claimed rank.
		p.AccountLevel = ptrInt(5 + g.rng.Intn(30))
		p.RankedMatches = ptrInt(5 + g.rng.Intn(40))
		p.KDRatio = round2(1.4 + g.rng.Float64()*0.8)
		p.CombatScore = ptr(round2(270 + g.rng.Float64()*80))
		p.WinRate = ptr(round2(60 + g.rng.Float64()*15))
		p.HeadshotRate = ptr(round2(30 + g.rng.Float64()*12))
	case caseRatedRegular:
		p.AdminRating = ptrInt(1 + g.rng.Intn(10))
		p.Familiarity = ptrInt(1 + g.rng.Intn(5))
	}

	return p
}

func round2(v float64) float64 {
	return float64(int(v*100)) / 100
}

func ptr(v float64) *float64 { return &v }
func ptrInt(v int) *int      { return &v }
