// Package balance partitions a scored roster into equally sized teams that
// are balanced across teams and homogeneous inside each team.
//
// The partitioner is a two-phase algorithm: a serpentine (snake) deal over
// the roster sorted by final score gives a deterministic near-balanced
// baseline, then a bounded greedy local search proposes pairwise member swaps
// and keeps only those that strictly improve fairness without stretching any
// team's internal score range past a hard ceiling. All randomness flows
// through one explicitly seeded generator, so identical inputs, seed, and
// budget reproduce the assignment bit for bit.
package balance

import (
	"context"
	"fmt"
	"math/rand"
	"sort"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

// Default partitioner parameters; overridden via options from config.
const (
	defaultIterations   = 5000
	defaultMaxTeamRange = 50.0
	defaultHomWeight    = 0.1
	defaultSeed         = 1
)

// Balancer builds team assignments from scored profiles.
type Balancer struct {
	iterations        int
	seed              int64
	maxTeamRange      float64
	homogeneityWeight float64
	log               logger.Logger
}

// Option applies a configuration option to the Balancer.
type Option func(*Balancer)

// WithIterations sets the local-search budget.
func WithIterations(n int) Option {
	return func(b *Balancer) {
		if n >= 0 {
			b.iterations = n
		}
	}
}

// WithSeed sets the seed of the swap-proposal generator.
func WithSeed(seed int64) Option {
	return func(b *Balancer) {
		b.seed = seed
	}
}

// WithMaxTeamRange sets the hard ceiling on a team's internal score range.
func WithMaxTeamRange(r float64) Option {
	return func(b *Balancer) {
		if r > 0 {
			b.maxTeamRange = r
		}
	}
}

// WithHomogeneityWeight sets the per-team spread weight of the fairness score.
func WithHomogeneityWeight(w float64) Option {
	return func(b *Balancer) {
		if w >= 0 {
			b.homogeneityWeight = w
		}
	}
}

// WithLogger sets a custom logger for the balancer.
func WithLogger(l logger.Logger) Option {
	return func(b *Balancer) {
		if l != nil {
			b.log = l
		}
	}
}

// New constructs a Balancer with default parameters.
func New(opts ...Option) *Balancer {
	b := &Balancer{
		iterations:        defaultIterations,
		seed:              defaultSeed,
		maxTeamRange:      defaultMaxTeamRange,
		homogeneityWeight: defaultHomWeight,
		log:               logger.Named("balance"),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// HomogeneityWeight reports the configured fairness weight, for callers that
// need to recompute fairness consistently (replacement, analysis).
func (b *Balancer) HomogeneityWeight() float64 { return b.homogeneityWeight }

// Build partitions profiles into teamCount teams of teamSize members each.
// The count precondition is checked before any work; on mismatch no partial
// assignment is produced.
func (b *Balancer) Build(ctx context.Context, profiles []model.Profile, teamCount, teamSize int) (model.Assignment, error) {
	if teamCount <= 0 || teamSize <= 0 {
		return model.Assignment{}, fmt.Errorf("%w: team count %d and size %d must be positive", ErrCountMismatch, teamCount, teamSize)
	}
	if expected := teamCount * teamSize; len(profiles) != expected {
		return model.Assignment{}, fmt.Errorf("%w: expected %d competitors (%d teams x %d), got %d",
			ErrCountMismatch, expected, teamCount, teamSize, len(profiles))
	}

	teams := snakeDraft(profiles, teamCount, teamSize)
	current, _, _ := Fairness(teams, b.homogeneityWeight)
	b.log.Debug(ctx, "snake draft baseline", logger.Float64("fairness", current))

	rng := rand.New(rand.NewSource(b.seed)) //nolint:gosec // deterministic seed is the contract, not a weakness
	accepted := 0

	for iter := 0; iter < b.iterations; iter++ {
		t1 := rng.Intn(teamCount)
		t2 := rng.Intn(teamCount - 1)
		if t2 >= t1 {
			t2++
		}
		i1 := rng.Intn(teamSize)
		i2 := rng.Intn(teamSize)
		metrics.RecordSwapProposed()

		teams[t1][i1], teams[t2][i2] = teams[t2][i2], teams[t1][i1]

		candidate, _, _ := Fairness(teams, b.homogeneityWeight)
		if candidate < current &&
			teamRange(teams[t1]) <= b.maxTeamRange &&
			teamRange(teams[t2]) <= b.maxTeamRange {
			current = candidate
			accepted++
			metrics.RecordSwapAccepted()
			continue
		}

		// Revert the proposal.
		teams[t1][i1], teams[t2][i2] = teams[t2][i2], teams[t1][i1]
		metrics.RecordSwapRejected()
	}

	fairness, sums, avg := Fairness(teams, b.homogeneityWeight)
	assignment := model.Assignment{
		Teams:        make([]model.Team, teamCount),
		Fairness:     fairness,
		AverageSkill: avg,
	}
	for i, team := range teams {
		assignment.Teams[i] = model.Team{
			Number:     i + 1,
			Members:    team,
			TotalSkill: sums[i],
		}
	}

	metrics.SetFairnessScore(fairness)
	metrics.SetTeamCount(teamCount)
	b.log.Info(ctx, "assignment built",
		logger.Int("teams", teamCount),
		logger.Int("team_size", teamSize),
		logger.Int("iterations", b.iterations),
		logger.Int("accepted_swaps", accepted),
		logger.Float64("fairness", fairness),
	)
	return assignment, nil
}

// snakeDraft sorts profiles by final score descending and deals them across
// teams in alternating direction, one full pass per round. Ties are broken by
// id so the baseline is deterministic regardless of input order.
func snakeDraft(profiles []model.Profile, teamCount, teamSize int) [][]model.Profile {
	sorted := make([]model.Profile, len(profiles))
	copy(sorted, profiles)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].FinalScore != sorted[j].FinalScore {
			return sorted[i].FinalScore > sorted[j].FinalScore
		}
		return sorted[i].ID < sorted[j].ID
	})

	teams := make([][]model.Profile, teamCount)
	for i := range teams {
		teams[i] = make([]model.Profile, 0, teamSize)
	}

	idx := 0
	for round := 0; round < teamSize; round++ {
		if round%2 == 0 {
			for t := 0; t < teamCount; t++ {
				teams[t] = append(teams[t], sorted[idx])
				idx++
			}
		} else {
			for t := teamCount - 1; t >= 0; t-- {
				teams[t] = append(teams[t], sorted[idx])
				idx++
			}
		}
	}
	return teams
}
