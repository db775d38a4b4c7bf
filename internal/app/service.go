// Package service orchestrates the scoring pipeline and the partitioner into
// one batch run: raw roster in, scored roster and team assignment out.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/internal/domain/balance"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/scoring"
	"github.com/okian/rondo/pkg/logger"
	"github.com/okian/rondo/pkg/metrics"
)

// Default run parameters; the CLI overrides them from flags.
const (
	defaultTeamCount = 8
	defaultTeamSize  = 5
	defaultSeed      = 1
)

// Service runs the full balancing pipeline over one roster.
type Service struct {
	cfg        *config.Config
	engine     *scoring.Engine
	teamCount  int
	teamSize   int
	iterations int
	seed       int64
	log        logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithTeamCount sets the number of teams to build.
func WithTeamCount(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.teamCount = n
		}
	}
}

// WithTeamSize sets the number of members per team.
func WithTeamSize(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.teamSize = n
		}
	}
}

// WithIterations sets the optimizer budget.
func WithIterations(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.iterations = n
		}
	}
}

// WithSeed sets the optimizer seed.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l
		}
	}
}

// New constructs a Service bound to an immutable configuration.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:        cfg,
		engine:     scoring.NewEngine(cfg),
		teamCount:  defaultTeamCount,
		teamSize:   defaultTeamSize,
		iterations: cfg.Balance.Iterations,
		seed:       defaultSeed,
		log:        logger.Named("service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result carries the output of one balancing run.
type Result struct {
	RunID      string
	Roster     []model.Profile // scored, in input order
	Assignment model.Assignment
}

// Run scores every profile and partitions the roster. The count precondition
// is checked before any scoring work so a bad invocation produces nothing.
func (s *Service) Run(ctx context.Context, profiles []model.Profile) (Result, error) {
	if expected := s.teamCount * s.teamSize; len(profiles) != expected {
		return Result{}, fmt.Errorf("%w: expected %d competitors (%d teams x %d), got %d",
			balance.ErrCountMismatch, expected, s.teamCount, s.teamSize, len(profiles))
	}

	scored, err := s.ScoreAll(ctx, profiles)
	if err != nil {
		return Result{}, err
	}

	balancer := balance.New(
		balance.WithIterations(s.iterations),
		balance.WithSeed(s.seed),
		balance.WithMaxTeamRange(s.cfg.Balance.MaxTeamRange),
		balance.WithHomogeneityWeight(s.cfg.Balance.HomogeneityWeight),
		balance.WithLogger(s.log.Named("balance")),
	)

	start := time.Now()
	assignment, err := balancer.Build(ctx, scored, s.teamCount, s.teamSize)
	if err != nil {
		return Result{}, err
	}
	metrics.ObserveStage("optimize", time.Since(start))

	return Result{
		RunID:      uuid.NewString(),
		Roster:     scored,
		Assignment: assignment,
	}, nil
}

// ScoreAll runs the scoring pipeline over every profile, preserving order.
func (s *Service) ScoreAll(ctx context.Context, profiles []model.Profile) ([]model.Profile, error) {
	start := time.Now()
	scored := make([]model.Profile, len(profiles))
	for i, p := range profiles {
		sp, err := s.engine.ScoreProfile(ctx, p)
		if err != nil {
			metrics.RecordScoringError()
			return nil, fmt.Errorf("scoring roster: %w", err)
		}
		scored[i] = sp
	}
	metrics.ObserveStage("score", time.Since(start))

	s.log.Info(ctx, "roster scored", logger.Int("competitors", len(scored)))
	return scored, nil
}

// Replace swaps one departing member of one team for a substitute, scoring
// the substitute first if its pipeline has not run. All other teams are left
// untouched; only the global fairness figure is recomputed.
func (s *Service) Replace(ctx context.Context, a model.Assignment, teamNumber int, departing string, substitute model.Profile) (model.Assignment, error) {
	scored, err := s.engine.ScoreProfile(ctx, substitute)
	if err != nil {
		return model.Assignment{}, fmt.Errorf("scoring substitute: %w", err)
	}
	return balance.Replace(a, teamNumber, departing, scored, s.cfg.Balance.HomogeneityWeight)
}
