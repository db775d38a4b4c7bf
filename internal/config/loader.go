package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// LoadOption customizes Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	filePath string
}

// WithFile sets an explicit config file path, taking precedence over the
// RONDO_CONFIG environment variable.
func WithFile(path string) LoadOption {
	return func(o *loadOptions) {
		o.filePath = path
	}
}

// Load builds a Config by layering defaults, an optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if WithFile or RONDO_CONFIG is set
//  3. env (prefix RONDO_)
//
// Every key has a default, so a sparse file or environment is fine.
func Load(ctx context.Context, opts ...LoadOption) (*Config, error) {
	var lo loadOptions
	for _, opt := range opts {
		opt(&lo)
	}

	base := New()

	k := koanf.New(".")

	path := lo.filePath
	if path == "" {
		path = os.Getenv("RONDO_CONFIG")
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: RONDO_LOG_LEVEL, RONDO_DEFAULT_RANK_SCORE, ...
	// mapped to flat lowercase keys matching the koanf tags. Nested keys use
	// double underscores: RONDO_BALANCE__ITERATIONS -> balance.iterations.
	envProvider := env.Provider("RONDO_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "RONDO_"))
		return strings.ReplaceAll(s, "__", ".")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate fails fast on tables the pipeline cannot run without.
func (c *Config) Validate() error {
	if len(c.Ranks) == 0 {
		return fmt.Errorf("%w: ranks table is empty", ErrInvalidConfig)
	}
	if c.TierBounds.LowMax < 0 || c.TierBounds.MidMax <= c.TierBounds.LowMax {
		return fmt.Errorf("%w: tier_bounds must satisfy 0 <= low_max < mid_max", ErrInvalidConfig)
	}
	if len(c.FamiliarityAlpha) == 0 {
		return fmt.Errorf("%w: familiarity_alpha table is empty", ErrInvalidConfig)
	}
	for _, a := range c.FamiliarityAlpha {
		if a < 0 || a > 1 {
			return fmt.Errorf("%w: familiarity_alpha values must be within [0,1]", ErrInvalidConfig)
		}
	}
	if w := c.EngineWeights.Rank + c.EngineWeights.Stats; w < 0.999 || w > 1.001 {
		return fmt.Errorf("%w: engine_weights must sum to 1, got %.3f", ErrInvalidConfig, w)
	}
	for name, table := range map[string]map[string][]Breakpoint{
		"kd_breakpoints":  c.KDBreakpoints,
		"acs_breakpoints": c.ACSBreakpoints,
	} {
		if len(table) == 0 {
			return fmt.Errorf("%w: %s table is empty", ErrInvalidConfig, name)
		}
		for tier, points := range table {
			if len(points) < 2 {
				return fmt.Errorf("%w: %s[%s] needs at least two breakpoints", ErrInvalidConfig, name, tier)
			}
			for i := 1; i < len(points); i++ {
				if points[i].Value <= points[i-1].Value {
					return fmt.Errorf("%w: %s[%s] thresholds must be strictly ascending", ErrInvalidConfig, name, tier)
				}
			}
		}
	}
	if c.Balance.Iterations < 0 {
		return fmt.Errorf("%w: balance.iterations must not be negative", ErrInvalidConfig)
	}
	if c.Balance.MaxTeamRange <= 0 {
		return fmt.Errorf("%w: balance.max_team_range must be positive", ErrInvalidConfig)
	}
	return nil
}
