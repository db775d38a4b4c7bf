package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/okian/rondo/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
				convey.So(len(cfg.Ranks), convey.ShouldEqual, 25)
				convey.So(cfg.DefaultRankScore, convey.ShouldEqual, 50)
				convey.So(cfg.Suspicion.Threshold, convey.ShouldEqual, 60)
				convey.So(cfg.Balance.Iterations, convey.ShouldEqual, 5000)
				convey.So(cfg.Balance.MaxTeamRange, convey.ShouldEqual, 50)
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("RONDO_LOG_LEVEL", "debug")
			_ = os.Setenv("RONDO_DEFAULT_RANK_SCORE", "45")
			_ = os.Setenv("RONDO_BALANCE__ITERATIONS", "1000")
			_ = os.Setenv("RONDO_BALANCE__MAX_TEAM_RANGE", "40")
			_ = os.Setenv("RONDO_SUSPICION__THRESHOLD", "70")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "debug")
				convey.So(cfg.DefaultRankScore, convey.ShouldEqual, 45)
				convey.So(cfg.Balance.Iterations, convey.ShouldEqual, 1000)
				convey.So(cfg.Balance.MaxTeamRange, convey.ShouldEqual, 40)
				convey.So(cfg.Suspicion.Threshold, convey.ShouldEqual, 70)
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
log_level: warn
default_rank_score: 42
balance:
  iterations: 2500
  max_team_range: 35
  homogeneity_weight: 0.2
suspicion:
  threshold: 55
  boost_ceiling: 90
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RONDO_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.DefaultRankScore, convey.ShouldEqual, 42)
				convey.So(cfg.Balance.Iterations, convey.ShouldEqual, 2500)
				convey.So(cfg.Balance.MaxTeamRange, convey.ShouldEqual, 35)
				convey.So(cfg.Balance.HomogeneityWeight, convey.ShouldEqual, 0.2)
				convey.So(cfg.Suspicion.Threshold, convey.ShouldEqual, 55)
				convey.So(cfg.Suspicion.BoostCeiling, convey.ShouldEqual, 90)
			})

			convey.Convey("And unset keys keep their defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(cfg.Ranks), convey.ShouldEqual, 25)
				convey.So(cfg.EngineWeights.Rank, convey.ShouldEqual, 0.6)
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
log_level: warn
balance:
  iterations: 2500
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("RONDO_CONFIG", tmpFile)
			_ = os.Setenv("RONDO_BALANCE__ITERATIONS", "1234")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars take precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "warn")
				convey.So(cfg.Balance.Iterations, convey.ShouldEqual, 1234)
			})
		})

		convey.Convey("When the explicit file option is used", func() {
			yamlContent := `
log_level: error
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, config.WithFile(tmpFile))

			convey.Convey("Then the file is read without RONDO_CONFIG", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.LogLevel, convey.ShouldEqual, "error")
			})
		})

		convey.Convey("When the config file does not exist", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, config.WithFile("/nonexistent/rondo.yaml"))

			convey.Convey("Then loading fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})

		convey.Convey("When the file contains invalid values", func() {
			yamlContent := `
balance:
  max_team_range: -5
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()
			clearConfigEnvVars()

			cfg, err := config.Load(ctx, config.WithFile(tmpFile))

			convey.Convey("Then validation fails", func() {
				convey.So(err, convey.ShouldNotBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
				convey.So(cfg, convey.ShouldBeNil)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"RONDO_CONFIG",
		"RONDO_LOG_LEVEL",
		"RONDO_DEFAULT_RANK_SCORE",
		"RONDO_BALANCE__ITERATIONS",
		"RONDO_BALANCE__MAX_TEAM_RANGE",
		"RONDO_BALANCE__HOMOGENEITY_WEIGHT",
		"RONDO_SUSPICION__THRESHOLD",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	dir, err := os.MkdirTemp("", "rondo-config-test")
	if err != nil {
		panic(err)
	}
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		panic(err)
	}
	return path
}
