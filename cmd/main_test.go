package main

import (
	"context"
	"os"
	"testing"

	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/internal/domain/balance"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigFromEnvironment(t *testing.T) {
	convey.Convey("Given the CLI environment", t, func() {
		_ = os.Setenv("RONDO_BALANCE__ITERATIONS", "1500")
		defer func() { _ = os.Unsetenv("RONDO_BALANCE__ITERATIONS") }()

		convey.Convey("Then configuration should be loadable", func() {
			cfg, err := config.Load(context.Background())
			convey.So(err, convey.ShouldBeNil)
			convey.So(cfg, convey.ShouldNotBeNil)
			convey.So(cfg.Balance.Iterations, convey.ShouldEqual, 1500)
		})
	})
}

func TestReplaceHelpers(t *testing.T) {
	convey.Convey("Given an assignment with two teams", t, func() {
		assigned := func(id int, name string) model.Profile {
			return model.Profile{ID: id, Name: name, FinalScore: 50}
		}
		a := model.Assignment{
			Teams: []model.Team{
				{Number: 1, Members: []model.Profile{assigned(1, "alpha"), assigned(2, "beta")}},
				{Number: 2, Members: []model.Profile{assigned(3, "gamma"), assigned(4, "delta")}},
			},
		}
		scored := []model.Profile{
			assigned(1, "alpha"), assigned(2, "beta"),
			assigned(3, "gamma"), assigned(4, "delta"),
			assigned(5, "bench"),
		}

		convey.Convey("When locating the team of a member", func() {
			n, err := teamOf(a, "gamma")
			convey.So(err, convey.ShouldBeNil)
			convey.So(n, convey.ShouldEqual, 2)

			_, err = teamOf(a, "nobody")
			convey.So(err, convey.ShouldWrap, balance.ErrMemberNotFound)
		})

		convey.Convey("When picking a substitute", func() {
			sub, err := pickSubstitute(a, scored, "bench")
			convey.So(err, convey.ShouldBeNil)
			convey.So(sub.ID, convey.ShouldEqual, 5)

			convey.Convey("Then assigned members are rejected", func() {
				_, err := pickSubstitute(a, scored, "delta")
				convey.So(err, convey.ShouldNotBeNil)
			})

			convey.Convey("Then unknown names are rejected", func() {
				_, err := pickSubstitute(a, scored, "stranger")
				convey.So(err, convey.ShouldWrap, balance.ErrMemberNotFound)
			})
		})
	})
}

func TestVersionSuffix(t *testing.T) {
	convey.Convey("Given the version string", t, func() {
		convey.So(commitSuffix(), convey.ShouldEqual, "")

		commit = "abc1234"
		defer func() { commit = "" }()
		convey.So(commitSuffix(), convey.ShouldEqual, " (commit: abc1234)")
	})
}
