package service_test

import (
	"context"
	"fmt"
	"testing"

	service "github.com/okian/rondo/internal/app"
	"github.com/okian/rondo/internal/config"
	"github.com/okian/rondo/internal/domain/balance"
	"github.com/okian/rondo/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

// rawRoster builds n unscored profiles cycling over a few rank tokens.
func rawRoster(n int) []model.Profile {
	ranks := []string{"Silver 2", "Gold 1", "Gold 3", "Platinum 2", "Diamond 1", "Ascendant 2"}
	acs := 170.0

	out := make([]model.Profile, n)
	for i := range out {
		combat := acs + float64(i%7)*12
		out[i] = model.Profile{
			ID:          i + 1,
			Name:        fmt.Sprintf("competitor-%02d", i+1),
			RankCurrent: ranks[i%len(ranks)],
			KDRatio:     0.8 + float64(i%5)*0.12,
			CombatScore: &combat,
		}
	}
	return out
}

func TestServiceRun(t *testing.T) {
	convey.Convey("Given a service over the default configuration", t, func() {
		ctx := context.Background()
		cfg := config.New()

		convey.Convey("When running a full 6x5 roster", func() {
			svc := service.New(cfg,
				service.WithTeamCount(6),
				service.WithTeamSize(5),
				service.WithSeed(42),
			)

			res, err := svc.Run(ctx, rawRoster(30))

			convey.Convey("Then every competitor is scored and assigned", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(res.RunID, convey.ShouldNotBeEmpty)
				convey.So(len(res.Roster), convey.ShouldEqual, 30)
				convey.So(res.Assignment.Size(), convey.ShouldEqual, 30)
				convey.So(len(res.Assignment.Teams), convey.ShouldEqual, 6)
				for i, p := range res.Roster {
					convey.So(p.ID, convey.ShouldEqual, i+1)
					convey.So(p.FinalScore, convey.ShouldBeGreaterThan, 0)
				}
			})
		})

		convey.Convey("When the roster size does not match teams x size", func() {
			svc := service.New(cfg,
				service.WithTeamCount(6),
				service.WithTeamSize(5),
			)

			res, err := svc.Run(ctx, rawRoster(29))

			convey.Convey("Then the run fails before producing anything", func() {
				convey.So(err, convey.ShouldWrap, balance.ErrCountMismatch)
				convey.So(res.RunID, convey.ShouldBeEmpty)
				convey.So(res.Roster, convey.ShouldBeNil)
				convey.So(len(res.Assignment.Teams), convey.ShouldEqual, 0)
			})
		})

		convey.Convey("When running the same roster and seed twice", func() {
			svc := service.New(cfg,
				service.WithTeamCount(4),
				service.WithTeamSize(5),
				service.WithSeed(7),
				service.WithIterations(2000),
			)

			first, err1 := svc.Run(ctx, rawRoster(20))
			second, err2 := svc.Run(ctx, rawRoster(20))

			convey.Convey("Then the assignments are identical apart from the run id", func() {
				convey.So(err1, convey.ShouldBeNil)
				convey.So(err2, convey.ShouldBeNil)
				convey.So(second.Assignment, convey.ShouldResemble, first.Assignment)
				convey.So(second.Roster, convey.ShouldResemble, first.Roster)
				convey.So(second.RunID, convey.ShouldNotEqual, first.RunID)
			})
		})
	})
}

func TestServiceReplace(t *testing.T) {
	convey.Convey("Given a completed run", t, func() {
		ctx := context.Background()
		cfg := config.New()
		svc := service.New(cfg,
			service.WithTeamCount(4),
			service.WithTeamSize(5),
			service.WithSeed(42),
		)

		res, err := svc.Run(ctx, rawRoster(20))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When replacing a member with an unscored substitute", func() {
			target := res.Assignment.Teams[2]
			departing := target.Members[1].Name
			substitute := model.Profile{
				ID:          99,
				Name:        "late-signup",
				RankCurrent: "Gold 2",
				KDRatio:     1.05,
			}

			patched, err := svc.Replace(ctx, res.Assignment, target.Number, departing, substitute)

			convey.Convey("Then the substitute arrives fully scored", func() {
				convey.So(err, convey.ShouldBeNil)
				var found *model.Profile
				for i, m := range patched.Teams[2].Members {
					if m.Name == "late-signup" {
						found = &patched.Teams[2].Members[i]
					}
				}
				convey.So(found, convey.ShouldNotBeNil)
				convey.So(found.FinalScore, convey.ShouldBeGreaterThan, 0)
			})

			convey.Convey("Then the other teams are untouched", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(patched.Teams[0], convey.ShouldResemble, res.Assignment.Teams[0])
				convey.So(patched.Teams[1], convey.ShouldResemble, res.Assignment.Teams[1])
				convey.So(patched.Teams[3], convey.ShouldResemble, res.Assignment.Teams[3])
			})
		})

		convey.Convey("When the departing member does not exist", func() {
			_, err := svc.Replace(ctx, res.Assignment, 1, "nobody", rawRoster(1)[0])

			convey.So(err, convey.ShouldWrap, balance.ErrMemberNotFound)
		})
	})
}
