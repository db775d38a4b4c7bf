package roster_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/rondo/internal/domain/model"
	"github.com/okian/rondo/internal/domain/roster"
	"github.com/smartystreets/goconvey/convey"
)

const bareArray = `[
  {"name": "alpha", "rank_current": "Gold 2", "kd_ratio": 1.1},
  {"name": "beta", "rank_current": "Silver 3", "rank_peak": "Gold 1", "kd_ratio": 0.9,
   "average_combat_score": 210.5, "win_rate": 52.0, "headshot_rate": 22.5,
   "account_level": 120, "total_ranked_matches": 300,
   "admin_skill_rating": 6, "admin_familiarity": 3}
]`

func TestRosterParse(t *testing.T) {
	convey.Convey("Given roster JSON", t, func() {
		convey.Convey("When parsing a bare record array", func() {
			profiles, err := roster.Parse(strings.NewReader(bareArray))

			convey.Convey("Then both records normalize", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(profiles), convey.ShouldEqual, 2)
				convey.So(profiles[0].Name, convey.ShouldEqual, "alpha")
				convey.So(profiles[1].RankPeak, convey.ShouldEqual, "Gold 1")
				convey.So(*profiles[1].CombatScore, convey.ShouldEqual, 210.5)
				convey.So(*profiles[1].AdminRating, convey.ShouldEqual, 6)
			})

			convey.Convey("Then missing ids are assigned from record order", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(profiles[0].ID, convey.ShouldEqual, 1)
				convey.So(profiles[1].ID, convey.ShouldEqual, 2)
			})

			convey.Convey("Then absent optional fields stay absent", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(profiles[0].CombatScore, convey.ShouldBeNil)
				convey.So(profiles[0].AdminRating, convey.ShouldBeNil)
				convey.So(profiles[0].Familiarity, convey.ShouldBeNil)
			})
		})

		convey.Convey("When parsing the nested container shape", func() {
			wrapped := `{"players": ` + bareArray + `}`
			profiles, err := roster.Parse(strings.NewReader(wrapped))

			convey.Convey("Then it normalizes identically", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(len(profiles), convey.ShouldEqual, 2)
				convey.So(profiles[0].Name, convey.ShouldEqual, "alpha")
			})
		})

		convey.Convey("When a record misses its name", func() {
			_, err := roster.Parse(strings.NewReader(`[{"rank_current": "Gold 2", "kd_ratio": 1.0}]`))

			convey.So(err, convey.ShouldWrap, roster.ErrMissingField)
		})

		convey.Convey("When a record misses its current rank", func() {
			_, err := roster.Parse(strings.NewReader(`[{"name": "gamma", "kd_ratio": 1.0}]`))

			convey.So(err, convey.ShouldWrap, roster.ErrMissingField)
			convey.So(err.Error(), convey.ShouldContainSubstring, "gamma")
		})

		convey.Convey("When a record misses its kd ratio", func() {
			_, err := roster.Parse(strings.NewReader(`[{"name": "gamma", "rank_current": "Gold 2"}]`))

			convey.So(err, convey.ShouldWrap, roster.ErrMissingField)
		})

		convey.Convey("When two records share an id", func() {
			_, err := roster.Parse(strings.NewReader(`[
				{"id": 7, "name": "alpha", "rank_current": "Gold 2", "kd_ratio": 1.1},
				{"id": 7, "name": "beta", "rank_current": "Gold 3", "kd_ratio": 0.9}
			]`))

			convey.So(err, convey.ShouldWrap, roster.ErrDuplicateID)
		})

		convey.Convey("When the payload is neither accepted shape", func() {
			_, err := roster.Parse(strings.NewReader(`{"teams": []}`))

			convey.So(err, convey.ShouldWrap, roster.ErrInvalidRoster)
		})

		convey.Convey("When the payload is not JSON at all", func() {
			_, err := roster.Parse(strings.NewReader(`not json`))

			convey.So(err, convey.ShouldWrap, roster.ErrInvalidRoster)
		})
	})
}

func TestRosterFile(t *testing.T) {
	convey.Convey("Given a roster file on disk", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "players.json")
		convey.So(os.WriteFile(path, []byte(bareArray), 0o600), convey.ShouldBeNil)

		convey.Convey("When reading it", func() {
			profiles, err := roster.ParseFile(path)

			convey.So(err, convey.ShouldBeNil)
			convey.So(len(profiles), convey.ShouldEqual, 2)
		})

		convey.Convey("When the file does not exist", func() {
			_, err := roster.ParseFile(filepath.Join(dir, "missing.json"))

			convey.So(err, convey.ShouldWrap, roster.ErrInvalidRoster)
		})
	})
}

func TestRosterWrite(t *testing.T) {
	convey.Convey("Given raw profiles", t, func() {
		profiles, err := roster.Parse(strings.NewReader(bareArray))
		convey.So(err, convey.ShouldBeNil)

		convey.Convey("When writing and re-reading them", func() {
			var buf bytes.Buffer
			convey.So(roster.Write(&buf, profiles), convey.ShouldBeNil)

			again, err := roster.Parse(&buf)

			convey.Convey("Then the roster survives the roundtrip", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(again, convey.ShouldResemble, profiles)
			})
		})

		convey.Convey("When writing an empty roster", func() {
			var buf bytes.Buffer
			convey.So(roster.Write(&buf, []model.Profile{}), convey.ShouldBeNil)
			convey.So(buf.String(), convey.ShouldContainSubstring, `"players"`)
		})
	})
}
