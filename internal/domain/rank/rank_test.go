package rank_test

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wicketml/gully/internal/domain/features"
	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/rank"
	"github.com/wicketml/gully/internal/domain/regress"
)

func TestRecommend(t *testing.T) {
	// Identity-ish model: prediction equals the history mean.
	m := regress.Model{MeanWeight: 1}

	lookup := map[string]features.Vector{
		"kohli":  {Mean: 40, Std: 10},
		"rahul":  {Mean: 30, Std: 5},
		"starc":  {Mean: 25, Std: 0},
		"bumrah": {Mean: 20, Std: 2},
	}
	roles := map[string]model.Role{
		"kohli":  model.RoleBatsman,
		"rahul":  model.RoleBatsman,
		"starc":  model.RoleBowler,
		"bumrah": model.RoleBowler,
	}

	Convey("Given a trained snapshot", t, func() {
		Convey("When recommending without a role filter", func() {
			picks := rank.Recommend(m, lookup, roles, model.RoleUnknown, 3)

			Convey("Then the top-K players are ordered by predicted score", func() {
				So(picks, ShouldHaveLength, 3)
				So(picks[0].Player, ShouldEqual, "kohli")
				So(picks[1].Player, ShouldEqual, "rahul")
				So(picks[2].Player, ShouldEqual, "starc")
			})
		})

		Convey("When filtering for bowlers", func() {
			picks := rank.Recommend(m, lookup, roles, model.RoleBowler, 5)

			Convey("Then no batsman appears", func() {
				So(picks, ShouldHaveLength, 2)
				for _, p := range picks {
					So(roles[p.Player], ShouldEqual, model.RoleBowler)
				}
			})
		})

		Convey("When no player matches the filter", func() {
			picks := rank.Recommend(m, map[string]features.Vector{}, roles, model.RoleBatsman, 5)

			Convey("Then the result is explicitly empty, not nil", func() {
				So(picks, ShouldNotBeNil)
				So(picks, ShouldBeEmpty)
			})
		})

		Convey("When predicted scores tie", func() {
			tied := map[string]features.Vector{
				"zmith": {Mean: 10},
				"adams": {Mean: 10},
				"mid":   {Mean: 10},
			}
			picks := rank.Recommend(m, tied, nil, model.RoleUnknown, 0)

			Convey("Then ties preserve sorted-name candidate order", func() {
				So(picks, ShouldHaveLength, 3)
				So(picks[0].Player, ShouldEqual, "adams")
				So(picks[1].Player, ShouldEqual, "mid")
				So(picks[2].Player, ShouldEqual, "zmith")
			})

			Convey("And repeat runs agree", func() {
				So(rank.Recommend(m, tied, nil, model.RoleUnknown, 0), ShouldResemble, picks)
			})
		})
	})
}

func TestLeaderboard(t *testing.T) {
	events := func(points ...float64) []model.PointEvent {
		out := make([]model.PointEvent, len(points))
		for i, p := range points {
			out[i] = model.PointEvent{MatchID: "m", Points: p}
		}
		return out
	}

	Convey("Given player histories", t, func() {
		histories := map[string][]model.PointEvent{
			"steady":  events(6, 6, 6, 6, 6, 6),          // 6 events, avg 6
			"star":    events(9, 9, 9, 9, 9, 9, 9),       // 7 events, avg 9
			"cameo":   events(100, 100),                  // high average, too few events
			"grinder": events(1, 1, 1, 1, 1, 1, 1, 1, 1), // 9 events, avg 1
		}

		board := rank.Leaderboard(histories, 5, 10)

		Convey("Then players at or under the noise floor are excluded", func() {
			for _, e := range board {
				So(e.Player, ShouldNotEqual, "cameo")
			}
		})

		Convey("Then rows are ordered by average descending", func() {
			So(board, ShouldHaveLength, 3)
			So(board[0].Player, ShouldEqual, "star")
			So(board[0].AvgPoints, ShouldEqual, 9)
			So(board[1].Player, ShouldEqual, "steady")
			So(board[2].Player, ShouldEqual, "grinder")
		})

		Convey("And the size cap holds", func() {
			So(rank.Leaderboard(histories, 5, 2), ShouldHaveLength, 2)
		})
	})
}

func TestRoleAverages(t *testing.T) {
	m := regress.Model{MeanWeight: 1}

	Convey("Given a mixed-role lookup", t, func() {
		lookup := map[string]features.Vector{
			"kohli": {Mean: 40},
			"rahul": {Mean: 20},
			"starc": {Mean: 25},
			"ghost": {Mean: 10},
		}
		roles := map[string]model.Role{
			"kohli": model.RoleBatsman,
			"rahul": model.RoleBatsman,
			"starc": model.RoleBowler,
		}

		avg := rank.RoleAverages(m, lookup, roles)

		Convey("Then per-role predicted means are reported", func() {
			So(avg[model.RoleBatsman], ShouldEqual, 30)
			So(avg[model.RoleBowler], ShouldEqual, 25)
			So(avg[model.RoleUnknown], ShouldEqual, 10)
		})
	})
}
