// Package history accumulates per-player point histories and roles from
// parsed match records.
package history

import (
	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/scoring"
)

// Dataset is the aggregate view of a match corpus: chronological point
// histories and inferred roles, keyed by player identifier. Read-only once
// returned from Aggregate.
type Dataset struct {
	Histories map[string][]model.PointEvent
	Roles     map[string]model.Role

	// Order lists player identifiers in first-occurrence order, so that
	// downstream iteration is deterministic for identical inputs.
	Order []string

	// Deliveries counts scored balls, for observability.
	Deliveries int
}

// Aggregate walks every match, innings, and delivery in source order and
// applies the scoring engine to each ball.
//
// Role inference is first-write-wins per player: a batter is fixed as
// batsman unless already assigned, a bowler is fixed as bowler only when
// no assignment exists. Batting history accumulation is unconditional;
// bowler and fielder credits are appended only when points were earned,
// so a specialist bowler still builds a rankable history from wickets.
func Aggregate(matches []model.MatchRecord) *Dataset {
	d := &Dataset{
		Histories: make(map[string][]model.PointEvent),
		Roles:     make(map[string]model.Role),
	}

	for _, match := range matches {
		for _, innings := range match.Innings {
			for _, ball := range innings.Deliveries {
				d.scoreBall(match.ID, ball)
			}
		}
	}

	return d
}

func (d *Dataset) scoreBall(matchID string, ball model.Delivery) {
	d.Deliveries++
	award := scoring.Points(ball)

	if ball.Batter != "" {
		d.append(ball.Batter, matchID, award.Batter)
		d.setRole(ball.Batter, model.RoleBatsman)
	}
	if ball.Bowler != "" {
		if award.Bowler > 0 {
			d.append(ball.Bowler, matchID, award.Bowler)
		}
		d.setRole(ball.Bowler, model.RoleBowler)
	}
	if w := ball.Dismissal; w != nil && w.Fielder != "" && award.Fielder > 0 {
		d.append(w.Fielder, matchID, award.Fielder)
	}
}

func (d *Dataset) append(player, matchID string, points float64) {
	if _, seen := d.Histories[player]; !seen {
		d.Order = append(d.Order, player)
	}
	d.Histories[player] = append(d.Histories[player], model.PointEvent{
		MatchID: matchID,
		Points:  points,
	})
}

// setRole fixes a role for player unless one is already assigned.
func (d *Dataset) setRole(player string, role model.Role) {
	if _, ok := d.Roles[player]; !ok {
		d.Roles[player] = role
	}
}

// RoleOf returns the assigned role for player, or RoleUnknown.
func (d *Dataset) RoleOf(player string) model.Role {
	if r, ok := d.Roles[player]; ok {
		return r
	}
	return model.RoleUnknown
}
