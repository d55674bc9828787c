// Package scoring computes fantasy points from a single delivery.
package scoring

import (
	"github.com/wicketml/gully/internal/domain/model"
)

// Fantasy point values.
const (
	fourBonus     = 1
	sixBonus      = 2
	wicketPoints  = 25
	catchPoints   = 8
	stumpedPoints = 12
)

// Dismissal kinds with special handling.
const (
	kindCaught  = "caught"
	kindStumped = "stumped"
	kindRunOut  = "run out"
)

// Award holds the points earned on one delivery, split by credited player.
// A single delivery may award points to up to three distinct players.
type Award struct {
	Batter  float64
	Bowler  float64
	Fielder float64
}

// Total returns the combined points awarded on the delivery.
func (a Award) Total() float64 {
	return a.Batter + a.Bowler + a.Fielder
}

// Points applies the scoring rules to one delivery. Rules are independent
// and additive:
//
//   - Batting: one point per run, +1 bonus on a four, +2 bonus on a six.
//   - Bowling: +25 for a dismissal credited to the bowler. Run-outs are
//     not bowler credits.
//   - Fielding: +8 for a catch, +12 for a stumping or run-out, when a
//     fielder is recorded on the dismissal.
//
// A missing batter or bowler identifier skips that credit.
func Points(d model.Delivery) Award {
	var a Award

	if d.Batter != "" {
		a.Batter = float64(d.BatterRuns)
		switch d.BatterRuns {
		case 4:
			a.Batter += fourBonus
		case 6:
			a.Batter += sixBonus
		}
	}

	w := d.Dismissal
	if w == nil || w.Kind == "" {
		return a
	}

	if d.Bowler != "" && w.Kind != kindRunOut {
		a.Bowler = wicketPoints
	}

	if w.Fielder != "" {
		switch w.Kind {
		case kindCaught:
			a.Fielder = catchPoints
		case kindStumped, kindRunOut:
			a.Fielder = stumpedPoints
		}
	}

	return a
}
