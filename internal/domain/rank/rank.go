// Package rank orders players by predicted or historical fantasy points.
package rank

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/wicketml/gully/internal/domain/features"
	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/regress"
)

// Recommend scores every player in lookup whose role matches roleFilter
// (RoleUnknown means no filter) and returns at most topK picks ordered by
// predicted score descending.
//
// Tie-break: candidates are materialized in sorted-name order and the sort
// is stable, so equal predicted scores rank alphabetically and repeat runs
// on the same snapshot agree. An empty candidate set yields an empty,
// non-nil result.
func Recommend(
	m regress.Model,
	lookup map[string]features.Vector,
	roles map[string]model.Role,
	roleFilter model.Role,
	topK int,
) []model.Recommendation {
	names := make([]string, 0, len(lookup))
	for name := range lookup {
		if roleFilter != model.RoleUnknown && roles[name] != roleFilter {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	picks := make([]model.Recommendation, 0, len(names))
	for _, name := range names {
		picks = append(picks, model.Recommendation{
			Player:         name,
			PredictedScore: m.Predict(lookup[name]),
		})
	}

	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].PredictedScore > picks[j].PredictedScore
	})

	if topK > 0 && len(picks) > topK {
		picks = picks[:topK]
	}
	return picks
}

// Leaderboard ranks players by the arithmetic mean of their full point
// history, descending, excluding players with minEvents or fewer recorded
// events, and keeps at most size rows.
func Leaderboard(histories map[string][]model.PointEvent, minEvents, size int) []model.LeaderboardEntry {
	names := make([]string, 0, len(histories))
	for name, h := range histories {
		if len(h) > minEvents {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	entries := make([]model.LeaderboardEntry, 0, len(names))
	for _, name := range names {
		entries = append(entries, model.LeaderboardEntry{
			Player:    name,
			AvgPoints: features.Label(histories[name]),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].AvgPoints > entries[j].AvgPoints
	})

	if size > 0 && len(entries) > size {
		entries = entries[:size]
	}
	return entries
}

// RoleAverages returns the mean predicted score per role across lookup.
// Players without a role assignment count under RoleUnknown.
func RoleAverages(
	m regress.Model,
	lookup map[string]features.Vector,
	roles map[string]model.Role,
) map[model.Role]float64 {
	byRole := make(map[model.Role][]float64)
	for name, vec := range lookup {
		role, ok := roles[name]
		if !ok {
			role = model.RoleUnknown
		}
		byRole[role] = append(byRole[role], m.Predict(vec))
	}

	out := make(map[model.Role]float64, len(byRole))
	for role, scores := range byRole {
		out[role] = stat.Mean(scores, nil)
	}
	return out
}
