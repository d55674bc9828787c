// Package model contains domain models passed between layers.
package model

import "time"

// Dismissal describes a wicket falling on a delivery. Shape variance in the
// raw data (object vs single-element list, fielder vs fielders) is resolved
// at the parsing boundary; this struct is already canonical.
type Dismissal struct {
	// Kind is the dismissal vocabulary from the source data:
	// caught, stumped, run out, bowled, lbw, ...
	Kind string
	// Fielder is the first credited fielder, empty for bowler-only
	// dismissals like bowled or lbw.
	Fielder string
}

// Delivery represents one recorded ball, the atomic scoring unit.
type Delivery struct {
	Batter     string
	Bowler     string
	BatterRuns int
	Dismissal  *Dismissal // nil when no wicket fell
}

// Innings is one team's batting turn within a match.
type Innings struct {
	Team       string
	Deliveries []Delivery
}

// MatchRecord is one parsed cricsheet document.
type MatchRecord struct {
	// ID is a stable identifier derived from the source file name.
	ID string
	// Info carries the opaque match metadata section.
	Info map[string]any
	// Innings holds the team innings in source order.
	Innings []Innings
}

// PointEvent is one fantasy-points outcome for a player in a match context.
type PointEvent struct {
	MatchID string
	Points  float64
}

// Role is a player's primary categorical function as inferred from
// event participation.
type Role string

// Role values.
const (
	RoleBatsman Role = "batsman"
	RoleBowler  Role = "bowler"
	RoleUnknown Role = "unknown"
)

// ParseRole maps free text to a Role; anything unrecognized is RoleUnknown.
func ParseRole(s string) Role {
	switch Role(s) {
	case RoleBatsman, RoleBowler:
		return Role(s)
	default:
		return RoleUnknown
	}
}

// Recommendation is one ranked pick returned to a caller.
type Recommendation struct {
	Player         string  `json:"player"`
	PredictedScore float64 `json:"predicted_score"`
}

// LeaderboardEntry is one row of the historical-average leaderboard artifact.
type LeaderboardEntry struct {
	Player    string  `json:"player"`
	AvgPoints float64 `json:"avg_points"`
}

// SnapshotInfo describes the currently served model snapshot.
type SnapshotInfo struct {
	SnapshotID string    `json:"snapshot_id"`
	TrainedAt  time.Time `json:"trained_at"`
	Players    int       `json:"players"`
}
