// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/wicketml/gully/internal/domain/model"
	"github.com/wicketml/gully/internal/domain/namematch"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Query answers one free-text question.
	Query(ctx context.Context, text string) string

	// Read operations expose trained-model data.
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	RoleStats(ctx context.Context) (map[model.Role]float64, error)
	FindPlayers(ctx context.Context, q string, limit int) ([]namematch.Match, error)

	// Retrain rebuilds the model snapshot.
	Retrain(ctx context.Context) (model.SnapshotInfo, error)

	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	chatHandler        *ChatHandler
	leaderboardHandler *LeaderboardHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	retrainHandler     *RetrainHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, maxLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		chatHandler:        NewChatHandler(deps),
		leaderboardHandler: NewLeaderboardHandler(deps, maxLimit),
		statsHandler:       NewStatsHandler(deps, deps),
		playersHandler:     NewPlayersHandler(deps, maxLimit),
		retrainHandler:     NewRetrainHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/chat", MetricsMiddleware(s.chatHandler.HandleChat, "chat"))
	mux.HandleFunc("/leaderboard", MetricsMiddleware(s.leaderboardHandler.HandleGetLeaderboard, "leaderboard"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandleGetPlayers, "players"))
	mux.HandleFunc("/retrain", MetricsMiddleware(s.retrainHandler.HandleRetrain, "retrain"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
