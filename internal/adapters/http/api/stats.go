// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/wicketml/gully/internal/domain/model"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// RoleStatsProvider exposes per-role average predicted scores.
type RoleStatsProvider interface {
	RoleStats(ctx context.Context) (map[model.Role]float64, error)
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	statsProvider StatsProvider
	roleProvider  RoleStatsProvider
}

// NewStatsHandler creates a new stats handler.
func NewStatsHandler(statsProvider StatsProvider, roleProvider RoleStatsProvider) *StatsHandler {
	return &StatsHandler{
		statsProvider: statsProvider,
		roleProvider:  roleProvider,
	}
}

// HandleStats handles GET /stats requests. Role averages are included
// once a trained snapshot is available.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	stats := h.statsProvider.GetStats()
	if roles, err := h.roleProvider.RoleStats(r.Context()); err == nil {
		stats["role_averages"] = roles
	}
	writeJSON(w, http.StatusOK, stats)
}
