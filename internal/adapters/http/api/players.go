// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/wicketml/gully/internal/domain/namematch"
)

// Default number of fuzzy name matches when the limit param is absent.
const defaultPlayerLimit = 5

// PlayersDependencies defines the interface for fuzzy player lookup.
type PlayersDependencies interface {
	FindPlayers(ctx context.Context, q string, limit int) ([]namematch.Match, error)
}

// PlayersHandler handles fuzzy player-name lookups.
type PlayersHandler struct {
	deps     PlayersDependencies
	maxLimit int
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps PlayersDependencies, maxLimit int) *PlayersHandler {
	return &PlayersHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetPlayers handles GET /players?q=name&limit=N requests.
func (h *PlayersHandler) HandleGetPlayers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrEmptyQuery)
		return
	}

	n := defaultPlayerLimit
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
			return
		}
		if parsed > h.maxLimit {
			writeError(w, http.StatusBadRequest, "limit_exceeded", ErrLimitTooHigh)
			return
		}
		n = parsed
	}

	matches, err := h.deps.FindPlayers(r.Context(), q, n)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "not_ready", err)
		return
	}
	writeJSON(w, http.StatusOK, matches)
}
