// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"net/http"

	service "github.com/wicketml/gully/internal/app"
	"github.com/wicketml/gully/internal/domain/model"
)

// RetrainDependencies defines the interface for forced retraining.
type RetrainDependencies interface {
	Retrain(ctx context.Context) (model.SnapshotInfo, error)
}

// RetrainHandler handles forced retrain requests.
type RetrainHandler struct {
	deps RetrainDependencies
}

// NewRetrainHandler creates a new retrain handler.
func NewRetrainHandler(deps RetrainDependencies) *RetrainHandler {
	return &RetrainHandler{deps: deps}
}

// HandleRetrain handles POST /retrain requests. A retrain already in
// flight answers 409 rather than queueing a second run.
func (h *RetrainHandler) HandleRetrain(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	info, err := h.deps.Retrain(r.Context())
	switch {
	case errors.Is(err, service.ErrRetrainInFlight):
		writeError(w, http.StatusConflict, "retrain_in_flight", err)
		return
	case err != nil:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
		return
	}

	writeJSON(w, http.StatusAccepted, info)
}
