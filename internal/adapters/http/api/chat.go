// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// ChatDependencies defines the interface for free-text query answering.
type ChatDependencies interface {
	Query(ctx context.Context, text string) string
}

// ChatHandler handles free-text chat requests.
type ChatHandler struct {
	deps ChatDependencies
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(deps ChatDependencies) *ChatHandler {
	return &ChatHandler{deps: deps}
}

// chatRequest mirrors the request schema for POST /chat.
type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Response string `json:"response"`
}

// HandleChat handles POST /chat requests. Collaborator failures surface
// as text in the response body, never as a 5xx.
func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	// The original frontend is served from another origin.
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	switch r.Method {
	case http.MethodOptions:
		w.WriteHeader(http.StatusNoContent)
		return
	case http.MethodPost:
	default:
		http.NotFound(w, r)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "bad_request", ErrEmptyQuery)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{Response: h.deps.Query(r.Context(), req.Query)})
}
