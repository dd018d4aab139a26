package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/amemlabs/amem/internal/service"
)

type MemoryHandler struct {
	formation *service.FormationService
	context   *service.ContextService
}

func NewMemoryHandler(formation *service.FormationService, context *service.ContextService) *MemoryHandler {
	return &MemoryHandler{formation: formation, context: context}
}

type formMemoryRequest struct {
	UserMessage       string `json:"user_message"`
	AssistantResponse string `json:"assistant_response"`
	SessionID         int64  `json:"session_id"`
}

// Form runs the memory formation pipeline for one conversation turn.
// The pipeline swallows its own failures, so this always acknowledges
// unless the request itself is malformed.
func (h *MemoryHandler) Form(w http.ResponseWriter, r *http.Request) {
	var req formMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.SessionID < 0 {
		writeError(w, http.StatusBadRequest, "session_id must be non-negative")
		return
	}

	h.formation.FormMemory(r.Context(), req.UserMessage, req.AssistantResponse, req.SessionID)

	writeJSON(w, http.StatusAccepted, map[string]string{"status": "ok"})
}

// Context returns the assembled memory context block for a session. An
// empty context is a normal response, not an error.
func (h *MemoryHandler) Context(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.ParseInt(r.URL.Query().Get("session_id"), 10, 64)
	if err != nil || sessionID < 0 {
		writeError(w, http.StatusBadRequest, "session_id query parameter is required and must be non-negative")
		return
	}

	memoryContext := h.context.Build(r.Context(), sessionID)

	writeJSON(w, http.StatusOK, map[string]string{"context": memoryContext})
}
