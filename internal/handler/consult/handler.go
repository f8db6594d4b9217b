package consult

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	consultmodel "github.com/quorumhall/roundtable/internal/model/consult"
	consultservice "github.com/quorumhall/roundtable/internal/service/consult"
	"github.com/quorumhall/roundtable/pkg/utils"
)

// Handler exposes the consultation round over HTTP. Both endpoints run
// the same orchestrator as the CLI, so refusal and failure semantics
// match exactly.
type Handler struct {
	svc *consultservice.Service
}

// New creates the consult handler.
func New(svc *consultservice.Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes wires consultation routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/consult", h.handleConsult)
	r.Get("/consult/stream", h.handleConsultStream)
}

type consultRequest struct {
	Message string `json:"message"`
}

type entryPayload struct {
	Speaker  string `json:"speaker"`
	Message  string `json:"message"`
	FollowUp bool   `json:"followUp,omitempty"`
}

func toPayload(turns []consultmodel.Turn) []entryPayload {
	out := make([]entryPayload, 0, len(turns))
	for _, t := range turns {
		out = append(out, entryPayload{Speaker: t.Speaker, Message: t.Message, FollowUp: t.FollowUp})
	}
	return out
}

func (h *Handler) handleConsult(w http.ResponseWriter, r *http.Request) {
	var req consultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.Message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message is required")
		return
	}

	entries := h.svc.Ask(r.Context(), req.Message)
	utils.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"sessionId": h.svc.SessionID(),
		"entries":   toPayload(entries),
	})
}

// handleConsultStream emits one SSE event per persona entry. Responses
// are produced sequentially, so clients see the panel fill in live.
func (h *Handler) handleConsultStream(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		utils.RespondError(w, http.StatusBadRequest, "message query parameter is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		utils.RespondError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	utils.SetupSSEHeaders(w)
	utils.SendSSEEvent(w, flusher, "status", map[string]string{"message": "consulting expert panel"})

	entries := h.svc.Ask(r.Context(), message)
	for _, entry := range toPayload(entries) {
		utils.SendSSEEvent(w, flusher, "entry", entry)
	}
	utils.SendSSEEvent(w, flusher, "done", map[string]int{"entries": len(entries)})
}
