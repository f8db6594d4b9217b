package persona

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quorumhall/roundtable/internal/model/persona"
	"github.com/quorumhall/roundtable/pkg/utils"
)

// Handler serves the persona roster.
type Handler struct {
	personas persona.Store
}

// New creates the persona handler.
func New(personas persona.Store) *Handler {
	return &Handler{personas: personas}
}

// RegisterRoutes wires persona routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/personas", h.handleListPersonas)
}

func (h *Handler) handleListPersonas(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, h.personas.List())
}
