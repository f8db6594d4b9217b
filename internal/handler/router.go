package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	consulthandler "github.com/quorumhall/roundtable/internal/handler/consult"
	personahandler "github.com/quorumhall/roundtable/internal/handler/persona"
	middlewarePkg "github.com/quorumhall/roundtable/internal/middleware"
	personaModel "github.com/quorumhall/roundtable/internal/model/persona"
	consultService "github.com/quorumhall/roundtable/internal/service/consult"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(personas personaModel.Store, consultSvc *consultService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	personaHandler := personahandler.New(personas)
	consultHandler := consulthandler.New(consultSvc)

	r.Route("/api", func(api chi.Router) {
		personaHandler.RegisterRoutes(api)
		consultHandler.RegisterRoutes(api)
	})

	return r
}
