package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the property routes. Authentication, versioning and UI
// concerns live outside this service.
func NewRouter(handler *PropertyHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/properties", func(r chi.Router) {
		r.Get("/", handler.Search)
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.GetAvailable)
		r.Put("/{id}", handler.Edit)
		r.Delete("/{id}", handler.Delete)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Get("/properties/{id}", handler.GetAny)
		r.Delete("/catalogs/{kind}/{id}", handler.DeleteCatalog)
	})

	r.Get("/catalogs/{kind}", handler.ListCatalog)

	r.Route("/agents", func(r chi.Router) {
		r.Get("/", handler.ListAgents)
		r.Get("/{agentID}/properties", handler.MaintenanceList)
	})

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return r
}
