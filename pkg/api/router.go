package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// GetRouter initialises a new http router and applies all routes
func GetRouter(s *Server) http.Handler {
	r := chi.NewRouter()
	return applyRoutes(r, s)
}

func applyRoutes(r chi.Router, s *Server) chi.Router {
	r.Route("/", func(r chi.Router) {
		r.Post("/updates", s.postUpdates)
		r.Get("/healthz", getHealthz)
	})

	return r
}
