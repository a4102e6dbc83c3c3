package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

func (s *Server) RegisterRoutes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"https://*", "http://*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.healthHandler)
		r.Route("/v1/tasks", func(r chi.Router) {
			r.Get("/", s.listTasksHandler)
			r.Post("/", s.createTaskHandler)
			r.Get("/{id}", s.getTaskHandler)
			r.Put("/{id}", s.replaceTaskHandler)
			r.Patch("/{id}/completed", s.patchCompletedHandler)
			r.Delete("/{id}", s.deleteTaskHandler)
		})
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusNotFound, errorResponse{Error: "Not Found", StatusCode: http.StatusNotFound})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		respondWithJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "Method Not Allowed", StatusCode: http.StatusMethodNotAllowed})
	})

	return r
}

type healthResponse struct {
	Status string  `json:"status"`
	Uptime float64 `json:"uptime"`
}

// healthHandler always answers 200; a failing store ping degrades the status
// field instead of failing the request.
func (s *Server) healthHandler(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if dbHealth := s.db.Health(); dbHealth["status"] != "up" {
		status = "degraded"
	}
	respondWithJSON(w, http.StatusOK, healthResponse{
		Status: status,
		Uptime: time.Since(s.startedAt).Seconds(),
	})
}
