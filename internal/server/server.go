package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/finchworks/tasks-backend/internal/config"
	"github.com/finchworks/tasks-backend/internal/database"
	"github.com/finchworks/tasks-backend/internal/service"
)

type Server struct {
	taskService service.TaskService
	db          database.Service
	startedAt   time.Time
}

// NewServer wires the HTTP server around the task service and the database
// health source.
func NewServer(cfg config.Config, taskService service.TaskService, dbService database.Service) *http.Server {
	appServer := &Server{
		taskService: taskService,
		db:          dbService,
		startedAt:   time.Now(),
	}

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      appServer.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
