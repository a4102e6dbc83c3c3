package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/finchworks/tasks-backend/internal/config"
	"github.com/finchworks/tasks-backend/internal/database"
	"github.com/finchworks/tasks-backend/internal/domain"
	"github.com/finchworks/tasks-backend/internal/repository"
	"github.com/finchworks/tasks-backend/internal/server"
	"github.com/finchworks/tasks-backend/internal/service"
)

const shutdownGracePeriod = 5 * time.Second

// gracefulShutdown waits for SIGINT/SIGTERM, drains in-flight requests within
// the grace period, then closes the connection pool.
func gracefulShutdown(apiServer *http.Server, dbService database.Service, done chan bool) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	log.Info("shutting down gracefully, press Ctrl+C again to force")
	stop()

	ctxTimeout, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	if err := apiServer.Shutdown(ctxTimeout); err != nil {
		log.Error("server forced to shutdown", "err", err)
	}

	if err := dbService.Close(); err != nil {
		log.Error("closing database connection pool", "err", err)
	}

	log.Info("server exiting")
	done <- true
}

func main() {
	cfg := config.Load()

	dbService, err := database.New(cfg.DB)
	if err != nil {
		log.Fatal("database initialization failed", "err", err)
	}

	if err := dbService.DB().AutoMigrate(&domain.Task{}); err != nil {
		log.Fatal("database migration failed", "err", err)
	}

	taskRepo := repository.NewGormTaskRepository(dbService.DB())
	taskService := service.NewTaskService(taskRepo)
	apiServer := server.NewServer(cfg, taskService, dbService)

	done := make(chan bool, 1)
	go gracefulShutdown(apiServer, dbService, done)

	log.Info("starting server", "addr", apiServer.Addr)
	err = apiServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("HTTP server error", "err", err)
		os.Exit(1)
	}

	<-done
	log.Info("graceful shutdown complete")
}
