package main

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/calebm/taskman-api/internal/api"
	apiMiddleware "github.com/calebm/taskman-api/internal/api/middleware"
	"github.com/calebm/taskman-api/internal/service/auth"
	"github.com/calebm/taskman-api/internal/store"
)

// newRouter creates and configures the application router with all routes
// and middleware.
func newRouter(
	userStore store.UserStore,
	taskStore store.TaskStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	userHandler := api.NewUserHandler(userStore, hasher, logger)
	taskHandler := api.NewTaskHandler(taskStore, logger)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.Register)
		r.Post("/users/{userID}/tasks", taskHandler.CreateTask)
		r.Get("/users/{userID}/tasks", taskHandler.ListTasks)
		r.Put("/tasks/{taskID}", taskHandler.UpdateTask)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
