package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"gorm.io/gorm"

	"github.com/taskpad/taskpad-go/internal/config"
	"github.com/taskpad/taskpad-go/internal/handler"
	"github.com/taskpad/taskpad-go/internal/middleware"
	"github.com/taskpad/taskpad-go/internal/repository"
	"github.com/taskpad/taskpad-go/internal/service"
	"github.com/taskpad/taskpad-go/web"
)

// NewRouter wires repositories, services and handlers into the HTTP routing
// table. Paths not claimed by the API serve the embedded browser client.
func NewRouter(cfg config.Config, db *gorm.DB) http.Handler {
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTExpiry)
	taskService := service.NewTaskService(taskRepo)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/auth/register", authHandler.HandleRegister)
	r.Post("/api/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.JWTSecret))

		r.Get("/api/auth/me", authHandler.HandleMe)

		r.Get("/api/tasks", taskHandler.HandleListTasks)
		r.Post("/api/tasks", taskHandler.HandleCreateTask)
		r.Put("/api/tasks/{id}", taskHandler.HandleUpdateTask)
		r.Delete("/api/tasks/{id}", taskHandler.HandleDeleteTask)
	})

	r.Handle("/*", web.Handler())

	return r
}
