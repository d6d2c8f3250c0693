package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"timeTracker/internal/config"
	"timeTracker/internal/handlers"
	"timeTracker/internal/logger"
	"timeTracker/internal/middleware"
	"timeTracker/internal/repository/sheet/inmemory"
	"timeTracker/internal/repository/sheet/postgres"
	"timeTracker/internal/service"
	"timeTracker/internal/worker"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

type App struct {
	config    *config.Config
	server    *http.Server
	router    *chi.Mux
	repo      service.SheetRepository
	worker    *worker.BackupWorker
	shutdowns []func()
}

func New(cfg *config.Config) *App {
	return &App{
		config:    cfg,
		shutdowns: make([]func(), 0),
	}
}

func (a *App) Init(ctx context.Context) error {
	if err := logger.Init(a.config.Logging.Development); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	a.shutdowns = append(a.shutdowns, func() {
		logger.Sync()
	})

	switch a.config.Repository.Type {
	case "postgres":
		storage, err := postgres.New(ctx, a.config.Database.URL)
		if err != nil {
			return fmt.Errorf("initializing postgres repository: %w", err)
		}
		a.shutdowns = append(a.shutdowns, storage.Close)
		a.repo = storage
	case "inmemory", "":
		a.repo = inmemory.NewSheetStorage()
	default:
		return fmt.Errorf("unknown repository type %q", a.config.Repository.Type)
	}

	sheetService := service.NewTimesheetService(a.repo)
	sheetHandler := handlers.NewSheetHandler(&sheetService)

	if a.config.Backup.Enabled {
		a.worker = worker.NewBackupWorker(a.repo, &a.config.Backup.Interval, a.config.Backup.Dir)
	}

	a.router = newRouter(&sheetHandler)
	a.server = &http.Server{
		Addr:    a.config.GetServerAddr(),
		Handler: a.router,
	}

	return nil
}

// Run blocks until the context is cancelled, then drains the server.
func (a *App) Run(ctx context.Context) error {
	if a.worker != nil {
		go a.worker.Start(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server started on " + a.server.Addr)
		if err := a.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.Shutdown()
		return fmt.Errorf("server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", err)
	}

	a.Shutdown()
	return nil
}

func (a *App) Shutdown() {
	for i := len(a.shutdowns) - 1; i >= 0; i-- {
		a.shutdowns[i]()
	}
}

func newRouter(h *handlers.SheetHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(middleware.RateLimit(100))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
	}))

	r.Post("/login", h.Login)       // POST /login
	r.Get("/users", h.ListUsers)    // GET /users
	r.Get("/health", h.HealthCheck) // GET /health

	r.Route("/users/{name}", func(r chi.Router) {
		r.Get("/sheet", h.GetSheet)        // GET /users/{name}/sheet
		r.Delete("/sheet", h.ClearSheet)   // DELETE /users/{name}/sheet?confirm=true
		r.Get("/summary", h.GetSummary)    // GET /users/{name}/summary
		r.Get("/export", h.Export)         // GET /users/{name}/export
		r.Post("/import", h.Import)        // POST /users/{name}/import
		r.Get("/share", h.Share)           // GET /users/{name}/share
		r.Post("/drag/drop", h.Drop)       // POST /users/{name}/drag/drop

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.PostTask)           // POST /users/{name}/tasks
			r.Post("/move", h.MoveTask)       // POST /users/{name}/tasks/move
			r.Post("/reorder", h.ReorderTask) // POST /users/{name}/tasks/reorder
		})

		r.Route("/groups", func(r chi.Router) {
			r.Post("/reorder", h.ReorderGroups) // POST /users/{name}/groups/reorder

			r.Route("/{groupId}", func(r chi.Router) {
				r.Post("/tasks", h.PostTaskToGroup) // POST /users/{name}/groups/{groupId}/tasks

				r.Route("/tasks/{taskId}", func(r chi.Router) {
					r.Patch("/", h.UpdateTask)         // PATCH  .../tasks/{taskId}
					r.Put("/date", h.UpdateTaskDate)   // PUT    .../tasks/{taskId}/date
					r.Delete("/", h.DeleteTask)        // DELETE .../tasks/{taskId}
				})
			})
		})
	})

	return r
}
