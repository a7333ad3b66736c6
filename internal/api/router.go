package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/Harshitk-cp/semprove/internal/api/handlers"
	mw "github.com/Harshitk-cp/semprove/internal/api/middleware"
	"github.com/Harshitk-cp/semprove/internal/bootstrap"
	"github.com/Harshitk-cp/semprove/internal/buildconfig"
	"github.com/Harshitk-cp/semprove/internal/config"
	"github.com/Harshitk-cp/semprove/internal/service"
	"github.com/Harshitk-cp/semprove/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// App holds the router and its request counters.
type App struct {
	Router    *chi.Mux
	metrics   mw.Metrics
	startTime time.Time
}

// NewApp wires stores, services and handlers. ctx bounds the background
// work of the middleware.
func NewApp(ctx context.Context, stores *store.Set, pl *bootstrap.Pipeline, logger *zap.Logger) *App {
	// Services
	sentenceSvc := service.NewSentenceService(stores.Sentences)
	formulaSvc := service.NewFormulaService(stores.Formulas, logger)
	transformSvc := service.NewTransformService(stores.Sentences, stores.Formulas, pl.Source, pl.Composer, pl.NBest, logger)
	proofSvc := service.NewProofService(stores.Formulas, stores.Theorems, pl.Orchestrator, logger)
	adminSvc := service.NewAdminService(stores.Admin, logger)

	// Handlers
	sentenceHandler := handlers.NewSentenceHandler(sentenceSvc, formulaSvc, transformSvc)
	formulaHandler := handlers.NewFormulaHandler(formulaSvc)
	theoremHandler := handlers.NewTheoremHandler(proofSvc)
	adminHandler := handlers.NewAdminHandler(adminSvc)

	r := chi.NewRouter()
	app := &App{Router: r, startTime: time.Now()}

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(app.metrics.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(ctx, config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(stores.Ping))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Route("/sentences", func(r chi.Router) {
			r.Post("/", sentenceHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", sentenceHandler.GetByID)
				r.Post("/transform", sentenceHandler.Transform)
				r.Get("/formulas", sentenceHandler.ListFormulas)
			})
		})

		r.Route("/formulas", func(r chi.Router) {
			r.Post("/", formulaHandler.Create)
			r.Get("/{id}", formulaHandler.GetByID)
			r.Put("/{id}/quality", formulaHandler.UpdateQuality)
		})

		r.Route("/theorems", func(r chi.Router) {
			r.Post("/", theoremHandler.Create)
			r.Get("/{id}", theoremHandler.GetByID)
		})

		r.Get("/snapshot", adminHandler.Export)
		r.Post("/snapshot", adminHandler.Import)
		r.Delete("/{table}/{id}", adminHandler.Delete)
	})

	return app
}

func healthHandler(ping func(context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)
		uptime := time.Since(app.startTime)
		counters := app.metrics.Snapshot()

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  counters.Requests,
			"error_count":    counters.Errors,
			"in_flight":      counters.InFlight,
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"version":    buildconfig.Version(),
			"commit":     buildconfig.Commit(),
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}
