package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/languro/drill-api/internal/api"
	apimiddleware "github.com/languro/drill-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(apimiddleware.TraceMiddleware)

	drillHandler := api.NewDrillHandler(app.drillService, app.logger)
	masteryHandler := api.NewMasteryHandler(app.drillService, app.logger)

	r.Route("/api", func(r chi.Router) {
		// All drill endpoints require the gateway-provided identity.
		r.Use(apimiddleware.IdentityMiddleware)

		r.Post("/drills/session", drillHandler.StartSession)
		r.Get("/drills/stats", drillHandler.GetSessionStats)
		r.Post("/drills/{id}/answer", drillHandler.SubmitAnswer)
		r.Get("/drills/results", drillHandler.GetResults)

		r.Get("/mastery/due", masteryHandler.GetDueReviews)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
