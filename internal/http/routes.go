package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// LiveFeed serves WebSocket upgrades. *ws.Hub implements it.
type LiveFeed interface {
	HandleWebSocket(w http.ResponseWriter, r *http.Request)
}

// SetupRoutes configures all HTTP routes for the field sensor API. feed may
// be nil, in which case /ws is not mounted.
func SetupRoutes(handlers *Handlers, feed LiveFeed) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	// Device facing routes keep their historical paths.
	r.Get("/", handlers.RenderDashboard)
	r.Post("/data", handlers.IngestSensorData)
	r.Get("/logs", handlers.GetLogs)
	r.Get("/test", handlers.TestGet)
	r.Post("/test", handlers.TestPost)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/dashboard", handlers.GetDashboard)
		r.Get("/history", handlers.GetHistory)

		r.Route("/crops", func(r chi.Router) {
			r.Get("/", handlers.ListCrops)
			r.Get("/{name}", handlers.GetCrop)
		})

		r.Route("/export", func(r chi.Router) {
			r.Get("/history.xlsx", handlers.ExportHistoryExcel)
			r.Get("/history.csv", handlers.ExportHistoryCSV)
		})
	})

	r.Get("/healthz", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	if feed != nil {
		r.HandleFunc("/ws", feed.HandleWebSocket)
	}

	return r
}
