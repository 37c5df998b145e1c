package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"bytepantry/internal/http/handlers"
	"bytepantry/internal/infra"
	"bytepantry/internal/middleware"
)

func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		middleware.Logger(logger),
		chimw.Recoverer,
		middleware.CORS(cfg.AllowedOrigins, logger),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/", app.Root)
	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/pantry", func(r chi.Router) {
			r.Get("/", app.PantryList)
			r.Post("/add", app.PantryAdd)
			r.Delete("/{itemID}", app.PantryDelete)
		})
		r.Get("/donationcenters", app.DonationCentersList)
		r.Route("/donation", func(r chi.Router) {
			r.Get("/", app.DonationsHistory)
			r.Post("/", app.DonationsCreate)
		})
	})

	return r
}
