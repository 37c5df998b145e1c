package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"bytepantry/internal/domain"
	"bytepantry/internal/donation"
	"bytepantry/internal/pantry"
)

const maxBodyBytes = 1 << 20

type App struct {
	Pantry    *pantry.Service
	Donations *donation.Service
	Centers   domain.DonationCenterRepository
	Logger    zerolog.Logger
}

func NewApp(p *pantry.Service, d *donation.Service, centers domain.DonationCenterRepository, logger zerolog.Logger) *App {
	return &App{Pantry: p, Donations: d, Centers: centers, Logger: logger}
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// error writes the {"error": message} body every endpoint uses.
func (a *App) error(w http.ResponseWriter, code int, message string) {
	a.json(w, code, map[string]string{"error": message})
}

func (a *App) success(w http.ResponseWriter) {
	a.json(w, http.StatusOK, map[string]bool{"success": true})
}

// log returns the request scoped logger set by the access log middleware,
// falling back to the application logger.
func (a *App) log(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &a.Logger
}

func (a *App) decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
