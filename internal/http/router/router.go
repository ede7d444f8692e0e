// Package router builds the application's route table.
//
// Route table:
//
//	GET    /health                     public
//	GET    /api/students               gated
//	POST   /api/students               gated
//	DELETE /api/students/{id}          gated
//	PUT    /api/students/{id}/payment  gated
//	GET    /api/food-menu              public
//	POST   /api/food-menu              gated
//	GET    /api/feedback               public
//	POST   /api/feedback               public
//	DELETE /api/feedback               gated
//	GET    /api/laundry                gated
//	POST   /api/laundry                public
//	PUT    /api/laundry/{id}           gated
//	DELETE /api/laundry                gated
package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/aanand-mishra/hostel-api/internal/auth"
	"github.com/aanand-mishra/hostel-api/internal/http/handlers/feedback"
	"github.com/aanand-mishra/hostel-api/internal/http/handlers/foodmenu"
	"github.com/aanand-mishra/hostel-api/internal/http/handlers/laundry"
	"github.com/aanand-mishra/hostel-api/internal/http/handlers/student"
	"github.com/aanand-mishra/hostel-api/internal/http/middleware"
	"github.com/aanand-mishra/hostel-api/internal/menu"
	"github.com/aanand-mishra/hostel-api/internal/storage"
	"github.com/aanand-mishra/hostel-api/internal/utils/response"
)

// Deps are the collaborators the routes need.
type Deps struct {
	Store    storage.Storage
	Verifier auth.Verifier
	Logger   *slog.Logger

	// RequestTimeout bounds each request's context. Zero disables it.
	RequestTimeout time.Duration
	AllowedOrigins []string
	MaxBodyBytes   int64
}

// New returns the HTTP handler serving every route.
func New(d Deps) http.Handler {
	log := d.Logger
	if log == nil {
		log = slog.Default()
	}
	replacer := menu.NewReplacer(d.Store, log, 0)
	gate := middleware.RequireAuth(d.Verifier, log)

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimw.Recoverer)
	r.Use(middleware.CORS(d.AllowedOrigins))
	r.Use(middleware.BodyLimit(d.MaxBodyBytes))
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		_ = response.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/food-menu", foodmenu.GetList(d.Store))
		r.Get("/feedback", feedback.GetList(d.Store))
		r.Post("/feedback", feedback.New(d.Store))
		r.Post("/laundry", laundry.New(d.Store))

		// Gated routes
		r.Group(func(r chi.Router) {
			r.Use(gate)

			r.Get("/students", student.GetList(d.Store))
			r.Post("/students", student.New(d.Store))
			r.Delete("/students/{id}", student.Delete(d.Store))
			r.Put("/students/{id}/payment", student.UpdatePayment(d.Store))

			r.Post("/food-menu", foodmenu.Replace(replacer))

			r.Delete("/feedback", feedback.Clear(d.Store))

			r.Get("/laundry", laundry.GetList(d.Store))
			r.Put("/laundry/{id}", laundry.UpdateStatus(d.Store))
			r.Delete("/laundry", laundry.Clear(d.Store))
		})
	})

	return r
}
