package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/kiranshivaraju/fixit/internal/api/handler"
	mw "github.com/kiranshivaraju/fixit/internal/api/middleware"
	"github.com/kiranshivaraju/fixit/internal/api/response"
)

// Dependencies holds all handler and middleware dependencies for the router.
// Auth and RateLimit are optional; a nil value disables that middleware.
type Dependencies struct {
	Auth           *mw.Auth
	RateLimit      *mw.RateLimit
	AllowedOrigins []string

	IndexHandler          http.HandlerFunc
	HealthHandler         http.HandlerFunc
	ConnectionTestHandler http.HandlerFunc
	SampleSymptomsHandler http.HandlerFunc
	TestDiagnoseHandler   http.HandlerFunc
	DiagnoseHandler       http.HandlerFunc
	IssuesHandler         http.HandlerFunc
}

// NewRouter builds the Chi router with middleware stack and all routes.
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(mw.RequestID)
	r.Use(mw.Logger)
	r.Use(mw.Recovery)
	if len(deps.AllowedOrigins) > 0 {
		r.Use(mw.CORS(deps.AllowedOrigins))
	}

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	// Public routes
	r.Get("/", orNotImplemented(deps.IndexHandler))
	r.Get("/api/v1/health", orNotImplemented(deps.HealthHandler))
	r.Get("/api/v1/test", orNotImplemented(deps.ConnectionTestHandler))
	r.Get("/api/v1/test-diagnoses", orNotImplemented(deps.SampleSymptomsHandler))
	r.Post("/api/v1/diagnose/test", orNotImplemented(deps.TestDiagnoseHandler))

	// Knowledge-base routes
	r.Group(func(r chi.Router) {
		if deps.Auth != nil {
			r.Use(deps.Auth.Authenticate)
		}
		if deps.RateLimit != nil {
			r.Use(deps.RateLimit.Limit)
		}

		r.Post("/api/v1/diagnose", orNotImplemented(deps.DiagnoseHandler))
		r.Get("/api/v1/issues", orNotImplemented(deps.IssuesHandler))
	})

	return r
}

// orNotImplemented returns the handler if non-nil, or a 501 placeholder.
func orNotImplemented(h http.HandlerFunc) http.HandlerFunc {
	if h != nil {
		return h
	}
	return func(w http.ResponseWriter, r *http.Request) {
		response.Error(w, http.StatusNotImplemented, "NOT_IMPLEMENTED", "Endpoint not yet implemented", nil)
	}
}
