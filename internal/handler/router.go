package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bioqr/bioqr-go/internal/middleware"
)

// RouterConfig holds the dependencies of the HTTP API.
// Auth may be nil when no database is reachable; token-protected routes still work.
type RouterConfig struct {
	Auth           *AuthHandler
	Bio            *BioHandler
	Verifier       middleware.TokenVerifier
	AllowedOrigins []string
}

// NewRouter builds the chi router for the API.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("QR API is working"))
	})
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		if cfg.Auth != nil {
			r.Post("/auth/signup", cfg.Auth.HandleSignup)
			r.Post("/auth/login", cfg.Auth.HandleLogin)
		}

		r.Group(func(r chi.Router) {
			r.Use(middleware.JWTAuth(cfg.Verifier))
			if cfg.Auth != nil {
				r.Get("/auth/me", cfg.Auth.HandleMe)
			}
			r.Post("/generate-qrcode", cfg.Bio.HandleGenerateQR)
		})
	})

	return r
}
