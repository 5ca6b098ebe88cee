package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"nexus-api/internal/observability/middleware"
	"nexus-api/internal/picture"
	"nexus-api/internal/service"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Deps struct {
	Auth     service.AuthService
	Tokens   service.TokenService
	Persons  service.PersonService
	Messages service.MessageService
	Pictures picture.Storage
	DB       Pinger

	Origins        []string
	RequestTimeout time.Duration
	Throttle       ThrottleConfig
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.WithRequestAndTrace)
	r.Use(chimw.Recoverer)
	if d.RequestTimeout > 0 {
		r.Use(chimw.Timeout(d.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   originsOrAny(d.Origins),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", "X-Request-Id", "X-Trace-Id"},
		ExposedHeaders:   []string{"X-Request-Id", "X-Trace-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(middleware.WithMetrics)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		if d.DB != nil {
			if err := d.DB.Ping(r.Context()); err != nil {
				slog.Error("health check failed", "error", err)
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())
	if d.Pictures != nil {
		r.Handle("/pictures/*", http.StripPrefix("/pictures/", picture.Handler(d.Pictures)))
	}

	guard := NewGuard(d.Tokens).Middleware
	persons := &personHandler{persons: d.Persons}
	auth := &authHandler{auth: d.Auth}
	messages := &messageHandler{messages: d.Messages}

	r.Group(func(r chi.Router) {
		if d.Throttle.Limit > 0 {
			r.Use(Throttle(d.Throttle))
		}

		r.Route("/person", func(r chi.Router) {
			r.Post("/", persons.create)
			r.Group(func(r chi.Router) {
				r.Use(guard)
				r.Get("/", persons.list)
				r.Post("/upload-picture", persons.uploadPicture)
				r.Get("/{id}", persons.get)
				r.Patch("/{id}", persons.update)
				r.Delete("/{id}", persons.remove)
			})
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/", auth.login)
			r.With(guard).Post("/refresh", auth.refresh)
		})

		r.Route("/messages", func(r chi.Router) {
			r.Use(guard)
			r.Post("/", messages.create)
			r.Get("/", messages.list)
			r.Get("/{id}", messages.get)
			r.Patch("/{id}", messages.update)
			r.Delete("/{id}", messages.remove)
		})
	})

	return r
}

func originsOrAny(in []string) []string {
	if len(in) == 0 {
		return []string{"*"}
	}
	return in
}
