package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ranjanashish/leh-registry/internal/rate"
	"github.com/ranjanashish/leh-registry/internal/store/core"
)

// RouterConfig agrupa las dependencias del router.
type RouterConfig struct {
	Users   *UsersController
	Records *RecordsController

	// Store para el readiness probe.
	Store core.Repository

	// Limiters opcionales (nil ⇒ sin límite).
	Limiters *rate.Pool

	// Handler de /metrics (nil ⇒ no se monta).
	Metrics http.Handler

	CORSAllowedOrigins []string
}

// NewRouter arma el router completo: rutas de la API original más health,
// readiness y métricas. El orden de middlewares es recover → request id →
// cors → métricas → logging → rate limit global.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	var globalLimiter, loginLimiter rate.Limiter
	if cfg.Limiters != nil {
		globalLimiter = cfg.Limiters.Global
		loginLimiter = cfg.Limiters.Login
	}

	// Health
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
		defer cancel()
		if err := cfg.Store.Ping(ctx); err != nil {
			writeStatus(w, http.StatusServiceUnavailable, false, "store unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if cfg.Metrics != nil {
		r.Handle("/metrics", cfg.Metrics)
	}

	// Auth y cuentas
	r.With(limit(loginLimiter)).Post("/login", cfg.Users.Login)
	r.Post("/add-user", cfg.Users.Add)
	r.Put("/edit-user/{id}", cfg.Users.Edit)
	r.Delete("/delete-user/{id}", cfg.Users.Delete)
	r.Get("/users", cfg.Users.List)
	r.Post("/reset-password", cfg.Users.ResetPassword)

	// Registros LEH
	r.Post("/leh-data", cfg.Records.Submit)
	r.Get("/leh-data", cfg.Records.List)
	r.Get("/leh-data/location/{location}", cfg.Records.ByLocation)
	r.Get("/leh-data/id/{id}", cfg.Records.Get)
	r.Put("/leh-data/id/{id}", cfg.Records.Update)
	r.Delete("/leh-data/id/{id}", cfg.Records.Delete)

	var h http.Handler = r
	h = WithRateLimit(h, globalLimiter)
	h = WithLogging(h)
	h = WithMetrics(h)
	h = WithCORS(h, cfg.CORSAllowedOrigins)
	h = WithRequestID(h)
	h = WithRecover(h)
	return h
}

// limit adapta un rate.Limiter a middleware chi por-ruta.
func limit(l rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return WithRateLimit(next, l)
	}
}
