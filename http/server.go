package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"tradeline-calculator/config"
	"tradeline-calculator/log"
	"tradeline-calculator/metrics"
)

const (
	gracefulShutdownTimeout = 10 * time.Second
)

type Server struct {
	cfg      *config.Config
	handler  *UtilizationHandler
	limiter  *RateLimiter
	listener net.Listener
}

// NewServer returns a server for handler listening on listener. The server
// owns a rate limiter that is stopped when Run returns.
func NewServer(cfg *config.Config, handler *UtilizationHandler, listener net.Listener) *Server {
	return &Server{
		cfg:      cfg,
		handler:  handler,
		limiter:  NewRateLimiter(cfg.Service.RateLimit, cfg.Service.RateWindow),
		listener: listener,
	}
}

func (s *Server) Router() http.Handler {
	router := chi.NewRouter()

	router.Use(chiMiddleware.RequestID)
	if s.cfg.Service.TrustProxyHeaders {
		router.Use(chiMiddleware.RealIP)
	}
	router.Use(
		log.Logger(zap.L(), "http"),
		chiMiddleware.Recoverer,
		cors.Handler(cors.Options{
			AllowedOrigins: s.cfg.Service.AllowedOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			ExposedHeaders: []string{"Content-Disposition"},
			MaxAge:         300,
		}),
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", metrics.Handler())

	router.Route("/api/v1/utilization", func(r chi.Router) {
		r.Use(func(next http.Handler) http.Handler {
			return RateLimitMiddleware(s.limiter, next)
		})
		r.Post("/calculate", s.handler.Calculate)
		r.Post("/share", s.handler.Share)
		r.Post("/export", s.handler.Export)
		r.Get("/history", s.handler.History)
	})

	return router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	defer s.limiter.Stop()

	srv := http.Server{
		Handler:      s.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		zap.S().Named("http_server").Infof("Shutdown signal received: %s", ctx.Err())
		ctxTimeout, cancel := context.WithTimeout(context.Background(), gracefulShutdownTimeout)
		defer cancel()

		srv.SetKeepAlivesEnabled(false)
		_ = srv.Shutdown(ctxTimeout)
		zap.S().Named("http_server").Info("http server terminated")
	}()

	zap.S().Named("http_server").Infof("Listening on %s...", s.listener.Addr().String())
	if err := srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) && !errors.Is(err, net.ErrClosed) {
		return err
	}
	return nil
}
