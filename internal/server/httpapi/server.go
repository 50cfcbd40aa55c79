// Package httpapi exposes the authentication flow over HTTP. Tokens travel
// as HttpOnly cookies; protected endpoints also accept a bearer header.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mpashkov/videovault/internal/logging"
	"github.com/mpashkov/videovault/internal/server/services"
)

// HTTPServer wires the route layer to the AuthService.
type HTTPServer struct {
	address    string
	logger     logging.Logger
	auth       *services.AuthService
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewHTTPServer(addr string, l logging.Logger, auth *services.AuthService, accessTTL, refreshTTL time.Duration) *HTTPServer {
	return &HTTPServer{
		address:    addr,
		logger:     l.With("module", "http_server"),
		auth:       auth,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// Router builds the chi router with all routes and middleware attached.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(s.requestID)
	r.Use(s.logRequests)

	r.Post("/api/users", s.handleRegister)
	r.Post("/api/auth/login", s.handleLogin)
	r.Post("/api/auth/refresh", s.handleRefresh)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)
		r.Post("/api/auth/logout", s.handleLogout)
		r.Get("/api/auth/me", s.handleMe)
	})

	return r
}

// Run serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *HTTPServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
