package server

import (
	"context"
	"net/http"
	"time"

	"github.com/urraccon/contacts-api/internal/auth"
	"github.com/urraccon/contacts-api/internal/config"
	"github.com/urraccon/contacts-api/internal/http/handlers"
	"github.com/urraccon/contacts-api/internal/mailer"
	"github.com/urraccon/contacts-api/internal/middleware"
	"github.com/urraccon/contacts-api/internal/service"
	"github.com/urraccon/contacts-api/internal/storage"
	"github.com/urraccon/contacts-api/internal/verify"
)

// Server wraps an http.Server with configured routes and the background
// mail dispatcher.
type Server struct {
	inner      *http.Server
	dispatcher *mailer.Dispatcher
}

// New wires the auth service, handlers, and middleware into a ready server.
func New(cfg config.Config, store storage.Store, mail mailer.Mailer) *Server {
	dispatcher := mailer.NewDispatcher(mail)

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	verifications := verify.NewStore(store)
	authSvc := service.NewAuth(store, tokens, verifications, dispatcher)
	gate := middleware.RequireAuth(authSvc)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewUsersHandler(authSvc).Register(mux, gate)
	handlers.NewContactsHandler(store).Register(mux, gate)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(mux))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, dispatcher: dispatcher}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully stops the server, then drains queued emails.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.inner.Shutdown(ctx); err != nil {
		return err
	}
	return s.dispatcher.Close(ctx)
}
