// package server contains the router, middleware and handlers of the HBnB web service
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/hbnb/internal/repositories"
	"github.com/desertthunder/hbnb/internal/shared"
)

// APIPrefix is the path prefix of every JSON endpoint.
const APIPrefix = "/api/v1"

// Middleware wraps an http.Handler and returns a new http.Handler with additional behavior.
// Common middleware includes logging, metrics, rate limiting and panic recovery.
type Middleware func(http.Handler) http.Handler

// Route binds a method and path pattern to a handler function.
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// Handler groups related routes. Implementations register every route they return with a [Router].
type Handler interface {
	Routes() []Route // Routes returns the method, path pattern and handler of each endpoint
}

// Router defines the interface for HTTP routing and middleware management.
// Implementations register handlers, apply middleware, and configure the HTTP server.
type Router interface {
	Use(middleware ...Middleware)                     // Use adds middleware to the router's middleware stack
	Handle(method, path string, handler http.Handler) // Handle registers a handler for the specified method and path
	Handler(handler Handler)                          // Handler registers every route of a Handler implementation
	ServeHTTP(w http.ResponseWriter, r *http.Request) // ServeHTTP implements http.Handler for the entire router
}

// Server serves the JSON API, the HTML page and the metrics endpoint over one [Router].
type Server struct {
	config  shared.ServerConfig
	router  *BasicRouter
	metrics *Metrics
	logger  *log.Logger
}

// New wires a [Server] for store: middleware first, then the API, page and metrics routes.
func New(store *repositories.Store, config shared.ServerConfig, logger *log.Logger) *Server {
	metrics := NewMetrics()
	router := NewBasicRouter()

	router.Use(chain(logger, metrics, config)...)

	router.Handler(NewAPI(store, logger, metrics))
	router.Handler(NewPage(store, logger))
	router.mux.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)

	return &Server{config: config, router: router, metrics: metrics, logger: logger}
}

// chain returns the route middleware, outermost first. Recover sits inside
// Logging and the metrics middleware so recovered panics are logged and counted as 500s.
func chain(logger *log.Logger, metrics *Metrics, config shared.ServerConfig) []Middleware {
	return []Middleware{
		Logging(logger),
		metrics.Middleware,
		Recover(logger),
		NewRateLimiter(config.RateLimit, config.Burst).Middleware,
	}
}

// Handler returns the root [http.Handler].
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully within the configured timeout.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	timeout := s.config.ShutdownTimeout.Duration
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.logger.Info("shutting down", "timeout", timeout)
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	return nil
}
