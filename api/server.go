package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/research-lab-backend/config"
	"github.com/rpupo63/research-lab-backend/database"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// NewServer wires the router over the database repositories. uploader may be
// nil, in which case /upload answers 503.
func NewServer(c map[string]string, db database.Database, uploader Uploader) (Server, error) {
	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	router := newRouter(storesFromDatabase(db), uploader, withConfig(c), withStartupTime(startupTime))

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180),
		WriteTimeout: config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180),
		IdleTimeout:  config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180),
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
}

func withConfig(c map[string]string) func(*router) {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) func(*router) {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

func newRouter(stores stores, uploader Uploader, opts ...func(*router)) *chi.Mux {
	router := router{startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(requestLogger)

	// metrics wrap recoverPanics to count recovered 500s
	var metrics *httpMetrics
	if config.GetBool(router.config, "METRICS_ENABLED", true) {
		metrics = newHTTPMetrics()
		chiRouter.Use(metrics.middleware)
	}
	chiRouter.Use(recoverPanics)

	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS", []string{"*"})
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	auth := AuthSettingsFromConfig(router.config)
	handlers := initializeHandlers(stores, uploader, auth, router.startupTime)

	var gate func(http.Handler) http.Handler
	if auth.Enabled() {
		gate = newAuthMiddleware(auth).authenticate
	} else {
		log.Warn().Msg("JWT_SECRET not set, mutation routes are open")
	}

	// chi panics if middleware is added after a route, so routes go last
	if metrics != nil {
		chiRouter.Method(http.MethodGet, "/metrics", metrics.handler())
	}
	setupPublicRoutes(chiRouter, handlers)
	setupAdminRoutes(chiRouter, handlers, gate)

	return chiRouter
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
