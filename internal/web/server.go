package web

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/boardwalk-app/boardwalk/internal/config"
	"github.com/boardwalk-app/boardwalk/internal/database"
	"github.com/boardwalk-app/boardwalk/internal/web/handlers"
	"github.com/boardwalk-app/boardwalk/internal/web/middleware"
)

// Server represents the web server
type Server struct {
	db         *database.DB
	sessions   *database.Manager
	port       int
	bind       string
	allowedNet *net.IPNet
	router     *chi.Mux
	handlers   *handlers.Handlers
}

// NewServer creates a new web server. maxPageSize of 0 leaves page sizes
// uncapped.
func NewServer(db *database.DB, port int, bind string, allowedNet *net.IPNet, maxPageSize int) *Server {
	s := &Server{
		db:         db,
		sessions:   database.NewManager(db),
		port:       port,
		bind:       bind,
		allowedNet: allowedNet,
		router:     chi.NewRouter(),
	}

	s.handlers = handlers.New(s.sessions, maxPageSize)
	s.setupRoutes()

	return s
}

// Router returns the configured router, used by tests to serve requests
// without binding a socket.
func (s *Server) Router() http.Handler {
	return s.router
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	r := s.router

	// Global middleware
	r.Use(chimiddleware.RequestID)
	// AllowSubnet must come BEFORE RealIP so we check the actual connection source
	r.Use(middleware.AllowSubnet(s.allowedNet))
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimiddleware.Recoverer)

	h := s.handlers

	r.Get("/", h.Hello)

	r.Route("/api", func(r chi.Router) {
		r.Use(chimiddleware.Timeout(config.GetTimeouts().Request))

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", h.ListPosts)
			r.Post("/", h.CreatePost)
			r.Get("/{id}", h.GetPost)
			r.Delete("/{id}", h.DeletePost)
			r.Get("/{id}/comments", h.ListComments)
			r.Post("/{id}/comments", h.CreateComment)
			r.Put("/{id}/comments/{commentID}", h.UpdateComment)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Post("/", h.CreateUser)
			r.Delete("/{id}", h.DeleteUser)
		})
	})
}

// Start starts the web server
func (s *Server) Start(ctx context.Context) error {
	var addr string
	if s.bind != "" {
		addr = fmt.Sprintf("%s:%d", s.bind, s.port)
	} else {
		addr = fmt.Sprintf(":%d", s.port)
	}

	timeouts := config.GetTimeouts()

	server := &http.Server{
		Addr:    addr,
		Handler: s.router,
		// ReadTimeout is for reading request body
		ReadTimeout: 15 * time.Second,
		// WriteTimeout sits above the per-route timeout so chi's deadline
		// fires first and the client gets a response
		WriteTimeout: timeouts.Request + 15*time.Second,
		// IdleTimeout for keep-alive connections between requests
		IdleTimeout: 120 * time.Second,
	}

	// Start server in goroutine
	errChan := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-errChan:
		return err
	}
}
