package proof

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// ServerConfig holds configuration for the serving wrapper.
type ServerConfig struct {
	// Port is the port to listen on (default: 8080, or the PORT
	// environment variable).
	Port string

	// Host is the host to bind to (default: "").
	Host string

	// ShutdownTimeout is the timeout for graceful shutdown (default: 30s).
	ShutdownTimeout time.Duration
}

// DefaultServerConfig returns a server configuration with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return &ServerConfig{
		Port:            port,
		Host:            "",
		ShutdownTimeout: 30 * time.Second,
	}
}

// Server runs a WebServer backend with registered routes and graceful
// shutdown on SIGINT/SIGTERM.
type Server struct {
	backend WebServer
	config  *ServerConfig
}

// NewServer wraps a backend with the given configuration.
func NewServer(backend WebServer, config *ServerConfig) *Server {
	if config == nil {
		config = DefaultServerConfig()
	}
	return &Server{backend: backend, config: config}
}

// Backend returns the wrapped server for advanced configuration.
func (s *Server) Backend() WebServer {
	return s.backend
}

// Run mounts all registered routes, starts the backend and blocks until an
// interrupt arrives, then shuts down within the configured timeout.
func (s *Server) Run() error {
	RegisterAll(s.backend)

	errs := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf("%s:%s", s.config.Host, s.config.Port)
		log.Printf("starting %s server on %s", s.backend.Name(), addr)
		errs <- s.backend.Start(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errs:
		if err != nil {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Println("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := s.backend.Stop(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server shutdown complete")
	return nil
}
