package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router *gin.Engine
	Logger logrus.FieldLogger

	server http.Server
}

// NewServer creates a new Server instance.
func NewServer(injector *do.Injector, name string, port int) (*Server, error) {
	logger, err := do.Invoke[logrus.FieldLogger](injector)
	if err != nil {
		return nil, err
	}

	logger = logger.WithField("component", name)

	router := NewRouter(logger)

	return &Server{
		Router: router,
		Logger: logger,
		server: http.Server{
			Addr:              fmt.Sprintf("0.0.0.0:%d", port),
			ReadHeaderTimeout: ReadHeaderTimeout,
			Handler:           router,
		},
	}, nil
}

func (s *Server) HealthCheck() error {
	s.Logger.Debug("Server health check.")

	return nil
}

func (s *Server) Shutdown() error {
	s.Logger.Info("Server shutting down...")
	defer s.Logger.Info("Server shot down.")

	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()

	return s.server.Shutdown(ctx) //nolint:wrapcheck
}

// Run starts the HTTP server.
func (s *Server) Run() error {
	s.Logger.WithField("addr", s.server.Addr).Info("Starting server")

	err := s.server.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err //nolint:wrapcheck
	}

	return nil
}
