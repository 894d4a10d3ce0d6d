// Package server provides the HTTP front door for the agent pipeline.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/askiada/go-agent-pipeline/pkg/pipeline/model"
)

// Runner executes one pipeline run per request. *pipeline.Pipeline
// satisfies it; tests use stubs.
type Runner interface {
	Run(ctx context.Context, query string) (*model.ExecutionState, error)
}

// Config holds the HTTP server configuration.
type Config struct {
	Host            string
	Port            int
	ShutdownTimeout time.Duration
	// RunTimeout bounds a single pipeline run; zero means no bound.
	RunTimeout time.Duration
	// IncludeHistory returns per-step outputs in responses, and partial
	// history on failures.
	IncludeHistory bool
}

// Server exposes the pipeline over HTTP.
type Server struct {
	echo   *echo.Echo
	runner Runner
	logger *zap.Logger
	config *Config
}

// New creates the HTTP server.
func New(runner Runner, logger *zap.Logger, cfg *Config) (*Server, error) {
	if runner == nil {
		return nil, errors.New("runner must be set")
	}

	if logger == nil {
		return nil, errors.New("logger must be set")
	}

	if cfg == nil {
		cfg = &Config{
			Host:            "0.0.0.0",
			Port:            8080,
			ShutdownTimeout: 30 * time.Second,
			IncludeHistory:  true,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:   e,
		runner: runner,
		logger: logger,
		config: cfg,
	}

	s.registerRoutes()

	return s, nil
}

func (s *Server) registerRoutes() {
	s.echo.GET("/health", s.handleHealth)
	s.echo.POST("/prompt", s.handlePrompt)
}

// Start serves until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	grp, grpCtx := errgroup.WithContext(ctx)

	grp.Go(func() error {
		s.logger.Info("server listening", zap.String("addr", addr))

		err := s.echo.Start(addr)
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "server failed")
		}

		return nil
	})

	grp.Go(func() error {
		<-grpCtx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		return errors.Wrap(s.echo.Shutdown(shutdownCtx), "unable to shut down server")
	})

	return grp.Wait()
}
