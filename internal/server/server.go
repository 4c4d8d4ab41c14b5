// Package server exposes the analysis and news endpoints over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mohammad-safakhou/factlens/config"
	"github.com/mohammad-safakhou/factlens/internal/aggregate"
	"github.com/mohammad-safakhou/factlens/internal/analysis"
	"github.com/mohammad-safakhou/factlens/internal/metrics"
	"github.com/mohammad-safakhou/factlens/models"
)

// Analyzer checks single articles.
type Analyzer interface {
	CheckURL(ctx context.Context, rawURL string) (analysis.Report, error)
	Ask(question, content string) (models.QuestionAnswer, error)
}

// News serves aggregated listings.
type News interface {
	Trending(ctx context.Context) ([]models.NewsArticle, error)
	Search(ctx context.Context, f aggregate.Filter) ([]models.NewsArticle, error)
}

type Server struct {
	echo   *echo.Echo
	logger *log.Logger
}

// New builds the echo instance with middleware and every route registered.
func New(cfg config.ServerConfig, analyzer Analyzer, news News, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	}
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler(logger)

	e.Use(middleware.Recover())
	e.Use(metrics.Middleware())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Printf("%s %s %d %s", v.Method, v.URI, v.Status, v.Latency)
			return nil
		},
	}))
	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType},
	}))
	if cfg.BodyLimit != "" {
		e.Use(middleware.BodyLimit(cfg.BodyLimit))
	}

	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/test", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "Server is running"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	(&AnalysisHandler{Analyzer: analyzer}).Register(e.Group(""))
	(&NewsHandler{News: news}).Register(e.Group(""))

	return &Server{echo: e, logger: logger}
}

// ServeHTTP lets the server be mounted or driven by httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.echo.ServeHTTP(w, r)
}

// Start blocks serving addr until Shutdown is called.
func (s *Server) Start(addr string) error {
	s.logger.Printf("listening on %s", addr)
	if err := s.echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve %s: %w", addr, err)
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
