package httpserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/version"
)

const readinessCheckTimeout = 5 * time.Second

// HealthCheck is a named health check function.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

func (s *Server) registerHealthRoutes() {
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/api/health", s.handleAPIHealth)
	s.echo.GET("/api/version", s.handleVersion)
}

func (s *Server) handleRoot(c echo.Context) error {
	response := map[string]any{
		"message": "Universal WSD Sentiment Analyzer API",
		"version": version.API,
		"status":  "running",
		"endpoints": map[string]string{
			"analyze":         "POST /api/analyze",
			"analyze_product": "POST /api/analyze-product",
			"analyze_social":  "POST /api/analyze-social",
			"analyze_url":     "POST /api/analyze-url",
			"batch":           "POST /api/analyze-batch",
			"health":          "GET /api/health",
			"version":         "GET /api/version",
		},
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write root response: %w", err)
	}
	return nil
}

func (s *Server) handleLiveness(c echo.Context) error {
	response := map[string]any{
		"status": "ok",
		"uptime": s.clock.Since(s.startTime).Seconds(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write liveness response: %w", err)
	}
	return nil
}

func (s *Server) handleReadiness(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), readinessCheckTimeout)
	defer cancel()

	for _, hc := range s.healthChecks {
		err := hc.Check(ctx)
		if err == nil {
			continue
		}

		response := map[string]any{
			"status":       "unhealthy",
			"failed_check": hc.Name,
			"error":        err.Error(),
		}
		if err := c.JSON(http.StatusServiceUnavailable, response); err != nil {
			return fmt.Errorf("failed to send JSON response: %w", err)
		}
		return nil
	}

	if err := c.JSON(http.StatusOK, map[string]string{"status": "ready"}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

// handleAPIHealth is the public health endpoint. It never runs dependency
// checks; /health/ready does.
func (s *Server) handleAPIHealth(c echo.Context) error {
	response := map[string]string{
		"status":    "healthy",
		"version":   version.API,
		"timestamp": s.timestamp(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write health response: %w", err)
	}
	return nil
}

func (s *Server) handleVersion(c echo.Context) error {
	response := map[string]any{
		"version":  version.API,
		"name":     version.Name,
		"features": version.Features,
		"build":    version.Get(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write version response: %w", err)
	}
	return nil
}
