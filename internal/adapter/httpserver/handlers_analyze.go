package httpserver

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	apperrors "github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/errors"
)

type textRequest struct {
	Text string `json:"text"`
}

type batchRequest struct {
	Texts []string `json:"texts"`
	Mode  string   `json:"mode"`
}

type urlRequest struct {
	URL string `json:"url"`
}

type analysisResponse struct {
	Success   bool                  `json:"success"`
	Data      domain.AnalysisResult `json:"data"`
	Timestamp string                `json:"timestamp"`
}

type batchResponse struct {
	Success   bool                    `json:"success"`
	Total     int                     `json:"total"`
	Results   []domain.AnalysisResult `json:"results"`
	Summary   domain.BatchSummary     `json:"summary"`
	Timestamp string                  `json:"timestamp"`
}

func (s *Server) registerAnalyzeRoutes() {
	api := s.echo.Group("/api", newRateLimiter(s.config.RateLimitRPS, s.config.RateLimitBurst))

	api.POST("/analyze", s.handleAnalyze(domain.ModeGeneral))
	api.POST("/analyze-product", s.handleAnalyze(domain.ModeProduct))
	api.POST("/analyze-social", s.handleAnalyze(domain.ModeSocial))
	api.POST("/analyze-batch", s.handleAnalyzeBatch)
	api.POST("/analyze-url", s.handleAnalyzeURL)
}

// decodeJSON reads the body as JSON whatever its Content-Type. A body that
// does not decode is reported with message.
func decodeJSON(c echo.Context, v any, message string) error {
	if err := c.Echo().JSONSerializer.Deserialize(c, v); err != nil {
		return apperrors.ValidationErrorWrap(message, err)
	}
	return nil
}

func (s *Server) handleAnalyze(mode domain.Mode) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req textRequest
		if err := decodeJSON(c, &req, "Invalid text"); err != nil {
			return err
		}

		result, err := s.app.Analyze(c.Request().Context(), req.Text, mode)
		if err != nil {
			return err
		}
		return s.writeAnalysis(c, result)
	}
}

func (s *Server) handleAnalyzeBatch(c echo.Context) error {
	var req batchRequest
	if err := decodeJSON(c, &req, "Invalid texts"); err != nil {
		return err
	}

	result, err := s.app.AnalyzeBatch(c.Request().Context(), req.Texts, req.Mode)
	if err != nil {
		return err
	}

	response := batchResponse{
		Success:   true,
		Total:     result.Total,
		Results:   result.Results,
		Summary:   result.Summary,
		Timestamp: s.timestamp(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write batch response: %w", err)
	}
	return nil
}

func (s *Server) handleAnalyzeURL(c echo.Context) error {
	var req urlRequest
	if err := decodeJSON(c, &req, "No URL provided"); err != nil {
		return err
	}

	result, err := s.app.AnalyzeURL(c.Request().Context(), req.URL)
	if err != nil {
		return err
	}
	return s.writeAnalysis(c, result)
}

func (s *Server) writeAnalysis(c echo.Context, result domain.AnalysisResult) error {
	response := analysisResponse{
		Success:   result.Success,
		Data:      result,
		Timestamp: s.timestamp(),
	}
	if err := c.JSON(http.StatusOK, response); err != nil {
		return fmt.Errorf("failed to write analysis response: %w", err)
	}
	return nil
}
