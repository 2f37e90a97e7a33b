package app

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/extract"
	apperrors "github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/errors"
)

const (
	snippetWords = 60
	logTextLen   = 30
)

// Analyzer is the analysis core as seen by the service.
type Analyzer interface {
	Analyze(text string, mode domain.Mode) domain.AnalysisResult
	AnalyzeBatch(ctx context.Context, texts []string, mode domain.Mode) domain.BatchResult
}

type Config struct {
	BatchMaxSize int
	MinURLWords  int
}

// Service is the application layer. It orchestrates all use cases.
type Service struct {
	analyzer  Analyzer
	extractor domain.TextExtractor
	cfg       Config
}

// NewService creates the application layer service.
func NewService(analyzer Analyzer, extractor domain.TextExtractor, cfg Config) *Service {
	if cfg.MinURLWords < 1 {
		cfg.MinURLWords = 20
	}
	return &Service{
		analyzer:  analyzer,
		extractor: extractor,
		cfg:       cfg,
	}
}

// Analyze validates and analyzes a single text. A result with Success false
// is not an error: the analyzer reports its own failures.
func (s *Service) Analyze(ctx context.Context, text string, mode domain.Mode) (domain.AnalysisResult, error) {
	if err := ValidateText(text); err != nil {
		return domain.AnalysisResult{}, err
	}

	result := s.analyzer.Analyze(text, mode)
	slog.InfoContext(ctx, "Analyzed text", "mode", mode, "text", truncate(text, logTextLen), "success", result.Success)
	return result, nil
}

// AnalyzeBatch validates the list and analyzes every item with the same
// mode. An empty mode means general.
func (s *Service) AnalyzeBatch(ctx context.Context, texts []string, mode string) (domain.BatchResult, error) {
	if err := ValidateTexts(texts, s.cfg.BatchMaxSize); err != nil {
		return domain.BatchResult{}, err
	}

	m, err := domain.ParseMode(mode)
	if err != nil {
		return domain.BatchResult{}, apperrors.ValidationErrorWrap(err.Error(), err).
			WithField("mode", mode)
	}

	result := s.analyzer.AnalyzeBatch(ctx, texts, m)
	if err := ctx.Err(); err != nil {
		return domain.BatchResult{}, apperrors.InternalError("Batch analysis cancelled", err)
	}

	slog.InfoContext(ctx, "Analyzed batch", "mode", m, "total", result.Total)
	return result, nil
}

// AnalyzeURL extracts the main text of a page and analyzes it in general
// mode. Fetch failures are logged and reported as too little text.
func (s *Service) AnalyzeURL(ctx context.Context, rawURL string) (domain.AnalysisResult, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return domain.AnalysisResult{}, apperrors.ValidationError(msgNoURL)
	}

	text, err := s.extractor.Extract(ctx, rawURL)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidURL) {
			return domain.AnalysisResult{}, apperrors.ValidationErrorWrap(domain.ErrInvalidURL.Error(), err)
		}
		slog.WarnContext(ctx, "URL extraction failed", "url", rawURL, "error", err)
		text = ""
	}

	if words := extract.WordCount(text); words < s.cfg.MinURLWords {
		return domain.AnalysisResult{}, apperrors.ValidationErrorWrap(domain.ErrInsufficientText.Error(), err).
			WithField("words", words)
	}

	result := s.analyzer.Analyze(text, domain.ModeGeneral)
	slog.InfoContext(ctx, "Analyzed URL", "url", rawURL, "text", truncate(text, logTextLen))

	if result.Analysis != nil {
		result.SourceExtension = &domain.SourceExtension{
			SourceURL: rawURL,
			Snippet:   extract.Snippet(text, snippetWords),
		}
	}
	return result, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
