// Package analyzer runs the full sentiment pipeline over a text: tokenization,
// word-sense disambiguation, scoring and the mode-specific extras.
//
// An Analyzer holds only immutable tables and is safe for concurrent use.
package analyzer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/lexicon"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/scorer"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/tokenize"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/wsd"
)

const (
	positiveThreshold = 1.0
	negativeThreshold = -1.0

	recommendThreshold = 0.5

	// emptySenseConfidence is the sense confidence of a text without tokens.
	emptySenseConfidence  = 0.0
	scoreConfidenceFactor = 15.0

	maxEngagement = 10.0

	defaultBatchConcurrency = 4
)

var productAspects = []string{"quality", "price", "shipping", "service", "packaging", "durability", "design", "value"}

// Observer is notified about every analysis attempt.
type Observer interface {
	AnalysisCompleted(mode domain.Mode, label domain.Label, score float64)
	AnalysisFailed(reason string)
}

type Analyzer struct {
	tokenizer *tokenize.Tokenizer
	lexicon   *lexicon.Lexicon
	engine    *wsd.Engine
	scorer    *scorer.Scorer
	observer  Observer

	batchConcurrency int
}

type Option func(*Analyzer)

// WithObserver registers an observer for analysis outcomes.
func WithObserver(o Observer) Option {
	return func(a *Analyzer) { a.observer = o }
}

// WithBatchConcurrency bounds how many texts of a batch are analyzed at once.
func WithBatchConcurrency(n int) Option {
	return func(a *Analyzer) {
		if n >= 1 {
			a.batchConcurrency = n
		}
	}
}

func New(lex *lexicon.Lexicon, engine *wsd.Engine, sc *scorer.Scorer, opts ...Option) *Analyzer {
	a := &Analyzer{
		tokenizer:        tokenize.New(),
		lexicon:          lex,
		engine:           engine,
		scorer:           sc,
		observer:         noopObserver{},
		batchConcurrency: defaultBatchConcurrency,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Default builds an analyzer over the embedded tables.
func Default(opts ...Option) *Analyzer {
	lex := lexicon.Default()
	return New(lex, wsd.Default(), scorer.New(lex, scorer.DefaultTables()), opts...)
}

// Run analyzes text in the given mode. It fails with domain.ErrEmptyText for
// blank text and domain.ErrUnknownMode for unrecognized modes.
func (a *Analyzer) Run(text string, mode domain.Mode) (*domain.Analysis, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrEmptyText
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownMode, mode)
	}

	tokens := a.tokenizer.Tokenize(text)
	senses := a.engine.Disambiguate(tokens)
	raw := a.scorer.Score(tokens, senses)
	score := round(raw, 2)

	result := &domain.Analysis{
		Text:          text,
		Mode:          mode,
		Score:         score,
		Sentiment:     labelFor(score),
		Confidence:    confidence(raw, senses),
		Intensity:     intensityFor(score),
		WSDAnalysis:   senses,
		WordBreakdown: a.breakdown(tokens),
	}

	switch mode {
	case domain.ModeProduct:
		result.ProductExtension = &domain.ProductExtension{
			Aspects:   detectAspects(text),
			Recommend: score > recommendThreshold,
		}
	case domain.ModeSocial:
		hashtags := extractHashtags(text)
		result.SocialExtension = &domain.SocialExtension{
			Hashtags:        hashtags,
			EngagementScore: engagement(text, hashtags, score),
			EmojiAnalysis:   a.emojis(text),
		}
	}

	return result, nil
}

// Analyze is the total form of Run: it never panics and reports every
// failure inside the result.
func (a *Analyzer) Analyze(text string, mode domain.Mode) (res domain.AnalysisResult) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Analysis panicked", "mode", mode, "text", truncate(text, 30), "panic", r)
			a.observer.AnalysisFailed("panic")
			res = domain.Failed(fmt.Errorf("%v", r))
		}
	}()

	analysis, err := a.Run(text, mode)
	if err != nil {
		a.observer.AnalysisFailed(failureReason(err))
		return domain.Failed(err)
	}

	a.observer.AnalysisCompleted(analysis.Mode, analysis.Sentiment, analysis.Score)
	slog.Debug("Analysis completed",
		"mode", analysis.Mode,
		"text", truncate(text, 30),
		"score", analysis.Score,
		"sentiment", analysis.Sentiment)
	return domain.Succeeded(analysis)
}

// AnalyzeBatch analyzes every text independently and keeps input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, texts []string, mode domain.Mode) domain.BatchResult {
	results := make([]domain.AnalysisResult, len(texts))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.batchConcurrency)
	for i, text := range texts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = domain.Failed(err)
				return nil
			}
			results[i] = a.Analyze(text, mode)
			return nil
		})
	}
	_ = g.Wait()

	return domain.BatchResult{
		Total:   len(results),
		Results: results,
		Summary: summarize(results),
	}
}

func summarize(results []domain.AnalysisResult) domain.BatchSummary {
	var s domain.BatchSummary
	if len(results) == 0 {
		return s
	}

	var confSum float64
	for _, r := range results {
		if !r.Success || r.Analysis == nil {
			continue
		}
		confSum += r.Confidence
		switch r.Sentiment {
		case domain.LabelPositive:
			s.Positive++
		case domain.LabelNegative:
			s.Negative++
		default:
			s.Neutral++
		}
	}
	s.AverageConfidence = round(confSum/float64(len(results)), 2)
	return s
}

func labelFor(score float64) domain.Label {
	switch {
	case score > positiveThreshold:
		return domain.LabelPositive
	case score < negativeThreshold:
		return domain.LabelNegative
	default:
		return domain.LabelNeutral
	}
}

func intensityFor(score float64) domain.Intensity {
	abs := math.Abs(score)
	switch {
	case abs < 0.5:
		return domain.IntensityLow
	case abs < 1.5:
		return domain.IntensityMedium
	case abs < 3.0:
		return domain.IntensityHigh
	default:
		return domain.IntensityExtreme
	}
}

func confidence(score float64, senses domain.SenseMap) float64 {
	base := min(100, max(0, math.Abs(score)*scoreConfidenceFactor))
	sense := senses.MeanConfidence(emptySenseConfidence) * 100
	return round((base+sense)/2, 2)
}

// breakdown lists the plain lexicon weight of every distinct scored word.
func (a *Analyzer) breakdown(tokens []string) map[string]float64 {
	out := make(map[string]float64)
	for _, tok := range tokens {
		word := tokenize.Normalize(tok)
		if w := a.lexicon.Score(word); w != 0 {
			out[word] = w
		}
	}
	return out
}

func detectAspects(text string) map[string]string {
	lower := strings.ToLower(text)
	out := make(map[string]string)
	for _, aspect := range productAspects {
		if strings.Contains(lower, aspect) {
			out[aspect] = "detected"
		}
	}
	return out
}

func extractHashtags(text string) []string {
	hashtags := []string{}
	for _, word := range strings.Fields(text) {
		if strings.HasPrefix(word, "#") {
			hashtags = append(hashtags, word)
		}
	}
	return hashtags
}

func engagement(text string, hashtags []string, score float64) float64 {
	e := 2*float64(len(hashtags)) +
		float64(strings.Count(text, "!")) +
		0.5*float64(strings.Count(text, "?")) +
		5*math.Abs(score)
	return min(maxEngagement, round(e, 1))
}

// emojis reports every known emoji contained in text. Both sides are NFC
// normalized so matching works on whole code point sequences.
func (a *Analyzer) emojis(text string) map[string]float64 {
	normalized := norm.NFC.String(text)
	out := make(map[string]float64)
	for _, e := range a.lexicon.Emojis() {
		if strings.Contains(normalized, norm.NFC.String(e.Glyph)) {
			out[e.Glyph] = e.Weight
		}
	}
	return out
}

func failureReason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmptyText):
		return "empty_text"
	case errors.Is(err, domain.ErrUnknownMode):
		return "unknown_mode"
	default:
		return "other"
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

type noopObserver struct{}

func (noopObserver) AnalysisCompleted(domain.Mode, domain.Label, float64) {}
func (noopObserver) AnalysisFailed(string)                                 {}
