package analyzer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/lexicon"
)

type recordingObserver struct {
	mu        sync.Mutex
	completed []domain.Label
	failed    []string
}

func (o *recordingObserver) AnalysisCompleted(_ domain.Mode, label domain.Label, _ float64) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.completed = append(o.completed, label)
}

func (o *recordingObserver) AnalysisFailed(reason string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.failed = append(o.failed, reason)
}

var sampleTexts = []string{
	"This song is fire bro!",
	"This is terrible!",
	"The weather is cloudy.",
	"Great quality! Fast shipping!",
	"Just got new phone! #blessed",
	"I am feeling sick and tired today",
	"The house is on fire, call emergency!",
	"not very good at all",
	"absolutely amazing, ultra awesome performance 🔥",
	"Good!", "Bad!", "OK",
}

func TestAnalyze_FireInMusicContextIsPositive(t *testing.T) {
	res := Default().Analyze("This song is fire bro!", domain.ModeGeneral)

	require.True(t, res.Success)
	assert.Equal(t, domain.LabelPositive, res.Sentiment)
	assert.InDelta(t, 1.5, res.Score, 1e-9)
	assert.InDelta(t, 57.5, res.Confidence, 1e-9)
	assert.Equal(t, domain.IntensityHigh, res.Intensity)
	assert.Equal(t, "positive", res.WSDAnalysis[3].Sense)
	assert.Equal(t, map[string]float64{"fire": 1.5}, res.WordBreakdown)
	assert.Equal(t, domain.ModeGeneral, res.Mode)
}

func TestAnalyze_Negative(t *testing.T) {
	res := Default().Analyze("This is terrible!", domain.ModeGeneral)

	require.True(t, res.Success)
	assert.Equal(t, domain.LabelNegative, res.Sentiment)
	assert.InDelta(t, -1.5, res.Score, 1e-9)
	assert.InDelta(t, 61.25, res.Confidence, 1e-9)
	assert.Equal(t, map[string]float64{"terrible": -1.5}, res.WordBreakdown)
}

func TestAnalyze_NeutralWithoutSentimentWords(t *testing.T) {
	res := Default().Analyze("The weather is cloudy.", domain.ModeGeneral)

	require.True(t, res.Success)
	assert.Equal(t, domain.LabelNeutral, res.Sentiment)
	assert.Zero(t, res.Score)
	assert.Empty(t, res.WordBreakdown)
	assert.Equal(t, domain.IntensityLow, res.Intensity)
	assert.InDelta(t, 50.0, res.Confidence, 1e-9)
}

func TestAnalyze_ProductAspects(t *testing.T) {
	res := Default().Analyze("Great quality! Fast shipping!", domain.ModeProduct)

	require.True(t, res.Success)
	require.NotNil(t, res.ProductExtension)
	assert.Equal(t, map[string]string{"quality": "detected", "shipping": "detected"}, res.Aspects)
	assert.True(t, res.Recommend)
	assert.Equal(t, domain.ModeProduct, res.Mode)
	assert.Nil(t, res.SocialExtension)
}

func TestAnalyze_ProductNotRecommended(t *testing.T) {
	res := Default().Analyze("Poor packaging and the price is bad value", domain.ModeProduct)

	require.True(t, res.Success)
	assert.False(t, res.Recommend)
	assert.Contains(t, res.Aspects, "packaging")
	assert.Contains(t, res.Aspects, "price")
	assert.Contains(t, res.Aspects, "value")
}

func TestAnalyze_SocialHashtagsAndEngagement(t *testing.T) {
	res := Default().Analyze("Just got new phone! #blessed", domain.ModeSocial)

	require.True(t, res.Success)
	require.NotNil(t, res.SocialExtension)
	assert.Equal(t, []string{"#blessed"}, res.Hashtags)
	// 2 per hashtag + 1 per '!' + 5*|score| with score 0.
	assert.InDelta(t, 3.0, res.EngagementScore, 1e-9)
	assert.Empty(t, res.EmojiAnalysis)
	assert.Nil(t, res.ProductExtension)
}

func TestAnalyze_SocialEngagementIsCapped(t *testing.T) {
	res := Default().Analyze("#a #b #c #d #e so good!!!", domain.ModeSocial)

	require.True(t, res.Success)
	assert.Len(t, res.Hashtags, 5)
	assert.InDelta(t, 10.0, res.EngagementScore, 1e-9)
}

func TestAnalyze_SocialEmojis(t *testing.T) {
	res := Default().Analyze("new drop 🔥🔥 love it ❤️ but shipping 😭?", domain.ModeSocial)

	require.True(t, res.Success)
	assert.Equal(t, map[string]float64{"🔥": 1.5, "❤️": 1.4, "😭": -1.2}, res.EmojiAnalysis)
	assert.Empty(t, res.Hashtags)
}

func TestAnalyze_EmptyText(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t "} {
		res := Default().Analyze(text, domain.ModeGeneral)

		assert.False(t, res.Success)
		assert.Equal(t, "Empty text", res.Error)
		assert.Nil(t, res.Analysis)
	}
}

func TestAnalyze_UnknownMode(t *testing.T) {
	res := Default().Analyze("good stuff", domain.Mode("poetry"))

	assert.False(t, res.Success)
	assert.Equal(t, "Unknown mode: poetry", res.Error)
}

func TestAnalyze_RecoversFromPanics(t *testing.T) {
	obs := &recordingObserver{}
	broken := New(lexicon.Default(), nil, nil, WithObserver(obs))

	var res domain.AnalysisResult
	assert.NotPanics(t, func() {
		res = broken.Analyze("good stuff", domain.ModeGeneral)
	})
	assert.False(t, res.Success)
	assert.NotEmpty(t, res.Error)
	assert.Equal(t, []string{"panic"}, obs.failed)
}

func TestAnalyze_NeverFails(t *testing.T) {
	a := Default()
	inputs := append([]string{"", "!!!", "🔥", "'\"", "\x00", "n't n't n't"}, sampleTexts...)

	for _, text := range inputs {
		for _, mode := range []domain.Mode{domain.ModeGeneral, domain.ModeProduct, domain.ModeSocial, "bogus"} {
			assert.NotPanics(t, func() { _ = a.Analyze(text, mode) }, "text %q mode %q", text, mode)
		}
	}
}

func TestAnalyze_Idempotent(t *testing.T) {
	a := Default()

	for _, text := range sampleTexts {
		assert.Equal(t, a.Analyze(text, domain.ModeSocial), a.Analyze(text, domain.ModeSocial), text)
	}
}

func TestAnalyze_Invariants(t *testing.T) {
	a := Default()

	for _, text := range sampleTexts {
		t.Run(text, func(t *testing.T) {
			res := a.Analyze(text, domain.ModeGeneral)
			require.True(t, res.Success)

			switch {
			case res.Score > 1.0:
				assert.Equal(t, domain.LabelPositive, res.Sentiment)
			case res.Score < -1.0:
				assert.Equal(t, domain.LabelNegative, res.Sentiment)
			default:
				assert.Equal(t, domain.LabelNeutral, res.Sentiment)
			}

			assert.GreaterOrEqual(t, res.Confidence, 0.0)
			assert.LessOrEqual(t, res.Confidence, 100.0)

			tokens := a.tokenizer.Tokenize(text)
			assert.Len(t, res.WSDAnalysis, len(tokens))
			for i := range tokens {
				assert.Contains(t, res.WSDAnalysis, i)
			}
		})
	}
}

func TestAnalyze_Negation(t *testing.T) {
	a := Default()

	plain := a.Analyze("I am happy", domain.ModeGeneral)
	negated := a.Analyze("I am not happy", domain.ModeGeneral)

	assert.Equal(t, domain.LabelPositive, plain.Sentiment)
	assert.Equal(t, domain.LabelNegative, negated.Sentiment)
	assert.InDelta(t, -plain.Score, negated.Score, 1e-9)
}

func TestAnalyze_SplitContractionDoesNotNegate(t *testing.T) {
	a := Default()

	contracted := a.Analyze("This isn't good", domain.ModeGeneral)
	spelledOut := a.Analyze("This is not good", domain.ModeGeneral)

	require.True(t, contracted.Success)
	assert.InDelta(t, 1.0, contracted.Score, 1e-9)
	assert.InDelta(t, -1.0, spelledOut.Score, 1e-9)
}

func TestAnalyze_SenseOverrideIsNotNegated(t *testing.T) {
	res := Default().Analyze("not gonna lie this track is fire", domain.ModeGeneral)

	require.True(t, res.Success)
	assert.InDelta(t, 1.5, res.Score, 1e-9)
}

func TestAnalyze_ObserverNotified(t *testing.T) {
	obs := &recordingObserver{}
	a := Default(WithObserver(obs))

	a.Analyze("This is terrible!", domain.ModeGeneral)
	a.Analyze("", domain.ModeGeneral)
	a.Analyze("fine", domain.Mode("x"))

	assert.Equal(t, []domain.Label{domain.LabelNegative}, obs.completed)
	assert.Equal(t, []string{"empty_text", "unknown_mode"}, obs.failed)
}

func TestRun_ReturnsSentinelErrors(t *testing.T) {
	a := Default()

	_, err := a.Run(" ", domain.ModeGeneral)
	assert.ErrorIs(t, err, domain.ErrEmptyText)

	_, err = a.Run("ok", domain.Mode(""))
	assert.ErrorIs(t, err, domain.ErrUnknownMode)
}

func TestIntensityFor(t *testing.T) {
	tests := []struct {
		score float64
		want  domain.Intensity
	}{
		{0, domain.IntensityLow},
		{-0.49, domain.IntensityLow},
		{0.5, domain.IntensityMedium},
		{-1.49, domain.IntensityMedium},
		{1.5, domain.IntensityHigh},
		{-2.99, domain.IntensityHigh},
		{3.0, domain.IntensityExtreme},
		{-4.2, domain.IntensityExtreme},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.score), func(t *testing.T) {
			assert.Equal(t, tt.want, intensityFor(tt.score))
		})
	}
}

func TestLabelFor_Boundaries(t *testing.T) {
	assert.Equal(t, domain.LabelNeutral, labelFor(1.0))
	assert.Equal(t, domain.LabelPositive, labelFor(1.01))
	assert.Equal(t, domain.LabelNeutral, labelFor(-1.0))
	assert.Equal(t, domain.LabelNegative, labelFor(-1.01))
}

func TestConfidence_ClampsScoreComponent(t *testing.T) {
	senses := domain.SenseMap{0: {Confidence: 1.0}}

	assert.InDelta(t, 100.0, confidence(50, senses), 1e-9)
	assert.InDelta(t, 0.0, confidence(0, nil), 1e-9)
	assert.InDelta(t, 15.0, confidence(2, domain.SenseMap{}), 1e-9)
}

func TestAnalyzeBatch_Summary(t *testing.T) {
	res := Default().AnalyzeBatch(context.Background(), []string{"Good!", "Bad!", "OK"}, domain.ModeGeneral)

	require.Equal(t, 3, res.Total)
	require.Len(t, res.Results, 3)
	assert.Equal(t, 3, res.Summary.Positive+res.Summary.Negative+res.Summary.Neutral)

	var sum float64
	for _, r := range res.Results {
		require.True(t, r.Success)
		sum += r.Confidence
	}
	assert.InDelta(t, round(sum/3, 2), res.Summary.AverageConfidence, 1e-9)
	assert.InDelta(t, 51.75, res.Summary.AverageConfidence, 1e-9)

	// "Bad" with no context clue takes its slang sense.
	assert.Equal(t, domain.LabelNeutral, res.Results[0].Sentiment)
	assert.Equal(t, domain.LabelPositive, res.Results[1].Sentiment)
	assert.Equal(t, domain.LabelNeutral, res.Results[2].Sentiment)
}

func TestAnalyzeBatch_PreservesOrder(t *testing.T) {
	a := Default(WithBatchConcurrency(8))
	texts := make([]string, 200)
	for i := range texts {
		texts[i] = fmt.Sprintf("text number %d is good", i)
	}

	res := a.AnalyzeBatch(context.Background(), texts, domain.ModeGeneral)

	require.Len(t, res.Results, len(texts))
	for i, r := range res.Results {
		require.True(t, r.Success)
		assert.Equal(t, texts[i], r.Text)
	}
}

func TestAnalyzeBatch_FailedItemsCountAsZeroConfidence(t *testing.T) {
	res := Default().AnalyzeBatch(context.Background(), []string{"OK", " "}, domain.ModeGeneral)

	assert.True(t, res.Results[0].Success)
	assert.False(t, res.Results[1].Success)
	assert.Equal(t, 1, res.Summary.Neutral)
	assert.InDelta(t, 25.0, res.Summary.AverageConfidence, 1e-9)
}

func TestAnalyzeBatch_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res := Default().AnalyzeBatch(ctx, []string{"good", "bad"}, domain.ModeGeneral)

	require.Len(t, res.Results, 2)
	for _, r := range res.Results {
		assert.False(t, r.Success)
	}
}

func TestAnalyzeBatch_Empty(t *testing.T) {
	res := Default().AnalyzeBatch(context.Background(), nil, domain.ModeGeneral)

	assert.Zero(t, res.Total)
	assert.Zero(t, res.Summary.AverageConfidence)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 30))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
	assert.Equal(t, "🔥🔥...", truncate("🔥🔥🔥", 2))
}
