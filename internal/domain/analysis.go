package domain

import "fmt"

// Mode selects which extension fields an analysis carries.
type Mode string

const (
	ModeGeneral Mode = "general"
	ModeProduct Mode = "product"
	ModeSocial  Mode = "social"
)

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	switch m {
	case ModeGeneral, ModeProduct, ModeSocial:
		return true
	}
	return false
}

// ParseMode maps a mode name to a Mode. The empty string means general.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeGeneral:
		return ModeGeneral, nil
	case ModeProduct:
		return ModeProduct, nil
	case ModeSocial:
		return ModeSocial, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownMode, s)
	}
}

type Label string

const (
	LabelPositive Label = "POSITIVE"
	LabelNegative Label = "NEGATIVE"
	LabelNeutral  Label = "NEUTRAL"
)

type Intensity string

const (
	IntensityLow     Intensity = "low"
	IntensityMedium  Intensity = "medium"
	IntensityHigh    Intensity = "high"
	IntensityExtreme Intensity = "extreme"
)

// Analysis is the outcome of analyzing one text. Mode-specific fields live in
// the embedded extensions, which stay nil for other modes.
type Analysis struct {
	Text          string             `json:"text"`
	Mode          Mode               `json:"mode"`
	Score         float64            `json:"score"`
	Sentiment     Label              `json:"sentiment"`
	Confidence    float64            `json:"confidence"`
	Intensity     Intensity          `json:"intensity"`
	WSDAnalysis   SenseMap           `json:"wsd_analysis"`
	WordBreakdown map[string]float64 `json:"word_breakdown"`

	*ProductExtension
	*SocialExtension
	*SourceExtension
}

type ProductExtension struct {
	Aspects   map[string]string `json:"aspects"`
	Recommend bool              `json:"recommend"`
}

type SocialExtension struct {
	Hashtags        []string           `json:"hashtags"`
	EngagementScore float64            `json:"engagement_score"`
	EmojiAnalysis   map[string]float64 `json:"emoji_analysis"`
}

// SourceExtension is attached to analyses of text extracted from a URL.
type SourceExtension struct {
	SourceURL string `json:"source_url"`
	Snippet   string `json:"snippet"`
}

// AnalysisResult is the total form of an analysis: it always exists, and a
// failure is reported through Success and Error instead of a Go error.
type AnalysisResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`

	*Analysis
}

// Failed builds an unsuccessful result carrying err's message.
func Failed(err error) AnalysisResult {
	return AnalysisResult{Success: false, Error: err.Error()}
}

// Succeeded wraps a completed analysis.
func Succeeded(a *Analysis) AnalysisResult {
	return AnalysisResult{Success: true, Analysis: a}
}

// BatchSummary rolls up the labels and confidences of a batch.
type BatchSummary struct {
	Positive          int     `json:"positive"`
	Negative          int     `json:"negative"`
	Neutral           int     `json:"neutral"`
	AverageConfidence float64 `json:"average_confidence"`
}

type BatchResult struct {
	Total   int              `json:"total"`
	Results []AnalysisResult `json:"results"`
	Summary BatchSummary     `json:"summary"`
}
