package app

import (
	"strings"

	apperrors "github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/platform/errors"
)

const (
	msgInvalidText  = "Invalid text"
	msgInvalidTexts = "Invalid texts"
	msgNoURL        = "No URL provided"
)

// ValidateText rejects text that is empty after trimming.
func ValidateText(text string) error {
	if strings.TrimSpace(text) == "" {
		return apperrors.ValidationError(msgInvalidText)
	}
	return nil
}

// ValidateTexts rejects an empty list, a list longer than maxSize and a list
// with any invalid element. maxSize <= 0 disables the size check.
func ValidateTexts(texts []string, maxSize int) error {
	if len(texts) == 0 {
		return apperrors.ValidationError(msgInvalidTexts)
	}
	if maxSize > 0 && len(texts) > maxSize {
		return apperrors.ValidationError(msgInvalidTexts).
			WithField("max_size", maxSize).
			WithField("size", len(texts))
	}
	for i, t := range texts {
		if ValidateText(t) != nil {
			return apperrors.ValidationError(msgInvalidTexts).WithField("index", i)
		}
	}
	return nil
}
