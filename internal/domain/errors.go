package domain

import "errors"

// Messages of these errors are returned to API clients verbatim.
var (
	ErrEmptyText        = errors.New("Empty text")
	ErrUnknownMode      = errors.New("Unknown mode")
	ErrInsufficientText = errors.New("Could not extract enough text from the URL for analysis.")
	ErrInvalidURL       = errors.New("Invalid URL")
)
