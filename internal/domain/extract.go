package domain

import "context"

// TextExtractor fetches a web page and returns its readable text.
type TextExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}

// PageCache stores extracted page text keyed by URL.
type PageCache interface {
	Get(ctx context.Context, url string) (string, bool)
	Set(ctx context.Context, url, text string)
}
