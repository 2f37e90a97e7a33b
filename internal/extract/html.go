package extract

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const (
	// minCandidateWords is the word count a container must exceed to count
	// as main content.
	minCandidateWords = 40
	// minParagraphWords is the word count a <p> must exceed in the fallback.
	minParagraphWords = 5
)

var (
	boilerplate = "script, style, noscript, header, footer, nav, form"

	contentSelectors = []string{
		"article",
		"main",
		"div[id*=content]",
		"div[class*=content]",
		"div[id*=article]",
		"div[class*=article]",
		"div[id*=post]",
		"div[class*=post]",
	}
)

// MainText returns the readable main text of an HTML document.
//
// Boilerplate elements are dropped first. The content container with the
// most words wins; if no container is long enough, the longer paragraphs are
// joined instead.
func MainText(r io.Reader) (string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", fmt.Errorf("failed to parse html: %w", err)
	}

	doc.Find(boilerplate).Remove()

	best, bestWords := "", 0
	for _, sel := range contentSelectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			text := joinText(s, "\n")
			words := len(strings.Fields(text))
			if words > minCandidateWords && words > bestWords {
				best, bestWords = text, words
			}
		})
	}
	if best != "" {
		return strings.TrimSpace(best), nil
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		text := joinText(s, " ")
		if len(strings.Fields(text)) > minParagraphWords {
			paragraphs = append(paragraphs, text)
		}
	})
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

// joinText joins the trimmed, non-empty text nodes below s with sep.
func joinText(s *goquery.Selection, sep string) string {
	var parts []string
	collectText(s, &parts)
	return strings.Join(parts, sep)
}

func collectText(s *goquery.Selection, parts *[]string) {
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		switch goquery.NodeName(c) {
		case "#text":
			if t := strings.TrimSpace(c.Text()); t != "" {
				*parts = append(*parts, t)
			}
		case "#comment":
		default:
			collectText(c, parts)
		}
	})
}

// Snippet returns the first n words of text followed by "...".
func Snippet(text string, n int) string {
	words := strings.Fields(text)
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ") + "..."
}

// WordCount counts whitespace separated words.
func WordCount(text string) int {
	return len(strings.Fields(text))
}
