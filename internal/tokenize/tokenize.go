// Package tokenize splits English text into word tokens and normalizes them
// for table lookups.
//
// Tokens keep their original casing and attached punctuation is split off
// Treebank style, so "don't" becomes "do", "n't" and "fire!" becomes "fire", "!".
// A Tokenizer is safe for concurrent use.
package tokenize

import (
	"strings"

	"github.com/tsawler/prose/v3"
)

// stripSet lists the characters Normalize removes from both ends of a token.
const stripSet = `.,!?;:'"`

type Tokenizer struct {
	inner prose.Tokenizer
}

func New() *Tokenizer {
	return &Tokenizer{inner: prose.NewIterTokenizer()}
}

// Tokenize returns the raw tokens of text in order.
func (t *Tokenizer) Tokenize(text string) []string {
	toks := t.inner.Tokenize(text)
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		if tok.Text == "" {
			continue
		}
		out = append(out, tok.Text)
	}
	return out
}

// Normalize lowercases a token and strips surrounding punctuation.
func Normalize(token string) string {
	return strings.Trim(strings.ToLower(token), stripSet)
}

// NormalizeAll applies Normalize to every token.
func NormalizeAll(tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = Normalize(tok)
	}
	return out
}
