// Package lexicon holds the word and emoji sentiment weights.
//
// Positive and negative word tables are merged into one lookup. A word present
// in both tables keeps its positive weight. The emoji table is kept separate
// and in file order, since emoji are matched by containment rather than by
// token.
//
// A Lexicon is immutable after construction and safe for concurrent use.
package lexicon

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/lexicon/data"
)

// Emoji is a glyph with its sentiment weight.
type Emoji struct {
	Glyph  string
	Weight float64
}

type Lexicon struct {
	words map[string]float64
	emoji []Emoji
}

var defaultLexicon = sync.OnceValue(func() *Lexicon {
	lex, err := New(data.Positive, data.Negative, data.Emoji)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
})

// Default returns the lexicon built from the embedded tables.
func Default() *Lexicon {
	return defaultLexicon()
}

// New builds a lexicon from tab-separated "entry\tweight" tables.
// Blank lines and lines starting with '#' are ignored. Within one table a
// repeated entry keeps its last weight.
func New(positive, negative, emoji string) (*Lexicon, error) {
	pos, err := parseTable(positive)
	if err != nil {
		return nil, fmt.Errorf("positive table: %w", err)
	}
	neg, err := parseTable(negative)
	if err != nil {
		return nil, fmt.Errorf("negative table: %w", err)
	}
	emo, err := parseTable(emoji)
	if err != nil {
		return nil, fmt.Errorf("emoji table: %w", err)
	}

	words := make(map[string]float64, len(pos)+len(neg))
	for _, e := range neg {
		words[e.key] = e.weight
	}
	for _, e := range pos {
		words[e.key] = e.weight
	}

	lex := &Lexicon{words: words}
	seen := make(map[string]int, len(emo))
	for _, e := range emo {
		if i, ok := seen[e.key]; ok {
			lex.emoji[i].Weight = e.weight
			continue
		}
		seen[e.key] = len(lex.emoji)
		lex.emoji = append(lex.emoji, Emoji{Glyph: e.key, Weight: e.weight})
	}
	return lex, nil
}

// Lookup returns the weight of a normalized word.
func (l *Lexicon) Lookup(word string) (float64, bool) {
	w, ok := l.words[word]
	return w, ok
}

// Score returns the weight of a normalized word, or 0 if it is unknown.
func (l *Lexicon) Score(word string) float64 {
	return l.words[word]
}

// Emojis returns the emoji table in declaration order.
func (l *Lexicon) Emojis() []Emoji {
	out := make([]Emoji, len(l.emoji))
	copy(out, l.emoji)
	return out
}

// Len returns the number of distinct words.
func (l *Lexicon) Len() int {
	return len(l.words)
}

type entry struct {
	key    string
	weight float64
}

func parseTable(raw string) ([]entry, error) {
	var entries []entry
	for n, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '#' {
			continue
		}
		parts := strings.SplitN(line, "\t", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("line %d: expected entry and weight separated by a tab", n+1)
		}
		key := strings.TrimSpace(parts[0])
		weight, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid weight %q: %w", n+1, parts[1], err)
		}
		entries = append(entries, entry{key: key, weight: weight})
	}
	return entries, nil
}
