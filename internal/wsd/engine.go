// Package wsd assigns a sense to every token of a text using a windowed
// context-clue vote.
//
// Words outside the sense inventory are their own single sense with full
// confidence. For ambiguous words the clue words of each candidate sense are
// counted inside the window around the token; the highest count wins, ties go
// to the earlier candidate. Without any clue signal the "positive" sense is
// preferred when the word has one, otherwise the first candidate is used.
//
// An Engine is immutable after construction and safe for concurrent use.
package wsd

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/tokenize"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/wsd/data"
)

const (
	DefaultWindow = 5

	// positiveSense is preferred when no clue matches.
	positiveSense = "positive"

	emptyContextConfidence = 0.6
	minConfidence          = 0.55
	maxConfidence          = 1.0
)

// Tables is the decoded form of the sense inventory file.
type Tables struct {
	Senses map[string][]string            `yaml:"senses"`
	Clues  map[string]map[string][]string `yaml:"clues"`
}

// ParseTables decodes and validates sense tables from YAML.
func ParseTables(raw []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to decode sense tables: %w", err)
	}
	for word, senses := range t.Senses {
		if len(senses) == 0 {
			return Tables{}, fmt.Errorf("word %q has no senses", word)
		}
	}
	for word := range t.Clues {
		if _, ok := t.Senses[word]; !ok {
			return Tables{}, fmt.Errorf("clues given for %q which has no sense entry", word)
		}
	}
	return t, nil
}

var defaultTables = sync.OnceValues(func() (Tables, error) {
	return ParseTables(data.Senses)
})

// DefaultTables returns the embedded sense tables.
func DefaultTables() Tables {
	t, err := defaultTables()
	if err != nil {
		panic(fmt.Sprintf("embedded sense tables are invalid: %v", err))
	}
	return t
}

type clueSet map[string]struct{}

type Engine struct {
	window int
	senses map[string][]string
	clues  map[string]map[string]clueSet
}

type Option func(*Engine)

// WithWindow sets the number of tokens considered on each side of a word.
// Values below 1 are ignored.
func WithWindow(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.window = n
		}
	}
}

func New(t Tables, opts ...Option) *Engine {
	e := &Engine{
		window: DefaultWindow,
		senses: make(map[string][]string, len(t.Senses)),
		clues:  make(map[string]map[string]clueSet, len(t.Clues)),
	}
	for word, senses := range t.Senses {
		e.senses[word] = append([]string(nil), senses...)
	}
	for word, bySense := range t.Clues {
		sets := make(map[string]clueSet, len(bySense))
		for sense, words := range bySense {
			set := make(clueSet, len(words))
			for _, w := range words {
				set[w] = struct{}{}
			}
			sets[sense] = set
		}
		e.clues[word] = sets
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Default builds an engine over the embedded tables.
func Default(opts ...Option) *Engine {
	return New(DefaultTables(), opts...)
}

func (e *Engine) Window() int {
	return e.window
}

// PossibleSenses returns the candidate senses of a normalized word. Words
// outside the inventory resolve to themselves.
func (e *Engine) PossibleSenses(word string) []string {
	if senses, ok := e.senses[word]; ok {
		return senses
	}
	return []string{word}
}

// Disambiguate returns one assignment per token index.
func (e *Engine) Disambiguate(tokens []string) domain.SenseMap {
	out := make(domain.SenseMap, len(tokens))
	normalized := tokenize.NormalizeAll(tokens)

	for i, token := range tokens {
		lo := max(0, i-e.window)
		hi := min(len(tokens), i+e.window+1)
		window := tokens[lo:hi:hi]
		windowNorm := normalized[lo:hi]

		word := normalized[i]
		possible := e.PossibleSenses(word)

		assignment := domain.SenseAssignment{
			Word:    token,
			Context: append([]string(nil), window...),
		}
		if len(possible) == 1 {
			assignment.Sense = possible[0]
			assignment.Confidence = maxConfidence
		} else {
			assignment.Sense = e.selectSense(word, windowNorm, possible)
			assignment.Confidence = e.confidence(word, assignment.Sense, windowNorm)
		}
		out[i] = assignment
	}
	return out
}

func (e *Engine) selectSense(word string, context, possible []string) string {
	clues, ok := e.clues[word]
	if !ok {
		return possible[0]
	}

	best, bestScore := "", 0
	for _, sense := range possible {
		score := countIn(context, clues[sense])
		if score > bestScore {
			best, bestScore = sense, score
		}
	}
	if bestScore > 0 {
		return best
	}

	for _, sense := range possible {
		if sense == positiveSense {
			return positiveSense
		}
	}
	return possible[0]
}

// confidence counts context tokens that name the sense and tokens that are
// clues for it. A token can count under both rules.
func (e *Engine) confidence(word, sense string, context []string) float64 {
	if len(context) == 0 {
		return emptyContextConfidence
	}

	matches := 0
	for _, c := range context {
		if strings.HasPrefix(c, sense) {
			matches++
		}
	}
	if clues, ok := e.clues[word]; ok {
		matches += countIn(context, clues[sense])
	}

	ratio := float64(matches) / float64(len(context))
	return round2(min(maxConfidence, max(minConfidence, ratio)))
}

func countIn(context []string, set clueSet) int {
	n := 0
	for _, c := range context {
		if _, ok := set[c]; ok {
			n++
		}
	}
	return n
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
