// Package scorer turns disambiguated tokens into an averaged sentiment score.
//
// Each token is weighted by its sense override when one exists for the chosen
// sense, otherwise by its plain lexicon weight. Unweighted tokens are ignored.
// Lexicon weights are flipped by a negation word up to three tokens earlier;
// override weights are not. A directly preceding intensifier multiplies the
// weight. The score is the mean of the weighted tokens.
package scorer

import (
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/domain"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/scorer/data"
	"github.com/Lakshman778/Sentiment-Analyzer-using-WSD/internal/tokenize"
)

const negationWindow = 3

// Lexicon supplies plain word weights.
type Lexicon interface {
	Score(word string) float64
}

// Tables is the decoded form of the modifiers file.
type Tables struct {
	Overrides    map[string]map[string]float64 `yaml:"overrides"`
	Intensifiers map[string]float64            `yaml:"intensifiers"`
	Negations    []string                      `yaml:"negations"`
}

func ParseTables(raw []byte) (Tables, error) {
	var t Tables
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return Tables{}, fmt.Errorf("failed to decode modifier tables: %w", err)
	}
	for word, m := range t.Intensifiers {
		if m <= 0 {
			return Tables{}, fmt.Errorf("intensifier %q must be positive, got %v", word, m)
		}
	}
	return t, nil
}

var defaultTables = sync.OnceValues(func() (Tables, error) {
	return ParseTables(data.Modifiers)
})

// DefaultTables returns the embedded modifier tables.
func DefaultTables() Tables {
	t, err := defaultTables()
	if err != nil {
		panic(fmt.Sprintf("embedded modifier tables are invalid: %v", err))
	}
	return t
}

type Scorer struct {
	lexicon      Lexicon
	overrides    map[string]map[string]float64
	intensifiers map[string]float64
	negations    map[string]struct{}
}

func New(lex Lexicon, t Tables) *Scorer {
	s := &Scorer{
		lexicon:      lex,
		overrides:    make(map[string]map[string]float64, len(t.Overrides)),
		intensifiers: make(map[string]float64, len(t.Intensifiers)),
		negations:    make(map[string]struct{}, len(t.Negations)),
	}
	for word, bySense := range t.Overrides {
		m := make(map[string]float64, len(bySense))
		for sense, w := range bySense {
			m[sense] = w
		}
		s.overrides[word] = m
	}
	for word, m := range t.Intensifiers {
		s.intensifiers[word] = m
	}
	for _, word := range t.Negations {
		s.negations[word] = struct{}{}
	}
	return s
}

// Contribution explains how one token entered the score.
type Contribution struct {
	Index      int
	Word       string
	Sense      string
	Base       float64
	Override   bool
	Negated    bool
	Multiplier float64
	Weight     float64
}

// Contributions returns the weighted tokens in order. Tokens whose base
// weight is zero are left out.
func (s *Scorer) Contributions(tokens []string, senses domain.SenseMap) []Contribution {
	normalized := tokenize.NormalizeAll(tokens)

	var out []Contribution
	for i, word := range normalized {
		c := Contribution{Index: i, Word: word, Multiplier: 1.0}

		if a, ok := senses[i]; ok {
			c.Sense = a.Sense
			if w, ok := s.overrides[word][a.Sense]; ok {
				c.Base, c.Override = w, true
			}
		}
		if !c.Override {
			c.Base = s.lexicon.Score(word)
		}
		if c.Base == 0 {
			continue
		}

		c.Weight = c.Base
		if !c.Override && s.negatedAt(normalized, i) {
			c.Negated = true
			c.Weight = -c.Weight
		}
		if i > 0 {
			if m, ok := s.intensifiers[normalized[i-1]]; ok {
				c.Multiplier = m
				c.Weight *= m
			}
		}
		out = append(out, c)
	}
	return out
}

// Score returns the mean weight of the scored tokens, or 0 when none scored.
func (s *Scorer) Score(tokens []string, senses domain.SenseMap) float64 {
	contribs := s.Contributions(tokens, senses)
	if len(contribs) == 0 {
		return 0
	}
	var total float64
	for _, c := range contribs {
		total += c.Weight
	}
	return total / float64(len(contribs))
}

func (s *Scorer) negatedAt(normalized []string, i int) bool {
	for j := max(0, i-negationWindow); j < i; j++ {
		if _, ok := s.negations[normalized[j]]; ok {
			return true
		}
	}
	return false
}
