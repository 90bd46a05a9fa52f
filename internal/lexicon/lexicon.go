// Package lexicon holds the static dictionaries the scanner matches against:
// multi-word phrases and single words mapped to emoji, plus the positive and
// negative sentiment word sets. Dictionaries are read-only after construction.
package lexicon

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// Lexicon is the scanner's read-only dictionary set. All keys are lowercase.
type Lexicon struct {
	phrases  map[string]string
	words    map[string]string
	positive map[string]struct{}
	negative map[string]struct{}
}

// fileFormat is the TOML overlay schema.
type fileFormat struct {
	Phrases   map[string]string `toml:"phrases"`
	Words     map[string]string `toml:"words"`
	Sentiment struct {
		Positive []string `toml:"positive"`
		Negative []string `toml:"negative"`
	} `toml:"sentiment"`
}

// Default returns the built-in dictionaries.
func Default() *Lexicon {
	return New(defaultPhrases, defaultWords, defaultPositive, defaultNegative)
}

// Load returns the built-in dictionaries merged with the TOML file at path.
// File entries win over defaults on key collision.
func Load(path string) (*Lexicon, error) {
	var f fileFormat
	if _, err := toml.DecodeFile(path, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file %s: %w", path, err)
	}

	lex := Default()
	for phrase, emoji := range f.Phrases {
		lex.phrases[strings.ToLower(phrase)] = emoji
	}
	for word, emoji := range f.Words {
		lex.words[strings.ToLower(word)] = emoji
	}
	for _, w := range f.Sentiment.Positive {
		lex.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range f.Sentiment.Negative {
		lex.negative[strings.ToLower(w)] = struct{}{}
	}
	return lex, nil
}

// New builds a lexicon from explicit dictionaries. Keys and set members are
// lowercased; the inputs are copied.
func New(phrases, words map[string]string, positive, negative []string) *Lexicon {
	lex := &Lexicon{
		phrases:  make(map[string]string, len(phrases)),
		words:    make(map[string]string, len(words)),
		positive: make(map[string]struct{}, len(positive)),
		negative: make(map[string]struct{}, len(negative)),
	}
	for phrase, emoji := range phrases {
		lex.phrases[strings.ToLower(phrase)] = emoji
	}
	for word, emoji := range words {
		lex.words[strings.ToLower(word)] = emoji
	}
	for _, w := range positive {
		lex.positive[strings.ToLower(w)] = struct{}{}
	}
	for _, w := range negative {
		lex.negative[strings.ToLower(w)] = struct{}{}
	}
	return lex
}

// Phrases returns the phrase-to-emoji dictionary. Callers must not mutate it.
func (l *Lexicon) Phrases() map[string]string { return l.phrases }

// WordEmoji looks up the emoji mapped to a lowercase word.
func (l *Lexicon) WordEmoji(word string) (string, bool) {
	emoji, ok := l.words[word]
	return emoji, ok
}

// IsPositive reports whether a lowercase word is in the positive set.
func (l *Lexicon) IsPositive(word string) bool {
	_, ok := l.positive[word]
	return ok
}

// IsNegative reports whether a lowercase word is in the negative set.
func (l *Lexicon) IsNegative(word string) bool {
	_, ok := l.negative[word]
	return ok
}
