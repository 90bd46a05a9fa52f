// Package scanner implements keyword and sentiment matching over finalized
// transcript fragments.
//
// Phrase matches run first, as substring checks against the lowercase full
// text independent of tokenization. Single words are then tokenized and
// checked against the sentiment sets and the emoji dictionary. There is no
// de-duplication: a word appearing twice spawns two particles, and
// overlapping phrases may each spawn one.
package scanner

import (
	"strings"
	"unicode"

	"github.com/jhemmerl/lingopulse/internal/domain"
	"github.com/jhemmerl/lingopulse/internal/lexicon"
)

// fillerMinLen is the minimum rune length for an unmatched token to spawn a
// faint text particle that keeps the visual feed populated.
const fillerMinLen = 4

// Hit is a particle the scanner wants spawned.
type Hit struct {
	Content string
	Kind    domain.ParticleKind
}

// Result is the outcome of scanning one finalized fragment.
type Result struct {
	Hits     []Hit
	Positive int
	Negative int
}

// Scanner matches text against an injected read-only lexicon. Stateless.
type Scanner struct {
	lex *lexicon.Lexicon
}

func New(lex *lexicon.Lexicon) *Scanner {
	return &Scanner{lex: lex}
}

// Scan processes one newly finalized fragment. Phrase hits come first in the
// result, then word hits in token order, then filler text particles.
func (s *Scanner) Scan(text string) Result {
	var res Result
	lower := strings.ToLower(text)

	for phrase, emoji := range s.lex.Phrases() {
		if strings.Contains(lower, phrase) {
			res.Hits = append(res.Hits, Hit{Content: emoji, Kind: domain.ParticleEmoji})
		}
	}

	for _, token := range tokenize(lower) {
		matched := false
		if s.lex.IsPositive(token) {
			res.Positive++
			matched = true
		}
		if s.lex.IsNegative(token) {
			res.Negative++
			matched = true
		}
		if emoji, ok := s.lex.WordEmoji(token); ok {
			res.Hits = append(res.Hits, Hit{Content: emoji, Kind: domain.ParticleEmoji})
			matched = true
		}
		if !matched && len([]rune(token)) >= fillerMinLen {
			res.Hits = append(res.Hits, Hit{Content: token, Kind: domain.ParticleText})
		}
	}

	return res
}

// tokenize strips punctuation, splits on whitespace, and drops tokens of
// length <= 1.
func tokenize(lower string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.IsSpace(r) {
			return r
		}
		return -1
	}, lower)

	fields := strings.Fields(cleaned)
	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) > 1 {
			tokens = append(tokens, f)
		}
	}
	return tokens
}
