// Package tagger turns raw text into word-class tagged tokens with root
// forms and synonym strings. The vision engine only depends on the Tagger
// interface; the concrete taggers wrap an English and a Japanese analyzer.
package tagger

import (
	"fmt"
	"strings"
)

// Class is the coarse word class assigned to a token.
type Class string

const (
	Noun       Class = "noun"
	ProperNoun Class = "proper_noun"
	Verb       Class = "verb"
	Adjective  Class = "adjective"
	Adverb     Class = "adverb"
	Other      Class = "other"
)

// IsNoun reports whether the class names a thing (common or proper noun).
func (c Class) IsNoun() bool { return c == Noun || c == ProperNoun }

// Token represents a single analyzed unit of text.
type Token struct {
	Surface  string   // The text as it appears (e.g. "chasing")
	Root     string   // The dictionary form (e.g. "chase")
	Class    Class    // Coarse word class
	Synonyms []string // Near-synonyms or glosses of the root
}

// Tagger splits text into tagged tokens.
type Tagger interface {
	Tag(text string) ([]Token, error)
}

// Languages supported by New.
const (
	English  = "en"
	Japanese = "ja"
)

// New returns the tagger for the given language code.
func New(language string) (Tagger, error) {
	switch strings.ToLower(strings.TrimSpace(language)) {
	case "", English:
		return NewProseTagger(), nil
	case Japanese:
		return NewKagomeTagger()
	default:
		return nil, fmt.Errorf("unsupported tagger language %q", language)
	}
}

// TaggerFunc adapts a plain function to the Tagger interface.
type TaggerFunc func(text string) ([]Token, error)

// Tag calls f(text).
func (f TaggerFunc) Tag(text string) ([]Token, error) { return f(text) }
