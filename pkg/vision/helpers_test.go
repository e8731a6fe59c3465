package vision

import (
	"math/rand/v2"
	"strings"
	"testing"
	"unicode"

	"github.com/stretchr/testify/require"

	"github.com/japaniel/visionary/pkg/symbols"
	"github.com/japaniel/visionary/pkg/tagger"
)

// lexicon drives fakeTagger. Unknown words are tagged Other with their
// lowercased form as root.
var lexicon = map[string]tagger.Token{
	"lion":     {Root: "lion", Class: tagger.Noun},
	"dove":     {Root: "dove", Class: tagger.Noun},
	"cow":      {Root: "cow", Class: tagger.Noun, Synonyms: []string{"cattle"}},
	"cows":     {Root: "cow", Class: tagger.Noun},
	"tv":       {Root: "tv", Class: tagger.Noun, Synonyms: []string{"screen", "television"}},
	"screen":   {Root: "screen", Class: tagger.Noun},
	"power":    {Root: "power", Class: tagger.Noun},
	"body":     {Root: "body", Class: tagger.Noun},
	"gold":     {Root: "gold", Class: tagger.Noun},
	"days":     {Root: "day", Class: tagger.Noun},
	"saw":      {Root: "see", Class: tagger.Verb},
	"chasing":  {Root: "chase", Class: tagger.Verb, Synonyms: []string{"pursue", "hunt"}},
	"outran":   {Root: "outrun", Class: tagger.Verb, Synonyms: []string{"escape", "run"}},
	"flow":     {Root: "flow", Class: tagger.Verb},
	"afraid":   {Root: "afraid", Class: tagger.Adjective, Synonyms: []string{"fear", "scared"}},
	"hurried":  {Root: "hurry", Class: tagger.Verb},
	"electric": {Root: "electric", Class: tagger.Adjective, Synonyms: []string{"power"}},
}

func fakeTag(text string) ([]tagger.Token, error) {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	tokens := make([]tagger.Token, 0, len(words))
	for _, w := range words {
		tok, ok := lexicon[strings.ToLower(w)]
		if !ok {
			tok = tagger.Token{Root: strings.ToLower(w), Class: tagger.Other}
		}
		tok.Surface = w
		tokens = append(tokens, tok)
	}
	return tokens, nil
}

var fakeTagger = tagger.TaggerFunc(fakeTag)

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func loadTable(t *testing.T) *symbols.Table {
	t.Helper()
	entries, err := symbols.Load()
	require.NoError(t, err)
	return symbols.NewTable(entries)
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	opts = append([]Option{WithRand(seeded())}, opts...)
	return NewEngine(loadTable(t), fakeTagger, opts...)
}

func symbolNames(ms []symbols.Match) []string {
	out := make([]string, len(ms))
	for i, m := range ms {
		out[i] = m.Symbol
	}
	return out
}

func terms(ps []Pattern) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Term
	}
	return out
}

func seededWith(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
