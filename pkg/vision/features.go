package vision

import (
	"strings"

	"github.com/japaniel/visionary/pkg/tagger"
)

// Action is a verb occurrence with its root form.
type Action struct {
	Surface string `json:"surface"`
	Root    string `json:"root"`
}

// Pattern is a number, color, element or direction found in the raw text.
type Pattern struct {
	Term       string   `json:"term"`
	Meanings   []string `json:"meanings"`
	References []string `json:"references"`
}

// Patterns holds the results of the text scans that run independently of
// the tagger.
type Patterns struct {
	Numbers    []Pattern `json:"numbers"`
	Colors     []Pattern `json:"colors"`
	Elements   []Pattern `json:"elements"`
	Directions []Pattern `json:"directions"`
}

// Empty reports whether no pattern was detected.
func (p Patterns) Empty() bool {
	return len(p.Numbers) == 0 && len(p.Colors) == 0 && len(p.Elements) == 0 && len(p.Directions) == 0
}

// Features is everything the classifier and generator may consult.
type Features struct {
	// Entities maps a normalized entity name to the surface forms seen.
	Entities map[string][]string `json:"entities"`
	Actions  []Action            `json:"actions"`
	Emotions map[Emotion]int     `json:"emotions"`
	Patterns
}

// NewFeatures returns an empty, ready to merge Features value.
func NewFeatures() Features {
	return Features{
		Entities: make(map[string][]string),
		Emotions: make(map[Emotion]int),
	}
}

// HasEntity reports whether name was extracted as an entity.
func (f Features) HasEntity(name string) bool {
	_, ok := f.Entities[name]
	return ok
}

// HasAction reports whether any action root is in roots.
func (f Features) HasAction(roots wordSet) bool {
	for _, a := range f.Actions {
		if roots.has(a.Root) {
			return true
		}
	}
	return false
}

// Extract derives entities, actions and emotion counts from tagged tokens.
func Extract(tokens []tagger.Token) Features {
	f := NewFeatures()
	for _, tok := range tokens {
		if tok.Class.IsNoun() {
			name := entityName(tok)
			if name != "" {
				f.Entities[name] = append(f.Entities[name], tok.Surface)
			}
		}
		if tok.Class == tagger.Verb {
			root := tok.Root
			if root == "" {
				root = strings.ToLower(tok.Surface)
			}
			f.Actions = append(f.Actions, Action{Surface: tok.Surface, Root: root})
		}
		for _, e := range emotionsOf(tok) {
			f.Emotions[e]++
		}
	}
	return f
}

// entityName folds the token through the alias table, else keys it by its
// dictionary form ("horses" -> "horse"). The surface form wins over the
// root so that "TV" and "television" both alias.
func entityName(tok tagger.Token) string {
	surface := strings.ToLower(strings.TrimSpace(tok.Surface))
	if alias, ok := modernAliases[surface]; ok {
		return alias
	}
	root := strings.ToLower(strings.TrimSpace(tok.Root))
	if alias, ok := modernAliases[root]; ok {
		return alias
	}
	if root != "" {
		return root
	}
	return surface
}

// emotionsOf returns every emotion whose keyword set contains the token's
// root, surface or one of its synonyms.
func emotionsOf(tok tagger.Token) []Emotion {
	candidates := make([]string, 0, len(tok.Synonyms)+2)
	candidates = append(candidates, strings.ToLower(tok.Root), strings.ToLower(tok.Surface))
	for _, s := range tok.Synonyms {
		candidates = append(candidates, strings.ToLower(s))
	}

	var out []Emotion
	for _, e := range emotionOrder {
		words := emotionKeywords[e]
		for _, c := range candidates {
			if words.has(c) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}

// DetectPatterns scans raw text for symbolic numbers, colors, elements and
// directions.
func DetectPatterns(text string) Patterns {
	lower := strings.ToLower(text)
	return Patterns{
		Numbers:    findNumbers(lower),
		Colors:     scanTable(lower, colorTable),
		Elements:   scanTable(lower, elementTable),
		Directions: scanTable(lower, directionTable),
	}
}

func findNumbers(lower string) []Pattern {
	digits := numberWordPattern.ReplaceAllStringFunc(lower, func(w string) string {
		return numberWords[strings.ToLower(w)]
	})

	var out []Pattern
	for _, n := range digitsPattern.FindAllString(digits, -1) {
		if def, ok := numberTable[n]; ok {
			out = append(out, def.pattern())
		}
	}
	return out
}

func scanTable(lower string, table []patternDef) []Pattern {
	var out []Pattern
	for _, def := range table {
		for _, alt := range strings.Split(def.term, "/") {
			if strings.Contains(lower, alt) {
				out = append(out, def.pattern())
				break
			}
		}
	}
	return out
}

func (d patternDef) pattern() Pattern {
	return Pattern{
		Term:       d.term,
		Meanings:   append([]string(nil), d.meanings...),
		References: append([]string(nil), d.references...),
	}
}

// Merge folds other into f. Entity surface lists and actions are
// concatenated, emotion counts summed, patterns appended.
func (f *Features) Merge(other Features) {
	if f.Entities == nil {
		f.Entities = make(map[string][]string)
	}
	if f.Emotions == nil {
		f.Emotions = make(map[Emotion]int)
	}
	for name, surfaces := range other.Entities {
		f.Entities[name] = append(f.Entities[name], surfaces...)
	}
	f.Actions = append(f.Actions, other.Actions...)
	for e, n := range other.Emotions {
		f.Emotions[e] += n
	}
	f.Numbers = append(f.Numbers, other.Numbers...)
	f.Colors = append(f.Colors, other.Colors...)
	f.Elements = append(f.Elements, other.Elements...)
	f.Directions = append(f.Directions, other.Directions...)
}
