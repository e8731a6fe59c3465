package vision

import (
	"fmt"
	"sort"
	"strings"
)

// Theme is a classification tag from the fixed taxonomy.
type Theme string

const (
	Protection        Theme = "protection"
	Guidance          Theme = "guidance"
	SpiritualGuidance Theme = "spiritual_guidance"
	Warfare           Theme = "warfare"
	Transformation    Theme = "transformation"
	Revelation        Theme = "revelation"
	Empowerment       Theme = "empowerment"
	Provision         Theme = "provision"
	Warning           Theme = "warning"
	Encouragement     Theme = "encouragement"
	Restoration       Theme = "restoration"
	SpiritualGrowth   Theme = "spiritual_growth"
	DivineTiming      Theme = "divine_timing"
	PropheticInsight  Theme = "prophetic_insight"
)

// Title renders the tag for display, e.g. "Spiritual Growth".
func (t Theme) Title() string {
	words := strings.Split(string(t), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// Words renders the tag for use inside a sentence, e.g. "spiritual growth".
func (t Theme) Words() string {
	return strings.ReplaceAll(string(t), "_", " ")
}

// ParseTheme accepts a tag in either underscore or spaced form.
func ParseTheme(s string) (Theme, error) {
	tag := Theme(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	if _, ok := taxonomyIndex[tag]; !ok {
		return "", fmt.Errorf("unknown theme %q", s)
	}
	return tag, nil
}

// Themes lists every known tag in taxonomy order.
func Themes() []Theme {
	out := make([]Theme, len(taxonomy))
	for i, def := range taxonomy {
		out[i] = def.tag
	}
	return out
}

// ThemeSet is an unordered collection of tags. Themes are only ever added.
type ThemeSet map[Theme]struct{}

func (s ThemeSet) Add(themes ...Theme) {
	for _, t := range themes {
		s[t] = struct{}{}
	}
}

func (s ThemeSet) Has(t Theme) bool {
	_, ok := s[t]
	return ok
}

func (s ThemeSet) Union(other ThemeSet) {
	for t := range other {
		s[t] = struct{}{}
	}
}

// Sorted returns the tags in alphabetical order.
func (s ThemeSet) Sorted() []Theme {
	out := make([]Theme, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Classify selects every theme whose keywords occur in the segment text or
// whose trigger entities were extracted from it. Fear implies protection and
// urgency implies guidance.
func Classify(segment string, f Features) ThemeSet {
	lower := strings.ToLower(segment)
	themes := make(ThemeSet)

	for _, def := range taxonomy {
		if def.matches(lower, f) {
			themes.Add(def.tag)
		}
	}
	if f.Emotions[Fear] > 0 {
		themes.Add(Protection)
	}
	if f.Emotions[Urgency] > 0 {
		themes.Add(Guidance)
	}
	return themes
}

func (d *themeDef) matches(lower string, f Features) bool {
	for _, kw := range d.keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	for _, trigger := range d.triggers {
		if f.HasEntity(trigger) {
			return true
		}
		for _, surfaces := range f.Entities {
			for _, s := range surfaces {
				if strings.EqualFold(s, trigger) {
					return true
				}
			}
		}
	}
	return false
}
