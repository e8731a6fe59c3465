package vision

import (
	"fmt"
	"strings"

	"github.com/japaniel/visionary/pkg/symbols"
)

// Commentary is the generated part of an analysis.
type Commentary struct {
	Insights            []string   `json:"insights"`
	PatternInsights     []string   `json:"pattern_insights"`
	References          []Citation `json:"scripture_references"`
	ApplicationPoints   []string   `json:"application_points"`
	PrayerPoints        []string   `json:"prayer_points"`
	SpiritualPrinciples []string   `json:"spiritual_principles"`
	PropheticInsights   []string   `json:"prophetic_insights"`

	Principles      []Principle    `json:"principles"`
	PrayerGuidance  PrayerGuidance `json:"prayer_guidance"`
	GeneralGuidance []string       `json:"general_guidance"`
}

// Generator turns features, themes and found symbols into commentary.
type Generator struct {
	rand           Rand
	maxReferences  int
	perTheme       int
	minPoints      int
	symbolsToCover int
}

// NewGenerator builds a generator. Zero option values take their defaults.
func NewGenerator(r Rand, opts Options) *Generator {
	if r == nil {
		r = globalRand{}
	}
	opts = opts.withDefaults()
	return &Generator{
		rand:           r,
		maxReferences:  opts.MaxReferences,
		perTheme:       opts.ReferencesPerTheme,
		minPoints:      opts.MinPoints,
		symbolsToCover: 3,
	}
}

// Generate produces commentary. Every list except SpiritualPrinciples,
// PatternInsights and PropheticInsights is non-empty on return.
func (g *Generator) Generate(f Features, themes ThemeSet, found []symbols.Match, context string) Commentary {
	sorted := themes.Sorted()
	c := Commentary{
		PatternInsights: patternInsights(f.Patterns),
	}
	c.Insights = g.insights(f, themes, sorted)
	c.References = g.references(sorted)
	c.ApplicationPoints = g.applications(sorted, c.PatternInsights)
	c.PrayerPoints = g.prayers(sorted, found, c.PatternInsights, context)
	c.SpiritualPrinciples = g.principles(found)
	if themes.Has(PropheticInsight) {
		c.PropheticInsights = append([]string(nil), propheticInsights...)
	}
	return c
}

func (g *Generator) insights(f Features, themes ThemeSet, sorted []Theme) []string {
	var out []string
	if f.HasEntity("cow") {
		out = append(out, "The cow pursuing you may point to provision and blessing following you, or to a warning about material concerns demanding too much of your attention.")
	}
	if f.HasEntity("screen") || f.HasEntity("power") {
		out = append(out, "The screen and the flow of power suggest God revealing something to you and empowering you through the ordinary channels of your daily life.")
	}
	if f.Emotions[Fear] > 0 && themes.Has(Protection) {
		out = append(out, "The fear in this vision, set against God's protection, suggests that what pursues you will not overtake you.")
	}
	if f.HasAction(escapeActions) {
		out = append(out, "Escaping or outrunning what pursued you speaks of deliverance and victory over what threatened you.")
	}
	if len(out) > 0 {
		return out
	}

	theme := Guidance
	if len(sorted) > 0 {
		theme = sorted[g.rand.IntN(len(sorted))]
	}
	return []string{fmt.Sprintf(pick(g.rand, insightTemplates), theme.Words())}
}

// patternInsights summarises the number, color, element and direction hits.
func patternInsights(p Patterns) []string {
	var out []string
	if len(p.Numbers) > 0 {
		out = append(out, "The numbers in your vision suggest themes of: "+firstMeanings(p.Numbers))
	}
	if len(p.Colors) > 1 {
		names := make([]string, len(p.Colors))
		for i, c := range p.Colors {
			names[i] = c.Term
		}
		out = append(out, fmt.Sprintf("The combination of %s might indicate a complex spiritual message involving multiple aspects of God's character or work", strings.Join(names, " and ")))
	}
	if len(p.Elements) > 0 {
		out = append(out, "The presence of elemental symbols suggests themes of: "+firstMeanings(p.Elements))
	}
	if len(p.Directions) > 0 {
		out = append(out, "The directional elements in your vision point to: "+firstMeanings(p.Directions))
	}
	return out
}

func firstMeanings(ps []Pattern) string {
	meanings := make([]string, 0, len(ps))
	for _, p := range ps {
		if len(p.Meanings) > 0 {
			meanings = append(meanings, p.Meanings[0])
		}
	}
	return strings.Join(meanings, ", ")
}

// references samples up to perTheme citations from each theme's pool in
// alphabetical theme order, stopping at maxReferences. Later themes are the
// ones dropped once the cap is reached.
func (g *Generator) references(sorted []Theme) []Citation {
	if len(sorted) == 0 {
		return append([]Citation(nil), generalReferences...)
	}

	seen := make(map[string]struct{})
	var out []Citation
	for _, t := range sorted {
		def, ok := taxonomyIndex[t]
		if !ok {
			continue
		}
		taken := 0
		for _, i := range g.rand.Perm(len(def.verses)) {
			if taken == g.perTheme || len(out) == g.maxReferences {
				break
			}
			v := def.verses[i]
			if _, dup := seen[v.Reference]; dup {
				continue
			}
			seen[v.Reference] = struct{}{}
			out = append(out, v)
			taken++
		}
		if len(out) == g.maxReferences {
			break
		}
	}
	if len(out) == 0 {
		return append([]Citation(nil), generalReferences...)
	}
	return out
}

func (g *Generator) applications(sorted []Theme, insights []string) []string {
	var points orderedSet
	for _, t := range sorted {
		if def, ok := taxonomyIndex[t]; ok {
			points.add(def.applications...)
		}
	}
	for i, insight := range insights {
		if i == 2 {
			break
		}
		points.add("Reflect on " + lowerFirst(insight) + ".")
	}
	g.topUp(&points, generalApplications)
	return points.items
}

func (g *Generator) prayers(sorted []Theme, found []symbols.Match, insights []string, context string) []string {
	var points orderedSet
	for i, m := range found {
		if i == g.symbolsToCover {
			break
		}
		for _, templates := range symbolPrayers {
			points.add(fmt.Sprintf(pick(g.rand, templates), m.Symbol))
		}
	}
	for _, t := range sorted {
		if def, ok := taxonomyIndex[t]; ok {
			points.add(def.prayers...)
		}
	}
	for i, insight := range insights {
		if i == 2 {
			break
		}
		points.add("Holy Spirit, reveal how I should respond to this insight: " + insight)
	}

	if specific := specificGuidance(context); specific != nil {
		points.add(specific.Prayer)
	}

	g.topUp(&points, generalPrayers)
	return points.items
}

func (g *Generator) principles(found []symbols.Match) []string {
	var out []string
	for i, m := range found {
		if i == g.symbolsToCover {
			break
		}
		for _, tmpl := range symbolPrinciples {
			out = append(out, fmt.Sprintf(tmpl, m.Symbol))
		}
	}
	return out
}

// topUp adds random entries from pool until points holds minPoints items or
// the pool is exhausted.
func (g *Generator) topUp(points *orderedSet, pool []string) {
	for _, i := range g.rand.Perm(len(pool)) {
		if len(points.items) >= g.minPoints {
			return
		}
		points.add(pool[i])
	}
}

// orderedSet keeps insertion order and drops repeats.
type orderedSet struct {
	items []string
	seen  map[string]struct{}
}

func (s *orderedSet) add(items ...string) {
	if s.seen == nil {
		s.seen = make(map[string]struct{})
	}
	for _, it := range items {
		if _, ok := s.seen[it]; ok {
			continue
		}
		s.seen[it] = struct{}{}
		s.items = append(s.items, it)
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
