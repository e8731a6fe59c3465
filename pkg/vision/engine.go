// Package vision interprets free-text vision narratives. It splits a
// narrative into segments, extracts lexical features through a Tagger,
// classifies the segments onto a fixed theme taxonomy and generates
// references, application points and prayer points from template pools.
package vision

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/japaniel/visionary/pkg/symbols"
	"github.com/japaniel/visionary/pkg/tagger"
)

const (
	DefaultMaxReferences      = 4
	DefaultReferencesPerTheme = 2
	DefaultMinPoints          = 3
)

// Options tunes the generator. Zero values take the defaults above.
type Options struct {
	// AlwaysIncludeThemes are added to every non-empty analysis.
	AlwaysIncludeThemes []Theme
	MaxReferences       int
	ReferencesPerTheme  int
	MinPoints           int
}

func (o Options) withDefaults() Options {
	if o.MaxReferences <= 0 {
		o.MaxReferences = DefaultMaxReferences
	}
	if o.ReferencesPerTheme <= 0 {
		o.ReferencesPerTheme = DefaultReferencesPerTheme
	}
	if o.MinPoints <= 0 {
		o.MinPoints = DefaultMinPoints
	}
	return o
}

// Validate rejects unknown themes in AlwaysIncludeThemes.
func (o Options) Validate() error {
	for _, t := range o.AlwaysIncludeThemes {
		if _, ok := taxonomyIndex[t]; !ok {
			return fmt.Errorf("unknown theme %q", t)
		}
	}
	return nil
}

// Result is the outcome of one analysis.
type Result struct {
	FoundSymbols []symbols.Match `json:"found_symbols"`
	Themes       []Theme         `json:"themes"`
	Features     Features        `json:"features"`
	Commentary
	// Degraded is set when the analysis failed and the fallback was used.
	Degraded bool `json:"degraded"`
}

// Engine runs the analysis pipeline. It is safe for concurrent use.
type Engine struct {
	table  *symbols.Table
	tagger tagger.Tagger
	opts   Options
	rand   Rand
	gen    *Generator
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithOptions replaces the generator options.
func WithOptions(o Options) Option {
	return func(e *Engine) { e.opts = o }
}

// WithRand injects the random source used for sampling. The source is
// guarded by a mutex.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rand = &lockedRand{src: r} }
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

// NewEngine wires a symbol table and tagger into an Engine.
func NewEngine(table *symbols.Table, tg tagger.Tagger, opts ...Option) *Engine {
	e := &Engine{
		table:  table,
		tagger: tg,
		rand:   globalRand{},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.table == nil {
		e.table = symbols.NewTable(nil)
	}
	e.opts = e.opts.withDefaults()
	e.gen = NewGenerator(e.rand, e.opts)
	return e
}

// AnalyzeVision interprets a description. It never fails: an empty
// description yields a fixed prompt result and any internal failure yields
// the degraded fallback.
func (e *Engine) AnalyzeVision(description, context string) (res Result) {
	if strings.TrimSpace(description) == "" {
		return emptyDescriptionResult()
	}

	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("vision analysis panicked; using fallback",
				zap.Any("panic", r))
			res = fallbackResult()
		}
	}()

	out, err := e.analyze(description, context)
	if err != nil {
		e.logger.Error("vision analysis failed; using fallback", zap.Error(err))
		return fallbackResult()
	}
	return out
}

func (e *Engine) analyze(description, context string) (Result, error) {
	segments := Split(description)
	if strings.TrimSpace(context) != "" {
		segments = append(segments, strings.TrimSpace(context))
	}

	if e.tagger == nil {
		return Result{}, fmt.Errorf("no tagger configured")
	}

	features := NewFeatures()
	themes := make(ThemeSet)
	for _, seg := range segments {
		tokens, err := e.tagger.Tag(seg)
		if err != nil {
			return Result{}, fmt.Errorf("tagging segment: %w", err)
		}
		f := Extract(tokens)
		themes.Union(Classify(seg, f))
		features.Merge(f)
	}
	features.Patterns = DetectPatterns(description)
	themes.Add(e.opts.AlwaysIncludeThemes...)

	found := e.table.Find(description)
	commentary := e.gen.Generate(features, themes, found, context)
	commentary.Principles = RelevantPrinciples(description)
	commentary.PrayerGuidance = GuidanceFor(context)
	commentary.GeneralGuidance = append([]string(nil), generalGuidance...)

	res := Result{
		FoundSymbols: found,
		Themes:       themes.Sorted(),
		Features:     features,
		Commentary:   commentary,
	}
	ensureMinimum(&res)

	e.logger.Debug("vision analyzed",
		zap.Int("segments", len(segments)),
		zap.Any("themes", res.Themes),
		zap.Int("symbols", len(found)))
	return res, nil
}

// ensureMinimum fills any list the caller is promised to be non-empty.
func ensureMinimum(res *Result) {
	if len(res.Themes) == 0 {
		res.Themes = []Theme{Guidance}
	}
	if len(res.References) == 0 {
		res.References = append([]Citation(nil), generalReferences...)
	}
	if len(res.ApplicationPoints) == 0 {
		res.ApplicationPoints = append([]string(nil), generalApplications[:DefaultMinPoints]...)
	}
	if len(res.PrayerPoints) == 0 {
		res.PrayerPoints = append([]string(nil), generalPrayers[:DefaultMinPoints]...)
	}
	if len(res.Insights) == 0 {
		res.Insights = []string{fmt.Sprintf(insightTemplates[0], res.Themes[0].Words())}
	}
}

func emptyDescriptionResult() Result {
	return Result{
		Themes:   []Theme{Guidance},
		Features: NewFeatures(),
		Commentary: Commentary{
			Insights:          []string{"Please provide a description of your vision so it can be interpreted."},
			References:        []Citation{{"Habakkuk 2:2", "Write the vision; make it plain on tablets, so he may run who reads it."}},
			ApplicationPoints: []string{"Please provide a description of your vision, including what you saw, heard and felt."},
			PrayerPoints:      []string{"Lord, help me remember and describe clearly what You have shown me."},
		},
	}
}

func fallbackResult() Result {
	return Result{
		Themes:   []Theme{Guidance},
		Features: NewFeatures(),
		Commentary: Commentary{
			Insights:          []string{"A detailed analysis is unavailable right now; seek the Lord directly about the meaning of this vision."},
			References:        []Citation{{"Psalm 32:8", "I will instruct you and teach you in the way you should go; I will counsel you with my eye upon you."}},
			ApplicationPoints: []string{"Take time to pray and seek God's wisdom about this vision."},
			PrayerPoints:      []string{"Lord, grant me wisdom to understand what You are showing me."},
		},
		Degraded: true,
	}
}
