package vision

import "strings"

const bullet = "• "

// Format renders a result as display text. Sections appear in a fixed
// order and empty sections are omitted.
func Format(res Result) string {
	var sections []string
	add := func(header string, lines []string) {
		if len(lines) == 0 {
			return
		}
		sections = append(sections, header+"\n"+strings.Join(lines, "\n"))
	}

	themes := make([]string, len(res.Themes))
	for i, t := range res.Themes {
		themes[i] = bullet + t.Title()
	}
	add("Themes:", themes)

	var scripture []string
	for _, c := range res.References {
		scripture = append(scripture, bullet+c.Reference)
		if c.Text != "" {
			scripture = append(scripture, `  "`+c.Text+`"`)
		}
	}
	add("Scripture for Meditation:", scripture)

	add("Spiritual Principles:", bullets(res.SpiritualPrinciples))
	add("Application Points:", bullets(res.ApplicationPoints))
	add("Prophetic Guidance:", bullets(res.PropheticInsights))
	add("Prayer Points:", bullets(res.PrayerPoints))

	return strings.Join(sections, "\n\n")
}

func bullets(items []string) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = bullet + it
	}
	return out
}

// FormatRecord renders the text stored with a vision. The symbols found
// and pattern insights come first, then the Format commentary, then the
// interpretive principles, prayer guidance and general guidance. Empty
// blocks are omitted.
func FormatRecord(res Result) string {
	var blocks []string
	add := func(header string, lines []string) {
		if len(lines) == 0 {
			return
		}
		blocks = append(blocks, header+"\n"+strings.Join(lines, "\n"))
	}

	var found []string
	for _, m := range res.FoundSymbols {
		found = append(found, bullet+m.Symbol+":", "  Meaning: "+m.Meaning)
		if len(m.References) > 0 {
			found = append(found, "  Scripture References: "+strings.Join(m.References, ", "))
		}
	}
	add("Biblical Symbols Found in Your Vision:", found)
	add("Pattern Insights:", bullets(res.PatternInsights))
	if body := Format(res); body != "" {
		blocks = append(blocks, "Biblical Commentary and Prayer Guide:\n"+body)
	}

	var principles []string
	for _, p := range res.Principles {
		line := bullet + p.Name + ": " + p.Description
		if len(p.References) > 0 {
			line += " (" + strings.Join(p.References, "; ") + ")"
		}
		principles = append(principles, line)
	}
	add("Biblical Principles:", principles)
	add("Prayer Guidance:", guidanceLines(res.PrayerGuidance))
	add("Guidance:", bullets(res.GeneralGuidance))

	return strings.Join(blocks, "\n\n")
}

func guidanceLines(g PrayerGuidance) []string {
	var out []string
	stage := func(name string, topics []GuidanceTopic) {
		for _, t := range topics {
			out = append(out, bullet+name+" - "+t.Topic+" ("+t.Scripture+")")
			if t.Prayer != "" {
				out = append(out, "  "+t.Prayer)
			}
			if t.Guidance != "" {
				out = append(out, "  "+t.Guidance)
			}
		}
	}
	stage("Preparation", g.Preparation)
	stage("Interpretation", g.Interpretation)
	stage("Application", g.Application)
	if g.Specific != nil {
		stage("For this situation", []GuidanceTopic{*g.Specific})
	}
	return out
}
