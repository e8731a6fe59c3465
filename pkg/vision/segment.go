package vision

import (
	"regexp"
	"strings"
)

var (
	// anotherVision separates independent dream sequences in one narrative.
	anotherVision = regexp.MustCompile(`(?i)in another vision`)
	// sentenceEnd matches Latin terminal punctuation followed by whitespace
	// or end of text, CJK terminal punctuation, or a run of newlines.
	sentenceEnd = regexp.MustCompile(`([.!?]+)(?:\s+|$)|([。！？]+)|\n+`)
)

// Split breaks a narrative into independently classified segments. Terminal
// punctuation stays with its sentence; the "in another vision" marker is
// dropped. Empty segments are discarded.
func Split(narrative string) []string {
	var segments []string
	add := func(s string) {
		if s = strings.TrimSpace(s); s != "" {
			segments = append(segments, s)
		}
	}

	for _, part := range anotherVision.Split(narrative, -1) {
		start := 0
		for _, loc := range sentenceEnd.FindAllStringSubmatchIndex(part, -1) {
			end := loc[0]
			switch {
			case loc[3] > 0:
				end = loc[3]
			case loc[5] > 0:
				end = loc[5]
			}
			add(part[start:end])
			start = loc[1]
		}
		add(part[start:])
	}
	return segments
}
