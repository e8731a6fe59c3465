package tagger

import "strings"

// synonyms maps a root (or surface) form to near-synonyms. Japanese keys
// map onto English glosses so the keyword tables downstream stay English.
var synonyms = map[string][]string{
	// fear
	"afraid":    {"fear", "scared"},
	"scared":    {"fear", "afraid"},
	"scare":     {"fear"},
	"terrified": {"fear", "terror"},
	"terrifi":   {"fear", "terror"},
	"frighten":  {"fear"},
	"panic":     {"fear", "urgency"},
	"dread":     {"fear"},
	"anxious":   {"fear", "worry"},
	"chase":     {"pursue", "hunt"},
	"pursue":    {"chase"},
	"flee":      {"escape", "run"},
	"escape":    {"flee"},
	"outrun":    {"escape", "run"},
	// joy
	"happy":   {"joy", "glad"},
	"glad":    {"joy", "happy"},
	"delight": {"joy"},
	"rejoice": {"joy", "celebrate"},
	"laugh":   {"joy"},
	// urgency
	"hurry":   {"urgency", "rush"},
	"rush":    {"urgency", "hurry"},
	"urgent":  {"urgency"},
	"quick":   {"urgency", "fast"},
	"quickli": {"urgency"},
	// peace
	"calm":     {"peace", "still"},
	"still":    {"peace", "calm"},
	"serene":   {"peace", "calm"},
	"rest":     {"peace"},
	"peaceful": {"peace"},
	// things
	"television":  {"screen", "tv"},
	"tv":          {"screen", "television"},
	"monitor":     {"screen"},
	"electric":    {"power", "electricity"},
	"electricity": {"power"},
	"energy":      {"power"},

	"牛":     {"cow", "cattle"},
	"テレビ":   {"television", "screen"},
	"画面":    {"screen"},
	"電気":    {"electricity", "power"},
	"力":     {"power", "strength"},
	"ライオン":  {"lion"},
	"獅子":    {"lion"},
	"鳩":     {"dove"},
	"水":     {"water"},
	"火":     {"fire"},
	"蛇":     {"serpent", "snake"},
	"怖い":    {"fear", "afraid"},
	"恐れる":   {"fear"},
	"逃げる":   {"flee", "escape"},
	"追いかける": {"chase", "pursue"},
	"急ぐ":    {"hurry", "urgency"},
	"嬉しい":   {"joy", "happy"},
	"喜ぶ":    {"joy", "rejoice"},
	"平和":    {"peace"},
	"静か":    {"calm", "peace"},
}

// lookupSynonyms returns the synonyms of root, falling back to the
// lowercased surface form. The returned slice is a copy.
func lookupSynonyms(root, surface string) []string {
	if s, ok := synonyms[root]; ok {
		return append([]string(nil), s...)
	}
	if s, ok := synonyms[strings.ToLower(surface)]; ok {
		return append([]string(nil), s...)
	}
	return nil
}
