package vision

import (
	"regexp"
	"strings"

	"github.com/japaniel/visionary/pkg/tagger"
)

// modernAliases folds everyday words onto the symbol they stand for.
var modernAliases = map[string]string{
	"television":  "screen",
	"tv":          "screen",
	"monitor":     "screen",
	"phone":       "screen",
	"テレビ":         "screen",
	"画面":          "screen",
	"electric":    "power",
	"electricity": "power",
	"電気":          "power",
	"cattle":      "cow",
	"牛":           "cow",
	"ライオン":        "lion",
	"獅子":          "lion",
	"鳩":           "dove",
	"蛇":           "serpent",
}

// Emotion is one of the four tracked emotional registers.
type Emotion string

const (
	Joy     Emotion = "joy"
	Fear    Emotion = "fear"
	Urgency Emotion = "urgency"
	Peace   Emotion = "peace"
)

var emotionOrder = []Emotion{Joy, Fear, Urgency, Peace}

var emotionKeywords = map[Emotion]wordSet{
	Joy:     newWordSet("joy", "happy", "glad", "delight", "rejoice", "laugh", "celebrate", "gladness"),
	Fear:    newWordSet("fear", "afraid", "scared", "scare", "terror", "terrified", "frighten", "dread", "panic", "anxious", "worry", "chase", "pursue", "flee"),
	Urgency: newWordSet("urgency", "urgent", "hurry", "rush", "quick", "quickly", "haste", "immediately", "suddenly"),
	Peace:   newWordSet("peace", "calm", "still", "serene", "rest", "quiet", "tranquil", "peaceful"),
}

// escapeActions are verb roots that read as deliverance.
var escapeActions = newWordSet("outrun", "escape", "flee", "evade")

// wordSet matches a word by its exact form or by its English stem, so an
// inflection the tagger could not reduce ("escaped" -> "escap") still hits.
type wordSet struct {
	words map[string]struct{}
	stems map[string]struct{}
}

func newWordSet(words ...string) wordSet {
	s := wordSet{
		words: make(map[string]struct{}, len(words)),
		stems: make(map[string]struct{}, len(words)),
	}
	for _, w := range words {
		s.words[w] = struct{}{}
		s.stems[tagger.Stem(w)] = struct{}{}
	}
	return s
}

func (s wordSet) has(word string) bool {
	w := strings.ToLower(word)
	if _, ok := s.words[w]; ok {
		return true
	}
	_, ok := s.stems[tagger.Stem(w)]
	return ok
}

// numberWords are replaced by digits before the number scan.
var numberWords = map[string]string{
	"one":     "1",
	"two":     "2",
	"three":   "3",
	"four":    "4",
	"five":    "5",
	"six":     "6",
	"seven":   "7",
	"eight":   "8",
	"nine":    "9",
	"ten":     "10",
	"twelve":  "12",
	"forty":   "40",
	"seventy": "70",
}

var (
	numberWordPattern = regexp.MustCompile(`(?i)\b(one|two|three|four|five|six|seven|eight|nine|ten|twelve|forty|seventy)\b`)
	digitsPattern     = regexp.MustCompile(`\b\d+\b`)
)

type patternDef struct {
	term       string
	meanings   []string
	references []string
}

var numberTable = map[string]patternDef{
	"1":  {"1", []string{"unity", "primacy", "God's supremacy"}, []string{"Deuteronomy 6:4", "Ephesians 4:5"}},
	"2":  {"2", []string{"witness", "testimony", "division"}, nil},
	"3":  {"3", []string{"divine perfection", "Trinity", "completeness"}, []string{"2 Corinthians 13:14", "Matthew 28:19"}},
	"4":  {"4", []string{"creation", "earth", "universality"}, nil},
	"5":  {"5", []string{"grace", "God's goodness", "divine favor"}, nil},
	"6":  {"6", []string{"man", "human weakness", "imperfection"}, nil},
	"7":  {"7", []string{"perfection", "completeness", "divine fulfillment"}, []string{"Revelation 1:20", "Genesis 2:2"}},
	"8":  {"8", []string{"new beginning", "resurrection", "regeneration"}, nil},
	"9":  {"9", []string{"divine completeness", "finality"}, nil},
	"10": {"10", []string{"divine order", "completeness"}, nil},
	"12": {"12", []string{"divine government", "apostolic fullness"}, []string{"Revelation 21:12-14", "Matthew 10:1"}},
	"40": {"40", []string{"testing", "trial", "probation"}, []string{"Matthew 4:2", "Exodus 24:18"}},
	"70": {"70", []string{"perfect spiritual order", "restoration"}, nil},
}

// Color, element and direction tables are scanned in this order. Terms with
// a slash match on any alternative.
var colorTable = []patternDef{
	{"white", []string{"purity", "righteousness", "victory"}, []string{"Revelation 19:8", "Daniel 7:9"}},
	{"red", []string{"blood", "sacrifice", "war"}, []string{"Isaiah 1:18", "Revelation 6:4"}},
	{"blue", []string{"heaven", "divine revelation", "Holy Spirit"}, nil},
	{"purple", []string{"royalty", "kingship", "priesthood"}, []string{"John 19:2", "Acts 16:14"}},
	{"gold", []string{"divinity", "glory", "God's presence"}, []string{"Revelation 21:21", "Exodus 25:11"}},
	{"black", []string{"darkness", "sin", "judgment"}, nil},
	{"green", []string{"life", "growth", "prosperity"}, nil},
	{"silver", []string{"redemption", "truth", "atonement"}, nil},
}

var elementTable = []patternDef{
	{"water", []string{"cleansing", "Spirit", "life"}, []string{"John 4:14", "Revelation 22:1"}},
	{"fire", []string{"purification", "Holy Spirit", "judgment"}, []string{"Acts 2:3", "Exodus 3:2"}},
	{"earth", []string{"humanity", "temporal world"}, []string{"Genesis 2:7", "Ecclesiastes 3:20"}},
	{"air/wind", []string{"Spirit", "breath of God", "divine movement"}, []string{"John 3:8", "Acts 2:2"}},
}

var directionTable = []patternDef{
	{"up/above", []string{"heavenly", "spiritual realm", "divine authority"}, []string{"Colossians 3:1-2", "Philippians 3:14"}},
	{"down/below", []string{"earthly", "human realm", "submission"}, nil},
	{"right", []string{"authority", "favor", "strength"}, nil},
	{"left", []string{"weakness", "judgment"}, nil},
	{"east", []string{"God's glory", "Christ's coming"}, []string{"Matthew 24:27", "Ezekiel 43:2"}},
	{"west", []string{"completion", "ending"}, nil},
	{"north", []string{"judgment", "darkness"}, []string{"Job 26:7", "Psalm 48:2"}},
	{"south", []string{"blessing", "warmth"}, []string{"Song of Solomon 4:16", "Luke 13:29"}},
}
