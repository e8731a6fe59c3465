package tagger

import (
	"strings"
	"unicode"

	"github.com/jdkato/prose/v2"
	"github.com/kljensen/snowball/english"
)

// ProseTagger tags English text with prose's averaged perceptron tagger.
// The model is loaded once and shared by every Tag call.
type ProseTagger struct {
	model *prose.Model
}

// NewProseTagger creates an English tagger.
func NewProseTagger() *ProseTagger {
	p := &ProseTagger{}
	doc, err := prose.NewDocument("",
		prose.WithSegmentation(false),
		prose.WithExtraction(false))
	if err == nil {
		p.model = doc.Model
	}
	return p
}

// Tag tokenizes and tags text. Punctuation tokens are dropped.
func (p *ProseTagger) Tag(text string) ([]Token, error) {
	opts := []prose.DocOpt{
		prose.WithSegmentation(false),
		prose.WithExtraction(false),
	}
	if p.model != nil {
		opts = append(opts, prose.UsingModel(p.model))
	}
	doc, err := prose.NewDocument(text, opts...)
	if err != nil {
		return nil, err
	}

	var result []Token
	for _, tok := range doc.Tokens() {
		if !hasLetterOrDigit(tok.Text) {
			continue
		}
		class := pennClass(tok.Tag)
		root := rootForm(tok.Text, tok.Tag, class)
		result = append(result, Token{
			Surface:  tok.Text,
			Root:     root,
			Class:    class,
			Synonyms: lookupSynonyms(root, tok.Text),
		})
	}
	return result, nil
}

// pennClass maps a Penn Treebank tag onto a coarse class.
func pennClass(tag string) Class {
	switch {
	case strings.HasPrefix(tag, "NNP"):
		return ProperNoun
	case strings.HasPrefix(tag, "NN"):
		return Noun
	case strings.HasPrefix(tag, "VB"):
		return Verb
	case strings.HasPrefix(tag, "JJ"):
		return Adjective
	case strings.HasPrefix(tag, "RB"):
		return Adverb
	}
	return Other
}

// rootForm returns the dictionary form of an English word: irregular
// tables first, then the regular inflection rules for the Penn tag.
func rootForm(surface, tag string, class Class) string {
	lower := strings.ToLower(surface)
	switch class {
	case Verb:
		if base, ok := irregularVerbs[lower]; ok {
			return base
		}
		return verbLemma(lower, tag)
	case Noun:
		if tag == "NNS" {
			if base, ok := irregularPlurals[lower]; ok {
				return base
			}
			return singular(lower)
		}
	}
	return lower
}

func verbLemma(w, tag string) string {
	n := len(w)
	switch tag {
	case "VBZ":
		return singular(w)
	case "VBD", "VBN":
		switch {
		case n > 4 && strings.HasSuffix(w, "ied"):
			return w[:n-3] + "y"
		case strings.HasSuffix(w, "eed"):
			return w[:n-1]
		case n > 3 && strings.HasSuffix(w, "ed"):
			return restoreStem(w[:n-2])
		}
	case "VBG":
		if n > 4 && strings.HasSuffix(w, "ing") {
			return restoreStem(w[:n-3])
		}
	}
	return w
}

// restoreStem undoes the spelling changes made when -ed or -ing was added:
// a doubled final consonant ("stopp") or a dropped final e ("chas").
func restoreStem(s string) string {
	n := len(s)
	if n >= 3 && s[n-1] == s[n-2] && isConsonant(s[n-1]) && !strings.ContainsRune("lsfz", rune(s[n-1])) {
		return s[:n-1]
	}
	if needsFinalE(s) {
		return s + "e"
	}
	return s
}

func needsFinalE(s string) bool {
	n := len(s)
	if n < 2 {
		return false
	}
	last, prev := s[n-1], s[n-2]
	switch {
	case last == 'c' || last == 'u' || last == 'v':
		return true
	case last == 'z':
		return prev != 'z'
	case last == 's':
		return !isConsonant(prev) && prev != 's'
	case strings.HasSuffix(s, "dg") || strings.HasSuffix(s, "rg"):
		return true
	case n >= 5 && strings.HasSuffix(s, "at") && isConsonant(s[n-3]):
		return true
	}
	// Short consonant-vowel-consonant stems: "hop", "smil", "star".
	if n >= 3 && n <= 4 && vowelCount(s) == 1 &&
		isConsonant(last) && !strings.ContainsRune("wxy", rune(last)) &&
		!isConsonant(prev) && isConsonant(s[n-3]) {
		return true
	}
	return false
}

// singular strips a regular plural or third-person -s.
func singular(w string) string {
	n := len(w)
	switch {
	case n > 4 && strings.HasSuffix(w, "ies"):
		return w[:n-3] + "y"
	case strings.HasSuffix(w, "sses"), strings.HasSuffix(w, "shes"),
		strings.HasSuffix(w, "ches"), strings.HasSuffix(w, "xes"),
		strings.HasSuffix(w, "zzes"):
		return w[:n-2]
	case strings.HasSuffix(w, "ss"), strings.HasSuffix(w, "us"), strings.HasSuffix(w, "is"):
		return w
	case n > 2 && strings.HasSuffix(w, "s"):
		return w[:n-1]
	}
	return w
}

func isConsonant(b byte) bool {
	return b >= 'a' && b <= 'z' && !strings.ContainsRune("aeiou", rune(b))
}

func vowelCount(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if strings.ContainsRune("aeiou", rune(s[i])) {
			n++
		}
	}
	return n
}

// Stem returns the Snowball stem of an English word, lowercased. Words
// containing anything but ASCII letters are only lowercased.
func Stem(word string) string {
	lower := strings.ToLower(strings.TrimSpace(word))
	for i := 0; i < len(lower); i++ {
		if lower[i] < 'a' || lower[i] > 'z' {
			return lower
		}
	}
	return english.Stem(lower, false)
}

func hasLetterOrDigit(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

var irregularVerbs = map[string]string{
	"am":       "be",
	"is":       "be",
	"are":      "be",
	"was":      "be",
	"were":     "be",
	"been":     "be",
	"saw":      "see",
	"seen":     "see",
	"ran":      "run",
	"outran":   "outrun",
	"flew":     "fly",
	"flown":    "fly",
	"fell":     "fall",
	"fallen":   "fall",
	"fought":   "fight",
	"came":     "come",
	"went":     "go",
	"gone":     "go",
	"gave":     "give",
	"given":    "give",
	"took":     "take",
	"taken":    "take",
	"ate":      "eat",
	"eaten":    "eat",
	"drank":    "drink",
	"drunk":    "drink",
	"rose":     "rise",
	"risen":    "rise",
	"spoke":    "speak",
	"spoken":   "speak",
	"heard":    "hear",
	"felt":     "feel",
	"fled":     "flee",
	"held":     "hold",
	"led":      "lead",
	"stood":    "stand",
	"sat":      "sit",
	"found":    "find",
	"told":     "tell",
	"brought":  "bring",
	"built":    "build",
	"caught":   "catch",
	"swam":     "swim",
	"sang":     "sing",
	"began":    "begin",
	"broke":    "break",
	"broken":   "break",
	"hid":      "hide",
	"hidden":   "hide",
	"knew":     "know",
	"known":    "know",
	"shone":    "shine",
	"woke":     "wake",
	"wept":     "weep",
	"had":      "have",
	"has":      "have",
	"did":      "do",
	"does":     "do",
	"done":     "do",
	"made":     "make",
	"goes":     "go",
	"died":     "die",
	"dying":    "die",
	"lied":     "lie",
	"lying":    "lie",
	"tied":     "tie",
	"added":    "add",
	"created":  "create",
	"panicked": "panic",
}

var irregularPlurals = map[string]string{
	"wolves":   "wolf",
	"sheep":    "sheep",
	"mice":     "mouse",
	"geese":    "goose",
	"children": "child",
	"men":      "man",
	"women":    "woman",
	"people":   "person",
	"teeth":    "tooth",
	"feet":     "foot",
	"oxen":     "ox",
	"leaves":   "leaf",
	"knives":   "knife",
	"loaves":   "loaf",
	"fish":     "fish",
	"cattle":   "cattle",
}
