package tagger

import (
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"
)

// KagomeTagger tags Japanese text with the IPA dictionary.
type KagomeTagger struct {
	t *tokenizer.Tokenizer
}

// NewKagomeTagger creates a new tokenizer instance.
func NewKagomeTagger() (*KagomeTagger, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, err
	}
	return &KagomeTagger{t: t}, nil
}

// Tag breaks text into tokens with classes and base forms.
func (k *KagomeTagger) Tag(text string) ([]Token, error) {
	tokens := k.t.Tokenize(text)
	var result []Token

	for _, token := range tokens {
		if token.Class == tokenizer.DUMMY {
			continue
		}
		if strings.TrimSpace(token.Surface) == "" {
			continue
		}

		// IPA features: 0 POS, 1-3 sub-POS, 4-5 conjugation, 6 base form, 7-8 reading.
		features := token.Features()

		root := token.Surface
		if len(features) > 6 && features[6] != "*" {
			root = features[6]
		}

		class := ipaClass(features)
		if class == Other && len(features) > 0 && features[0] == "記号" {
			continue
		}

		result = append(result, Token{
			Surface:  token.Surface,
			Root:     root,
			Class:    class,
			Synonyms: lookupSynonyms(root, token.Surface),
		})
	}

	return result, nil
}

func ipaClass(features []string) Class {
	if len(features) == 0 {
		return Other
	}
	switch features[0] {
	case "名詞":
		if len(features) > 1 && features[1] == "固有名詞" {
			return ProperNoun
		}
		// 数 (numerals) are handled by the number detector, not as entities.
		if len(features) > 1 && features[1] == "数" {
			return Other
		}
		return Noun
	case "動詞":
		return Verb
	case "形容詞":
		return Adjective
	case "副詞":
		return Adverb
	}
	return Other
}
