package furigana

import (
	"fmt"
	"strings"

	"github.com/ikawaha/kagome-dict/ipa"
	"github.com/ikawaha/kagome/v2/tokenizer"

	"kotoba/internal/jptext"
)

// ipaReadingIndex is the IPA dictionary feature slot holding the katakana
// reading of a token.
const ipaReadingIndex = 7

// Segment is one tokenized slice of text with its hiragana reading.
type Segment struct {
	Surface string
	Reading string
}

// Transliterator recovers hiragana readings with a morphological analyzer.
// It implements ReadingProvider.
type Transliterator struct {
	t *tokenizer.Tokenizer
}

// NewTransliterator builds a transliterator over the bundled IPA dictionary.
func NewTransliterator() (*Transliterator, error) {
	t, err := tokenizer.New(ipa.Dict(), tokenizer.OmitBosEos())
	if err != nil {
		return nil, fmt.Errorf("initialize tokenizer: %w", err)
	}
	return &Transliterator{t: t}, nil
}

// Reading returns the full hiragana reading of text, concatenated across
// tokens. Tokens the dictionary cannot read contribute their surface form.
func (tr *Transliterator) Reading(text string) (string, bool) {
	var b strings.Builder
	for _, seg := range tr.Segments(text) {
		b.WriteString(seg.Reading)
	}
	reading := b.String()
	return reading, reading != ""
}

// Segments tokenizes text and pairs each surface with its hiragana reading.
func (tr *Transliterator) Segments(text string) []Segment {
	var segments []Segment
	for _, token := range tr.t.Tokenize(text) {
		if token.Class == tokenizer.DUMMY || strings.TrimSpace(token.Surface) == "" {
			continue
		}
		reading := token.Surface
		if features := token.Features(); len(features) > ipaReadingIndex && features[ipaReadingIndex] != "*" {
			reading = features[ipaReadingIndex]
		}
		segments = append(segments, Segment{
			Surface: token.Surface,
			Reading: jptext.FoldKatakana(reading),
		})
	}
	return segments
}

// AnnotateSentence adds ruby markup to every kanji-bearing token of a
// sentence, leaving the rest verbatim.
func (tr *Transliterator) AnnotateSentence(sentence string) string {
	if sentence == "" {
		return sentence
	}
	var b strings.Builder
	for _, seg := range tr.Segments(sentence) {
		if jptext.HasKanji(seg.Surface) && seg.Surface != seg.Reading && seg.Reading != "" {
			b.WriteString(wrapRuby(seg.Surface, seg.Reading))
		} else {
			b.WriteString(seg.Surface)
		}
	}
	if b.Len() == 0 {
		return sentence
	}
	return b.String()
}
