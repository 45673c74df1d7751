// Package furigana aligns phonetic readings onto mixed kanji/kana words and
// emits HTML ruby markup.
package furigana

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"kotoba/internal/jptext"
	"kotoba/internal/logging"
)

// ReadingProvider recovers a full hiragana reading for arbitrary Japanese
// text. It backs the aligner's fallback when a supplied reading is missing or
// incomplete.
type ReadingProvider interface {
	Reading(text string) (string, bool)
}

// Aligner produces per-run ruby annotations for vocabulary words.
type Aligner struct {
	provider ReadingProvider
	logger   *slog.Logger
}

// Option configures an Aligner.
type Option func(*Aligner)

// WithLogger sets the logger used for alignment fallback notices.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Aligner) { a.logger = logger }
}

// NewAligner creates an aligner. provider may be nil, in which case readings
// are never recomputed and invalid input degrades to whole-word annotation.
func NewAligner(provider ReadingProvider, opts ...Option) *Aligner {
	a := &Aligner{provider: provider, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = logging.NewComponentLogger(a.logger, "furigana")
	return a
}

// Annotate maps reading onto word and returns ruby markup. Words without
// kanji pass through unchanged. Kanji runs are paired with their slice of the
// reading; kana runs appear verbatim outside the ruby elements. When per-run
// alignment is impossible the whole word is wrapped with the whole reading.
func (a *Aligner) Annotate(word, reading string) string {
	if !jptext.HasKanji(word) {
		return word
	}

	reading = a.validateReading(word, reading)
	if word == reading {
		return word
	}
	if reading == "" {
		recovered, ok := a.fullReading(word)
		if !ok {
			return word
		}
		reading = recovered
	}

	runs := jptext.SegmentRuns(word)
	if len(runs) == 1 && runs[0].Kanji {
		return wrapRuby(word, reading)
	}

	annotated, ok := alignRuns(runs, reading)
	if !ok {
		a.logger.Debug("per-run alignment failed, wrapping whole word",
			logging.String(logging.FieldWord, word))
		return wrapRuby(word, reading)
	}
	return annotated
}

// alignRuns walks the word's runs with a cursor into the reading. Each kana
// run is located in the normalized reading; the slice between the cursor and
// the match belongs to the kanji run(s) before it.
func alignRuns(runs []jptext.Run, reading string) (string, bool) {
	readingRunes := []rune(reading)
	norm := []rune(jptext.FoldKatakana(reading))

	var b strings.Builder
	cursor := 0
	pendingKanji := ""

	for _, run := range runs {
		if run.Kanji {
			pendingKanji += run.Text
			continue
		}

		normRun := []rune(jptext.FoldKatakana(run.Text))
		pos := indexRunes(norm, normRun, cursor)
		if pos < 0 {
			return "", false
		}
		if pendingKanji != "" {
			if pos == cursor {
				// A kanji run with no reading slice means the
				// alignment is wrong somewhere.
				return "", false
			}
			b.WriteString(wrapRuby(pendingKanji, string(readingRunes[cursor:pos])))
			pendingKanji = ""
		}
		b.WriteString(run.Text)
		cursor = pos + len(normRun)
	}

	if pendingKanji != "" {
		if cursor >= len(readingRunes) {
			return "", false
		}
		b.WriteString(wrapRuby(pendingKanji, string(readingRunes[cursor:])))
	}
	return b.String(), true
}

// validateReading checks the reading against the word's shape and recomputes
// it when it is clearly incomplete. A reading is kept when every kana run of
// the word appears, in order, inside its normalized form and it is long
// enough to cover one character per kanji plus the word's literal kana.
func (a *Aligner) validateReading(word, reading string) string {
	if word == "" || reading == "" {
		return reading
	}
	kanjiCount := jptext.CountKanji(word)
	if kanjiCount == 0 {
		return reading
	}

	norm := []rune(jptext.FoldKatakana(reading))
	kanaLen := 0
	cursor := 0
	complete := true
	for _, run := range jptext.SegmentRuns(word) {
		if run.Kanji {
			continue
		}
		normRun := []rune(jptext.FoldKatakana(run.Text))
		kanaLen += len(normRun)
		if !complete {
			continue
		}
		pos := indexRunes(norm, normRun, cursor)
		if pos < 0 {
			complete = false
			continue
		}
		cursor = pos + len(normRun)
	}

	if complete && len(norm) >= kanjiCount+kanaLen {
		return reading
	}

	full, ok := a.fullReading(word)
	if !ok || utf8.RuneCountInString(full) <= len(norm) {
		return reading
	}

	// Loanword transcriptions keep their original katakana; splice the
	// leading katakana run back over the recovered reading.
	if prefix := jptext.KatakanaPrefix(word); prefix != "" {
		prefixLen := utf8.RuneCountInString(prefix)
		fullRunes := []rune(full)
		if prefixLen >= len(fullRunes) {
			return prefix
		}
		return prefix + string(fullRunes[prefixLen:])
	}
	return full
}

func (a *Aligner) fullReading(word string) (string, bool) {
	if a.provider == nil {
		return "", false
	}
	return a.provider.Reading(word)
}

func wrapRuby(base, reading string) string {
	return fmt.Sprintf("<ruby>%s<rt>%s</rt></ruby>", base, reading)
}

// indexRunes finds needle in haystack at or after start, returning the rune
// index or -1.
func indexRunes(haystack, needle []rune, start int) int {
	if len(needle) == 0 || start < 0 {
		return -1
	}
	for i := start; i+len(needle) <= len(haystack); i++ {
		match := true
		for j := range needle {
			if haystack[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
