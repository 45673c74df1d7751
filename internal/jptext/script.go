package jptext

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// IsKanji reports whether r is a CJK ideograph usable in Japanese words.
// The iteration mark 々 counts as kanji because it stands in for one.
func IsKanji(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) || r == '々'
}

// IsHiragana reports whether r falls in the hiragana block.
func IsHiragana(r rune) bool {
	return r >= 0x3040 && r <= 0x309F
}

// IsKatakana reports whether r falls in the katakana block, including the
// long vowel mark ー.
func IsKatakana(r rune) bool {
	return r >= 0x30A0 && r <= 0x30FF
}

// IsKana reports whether r is hiragana or katakana.
func IsKana(r rune) bool {
	return IsHiragana(r) || IsKatakana(r)
}

// IsJapanese reports whether r belongs to any Japanese script.
func IsJapanese(r rune) bool {
	return IsKanji(r) || IsKana(r)
}

// HasKanji reports whether s contains at least one kanji.
func HasKanji(s string) bool {
	for _, r := range s {
		if IsKanji(r) {
			return true
		}
	}
	return false
}

// CountKanji returns the number of kanji runes in s.
func CountKanji(s string) int {
	n := 0
	for _, r := range s {
		if IsKanji(r) {
			n++
		}
	}
	return n
}

// Kanji returns the kanji runes of s in order.
func Kanji(s string) []rune {
	var out []rune
	for _, r := range s {
		if IsKanji(r) {
			out = append(out, r)
		}
	}
	return out
}

// FoldKatakana converts katakana runes to their hiragana equivalents so that
// readings can be compared regardless of source script. The long vowel mark
// and anything outside the katakana block pass through unchanged.
func FoldKatakana(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= 0x30A1 && r <= 0x30F6 {
			r -= 0x60
		}
		b.WriteRune(r)
	}
	return b.String()
}

// NormalizeNFKC applies compatibility normalization. CJK compatibility
// ideographs (common in decomposition data) fold to their canonical forms.
func NormalizeNFKC(s string) string {
	return norm.NFKC.String(s)
}

// StripNonJapanese keeps only Japanese-script runes of s. Ingested source
// text frequently mixes annotations into the word column; everything that is
// not kanji or kana is dropped.
func StripNonJapanese(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if IsJapanese(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Run is a maximal same-script segment of a word.
type Run struct {
	Text  string
	Kanji bool
}

// SegmentRuns splits word into maximal runs of kanji and non-kanji text,
// preserving order. An empty word yields no runs.
func SegmentRuns(word string) []Run {
	var runs []Run
	var current strings.Builder
	currentKanji := false
	started := false

	for _, r := range word {
		k := IsKanji(r)
		if !started {
			started = true
			currentKanji = k
		} else if k != currentKanji {
			runs = append(runs, Run{Text: current.String(), Kanji: currentKanji})
			current.Reset()
			currentKanji = k
		}
		current.WriteRune(r)
	}
	if current.Len() > 0 {
		runs = append(runs, Run{Text: current.String(), Kanji: currentKanji})
	}
	return runs
}

// KatakanaPrefix returns the leading katakana run of word, including long
// vowel marks. Loanword transcriptions keep this prefix verbatim when a
// recovered reading replaces an invalid one.
func KatakanaPrefix(word string) string {
	var b strings.Builder
	for _, r := range word {
		if IsKatakana(r) {
			b.WriteRune(r)
			continue
		}
		break
	}
	return b.String()
}
