// Package conjugate derives the standard inflection forms of Japanese verbs.
package conjugate

import "strings"

// Type classifies how a word conjugates.
type Type string

const (
	// TypeIchidan verbs drop る and take suffixes directly.
	TypeIchidan Type = "ichidan"
	// TypeGodan verbs shift their terminal mora by row.
	TypeGodan Type = "godan"
	// TypeSuru marks する and noun+する compounds.
	TypeSuru Type = "suru"
	// TypeIrregular marks verbs conjugated from a literal table.
	TypeIrregular Type = "irregular"
	// TypeNotVerb marks everything else.
	TypeNotVerb Type = "not_verb"
)

// Forms is the fixed five-form conjugation set. The zero value means "not a
// verb"; forms are always all present or all empty, never partial.
type Forms struct {
	Polite    string
	Te        string
	Past      string
	Negative  string
	Potential string
}

// Empty reports whether no forms were generated.
func (f Forms) Empty() bool { return f == Forms{} }

var verbMarkers = []string{"verb", "動詞"}
var ichidanMarkers = []string{"ichidan", "一段"}
var godanMarkers = []string{"godan", "五段"}

func hintContains(hint string, markers []string) bool {
	lower := strings.ToLower(hint)
	for _, m := range markers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// DetectType classifies word, using posHint (a part-of-speech label from
// dictionary metadata) when available. An empty hint means unknown, not
// non-verb. The terminal る heuristic defaults ambiguous e/i-row verbs to
// ichidan; that guess is wrong for a known minority of godan verbs and is
// accepted as the better default.
func DetectType(word, posHint string) Type {
	if posHint != "" && !hintContains(posHint, verbMarkers) {
		return TypeNotVerb
	}

	if word == "" {
		return TypeNotVerb
	}
	if _, ok := irregulars[word]; ok {
		if word == "する" {
			return TypeSuru
		}
		return TypeIrregular
	}
	if strings.HasSuffix(word, "する") {
		return TypeSuru
	}

	if hintContains(posHint, ichidanMarkers) {
		return TypeIchidan
	}
	if hintContains(posHint, godanMarkers) {
		return TypeGodan
	}

	if commonIchidan[word] {
		return TypeIchidan
	}

	runes := []rune(word)
	last := runes[len(runes)-1]

	if last == 'る' && len(runes) >= 2 {
		prev := runes[len(runes)-2]
		if strings.ContainsRune(eRow, prev) || strings.ContainsRune(iRow, prev) {
			return TypeIchidan
		}
	}

	if _, ok := godanEndings[last]; ok {
		return TypeGodan
	}
	return TypeNotVerb
}

// Conjugate generates the five-form set for word, or the empty set when word
// does not conjugate.
func Conjugate(word, posHint string) Forms {
	switch DetectType(word, posHint) {
	case TypeNotVerb:
		return Forms{}
	case TypeIrregular, TypeSuru:
		if forms, ok := irregulars[word]; ok {
			return forms
		}
		if strings.HasSuffix(word, "する") {
			stem := strings.TrimSuffix(word, "する")
			return Forms{
				Polite:    stem + "します",
				Te:        stem + "して",
				Past:      stem + "した",
				Negative:  stem + "しない",
				Potential: stem + "できる",
			}
		}
		return Forms{}
	case TypeIchidan:
		runes := []rune(word)
		stem := string(runes[:len(runes)-1])
		return Forms{
			Polite:    stem + "ます",
			Te:        stem + "て",
			Past:      stem + "た",
			Negative:  stem + "ない",
			Potential: stem + "られる",
		}
	case TypeGodan:
		runes := []rune(word)
		last := runes[len(runes)-1]
		endings, ok := godanEndings[last]
		if !ok {
			return Forms{}
		}
		stem := string(runes[:len(runes)-1])
		return Forms{
			Polite:    stem + endings.Polite,
			Te:        stem + endings.Te,
			Past:      stem + endings.Past,
			Negative:  stem + endings.Negative,
			Potential: stem + endings.Potential,
		}
	}
	return Forms{}
}
