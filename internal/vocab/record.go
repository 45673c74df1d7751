// Package vocab defines the vocabulary record flowing through the enrichment
// pipeline.
package vocab

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed marks input records missing their required fields.
var ErrMalformed = errors.New("malformed vocabulary record")

// Record is one vocabulary item. The first three fields come from ingestion;
// everything else is filled by enrichment. Unfilled fields stay empty
// strings, never absent.
type Record struct {
	Word    string `json:"word"`
	Reading string `json:"reading"`
	Meaning string `json:"meaning"`

	Romaji         string `json:"romaji,omitempty"`
	MeaningEN      string `json:"meaning_en,omitempty"`
	PartOfSpeech   string `json:"part_of_speech,omitempty"`
	Furigana       string `json:"furigana,omitempty"`
	PitchPattern   string `json:"pitch_pattern,omitempty"`
	PitchSVG       string `json:"pitch_svg,omitempty"`
	StrokeSVG      string `json:"stroke_svg,omitempty"`
	AudioFile      string `json:"audio_file,omitempty"`
	Examples       string `json:"examples,omitempty"`
	RadicalInfo    string `json:"radical_info,omitempty"`
	FrequencyInfo  string `json:"frequency_info,omitempty"`
	HanViet        string `json:"han_viet,omitempty"`
	KanjiKun       string `json:"kanji_kun,omitempty"`
	KanjiOn        string `json:"kanji_on,omitempty"`
	KanjiMeanings  string `json:"kanji_meanings,omitempty"`
	JLPTLevel      string `json:"jlpt_level,omitempty"`
	Conjugations   string `json:"conjugations,omitempty"`
	Synonyms       string `json:"synonyms,omitempty"`
	Antonyms       string `json:"antonyms,omitempty"`
	Chapter        string `json:"chapter,omitempty"`
}

// Validate checks the fields ingestion must supply.
func (r *Record) Validate() error {
	if strings.TrimSpace(r.Word) == "" {
		return fmt.Errorf("%w: missing word", ErrMalformed)
	}
	if strings.TrimSpace(r.Reading) == "" {
		return fmt.Errorf("%w: missing reading for %q", ErrMalformed, r.Word)
	}
	if strings.TrimSpace(r.Meaning) == "" {
		return fmt.Errorf("%w: missing meaning for %q", ErrMalformed, r.Word)
	}
	return nil
}

// Key identifies a record across runs for checkpointing. Two records with the
// same word, reading and base meaning are the same item.
func (r *Record) Key() string {
	return r.Word + "::" + r.Reading + "::" + r.Meaning
}

// Tags returns the record's filter tags: its chapter and JLPT level when
// present.
func (r *Record) Tags() []string {
	var tags []string
	if r.Chapter != "" {
		tags = append(tags, sanitizeTag(r.Chapter))
	}
	if r.JLPTLevel != "" {
		tags = append(tags, r.JLPTLevel)
	}
	return tags
}

func sanitizeTag(tag string) string {
	return strings.ReplaceAll(strings.TrimSpace(tag), " ", "_")
}
