// Package frequency provides bundled kanji usage ranks and JLPT level
// lookups.
package frequency

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"kotoba/internal/jptext"
)

//go:embed kanji_frequency.json
var kanjiFrequencyJSON []byte

//go:embed jlpt.json
var jlptJSON []byte

// KanjiInfo is the usage data for one kanji.
type KanjiInfo struct {
	Rank int    `json:"rank"`
	Tier string `json:"tier"`
}

// DB answers frequency and level lookups from the bundled tables.
type DB struct {
	kanji map[string]KanjiInfo
	jlpt  map[string]string
}

// Load parses the embedded tables.
func Load() (*DB, error) {
	db := &DB{}
	if err := json.Unmarshal(kanjiFrequencyJSON, &db.kanji); err != nil {
		return nil, fmt.Errorf("parse kanji frequency table: %w", err)
	}
	if err := json.Unmarshal(jlptJSON, &db.jlpt); err != nil {
		return nil, fmt.Errorf("parse jlpt table: %w", err)
	}
	return db, nil
}

// Kanji returns the usage data for a single kanji.
func (db *DB) Kanji(kanji string) (KanjiInfo, bool) {
	info, ok := db.kanji[kanji]
	return info, ok
}

// Level returns the JLPT level for a word, trying the reading when the word
// itself is unlisted. Unknown words return "".
func (db *DB) Level(word, reading string) string {
	if level, ok := db.jlpt[word]; ok {
		return level
	}
	return db.jlpt[reading]
}

// Summary renders the per-kanji frequency markup for every kanji in word, in
// order, one span per known kanji. Words with no known kanji yield "".
func (db *DB) Summary(word string) string {
	var parts []string
	for _, r := range word {
		if !jptext.IsKanji(r) {
			continue
		}
		kanji := string(r)
		info, ok := db.kanji[kanji]
		if !ok {
			continue
		}
		parts = append(parts, fmt.Sprintf(`<span class="freq-%s">%s [%s #%d]</span>`,
			info.Tier, kanji, info.Tier, info.Rank))
	}
	return strings.Join(parts, " ")
}
