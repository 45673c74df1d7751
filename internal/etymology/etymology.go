// Package etymology provides bundled Sino-Vietnamese (Hán Việt) readings for
// kanji. The readings trace each character back to its shared Chinese root,
// which Vietnamese-speaking learners use as a memory anchor.
package etymology

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed hanviet.json
var hanvietJSON []byte

// DB answers Hán Việt lookups from the bundled table.
type DB struct {
	readings map[string]string
}

// Load parses the embedded table.
func Load() (*DB, error) {
	db := &DB{}
	if err := json.Unmarshal(hanvietJSON, &db.readings); err != nil {
		return nil, fmt.Errorf("parse hanviet table: %w", err)
	}
	return db, nil
}

// Kanji returns the Hán Việt reading for a single kanji.
func (db *DB) Kanji(kanji string) (string, bool) {
	reading, ok := db.readings[kanji]
	return reading, ok
}

// Reading joins the per-character readings for every listed kanji in word, in
// order, separated by spaces. Characters without an entry are skipped; words
// with no listed kanji yield "".
func (db *DB) Reading(word string) string {
	var parts []string
	for _, r := range word {
		if reading, ok := db.readings[string(r)]; ok {
			parts = append(parts, reading)
		}
	}
	return strings.Join(parts, " ")
}
