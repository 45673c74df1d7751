// Package ingest reads raw vocabulary documents from disk.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"

	"kotoba/internal/vocab"
)

// Chapter groups raw records under their source chapter label.
type Chapter struct {
	Name  string         `json:"name"`
	Words []vocab.Record `json:"words"`
}

// Document is one vocabulary input file.
type Document struct {
	Title    string    `json:"title"`
	Chapters []Chapter `json:"chapters"`
}

// Records flattens the document into a single ordered list, stamping each
// record with its chapter label.
func (d *Document) Records() []vocab.Record {
	var records []vocab.Record
	for _, chapter := range d.Chapters {
		for _, record := range chapter.Words {
			record.Chapter = chapter.Name
			records = append(records, record)
		}
	}
	return records
}

// Count returns the total number of records across chapters.
func (d *Document) Count() int {
	total := 0
	for _, chapter := range d.Chapters {
		total += len(chapter.Words)
	}
	return total
}

// ReadFile parses a vocabulary document. Two layouts are accepted: the full
// chaptered document, and a bare JSON array of records which becomes one
// unnamed chapter.
func ReadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Chapters) > 0 {
		return &doc, nil
	}

	var flat []vocab.Record
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("parse vocabulary file %s: %w", path, err)
	}
	return &Document{Chapters: []Chapter{{Words: flat}}}, nil
}
