// Package export writes enriched records as tab-separated deck files.
package export

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"kotoba/internal/vocab"
)

// columns is the fixed field order consumers import against. Changing it
// breaks existing note type mappings.
var columns = []string{
	"word",
	"reading",
	"romaji",
	"meaning",
	"meaning_en",
	"pitch_pattern",
	"pitch_svg",
	"stroke_svg",
	"audio",
	"examples",
	"radical_info",
	"frequency_info",
	"han_viet",
	"kanji_kun",
	"kanji_on",
	"kanji_meanings",
	"jlpt_level",
	"part_of_speech",
	"furigana",
	"conjugations",
	"synonyms",
	"antonyms",
	"tags",
}

// Columns returns the exported field order.
func Columns() []string {
	out := make([]string, len(columns))
	copy(out, columns)
	return out
}

// AudioRef formats an audio file path as the sound reference deck importers
// expect, or "" for no audio.
func AudioRef(audioFile string) string {
	if audioFile == "" {
		return ""
	}
	return "[sound:" + filepath.Base(audioFile) + "]"
}

func fieldValues(r *vocab.Record) []string {
	return []string{
		r.Word,
		r.Reading,
		r.Romaji,
		r.Meaning,
		r.MeaningEN,
		r.PitchPattern,
		r.PitchSVG,
		r.StrokeSVG,
		AudioRef(r.AudioFile),
		r.Examples,
		r.RadicalInfo,
		r.FrequencyInfo,
		r.HanViet,
		r.KanjiKun,
		r.KanjiOn,
		r.KanjiMeanings,
		r.JLPTLevel,
		r.PartOfSpeech,
		r.Furigana,
		r.Conjugations,
		r.Synonyms,
		r.Antonyms,
		strings.Join(r.Tags(), " "),
	}
}

// sanitize keeps multi-line markup on one row. Tabs and newlines are the
// format's structure, so values carry <br> instead.
func sanitize(value string) string {
	value = strings.ReplaceAll(value, "\t", " ")
	value = strings.ReplaceAll(value, "\r\n", "<br>")
	value = strings.ReplaceAll(value, "\n", "<br>")
	return value
}

// WriteTSV writes the header row and one row per record. Every column is
// present in every row; missing data is an empty cell, never a dropped one.
func WriteTSV(w io.Writer, records []vocab.Record) error {
	if _, err := fmt.Fprintln(w, strings.Join(columns, "\t")); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return writeRows(w, records)
}

func writeRows(w io.Writer, records []vocab.Record) error {
	for i := range records {
		values := fieldValues(&records[i])
		for j, v := range values {
			values[j] = sanitize(v)
		}
		if _, err := fmt.Fprintln(w, strings.Join(values, "\t")); err != nil {
			return fmt.Errorf("write record %q: %w", records[i].Word, err)
		}
	}
	return nil
}

// AppendFile adds records to an existing deck so resumed runs extend the rows
// written before the interruption. A new or empty file gets the header first.
func AppendFile(path string, records []vocab.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open deck file: %w", err)
	}

	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat deck file: %w", err)
	}
	if info.Size() == 0 {
		if _, err := fmt.Fprintln(f, strings.Join(columns, "\t")); err != nil {
			_ = f.Close()
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := writeRows(f, records); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close deck file: %w", err)
	}
	return nil
}

// WriteFile writes the deck atomically to path.
func WriteFile(path string, records []vocab.Record) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure output directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create deck file: %w", err)
	}

	if err := WriteTSV(f, records); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close deck file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalize deck file: %w", err)
	}
	return nil
}
