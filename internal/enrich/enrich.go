// Package enrich runs vocabulary records through the full annotation
// pipeline: dictionary metadata, per-kanji data, radicals, frequency,
// furigana, conjugation, example sentences, pitch accent, stroke diagrams and
// audio.
package enrich

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"kotoba/internal/conjugate"
	"kotoba/internal/dictionary"
	"kotoba/internal/etymology"
	"kotoba/internal/frequency"
	"kotoba/internal/furigana"
	"kotoba/internal/jptext"
	"kotoba/internal/kanjidata"
	"kotoba/internal/logging"
	"kotoba/internal/pitch"
	"kotoba/internal/radical"
	"kotoba/internal/resolve"
	"kotoba/internal/sentences"
	"kotoba/internal/services"
	"kotoba/internal/speech"
	"kotoba/internal/strokes"
	"kotoba/internal/vocab"
)

// Cache namespaces for the resolver-backed enrichment steps.
const (
	sourceDictionary = "dictionary"
	sourceKanji      = "kanji"
	sourceStrokes    = "strokes"
	sourceSentences  = "sentences"
)

// Clients bundles the external services the pipeline can draw from. Any of
// them may be nil; the matching enrichment step then runs cache-only.
type Clients struct {
	Dictionary *dictionary.Client
	Kanji      *kanjidata.Client
	Strokes    *strokes.Client
	Sentences  *sentences.Client
	Speech     *speech.Client
}

// Options controls pipeline behaviour.
type Options struct {
	// Offline disables all live fetching; cached and curated data still
	// applies.
	Offline bool
	// RateDelay is the pause inserted after a record that performed at least
	// one live fetch. Cache-served records are never delayed.
	RateDelay time.Duration

	English        bool
	Pitch          bool
	StrokeDiagrams bool
	Examples       bool
	Audio          bool

	// SentenceLimit caps examples per record. Zero means the client default.
	SentenceLimit int
	// AudioDir is where synthesized audio files land.
	AudioDir string
}

// Summary reports what a run did.
type Summary struct {
	Total     int
	Enriched  int
	Skipped   int
	Malformed int
	// Fetched counts records that performed at least one live fetch.
	Fetched int
}

// Enricher wires the annotation components together and applies them to
// records in a fixed order. Dictionary metadata runs first because later
// steps depend on the corrected reading and part of speech.
type Enricher struct {
	clients Clients
	opts    Options

	dictionaryRes *resolve.Resolver
	kanjiRes      *resolve.Resolver
	strokesRes    *resolve.Resolver
	sentencesRes  *resolve.Resolver
	classifier    *pitch.Classifier
	decomposer    *radical.Decomposer
	aligner       *furigana.Aligner
	translit      *furigana.Transliterator
	freq          *frequency.DB
	ety           *etymology.DB

	logger *slog.Logger
}

// New builds an enricher over store with the given service clients.
func New(store *resolve.Store, clients Clients, opts Options, logger *slog.Logger) (*Enricher, error) {
	if logger == nil {
		logger = logging.NewNop()
	}

	catalog, err := radical.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("load radical catalog: %w", err)
	}
	freq, err := frequency.Load()
	if err != nil {
		return nil, fmt.Errorf("load frequency tables: %w", err)
	}
	ety, err := etymology.Load()
	if err != nil {
		return nil, fmt.Errorf("load hanviet table: %w", err)
	}
	translit, err := furigana.NewTransliterator()
	if err != nil {
		return nil, fmt.Errorf("initialize transliterator: %w", err)
	}

	resolveOpts := []resolve.Option{
		resolve.WithOffline(opts.Offline),
		resolve.WithLogger(logger),
	}

	var tagFetch pitch.TagFetcher
	if clients.Dictionary != nil {
		dict := clients.Dictionary
		tagFetch = func(ctx context.Context, word, _ string) ([]string, error) {
			entry, err := dict.Lookup(ctx, word)
			if err != nil {
				return nil, err
			}
			if entry == nil {
				return nil, nil
			}
			return entry.Tags, nil
		}
	}
	classifier, err := pitch.NewClassifier(store, tagFetch, resolveOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialize pitch classifier: %w", err)
	}

	var componentFetch radical.ComponentFetcher
	if clients.Kanji != nil {
		kc := clients.Kanji
		componentFetch = func(ctx context.Context, kanji string) ([]string, error) {
			return kc.Components(ctx, kanji)
		}
	}

	return &Enricher{
		clients:       clients,
		opts:          opts,
		dictionaryRes: resolve.New(sourceDictionary, store, resolveOpts...),
		kanjiRes:      resolve.New(sourceKanji, store, resolveOpts...),
		strokesRes:    resolve.New(sourceStrokes, store, resolveOpts...),
		sentencesRes:  resolve.New(sourceSentences, store, resolveOpts...),
		classifier:    classifier,
		decomposer:    radical.NewDecomposer(catalog, store, componentFetch, resolveOpts...),
		aligner:       furigana.NewAligner(translit, furigana.WithLogger(logger)),
		translit:      translit,
		freq:          freq,
		ety:           ety,
		logger:        logging.NewComponentLogger(logger, "enrich"),
	}, nil
}

// Run enriches records in order, honoring the checkpoint and the rate delay.
// Malformed records are dropped with a warning. Returns the enriched records
// in input order.
func (e *Enricher) Run(ctx context.Context, records []vocab.Record, cp Checkpointer, inputPath string) ([]vocab.Record, Summary, error) {
	var out []vocab.Record
	var summary Summary

	for i := range records {
		if err := ctx.Err(); err != nil {
			return out, summary, err
		}

		record := records[i]
		summary.Total++

		if err := record.Validate(); err != nil {
			summary.Malformed++
			e.logger.WarnContext(ctx, "dropping malformed record",
				logging.String(logging.FieldWord, record.Word),
				logging.String(logging.FieldChapter, record.Chapter),
				logging.Error(err))
			continue
		}

		key := record.Key()
		if cp != nil && cp.Done(key) {
			summary.Skipped++
			e.logger.DebugContext(ctx, "skipping checkpointed record",
				logging.String(logging.FieldWord, record.Word))
			continue
		}

		fetched := e.Enrich(services.WithWord(ctx, record.Word), &record)
		out = append(out, record)
		summary.Enriched++
		if fetched {
			summary.Fetched++
		}

		if cp != nil {
			if err := cp.Mark(key, inputPath); err != nil {
				e.logger.WarnContext(ctx, "checkpoint update failed",
					logging.String(logging.FieldWord, record.Word),
					logging.Error(err))
			}
		}

		if fetched && e.opts.RateDelay > 0 && i < len(records)-1 {
			if err := sleepContext(ctx, e.opts.RateDelay); err != nil {
				return out, summary, err
			}
		}
	}

	return out, summary, nil
}

// Checkpointer is the resume-tracking surface Run needs.
type Checkpointer interface {
	Done(key string) bool
	Mark(key, input string) error
}

// Enrich fills a single record in place and reports whether any live fetch
// was performed. Individual step failures degrade to empty fields, never
// abort the record.
func (e *Enricher) Enrich(ctx context.Context, record *vocab.Record) bool {
	fetched := false

	if f := e.applyDictionary(ctx, record); f {
		fetched = true
	}
	if f := e.applyKanjiData(ctx, record); f {
		fetched = true
	}
	if f := e.applyRadicals(ctx, record); f {
		fetched = true
	}

	record.FrequencyInfo = e.freq.Summary(record.Word)
	record.HanViet = e.ety.Reading(record.Word)
	if record.JLPTLevel == "" {
		record.JLPTLevel = e.freq.Level(record.Word, record.Reading)
	}

	record.Furigana = e.aligner.Annotate(record.Word, record.Reading)
	if record.Romaji == "" {
		record.Romaji = jptext.Romaji(record.Reading)
	}

	if forms := conjugate.Conjugate(record.Word, record.PartOfSpeech); !forms.Empty() {
		record.Conjugations = formatConjugations(forms)
	}

	if e.opts.Examples {
		if f := e.applyExamples(ctx, record); f {
			fetched = true
		}
	}
	if e.opts.Pitch {
		if f := e.applyPitch(ctx, record); f {
			fetched = true
		}
	}
	if e.opts.StrokeDiagrams {
		if f := e.applyStrokes(ctx, record); f {
			fetched = true
		}
	}
	if e.opts.Audio {
		if f := e.applyAudio(ctx, record); f {
			fetched = true
		}
	}

	return fetched
}

// applyDictionary resolves the word's dictionary entry and fills the reading
// correction, part of speech, English meaning and related words.
func (e *Enricher) applyDictionary(ctx context.Context, record *vocab.Record) bool {
	result := e.dictionaryRes.Resolve(ctx, record.Word, func(ctx context.Context) (string, error) {
		if e.clients.Dictionary == nil {
			return "", nil
		}
		entry, err := e.clients.Dictionary.Lookup(ctx, record.Word)
		if err != nil {
			return "", err
		}
		if entry == nil {
			return "", nil
		}
		data, err := json.Marshal(entry)
		if err != nil {
			return "", fmt.Errorf("encode dictionary entry: %w", err)
		}
		return string(data), nil
	})
	if !result.Known {
		return result.Fetched
	}

	var entry dictionary.Entry
	if err := json.Unmarshal([]byte(result.Value), &entry); err != nil {
		e.logger.WarnContext(ctx, "cached dictionary entry unreadable",
			logging.String(logging.FieldWord, record.Word),
			logging.Error(err))
		return result.Fetched
	}

	if corrected := entry.ReadingFor(record.Word); corrected != "" && corrected != record.Reading {
		e.logger.InfoContext(ctx, "corrected reading from dictionary",
			logging.String(logging.FieldWord, record.Word),
			logging.String("from", record.Reading),
			logging.String("to", corrected))
		record.Reading = corrected
	}
	record.PartOfSpeech = entry.PartOfSpeech()
	if e.opts.English {
		record.MeaningEN = entry.Meaning()
	}
	synonyms, antonyms := entry.Related()
	record.Synonyms = strings.Join(synonyms, ", ")
	record.Antonyms = strings.Join(antonyms, ", ")
	if record.JLPTLevel == "" && len(entry.JLPT) > 0 {
		record.JLPTLevel = normalizeJLPT(entry.JLPT[0])
	}
	return result.Fetched
}

// applyKanjiData resolves per-character metadata and fills the kun/on reading
// and meaning summaries.
func (e *Enricher) applyKanjiData(ctx context.Context, record *vocab.Record) bool {
	fetched := false
	var kun, on, meanings []string

	for _, r := range jptext.Kanji(record.Word) {
		kanji := string(r)
		result := e.kanjiRes.Resolve(ctx, kanji, func(ctx context.Context) (string, error) {
			if e.clients.Kanji == nil {
				return "", nil
			}
			info, err := e.clients.Kanji.Lookup(ctx, kanji)
			if err != nil {
				return "", err
			}
			if info == nil {
				return "", nil
			}
			data, err := json.Marshal(info)
			if err != nil {
				return "", fmt.Errorf("encode kanji info: %w", err)
			}
			return string(data), nil
		})
		if result.Fetched {
			fetched = true
		}
		if !result.Known {
			continue
		}

		var info kanjidata.Info
		if err := json.Unmarshal([]byte(result.Value), &info); err != nil {
			continue
		}
		if line := kanjiLine(kanji, info.KunReadings); line != "" {
			kun = append(kun, line)
		}
		if line := kanjiLine(kanji, info.OnReadings); line != "" {
			on = append(on, line)
		}
		if line := kanjiLine(kanji, info.Meanings); line != "" {
			meanings = append(meanings, line)
		}
	}

	record.KanjiKun = strings.Join(kun, "<br>")
	record.KanjiOn = strings.Join(on, "<br>")
	record.KanjiMeanings = strings.Join(meanings, "<br>")
	return fetched
}

// applyRadicals decomposes each kanji and fills the radical summary.
func (e *Enricher) applyRadicals(ctx context.Context, record *vocab.Record) bool {
	fetched := false
	var lines []string

	for _, r := range jptext.Kanji(record.Word) {
		kanji := string(r)
		components, f := e.decomposer.Decompose(ctx, kanji)
		if f {
			fetched = true
		}
		if len(components) == 0 {
			continue
		}
		parts := make([]string, 0, len(components))
		for _, comp := range components {
			parts = append(parts, formatComponent(comp))
		}
		lines = append(lines, kanji+": "+strings.Join(parts, " | "))
	}

	record.RadicalInfo = strings.Join(lines, "<br>")
	return fetched
}

// applyExamples resolves corpus sentences for the word and fills the example
// field, annotating each sentence with furigana.
func (e *Enricher) applyExamples(ctx context.Context, record *vocab.Record) bool {
	result := e.sentencesRes.Resolve(ctx, record.Word, func(ctx context.Context) (string, error) {
		if e.clients.Sentences == nil {
			return "", nil
		}
		examples, err := e.clients.Sentences.SearchVariants(ctx, searchVariants(record.Word), e.opts.SentenceLimit)
		if err != nil {
			return "", err
		}
		if len(examples) == 0 {
			return "", nil
		}
		data, err := json.Marshal(examples)
		if err != nil {
			return "", fmt.Errorf("encode examples: %w", err)
		}
		return string(data), nil
	})
	if !result.Known {
		return result.Fetched
	}

	var examples []sentences.Example
	if err := json.Unmarshal([]byte(result.Value), &examples); err != nil {
		return result.Fetched
	}

	lines := make([]string, 0, len(examples))
	for _, ex := range examples {
		annotated := e.translit.AnnotateSentence(ex.Text)
		lines = append(lines, sentences.Example{Text: annotated, Translation: ex.Translation}.Display())
	}
	record.Examples = strings.Join(lines, "<br>")
	return result.Fetched
}

// applyPitch classifies the word's accent and fills the pattern label and
// contour diagram. Unresolved accents leave both fields empty.
func (e *Enricher) applyPitch(ctx context.Context, record *vocab.Record) bool {
	accent, fetched := e.classifier.Classify(ctx, record.Word, record.Reading)
	if !accent.Known() {
		return fetched
	}
	record.PitchPattern = fmt.Sprintf("%s [%d]", accent.Pattern, accent.Downstep)
	record.PitchSVG = pitch.RenderSVG(record.Reading, accent.Downstep)
	return fetched
}

// applyStrokes resolves one stroke diagram per kanji and concatenates them.
func (e *Enricher) applyStrokes(ctx context.Context, record *vocab.Record) bool {
	fetched := false
	var diagrams []string

	for _, r := range jptext.Kanji(record.Word) {
		kanji := string(r)
		result := e.strokesRes.Resolve(ctx, kanji, func(ctx context.Context) (string, error) {
			if e.clients.Strokes == nil {
				return "", nil
			}
			return e.clients.Strokes.Diagram(ctx, kanji)
		})
		if result.Fetched {
			fetched = true
		}
		if result.Known {
			diagrams = append(diagrams, result.Value)
		}
	}

	record.StrokeSVG = strings.Join(diagrams, "")
	return fetched
}

// applyAudio synthesizes pronunciation audio for the word, reusing an
// existing file from a prior run when present.
func (e *Enricher) applyAudio(ctx context.Context, record *vocab.Record) bool {
	if e.opts.AudioDir == "" {
		return false
	}
	path := filepath.Join(e.opts.AudioDir, AudioFileName(record.Word, record.Reading))

	if _, err := os.Stat(path); err == nil {
		record.AudioFile = path
		return false
	}
	if e.opts.Offline || e.clients.Speech == nil {
		return false
	}

	if err := e.clients.Speech.SynthesizeToFile(ctx, record.Word, path); err != nil {
		e.logger.WarnContext(ctx, "audio synthesis failed",
			logging.String(logging.FieldWord, record.Word),
			logging.Error(err))
		return true
	}
	record.AudioFile = path
	return true
}

// AudioFileName derives a filesystem-safe audio filename for a record.
func AudioFileName(word, reading string) string {
	clean := func(s string) string {
		s = strings.ReplaceAll(s, string(filepath.Separator), "_")
		s = strings.ReplaceAll(s, " ", "_")
		return s
	}
	return clean(word) + "_" + clean(reading) + ".mp3"
}

// searchVariants returns the corpus query forms for a word: the word itself,
// the stem of する compounds, and the hiragana form of katakana loanwords.
func searchVariants(word string) []string {
	variants := []string{word}
	if stem := strings.TrimSuffix(word, "する"); stem != word && stem != "" {
		variants = append(variants, stem)
	}
	if folded := jptext.FoldKatakana(word); folded != word {
		variants = append(variants, folded)
	}
	return variants
}

// kanjiLine formats one kanji's reading or meaning list, capped at three
// entries.
func kanjiLine(kanji string, values []string) string {
	var kept []string
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		kept = append(kept, v)
		if len(kept) == 3 {
			break
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return kanji + ": " + strings.Join(kept, ", ")
}

// formatComponent renders one identified radical, noting the stylistic
// variant it appeared as.
func formatComponent(comp radical.Component) string {
	symbol := comp.Radical.Symbol
	if comp.FoundAs != "" && comp.FoundAs != symbol {
		symbol = fmt.Sprintf("%s (%s)", symbol, comp.FoundAs)
	}
	return fmt.Sprintf("%s • %s [%s]", symbol, comp.Radical.Meaning, comp.Radical.Importance())
}

// formatConjugations renders the five-form set for display.
func formatConjugations(forms conjugate.Forms) string {
	return strings.Join([]string{
		"Polite: " + forms.Polite,
		"Te: " + forms.Te,
		"Past: " + forms.Past,
		"Negative: " + forms.Negative,
		"Potential: " + forms.Potential,
	}, "<br>")
}

// normalizeJLPT maps dictionary level tags like "jlpt-n5" onto the plain
// level label.
func normalizeJLPT(tag string) string {
	tag = strings.ToUpper(strings.TrimPrefix(strings.ToLower(tag), "jlpt-"))
	if len(tag) == 2 && tag[0] == 'N' {
		return tag
	}
	return ""
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
