package enrich

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"kotoba/internal/dictionary"
	"kotoba/internal/kanjidata"
	"kotoba/internal/resolve"
	"kotoba/internal/sentences"
	"kotoba/internal/speech"
	"kotoba/internal/strokes"
	"kotoba/internal/vocab"
)

const dictionaryResponse = `{
	"data": [{
		"slug": "水",
		"is_common": true,
		"jlpt": ["jlpt-n5"],
		"japanese": [{"word": "水", "reading": "みず"}],
		"senses": [{
			"english_definitions": ["water"],
			"parts_of_speech": ["Noun"],
			"see_also": ["お水"],
			"antonyms": []
		}]
	}]
}`

const kanjiResponse = `{
	"kanji": "水",
	"grade": 1,
	"stroke_count": 4,
	"meanings": ["water"],
	"kun_readings": ["みず"],
	"on_readings": ["スイ"],
	"jlpt": 5,
	"unicode": "6c34"
}`

const sentencesResponse = `{
	"results": [{
		"text": "水を飲む。",
		"translations": [[{"text": "I drink water."}]]
	}]
}`

// testServices spins up one httptest server per external service and returns
// wired clients plus a counter of requests served.
func testServices(t *testing.T) (Clients, *atomic.Int64) {
	t.Helper()
	var requests atomic.Int64
	count := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			requests.Add(1)
			h(w, r)
		}
	}

	dictSrv := httptest.NewServer(count(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(dictionaryResponse))
	}))
	t.Cleanup(dictSrv.Close)

	kanjiSrv := httptest.NewServer(count(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/kanji/") {
			w.Write([]byte(kanjiResponse))
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(kanjiSrv.Close)

	strokesSrv := httptest.NewServer(count(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<svg xmlns="http://www.w3.org/2000/svg"><path d="M1 1"/></svg>`))
	}))
	t.Cleanup(strokesSrv.Close)

	sentencesSrv := httptest.NewServer(count(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sentencesResponse))
	}))
	t.Cleanup(sentencesSrv.Close)

	speechSrv := httptest.NewServer(count(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("audio-bytes"))
	}))
	t.Cleanup(speechSrv.Close)

	dict, err := dictionary.New(dictSrv.URL)
	if err != nil {
		t.Fatalf("dictionary.New: %v", err)
	}
	kanji, err := kanjidata.New(kanjiSrv.URL)
	if err != nil {
		t.Fatalf("kanjidata.New: %v", err)
	}
	strokesClient, err := strokes.New(strokesSrv.URL)
	if err != nil {
		t.Fatalf("strokes.New: %v", err)
	}
	sentencesClient, err := sentences.New(sentencesSrv.URL, "jpn", "eng")
	if err != nil {
		t.Fatalf("sentences.New: %v", err)
	}
	speechClient, err := speech.New(speechSrv.URL, "")
	if err != nil {
		t.Fatalf("speech.New: %v", err)
	}

	return Clients{
		Dictionary: dict,
		Kanji:      kanji,
		Strokes:    strokesClient,
		Sentences:  sentencesClient,
		Speech:     speechClient,
	}, &requests
}

func newTestEnricher(t *testing.T, clients Clients, opts Options) *Enricher {
	t.Helper()
	store, err := resolve.OpenStore(t.TempDir() + "/cache.db")
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	e, err := New(store, clients, opts, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e
}

func allFeatures(audioDir string, offline bool) Options {
	return Options{
		Offline:        offline,
		English:        true,
		Pitch:          true,
		StrokeDiagrams: true,
		Examples:       true,
		Audio:          true,
		SentenceLimit:  2,
		AudioDir:       audioDir,
	}
}

func TestEnrichFillsRecord(t *testing.T) {
	clients, _ := testServices(t)
	audioDir := t.TempDir()
	e := newTestEnricher(t, clients, allFeatures(audioDir, false))

	record := vocab.Record{Word: "水", Reading: "みず", Meaning: "water"}
	fetched := e.Enrich(context.Background(), &record)
	if !fetched {
		t.Fatal("first enrichment should report live fetches")
	}

	if record.PartOfSpeech != "Noun" {
		t.Errorf("PartOfSpeech = %q", record.PartOfSpeech)
	}
	if record.MeaningEN != "water" {
		t.Errorf("MeaningEN = %q", record.MeaningEN)
	}
	if record.Synonyms != "お水" {
		t.Errorf("Synonyms = %q", record.Synonyms)
	}
	if record.KanjiKun != "水: みず" || record.KanjiOn != "水: スイ" || record.KanjiMeanings != "水: water" {
		t.Errorf("kanji fields = %q / %q / %q", record.KanjiKun, record.KanjiOn, record.KanjiMeanings)
	}
	if record.RadicalInfo != "水: 水 • water [essential]" {
		t.Errorf("RadicalInfo = %q", record.RadicalInfo)
	}
	if !strings.Contains(record.FrequencyInfo, "top500") {
		t.Errorf("FrequencyInfo = %q", record.FrequencyInfo)
	}
	if record.JLPTLevel != "N5" {
		t.Errorf("JLPTLevel = %q", record.JLPTLevel)
	}
	if record.Furigana != "<ruby>水<rt>みず</rt></ruby>" {
		t.Errorf("Furigana = %q", record.Furigana)
	}
	if record.Romaji != "mizu" {
		t.Errorf("Romaji = %q", record.Romaji)
	}
	if record.PitchPattern != "heiban [0]" {
		t.Errorf("PitchPattern = %q", record.PitchPattern)
	}
	if !strings.Contains(record.PitchSVG, "<svg") {
		t.Errorf("PitchSVG = %q", record.PitchSVG)
	}
	if !strings.Contains(record.StrokeSVG, `class="stroke-diagram"`) || !strings.Contains(record.StrokeSVG, "<path") {
		t.Errorf("StrokeSVG = %q", record.StrokeSVG)
	}
	if record.HanViet != "thủy" {
		t.Errorf("HanViet = %q", record.HanViet)
	}
	if !strings.Contains(record.Examples, "I drink water.") || !strings.Contains(record.Examples, "<ruby>") {
		t.Errorf("Examples = %q", record.Examples)
	}
	if record.Conjugations != "" {
		t.Errorf("noun should not conjugate, got %q", record.Conjugations)
	}
	if record.AudioFile == "" {
		t.Fatal("AudioFile not set")
	}
	if _, err := os.Stat(record.AudioFile); err != nil {
		t.Errorf("audio file missing: %v", err)
	}
}

func TestEnrichSecondRunServedFromCache(t *testing.T) {
	clients, requests := testServices(t)
	audioDir := t.TempDir()
	e := newTestEnricher(t, clients, allFeatures(audioDir, false))

	first := vocab.Record{Word: "水", Reading: "みず", Meaning: "water"}
	if fetched := e.Enrich(context.Background(), &first); !fetched {
		t.Fatal("first enrichment should fetch")
	}
	served := requests.Load()

	second := vocab.Record{Word: "水", Reading: "みず", Meaning: "water"}
	if fetched := e.Enrich(context.Background(), &second); fetched {
		t.Fatal("second enrichment should be cache-served")
	}
	if requests.Load() != served {
		t.Fatalf("cache-served run made %d extra requests", requests.Load()-served)
	}
	if second.MeaningEN != first.MeaningEN || second.Examples != first.Examples {
		t.Fatal("cached enrichment differs from fetched enrichment")
	}
}

func TestEnrichOfflineMakesNoRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request in offline mode: %s", r.URL)
	}))
	defer srv.Close()

	dict, _ := dictionary.New(srv.URL)
	kanji, _ := kanjidata.New(srv.URL)
	strokesClient, _ := strokes.New(srv.URL)
	sentencesClient, _ := sentences.New(srv.URL, "jpn", "eng")
	speechClient, _ := speech.New(srv.URL, "")
	clients := Clients{dict, kanji, strokesClient, sentencesClient, speechClient}

	e := newTestEnricher(t, clients, allFeatures(t.TempDir(), true))

	record := vocab.Record{Word: "水", Reading: "みず", Meaning: "water"}
	if fetched := e.Enrich(context.Background(), &record); fetched {
		t.Fatal("offline enrichment reported a fetch")
	}

	// Bundled data still applies without the network.
	if record.PitchPattern != "heiban [0]" {
		t.Errorf("PitchPattern = %q", record.PitchPattern)
	}
	if record.JLPTLevel != "N5" {
		t.Errorf("JLPTLevel = %q", record.JLPTLevel)
	}
	if record.Furigana != "<ruby>水<rt>みず</rt></ruby>" {
		t.Errorf("Furigana = %q", record.Furigana)
	}
	if record.RadicalInfo == "" || record.FrequencyInfo == "" {
		t.Errorf("bundled summaries missing: %q / %q", record.RadicalInfo, record.FrequencyInfo)
	}
	if record.HanViet != "thủy" {
		t.Errorf("HanViet = %q", record.HanViet)
	}
}

type fakeCheckpoint struct {
	done   map[string]bool
	marked []string
}

func (f *fakeCheckpoint) Done(key string) bool { return f.done[key] }

func (f *fakeCheckpoint) Mark(key, _ string) error {
	f.marked = append(f.marked, key)
	return nil
}

func TestRunSkipsCheckpointedAndMalformed(t *testing.T) {
	e := newTestEnricher(t, Clients{}, Options{Offline: true})

	records := []vocab.Record{
		{Word: "学校", Reading: "", Meaning: "school"},
		{Word: "水", Reading: "みず", Meaning: "water"},
		{Word: "猫", Reading: "ねこ", Meaning: "cat"},
	}
	cp := &fakeCheckpoint{done: map[string]bool{"水::みず::water": true}}

	out, summary, err := e.Run(context.Background(), records, cp, "vocab.json")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Total != 3 || summary.Malformed != 1 || summary.Skipped != 1 || summary.Enriched != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if len(out) != 1 || out[0].Word != "猫" {
		t.Fatalf("out = %+v", out)
	}
	if len(cp.marked) != 1 || cp.marked[0] != "猫::ねこ::cat" {
		t.Fatalf("marked = %v", cp.marked)
	}
}

func TestRunDelaysOnlyAfterLiveFetch(t *testing.T) {
	clients, _ := testServices(t)
	opts := allFeatures(t.TempDir(), false)
	opts.RateDelay = 200 * time.Millisecond
	e := newTestEnricher(t, clients, opts)

	records := []vocab.Record{
		{Word: "水", Reading: "みず", Meaning: "water"},
		{Word: "水", Reading: "みず", Meaning: "fresh water"},
	}

	start := time.Now()
	_, summary, err := e.Run(context.Background(), records, nil, "vocab.json")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if summary.Fetched == 0 {
		t.Fatal("cold cache run should report live fetches")
	}
	if elapsed := time.Since(start); elapsed < opts.RateDelay {
		t.Fatalf("fetching run finished in %v, want at least %v of pacing", elapsed, opts.RateDelay)
	}

	// Everything is cached now, so the pacing delay must not apply.
	start = time.Now()
	_, summary, err = e.Run(context.Background(), records, nil, "vocab.json")
	if err != nil {
		t.Fatalf("Run (warm): %v", err)
	}
	if summary.Fetched != 0 {
		t.Fatalf("warm run reported %d fetching records", summary.Fetched)
	}
	if elapsed := time.Since(start); elapsed >= opts.RateDelay {
		t.Fatalf("cache-served run paused for %v", elapsed)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := newTestEnricher(t, Clients{}, Options{Offline: true})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	records := []vocab.Record{{Word: "水", Reading: "みず", Meaning: "water"}}
	if _, _, err := e.Run(ctx, records, nil, "vocab.json"); err == nil {
		t.Fatal("expected context error")
	}
}

func TestAudioFileName(t *testing.T) {
	if got := AudioFileName("水", "みず"); got != "水_みず.mp3" {
		t.Errorf("AudioFileName = %q", got)
	}
	if got := AudioFileName("a b", "c/d"); got != "a_b_c_d.mp3" {
		t.Errorf("AudioFileName with separators = %q", got)
	}
}

func TestSearchVariants(t *testing.T) {
	cases := []struct {
		word string
		want []string
	}{
		{"水", []string{"水"}},
		{"勉強する", []string{"勉強する", "勉強"}},
		{"コーヒー", []string{"コーヒー", "こーひー"}},
	}
	for _, tc := range cases {
		got := searchVariants(tc.word)
		if len(got) != len(tc.want) {
			t.Errorf("searchVariants(%q) = %v, want %v", tc.word, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("searchVariants(%q) = %v, want %v", tc.word, got, tc.want)
				break
			}
		}
	}
}

func TestNormalizeJLPT(t *testing.T) {
	if got := normalizeJLPT("jlpt-n5"); got != "N5" {
		t.Errorf("normalizeJLPT(jlpt-n5) = %q", got)
	}
	if got := normalizeJLPT("common"); got != "" {
		t.Errorf("normalizeJLPT(common) = %q", got)
	}
}
