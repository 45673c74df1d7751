package dictionary_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kotoba/internal/dictionary"
)

const sampleResponse = `{"data":[
  {"slug":"猫","is_common":true,"tags":["wanikani8"],"jlpt":["jlpt-n5"],
   "japanese":[{"word":"猫","reading":"ねこ"}],
   "senses":[
     {"english_definitions":["cat","feline"],"parts_of_speech":["Noun"],"see_also":["子猫"],"antonyms":["犬"]},
     {"english_definitions":["shamisen"],"parts_of_speech":["Noun"],"see_also":[],"antonyms":[]}
   ]},
  {"slug":"猫舌","japanese":[{"word":"猫舌","reading":"ねこじた"}],"senses":[]}
]}`

func TestNewRequiresBaseURL(t *testing.T) {
	if _, err := dictionary.New("  "); err == nil {
		t.Fatal("expected error when base url missing")
	}
}

func TestLookupExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/words" {
			t.Fatalf("unexpected path %q", r.URL.Path)
		}
		if r.URL.Query().Get("keyword") != "猫" {
			t.Fatalf("expected keyword query parameter, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(server.Close)

	client, err := dictionary.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	entry, err := client.Lookup(context.Background(), "猫")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if entry == nil || entry.Slug != "猫" {
		t.Fatalf("unexpected entry: %#v", entry)
	}
	if got := entry.Meaning(); got != "cat; feline; shamisen" {
		t.Fatalf("Meaning = %q", got)
	}
	if got := entry.ReadingFor("猫"); got != "ねこ" {
		t.Fatalf("ReadingFor = %q", got)
	}
	if got := entry.PartOfSpeech(); got != "Noun" {
		t.Fatalf("PartOfSpeech = %q", got)
	}
	synonyms, antonyms := entry.Related()
	if len(synonyms) != 1 || synonyms[0] != "子猫" {
		t.Fatalf("synonyms = %v", synonyms)
	}
	if len(antonyms) != 1 || antonyms[0] != "犬" {
		t.Fatalf("antonyms = %v", antonyms)
	}
}

func TestLookupNoExactMatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(server.Close)

	client, err := dictionary.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	entry, err := client.Lookup(context.Background(), "虎")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if entry != nil {
		t.Fatalf("partial match must be discarded, got %#v", entry)
	}
}

func TestLookupMatchesByReading(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(server.Close)

	client, err := dictionary.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	entry, err := client.Lookup(context.Background(), "ねこ")
	if err != nil {
		t.Fatalf("Lookup returned error: %v", err)
	}
	if entry == nil || entry.Slug != "猫" {
		t.Fatalf("kana-only lookup failed: %#v", entry)
	}
}

func TestLookupHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(server.Close)

	client, err := dictionary.New(server.URL)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Lookup(context.Background(), "猫"); err == nil {
		t.Fatal("expected error when dictionary returns non-200")
	}
}

func TestLookupEmptyWord(t *testing.T) {
	client, err := dictionary.New("https://example.com")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Lookup(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty word")
	}
}
