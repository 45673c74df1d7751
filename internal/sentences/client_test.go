package sentences_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"kotoba/internal/sentences"
)

const sampleResponse = `{"results":[
  {"text":"学校に行きます。","translations":[[{"text":"I go to school."}]]},
  {"text":"学校は楽しい。","translations":[[]]},
  {"text":"学校が好きだ。","translations":[[{"text":"I like school."}]]}
]}`

func TestNewValidation(t *testing.T) {
	if _, err := sentences.New("", "jpn", "eng"); err == nil {
		t.Fatal("expected error when base url missing")
	}
	if _, err := sentences.New("https://example.com", "jpn", ""); err == nil {
		t.Fatal("expected error when language pair incomplete")
	}
}

func TestSearchSkipsUntranslated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		if query.Get("from") != "jpn" || query.Get("to") != "eng" {
			t.Fatalf("unexpected language pair: %q", r.URL.RawQuery)
		}
		if query.Get("query") != "学校" {
			t.Fatalf("unexpected query: %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(server.Close)

	client, err := sentences.New(server.URL, "jpn", "eng")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	examples, err := client.Search(context.Background(), "学校", 5)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(examples) != 2 {
		t.Fatalf("expected untranslated sentence skipped, got %v", examples)
	}
	if got := examples[0].Display(); got != "学校に行きます。 → I go to school." {
		t.Fatalf("Display = %q", got)
	}
}

func TestSearchHonorsLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	t.Cleanup(server.Close)

	client, err := sentences.New(server.URL, "jpn", "eng")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	examples, err := client.Search(context.Background(), "学校", 1)
	if err != nil {
		t.Fatalf("Search returned error: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("limit not honored: %v", examples)
	}
}

func TestSearchVariantsFallsThrough(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("query") == "勉強する" {
			_, _ = w.Write([]byte(`{"results":[]}`))
			return
		}
		_, _ = w.Write([]byte(`{"results":[{"text":"毎日勉強します。","translations":[[{"text":"I study every day."}]]}]}`))
	}))
	t.Cleanup(server.Close)

	client, err := sentences.New(server.URL, "jpn", "eng")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	examples, err := client.SearchVariants(context.Background(), []string{"勉強する", "勉強"}, 2)
	if err != nil {
		t.Fatalf("SearchVariants returned error: %v", err)
	}
	if len(examples) != 1 || examples[0].Text != "毎日勉強します。" {
		t.Fatalf("variant fallthrough failed: %v", examples)
	}
}

func TestSearchHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	client, err := sentences.New(server.URL, "jpn", "eng")
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := client.Search(context.Background(), "学校", 2); err == nil {
		t.Fatal("expected error when corpus returns non-200")
	}
}
