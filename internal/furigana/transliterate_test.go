package furigana

import (
	"strings"
	"testing"
)

func newTestTransliterator(t *testing.T) *Transliterator {
	t.Helper()
	tr, err := NewTransliterator()
	if err != nil {
		t.Fatalf("NewTransliterator: %v", err)
	}
	return tr
}

func TestTransliteratorReading(t *testing.T) {
	tr := newTestTransliterator(t)

	reading, ok := tr.Reading("学校")
	if !ok {
		t.Fatal("Reading(学校) reported no reading")
	}
	if reading != "がっこう" {
		t.Fatalf("Reading(学校) = %q, want がっこう", reading)
	}
}

func TestTransliteratorReadingEmpty(t *testing.T) {
	tr := newTestTransliterator(t)
	if _, ok := tr.Reading(""); ok {
		t.Fatal("Reading of empty text should report no reading")
	}
}

func TestAnnotateSentence(t *testing.T) {
	tr := newTestTransliterator(t)

	got := tr.AnnotateSentence("学校に行く。")
	if !strings.Contains(got, "<ruby>学校<rt>がっこう</rt></ruby>") {
		t.Fatalf("sentence markup missing ruby for 学校: %q", got)
	}
	if !strings.Contains(got, "に") {
		t.Fatalf("particle dropped from sentence: %q", got)
	}
	if strings.Contains(got, "<ruby>に") {
		t.Fatalf("kana token should not get ruby: %q", got)
	}
}

func TestAnnotateSentenceKanaOnly(t *testing.T) {
	tr := newTestTransliterator(t)
	if got := tr.AnnotateSentence("おはよう"); strings.Contains(got, "<ruby>") {
		t.Fatalf("kana sentence gained ruby markup: %q", got)
	}
}
