package vocab

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	valid := Record{Word: "学校", Reading: "がっこう", Meaning: "school"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate = %v, want nil", err)
	}

	cases := []Record{
		{Reading: "がっこう", Meaning: "school"},
		{Word: "学校", Meaning: "school"},
		{Word: "学校", Reading: "がっこう"},
		{Word: "  ", Reading: "がっこう", Meaning: "school"},
	}
	for _, r := range cases {
		if err := r.Validate(); !errors.Is(err, ErrMalformed) {
			t.Errorf("Validate(%+v) = %v, want ErrMalformed", r, err)
		}
	}
}

func TestKeyStableAcrossEnrichment(t *testing.T) {
	raw := Record{Word: "学校", Reading: "がっこう", Meaning: "school"}
	enriched := raw
	enriched.MeaningEN = "school"
	enriched.PitchPattern = "0"

	if raw.Key() != enriched.Key() {
		t.Fatal("enrichment must not change the record key")
	}
	other := Record{Word: "学校", Reading: "がっこう", Meaning: "campus"}
	if raw.Key() == other.Key() {
		t.Fatal("records differing in meaning must have distinct keys")
	}
}

func TestTags(t *testing.T) {
	r := Record{Word: "学校", Reading: "がっこう", Meaning: "school", Chapter: "Chapter 3", JLPTLevel: "N5"}
	tags := r.Tags()
	if len(tags) != 2 || tags[0] != "Chapter_3" || tags[1] != "N5" {
		t.Fatalf("Tags = %v", tags)
	}

	bare := Record{Word: "学校"}
	if tags := bare.Tags(); tags != nil {
		t.Fatalf("bare record should have no tags, got %v", tags)
	}
}
