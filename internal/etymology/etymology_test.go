package etymology

import "testing"

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return db
}

func TestKanjiLookup(t *testing.T) {
	db := testDB(t)

	if got, ok := db.Kanji("水"); !ok || got != "thủy" {
		t.Fatalf("Kanji(水) = %q, %v", got, ok)
	}
	if _, ok := db.Kanji("龘"); ok {
		t.Fatal("unlisted kanji should miss")
	}
}

func TestReading(t *testing.T) {
	db := testDB(t)

	cases := []struct {
		word string
		want string
	}{
		{"水", "thủy"},
		{"勉強", "miễn cường"},
		{"学校", "học hiệu"},
		// Okurigana carries no reading of its own.
		{"食べる", "thực"},
		{"コーヒー", ""},
		{"", ""},
	}
	for _, tc := range cases {
		if got := db.Reading(tc.word); got != tc.want {
			t.Errorf("Reading(%q) = %q, want %q", tc.word, got, tc.want)
		}
	}
}
