package conjugate

import "testing"

func TestDetectType(t *testing.T) {
	cases := []struct {
		word, hint string
		want       Type
	}{
		{"する", "", TypeSuru},
		{"勉強する", "", TypeSuru},
		{"来る", "", TypeIrregular},
		{"行く", "", TypeIrregular},
		{"ある", "", TypeIrregular},
		{"食べる", "", TypeIchidan},
		{"飲む", "", TypeGodan},
		{"書く", "", TypeGodan},
		{"買う", "", TypeGodan},
		{"乗る", "", TypeGodan},
		{"閉める", "", TypeIchidan},
		{"猫", "Noun", TypeNotVerb},
		{"", "", TypeNotVerb},
		{"きれい", "", TypeNotVerb},
	}
	for _, tc := range cases {
		if got := DetectType(tc.word, tc.hint); got != tc.want {
			t.Errorf("DetectType(%q, %q) = %s, want %s", tc.word, tc.hint, got, tc.want)
		}
	}
}

func TestDetectTypeHintOverrides(t *testing.T) {
	// 帰る looks ichidan by shape but the metadata says godan.
	if got := DetectType("帰る", "Godan verb with ru ending"); got != TypeGodan {
		t.Fatalf("DetectType with godan hint = %s", got)
	}
	if got := DetectType("見る", "Ichidan verb"); got != TypeIchidan {
		t.Fatalf("DetectType with ichidan hint = %s", got)
	}
	// A non-verb hint wins over any shape.
	if got := DetectType("食べる", "Noun"); got != TypeNotVerb {
		t.Fatalf("DetectType with noun hint = %s", got)
	}
}

func TestDetectTypeAmbiguousRuDefaultsIchidan(t *testing.T) {
	// Shape alone cannot distinguish these; the heuristic prefers ichidan.
	if got := DetectType("切る", ""); got != TypeGodan {
		// 切る reads きる but the surface form's preceding rune is kanji,
		// so the e/i-row test cannot fire and the godan table applies.
		t.Fatalf("DetectType(切る) = %s", got)
	}
	if got := DetectType("いる", ""); got != TypeIchidan {
		t.Fatalf("DetectType(いる) = %s", got)
	}
}

func TestConjugateIchidan(t *testing.T) {
	got := Conjugate("食べる", "")
	want := Forms{Polite: "食べます", Te: "食べて", Past: "食べた", Negative: "食べない", Potential: "食べられる"}
	if got != want {
		t.Fatalf("Conjugate(食べる) = %+v, want %+v", got, want)
	}
}

func TestConjugateGodanRows(t *testing.T) {
	cases := []struct {
		word string
		want Forms
	}{
		{"飲む", Forms{Polite: "飲みます", Te: "飲んで", Past: "飲んだ", Negative: "飲まない", Potential: "飲める"}},
		{"書く", Forms{Polite: "書きます", Te: "書いて", Past: "書いた", Negative: "書かない", Potential: "書ける"}},
		{"泳ぐ", Forms{Polite: "泳ぎます", Te: "泳いで", Past: "泳いだ", Negative: "泳がない", Potential: "泳げる"}},
		{"話す", Forms{Polite: "話します", Te: "話して", Past: "話した", Negative: "話さない", Potential: "話せる"}},
		{"待つ", Forms{Polite: "待ちます", Te: "待って", Past: "待った", Negative: "待たない", Potential: "待てる"}},
		{"死ぬ", Forms{Polite: "死にます", Te: "死んで", Past: "死んだ", Negative: "死なない", Potential: "死ねる"}},
		{"遊ぶ", Forms{Polite: "遊びます", Te: "遊んで", Past: "遊んだ", Negative: "遊ばない", Potential: "遊べる"}},
		{"買う", Forms{Polite: "買います", Te: "買って", Past: "買った", Negative: "買わない", Potential: "買える"}},
		{"乗る", Forms{Polite: "乗ります", Te: "乗って", Past: "乗った", Negative: "乗らない", Potential: "乗れる"}},
	}
	for _, tc := range cases {
		if got := Conjugate(tc.word, ""); got != tc.want {
			t.Errorf("Conjugate(%q) = %+v, want %+v", tc.word, got, tc.want)
		}
	}
}

func TestConjugateSuruCompound(t *testing.T) {
	got := Conjugate("勉強する", "")
	want := Forms{Polite: "勉強します", Te: "勉強して", Past: "勉強した", Negative: "勉強しない", Potential: "勉強できる"}
	if got != want {
		t.Fatalf("Conjugate(勉強する) = %+v, want %+v", got, want)
	}
}

func TestConjugateIrregulars(t *testing.T) {
	cases := []struct {
		word string
		want Forms
	}{
		{"する", Forms{Polite: "します", Te: "して", Past: "した", Negative: "しない", Potential: "できる"}},
		{"来る", Forms{Polite: "来ます", Te: "来て", Past: "来た", Negative: "来ない", Potential: "来られる"}},
		{"行く", Forms{Polite: "行きます", Te: "行って", Past: "行った", Negative: "行かない", Potential: "行ける"}},
		{"ある", Forms{Polite: "あります", Te: "あって", Past: "あった", Negative: "ない", Potential: "ありえる"}},
	}
	for _, tc := range cases {
		if got := Conjugate(tc.word, ""); got != tc.want {
			t.Errorf("Conjugate(%q) = %+v, want %+v", tc.word, got, tc.want)
		}
	}
}

func TestConjugateNonVerbIsEmpty(t *testing.T) {
	for _, word := range []string{"猫", "きれい", ""} {
		if got := Conjugate(word, ""); !got.Empty() {
			t.Errorf("Conjugate(%q) = %+v, want empty", word, got)
		}
	}
	if got := Conjugate("食べる", "Noun"); !got.Empty() {
		t.Errorf("non-verb hint should force empty forms, got %+v", got)
	}
}

func TestConjugateNeverPartial(t *testing.T) {
	words := []string{"食べる", "飲む", "勉強する", "来る", "猫"}
	for _, word := range words {
		forms := Conjugate(word, "")
		filled := 0
		for _, f := range []string{forms.Polite, forms.Te, forms.Past, forms.Negative, forms.Potential} {
			if f != "" {
				filled++
			}
		}
		if filled != 0 && filled != 5 {
			t.Errorf("Conjugate(%q) produced partial forms: %+v", word, forms)
		}
	}
}
