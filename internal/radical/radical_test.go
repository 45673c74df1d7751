package radical

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"kotoba/internal/resolve"
)

func testCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := LoadCatalog()
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	return catalog
}

func newTestDecomposer(t *testing.T, fetch ComponentFetcher) *Decomposer {
	t.Helper()
	store, err := resolve.OpenStore(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return NewDecomposer(testCatalog(t), store, fetch)
}

func TestCatalogLookup(t *testing.T) {
	catalog := testCatalog(t)
	if catalog.Len() == 0 {
		t.Fatal("catalog is empty")
	}

	rad, ok := catalog.Lookup("水")
	if !ok || rad.Meaning != "water" {
		t.Fatalf("Lookup(水) = %+v, %v", rad, ok)
	}

	rad, ok = catalog.LookupVariant("氵")
	if !ok || rad.Symbol != "水" {
		t.Fatalf("LookupVariant(氵) = %+v, %v", rad, ok)
	}
}

func TestImportanceTiers(t *testing.T) {
	cases := []struct {
		rad  Radical
		want Tier
	}{
		{Radical{Joyo: 10, Frequency: 5}, TierEssential},
		{Radical{Frequency: 700}, TierVeryCommon},
		{Radical{Frequency: 300}, TierCommon},
		{Radical{Frequency: 60}, TierFrequent},
		{Radical{Frequency: 10}, TierRare},
	}
	for _, tc := range cases {
		if got := tc.rad.Importance(); got != tc.want {
			t.Errorf("Importance(%+v) = %s, want %s", tc.rad, got, tc.want)
		}
	}
}

func TestDecomposeSelfRadical(t *testing.T) {
	d := newTestDecomposer(t, func(context.Context, string) ([]string, error) {
		t.Fatal("self-radical must not fetch")
		return nil, nil
	})

	components, fetched := d.Decompose(context.Background(), "水")
	if fetched {
		t.Fatal("self-radical reported a fetch")
	}
	if len(components) != 1 || components[0].Radical.Symbol != "水" {
		t.Fatalf("Decompose(水) = %+v", components)
	}
}

func TestDecomposeMatchesVariants(t *testing.T) {
	d := newTestDecomposer(t, func(_ context.Context, kanji string) ([]string, error) {
		if kanji != "海" {
			t.Fatalf("unexpected lookup for %q", kanji)
		}
		return []string{"氵", "毎"}, nil
	})

	components, fetched := d.Decompose(context.Background(), "海")
	if !fetched {
		t.Fatal("uncached kanji should fetch")
	}
	if len(components) != 1 {
		t.Fatalf("components = %+v", components)
	}
	if components[0].Radical.Symbol != "水" || components[0].FoundAs != "氵" {
		t.Fatalf("variant not recorded: %+v", components[0])
	}
}

func TestDecomposeDeduplicatesBySymbol(t *testing.T) {
	d := newTestDecomposer(t, func(context.Context, string) ([]string, error) {
		return []string{"氵", "水", "日"}, nil
	})

	components, _ := d.Decompose(context.Background(), "漢")
	if len(components) != 2 {
		t.Fatalf("expected dedupe to 2 symbols, got %+v", components)
	}
	if components[0].Radical.Symbol != "水" || components[1].Radical.Symbol != "日" {
		t.Fatalf("order not preserved: %+v", components)
	}
}

func TestDecomposeNormalizesCompatibilityForms(t *testing.T) {
	// U+2F27 KANGXI RADICAL MOTHER-LIKE forms normalize under NFKC; use
	// the compatibility form of 水 (U+2F54) to exercise it.
	d := newTestDecomposer(t, func(context.Context, string) ([]string, error) {
		return []string{"⽔"}, nil
	})

	components, _ := d.Decompose(context.Background(), "泉")
	if len(components) != 1 || components[0].Radical.Symbol != "水" {
		t.Fatalf("compatibility form not normalized: %+v", components)
	}
}

func TestDecomposeCachesComponents(t *testing.T) {
	calls := 0
	d := newTestDecomposer(t, func(context.Context, string) ([]string, error) {
		calls++
		return []string{"亻"}, nil
	})
	ctx := context.Background()

	if _, fetched := d.Decompose(ctx, "休"); !fetched {
		t.Fatal("first decomposition should fetch")
	}
	components, fetched := d.Decompose(ctx, "休")
	if fetched || calls != 1 {
		t.Fatalf("second decomposition fetched again (calls=%d)", calls)
	}
	if len(components) != 1 || components[0].Radical.Symbol != "人" {
		t.Fatalf("cached components = %+v", components)
	}
}

func TestDecomposeFallbackOnFetchFailure(t *testing.T) {
	d := newTestDecomposer(t, func(context.Context, string) ([]string, error) {
		return nil, errors.New("service down")
	})

	// With no decomposition data the substring heuristic still finds
	// catalogued symbols literally present in the input.
	components, fetched := d.Decompose(context.Background(), "火山")
	if !fetched {
		t.Fatal("failed attempt should still report a fetch")
	}
	symbols := make(map[string]bool)
	for _, comp := range components {
		symbols[comp.Radical.Symbol] = true
	}
	if !symbols["火"] || !symbols["山"] {
		t.Fatalf("substring fallback missed symbols: %+v", components)
	}
}
