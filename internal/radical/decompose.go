package radical

import (
	"context"
	"encoding/json"
	"strings"

	"golang.org/x/text/unicode/norm"

	"kotoba/internal/resolve"
)

// Source is the cache namespace for decomposition lookups.
const Source = "radicals"

// ComponentFetcher performs a live structural decomposition lookup for a
// single kanji, returning its raw component glyphs.
type ComponentFetcher func(ctx context.Context, kanji string) ([]string, error)

// Component is one identified radical within a kanji. FoundAs records the
// stylistic variant actually present when it differs from the canonical
// symbol.
type Component struct {
	Radical Radical
	FoundAs string
}

// Decomposer resolves kanji into catalogued radicals, caching decomposition
// data per character.
type Decomposer struct {
	catalog  *Catalog
	resolver *resolve.Resolver
	fetch    ComponentFetcher
}

// NewDecomposer builds a decomposer over store. fetch may be nil for
// cache-only operation. opts are forwarded to the resolver.
func NewDecomposer(catalog *Catalog, store *resolve.Store, fetch ComponentFetcher, opts ...resolve.Option) *Decomposer {
	return &Decomposer{
		catalog:  catalog,
		resolver: resolve.New(Source, store, opts...),
		fetch:    fetch,
	}
}

// Decompose identifies the catalogued radicals inside kanji and reports
// whether a live fetch was performed. A kanji that is itself a radical
// returns only itself. Results are ordered as the components appear and
// deduplicated by canonical symbol.
func (d *Decomposer) Decompose(ctx context.Context, kanji string) ([]Component, bool) {
	if rad, ok := d.catalog.Lookup(kanji); ok {
		return []Component{{Radical: rad}}, false
	}

	result := d.resolver.Resolve(ctx, kanji, func(ctx context.Context) (string, error) {
		if d.fetch == nil {
			return "", nil
		}
		components, err := d.fetch(ctx, kanji)
		if err != nil {
			return "", err
		}
		return encodeComponents(components), nil
	})

	if result.Known {
		if matched := d.match(decodeComponents(result.Value)); len(matched) > 0 {
			return matched, result.Fetched
		}
	}

	return d.substringFallback(kanji), result.Fetched
}

// match maps raw component glyphs onto the catalog, normalizing each to its
// compatibility-canonical form first. Components the catalog doesn't know are
// skipped.
func (d *Decomposer) match(components []string) []Component {
	var matched []Component
	seen := make(map[string]bool)

	for _, comp := range components {
		canonical := norm.NFKC.String(comp)

		if rad, ok := d.catalog.Lookup(canonical); ok {
			if !seen[rad.Symbol] {
				seen[rad.Symbol] = true
				matched = append(matched, Component{Radical: rad})
			}
			continue
		}
		if rad, ok := d.catalog.LookupVariant(canonical); ok {
			if !seen[rad.Symbol] {
				seen[rad.Symbol] = true
				matched = append(matched, Component{Radical: rad, FoundAs: canonical})
			}
		}
	}
	return matched
}

// substringFallback scans the catalog for symbols or variants visually
// contained in the kanji. Best effort for when decomposition data is
// unavailable.
func (d *Decomposer) substringFallback(kanji string) []Component {
	var matched []Component
	seen := make(map[string]bool)

	for _, rad := range d.catalog.ordered {
		if seen[rad.Symbol] {
			continue
		}
		if rad.Symbol != kanji && strings.Contains(kanji, rad.Symbol) {
			seen[rad.Symbol] = true
			matched = append(matched, Component{Radical: rad})
			continue
		}
		for _, variant := range rad.Variants {
			if strings.Contains(kanji, variant) {
				seen[rad.Symbol] = true
				matched = append(matched, Component{Radical: rad, FoundAs: variant})
				break
			}
		}
	}
	return matched
}

func encodeComponents(components []string) string {
	if len(components) == 0 {
		return ""
	}
	data, err := json.Marshal(components)
	if err != nil {
		return ""
	}
	return string(data)
}

func decodeComponents(value string) []string {
	var components []string
	if err := json.Unmarshal([]byte(value), &components); err != nil {
		return nil
	}
	return components
}
