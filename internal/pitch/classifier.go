package pitch

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"kotoba/internal/resolve"
)

// Source is the cache namespace for pitch accent lookups.
const Source = "pitch"

//go:embed curated.json
var curatedJSON []byte

type curatedEntry struct {
	Reading  string `json:"reading"`
	Downstep int    `json:"downstep"`
}

// CuratedTable parses the bundled accent table into the form the resolver
// consumes: word mapped to its downstep position as a decimal string.
func CuratedTable() (map[string]string, error) {
	var entries map[string]curatedEntry
	if err := json.Unmarshal(curatedJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse curated accent table: %w", err)
	}
	table := make(map[string]string, len(entries))
	for word, entry := range entries {
		table[word] = strconv.Itoa(entry.Downstep)
	}
	return table, nil
}

// TagFetcher performs a live lookup returning whatever metadata tags the
// dictionary attaches to the word. Accent positions, when present at all,
// hide inside those tags.
type TagFetcher func(ctx context.Context, word, reading string) ([]string, error)

// Accent is a classified pitch accent for one word.
type Accent struct {
	Word     string
	Reading  string
	Morae    []string
	Downstep int
	Pattern  Pattern
}

// Known reports whether the accent position was resolved.
func (a Accent) Known() bool { return a.Downstep != UnknownDownstep }

// Classifier resolves pitch accent through the layered curated, cached,
// fetched policy.
type Classifier struct {
	resolver *resolve.Resolver
	fetch    TagFetcher
}

// NewClassifier builds a classifier over store. fetch may be nil for
// cache-and-curated-only operation. opts are forwarded to the resolver.
func NewClassifier(store *resolve.Store, fetch TagFetcher, opts ...resolve.Option) (*Classifier, error) {
	curated, err := CuratedTable()
	if err != nil {
		return nil, err
	}
	opts = append([]resolve.Option{resolve.WithCurated(curated)}, opts...)
	return &Classifier{
		resolver: resolve.New(Source, store, opts...),
		fetch:    fetch,
	}, nil
}

// Classify resolves the accent of word and reports whether a live fetch was
// performed. Unresolvable words come back with UnknownDownstep rather than an
// error.
func (c *Classifier) Classify(ctx context.Context, word, reading string) (Accent, bool) {
	morae := SplitMorae(reading)

	result := c.resolver.Resolve(ctx, word, func(ctx context.Context) (string, error) {
		if c.fetch == nil {
			return "", nil
		}
		tags, err := c.fetch(ctx, word, reading)
		if err != nil {
			return "", err
		}
		return ExtractDownstep(tags), nil
	})

	downstep := UnknownDownstep
	if result.Known {
		if v, err := strconv.Atoi(result.Value); err == nil && v >= 0 {
			downstep = v
		}
	}

	return Accent{
		Word:     word,
		Reading:  reading,
		Morae:    morae,
		Downstep: downstep,
		Pattern:  Classify(downstep, len(morae)),
	}, result.Fetched
}

var digitsRe = regexp.MustCompile(`\d+`)

// ExtractDownstep scans metadata tags for an accent indicator and returns the
// first number found in a pitch-related tag, or "" when none exists.
func ExtractDownstep(tags []string) string {
	for _, tag := range tags {
		if !strings.Contains(strings.ToLower(tag), "pitch") {
			continue
		}
		if num := digitsRe.FindString(tag); num != "" {
			return num
		}
	}
	return ""
}
