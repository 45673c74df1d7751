// Package radical decomposes kanji into catalogued structural components.
package radical

import (
	_ "embed"
	"encoding/json"
	"fmt"
)

//go:embed radicals.json
var catalogJSON []byte

// Radical is one catalogued component with its study metadata.
type Radical struct {
	Symbol    string   `json:"symbol"`
	Variants  []string `json:"variants"`
	Meaning   string   `json:"meaning"`
	Frequency int      `json:"frequency"`
	Joyo      int      `json:"joyo"`
}

// Tier names an importance band for prioritizing study.
type Tier string

const (
	// TierEssential marks radicals appearing in the school curriculum
	// kanji lists.
	TierEssential Tier = "essential"
	// TierVeryCommon and the bands below derive from general usage
	// frequency.
	TierVeryCommon Tier = "very common"
	TierCommon     Tier = "common"
	TierFrequent   Tier = "frequent"
	TierRare       Tier = "rare"
)

// Importance bands a radical by curriculum membership first, general
// frequency second.
func (r Radical) Importance() Tier {
	switch {
	case r.Joyo > 0:
		return TierEssential
	case r.Frequency >= 500:
		return TierVeryCommon
	case r.Frequency >= 200:
		return TierCommon
	case r.Frequency >= 50:
		return TierFrequent
	default:
		return TierRare
	}
}

// Catalog indexes the bundled radical set by canonical symbol and by
// stylistic variant.
type Catalog struct {
	ordered   []Radical
	bySymbol  map[string]Radical
	byVariant map[string]Radical
}

// LoadCatalog parses the embedded radical data.
func LoadCatalog() (*Catalog, error) {
	var entries []Radical
	if err := json.Unmarshal(catalogJSON, &entries); err != nil {
		return nil, fmt.Errorf("parse radical catalog: %w", err)
	}

	c := &Catalog{
		ordered:   entries,
		bySymbol:  make(map[string]Radical, len(entries)),
		byVariant: make(map[string]Radical),
	}
	for _, rad := range entries {
		c.bySymbol[rad.Symbol] = rad
		for _, variant := range rad.Variants {
			c.byVariant[variant] = rad
		}
	}
	return c, nil
}

// Lookup finds a radical by canonical symbol.
func (c *Catalog) Lookup(symbol string) (Radical, bool) {
	rad, ok := c.bySymbol[symbol]
	return rad, ok
}

// LookupVariant finds a radical by one of its stylistic variants.
func (c *Catalog) LookupVariant(variant string) (Radical, bool) {
	rad, ok := c.byVariant[variant]
	return rad, ok
}

// Len reports the catalog size.
func (c *Catalog) Len() int { return len(c.ordered) }
