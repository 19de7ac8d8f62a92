package analysis

import (
	"fmt"
	"math"
)

// weightTolerance allows for float accumulation noise when validating that
// the six weights sum to 1.0.
const weightTolerance = 1e-9

// Weights are the six factor weights. They must sum to 1.0.
type Weights struct {
	MarketCap          float64 `json:"market_cap"`
	Conviction         float64 `json:"conviction"`
	Rarity             float64 `json:"rarity"`
	CommitteeRelevance float64 `json:"committee_relevance"`
	Derivative         float64 `json:"derivative"`
	Ownership          float64 `json:"ownership"`
}

// Sum returns the total of all six weights.
func (w Weights) Sum() float64 {
	return w.MarketCap + w.Conviction + w.Rarity + w.CommitteeRelevance + w.Derivative + w.Ownership
}

// MarketCapThresholds are the ascending bucket boundaries, in dollars.
// Caps below Micro score 100, below Small 75, below Mid 25, else 0.
type MarketCapThresholds struct {
	Micro float64 `json:"micro"`
	Small float64 `json:"small"`
	Mid   float64 `json:"mid"`
}

// ConvictionBands are the trade-size multiplier cutoffs, descending.
// A multiplier at or above High scores 100, Strong 75, Elevated 50,
// Baseline 25; below Baseline scores 0.
type ConvictionBands struct {
	High     float64 `json:"high"`
	Strong   float64 `json:"strong"`
	Elevated float64 `json:"elevated"`
	Baseline float64 `json:"baseline"`
}

// RarityBands are the total-trade-count cutoffs, ascending. Counts at or
// below Unique score 100, Rare 75, Uncommon 50; above Uncommon scores 0.
type RarityBands struct {
	Unique   int `json:"unique"`
	Rare     int `json:"rare"`
	Uncommon int `json:"uncommon"`
}

// Config carries the factor weights and all scoring thresholds. It is
// supplied once per analysis run and immutable during that run.
type Config struct {
	Weights    Weights             `json:"weights"`
	MarketCap  MarketCapThresholds `json:"market_cap"`
	Conviction ConvictionBands     `json:"conviction"`
	Rarity     RarityBands         `json:"rarity"`
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			MarketCap:          0.20,
			Conviction:         0.25,
			Rarity:             0.25,
			CommitteeRelevance: 0.15,
			Derivative:         0.10,
			Ownership:          0.05,
		},
		MarketCap: MarketCapThresholds{
			Micro: 2_000_000_000,
			Small: 10_000_000_000,
			Mid:   100_000_000_000,
		},
		Conviction: ConvictionBands{
			High:     5,
			Strong:   2,
			Elevated: 1.5,
			Baseline: 1,
		},
		Rarity: RarityBands{
			Unique:   1,
			Rare:     3,
			Uncommon: 10,
		},
	}
}

// Validate checks that the weights sum to 1.0 and that every threshold set
// is strictly ordered.
func (c Config) Validate() error {
	if diff := math.Abs(c.Weights.Sum() - 1.0); diff > weightTolerance {
		return fmt.Errorf("factor weights must sum to 1.0, got %v", c.Weights.Sum())
	}
	if !(c.MarketCap.Micro > 0 && c.MarketCap.Micro < c.MarketCap.Small && c.MarketCap.Small < c.MarketCap.Mid) {
		return fmt.Errorf("market cap thresholds must be ascending and positive: %+v", c.MarketCap)
	}
	if !(c.Conviction.High > c.Conviction.Strong && c.Conviction.Strong > c.Conviction.Elevated &&
		c.Conviction.Elevated > c.Conviction.Baseline && c.Conviction.Baseline > 0) {
		return fmt.Errorf("conviction bands must be descending and positive: %+v", c.Conviction)
	}
	if !(c.Rarity.Unique > 0 && c.Rarity.Unique <= c.Rarity.Rare && c.Rarity.Rare <= c.Rarity.Uncommon) {
		return fmt.Errorf("rarity bands must be ascending and positive: %+v", c.Rarity)
	}
	return nil
}
