package analysis

import (
	"strings"
	"time"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// recentWindow is the trailing window used for the recent-trade count,
// anchored to the time the analysis runs, not to any trade date.
const recentWindow = 90 * 24 * time.Hour

// PatternIndex holds per-symbol congressional trading statistics computed
// over one analysis batch.
type PatternIndex struct {
	patterns map[string]models.TradingPattern
}

// BuildPatternIndex groups all trades by uppercased symbol and computes, per
// symbol, the total trade count, the number of distinct traders
// (case-insensitive name identity), and the count of trades dated within the
// last 90 days relative to now. Trades without a symbol are excluded from
// every group.
func BuildPatternIndex(trades []models.Trade, now time.Time) *PatternIndex {
	cutoff := now.Add(-recentWindow)
	patterns := make(map[string]models.TradingPattern)
	traders := make(map[string]map[string]struct{})

	for _, t := range trades {
		sym := strings.ToUpper(strings.TrimSpace(t.Symbol))
		if sym == "" {
			continue
		}

		p := patterns[sym]
		p.Symbol = sym
		p.TotalTrades++
		if !t.TransactionDate.IsZero() && t.TransactionDate.After(cutoff) {
			p.RecentTrades++
		}

		who := strings.ToLower(strings.TrimSpace(t.FirstName)) + "|" + strings.ToLower(strings.TrimSpace(t.LastName))
		set, ok := traders[sym]
		if !ok {
			set = make(map[string]struct{})
			traders[sym] = set
		}
		set[who] = struct{}{}
		p.UniqueTraders = len(set)

		patterns[sym] = p
	}

	return &PatternIndex{patterns: patterns}
}

// Get returns the pattern for a symbol, or a zero-valued pattern for symbols
// the batch never saw. It never returns a missing indicator; use Lookup when
// "no data at all" must be distinguished.
func (ix *PatternIndex) Get(symbol string) models.TradingPattern {
	sym := strings.ToUpper(strings.TrimSpace(symbol))
	if p, ok := ix.patterns[sym]; ok {
		return p
	}
	return models.TradingPattern{Symbol: sym}
}

// Lookup returns the pattern for a symbol and whether the batch contained
// any trade for it.
func (ix *PatternIndex) Lookup(symbol string) (models.TradingPattern, bool) {
	p, ok := ix.patterns[strings.ToUpper(strings.TrimSpace(symbol))]
	return p, ok
}

// Len returns the number of distinct symbols in the index.
func (ix *PatternIndex) Len() int {
	return len(ix.patterns)
}
