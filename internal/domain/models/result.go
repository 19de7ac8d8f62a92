package models

import "time"

// FactorScores holds the six 0-100 uniqueness sub-scores.
type FactorScores struct {
	MarketCap          int `json:"market_cap"`
	Conviction         int `json:"conviction"`
	Rarity             int `json:"rarity"`
	CommitteeRelevance int `json:"committee_relevance"`
	Derivative         int `json:"derivative"`
	Ownership          int `json:"ownership"`
}

// FactorFlags are convenience booleans, each true iff the matching sub-score
// is at least 50.
type FactorFlags struct {
	SmallCap          bool `json:"small_cap"`
	HighConviction    bool `json:"high_conviction"`
	RareSymbol        bool `json:"rare_symbol"`
	CommitteeRelated  bool `json:"committee_related"`
	DerivativeInstr   bool `json:"derivative_instrument"`
	IndirectOwnership bool `json:"indirect_ownership"`
}

// MarketCapDetail explains the market-cap sub-score. Present only when
// market data carried a capitalization for the symbol.
type MarketCapDetail struct {
	MarketCap float64 `json:"market_cap"`
	Bucket    string  `json:"bucket"` // micro|small|mid|large
}

// ConvictionDetail explains the conviction sub-score. Present only when both
// the trade amount and the trader average were available.
type ConvictionDetail struct {
	TradeMidpoint float64 `json:"trade_midpoint"`
	TraderAverage float64 `json:"trader_average"`
	Multiplier    float64 `json:"multiplier"`
}

// RarityDetail explains the rarity sub-score. Present only when pattern data
// existed for the symbol.
type RarityDetail struct {
	TotalTrades   int `json:"total_trades"`
	UniqueTraders int `json:"unique_traders"`
	RecentTrades  int `json:"recent_trades"`
}

// CommitteeDetail explains the committee-relevance sub-score. Present only
// when the trader had committees and the stock resolved to at least one
// sector or industry tag.
type CommitteeDetail struct {
	Committees int      `json:"committees"`
	Overlaps   []string `json:"overlaps"` // matched sector/industry tags
}

// ClassificationDetail explains the derivative and ownership sub-scores.
type ClassificationDetail struct {
	Input string `json:"input"` // the free text that was classified
	Class string `json:"class"`
}

// Explanation carries one optional sub-object per factor, populated only
// when the factor had enough data to be meaningfully computed. A missing
// sub-object distinguishes "scored 0 because no data" from a genuine zero.
type Explanation struct {
	MarketCap          *MarketCapDetail      `json:"market_cap,omitempty"`
	Conviction         *ConvictionDetail     `json:"conviction,omitempty"`
	Rarity             *RarityDetail         `json:"rarity,omitempty"`
	CommitteeRelevance *CommitteeDetail      `json:"committee_relevance,omitempty"`
	Derivative         *ClassificationDetail `json:"derivative,omitempty"`
	Ownership          *ClassificationDetail `json:"ownership,omitempty"`
}

// UniquenessResult is the scorer output for one trade: the weighted overall
// score, the six sub-scores, the per-factor explanation, and the flags.
type UniquenessResult struct {
	OverallScore int          `json:"overall_score"` // round(sum(weight_i * factor_i)), clamped to [0,100]
	Factors      FactorScores `json:"factors"`
	Explanation  Explanation  `json:"explanation"`
	Flags        FactorFlags  `json:"flags"`
}

// AnalyzedTrade joins a trade with its filer and uniqueness result.
type AnalyzedTrade struct {
	Trade  Trade            `json:"trade"`
	Trader Trader           `json:"trader"`
	Result UniquenessResult `json:"result"`
}

// AnalysisReport is the orchestrator output: every scored trade sorted by
// transaction date descending, plus batch-level summary counters.
type AnalysisReport struct {
	GeneratedAt    time.Time       `json:"generated_at"`
	Trades         []AnalyzedTrade `json:"trades"`
	TotalTrades    int             `json:"total_trades"`
	AverageScore   float64         `json:"average_score"`
	HighUniqueness int             `json:"high_uniqueness"` // trades scoring >= 70
	FlagCounts     map[string]int  `json:"flag_counts"`
}
