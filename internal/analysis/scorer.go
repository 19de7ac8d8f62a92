// Package analysis implements the uniqueness scoring engine: a pure,
// deterministic transform from one disclosed trade plus its precomputed
// context (trader history, market data, batch trading patterns, committee
// jurisdiction) to a six-factor 0-100 score with an explanation.
//
// The package performs no I/O. All external lookups must be resolved to
// plain values before scoring; absence of any optional input degrades the
// related sub-score to its documented default instead of failing.
package analysis

import (
	"math"
	"sort"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// neutralRarity is the score assigned when no pattern data exists at all:
// an unknown symbol could well be unique.
const neutralRarity = 50

// flagCutoff is the sub-score at which a factor's convenience flag turns on.
const flagCutoff = 50

// Score computes the uniqueness result for one trade.
//
// market, pattern and committees may be nil and trader.Committees may be
// empty; every such absence yields the factor's documented no-data score
// (0, except rarity which is neutral at 50) rather than an error or panic.
func Score(
	trade models.Trade,
	trader models.Trader,
	history models.TraderHistory,
	market *models.MarketData,
	pattern *models.TradingPattern,
	committees CommitteeSectorMap,
	cfg Config,
) models.UniquenessResult {
	var r models.UniquenessResult

	r.Factors.MarketCap, r.Explanation.MarketCap = scoreMarketCap(market, cfg.MarketCap)
	r.Factors.Conviction, r.Explanation.Conviction = scoreConviction(trade, history, cfg.Conviction)
	r.Factors.Rarity, r.Explanation.Rarity = scoreRarity(pattern, cfg.Rarity)
	r.Factors.CommitteeRelevance, r.Explanation.CommitteeRelevance = scoreCommitteeRelevance(trader, market, committees)
	r.Factors.Derivative, r.Explanation.Derivative = scoreDerivative(trade.AssetType)
	r.Factors.Ownership, r.Explanation.Ownership = scoreOwnership(trade.Owner)

	weighted := float64(r.Factors.MarketCap)*cfg.Weights.MarketCap +
		float64(r.Factors.Conviction)*cfg.Weights.Conviction +
		float64(r.Factors.Rarity)*cfg.Weights.Rarity +
		float64(r.Factors.CommitteeRelevance)*cfg.Weights.CommitteeRelevance +
		float64(r.Factors.Derivative)*cfg.Weights.Derivative +
		float64(r.Factors.Ownership)*cfg.Weights.Ownership
	r.OverallScore = clamp(int(math.Round(weighted)))

	r.Flags = models.FactorFlags{
		SmallCap:          r.Factors.MarketCap >= flagCutoff,
		HighConviction:    r.Factors.Conviction >= flagCutoff,
		RareSymbol:        r.Factors.Rarity >= flagCutoff,
		CommitteeRelated:  r.Factors.CommitteeRelevance >= flagCutoff,
		DerivativeInstr:   r.Factors.Derivative >= flagCutoff,
		IndirectOwnership: r.Factors.Ownership >= flagCutoff,
	}

	return r
}

// scoreMarketCap buckets the capitalization by the ascending thresholds.
// The score decreases as the cap grows: smaller companies receive less
// analyst scrutiny, so congressional activity in them stands out more.
func scoreMarketCap(market *models.MarketData, th MarketCapThresholds) (int, *models.MarketCapDetail) {
	if market == nil || market.MarketCap == nil {
		return 0, nil
	}
	mc := *market.MarketCap

	score, bucket := 0, "large"
	switch {
	case mc < th.Micro:
		score, bucket = 100, "micro"
	case mc < th.Small:
		score, bucket = 75, "small"
	case mc < th.Mid:
		score, bucket = 25, "mid"
	}
	return score, &models.MarketCapDetail{MarketCap: mc, Bucket: bucket}
}

// scoreConviction compares the trade's range midpoint with the trader's
// historical average. Both must be present and the average nonzero.
func scoreConviction(trade models.Trade, history models.TraderHistory, bands ConvictionBands) (int, *models.ConvictionDetail) {
	if trade.Amount == nil || history.AverageTradeSize == 0 {
		return 0, nil
	}

	mid := trade.Amount.Midpoint()
	multiplier := mid / history.AverageTradeSize

	score := 0
	switch {
	case multiplier >= bands.High:
		score = 100
	case multiplier >= bands.Strong:
		score = 75
	case multiplier >= bands.Elevated:
		score = 50
	case multiplier >= bands.Baseline:
		score = 25
	}
	return score, &models.ConvictionDetail{
		TradeMidpoint: mid,
		TraderAverage: history.AverageTradeSize,
		Multiplier:    multiplier,
	}
}

// scoreRarity derives a base score from how often congress trades the symbol
// and adds a concentration bonus when few distinct members do. The bonus
// tiers are mutually exclusive; the total is clamped to 100. With no pattern
// data at all the factor is neutral.
func scoreRarity(pattern *models.TradingPattern, bands RarityBands) (int, *models.RarityDetail) {
	if pattern == nil {
		return neutralRarity, nil
	}

	score := 0
	switch {
	case pattern.TotalTrades <= bands.Unique:
		score = 100
	case pattern.TotalTrades <= bands.Rare:
		score = 75
	case pattern.TotalTrades <= bands.Uncommon:
		score = 50
	}

	switch {
	case pattern.UniqueTraders == 1:
		score += 25
	case pattern.UniqueTraders <= 3:
		score += 10
	}
	if score > 100 {
		score = 100
	}

	return score, &models.RarityDetail{
		TotalTrades:   pattern.TotalTrades,
		UniqueTraders: pattern.UniqueTraders,
		RecentTrades:  pattern.RecentTrades,
	}
}

// scoreCommitteeRelevance checks the stock's sector and industry tags
// against the union of jurisdictions across all of the trader's committees.
// A trader is relevant when any single committee overlaps; two distinct tag
// matches (e.g. sector via one committee, industry via another) score full.
func scoreCommitteeRelevance(trader models.Trader, market *models.MarketData, committees CommitteeSectorMap) (int, *models.CommitteeDetail) {
	if len(trader.Committees) == 0 || committees == nil || market == nil {
		return 0, nil
	}
	if market.Sector == "" && market.Industry == "" {
		return 0, nil
	}

	overlaps := make(map[string]struct{})
	for _, id := range trader.Committees {
		if market.Sector != "" && containsLabel(committees.Sectors(id), market.Sector) {
			overlaps[market.Sector] = struct{}{}
		}
		if market.Industry != "" && containsLabel(committees.Industries(id), market.Industry) {
			overlaps[market.Industry] = struct{}{}
		}
	}

	score := 0
	switch {
	case len(overlaps) >= 2:
		score = 100
	case len(overlaps) == 1:
		score = 75
	}

	matched := make([]string, 0, len(overlaps))
	for tag := range overlaps {
		matched = append(matched, tag)
	}
	sort.Strings(matched)

	return score, &models.CommitteeDetail{
		Committees: len(trader.Committees),
		Overlaps:   matched,
	}
}

// scoreDerivative scores the instrument class: options, warrants and rights
// score 100, futures and other derivatives 75, plain equity 0.
func scoreDerivative(assetType string) (int, *models.ClassificationDetail) {
	class := ClassifyAsset(assetType)
	if class == AssetUnknown {
		return 0, nil
	}

	score := 0
	switch class {
	case AssetOption, AssetWarrant, AssetRight:
		score = 100
	case AssetFuture, AssetOtherDerivative:
		score = 75
	}
	return score, &models.ClassificationDetail{Input: assetType, Class: class.String()}
}

// scoreOwnership scores indirection in the declared owner: holdings in a
// child's or dependent's name score 100, spouse 75, joint 25, self 0.
func scoreOwnership(owner string) (int, *models.ClassificationDetail) {
	class := ClassifyOwner(owner)
	if class == OwnerUnknown {
		return 0, nil
	}

	score := 0
	switch class {
	case OwnerChild:
		score = 100
	case OwnerSpouse:
		score = 75
	case OwnerJoint:
		score = 25
	}
	return score, &models.ClassificationDetail{Input: owner, Class: class.String()}
}

func containsLabel(labels []string, want string) bool {
	for _, l := range labels {
		if l == want {
			return true
		}
	}
	return false
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
