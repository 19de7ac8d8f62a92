package dto

import (
	"time"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// ScoredTradeResponse is one scored trade as served by the API.
//
// swagger:model ScoredTradeResponse
type ScoredTradeResponse struct {
	Symbol          string              `json:"symbol" example:"NVDA"`
	AssetType       string              `json:"asset_type" example:"Stock Option"`
	Type            string              `json:"type" example:"purchase"`
	Owner           string              `json:"owner" example:"Spouse"`
	TransactionDate string              `json:"transaction_date" example:"2024-05-20"`
	Trader          string              `json:"trader" example:"Jane Doe"`
	Chamber         string              `json:"chamber" example:"senate"`
	OverallScore    int                 `json:"overall_score" example:"82"`
	Factors         models.FactorScores `json:"factors"`
	Flags           models.FactorFlags  `json:"flags"`
	Explanation     models.Explanation  `json:"explanation"`
}

// AnalysisResponse is the report payload returned by GET /api/v1/analysis.
//
// swagger:model AnalysisResponse
type AnalysisResponse struct {
	GeneratedAt    time.Time             `json:"generated_at"`
	TotalTrades    int                   `json:"total_trades" example:"1240"`
	AverageScore   float64               `json:"average_score" example:"27.4"`
	HighUniqueness int                   `json:"high_uniqueness" example:"31"`
	FlagCounts     map[string]int        `json:"flag_counts"`
	Trades         []ScoredTradeResponse `json:"trades"`
}

// FromAnalyzedTrade maps a domain result to its API shape.
func FromAnalyzedTrade(at models.AnalyzedTrade) ScoredTradeResponse {
	date := ""
	if !at.Trade.TransactionDate.IsZero() {
		date = at.Trade.TransactionDate.Format("2006-01-02")
	}
	return ScoredTradeResponse{
		Symbol:          at.Trade.Symbol,
		AssetType:       at.Trade.AssetType,
		Type:            at.Trade.Type,
		Owner:           at.Trade.Owner,
		TransactionDate: date,
		Trader:          at.Trade.FirstName + " " + at.Trade.LastName,
		Chamber:         at.Trade.Chamber,
		OverallScore:    at.Result.OverallScore,
		Factors:         at.Result.Factors,
		Flags:           at.Result.Flags,
		Explanation:     at.Result.Explanation,
	}
}

// FromReport maps a full analysis report to its API shape.
func FromReport(rep models.AnalysisReport) AnalysisResponse {
	out := AnalysisResponse{
		GeneratedAt:    rep.GeneratedAt,
		TotalTrades:    rep.TotalTrades,
		AverageScore:   rep.AverageScore,
		HighUniqueness: rep.HighUniqueness,
		FlagCounts:     rep.FlagCounts,
		Trades:         make([]ScoredTradeResponse, 0, len(rep.Trades)),
	}
	for _, at := range rep.Trades {
		out.Trades = append(out.Trades, FromAnalyzedTrade(at))
	}
	return out
}
