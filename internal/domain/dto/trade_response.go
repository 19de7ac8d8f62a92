package dto

import "github.com/hmartins/capitolpulse/internal/domain/models"

// TradeResponse is one ingested disclosure row as served by the API.
//
// swagger:model TradeResponse
type TradeResponse struct {
	Symbol           string   `json:"symbol" example:"AAPL"`
	AssetDescription string   `json:"asset_description" example:"Apple Inc. Common Stock"`
	AssetType        string   `json:"asset_type" example:"Stock"`
	Type             string   `json:"type" example:"purchase"`
	AmountLow        *float64 `json:"amount_low,omitempty" example:"15001"`
	AmountHigh       *float64 `json:"amount_high,omitempty" example:"50000"`
	TransactionDate  string   `json:"transaction_date,omitempty" example:"2024-05-20"`
	Owner            string   `json:"owner" example:"Self"`
	Chamber          string   `json:"chamber" example:"house"`
	Trader           string   `json:"trader" example:"Jane Doe"`
}

// FromTrade maps a domain trade to its API shape.
func FromTrade(t models.Trade) TradeResponse {
	out := TradeResponse{
		Symbol:           t.Symbol,
		AssetDescription: t.AssetDescription,
		AssetType:        t.AssetType,
		Type:             t.Type,
		Owner:            t.Owner,
		Chamber:          t.Chamber,
		Trader:           t.FirstName + " " + t.LastName,
	}
	if t.Amount != nil {
		low, high := t.Amount.Low, t.Amount.High
		out.AmountLow, out.AmountHigh = &low, &high
	}
	if !t.TransactionDate.IsZero() {
		out.TransactionDate = t.TransactionDate.Format("2006-01-02")
	}
	return out
}
