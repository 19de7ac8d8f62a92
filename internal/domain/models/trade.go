package models

import "time"

// AmountRange is the bucketed dollar range a disclosure declares for a
// transaction (e.g. "$15,001 - $50,000"). Disclosures never report exact
// figures, only ranges; Low == High when the filing declared a single bound.
type AmountRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Midpoint returns (Low+High)/2, the value used for all size comparisons.
func (a AmountRange) Midpoint() float64 {
	return (a.Low + a.High) / 2
}

// Trade represents a single disclosed transaction from a senate or house
// periodic transaction report. Free-text fields (AssetType, Type, Owner) are
// kept verbatim; classification happens in the analysis layer.
//
// Trades are immutable once ingested and owned by the batch they were
// fetched in.
type Trade struct {
	Symbol           string       `json:"symbol"`            // uppercase ticker, empty when the filing has none
	AssetDescription string       `json:"asset_description"` // e.g. "Apple Inc. Common Stock"
	AssetType        string       `json:"asset_type"`        // free text, e.g. "Stock", "Stock Option"
	Type             string       `json:"type"`              // free text containing purchase/sale/exchange
	Amount           *AmountRange `json:"amount"`            // nil when the declared amount was unparseable
	TransactionDate  time.Time    `json:"transaction_date"`  // zero when the filing had no parseable date
	Owner            string       `json:"owner"`             // free text: Self/Spouse/Child/Joint/...
	Chamber          string       `json:"chamber"`           // senate|house
	FirstName        string       `json:"first_name"`        // filer first name as disclosed
	LastName         string       `json:"last_name"`         // filer last name as disclosed
}

// Trader is a congress member. Identity at this layer is name-based
// (chamber + normalized first/last name) because the disclosure feeds carry
// no stable member ID; see analysis.TraderIDFunc.
type Trader struct {
	ID         string   `json:"id"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Chamber    string   `json:"chamber"` // senate|house
	Committees []string `json:"committees"`
	Party      string   `json:"party,omitempty"`
}

// TraderHistory is derived per analysis batch, never persisted: the average
// range midpoint across a trader's parseable trades plus the count of all
// their trades (including ones without a parseable amount).
type TraderHistory struct {
	AverageTradeSize float64 `json:"average_trade_size"` // 0 when no trade had a parseable amount
	TotalTradeCount  int     `json:"total_trade_count"`
}

// MarketData is a per-symbol snapshot sourced from the market-data provider.
// Any field may be absent for a symbol (delisted or unsupported tickers);
// absence degrades the related sub-scores, it never fails scoring.
type MarketData struct {
	Symbol        string    `json:"symbol"`
	MarketCap     *float64  `json:"market_cap"`
	Sector        string    `json:"sector"`
	Industry      string    `json:"industry"`
	AverageVolume *float64  `json:"average_volume"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// TradingPattern aggregates congressional activity for one symbol over the
// whole batch: how often it is traded, by how many distinct members, and how
// much of that activity fell inside the trailing 90-day window.
type TradingPattern struct {
	Symbol        string `json:"symbol"`
	TotalTrades   int    `json:"total_trades"`
	UniqueTraders int    `json:"unique_traders"`
	RecentTrades  int    `json:"recent_trades"`
}
