package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hmartins/capitolpulse/internal/analysis"
	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// disclosureRecord mirrors one transaction object in the senate/house
// disclosure feed dumps. All fields are free text as filed.
type disclosureRecord struct {
	TransactionDate  string `json:"transaction_date"`
	Owner            string `json:"owner"`
	Ticker           string `json:"ticker"`
	AssetDescription string `json:"asset_description"`
	AssetType        string `json:"asset_type"`
	Type             string `json:"type"`
	Amount           string `json:"amount"`
	Senator          string `json:"senator"`
	Representative   string `json:"representative"`
}

// dateLayouts are tried in order when parsing disclosure dates. The feeds
// mix US-style and ISO dates.
var dateLayouts = []string{"01/02/2006", "2006-01-02"}

// noTicker marks placeholder values the feeds use when a filing has no
// symbol.
var noTicker = map[string]struct{}{"": {}, "--": {}, "N/A": {}, "NONE": {}}

// parseDisclosureFile reads one chamber's disclosure dump and converts every
// record into a Trade. Malformed JSON fails the whole file; malformed
// individual fields (dates, amounts, placeholder tickers) are tolerated and
// mapped to their zero/absent values.
func parseDisclosureFile(path, chamber string) ([]models.Trade, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var records []disclosureRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	trades := make([]models.Trade, 0, len(records))
	for _, rec := range records {
		trades = append(trades, recordToTrade(rec, chamber))
	}
	return trades, nil
}

// recordToTrade converts one disclosure record. It never fails: disclosure
// data is too messy for strict parsing, so unusable fields degrade to their
// absent values and the scorer treats them as missing data.
func recordToTrade(rec disclosureRecord, chamber string) models.Trade {
	t := models.Trade{
		AssetDescription: strings.TrimSpace(rec.AssetDescription),
		AssetType:        strings.TrimSpace(rec.AssetType),
		Type:             strings.TrimSpace(rec.Type),
		Owner:            strings.TrimSpace(rec.Owner),
		Chamber:          chamber,
	}

	sym := strings.ToUpper(strings.TrimSpace(rec.Ticker))
	if _, placeholder := noTicker[sym]; !placeholder {
		t.Symbol = sym
	}

	t.Amount = analysis.ParseAmountRange(rec.Amount)
	t.TransactionDate = parseDisclosureDate(rec.TransactionDate)

	filer := rec.Senator
	if filer == "" {
		filer = rec.Representative
	}
	t.FirstName, t.LastName = splitName(filer)

	return t
}

// parseDisclosureDate tries each known layout and returns the zero time
// when none matches.
func parseDisclosureDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d
		}
	}
	return time.Time{}
}

// honorifics are stripped from filer names before splitting.
var honorifics = map[string]struct{}{
	"hon.": {}, "hon": {}, "mr.": {}, "mrs.": {}, "ms.": {}, "dr.": {},
}

// splitName splits a disclosed filer name into first and last. The first
// remaining token is the first name, the final token the last name; middle
// names and initials are dropped, matching the name-based identity scheme.
func splitName(full string) (first, last string) {
	fields := strings.Fields(strings.TrimSpace(full))
	for len(fields) > 0 {
		if _, ok := honorifics[strings.ToLower(fields[0])]; !ok {
			break
		}
		fields = fields[1:]
	}
	if len(fields) == 0 {
		return "", ""
	}
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], fields[len(fields)-1]
}
