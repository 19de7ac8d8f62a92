package analysis

import (
	"strings"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// TraderIDFunc derives a trader identity from disclosure fields. The
// disclosure feeds carry no stable member ID, so the default is name-based;
// keeping it behind a function type lets a stable-ID source replace it later
// without touching the scorer or the builders.
type TraderIDFunc func(chamber, firstName, lastName string) string

// NameBasedID is the default identity: normalized chamber, first and last
// name joined with ':'. Known limitation: name collisions and nickname
// variants map to the same or different identities silently.
func NameBasedID(chamber, firstName, lastName string) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return norm(chamber) + ":" + norm(firstName) + ":" + norm(lastName)
}

// BuildHistories groups a batch of trades by trader identity and computes
// each trader's history: the average range midpoint across trades with a
// parseable amount, and the count of all their trades.
//
// Trades without a parseable amount still count toward TotalTradeCount but
// are excluded from the average rather than treated as zero.
func BuildHistories(trades []models.Trade, id TraderIDFunc) map[string]models.TraderHistory {
	type acc struct {
		sum   float64
		sized int
		total int
	}
	accs := make(map[string]*acc)

	for _, t := range trades {
		key := id(t.Chamber, t.FirstName, t.LastName)
		a, ok := accs[key]
		if !ok {
			a = &acc{}
			accs[key] = a
		}
		a.total++
		if t.Amount != nil {
			a.sum += t.Amount.Midpoint()
			a.sized++
		}
	}

	out := make(map[string]models.TraderHistory, len(accs))
	for key, a := range accs {
		h := models.TraderHistory{TotalTradeCount: a.total}
		if a.sized > 0 {
			h.AverageTradeSize = a.sum / float64(a.sized)
		}
		out[key] = h
	}
	return out
}
