package analysis

import (
	"math"
	"testing"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

func f64(v float64) *float64 { return &v }

func md(cap *float64, sector, industry string) *models.MarketData {
	return &models.MarketData{Symbol: "TEST", MarketCap: cap, Sector: sector, Industry: industry}
}

func TestScoreMarketCap_Buckets(t *testing.T) {
	th := DefaultConfig().MarketCap
	cases := []struct {
		name   string
		market *models.MarketData
		want   int
		bucket string
	}{
		{"no market data", nil, 0, ""},
		{"no cap", md(nil, "Energy", ""), 0, ""},
		{"micro", md(f64(500_000_000), "", ""), 100, "micro"},
		{"small", md(f64(5_000_000_000), "", ""), 75, "small"},
		{"mid", md(f64(50_000_000_000), "", ""), 25, "mid"},
		{"large", md(f64(500_000_000_000), "", ""), 0, "large"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, detail := scoreMarketCap(tc.market, th)
			if score != tc.want {
				t.Fatalf("score: want %d got %d", tc.want, score)
			}
			if tc.bucket == "" {
				if detail != nil {
					t.Fatalf("no-data case must omit the explanation, got %+v", detail)
				}
			} else if detail == nil || detail.Bucket != tc.bucket {
				t.Fatalf("bucket: want %q got %+v", tc.bucket, detail)
			}
		})
	}
}

// Market cap score never increases as the cap grows.
func TestScoreMarketCap_Monotonic(t *testing.T) {
	th := DefaultConfig().MarketCap
	caps := []float64{1, 1e6, 1e9, 1.99e9, 2e9, 9.99e9, 1e10, 9.9e10, 1e11, 1e12}
	prev := 101
	for _, c := range caps {
		score, _ := scoreMarketCap(md(f64(c), "", ""), th)
		if score > prev {
			t.Fatalf("score increased with cap: cap=%v score=%d prev=%d", c, score, prev)
		}
		prev = score
	}
}

func TestScoreConviction(t *testing.T) {
	bands := DefaultConfig().Conviction
	amt := &models.AmountRange{Low: 15001, High: 50000} // mid 32500.5

	cases := []struct {
		name    string
		trade   models.Trade
		history models.TraderHistory
		want    int
	}{
		{"no amount", models.Trade{}, models.TraderHistory{AverageTradeSize: 10000}, 0},
		{"no average", models.Trade{Amount: amt}, models.TraderHistory{}, 0},
		{"below baseline", models.Trade{Amount: &models.AmountRange{Low: 1000, High: 3000}}, models.TraderHistory{AverageTradeSize: 10000}, 0},
		{"baseline", models.Trade{Amount: &models.AmountRange{Low: 10000, High: 12000}}, models.TraderHistory{AverageTradeSize: 10000}, 25},
		{"elevated", models.Trade{Amount: &models.AmountRange{Low: 15000, High: 17000}}, models.TraderHistory{AverageTradeSize: 10000}, 50},
		{"strong 3.25x", models.Trade{Amount: amt}, models.TraderHistory{AverageTradeSize: 10000}, 75},
		{"high", models.Trade{Amount: &models.AmountRange{Low: 50000, High: 50000}}, models.TraderHistory{AverageTradeSize: 10000}, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := scoreConviction(tc.trade, tc.history, bands)
			if score != tc.want {
				t.Fatalf("want %d got %d", tc.want, score)
			}
		})
	}
}

func TestScoreConviction_MultiplierDetail(t *testing.T) {
	score, detail := scoreConviction(
		models.Trade{Amount: &models.AmountRange{Low: 15001, High: 50000}},
		models.TraderHistory{AverageTradeSize: 10000},
		DefaultConfig().Conviction,
	)
	if score != 75 {
		t.Fatalf("score: want 75 got %d", score)
	}
	if detail == nil || detail.TradeMidpoint != 32500.5 {
		t.Fatalf("detail: %+v", detail)
	}
	if math.Abs(detail.Multiplier-3.25005) > 1e-9 {
		t.Fatalf("multiplier: want 3.25005 got %v", detail.Multiplier)
	}
}

func TestScoreRarity(t *testing.T) {
	bands := DefaultConfig().Rarity
	cases := []struct {
		name    string
		pattern *models.TradingPattern
		want    int
	}{
		{"no pattern is neutral", nil, 50},
		{"single trade single trader clamps at 100", &models.TradingPattern{TotalTrades: 1, UniqueTraders: 1}, 100},
		{"rare with lone trader", &models.TradingPattern{TotalTrades: 2, UniqueTraders: 1}, 100},
		{"rare with two traders", &models.TradingPattern{TotalTrades: 3, UniqueTraders: 2}, 85},
		{"uncommon", &models.TradingPattern{TotalTrades: 8, UniqueTraders: 5}, 50},
		{"common", &models.TradingPattern{TotalTrades: 50, UniqueTraders: 30}, 0},
		{"common but concentrated", &models.TradingPattern{TotalTrades: 50, UniqueTraders: 3}, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, detail := scoreRarity(tc.pattern, bands)
			if score != tc.want {
				t.Fatalf("want %d got %d", tc.want, score)
			}
			if score < 0 || score > 100 {
				t.Fatalf("score out of range: %d", score)
			}
			if tc.pattern == nil && detail != nil {
				t.Fatalf("neutral case must omit the explanation")
			}
		})
	}
}

func TestScoreCommitteeRelevance(t *testing.T) {
	tax := NewTaxonomy()
	armed := models.Trader{Committees: []string{"SSAS"}}

	cases := []struct {
		name       string
		trader     models.Trader
		market     *models.MarketData
		committees CommitteeSectorMap
		want       int
	}{
		{"no committees", models.Trader{}, md(nil, "Industrials", "Aerospace & Defense"), tax, 0},
		{"nil sector map", armed, md(nil, "Industrials", ""), nil, 0},
		{"no market data", armed, nil, tax, 0},
		{"untagged stock", armed, md(nil, "", ""), tax, 0},
		{"no overlap", armed, md(nil, "Healthcare", "Biotechnology"), tax, 0},
		{"sector only", armed, md(nil, "Industrials", "Biotechnology"), tax, 75},
		{"sector and industry", armed, md(nil, "Industrials", "Aerospace & Defense"), tax, 100},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			score, _ := scoreCommitteeRelevance(tc.trader, tc.market, tc.committees)
			if score != tc.want {
				t.Fatalf("want %d got %d", tc.want, score)
			}
		})
	}
}

// A trader sitting on two committees, each matching a different one of the
// stock's two tags, scores full even though neither committee alone would.
func TestScoreCommitteeRelevance_UnionAcrossCommittees(t *testing.T) {
	tax := NewTaxonomy()
	// SSHR covers the Healthcare sector but not Aerospace & Defense;
	// SSAS covers Aerospace & Defense but not Healthcare.
	trader := models.Trader{Committees: []string{"SSHR", "SSAS"}}
	stock := md(nil, "Healthcare", "Aerospace & Defense")

	score, detail := scoreCommitteeRelevance(trader, stock, tax)
	if score != 100 {
		t.Fatalf("union semantics: want 100 got %d", score)
	}
	if detail == nil || len(detail.Overlaps) != 2 {
		t.Fatalf("want 2 overlapping tags, got %+v", detail)
	}

	for _, id := range trader.Committees {
		single, _ := scoreCommitteeRelevance(models.Trader{Committees: []string{id}}, stock, tax)
		if single == 100 {
			t.Fatalf("committee %s alone should not score 100", id)
		}
	}
}

func TestScoreDerivativeAndOwnership(t *testing.T) {
	if s, _ := scoreDerivative("Stock Option"); s != 100 {
		t.Errorf("Stock Option: want 100 got %d", s)
	}
	if s, _ := scoreDerivative("Common Stock"); s != 0 {
		t.Errorf("Common Stock: want 0 got %d", s)
	}
	if s, _ := scoreDerivative("Commodity Future"); s != 75 {
		t.Errorf("Commodity Future: want 75 got %d", s)
	}
	if s, d := scoreDerivative(""); s != 0 || d != nil {
		t.Errorf("empty asset type: want 0 and no detail, got %d %+v", s, d)
	}

	// Ownership scoring is casing-idempotent.
	upper, _ := scoreOwnership("SPOUSE")
	lower, _ := scoreOwnership("spouse")
	if upper != 75 || lower != 75 {
		t.Errorf("spouse casing: want 75/75 got %d/%d", upper, lower)
	}
	if s, _ := scoreOwnership("Dependent Child"); s != 100 {
		t.Errorf("dependent child: want 100 got %d", s)
	}
	if s, _ := scoreOwnership("Joint"); s != 25 {
		t.Errorf("joint: want 25 got %d", s)
	}
	if s, _ := scoreOwnership("Self"); s != 0 {
		t.Errorf("self: want 0 got %d", s)
	}
}

// Spec scenario: spouse-owned trade with no market data, no committees and a
// commonly traded symbol scores round(75 * 0.05) = 4 overall.
func TestScore_SpouseOnlySignal(t *testing.T) {
	trade := models.Trade{Symbol: "AAPL", Owner: "Spouse", AssetType: "Stock"}
	pattern := &models.TradingPattern{Symbol: "AAPL", TotalTrades: 50, UniqueTraders: 30}

	r := Score(trade, models.Trader{}, models.TraderHistory{}, nil, pattern, NewTaxonomy(), DefaultConfig())

	want := models.FactorScores{Ownership: 75}
	if r.Factors != want {
		t.Fatalf("factors: want %+v got %+v", want, r.Factors)
	}
	if r.OverallScore != 4 {
		t.Fatalf("overall: want 4 got %d", r.OverallScore)
	}
	if !r.Flags.IndirectOwnership || r.Flags.SmallCap || r.Flags.RareSymbol {
		t.Fatalf("flags: %+v", r.Flags)
	}
	if r.Explanation.MarketCap != nil || r.Explanation.Conviction != nil {
		t.Fatalf("missing-data factors must omit explanations: %+v", r.Explanation)
	}
	if r.Explanation.Ownership == nil || r.Explanation.Ownership.Class != "spouse" {
		t.Fatalf("ownership explanation: %+v", r.Explanation.Ownership)
	}
}

// The overall score is always the rounded weighted sum of the sub-scores.
func TestScore_WeightedSumInvariant(t *testing.T) {
	cfg := DefaultConfig()
	tax := NewTaxonomy()
	trades := []struct {
		name    string
		trade   models.Trade
		trader  models.Trader
		history models.TraderHistory
		market  *models.MarketData
		pattern *models.TradingPattern
	}{
		{
			name:    "everything hot",
			trade:   models.Trade{Symbol: "TINY", AssetType: "Stock Option", Owner: "Child", Amount: &models.AmountRange{Low: 500000, High: 500000}},
			trader:  models.Trader{Committees: []string{"SSAS"}},
			history: models.TraderHistory{AverageTradeSize: 10000, TotalTradeCount: 12},
			market:  &models.MarketData{MarketCap: f64(100_000_000), Sector: "Industrials", Industry: "Aerospace & Defense"},
			pattern: &models.TradingPattern{TotalTrades: 1, UniqueTraders: 1},
		},
		{
			name:  "everything cold",
			trade: models.Trade{Symbol: "MEGA", AssetType: "Stock", Owner: "Self"},
		},
		{
			name:    "mixed",
			trade:   models.Trade{Symbol: "MID", AssetType: "Stock", Owner: "Joint", Amount: &models.AmountRange{Low: 1001, High: 15000}},
			history: models.TraderHistory{AverageTradeSize: 8000, TotalTradeCount: 3},
			market:  &models.MarketData{MarketCap: f64(20_000_000_000)},
			pattern: &models.TradingPattern{TotalTrades: 7, UniqueTraders: 4},
		},
	}

	for _, tc := range trades {
		t.Run(tc.name, func(t *testing.T) {
			r := Score(tc.trade, tc.trader, tc.history, tc.market, tc.pattern, tax, cfg)
			want := int(math.Round(
				float64(r.Factors.MarketCap)*cfg.Weights.MarketCap +
					float64(r.Factors.Conviction)*cfg.Weights.Conviction +
					float64(r.Factors.Rarity)*cfg.Weights.Rarity +
					float64(r.Factors.CommitteeRelevance)*cfg.Weights.CommitteeRelevance +
					float64(r.Factors.Derivative)*cfg.Weights.Derivative +
					float64(r.Factors.Ownership)*cfg.Weights.Ownership))
			if r.OverallScore != want {
				t.Fatalf("overall: want %d got %d (factors %+v)", want, r.OverallScore, r.Factors)
			}
			if r.OverallScore < 0 || r.OverallScore > 100 {
				t.Fatalf("overall out of range: %d", r.OverallScore)
			}
		})
	}
}

// Identical inputs always produce identical outputs, and nil optional
// context never panics.
func TestScore_DeterministicAndNilSafe(t *testing.T) {
	trade := models.Trade{Symbol: "NVDA", AssetType: "Stock Option", Owner: "Spouse", Amount: &models.AmountRange{Low: 15001, High: 50000}}
	trader := models.Trader{Committees: []string{"SSAS", "SSHR"}}
	history := models.TraderHistory{AverageTradeSize: 10000}
	cfg := DefaultConfig()

	a := Score(trade, trader, history, nil, nil, nil, cfg)
	b := Score(trade, trader, history, nil, nil, nil, cfg)
	if a.OverallScore != b.OverallScore || a.Factors != b.Factors {
		t.Fatalf("scoring must be deterministic: %+v vs %+v", a, b)
	}
	if a.Factors.MarketCap != 0 || a.Factors.CommitteeRelevance != 0 {
		t.Fatalf("nil context must degrade to 0: %+v", a.Factors)
	}
	if a.Factors.Rarity != 50 {
		t.Fatalf("nil pattern must be neutral 50, got %d", a.Factors.Rarity)
	}
}

func TestConfig_Validate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config must validate: %v", err)
	}

	bad := DefaultConfig()
	bad.Weights.Ownership = 0.5
	if err := bad.Validate(); err == nil {
		t.Fatalf("weights not summing to 1 must fail validation")
	}

	bad = DefaultConfig()
	bad.MarketCap.Small = bad.MarketCap.Mid + 1
	if err := bad.Validate(); err == nil {
		t.Fatalf("unordered market cap thresholds must fail validation")
	}

	bad = DefaultConfig()
	bad.Conviction.Baseline = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("zero conviction baseline must fail validation")
	}

	bad = DefaultConfig()
	bad.Rarity.Rare = 0
	if err := bad.Validate(); err == nil {
		t.Fatalf("unordered rarity bands must fail validation")
	}
}
