package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hmartins/capitolpulse/internal/analysis"
	"github.com/hmartins/capitolpulse/internal/domain/models"
	"github.com/hmartins/capitolpulse/internal/logger"
	"github.com/hmartins/capitolpulse/internal/provider/marketdata"
	"github.com/hmartins/capitolpulse/internal/storage"
)

// highUniquenessCutoff is the overall score above which a trade counts as
// highly unique in the report summary.
const highUniquenessCutoff = 70

// AnalysisService runs the full scoring pipeline over the ingested batch
// and serves stored results.
type AnalysisService interface {
	Analyze(ctx context.Context) (*models.AnalysisReport, error)
	Results(ctx context.Context, limit, minScore int) ([]models.AnalyzedTrade, error)
	Trades(ctx context.Context, since *time.Time) ([]models.Trade, error)
}

// Params wires an analysisService.
type Params struct {
	Repo     storage.Repository
	Fetcher  marketdata.Fetcher
	Traders  map[string]models.Trader // keyed by analysis.NameBasedID
	Taxonomy *analysis.Taxonomy
	Config   analysis.Config
	CacheTTL time.Duration
	Parallel int // concurrent market-data fetches
}

type analysisService struct {
	repo     storage.Repository
	fetcher  marketdata.Fetcher
	traders  map[string]models.Trader
	taxonomy *analysis.Taxonomy
	cfg      analysis.Config
	cacheTTL time.Duration
	parallel int
	now      func() time.Time // indirection for tests
}

// NewAnalysisService builds the orchestrator. The scoring config is
// validated once here; an invalid config is a programming error surfaced
// immediately rather than a degraded run.
func NewAnalysisService(p Params) (AnalysisService, error) {
	if err := p.Config.Validate(); err != nil {
		return nil, err
	}
	if p.Parallel <= 0 {
		p.Parallel = 4
	}
	if p.CacheTTL <= 0 {
		p.CacheTTL = 24 * time.Hour
	}
	return &analysisService{
		repo:     p.Repo,
		fetcher:  p.Fetcher,
		traders:  p.Traders,
		taxonomy: p.Taxonomy,
		cfg:      p.Config,
		cacheTTL: p.CacheTTL,
		parallel: p.Parallel,
		now:      time.Now,
	}, nil
}

// Analyze scores every ingested trade in two phases: a full pass building
// the cross-trade aggregates (pattern index, trader histories) plus the
// market-data join, then an independent per-trade scoring fan-out. Results
// are sorted by transaction date descending and persisted.
func (s *analysisService) Analyze(ctx context.Context) (*models.AnalysisReport, error) {
	trades, err := s.repo.ListTrades(nil)
	if err != nil {
		return nil, err
	}

	report := &models.AnalysisReport{
		GeneratedAt: s.now(),
		FlagCounts:  make(map[string]int),
	}
	if len(trades) == 0 {
		return report, nil
	}

	market, err := s.resolveMarketData(ctx, trades)
	if err != nil {
		return nil, err
	}

	// Aggregation must complete before any trade is scored: conviction and
	// rarity depend on cross-trade state.
	patterns := analysis.BuildPatternIndex(trades, s.now())
	histories := analysis.BuildHistories(trades, analysis.NameBasedID)

	results := make([]models.AnalyzedTrade, len(trades))
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for i, trade := range trades {
		g.Go(func() error {
			trader := s.lookupTrader(trade)

			var md *models.MarketData
			if m, ok := market[trade.Symbol]; ok {
				md = m
			}
			var pattern *models.TradingPattern
			if p, ok := patterns.Lookup(trade.Symbol); ok {
				pattern = &p
			}

			results[i] = models.AnalyzedTrade{
				Trade:  trade,
				Trader: trader,
				Result: analysis.Score(
					trade,
					trader,
					histories[analysis.NameBasedID(trade.Chamber, trade.FirstName, trade.LastName)],
					md,
					pattern,
					s.taxonomy,
					s.cfg,
				),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Presentation order: newest transactions first, undated trades last.
	sort.SliceStable(results, func(i, j int) bool {
		di, dj := results[i].Trade.TransactionDate, results[j].Trade.TransactionDate
		if dj.IsZero() {
			return !di.IsZero()
		}
		if di.IsZero() {
			return false
		}
		return di.After(dj)
	})

	summarize(report, results)

	if err := s.repo.SaveResults(results); err != nil {
		return nil, err
	}
	return report, nil
}

// Results serves the stored output of the latest run.
func (s *analysisService) Results(_ context.Context, limit, minScore int) ([]models.AnalyzedTrade, error) {
	return s.repo.TopResults(limit, minScore)
}

// Trades serves the raw ingested trades, optionally restricted to
// transactions at or after since.
func (s *analysisService) Trades(_ context.Context, since *time.Time) ([]models.Trade, error) {
	return s.repo.ListTrades(since)
}

// resolveMarketData fetches a snapshot for every distinct symbol in the
// batch, cache first. A provider failure for one symbol degrades that
// symbol to "no data" instead of failing the batch; scoring knows how to
// handle absence.
func (s *analysisService) resolveMarketData(ctx context.Context, trades []models.Trade) (map[string]*models.MarketData, error) {
	symbols := make(map[string]struct{})
	for _, t := range trades {
		if sym := strings.ToUpper(strings.TrimSpace(t.Symbol)); sym != "" {
			symbols[sym] = struct{}{}
		}
	}

	var mu sync.Mutex
	out := make(map[string]*models.MarketData, len(symbols))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallel)
	for sym := range symbols {
		g.Go(func() error {
			md, err := s.repo.GetMarketData(sym, s.cacheTTL)
			if err != nil {
				return err
			}
			if md == nil {
				md, err = s.fetcher.Profile(gctx, sym)
				if err != nil {
					logger.L().Warn().Str("symbol", sym).Err(err).Msg("market data fetch failed, scoring without it")
					return nil
				}
				if md != nil {
					if err := s.repo.PutMarketData(md); err != nil {
						return err
					}
				}
			}
			if md != nil {
				mu.Lock()
				out[sym] = md
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// lookupTrader resolves the disclosed filer to a known legislator. Unknown
// filers still get scored, just without committee context.
func (s *analysisService) lookupTrader(trade models.Trade) models.Trader {
	id := analysis.NameBasedID(trade.Chamber, trade.FirstName, trade.LastName)
	if tr, ok := s.traders[id]; ok {
		return tr
	}
	return models.Trader{
		ID:        id,
		FirstName: trade.FirstName,
		LastName:  trade.LastName,
		Chamber:   trade.Chamber,
	}
}

func summarize(report *models.AnalysisReport, results []models.AnalyzedTrade) {
	report.Trades = results
	report.TotalTrades = len(results)

	sum := 0
	for _, at := range results {
		sum += at.Result.OverallScore
		if at.Result.OverallScore >= highUniquenessCutoff {
			report.HighUniqueness++
		}
		f := at.Result.Flags
		for name, set := range map[string]bool{
			"small_cap":             f.SmallCap,
			"high_conviction":       f.HighConviction,
			"rare_symbol":           f.RareSymbol,
			"committee_related":     f.CommitteeRelated,
			"derivative_instrument": f.DerivativeInstr,
			"indirect_ownership":    f.IndirectOwnership,
		} {
			if set {
				report.FlagCounts[name]++
			}
		}
	}
	if len(results) > 0 {
		report.AverageScore = float64(sum) / float64(len(results))
	}
}
