package app

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hmartins/capitolpulse/config"
	"github.com/hmartins/capitolpulse/internal/analysis"
	"github.com/hmartins/capitolpulse/internal/api"
	"github.com/hmartins/capitolpulse/internal/domain/models"
	"github.com/hmartins/capitolpulse/internal/ingestion"
	"github.com/hmartins/capitolpulse/internal/logger"
	"github.com/hmartins/capitolpulse/internal/provider/marketdata"
	"github.com/hmartins/capitolpulse/internal/service"
	"github.com/hmartins/capitolpulse/internal/storage"
)

// Filenames of the legislator datasets expected inside the data directory.
// These are the unitedstates/congress-legislators dumps.
const (
	legislatorsFile = "legislators-current.yaml"
	membershipFile  = "committee-membership-current.yaml"
	committeesFile  = "committees-current.yaml"
)

// InitializeApp sets up all application dependencies and returns a fully
// configured Gin router, a cleanup function for graceful shutdown, and any
// error encountered during initialization.
//
// Responsibilities:
//   - Connects to PostgreSQL using InitPostgres().
//   - Builds the repository, market-data client and analysis service.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes.
//   - Provides a cleanup function to close resources.
func InitializeApp() (*gin.Engine, func(), error) {
	cfg := config.AppConfig

	db, err := postgresOpener(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize postgres: %w", err)
	}

	svc, err := NewAnalysisService(db)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	healthHandler := api.NewHealthHandler(db.Ping)
	healthHandler.Register(router)

	cleanup := func() {
		_ = db.Close()
	}

	return router, cleanup, nil
}

// NewAnalysisService assembles the scoring pipeline on top of an open
// database handle. Used by both the API server and the one-shot analyze run.
func NewAnalysisService(db *sql.DB) (service.AnalysisService, error) {
	cfg := config.AppConfig

	traders, err := loadTraders(cfg.Analysis.DataDir)
	if err != nil {
		return nil, err
	}

	taxonomy := buildTaxonomy(cfg)

	return service.NewAnalysisService(service.Params{
		Repo:     storage.NewRepository(db),
		Fetcher:  marketdata.NewClient(cfg.Market.BaseURL, cfg.Market.APIKey),
		Traders:  traders,
		Taxonomy: taxonomy,
		Config:   analysis.DefaultConfig(),
		CacheTTL: time.Duration(cfg.Market.CacheTTL) * time.Hour,
		Parallel: cfg.Analysis.FetchParallel,
	})
}

// loadTraders reads the legislator datasets. A missing dataset is not fatal:
// trades are still scored, just without committee context.
func loadTraders(dataDir string) (map[string]models.Trader, error) {
	traders, err := ingestion.LoadTraders(
		filepath.Join(dataDir, legislatorsFile),
		filepath.Join(dataDir, membershipFile),
	)
	if err != nil {
		logger.L().Warn().Err(err).Msg("legislator datasets unavailable, scoring without committee context")
		return map[string]models.Trader{}, nil
	}
	return traders, nil
}

// buildTaxonomy wires the committee sector map, feeding committee display
// names into the keyword fallback when that is enabled.
func buildTaxonomy(cfg config.Config) *analysis.Taxonomy {
	var opts []analysis.TaxonomyOption
	if cfg.Analysis.KeywordFallback {
		opts = append(opts, analysis.WithKeywordFallback())
	}
	taxonomy := analysis.NewTaxonomy(opts...)

	if cfg.Analysis.KeywordFallback {
		names, err := ingestion.LoadCommitteeNames(filepath.Join(cfg.Analysis.DataDir, committeesFile))
		if err != nil {
			logger.L().Warn().Err(err).Msg("committee names unavailable, keyword fallback limited")
			return taxonomy
		}
		for id, name := range names {
			taxonomy.RegisterName(id, name)
		}
	}
	return taxonomy
}
