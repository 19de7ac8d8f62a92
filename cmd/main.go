package main

//
//  @title           capitolpulse API
//  @version         1.0
//  @description     Congressional trade ingestion & uniqueness scoring service.
//  @termsOfService  https://github.com/hmartins/capitolpulse
//  @contact.name    API Support
//  @contact.url     https://github.com/hmartins/capitolpulse
//  @contact.email   support@example.com
//  @license.name    MIT
//  @license.url     https://opensource.org/licenses/MIT
//  @host            localhost:8080
//  @BasePath        /
//  @schemes         http
//
//  @tag.name        analysis
//  @tag.description Endpoints for querying scored trades
//
//  @tag.name        trades
//  @tag.description Endpoints for querying raw ingested disclosures
//
//  @tag.name        health
//  @tag.description Liveness and readiness probes

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hmartins/capitolpulse/config"
	_ "github.com/hmartins/capitolpulse/docs" // swagger docs
	"github.com/hmartins/capitolpulse/internal/app"
	"github.com/hmartins/capitolpulse/internal/ingestion"
	"github.com/hmartins/capitolpulse/internal/logger"
)

// startServer initializes and starts the HTTP server in a separate goroutine.
func startServer(router http.Handler, port string) *http.Server {
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.L().Info().Str("port", port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L().Fatal().Err(err).Msg("server failed to start")
		}
	}()

	return server
}

// gracefulShutdown terminates the HTTP server and runs cleanup when an OS
// interrupt signal (SIGINT, SIGTERM) is received.
func gracefulShutdown(ctx context.Context, server *http.Server, cleanup func()) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	logger.L().Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L().Fatal().Err(err).Msg("server forced to shutdown")
	}

	cleanup()
	logger.L().Info().Msg("server exited gracefully")
}

// main is the entry point of the capitolpulse application.
//
// Modes (selected via --mode flag):
//   - ingest:  Loads the senate/house disclosure dumps into Postgres.
//   - analyze: Runs the scoring pipeline and stores the results.
//   - api:     Starts the REST API serving scored trades.
//
// Flags:
//   - --mode:  Execution mode ("ingest", "analyze" or "api"). Default: "ingest".
//   - --dir:   Directory containing input datasets. Defaults to DATA_DIR from config.
//   - --force: Reprocess disclosure files even if already ingested.
//   - --port:  Port for API mode. Defaults to SERVER_PORT from config.
func main() {
	ctx := context.Background()

	config.LoadConfig()
	logger.Init()

	mode := flag.String("mode", "ingest", "Mode: ingest, analyze or api")
	dir := flag.String("dir", config.AppConfig.Analysis.DataDir, "Directory with input datasets")
	force := flag.Bool("force", false, "Reprocess disclosure files even if already ingested (deletes the chamber's existing trades)")
	port := flag.String("port", config.AppConfig.Server.Port, "Port for API mode")
	flag.Parse()

	switch *mode {
	case "ingest":
		logger.L().Info().Msg("running ingestion")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		if err := ingestion.ProcessDirectory(ctx, *dir, db, *force); err != nil {
			logger.L().Fatal().Err(err).Msg("ingestion failed")
		}
		logger.L().Info().Msg("ingestion completed successfully")

	case "analyze":
		logger.L().Info().Msg("running analysis")

		db, err := app.InitPostgres(config.AppConfig)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("db connect error")
		}
		defer func() { _ = db.Close() }()

		svc, err := app.NewAnalysisService(db)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("analysis init error")
		}

		report, err := svc.Analyze(ctx)
		if err != nil {
			logger.L().Fatal().Err(err).Msg("analysis failed")
		}
		logger.L().Info().
			Int("trades", report.TotalTrades).
			Float64("average_score", report.AverageScore).
			Int("high_uniqueness", report.HighUniqueness).
			Msg("analysis completed successfully")

	case "api":
		logger.L().Info().Msg("starting API server")

		router, cleanup, err := app.InitializeApp()
		if err != nil {
			logger.L().Fatal().Err(err).Msg("app init error")
		}

		server := startServer(router, *port)
		gracefulShutdown(ctx, server, cleanup)

	default:
		logger.L().Fatal().Str("mode", *mode).Msg("unknown mode")
	}
}
