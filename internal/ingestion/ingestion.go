package ingestion

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hmartins/capitolpulse/internal/logger"
	"github.com/hmartins/capitolpulse/internal/storage"
)

const defaultBatchSize = 5000

// chamberFiles maps each chamber to its expected disclosure dump filename
// inside the data directory.
var chamberFiles = map[string]string{
	"senate": "senate_trades.json",
	"house":  "house_trades.json",
}

// repoCtor is an indirection for creating the repository; tests can override this.
var repoCtor = func(db *sql.DB) storage.Repository {
	return storage.NewRepository(db)
}

// ProcessDirectory ingests the senate and house disclosure dumps from dir
// into the database.
//
// Behavior:
//   - Expects "senate_trades.json" and/or "house_trades.json" in dir; at
//     least one must be present.
//   - Processes chambers concurrently; the first error cancels the rest.
//   - Idempotent per file via the ingestion log, unless force is set, in
//     which case the chamber's existing trades are deleted and reloaded.
//
// Returns the first error encountered, if any.
func ProcessDirectory(ctx context.Context, dir string, db *sql.DB, force bool) error {
	repo := repoCtor(db)

	present := make(map[string]string)
	for chamber, name := range chamberFiles {
		full := filepath.Join(dir, name)
		if _, err := os.Stat(full); err != nil {
			if os.IsNotExist(err) {
				logger.L().Warn().Str("file", name).Msg("disclosure file missing, skipping chamber")
				continue
			}
			return fmt.Errorf("stat failed for %s: %w", full, err)
		}
		present[chamber] = full
	}
	if len(present) == 0 {
		return fmt.Errorf("no disclosure files found in %s", dir)
	}

	logger.L().Info().Int("files", len(present)).Str("dir", dir).Msg("ingestion start")

	g, gctx := errgroup.WithContext(ctx)
	for chamber, path := range present {
		g.Go(func() error {
			start := time.Now()
			base := filepath.Base(path)

			exists, err := repo.HasIngestionForFile(base)
			if err != nil {
				return fmt.Errorf("file %s: check ingestion log: %w", base, err)
			}
			if exists && !force {
				logger.L().Info().Str("file", base).Bool("skipped", true).Msg("already ingested")
				return nil
			}
			if exists && force {
				if err := repo.DeleteTradesByChamber(chamber); err != nil {
					return fmt.Errorf("file %s: delete existing: %w", base, err)
				}
			}

			total, err := ingestFile(gctx, path, chamber, repo, defaultBatchSize)
			if err != nil {
				logger.L().Error().Str("file", base).Dur("elapsed", time.Since(start)).Err(err).Msg("file failed")
				return fmt.Errorf("file %s: %w", base, err)
			}
			if err := repo.UpsertIngestionLog(base, total); err != nil {
				return fmt.Errorf("file %s: upsert ingestion log: %w", base, err)
			}
			logger.L().Info().Str("file", base).Int("rows", total).Dur("elapsed", time.Since(start)).Bool("force", force).Msg("file done")
			return nil
		})
	}

	return g.Wait()
}

// ingestFile parses one chamber's dump and persists it in batches.
func ingestFile(ctx context.Context, path, chamber string, repo storage.Repository, batch int) (int, error) {
	trades, err := parseDisclosureFile(path, chamber)
	if err != nil {
		return 0, err
	}

	total := 0
	for len(trades) > 0 {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		n := batch
		if n > len(trades) {
			n = len(trades)
		}
		chunk := trades[:n]
		trades = trades[n:]

		if err := repo.InsertTradesBatch(chunk); err != nil {
			return 0, fmt.Errorf("insert batch: %w", err)
		}
		total += len(chunk)
	}
	return total, nil
}
