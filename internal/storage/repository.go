package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	pq "github.com/lib/pq"

	"github.com/hmartins/capitolpulse/internal/domain/models"
)

// Repository defines the contract for all database operations.
type Repository interface {
	InsertTradesBatch(trades []models.Trade) error
	ListTrades(since *time.Time) ([]models.Trade, error)
	DeleteTradesByChamber(chamber string) error
	HasIngestionForFile(filename string) (bool, error)
	UpsertIngestionLog(filename string, rowCount int) error
	GetMarketData(symbol string, maxAge time.Duration) (*models.MarketData, error)
	PutMarketData(md *models.MarketData) error
	SaveResults(results []models.AnalyzedTrade) error
	TopResults(limit, minScore int) ([]models.AnalyzedTrade, error)
}

type repository struct {
	db *sql.DB
}

// NewRepository builds a Postgres-backed Repository.
func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

// InsertTradesBatch inserts multiple trades in a single COPY transaction.
func (r *repository) InsertTradesBatch(trades []models.Trade) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	// Bulk-load optimization
	if _, err := tx.Exec(`SET LOCAL synchronous_commit = OFF`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(pq.CopyIn(
		"trades",
		"symbol",
		"asset_description",
		"asset_type",
		"transaction_type",
		"amount_low",
		"amount_high",
		"transaction_date",
		"owner",
		"chamber",
		"first_name",
		"last_name",
	))
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	toNullDate := func(d time.Time) interface{} {
		if d.IsZero() {
			return nil
		}
		return d
	}

	for _, rec := range trades {
		var low, high interface{}
		if rec.Amount != nil {
			low, high = rec.Amount.Low, rec.Amount.High
		}
		if _, err := stmt.Exec(
			rec.Symbol,
			rec.AssetDescription,
			rec.AssetType,
			rec.Type,
			low,
			high,
			toNullDate(rec.TransactionDate),
			rec.Owner,
			rec.Chamber,
			rec.FirstName,
			rec.LastName,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := stmt.Exec(); err != nil {
		_ = stmt.Close()
		_ = tx.Rollback()
		return err
	}
	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}

// ListTrades returns all trades, optionally restricted to transaction dates
// at or after since. Trades without a transaction date are always included;
// their date is unknown, not old.
func (r *repository) ListTrades(since *time.Time) ([]models.Trade, error) {
	query := `
		SELECT symbol, asset_description, asset_type, transaction_type,
		       amount_low, amount_high, transaction_date, owner, chamber,
		       first_name, last_name
		FROM trades`
	var args []interface{}
	if since != nil {
		query += ` WHERE transaction_date IS NULL OR transaction_date >= $1`
		args = append(args, *since)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Trade
	for rows.Next() {
		var t models.Trade
		var low, high sql.NullFloat64
		var date sql.NullTime
		if err := rows.Scan(
			&t.Symbol, &t.AssetDescription, &t.AssetType, &t.Type,
			&low, &high, &date, &t.Owner, &t.Chamber,
			&t.FirstName, &t.LastName,
		); err != nil {
			return nil, err
		}
		if low.Valid && high.Valid {
			t.Amount = &models.AmountRange{Low: low.Float64, High: high.Float64}
		}
		if date.Valid {
			t.TransactionDate = date.Time
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// DeleteTradesByChamber removes all trades ingested for one chamber.
func (r *repository) DeleteTradesByChamber(chamber string) error {
	_, err := r.db.Exec(`DELETE FROM trades WHERE chamber = $1`, chamber)
	return err
}

// HasIngestionForFile checks whether a disclosure file was already ingested.
func (r *repository) HasIngestionForFile(filename string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM ingestion_log WHERE filename = $1)`, filename).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// UpsertIngestionLog records (or updates) an ingestion entry for a file.
func (r *repository) UpsertIngestionLog(filename string, rowCount int) error {
	_, err := r.db.Exec(`
		INSERT INTO ingestion_log (filename, row_count)
		VALUES ($1, $2)
		ON CONFLICT (filename)
		DO UPDATE SET row_count = EXCLUDED.row_count,
					  ingested_at = NOW()
	`, filename, rowCount)
	return err
}

// GetMarketData returns the cached snapshot for a symbol, or nil when the
// cache has no entry or the entry is older than maxAge.
func (r *repository) GetMarketData(symbol string, maxAge time.Duration) (*models.MarketData, error) {
	var md models.MarketData
	var marketCap, avgVolume sql.NullFloat64
	var sector, industry sql.NullString

	err := r.db.QueryRow(`
		SELECT symbol, market_cap, sector, industry, average_volume, fetched_at
		FROM market_data_cache
		WHERE symbol = $1 AND fetched_at > $2
	`, symbol, time.Now().Add(-maxAge)).Scan(
		&md.Symbol, &marketCap, &sector, &industry, &avgVolume, &md.FetchedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if marketCap.Valid {
		md.MarketCap = &marketCap.Float64
	}
	if avgVolume.Valid {
		md.AverageVolume = &avgVolume.Float64
	}
	md.Sector = sector.String
	md.Industry = industry.String
	return &md, nil
}

// PutMarketData stores or refreshes a symbol's snapshot in the cache.
func (r *repository) PutMarketData(md *models.MarketData) error {
	var marketCap, avgVolume interface{}
	if md.MarketCap != nil {
		marketCap = *md.MarketCap
	}
	if md.AverageVolume != nil {
		avgVolume = *md.AverageVolume
	}
	_, err := r.db.Exec(`
		INSERT INTO market_data_cache (symbol, market_cap, sector, industry, average_volume, fetched_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (symbol)
		DO UPDATE SET market_cap = EXCLUDED.market_cap,
					  sector = EXCLUDED.sector,
					  industry = EXCLUDED.industry,
					  average_volume = EXCLUDED.average_volume,
					  fetched_at = NOW()
	`, md.Symbol, marketCap, md.Sector, md.Industry, avgVolume)
	return err
}

// SaveResults replaces the stored analysis results with the latest run.
// Each result row carries the full scored trade as JSONB for later serving.
func (r *repository) SaveResults(results []models.AnalyzedTrade) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM analysis_results`); err != nil {
		_ = tx.Rollback()
		return err
	}

	stmt, err := tx.Prepare(`
		INSERT INTO analysis_results (symbol, trader_name, chamber, transaction_date, overall_score, result)
		VALUES ($1, $2, $3, $4, $5, $6)
	`)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, at := range results {
		payload, err := json.Marshal(at)
		if err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return fmt.Errorf("marshal result: %w", err)
		}
		var date interface{}
		if !at.Trade.TransactionDate.IsZero() {
			date = at.Trade.TransactionDate
		}
		if _, err := stmt.Exec(
			at.Trade.Symbol,
			at.Trade.FirstName+" "+at.Trade.LastName,
			at.Trade.Chamber,
			date,
			at.Result.OverallScore,
			payload,
		); err != nil {
			_ = stmt.Close()
			_ = tx.Rollback()
			return err
		}
	}

	if err := stmt.Close(); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// TopResults returns stored results at or above minScore, most recent
// transaction first, capped at limit.
func (r *repository) TopResults(limit, minScore int) ([]models.AnalyzedTrade, error) {
	rows, err := r.db.Query(`
		SELECT result
		FROM analysis_results
		WHERE overall_score >= $1
		ORDER BY transaction_date DESC NULLS LAST, overall_score DESC
		LIMIT $2
	`, minScore, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.AnalyzedTrade
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, err
		}
		var at models.AnalyzedTrade
		if err := json.Unmarshal(payload, &at); err != nil {
			return nil, fmt.Errorf("unmarshal result: %w", err)
		}
		out = append(out, at)
	}
	return out, rows.Err()
}
