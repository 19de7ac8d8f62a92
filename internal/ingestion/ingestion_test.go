package ingestion

import (
	"context"
	"database/sql"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/hmartins/capitolpulse/internal/domain/models"
	"github.com/hmartins/capitolpulse/internal/storage"
)

// fakeRepo is an in-memory Repository capturing ingestion calls.
type fakeRepo struct {
	mu        sync.Mutex
	trades    []models.Trade
	ingested  map[string]int
	deleted   []string
	insertErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{ingested: make(map[string]int)}
}

func (f *fakeRepo) InsertTradesBatch(trades []models.Trade) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.trades = append(f.trades, trades...)
	return nil
}

func (f *fakeRepo) ListTrades(_ *time.Time) ([]models.Trade, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.trades, nil
}

func (f *fakeRepo) DeleteTradesByChamber(chamber string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, chamber)
	kept := f.trades[:0]
	for _, t := range f.trades {
		if t.Chamber != chamber {
			kept = append(kept, t)
		}
	}
	f.trades = kept
	return nil
}

func (f *fakeRepo) HasIngestionForFile(filename string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.ingested[filename]
	return ok, nil
}

func (f *fakeRepo) UpsertIngestionLog(filename string, rowCount int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ingested[filename] = rowCount
	return nil
}

func (f *fakeRepo) GetMarketData(string, time.Duration) (*models.MarketData, error) {
	return nil, nil
}
func (f *fakeRepo) PutMarketData(*models.MarketData) error   { return nil }
func (f *fakeRepo) SaveResults([]models.AnalyzedTrade) error { return nil }
func (f *fakeRepo) TopResults(int, int) ([]models.AnalyzedTrade, error) {
	return nil, nil
}

var _ storage.Repository = (*fakeRepo)(nil)

const senateJSON = `[
	{"transaction_date": "05/20/2024", "ticker": "NVDA", "type": "purchase", "amount": "$250,001 - $500,000", "owner": "Spouse", "senator": "Jane Doe"},
	{"transaction_date": "05/21/2024", "ticker": "AAPL", "type": "purchase", "amount": "$1,001 - $15,000", "owner": "Self", "senator": "Jane Doe"}
]`

const houseJSON = `[
	{"transaction_date": "2024-04-02", "ticker": "MSFT", "type": "sale_full", "amount": "$15,001 - $50,000", "owner": "Joint", "representative": "John Smith"}
]`

// withFakeRepo swaps the repository constructor for the test's lifetime.
func withFakeRepo(t *testing.T, repo *fakeRepo) {
	t.Helper()
	old := repoCtor
	repoCtor = func(_ *sql.DB) storage.Repository { return repo }
	t.Cleanup(func() { repoCtor = old })
}

func TestProcessDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "senate_trades.json", senateJSON)
	writeFile(t, dir, "house_trades.json", houseJSON)

	repo := newFakeRepo()
	withFakeRepo(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, false); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(repo.trades) != 3 {
		t.Fatalf("trades: want 3 got %d", len(repo.trades))
	}
	if repo.ingested["senate_trades.json"] != 2 || repo.ingested["house_trades.json"] != 1 {
		t.Fatalf("ingestion log: %v", repo.ingested)
	}
}

func TestProcessDirectory_IdempotentSkip(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "senate_trades.json", senateJSON)

	repo := newFakeRepo()
	repo.ingested["senate_trades.json"] = 2
	withFakeRepo(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, false); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(repo.trades) != 0 {
		t.Fatalf("already-ingested file must be skipped, got %d trades", len(repo.trades))
	}
}

func TestProcessDirectory_ForceReingests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "senate_trades.json", senateJSON)

	repo := newFakeRepo()
	repo.ingested["senate_trades.json"] = 2
	repo.trades = []models.Trade{{Symbol: "OLD", Chamber: "senate"}}
	withFakeRepo(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, true); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(repo.deleted) != 1 || repo.deleted[0] != "senate" {
		t.Fatalf("expected senate delete, got %v", repo.deleted)
	}
	if len(repo.trades) != 2 {
		t.Fatalf("trades after force: want 2 got %d", len(repo.trades))
	}
}

func TestProcessDirectory_MissingFiles(t *testing.T) {
	repo := newFakeRepo()
	withFakeRepo(t, repo)

	// One missing file is tolerated when the other is present.
	dir := t.TempDir()
	writeFile(t, dir, "house_trades.json", houseJSON)
	if err := ProcessDirectory(context.Background(), dir, nil, false); err != nil {
		t.Fatalf("process: %v", err)
	}
	if len(repo.trades) != 1 {
		t.Fatalf("trades: want 1 got %d", len(repo.trades))
	}

	// An empty directory is an error.
	if err := ProcessDirectory(context.Background(), t.TempDir(), nil, false); err == nil {
		t.Fatalf("expected error for directory without disclosure files")
	}
}

func TestProcessDirectory_InsertError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "senate_trades.json", senateJSON)

	repo := newFakeRepo()
	repo.insertErr = errors.New("insert failed")
	withFakeRepo(t, repo)

	if err := ProcessDirectory(context.Background(), dir, nil, false); err == nil {
		t.Fatalf("expected insert error to surface")
	}
}

func TestIngestFile_Batches(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "senate_trades.json", senateJSON)

	repo := newFakeRepo()
	total, err := ingestFile(context.Background(), path, "senate", repo, 1)
	if err != nil {
		t.Fatalf("ingest: %v", err)
	}
	if total != 2 || len(repo.trades) != 2 {
		t.Fatalf("total=%d trades=%d, want 2 and 2", total, len(repo.trades))
	}
}

func TestIngestFile_ContextCancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "senate_trades.json", senateJSON)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ingestFile(ctx, path, "senate", newFakeRepo(), 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
