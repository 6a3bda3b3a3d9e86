package recorder

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/guregu/null/v5"

	"CryptoSentinel/internal/model"
)

func TestOpen_Drivers(t *testing.T) {
	r, err := Open("none", "")
	if err != nil {
		t.Fatalf("open none: %v", err)
	}
	if _, ok := r.(*NoopRecorder); !ok {
		t.Errorf("expected NoopRecorder, got %T", r)
	}
	if _, err := Open("mysql", ""); err == nil {
		t.Error("expected error for unknown driver")
	}
}

func TestSQLRecorder_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "nested")
	r, err := NewSQLRecorder("sqlite", filepath.Join(dir, "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be created, err=%v", dir, err)
	}
	run := RunRecord{ID: "run-dir", StartedAt: time.Now(), FinishedAt: time.Now(), Source: "manual"}
	if err := r.RecordRun(&run); err != nil {
		t.Errorf("record run: %v", err)
	}
}

func TestSQLRecorder_SQLite(t *testing.T) {
	r, err := NewSQLRecorder("sqlite", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	now := time.Now()
	run := &RunRecord{ID: "run-1", StartedAt: now, FinishedAt: now, Source: "manual", Symbols: 2, Analyzed: 2}
	if err := r.RecordRun(run); err != nil {
		t.Fatalf("record run: %v", err)
	}

	recs := []*model.Recommendation{
		{
			Symbol:       "BTC",
			Signal:       model.Buy,
			Score:        35,
			Confidence:   model.ConfidenceMedium,
			CurrentPrice: 64000,
			Targets: model.TargetPrices{
				BuyTarget:       null.FloatFrom(60000),
				SellTarget:      null.FloatFrom(70000),
				StopLoss:        null.FloatFrom(58000),
				RiskRewardRatio: null.FloatFrom(1.5),
			},
			AnalyzedAt: now,
		},
		{Symbol: "ETH", Signal: model.Hold, Confidence: model.ConfidenceLow, CurrentPrice: 3000, AnalyzedAt: now},
	}
	recs[0].Indicators.RSI = null.FloatFrom(42.5)
	if err := r.RecordRecommendations(run.ID, recs); err != nil {
		t.Fatalf("record recommendations: %v", err)
	}

	var runs int
	if err := r.db.Get(&runs, "SELECT COUNT(*) FROM runs"); err != nil || runs != 1 {
		t.Errorf("expected 1 run, got %d (%v)", runs, err)
	}

	rows, err := r.History("BTC", 10)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	got := rows[0]
	if got.Signal != "buy" || got.Score != 35 || got.RunID != "run-1" {
		t.Errorf("expected buy/35/run-1, got %s/%d/%s", got.Signal, got.Score, got.RunID)
	}
	if got.StopLoss.Float64 != 58000 || got.RSI.Float64 != 42.5 {
		t.Errorf("expected stop 58000 rsi 42.5, got %v %v", got.StopLoss, got.RSI)
	}

	eth, err := r.History("ETH", 10)
	if err != nil || len(eth) != 1 {
		t.Fatalf("expected 1 ETH row, got %d (%v)", len(eth), err)
	}
	if eth[0].BuyTarget.Valid || eth[0].MACD.Valid {
		t.Errorf("expected null targets, got %v %v", eth[0].BuyTarget, eth[0].MACD)
	}
}

func TestSQLRecorder_DuplicateRollsBack(t *testing.T) {
	r, err := NewSQLRecorder("sqlite", filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer r.Close()

	rec := &model.Recommendation{Symbol: "SOL", Signal: model.Sell, Confidence: model.ConfidenceLow, AnalyzedAt: time.Now()}
	if err := r.RecordRecommendations("run-2", []*model.Recommendation{rec, rec}); err == nil {
		t.Fatal("expected duplicate key error")
	}
	var n int
	if err := r.db.Get(&n, "SELECT COUNT(*) FROM recommendations"); err != nil || n != 0 {
		t.Errorf("expected rollback to leave 0 rows, got %d (%v)", n, err)
	}
}
