package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/guregu/null/v5"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	log "github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"CryptoSentinel/internal/model"
)

func init() {
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// SQLRecorder persists run history to SQLite or PostgreSQL.
type SQLRecorder struct {
	db *sqlx.DB
	mu sync.Mutex
}

// Open returns a recorder for driver ("sqlite", "postgres" or "none").
func Open(driver, dsn string) (Recorder, error) {
	switch driver {
	case "", "none":
		return NewNoopRecorder(), nil
	case "sqlite", "postgres":
		return NewSQLRecorder(driver, dsn)
	default:
		return nil, fmt.Errorf("unknown database driver %q", driver)
	}
}

// NewSQLRecorder opens (or creates) the database and runs migrations.
func NewSQLRecorder(driver, dsn string) (*SQLRecorder, error) {
	if driver == "sqlite" {
		if err := ensureDir(dsn); err != nil {
			return nil, err
		}
	}
	db, err := sqlx.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == "sqlite" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("set WAL mode: %w", err)
		}
	}

	r := &SQLRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Infof("%s recorder opened", driver)
	return r, nil
}

// ensureDir creates the parent directory of a file-backed sqlite DSN.
func ensureDir(dsn string) error {
	if dsn == "" || strings.Contains(dsn, ":memory:") {
		return nil
	}
	path, _, _ := strings.Cut(strings.TrimPrefix(dsn, "file:"), "?")
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create database dir: %w", err)
	}
	return nil
}

func (r *SQLRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			started_at  BIGINT NOT NULL,
			finished_at BIGINT NOT NULL,
			source      TEXT,
			symbols     INTEGER,
			analyzed    INTEGER
		)`,
		`CREATE TABLE IF NOT EXISTS recommendations (
			run_id        TEXT NOT NULL,
			symbol        TEXT NOT NULL,
			signal        TEXT NOT NULL,
			score         INTEGER NOT NULL,
			confidence    TEXT NOT NULL,
			current_price DOUBLE PRECISION,
			holding_value DOUBLE PRECISION,
			buy_target    DOUBLE PRECISION,
			sell_target   DOUBLE PRECISION,
			stop_loss     DOUBLE PRECISION,
			risk_reward   DOUBLE PRECISION,
			rsi           DOUBLE PRECISION,
			macd          DOUBLE PRECISION,
			summary       TEXT,
			created_at    BIGINT NOT NULL,
			PRIMARY KEY (run_id, symbol)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_recommendations_symbol ON recommendations(symbol, created_at)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

type runRow struct {
	ID         string `db:"id"`
	StartedAt  int64  `db:"started_at"`
	FinishedAt int64  `db:"finished_at"`
	Source     string `db:"source"`
	Symbols    int    `db:"symbols"`
	Analyzed   int    `db:"analyzed"`
}

// RecommendationRow is one persisted recommendation.
type RecommendationRow struct {
	RunID        string     `db:"run_id"`
	Symbol       string     `db:"symbol"`
	Signal       string     `db:"signal"`
	Score        int        `db:"score"`
	Confidence   string     `db:"confidence"`
	CurrentPrice float64    `db:"current_price"`
	HoldingValue float64    `db:"holding_value"`
	BuyTarget    null.Float `db:"buy_target"`
	SellTarget   null.Float `db:"sell_target"`
	StopLoss     null.Float `db:"stop_loss"`
	RiskReward   null.Float `db:"risk_reward"`
	RSI          null.Float `db:"rsi"`
	MACD         null.Float `db:"macd"`
	Summary      string     `db:"summary"`
	CreatedAt    int64      `db:"created_at"`
}

func newRecommendationRow(runID string, rec *model.Recommendation) RecommendationRow {
	return RecommendationRow{
		RunID:        runID,
		Symbol:       rec.Symbol,
		Signal:       string(rec.Signal),
		Score:        rec.Score,
		Confidence:   string(rec.Confidence),
		CurrentPrice: rec.CurrentPrice,
		HoldingValue: rec.HoldingValue,
		BuyTarget:    rec.Targets.BuyTarget,
		SellTarget:   rec.Targets.SellTarget,
		StopLoss:     rec.Targets.StopLoss,
		RiskReward:   rec.Targets.RiskRewardRatio,
		RSI:          rec.Indicators.RSI,
		MACD:         rec.Indicators.MACD,
		Summary:      rec.Summary,
		CreatedAt:    rec.AnalyzedAt.Unix(),
	}
}

func (r *SQLRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.NamedExec(`INSERT INTO runs
		(id, started_at, finished_at, source, symbols, analyzed)
		VALUES (:id, :started_at, :finished_at, :source, :symbols, :analyzed)`,
		runRow{
			ID:         run.ID,
			StartedAt:  run.StartedAt.Unix(),
			FinishedAt: run.FinishedAt.Unix(),
			Source:     run.Source,
			Symbols:    run.Symbols,
			Analyzed:   run.Analyzed,
		})
	return err
}

func (r *SQLRecorder) RecordRecommendations(runID string, recs []*model.Recommendation) error {
	if len(recs) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	for _, rec := range recs {
		if _, err := tx.NamedExec(`INSERT INTO recommendations
			(run_id, symbol, signal, score, confidence, current_price, holding_value,
			 buy_target, sell_target, stop_loss, risk_reward, rsi, macd, summary, created_at)
			VALUES (:run_id, :symbol, :signal, :score, :confidence, :current_price, :holding_value,
			 :buy_target, :sell_target, :stop_loss, :risk_reward, :rsi, :macd, :summary, :created_at)`,
			newRecommendationRow(runID, rec)); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert %s: %w", rec.Symbol, err)
		}
	}
	return tx.Commit()
}

// History returns the most recent recorded recommendations for symbol, newest first.
func (r *SQLRecorder) History(symbol string, limit int) ([]RecommendationRow, error) {
	var rows []RecommendationRow
	err := r.db.Select(&rows, r.db.Rebind(`SELECT * FROM recommendations
		WHERE symbol = ? ORDER BY created_at DESC LIMIT ?`), symbol, limit)
	return rows, err
}

func (r *SQLRecorder) Close() error {
	log.Info("closing recorder")
	return r.db.Close()
}
