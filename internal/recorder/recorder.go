package recorder

import (
	"time"

	"CryptoSentinel/internal/model"
)

// RunRecord summarizes one analysis run.
type RunRecord struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Source     string // holdings source name
	Symbols    int    // holdings considered
	Analyzed   int    // recommendations produced
}

// Recorder persists run history for later review.
type Recorder interface {
	RecordRun(run *RunRecord) error
	RecordRecommendations(runID string, recs []*model.Recommendation) error
	Close() error
}
