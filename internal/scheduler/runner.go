package scheduler

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"CryptoSentinel/internal/collector"
	"CryptoSentinel/internal/display"
	"CryptoSentinel/internal/model"
	"CryptoSentinel/internal/notifier"
	"CryptoSentinel/internal/portfolio"
	"CryptoSentinel/internal/recorder"
	"CryptoSentinel/internal/strategy"
)

// RunResult is the outcome of one analysis run.
type RunResult struct {
	ID              string
	Source          string
	StartedAt       time.Time
	FinishedAt      time.Time
	Holdings        []model.Holding
	Recommendations []*model.Recommendation // prioritized
	Skipped         []string
}

// resetter is implemented by run-scoped collaborators.
type resetter interface {
	Reset()
}

// Runner performs a single end-to-end analysis run and delivers the result.
type Runner struct {
	Collector *collector.Collector
	Recorder  recorder.Recorder
	Notifier  *notifier.TelegramNotifier // optional
	Out       io.Writer                  // console report, optional
	Workers   int
	TopN      int

	mu   sync.Mutex
	last *RunResult
}

// NewRunner creates a Runner with sequential analysis and a no-op recorder.
func NewRunner(col *collector.Collector) *Runner {
	return &Runner{
		Collector: col,
		Recorder:  recorder.NewNoopRecorder(),
		Workers:   1,
		TopN:      notifier.DefaultTopN,
	}
}

// Last returns the result of the most recent completed run, or nil.
func (r *Runner) Last() *RunResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// RunOnce fetches holdings from source, analyzes each symbol and delivers the
// prioritized recommendations to every configured sink.
func (r *Runner) RunOnce(ctx context.Context, source portfolio.Source) (*RunResult, error) {
	res := &RunResult{ID: uuid.NewString(), Source: source.Name(), StartedAt: time.Now()}
	runLog := log.WithFields(log.Fields{"run": res.ID, "source": res.Source})
	runLog.Info("analysis run started")

	r.resetScope()

	holdings, err := source.FetchHoldings(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch holdings: %w", err)
	}
	res.Holdings = holdings
	if len(holdings) == 0 {
		runLog.Warn("no holdings to analyze")
	}

	recs := make([]*model.Recommendation, len(holdings))
	workers := r.Workers
	if workers < 1 {
		workers = 1
	}
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	for i, h := range holdings {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			recs[i] = r.analyze(ctx, h)
		}()
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	analyzed := make([]*model.Recommendation, 0, len(recs))
	for i, rec := range recs {
		if rec == nil {
			res.Skipped = append(res.Skipped, holdings[i].Symbol)
			continue
		}
		analyzed = append(analyzed, rec)
	}
	res.Recommendations = strategy.Prioritize(analyzed)
	res.FinishedAt = time.Now()

	r.deliver(ctx, res)

	r.mu.Lock()
	r.last = res
	r.mu.Unlock()

	runLog.WithFields(log.Fields{
		"analyzed": len(res.Recommendations),
		"skipped":  len(res.Skipped),
	}).Infof("analysis run finished in %v", res.FinishedAt.Sub(res.StartedAt).Round(time.Millisecond))
	return res, nil
}

func (r *Runner) resetScope() {
	if rs, ok := r.Collector.Fetcher.(resetter); ok {
		rs.Reset()
	}
	if rs, ok := r.Collector.Cache.(resetter); ok {
		rs.Reset()
	}
}

// analyze returns nil when the symbol has to be skipped.
func (r *Runner) analyze(ctx context.Context, h model.Holding) *model.Recommendation {
	symLog := log.WithField("symbol", h.Symbol)
	series, err := r.Collector.Collect(ctx, h.Symbol)
	if err != nil {
		symLog.Warnf("skipping: %v", err)
		return nil
	}

	value := h.ValueUSD
	if value.IsZero() && h.Amount.IsPositive() {
		price, err := r.Collector.CurrentPrice(ctx, h.Symbol)
		if err != nil {
			symLog.Debugf("spot price unavailable, using last close: %v", err)
			price = series.Last().Price
		}
		value = decimal.NewFromFloat(price).Mul(h.Amount)
	}
	holdingValue, _ := value.Float64()

	rec := strategy.Analyze(h.Symbol, series, holdingValue)
	symLog.WithFields(log.Fields{"signal": rec.Signal, "score": rec.Score}).Debug("analyzed")
	return rec
}

func (r *Runner) deliver(ctx context.Context, res *RunResult) {
	if r.Out != nil {
		display.Render(r.Out, res.Recommendations, res.FinishedAt)
	}

	if r.Notifier != nil {
		report := notifier.FormatReport(res.Recommendations, r.TopN, res.FinishedAt)
		if err := r.Notifier.SendWithRetry(ctx, report, 3); err != nil {
			log.Errorf("send notification: %v", err)
		}
	}

	if r.Recorder == nil {
		return
	}
	if err := r.Recorder.RecordRun(&recorder.RunRecord{
		ID:         res.ID,
		StartedAt:  res.StartedAt,
		FinishedAt: res.FinishedAt,
		Source:     res.Source,
		Symbols:    len(res.Holdings),
		Analyzed:   len(res.Recommendations),
	}); err != nil {
		log.Errorf("record run: %v", err)
	}
	if err := r.Recorder.RecordRecommendations(res.ID, res.Recommendations); err != nil {
		log.Errorf("record recommendations: %v", err)
	}
}
