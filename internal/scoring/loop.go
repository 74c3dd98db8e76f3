package scoring

import (
	"context"
	"fmt"
	"time"
)

// KindScorer is one per-resource-kind comparison routine. Score observes
// live system state and calls AwardPoints/RemovePoints on matching
// items; it must call each at most once per item per cycle.
type KindScorer struct {
	Kind  string
	Score func(ctx context.Context, eng *Engine)
}

// Run drives the scoring loop: score, persist, report, sleep, repeat.
// The loop exits only when ctx is cancelled; cancellation is observed at
// the top of each cycle and during the sleep interval.
func (e *Engine) Run(ctx context.Context, scorers []KindScorer) {
	e.log.WithFields(map[string]any{
		"image_id": e.ImageID,
		"interval": e.Interval.String(),
	}).Info("starting scoring engine")

	timer := time.NewTimer(e.Interval)
	defer timer.Stop()

	for {
		if ctx.Err() != nil {
			e.log.Info("scoring engine stopped")
			return
		}

		e.ScoreCycle(ctx, scorers)
		e.log.Info(fmt.Sprintf("current score: %d/%d", e.CurrentScore, e.TotalScore))

		e.Persist()
		e.RenderReport(time.Now())

		e.log.Debug("sleeping")
		timer.Reset(e.Interval)
		select {
		case <-ctx.Done():
			e.log.Info("scoring engine stopped")
			return
		case <-timer.C:
		}
	}
}

// ScoreCycle recomputes the score from scratch: the running score and
// per-cycle message lists are reset, then every scorer runs in its fixed
// kind order. Generator messages are never cleared.
func (e *Engine) ScoreCycle(ctx context.Context, scorers []KindScorer) {
	e.log.Debug("scoring")

	e.CurrentScore = 0
	e.ScoringMessages = nil
	e.ConfigMessages = nil

	for _, scorer := range scorers {
		scorer.Score(ctx, e)
	}
}
