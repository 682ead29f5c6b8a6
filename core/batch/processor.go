package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"material-manager/core/logger"
	"material-manager/core/material"
	"material-manager/core/reconcile"
)

// Outcome is one target's conversion record.
type Outcome struct {
	// TargetName is the name of the target material this outcome
	// belongs to.
	TargetName string

	// Result is the full reconciliation report for this target.
	Result *reconcile.ReplaceResult

	// Converted is the output material, ready for export.
	Converted material.Material
}

// Summary aggregates a finished run. Each target counts toward exactly
// one of Clean, WithWarnings, or Unmatched; a conversion with both
// unmatched sources and other warnings counts as Unmatched.
type Summary struct {
	// RunID identifies the run in logs and reports.
	RunID string

	// Targets is the number of converted materials.
	Targets int

	// Clean counts conversions without warnings.
	Clean int

	// WithWarnings counts conversions that warned but matched every
	// source sampler.
	WithWarnings int

	// Unmatched counts conversions with at least one unmatched source
	// sampler.
	Unmatched int

	// OrderAdjustments is the total of local adjustments across the
	// run.
	OrderAdjustments int64

	// RepairsTriggered counts conversions whose global order repair
	// fired.
	RepairsTriggered int

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration
}

// Processor runs a source material against many targets.
type Processor struct {
	engine  *reconcile.Engine
	workers int
	log     *zap.Logger
}

// NewProcessor builds a processor converting through engine with at
// most workers parallel targets. A bound below one is raised to one; a
// nil logger disables logging.
func NewProcessor(engine *reconcile.Engine, workers int, log *zap.Logger) *Processor {
	if workers < 1 {
		workers = 1
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{engine: engine, workers: workers, log: log}
}

// Run converts every target against source. Outcomes are returned in
// input order regardless of completion order. Conversion itself cannot
// fail; the only error source is ctx cancellation, which aborts the
// remaining targets.
func (p *Processor) Run(ctx context.Context, source material.Material, targets []material.Material) ([]Outcome, Summary, error) {
	runID := uuid.New().String()
	start := time.Now()

	log := logger.WithRunID(p.log, runID)
	log.Info("batch run starting",
		zap.String("source", source.Name),
		zap.Int("targets", len(targets)),
		zap.Int("workers", p.workers))

	outcomes := make([]Outcome, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, target := range targets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := p.engine.Replace(source, target)
			outcomes[i] = Outcome{
				TargetName: target.Name,
				Result:     res,
				Converted:  reconcile.Apply(res),
			}
			log.Debug("target converted",
				zap.String("target", target.Name),
				zap.Int("warnings", len(res.Warnings)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, Summary{}, fmt.Errorf("batch run %s aborted: %w", runID, err)
	}

	summary := summarize(runID, outcomes, time.Since(start))
	log.Info("batch run finished",
		zap.Int("targets", summary.Targets),
		zap.Int("clean", summary.Clean),
		zap.Int("with_warnings", summary.WithWarnings),
		zap.Int("unmatched", summary.Unmatched),
		zap.Duration("elapsed", summary.Elapsed))
	return outcomes, summary, nil
}

func summarize(runID string, outcomes []Outcome, elapsed time.Duration) Summary {
	s := Summary{RunID: runID, Targets: len(outcomes), Elapsed: elapsed}
	for _, o := range outcomes {
		res := o.Result

		unmatched := false
		for _, r := range res.Results {
			if r.Status == reconcile.StatusUnmatched {
				unmatched = true
				break
			}
		}
		switch {
		case unmatched:
			s.Unmatched++
		case len(res.Warnings) > 0:
			s.WithWarnings++
		default:
			s.Clean++
		}

		s.OrderAdjustments += int64(res.OrderAdjustments)
		if res.GlobalRepairTriggered {
			s.RepairsTriggered++
		}
	}
	return s
}
