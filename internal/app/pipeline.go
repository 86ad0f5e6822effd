package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/interfaces/chart"
	"github.com/riskibarqy/draft-value/internal/usecase"
)

type PipelineResult struct {
	RunID     string
	Ingestion usecase.IngestionSummary
	Analysis  usecase.Analysis
	// ChartPath is empty when no chart was written.
	ChartPath string
}

// RunPipeline loads every source page into the registry, fits the position
// curves and writes the chart. A chart failure is logged and does not fail
// the run.
func (r *Runtime) RunPipeline(ctx context.Context) (PipelineResult, error) {
	started := time.Now()
	runID, err := r.runIDs.NewID()
	if err != nil {
		return PipelineResult{}, errors.Wrap(err, "generate run id")
	}
	logger := r.logger.With("run_id", runID)
	logger.InfoContext(ctx, "pipeline started")

	summary, err := r.Ingestion.Load(ctx)
	if err != nil {
		return PipelineResult{}, errors.Wrap(err, "load sources")
	}

	analysis, err := r.Analysis.Run(ctx)
	if err != nil {
		return PipelineResult{}, errors.Wrap(err, "fit curves")
	}

	result := PipelineResult{RunID: runID, Ingestion: summary, Analysis: analysis}
	if r.chartPath != "" {
		if err := chart.RenderFile(r.chartPath, analysis.PointSets, analysis.Curves, r.chartConfig); err != nil {
			logger.WarnContext(ctx, "chart not written", "path", r.chartPath, "error", err)
		} else {
			result.ChartPath = r.chartPath
		}
	}

	logger.InfoContext(ctx, "pipeline finished",
		"players", summary.Players,
		"curves", len(analysis.Curves),
		"failed_positions", len(analysis.Failures),
		"chart", result.ChartPath,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return result, nil
}
