package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/grafana/pyroscope-go"
	"github.com/sourcegraph/conc/pool"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
)

const defaultFitWorkers = 4

// CurveFailure records why a position has no curve.
type CurveFailure struct {
	Position string `json:"position"`
	Reason   string `json:"reason"`
}

// Analysis is the result of one fitting run. Curves only holds positions
// whose fit succeeded.
type Analysis struct {
	PointSets []curve.PointSet
	Curves    map[string]curve.FittedCurve
	Failures  []CurveFailure
}

// Positions lists every position seen, in first-seen order.
func (a Analysis) Positions() []string {
	out := make([]string, 0, len(a.PointSets))
	for _, set := range a.PointSets {
		out = append(out, set.Position)
	}
	return out
}

// CurveFitter fits one position's points. *curve.Fitter is the production
// implementation.
type CurveFitter interface {
	Fit(position string, points []curve.Point) (curve.FittedCurve, error)
}

// AnalysisService groups the registry by position and fits one curve per
// position. The latest analysis is kept for the draft-time queries.
type AnalysisService struct {
	registry player.Repository
	fitter   CurveFitter
	workers  int
	logger   *logging.Logger

	mu      sync.RWMutex
	current *Analysis
}

func NewAnalysisService(registry player.Repository, fitter CurveFitter, workers int, logger *logging.Logger) *AnalysisService {
	if workers < 1 {
		workers = defaultFitWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &AnalysisService{
		registry: registry,
		fitter:   fitter,
		workers:  workers,
		logger:   logger,
	}
}

type fitOutcome struct {
	position string
	curve    curve.FittedCurve
	err      error
}

// Run fits every position in parallel. A failed position is logged and
// reported in Failures; it never prevents the other positions from fitting.
func (s *AnalysisService) Run(ctx context.Context) (Analysis, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Run")
	defer span.End()

	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}

	sets := curve.BuildPointSets(s.registry.All())
	p := pool.NewWithResults[fitOutcome]().WithMaxGoroutines(s.workers)
	for _, set := range sets {
		set := set
		p.Go(func() fitOutcome {
			var outcome fitOutcome
			// labels only reach a profile when pyroscope is running
			pyroscope.TagWrapper(ctx, pyroscope.Labels("position", set.Position), func(context.Context) {
				fitted, err := s.fitter.Fit(set.Position, set.Points)
				outcome = fitOutcome{position: set.Position, curve: fitted, err: err}
			})
			return outcome
		})
	}
	outcomes := p.Wait()

	byPosition := make(map[string]fitOutcome, len(outcomes))
	for _, outcome := range outcomes {
		byPosition[outcome.position] = outcome
	}

	analysis := Analysis{
		PointSets: sets,
		Curves:    make(map[string]curve.FittedCurve, len(sets)),
	}
	for _, set := range sets {
		outcome := byPosition[set.Position]
		if outcome.err != nil {
			s.logger.WarnContext(ctx, "skipping position due to curve-fitting error", "position", set.Position, "points", len(set.Points), "error", outcome.err)
			analysis.Failures = append(analysis.Failures, CurveFailure{Position: set.Position, Reason: outcome.err.Error()})
			continue
		}
		analysis.Curves[set.Position] = outcome.curve
		s.logger.DebugContext(ctx, "curve fitted", "position", set.Position, "params", outcome.curve.Parameters)
	}

	span.SetAttributes(
		attribute.Int("analysis.positions", len(sets)),
		attribute.Int("analysis.failures", len(analysis.Failures)),
	)

	s.mu.Lock()
	s.current = &analysis
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "curves fitted", "fitted", len(analysis.Curves), "failed", len(analysis.Failures))
	return analysis, nil
}

// Current returns the latest analysis.
func (s *AnalysisService) Current() (Analysis, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return Analysis{}, ErrNotReady
	}
	return *s.current, nil
}

// Curve returns the fitted curve for position.
func (s *AnalysisService) Curve(position string) (curve.FittedCurve, error) {
	analysis, err := s.Current()
	if err != nil {
		return curve.FittedCurve{}, err
	}
	return analysis.curveFor(position)
}

// Samples evaluates the position's curve over the chart domain of all point
// sets.
func (s *AnalysisService) Samples(ctx context.Context, position string) ([]curve.Point, error) {
	_, span := startUsecaseSpan(ctx, "usecase.AnalysisService.Samples", attribute.String("position", position))
	defer span.End()

	analysis, err := s.Current()
	if err != nil {
		return nil, err
	}
	fitted, err := analysis.curveFor(position)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	domain, ok := curve.DomainFor(analysis.PointSets)
	if !ok {
		return nil, nil
	}

	samples := curve.Sample(fitted, domain)
	s.logger.DebugContext(ctx, "curve sampled", "position", fitted.Position, "samples", len(samples))
	return samples, nil
}

func (a Analysis) curveFor(position string) (curve.FittedCurve, error) {
	position = strings.ToUpper(strings.TrimSpace(position))
	if position == "" {
		return curve.FittedCurve{}, fmt.Errorf("%w: position is required", ErrInvalidInput)
	}
	if fitted, ok := a.Curves[position]; ok {
		return fitted, nil
	}
	for _, set := range a.PointSets {
		if set.Position == position {
			return curve.FittedCurve{}, fmt.Errorf("%w: position=%s", ErrNoCurve, position)
		}
	}
	return curve.FittedCurve{}, fmt.Errorf("%w: position=%s", ErrNotFound, position)
}
