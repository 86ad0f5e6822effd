package usecase

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/draft"
	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/cache"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
)

var runningBackTruth = curve.Parameters{C1: 100, C2: 1, X0: 1, P: 1, Y0: 5}

// seedRegistry registers eight running backs on the model curve and two
// tight ends, which is too few points to fit.
func seedRegistry(t *testing.T) *player.Registry {
	t.Helper()

	registry := player.NewRegistry()
	for i, rank := range []int{1, 2, 3, 5, 8, 12, 16, 20} {
		p := player.New(fmt.Sprintf("Runner %c", 'A'+i), "RB", "")
		p.SetRank(player.SourceESPN, rank)
		p.SetProjectedPPG(player.SourceESPN, curve.Func(float64(rank), runningBackTruth))
		registry.Ingest(p)
	}
	for i, rank := range []int{4, 30} {
		p := player.New(fmt.Sprintf("Catcher %c", 'A'+i), "TE", "")
		p.SetRank(player.SourceFantasyPros, rank)
		p.SetProjectedPPG(player.SourceFantasyPros, 10-float64(i))
		registry.Ingest(p)
	}
	require.Equal(t, 10, registry.Len())
	return registry
}

func TestAnalysisService_Run_IsolatesFitFailures(t *testing.T) {
	t.Parallel()

	registry := seedRegistry(t)
	svc := NewAnalysisService(registry, curve.NewFitter(curve.DefaultFitterConfig()), 2, logging.NewNop())

	_, err := svc.Current()
	require.ErrorIs(t, err, ErrNotReady)

	analysis, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"RB", "TE"}, analysis.Positions())
	require.Contains(t, analysis.Curves, "RB")
	assert.NotContains(t, analysis.Curves, "TE")
	require.Len(t, analysis.Failures, 1)
	assert.Equal(t, "TE", analysis.Failures[0].Position)
	assert.NotEmpty(t, analysis.Failures[0].Reason)

	fitted, err := svc.Curve("rb")
	require.NoError(t, err)
	assert.Equal(t, "RB", fitted.Position)

	_, err = svc.Curve("TE")
	assert.ErrorIs(t, err, ErrNoCurve)
	_, err = svc.Curve("K")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = svc.Curve(" ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnalysisService_Samples(t *testing.T) {
	t.Parallel()

	svc := NewAnalysisService(seedRegistry(t), curve.NewFitter(curve.DefaultFitterConfig()), 2, logging.NewNop())
	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	samples, err := svc.Samples(context.Background(), "RB")
	require.NoError(t, err)
	require.NotEmpty(t, samples)
	for _, s := range samples {
		assert.GreaterOrEqual(t, s.X, 0.0)
		assert.GreaterOrEqual(t, s.Y, 0.0)
		assert.Less(t, s.Y, 1000.0)
	}

	_, err = svc.Samples(context.Background(), "TE")
	assert.ErrorIs(t, err, ErrNoCurve)
}

func newTestDraftService(t *testing.T, optimal *cache.Store[float64]) *DraftService {
	t.Helper()

	registry := seedRegistry(t)
	analysis := NewAnalysisService(registry, curve.NewFitter(curve.DefaultFitterConfig()), 2, logging.NewNop())
	_, err := analysis.Run(context.Background())
	require.NoError(t, err)

	return NewDraftService(registry, analysis, 10, draft.DefaultSolverConfig(), optimal, logging.NewNop())
}

func TestDraftService_Rank(t *testing.T) {
	t.Parallel()

	svc := newTestDraftService(t, nil)
	result, err := svc.Rank(context.Background(), RankInput{
		DraftPosition: 3,
		Remaining:     []string{"Runner E", "Nobody Known", "Runner A", "Catcher A", "Runner A", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Nobody Known"}, result.Unresolved)

	require.Len(t, result.Ranked, 2)
	assert.Equal(t, "Runner A", result.Ranked[0].Player.Name)
	assert.Equal(t, "Runner E", result.Ranked[1].Player.Name)
	assert.Greater(t, result.Ranked[0].Value, result.Ranked[1].Value)

	fitted, err := svc.analysis.Curve("RB")
	require.NoError(t, err)
	want := curve.Func(1, runningBackTruth) - fitted.Eval(13)
	assert.InDelta(t, want, result.Ranked[0].Value, 1e-9)
}

func TestDraftService_Rank_InvalidDraftPosition(t *testing.T) {
	t.Parallel()

	svc := newTestDraftService(t, nil)
	_, err := svc.Rank(context.Background(), RankInput{DraftPosition: 0, Remaining: []string{"Runner A"}})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDraftService_OptimalPosition(t *testing.T) {
	t.Parallel()

	store := cache.NewStore[float64](time.Minute)
	svc := newTestDraftService(t, store)
	ctx := context.Background()

	x, ok, err := svc.OptimalPosition(ctx, "RB", 15, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 9.0, x, 1.0)

	again, ok, err := svc.OptimalPosition(ctx, "RB", 15, nil)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, x, again)
	assert.Equal(t, 1, store.Len())

	_, ok, err = svc.OptimalPosition(ctx, "RB", 1, nil)
	require.NoError(t, err)
	assert.False(t, ok)

	_, _, err = svc.OptimalPosition(ctx, "RB", math.NaN(), nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = svc.OptimalPosition(ctx, "TE", 10, nil)
	assert.ErrorIs(t, err, ErrNoCurve)
}

func TestDraftService_OptimalPosition_ExplicitGuess(t *testing.T) {
	t.Parallel()

	store := cache.NewStore[float64](time.Minute)
	svc := newTestDraftService(t, store)
	ctx := context.Background()

	_, ok, err := svc.OptimalPosition(ctx, "RB", 15, nil)
	require.NoError(t, err)
	require.True(t, ok)

	zero := 0.0
	x, ok, err := svc.OptimalPosition(ctx, "RB", 15, &zero)
	require.NoError(t, err)
	require.True(t, ok)
	assert.InDelta(t, 9.0, x, 1.0)
	assert.Equal(t, 2, store.Len(), "a zero guess is its own cache entry")

	bad := math.Inf(1)
	_, _, err = svc.OptimalPosition(ctx, "RB", 15, &bad)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

// positionFitters routes a position to its own fitter, falling back to a
// shared one.
type positionFitters struct {
	byPosition map[string]*curve.Fitter
	fallback   *curve.Fitter
}

func (f positionFitters) Fit(position string, points []curve.Point) (curve.FittedCurve, error) {
	if fitter, ok := f.byPosition[position]; ok {
		return fitter.Fit(position, points)
	}
	return f.fallback.Fit(position, points)
}

func TestAnalysisService_Run_IsolatesBudgetExhaustion(t *testing.T) {
	t.Parallel()

	registry := seedRegistry(t)
	receiverTruth := curve.Parameters{C1: 60, C2: 1, X0: 2, P: 0.8, Y0: 4}
	for i, rank := range []int{2, 4, 7, 11, 15, 22} {
		p := player.New(fmt.Sprintf("Receiver %c", 'A'+i), "WR", "")
		p.SetRank(player.SourceESPN, rank)
		p.SetProjectedPPG(player.SourceESPN, curve.Func(float64(rank), receiverTruth))
		registry.Ingest(p)
	}

	fitter := positionFitters{
		byPosition: map[string]*curve.Fitter{
			"WR": curve.NewFitter(curve.FitterConfig{MaxEvaluations: 150, QBMinPPG: curve.DefaultQBMinPPG}),
		},
		fallback: curve.NewFitter(curve.DefaultFitterConfig()),
	}
	analysis := NewAnalysisService(registry, fitter, 3, logging.NewNop())
	result, err := analysis.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"RB", "TE", "WR"}, result.Positions())
	require.Contains(t, result.Curves, "RB")
	assert.NotContains(t, result.Curves, "WR")
	require.Len(t, result.Failures, 2)
	assert.Equal(t, "WR", result.Failures[1].Position)
	assert.Contains(t, result.Failures[1].Reason, "FunctionEvaluationLimit")

	svc := NewDraftService(registry, analysis, 10, draft.DefaultSolverConfig(), nil, logging.NewNop())
	ranked, err := svc.Rank(context.Background(), RankInput{
		DraftPosition: 5,
		Remaining:     []string{"Receiver A", "Runner B", "Runner F"},
	})
	require.NoError(t, err)
	require.Len(t, ranked.Ranked, 2)
	assert.Equal(t, "Runner B", ranked.Ranked[0].Player.Name)
	assert.Equal(t, "Runner F", ranked.Ranked[1].Player.Name)
	assert.Empty(t, ranked.Unresolved)

	_, err = analysis.Curve("WR")
	assert.ErrorIs(t, err, ErrNoCurve)
}
