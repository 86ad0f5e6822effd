package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/draft-value/internal/domain/draft"
	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/cache"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
)

type RankInput struct {
	DraftPosition int
	Remaining     []string
}

type RankResult struct {
	Ranked     []draft.Ranked
	Unresolved []string
}

// DraftService answers draft-time questions against the latest analysis.
type DraftService struct {
	registry   player.Repository
	analysis   *AnalysisService
	leagueSize int
	solver     draft.SolverConfig
	optimal    *cache.Store[float64]
	logger     *logging.Logger
}

// NewDraftService builds the service. A nil optimal store disables caching
// of optimal-position answers.
func NewDraftService(
	registry player.Repository,
	analysis *AnalysisService,
	leagueSize int,
	solver draft.SolverConfig,
	optimal *cache.Store[float64],
	logger *logging.Logger,
) *DraftService {
	if logger == nil {
		logger = logging.Default()
	}
	return &DraftService{
		registry:   registry,
		analysis:   analysis,
		leagueSize: leagueSize,
		solver:     solver,
		optimal:    optimal,
		logger:     logger,
	}
}

func (s *DraftService) LeagueSize() int {
	return s.leagueSize
}

// Rank resolves each remaining name against the registry and orders the
// resolved players by draft value at input.DraftPosition.
func (s *DraftService) Rank(ctx context.Context, input RankInput) (RankResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.Rank", attribute.Int("draft.position", input.DraftPosition))
	defer span.End()

	if input.DraftPosition < 1 {
		return RankResult{}, fmt.Errorf("%w: draft position must be >= 1", ErrInvalidInput)
	}

	analysis, err := s.analysis.Current()
	if err != nil {
		return RankResult{}, err
	}

	var result RankResult
	candidates := make([]player.Player, 0, len(input.Remaining))
	seen := make(map[string]struct{}, len(input.Remaining))
	for _, raw := range input.Remaining {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		p, ok := s.registry.Lookup(name)
		if !ok {
			s.logger.WarnContext(ctx, "skipping unresolved player name", "name", name)
			result.Unresolved = append(result.Unresolved, name)
			continue
		}
		if _, dup := seen[p.Name]; dup {
			continue
		}
		seen[p.Name] = struct{}{}
		candidates = append(candidates, p)
	}

	result.Ranked = draft.Rank(candidates, input.DraftPosition, s.leagueSize, analysis.Curves)
	return result, nil
}

// OptimalPosition is the draft position at which position's curve expects
// ppg. A nil guess starts the root finder from the configured initial guess.
// ok is false when the root finder could not produce one.
func (s *DraftService) OptimalPosition(ctx context.Context, position string, ppg float64, guess *float64) (float64, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.DraftService.OptimalPosition", attribute.String("position", position))
	defer span.End()

	if math.IsNaN(ppg) || math.IsInf(ppg, 0) {
		return 0, false, fmt.Errorf("%w: ppg must be finite", ErrInvalidInput)
	}
	start := s.solver.InitialGuess
	if guess != nil {
		if math.IsNaN(*guess) || math.IsInf(*guess, 0) {
			return 0, false, fmt.Errorf("%w: guess must be finite", ErrInvalidInput)
		}
		start = *guess
	}

	fitted, err := s.analysis.Curve(position)
	if err != nil {
		recordSpanError(span, err)
		return 0, false, err
	}

	solve := func(ctx context.Context) (float64, error) {
		x, err := draft.SolveDraftPosition(ppg, fitted, draft.SolverConfig{
			InitialGuess:  start,
			MaxIterations: s.solver.MaxIterations,
		})
		if err != nil {
			s.logger.DebugContext(ctx, "no optimal draft position", "position", fitted.Position, "ppg", ppg, "guess", start, "error", err)
			return math.NaN(), nil
		}
		return x, nil
	}

	var x float64
	if s.optimal == nil {
		x, _ = solve(ctx)
	} else {
		key := fitted.Position + "|" + strconv.FormatFloat(ppg, 'g', -1, 64) + "|" + strconv.FormatFloat(start, 'g', -1, 64)
		x, err = s.optimal.GetOrLoad(ctx, key, solve)
		if err != nil {
			return 0, false, err
		}
	}

	if math.IsNaN(x) {
		return 0, false, nil
	}
	return x, true, nil
}
