package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/domain/source"
	"github.com/riskibarqy/draft-value/internal/infrastructure/pages"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
)

const defaultParseWorkers = 4

type IngestionSummary struct {
	Sources    []SourceSummary `json:"sources"`
	Players    int             `json:"players"`
	DurationMs int64           `json:"duration_ms"`
}

type SourceSummary struct {
	Source  player.Source `json:"source"`
	Pages   int           `json:"pages"`
	Records int           `json:"records"`
	Skipped int           `json:"skipped"`
	Merged  int           `json:"merged"`
}

// IngestionService loads every provider's pages into the player registry.
type IngestionService struct {
	loader   pages.Loader
	registry player.Repository
	parser   func(player.Source) (source.Parser, error)
	workers  int
	logger   *logging.Logger
}

func NewIngestionService(loader pages.Loader, registry player.Repository, workers int, logger *logging.Logger) *IngestionService {
	if workers < 1 {
		workers = defaultParseWorkers
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestionService{
		loader:   loader,
		registry: registry,
		parser:   source.ForSource,
		workers:  workers,
		logger:   logger,
	}
}

type parseJob struct {
	index  int
	parser source.Parser
	page   pages.Page
}

type parseOutcome struct {
	index  int
	result source.Result
	err    error
}

// Load fetches and parses pages in parallel, then ingests the records one by
// one: for each source in order, its rankings before its projections.
func (s *IngestionService) Load(ctx context.Context) (IngestionSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.Load")
	defer span.End()

	start := time.Now()
	jobs, err := s.collectPages(ctx)
	if err != nil {
		recordSpanError(span, err)
		return IngestionSummary{}, err
	}

	outcomes, err := s.parseAll(ctx, jobs)
	if err != nil {
		recordSpanError(span, err)
		return IngestionSummary{}, err
	}

	summaries := make(map[player.Source]*SourceSummary, len(player.AllSources))
	result := IngestionSummary{Sources: make([]SourceSummary, 0, len(player.AllSources))}
	for _, src := range player.AllSources {
		summaries[src] = &SourceSummary{Source: src}
	}

	for i, job := range jobs {
		outcome := outcomes[i]
		summary := summaries[job.page.Source]
		summary.Pages++
		if outcome.err != nil {
			err := fmt.Errorf("parse %s %s page %s: %w", job.page.Source, job.page.Kind, job.page.Name, outcome.err)
			recordSpanError(span, err)
			return IngestionSummary{}, err
		}
		s.logParseResult(ctx, job.page, outcome.result)

		summary.Skipped += len(outcome.result.Skipped)
		for _, rec := range outcome.result.Records {
			summary.Records++
			if into, merged := s.registry.Ingest(rec.Player()); merged {
				summary.Merged++
				s.logger.DebugContext(ctx, "merging players", "into", into, "from", rec.Name, "source", rec.Source)
			}
		}
	}

	for _, src := range player.AllSources {
		result.Sources = append(result.Sources, *summaries[src])
	}
	result.Players = s.registry.Len()
	result.DurationMs = time.Since(start).Milliseconds()
	span.SetAttributes(attribute.Int("ingestion.players", result.Players))

	s.logger.InfoContext(ctx, "players loaded", "players", result.Players, "duration_ms", result.DurationMs)
	return result, nil
}

func (s *IngestionService) collectPages(ctx context.Context) ([]parseJob, error) {
	var jobs []parseJob
	for _, src := range player.AllSources {
		parser, err := s.parser(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}

		rankings, err := s.loader.Rankings(ctx, src)
		switch {
		case errors.Is(err, pages.ErrNotFound):
			s.logger.InfoContext(ctx, "skipping rankings because page was not found", "source", src, "error", err)
		case err != nil:
			return nil, fmt.Errorf("%w: load %s rankings: %v", ErrDependencyUnavailable, src, err)
		default:
			jobs = append(jobs, parseJob{index: len(jobs), parser: parser, page: rankings})
		}

		projections, err := s.loader.Projections(ctx, src)
		switch {
		case errors.Is(err, pages.ErrNotFound):
			s.logger.InfoContext(ctx, "skipping projections because pages were not found", "source", src, "error", err)
		case err != nil:
			return nil, fmt.Errorf("%w: load %s projections: %v", ErrDependencyUnavailable, src, err)
		default:
			for _, page := range projections {
				jobs = append(jobs, parseJob{index: len(jobs), parser: parser, page: page})
			}
		}
	}
	return jobs, nil
}

func (s *IngestionService) parseAll(ctx context.Context, jobs []parseJob) ([]parseOutcome, error) {
	outcomes := make([]parseOutcome, len(jobs))
	if len(jobs) == 0 {
		return outcomes, nil
	}

	workerCount := s.workers
	if workerCount > len(jobs) {
		workerCount = len(jobs)
	}
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create parse worker pool: %w", err)
	}
	defer pool.Release()

	results := make(chan parseOutcome, len(jobs))
	var workers sync.WaitGroup
	for _, job := range jobs {
		job := job
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results <- parsePage(ctx, job)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit parse job to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)
	for outcome := range results {
		outcomes[outcome.index] = outcome
	}
	return outcomes, nil
}

func parsePage(ctx context.Context, job parseJob) parseOutcome {
	if err := ctx.Err(); err != nil {
		return parseOutcome{index: job.index, err: err}
	}

	var (
		result source.Result
		err    error
	)
	body := bytes.NewReader(job.page.Body)
	switch job.page.Kind {
	case pages.KindRankings:
		result, err = job.parser.ParseRankings(body)
	case pages.KindProjections:
		result, err = job.parser.ParsePPG(body)
	default:
		err = fmt.Errorf("%w: page kind %q", ErrInvalidInput, job.page.Kind)
	}
	return parseOutcome{index: job.index, result: result, err: err}
}

func (s *IngestionService) logParseResult(ctx context.Context, page pages.Page, result source.Result) {
	if !result.TableFound {
		s.logger.DebugContext(ctx, "skipping page because the table was not found", "source", page.Source, "kind", page.Kind, "page", page.Name)
		return
	}
	for _, skipped := range result.Skipped {
		s.logger.DebugContext(ctx, "skipping row because of a parsing error", "source", page.Source, "kind", page.Kind, "row", skipped.Row, "error", skipped.Err)
	}
}
