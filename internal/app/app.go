package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/draft-value/internal/config"
	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/draft"
	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/infrastructure/pages"
	"github.com/riskibarqy/draft-value/internal/interfaces/chart"
	"github.com/riskibarqy/draft-value/internal/interfaces/httpapi"
	"github.com/riskibarqy/draft-value/internal/platform/cache"
	idgen "github.com/riskibarqy/draft-value/internal/platform/id"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
	"github.com/riskibarqy/draft-value/internal/platform/resilience"
	"github.com/riskibarqy/draft-value/internal/usecase"
)

// Runtime holds the wired services shared by the API server and the batch CLI.
type Runtime struct {
	Registry  *player.Registry
	Ingestion *usecase.IngestionService
	Analysis  *usecase.AnalysisService
	Draft     *usecase.DraftService

	chartPath   string
	chartConfig chart.Config
	runIDs      idgen.Generator
	logger      *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*Runtime, error) {
	if logger == nil {
		logger = logging.Default()
	}

	loader, err := newLoader(cfg, logger)
	if err != nil {
		return nil, err
	}

	registry := player.NewRegistry()
	fitter := curve.NewFitter(curve.FitterConfig{
		MaxEvaluations: cfg.FitMaxEvaluations,
		QBMinPPG:       cfg.QBMinPPG,
	})

	var optimal *cache.Store[float64]
	if cfg.CacheEnabled {
		optimal = cache.NewStore[float64](cfg.CacheTTL)
	}

	analysis := usecase.NewAnalysisService(registry, fitter, cfg.FitWorkers, logger)
	return &Runtime{
		Registry:  registry,
		Ingestion: usecase.NewIngestionService(loader, registry, cfg.SourceParseWorkers, logger),
		Analysis:  analysis,
		Draft: usecase.NewDraftService(registry, analysis, cfg.LeagueSize, draft.SolverConfig{
			InitialGuess:  cfg.RootInitialGuess,
			MaxIterations: cfg.RootMaxIterations,
		}, optimal, logger),
		chartPath:   cfg.ChartOutputPath,
		chartConfig: chart.DefaultConfig(),
		runIDs:      idgen.NewRandomGenerator(8),
		logger:      logger,
	}, nil
}

func newLoader(cfg config.Config, logger *logging.Logger) (pages.Loader, error) {
	switch cfg.SourceFetchMode {
	case config.FetchModeFile, "":
		return pages.NewFileLoader(cfg.DataDir), nil
	case config.FetchModeHTTP:
		return pages.NewHTTPLoader(pages.HTTPLoaderConfig{
			URLs: map[player.Source]pages.SourceURLs{
				player.SourceESPN: {
					Rankings:    cfg.ESPNRankingsURL,
					Projections: cfg.ESPNProjectionsURLs,
				},
				player.SourceFantasyPros: {
					Rankings:    cfg.FantasyProsRankingsURL,
					Projections: cfg.FantasyProsProjectionsURLs,
				},
			},
			Timeout:   cfg.SourceFetchTimeout,
			UserAgent: cfg.SourceUserAgent,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.SourceCircuitEnabled,
				FailureThreshold: cfg.SourceCircuitFailureCount,
				OpenTimeout:      cfg.SourceCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.SourceCircuitHalfOpenMaxReq,
			},
		}, logger), nil
	default:
		return nil, fmt.Errorf("unsupported source fetch mode %q", cfg.SourceFetchMode)
	}
}

func NewHTTPServer(cfg config.Config, rt *Runtime, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	handler := httpapi.NewHandler(rt.Registry, rt.Analysis, rt.Draft, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
