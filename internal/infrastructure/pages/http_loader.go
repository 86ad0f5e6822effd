package pages

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
	"github.com/riskibarqy/draft-value/internal/platform/resilience"
)

var errFetchTransient = errors.New("page fetch transient failure")

// SourceURLs are the live pages of one provider.
type SourceURLs struct {
	Rankings    string
	Projections []string
}

type HTTPLoaderConfig struct {
	URLs           map[player.Source]SourceURLs
	Timeout        time.Duration
	UserAgent      string
	CircuitBreaker resilience.CircuitBreakerConfig
}

// HTTPLoader downloads provider pages. One breaker guards all providers.
type HTTPLoader struct {
	client         *http.Client
	urls           map[player.Source]SourceURLs
	userAgent      string
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewHTTPLoader(cfg HTTPLoaderConfig, logger *logging.Logger) *HTTPLoader {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = "draft-value/1.0"
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &HTTPLoader{
		client: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		urls:           cfg.URLs,
		userAgent:      userAgent,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

func (l *HTTPLoader) Rankings(ctx context.Context, source player.Source) (Page, error) {
	url := strings.TrimSpace(l.urls[source].Rankings)
	if url == "" {
		return Page{}, errors.Wrapf(ErrNotFound, "no rankings url for %s", source)
	}

	body, err := l.fetch(ctx, url)
	if err != nil {
		return Page{}, err
	}
	return Page{Source: source, Kind: KindRankings, Name: url, Body: body}, nil
}

func (l *HTTPLoader) Projections(ctx context.Context, source player.Source) ([]Page, error) {
	urls := l.urls[source].Projections
	out := make([]Page, 0, len(urls))
	for _, raw := range urls {
		url := strings.TrimSpace(raw)
		if url == "" {
			continue
		}
		body, err := l.fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		out = append(out, Page{Source: source, Kind: KindProjections, Name: url, Body: body})
	}
	return out, nil
}

func (l *HTTPLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.circuitEnabled {
		if err := l.breaker.Allow(); err != nil {
			l.logger.WarnContext(ctx, "page fetch circuit breaker rejected request", "url", url, "state", l.breaker.State())
			return nil, errors.Wrapf(err, "fetch %s", url)
		}
	}

	span := trace.SpanFromContext(ctx)
	if span.IsRecording() {
		span.SetAttributes(attribute.String("page.url", url))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.recordCircuitResult(nil)
		return nil, errors.Wrapf(err, "create request for %s", url)
	}
	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := l.client.Do(req)
	if err != nil {
		callErr := errors.Mark(errors.Wrapf(err, "fetch %s", url), errFetchTransient)
		l.recordCircuitResult(callErr)
		return nil, callErr
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		l.recordCircuitResult(nil)
		return nil, errors.Wrapf(ErrNotFound, "fetch %s status=%d", url, resp.StatusCode)
	}
	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		callErr := errors.Newf("fetch %s status=%d body=%s", url, resp.StatusCode, strings.TrimSpace(string(raw)))
		if isRetryableStatus(resp.StatusCode) {
			callErr = errors.Mark(callErr, errFetchTransient)
		}
		l.recordCircuitResult(callErr)
		return nil, callErr
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		callErr := errors.Mark(errors.Wrapf(err, "read body of %s", url), errFetchTransient)
		l.recordCircuitResult(callErr)
		return nil, callErr
	}

	l.recordCircuitResult(nil)
	l.logger.DebugContext(ctx, "page fetched", "url", url, "bytes", buf.Len())
	return append([]byte(nil), buf.B...), nil
}

func (l *HTTPLoader) recordCircuitResult(err error) {
	if !l.circuitEnabled || l.breaker == nil {
		return
	}
	if err != nil && errors.Is(err, errFetchTransient) {
		l.breaker.RecordFailure()
		return
	}
	l.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}
