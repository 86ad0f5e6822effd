package pages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
	"github.com/riskibarqy/draft-value/internal/platform/resilience"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
}

func TestFileLoader(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ESPN", "Rankings.htm"), "<table></table>")
	writeFile(t, filepath.Join(dir, "ESPN", "Projections", "b_RB.html"), "rb")
	writeFile(t, filepath.Join(dir, "ESPN", "Projections", "a_QB.htm"), "qb")
	writeFile(t, filepath.Join(dir, "ESPN", "Projections", "notes.txt"), "ignored")

	loader := NewFileLoader(dir)
	ctx := context.Background()

	page, err := loader.Rankings(ctx, player.SourceESPN)
	require.NoError(t, err)
	assert.Equal(t, KindRankings, page.Kind)
	assert.Equal(t, "<table></table>", string(page.Body))

	projections, err := loader.Projections(ctx, player.SourceESPN)
	require.NoError(t, err)
	require.Len(t, projections, 2)
	assert.Equal(t, "qb", string(projections[0].Body))
	assert.Equal(t, "rb", string(projections[1].Body))
	assert.Equal(t, player.SourceESPN, projections[1].Source)

	_, err = loader.Rankings(ctx, player.SourceFantasyPros)
	assert.True(t, errors.Is(err, ErrNotFound))
	_, err = loader.Projections(ctx, player.SourceFantasyPros)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHTTPLoader(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /rankings", func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte("<table class=\"table-bordered\"></table>"))
	})
	mux.HandleFunc("GET /qb", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("qb"))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	loader := NewHTTPLoader(HTTPLoaderConfig{
		URLs: map[player.Source]SourceURLs{
			player.SourceFantasyPros: {
				Rankings:    srv.URL + "/rankings",
				Projections: []string{srv.URL + "/qb", " "},
			},
		},
		Timeout: time.Second,
	}, logging.NewNop())
	ctx := context.Background()

	page, err := loader.Rankings(ctx, player.SourceFantasyPros)
	require.NoError(t, err)
	assert.Contains(t, string(page.Body), "table-bordered")

	projections, err := loader.Projections(ctx, player.SourceFantasyPros)
	require.NoError(t, err)
	require.Len(t, projections, 1)
	assert.Equal(t, "qb", string(projections[0].Body))

	_, err = loader.Rankings(ctx, player.SourceESPN)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestHTTPLoader_NotFoundDoesNotTripBreaker(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	loader := NewHTTPLoader(HTTPLoaderConfig{
		URLs: map[player.Source]SourceURLs{player.SourceESPN: {Rankings: srv.URL + "/missing"}},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 1,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 3; i++ {
		_, err := loader.Rankings(context.Background(), player.SourceESPN)
		require.True(t, errors.Is(err, ErrNotFound))
	}
	assert.Equal(t, resilience.CircuitStateClosed, loader.breaker.State())
}

func TestHTTPLoader_BreakerOpensOnServerErrors(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	loader := NewHTTPLoader(HTTPLoaderConfig{
		URLs: map[player.Source]SourceURLs{player.SourceESPN: {Rankings: srv.URL}},
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	for i := 0; i < 2; i++ {
		_, err := loader.Rankings(context.Background(), player.SourceESPN)
		require.Error(t, err)
		assert.False(t, errors.Is(err, resilience.ErrCircuitOpen))
	}

	_, err := loader.Rankings(context.Background(), player.SourceESPN)
	require.Error(t, err)
	assert.True(t, errors.Is(err, resilience.ErrCircuitOpen))
	assert.Equal(t, int32(2), hits.Load())
}
