package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/draft-value/internal/domain/curve"
	"github.com/riskibarqy/draft-value/internal/domain/draft"
	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/cache"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
	"github.com/riskibarqy/draft-value/internal/usecase"
)

var runningBackTruth = curve.Parameters{C1: 100, C2: 1, X0: 1, P: 1, Y0: 5}

func newTestRouter(t *testing.T, runAnalysis bool) http.Handler {
	t.Helper()

	registry := player.NewRegistry()
	for i, rank := range []int{1, 2, 3, 5, 8, 12, 16, 20} {
		p := player.New(fmt.Sprintf("Runner %c", 'A'+i), "RB", "SF")
		p.SetRank(player.SourceESPN, rank)
		p.SetProjectedPPG(player.SourceESPN, curve.Func(float64(rank), runningBackTruth))
		registry.Ingest(p)
	}
	for i, rank := range []int{4, 30} {
		p := player.New(fmt.Sprintf("Catcher %c", 'A'+i), "TE", "KC")
		p.SetRank(player.SourceFantasyPros, rank)
		p.SetProjectedPPG(player.SourceFantasyPros, 10-float64(i))
		registry.Ingest(p)
	}

	logger := logging.NewNop()
	analysis := usecase.NewAnalysisService(registry, curve.NewFitter(curve.DefaultFitterConfig()), 2, logger)
	if runAnalysis {
		_, err := analysis.Run(context.Background())
		require.NoError(t, err)
	}
	draftService := usecase.NewDraftService(registry, analysis, 10, draft.DefaultSolverConfig(), cache.NewStore[float64](time.Minute), logger)

	handler := NewHandler(registry, analysis, draftService, logger)
	return NewRouter(handler, logger, RouterConfig{ServiceName: "draft-value-test", CORSAllowedOrigins: []string{"*"}})
}

func serve(router http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Healthz(t *testing.T) {
	t.Parallel()

	rec := serve(newTestRouter(t, false), http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "warming_up", data["status"])
}

func TestRouter_CurvesBeforeAnalysis(t *testing.T) {
	t.Parallel()

	rec := serve(newTestRouter(t, false), http.MethodGet, "/v1/curves", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_ListPlayers(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, true)

	rec := serve(router, http.MethodGet, "/v1/players", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeEnvelope(t, rec)["data"], 10)

	rec = serve(router, http.MethodGet, "/v1/players?position=te", "")
	require.Equal(t, http.StatusOK, rec.Code)
	items := decodeEnvelope(t, rec)["data"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "Catcher A", first["name"])
	assert.InDelta(t, 10.0, first["average_projected_ppg"], 1e-9)
}

func TestRouter_Curves(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, true)

	rec := serve(router, http.MethodGet, "/v1/curves", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)

	curves := data["curves"].([]any)
	require.Len(t, curves, 1)
	rb := curves[0].(map[string]any)
	assert.Equal(t, "RB", rb["position"])
	assert.EqualValues(t, 8, rb["points"])
	assert.Contains(t, rb["parameters"], "c1")

	failures := data["failures"].([]any)
	require.Len(t, failures, 1)
	assert.Equal(t, "TE", failures[0].(map[string]any)["position"])

	rec = serve(router, http.MethodGet, "/v1/curves/rb/samples", "")
	require.Equal(t, http.StatusOK, rec.Code)
	samples := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "RB", samples["position"])
	assert.NotEmpty(t, samples["samples"])

	rec = serve(router, http.MethodGet, "/v1/curves/TE/samples", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = serve(router, http.MethodGet, "/v1/curves/K/samples", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_RankDraft(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, true)

	rec := serve(router, http.MethodPost, "/v1/draft/rank",
		`{"draft_position":3,"remaining":["Runner E","Runner A","Nobody Known","Catcher A"]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.EqualValues(t, 3, data["draft_position"])
	assert.EqualValues(t, 10, data["league_size"])
	assert.Equal(t, []any{"Nobody Known"}, data["unresolved"])

	ranked := data["ranked"].([]any)
	require.Len(t, ranked, 2)
	assert.Equal(t, "Runner A", ranked[0].(map[string]any)["name"])
	assert.Equal(t, "Runner E", ranked[1].(map[string]any)["name"])
}

func TestRouter_RankDraft_InvalidPayload(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, true)
	tests := map[string]string{
		"zero draft position": `{"draft_position":0,"remaining":["Runner A"]}`,
		"no names":            `{"draft_position":1,"remaining":[]}`,
		"empty name":          `{"draft_position":1,"remaining":[""]}`,
		"unknown field":       `{"draft_position":1,"remaining":["Runner A"],"league":12}`,
		"not json":            `draft_position=1`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := serve(router, http.MethodPost, "/v1/draft/rank", body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestRouter_OptimalPosition(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, true)

	rec := serve(router, http.MethodGet, "/v1/draft/optimal-position?position=rb&ppg=15", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Equal(t, "RB", data["position"])
	assert.InDelta(t, 9.0, data["draft_position"], 1.0)

	rec = serve(router, http.MethodGet, "/v1/draft/optimal-position?position=RB&ppg=1&guess=50", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.Contains(t, data, "draft_position")
	assert.Nil(t, data["draft_position"])

	rec = serve(router, http.MethodGet, "/v1/draft/optimal-position?position=RB&ppg=15&guess=0", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data = decodeEnvelope(t, rec)["data"].(map[string]any)
	assert.InDelta(t, 9.0, data["draft_position"], 1.0)

	for _, target := range []string{
		"/v1/draft/optimal-position?position=RB&ppg=15&guess=-1",
		"/v1/draft/optimal-position?position=RB",
		"/v1/draft/optimal-position?position=RB&ppg=abc",
		"/v1/draft/optimal-position?ppg=15",
		"/v1/draft/optimal-position?position=RB&ppg=15&guess=x",
	} {
		rec = serve(router, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}

	rec = serve(router, http.MethodGet, "/v1/draft/optimal-position?position=TE&ppg=9", "")
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}
