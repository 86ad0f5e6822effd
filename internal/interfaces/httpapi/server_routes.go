package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerAnalysisRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/curves", handler.ListCurves)
	mux.HandleFunc("GET /v1/curves/{position}/samples", handler.GetCurveSamples)
}

func registerDraftRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/draft/rank", handler.RankDraft)
	mux.HandleFunc("GET /v1/draft/optimal-position", handler.GetOptimalPosition)
}
