package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) ListCurves(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCurves")
	defer span.End()

	analysis, err := h.analysisService.Current()
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, analysisToDTO(analysis))
}

func (h *Handler) GetCurveSamples(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCurveSamples")
	defer span.End()

	position := strings.ToUpper(strings.TrimSpace(r.PathValue("position")))
	samples, err := h.analysisService.Samples(ctx, position)
	if err != nil {
		h.logger.WarnContext(ctx, "get curve samples failed", "position", position, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, samplesDTO{Position: position, Samples: samples})
}
