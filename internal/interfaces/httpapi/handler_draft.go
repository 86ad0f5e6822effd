package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/draft-value/internal/usecase"
)

func (h *Handler) RankDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RankDraft")
	defer span.End()

	var req rankDraftRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.draftService.Rank(ctx, usecase.RankInput{
		DraftPosition: req.DraftPosition,
		Remaining:     req.Remaining,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "rank draft failed", "draft_position", req.DraftPosition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rankDraftDTO{
		DraftPosition: req.DraftPosition,
		LeagueSize:    h.draftService.LeagueSize(),
		Ranked:        rankedToDTO(result.Ranked),
		Unresolved:    result.Unresolved,
	})
}

func (h *Handler) GetOptimalPosition(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOptimalPosition")
	defer span.End()

	query := r.URL.Query()
	req := optimalPositionRequest{
		Position: strings.ToUpper(strings.TrimSpace(query.Get("position"))),
	}

	rawPPG := strings.TrimSpace(query.Get("ppg"))
	if rawPPG == "" {
		writeError(ctx, w, fmt.Errorf("%w: ppg is required", usecase.ErrInvalidInput))
		return
	}
	ppg, err := strconv.ParseFloat(rawPPG, 64)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: ppg must be a number", usecase.ErrInvalidInput))
		return
	}
	req.PPG = ppg

	if raw := strings.TrimSpace(query.Get("guess")); raw != "" {
		guess, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: guess must be a number", usecase.ErrInvalidInput))
			return
		}
		req.Guess = &guess
	}

	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	x, ok, err := h.draftService.OptimalPosition(ctx, req.Position, req.PPG, req.Guess)
	if err != nil {
		h.logger.WarnContext(ctx, "optimal draft position failed", "position", req.Position, "ppg", req.PPG, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := optimalPositionDTO{Position: req.Position, PPG: req.PPG}
	if ok {
		out.DraftPosition = &x
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
