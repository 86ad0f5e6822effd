package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/draft-value/internal/domain/player"
	"github.com/riskibarqy/draft-value/internal/platform/logging"
	"github.com/riskibarqy/draft-value/internal/usecase"
)

type Handler struct {
	registry        player.Repository
	analysisService *usecase.AnalysisService
	draftService    *usecase.DraftService
	logger          *logging.Logger
	validator       *validator.Validate
}

func NewHandler(
	registry player.Repository,
	analysisService *usecase.AnalysisService,
	draftService *usecase.DraftService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		registry:        registry,
		analysisService: analysisService,
		draftService:    draftService,
		logger:          logger,
		validator:       validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	status := "ok"
	if _, err := h.analysisService.Current(); err != nil {
		status = "warming_up"
	}
	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": status})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type rankDraftRequest struct {
	DraftPosition int      `json:"draft_position" validate:"required,min=1"`
	Remaining     []string `json:"remaining" validate:"required,min=1,dive,required,max=200"`
}

type optimalPositionRequest struct {
	Position string   `validate:"required,max=8"`
	PPG      float64  `validate:"gte=0"`
	Guess    *float64 `validate:"omitempty,gte=0"`
}
