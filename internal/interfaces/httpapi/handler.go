package httpapi

import (
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/match-predictor/internal/platform/logging"
	"github.com/riskibarqy/match-predictor/internal/usecase"
)

type Handler struct {
	matchService      *usecase.MatchService
	predictionService *usecase.PredictionService
	standingService   *usecase.StandingService
	logger            *logging.Logger
	validator         *validator.Validate
	standingsPage     *template.Template
}

func NewHandler(
	matchService *usecase.MatchService,
	predictionService *usecase.PredictionService,
	standingService *usecase.StandingService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		matchService:      matchService,
		predictionService: predictionService,
		standingService:   standingService,
		logger:            logger,
		validator:         newValidator(),
		standingsPage:     standingsTemplate,
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListMatches serves one page of matches. Missing or unparsable page values
// fall back to the first page.
func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	page, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("page")))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.matchService.List(ctx, page)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "page", page, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, matchPageToDTO(r, result))
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	id, err := strconv.ParseInt(strings.TrimSpace(r.PathValue("id")), 10, 64)
	if err != nil || id <= 0 {
		writeMatchNotFound(ctx, w)
		return
	}

	item, err := h.matchService.Get(ctx, id)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			writeMatchNotFound(ctx, w)
			return
		}
		h.logger.ErrorContext(ctx, "get match failed", "match_id", id, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeResource(ctx, w, matchToDTO(item))
}

// SubmitPrediction records a score forecast. The user id comes from the
// session when one is present and is null otherwise.
func (h *Handler) SubmitPrediction(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPrediction")
	defer span.End()

	input, err := h.decodeSubmitPrediction(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	if principal, ok := principalFromContext(ctx); ok {
		userID := principal.UserID
		input.UserID = &userID
	}

	item, err := h.predictionService.Submit(ctx, input)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidInput) {
			h.logger.WarnContext(ctx, "submit prediction rejected", "match_id", input.MatchID, "error", err)
		} else {
			h.logger.ErrorContext(ctx, "submit prediction failed", "match_id", input.MatchID, "error", err)
		}
		writeError(ctx, w, err)
		return
	}

	writeJSON(ctx, w, http.StatusOK, predictionAckToDTO(item))
}
