package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/api/middleware"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/database"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/executor"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/guardrails"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/metrics"
	"github.com/biobyia/medical-ai-assistant/guardrail-agent/internal/models"
	"github.com/emicklei/go-restful/v3"
	"github.com/rs/zerolog"
)

// ReviewLister reads decisions waiting for a human reviewer.
type ReviewLister interface {
	ListPendingReview(ctx context.Context, limit int) ([]database.AuditRecord, error)
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type Handler struct {
	executor      *executor.Executor
	checkExecutor *executor.CheckExecutor
	reviews       ReviewLister
	metrics       *metrics.Metrics
	logger        *zerolog.Logger
}

func NewHandler(
	exec *executor.Executor,
	checkExecutor *executor.CheckExecutor,
	reviews ReviewLister,
	m *metrics.Metrics,
	logger *zerolog.Logger,
) *Handler {
	return &Handler{
		executor:      exec,
		checkExecutor: checkExecutor,
		reviews:       reviews,
		metrics:       m,
		logger:        logger,
	}
}

// POST /api/v1/ask
// Body: AskRequest
// Returns: PipelineResult
func (h *Handler) Ask(req *restful.Request, resp *restful.Response) {
	var askRequest models.AskRequest
	if err := req.ReadEntity(&askRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	result, err := h.executor.Ask(req.Request.Context(), askRequest)
	if err != nil {
		if errors.Is(err, executor.ErrProviderNotFound) {
			middleware.HandleError(resp, err, http.StatusBadRequest)
			return
		}
		h.logger.Error().Err(err).Msg("ask pipeline failed")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	h.observe("ask", result, time.Since(start))
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/validate
// Body: ValidationRequest
// Returns: PipelineResult
func (h *Handler) Validate(req *restful.Request, resp *restful.Response) {
	var validationRequest models.ValidationRequest
	if err := req.ReadEntity(&validationRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	start := time.Now()
	result := h.executor.Validate(req.Request.Context(), validationRequest)

	h.logger.Info().
		Str("requestID", result.ID).
		Bool("rejected", result.Rejected).
		Bool("requiresReview", result.RequiresReview).
		Msg("Validation complete")

	h.observe("validate", result, time.Since(start))
	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// POST /api/v1/validate/check/{check_name}
func (h *Handler) ValidateSingleCheck(req *restful.Request, resp *restful.Response) {
	checkName := req.PathParameter("check_name")

	var validationRequest models.ValidationRequest
	if err := req.ReadEntity(&validationRequest); err != nil {
		h.logger.Error().Err(err).Msg("Failed to parse request body")
		middleware.HandleError(resp, err, http.StatusBadRequest)
		return
	}

	result, err := h.checkExecutor.Execute(checkName, validationRequest)
	if err != nil {
		if errors.Is(err, guardrails.ErrCheckNotFound) {
			middleware.HandleError(resp, err, http.StatusNotFound)
			return
		}
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	resp.WriteHeaderAndEntity(http.StatusOK, result)
}

// GET /api/v1/reviews/pending
func (h *Handler) PendingReviews(req *restful.Request, resp *restful.Response) {
	limit := 50
	if limitStr := req.QueryParameter("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 && parsed <= 500 {
			limit = parsed
		} else {
			h.logger.Warn().Str("limit", limitStr).Msg("Invalid limit, using default 50")
		}
	}

	records, err := h.reviews.ListPendingReview(req.Request.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list pending reviews")
		middleware.HandleError(resp, err, http.StatusInternalServerError)
		return
	}

	if h.metrics != nil {
		h.metrics.ReviewsPending.Set(float64(len(records)))
	}
	resp.WriteHeaderAndEntity(http.StatusOK, records)
}

// Health handler GET /api/v1/health
func (h *Handler) Health(req *restful.Request, resp *restful.Response) {
	resp.WriteHeaderAndEntity(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: "1.0.0",
	})
}

func (h *Handler) observe(operation string, result models.PipelineResult, duration time.Duration) {
	if h.metrics == nil {
		return
	}

	outcome := "passed"
	switch {
	case result.Rejected:
		outcome = "rejected"
	case result.RequiresReview:
		outcome = "review"
	case result.Guardrails != nil && !result.Guardrails.Passed:
		outcome = "failed"
	}
	h.metrics.ObserveValidation(operation, outcome, duration)

	if result.Guardrails != nil {
		for _, issue := range result.Guardrails.Issues {
			h.metrics.IssuesTotal.WithLabelValues(issue.Flag, string(issue.Severity)).Inc()
		}
	}
}
