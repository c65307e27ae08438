package httpapi

import (
	"net/http"

	"github.com/riskibarqy/matchcentre/internal/usecase"
)

func (h *Handler) RunWarmupJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmupJob")
	defer span.End()

	var req warmupRequest
	if err := decodeBody(r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.warmupService.Run(ctx, usecase.WarmupInput{
		CompetitionCodes: req.Competitions,
		MaxWorkers:       req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "warmup job failed", "competitions", req.Competitions, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "warmup job completed",
		"tasks", result.TaskCount,
		"succeeded", result.SuccessCount,
		"failed", result.FailedCount,
		"workers", result.WorkerCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}
