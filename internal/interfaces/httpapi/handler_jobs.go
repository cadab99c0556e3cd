package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

type finalizeTourRequest struct {
	NextTourID string `json:"next_tour_id" validate:"required"`
}

func (h *Handler) FinalizeMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	scored, err := h.scoringService.RecordMatchFinalization(ctx, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "record match finalization failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, scoredMatchToDTO(scored))
}

func (h *Handler) StartTour(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartTour")
	defer span.End()

	tourID := r.PathValue("tourID")
	result, err := h.tourService.StartTour(ctx, tourID)
	if err != nil {
		h.logger.WarnContext(ctx, "start tour failed", "tour_id", tourID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, startTourDTO{TourID: result.TourID, Locked: result.Locked})
}

func (h *Handler) FinalizeTour(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FinalizeTour")
	defer span.End()

	var req finalizeTourRequest
	if err := h.decodeRequest(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	tourID := r.PathValue("tourID")
	result, err := h.tourService.FinalizeRound(ctx, usecase.FinalizeRoundInput{
		TourID:     tourID,
		NextTourID: req.NextTourID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "finalize tour failed", "tour_id", tourID, "next_tour_id", req.NextTourID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, finalizeRoundDTO{
		TourID:     result.TourID,
		NextTourID: result.NextTourID,
		Squads:     result.Squads,
		Created:    result.Created,
		Skipped:    result.Skipped,
		GoldBonus:  result.GoldBonus,
	})
}

func (h *Handler) RunFinalizationSweep(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunFinalizationSweep")
	defer span.End()

	if h.sweeps == nil {
		writeError(ctx, w, fmt.Errorf("%w: finalization scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	result, shared, err := h.sweeps.RunOnce(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "run finalization sweep failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, sweepRunDTO{Shared: shared, Result: result})
}

func (h *Handler) GetFinalizationSchedulerStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFinalizationSchedulerStatus")
	defer span.End()

	if h.sweeps == nil {
		writeError(ctx, w, fmt.Errorf("%w: finalization scheduler is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	writeSuccess(ctx, w, http.StatusOK, h.sweeps.Status())
}

func (h *Handler) ListJobDispatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListJobDispatches")
	defer span.End()

	limit := 0
	if raw := strings.TrimSpace(r.URL.Query().Get("limit")); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(ctx, w, fmt.Errorf("%w: limit must be a positive integer", usecase.ErrInvalidInput))
			return
		}
		limit = parsed
	}

	events, err := h.finalizationService.ListDispatches(ctx, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "list job dispatches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]dispatchEventDTO, 0, len(events))
	for _, e := range events {
		items = append(items, dispatchEventToDTO(e))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}
