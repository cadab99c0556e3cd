package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

type applyBoostRequest struct {
	Kind string `json:"kind" validate:"required"`
}

func (h *Handler) ListBoostUsage(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListBoostUsage")
	defer span.End()

	squadID := r.PathValue("squadID")
	usages, err := h.boostService.ListUsage(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "list boost usage failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]boostUsageDTO, 0, len(usages))
	for _, u := range usages {
		items = append(items, boostUsageToDTO(u))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) ApplyBoost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyBoost")
	defer span.End()

	caller, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req applyBoostRequest
	if err := h.decodeRequest(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	tourID := r.PathValue("tourID")
	snapshot, err := h.boostService.ApplyBoost(ctx, usecase.ApplyBoostInput{
		UserID:  caller.UserID,
		SquadID: squadID,
		TourID:  tourID,
		Kind:    req.Kind,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "apply boost failed",
			"user_id", caller.UserID,
			"squad_id", squadID,
			"tour_id", tourID,
			"kind", req.Kind,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadTourToDTO(snapshot))
}

func (h *Handler) RemoveBoost(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveBoost")
	defer span.End()

	caller, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	tourID := r.PathValue("tourID")
	snapshot, err := h.boostService.RemoveBoost(ctx, usecase.RemoveBoostInput{
		UserID:  caller.UserID,
		SquadID: squadID,
		TourID:  tourID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "remove boost failed", "user_id", caller.UserID, "squad_id", squadID, "tour_id", tourID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadTourToDTO(snapshot))
}
