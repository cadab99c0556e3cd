package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

// writeList runs load and renders every item through toDTO. Failures are
// logged at warn since they are mostly unknown leagues.
func writeList[T, D any](ctx context.Context, h *Handler, w http.ResponseWriter, what string, load func(context.Context) ([]T, error), toDTO func(T) D, logArgs ...any) {
	items, err := load(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, what+" failed", append(logArgs, "error", err)...)
		writeError(ctx, w, err)
		return
	}

	out := make([]D, 0, len(items))
	for _, item := range items {
		out = append(out, toDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	writeList(ctx, h, w, "list leagues", h.catalogService.ListLeagues, leagueToDTO)
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	load := func(ctx context.Context) ([]team.Team, error) { return h.catalogService.ListTeams(ctx, leagueID) }
	writeList(ctx, h, w, "list teams", load, teamToDTO, "league_id", leagueID)
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	load := func(ctx context.Context) ([]player.Player, error) { return h.catalogService.ListPlayers(ctx, leagueID) }
	writeList(ctx, h, w, "list players", load, playerToDTO, "league_id", leagueID)
}

func (h *Handler) ListTours(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTours")
	defer span.End()

	leagueID := r.PathValue("leagueID")
	load := func(ctx context.Context) ([]usecase.TourState, error) { return h.catalogService.ListTours(ctx, leagueID) }
	writeList(ctx, h, w, "list tours", load, tourStateToDTO, "league_id", leagueID)
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	leagueID, playerID := r.PathValue("leagueID"), r.PathValue("playerID")
	item, err := h.catalogService.GetPlayer(ctx, leagueID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "league_id", leagueID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) GetTourStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTourStatus")
	defer span.End()

	tourID := r.PathValue("tourID")
	state, err := h.tourService.TourStatus(ctx, tourID)
	if err != nil {
		h.logger.WarnContext(ctx, "get tour status failed", "tour_id", tourID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, tourStateToDTO(state))
}
