package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

type validateRosterRequest struct {
	LeagueID       string   `json:"league_id" validate:"required"`
	MainPlayerIDs  []string `json:"main_player_ids" validate:"required,dive,required"`
	BenchPlayerIDs []string `json:"bench_player_ids" validate:"dive,required"`
	Budget         *int64   `json:"budget" validate:"omitempty,gte=0"`
}

type createSquadRequest struct {
	LeagueID       string   `json:"league_id" validate:"required"`
	Name           string   `json:"name" validate:"required,max=64"`
	FavoriteTeamID string   `json:"favorite_team_id" validate:"required"`
	MainPlayerIDs  []string `json:"main_player_ids" validate:"required,dive,required"`
	BenchPlayerIDs []string `json:"bench_player_ids" validate:"dive,required"`
	CaptainID      string   `json:"captain_id" validate:"required"`
	ViceCaptainID  string   `json:"vice_captain_id" validate:"required,nefield=CaptainID"`
}

type renameSquadRequest struct {
	Name string `json:"name" validate:"required,max=64"`
}

type replacePlayersRequest struct {
	MainPlayerIDs  []string `json:"main_player_ids" validate:"required,dive,required"`
	BenchPlayerIDs []string `json:"bench_player_ids" validate:"dive,required"`
	CaptainID      string   `json:"captain_id" validate:"required"`
	ViceCaptainID  string   `json:"vice_captain_id" validate:"required,nefield=CaptainID"`
}

func (h *Handler) ValidateRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateRoster")
	defer span.End()

	var req validateRosterRequest
	if err := h.decodeRequest(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	check, err := h.rosterService.ValidateRoster(ctx, usecase.ValidateRosterInput{
		LeagueID:       req.LeagueID,
		MainPlayerIDs:  req.MainPlayerIDs,
		BenchPlayerIDs: req.BenchPlayerIDs,
		Budget:         req.Budget,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "validate roster failed", "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterCheckToDTO(check))
}

func (h *Handler) CreateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateSquad")
	defer span.End()

	caller, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req createSquadRequest
	if err := h.decodeRequest(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.squadService.CreateSquad(ctx, usecase.CreateSquadInput{
		UserID:         caller.UserID,
		LeagueID:       req.LeagueID,
		Name:           req.Name,
		FavoriteTeamID: req.FavoriteTeamID,
		MainPlayerIDs:  req.MainPlayerIDs,
		BenchPlayerIDs: req.BenchPlayerIDs,
		CaptainID:      req.CaptainID,
		ViceCaptainID:  req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create squad failed", "user_id", caller.UserID, "league_id", req.LeagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, squadWithTourDTO{
		Squad:   squadToDTO(created.Squad),
		Current: squadTourToDTO(created.Current),
	})
}

func (h *Handler) RenameSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RenameSquad")
	defer span.End()

	caller, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req renameSquadRequest
	if err := h.decodeRequest(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadID := r.PathValue("squadID")
	squad, err := h.squadService.RenameSquad(ctx, usecase.RenameSquadInput{
		UserID:  caller.UserID,
		SquadID: squadID,
		Name:    req.Name,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "rename squad failed", "user_id", caller.UserID, "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	squadID := r.PathValue("squadID")
	squad, err := h.squadService.GetSquad(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(squad))
}

func (h *Handler) ListSquadTours(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSquadTours")
	defer span.End()

	squadID := r.PathValue("squadID")
	snapshots, err := h.squadService.ListSquadTours(ctx, squadID)
	if err != nil {
		h.logger.WarnContext(ctx, "list squad tours failed", "squad_id", squadID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]squadTourDTO, 0, len(snapshots))
	for _, s := range snapshots {
		items = append(items, squadTourToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetSquadTour(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquadTour")
	defer span.End()

	squadID := r.PathValue("squadID")
	tourID := r.PathValue("tourID")
	snapshot, err := h.squadService.GetSquadTour(ctx, squadID, tourID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad tour failed", "squad_id", squadID, "tour_id", tourID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadTourToDTO(snapshot))
}

func (h *Handler) ReplacePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ReplacePlayers")
	defer span.End()

	caller, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req replacePlayersRequest
	if err := h.decodeRequest(ctx, w, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	squadTourID := r.PathValue("squadTourID")
	result, err := h.transferService.ReplacePlayers(ctx, usecase.ReplacePlayersInput{
		UserID:         caller.UserID,
		SquadTourID:    squadTourID,
		MainPlayerIDs:  req.MainPlayerIDs,
		BenchPlayerIDs: req.BenchPlayerIDs,
		CaptainID:      req.CaptainID,
		ViceCaptainID:  req.ViceCaptainID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "replace players failed", "user_id", caller.UserID, "squad_tour_id", squadTourID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, transferResultDTO{
		Snapshot: squadTourToDTO(result.Snapshot),
		Plan:     replacementPlanToDTO(result.Plan),
	})
}
