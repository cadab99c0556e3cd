package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/leagues", handler.ListLeagues)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/leagues/{leagueID}/tours", handler.ListTours)
	mux.HandleFunc("GET /v1/tours/{tourID}", handler.GetTourStatus)
	mux.HandleFunc("POST /v1/rosters/validate", handler.ValidateRoster)
	mux.HandleFunc("GET /v1/squads/{squadID}", handler.GetSquad)
	mux.HandleFunc("GET /v1/squads/{squadID}/tours", handler.ListSquadTours)
	mux.HandleFunc("GET /v1/squads/{squadID}/tours/{tourID}", handler.GetSquadTour)
	mux.HandleFunc("GET /v1/squads/{squadID}/boosts", handler.ListBoostUsage)
}

func registerUserRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("POST /v1/squads", RequireUser(http.HandlerFunc(handler.CreateSquad)))
	mux.Handle("PATCH /v1/squads/{squadID}", RequireUser(http.HandlerFunc(handler.RenameSquad)))
	mux.Handle("PUT /v1/squad-tours/{squadTourID}/players", RequireUser(http.HandlerFunc(handler.ReplacePlayers)))
	mux.Handle("PUT /v1/squads/{squadID}/tours/{tourID}/boost", RequireUser(http.HandlerFunc(handler.ApplyBoost)))
	mux.Handle("DELETE /v1/squads/{squadID}/tours/{tourID}/boost", RequireUser(http.HandlerFunc(handler.RemoveBoost)))
}

func registerInternalJobRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	internal := func(h http.HandlerFunc) http.Handler {
		return RequireInternalJobToken(internalJobToken, h)
	}

	mux.Handle("POST /v1/internal/matches/{matchID}/finalize", internal(handler.FinalizeMatch))
	mux.Handle("POST /v1/internal/tours/{tourID}/start", internal(handler.StartTour))
	mux.Handle("POST /v1/internal/tours/{tourID}/finalize", internal(handler.FinalizeTour))
	mux.Handle("POST /v1/internal/jobs/finalization-sweep", internal(handler.RunFinalizationSweep))
	mux.Handle("GET /v1/internal/jobs/finalization-sweep", internal(handler.GetFinalizationSchedulerStatus))
	mux.Handle("GET /v1/internal/jobs/dispatches", internal(handler.ListJobDispatches))
}
