package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/jobscheduler"
	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/usecase"
)

type leagueDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	CountryCode string `json:"country_code"`
	Season      string `json:"season"`
	IsDefault   bool   `json:"is_default"`
}

type teamDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	Name     string `json:"name"`
	Short    string `json:"short"`
}

type playerDTO struct {
	ID       string `json:"id"`
	LeagueID string `json:"league_id"`
	TeamID   string `json:"team_id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Price    int64  `json:"price"`
}

type tourDTO struct {
	ID              string `json:"id"`
	LeagueID        string `json:"league_id"`
	Number          int    `json:"number"`
	Status          string `json:"status"`
	DeadlineAt      string `json:"deadline_at,omitempty"`
	StartedAt       string `json:"started_at,omitempty"`
	FinalizedAt     string `json:"finalized_at,omitempty"`
	MatchesTotal    int    `json:"matches_total"`
	MatchesFinished int    `json:"matches_finished"`
}

type violationDTO struct {
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	PlayerID string `json:"player_id,omitempty"`
	TeamID   string `json:"team_id,omitempty"`
	Position string `json:"position,omitempty"`
	Limit    int64  `json:"limit"`
	Actual   int64  `json:"actual"`
}

type rosterCheckDTO struct {
	Valid     bool          `json:"valid"`
	Cost      int64         `json:"cost"`
	Budget    int64         `json:"budget"`
	Remaining int64         `json:"remaining"`
	Violation *violationDTO `json:"violation,omitempty"`
}

type squadDTO struct {
	ID             string `json:"id"`
	UserID         string `json:"user_id"`
	LeagueID       string `json:"league_id"`
	FavoriteTeamID string `json:"favorite_team_id"`
	Name           string `json:"name"`
	CreatedAt      string `json:"created_at"`
	UpdatedAt      string `json:"updated_at"`
}

type squadTourDTO struct {
	ID                  string   `json:"id"`
	SquadID             string   `json:"squad_id"`
	TourID              string   `json:"tour_id"`
	Budget              int64    `json:"budget"`
	FreeReplacements    int      `json:"free_replacements"`
	GrantedReplacements int      `json:"granted_replacements"`
	Points              int      `json:"points"`
	PenaltyPoints       int      `json:"penalty_points"`
	NetPoints           int      `json:"net_points"`
	CaptainID           string   `json:"captain_id"`
	ViceCaptainID       string   `json:"vice_captain_id"`
	ActiveBoost         string   `json:"active_boost,omitempty"`
	Finalized           bool     `json:"finalized"`
	MainLineup          []string `json:"main_lineup"`
	Bench               []string `json:"bench"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}

type squadWithTourDTO struct {
	Squad   squadDTO     `json:"squad"`
	Current squadTourDTO `json:"current"`
}

type replacementPlanDTO struct {
	Differing       int   `json:"differing"`
	FreeUsed        int   `json:"free_used"`
	Paid            int   `json:"paid"`
	Penalty         int   `json:"penalty"`
	BudgetBaseline  int64 `json:"budget_baseline"`
	RemainingBudget int64 `json:"remaining_budget"`
}

type transferResultDTO struct {
	Snapshot squadTourDTO       `json:"snapshot"`
	Plan     replacementPlanDTO `json:"plan"`
}

type boostUsageDTO struct {
	ID      string `json:"id"`
	SquadID string `json:"squad_id"`
	TourID  string `json:"tour_id"`
	Kind    string `json:"kind"`
	UsedAt  string `json:"used_at"`
}

type scoredMatchDTO struct {
	MatchID          string `json:"match_id"`
	TourID           string `json:"tour_id"`
	UpdatedSnapshots int    `json:"updated_snapshots"`
	PointsAdded      int    `json:"points_added"`
	ScoredAt         string `json:"scored_at"`
}

type startTourDTO struct {
	TourID string `json:"tour_id"`
	Locked int    `json:"locked"`
}

type finalizeRoundDTO struct {
	TourID     string `json:"tour_id"`
	NextTourID string `json:"next_tour_id"`
	Squads     int    `json:"squads"`
	Created    int    `json:"created"`
	Skipped    int    `json:"skipped"`
	GoldBonus  int    `json:"gold_bonus"`
}

type sweepRunDTO struct {
	Shared bool                `json:"shared"`
	Result usecase.SweepResult `json:"result"`
}

type dispatchEventDTO struct {
	DispatchID   string         `json:"dispatch_id"`
	JobName      string         `json:"job_name"`
	LeagueID     string         `json:"league_id"`
	TourID       string         `json:"tour_id,omitempty"`
	Status       string         `json:"status"`
	Payload      map[string]any `json:"payload,omitempty"`
	ErrorMessage string         `json:"error_message,omitempty"`
	OccurredAt   string         `json:"occurred_at"`
	TraceID      string         `json:"trace_id,omitempty"`
	SpanID       string         `json:"span_id,omitempty"`
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{
		ID:          v.ID,
		Name:        v.Name,
		CountryCode: v.CountryCode,
		Season:      v.Season,
		IsDefault:   v.IsDefault,
	}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{ID: v.ID, LeagueID: v.LeagueID, Name: v.Name, Short: v.Short}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:       v.ID,
		LeagueID: v.LeagueID,
		TeamID:   v.TeamID,
		Name:     v.Name,
		Position: string(v.Position),
		Price:    v.Price,
	}
}

func tourStateToDTO(v usecase.TourState) tourDTO {
	out := tourDTO{
		ID:              v.Tour.ID,
		LeagueID:        v.Tour.LeagueID,
		Number:          v.Tour.Number,
		Status:          v.Status.String(),
		StartedAt:       formatOptionalTime(v.Tour.StartedAt),
		FinalizedAt:     formatOptionalTime(v.Tour.FinalizedAt),
		MatchesTotal:    v.Summary.Total,
		MatchesFinished: v.Summary.Finished,
	}
	if !v.Tour.DeadlineAt.IsZero() {
		out.DeadlineAt = formatTime(v.Tour.DeadlineAt)
	}
	return out
}

func rosterCheckToDTO(v usecase.RosterCheck) rosterCheckDTO {
	out := rosterCheckDTO{
		Valid:     v.Valid,
		Cost:      v.Cost,
		Budget:    v.Budget,
		Remaining: v.Remaining,
	}
	if v.Violation != nil {
		out.Violation = &violationDTO{
			Reason:   string(v.Violation.Reason),
			Message:  v.Violation.Error(),
			PlayerID: v.Violation.PlayerID,
			TeamID:   v.Violation.TeamID,
			Position: string(v.Violation.Position),
			Limit:    v.Violation.Limit,
			Actual:   v.Violation.Actual,
		}
	}
	return out
}

func squadToDTO(v fantasy.Squad) squadDTO {
	return squadDTO{
		ID:             v.ID,
		UserID:         v.UserID,
		LeagueID:       v.LeagueID,
		FavoriteTeamID: v.FavoriteTeamID,
		Name:           v.Name,
		CreatedAt:      formatTime(v.CreatedAt),
		UpdatedAt:      formatTime(v.UpdatedAt),
	}
}

func squadTourToDTO(v fantasy.SquadTour) squadTourDTO {
	return squadTourDTO{
		ID:                  v.ID,
		SquadID:             v.SquadID,
		TourID:              v.TourID,
		Budget:              v.Budget,
		FreeReplacements:    v.FreeReplacements,
		GrantedReplacements: v.GrantedReplacements,
		Points:              v.Points,
		PenaltyPoints:       v.PenaltyPoints,
		NetPoints:           v.NetPoints(),
		CaptainID:           v.CaptainID,
		ViceCaptainID:       v.ViceCaptainID,
		ActiveBoost:         string(v.ActiveBoost),
		Finalized:           v.Finalized,
		MainLineup:          append([]string{}, v.MainLineup...),
		Bench:               append([]string{}, v.Bench...),
		CreatedAt:           formatTime(v.CreatedAt),
		UpdatedAt:           formatTime(v.UpdatedAt),
	}
}

func replacementPlanToDTO(v fantasy.ReplacementPlan) replacementPlanDTO {
	return replacementPlanDTO{
		Differing:       v.Differing,
		FreeUsed:        v.FreeUsed,
		Paid:            v.Paid,
		Penalty:         v.Penalty,
		BudgetBaseline:  v.BudgetBaseline,
		RemainingBudget: v.RemainingBudget,
	}
}

func boostUsageToDTO(v boost.Usage) boostUsageDTO {
	return boostUsageDTO{
		ID:      v.ID,
		SquadID: v.SquadID,
		TourID:  v.TourID,
		Kind:    string(v.Kind),
		UsedAt:  formatTime(v.UsedAt),
	}
}

func scoredMatchToDTO(v scoring.ScoredMatch) scoredMatchDTO {
	return scoredMatchDTO{
		MatchID:          v.MatchID,
		TourID:           v.TourID,
		UpdatedSnapshots: v.UpdatedSnapshots,
		PointsAdded:      v.PointsAdded,
		ScoredAt:         formatTime(v.ScoredAt),
	}
}

func dispatchEventToDTO(v jobscheduler.DispatchEvent) dispatchEventDTO {
	return dispatchEventDTO{
		DispatchID:   v.DispatchID,
		JobName:      v.JobName,
		LeagueID:     v.LeagueID,
		TourID:       v.TourID,
		Status:       string(v.Status),
		Payload:      v.Payload,
		ErrorMessage: v.ErrorMessage,
		OccurredAt:   formatTime(v.OccurredAt),
		TraceID:      v.TraceID,
		SpanID:       v.SpanID,
	}
}

func formatTime(v time.Time) string {
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}
