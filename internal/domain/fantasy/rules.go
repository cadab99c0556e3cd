package fantasy

import (
	"errors"
	"fmt"

	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
)

var (
	ErrWrongCount             = errors.New("wrong number of players")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
	ErrWrongLeague            = errors.New("player does not belong to league")
	ErrExceededBudget         = errors.New("budget exceeded")
	ErrInsufficientFormation  = errors.New("too few players in position")
	ErrExceededTeamLimit      = errors.New("max players from same club exceeded")
	ErrUnknownPlayerPosition  = errors.New("unknown player position")
)

// ViolationReason discriminates roster rejections for user-facing messages.
type ViolationReason string

const (
	ReasonWrongCount      ViolationReason = "wrong_count"
	ReasonDuplicatePlayer ViolationReason = "duplicate_player"
	ReasonWrongLeague     ViolationReason = "wrong_league"
	ReasonBudgetExceeded  ViolationReason = "budget_exceeded"
	ReasonTooFewPosition  ViolationReason = "too_few_position"
	ReasonClubCapExceeded ViolationReason = "club_cap_exceeded"
	ReasonUnknownPosition ViolationReason = "unknown_position"
)

// Violation is returned by ValidateRoster. It matches the reason's sentinel
// through errors.Is.
type Violation struct {
	Reason   ViolationReason
	PlayerID string
	TeamID   string
	Position player.Position
	Limit    int64
	Actual   int64
}

func (v *Violation) Error() string {
	switch v.Reason {
	case ReasonWrongCount:
		return fmt.Sprintf("%s: expected %d, got %d", ErrWrongCount, v.Limit, v.Actual)
	case ReasonDuplicatePlayer:
		return fmt.Sprintf("%s: %s", ErrDuplicatePlayerInSquad, v.PlayerID)
	case ReasonWrongLeague:
		return fmt.Sprintf("%s: %s", ErrWrongLeague, v.PlayerID)
	case ReasonBudgetExceeded:
		return fmt.Sprintf("%s: budget=%d cost=%d", ErrExceededBudget, v.Limit, v.Actual)
	case ReasonTooFewPosition:
		return fmt.Sprintf("%s: pos=%s min=%d current=%d", ErrInsufficientFormation, v.Position, v.Limit, v.Actual)
	case ReasonClubCapExceeded:
		return fmt.Sprintf("%s: team=%s max=%d", ErrExceededTeamLimit, v.TeamID, v.Limit)
	case ReasonUnknownPosition:
		return fmt.Sprintf("%s: player=%s pos=%s", ErrUnknownPlayerPosition, v.PlayerID, v.Position)
	default:
		return "roster violation: " + string(v.Reason)
	}
}

func (v *Violation) Is(target error) bool {
	return v.sentinel() == target
}

func (v *Violation) sentinel() error {
	switch v.Reason {
	case ReasonWrongCount:
		return ErrWrongCount
	case ReasonDuplicatePlayer:
		return ErrDuplicatePlayerInSquad
	case ReasonWrongLeague:
		return ErrWrongLeague
	case ReasonBudgetExceeded:
		return ErrExceededBudget
	case ReasonTooFewPosition:
		return ErrInsufficientFormation
	case ReasonClubCapExceeded:
		return ErrExceededTeamLimit
	case ReasonUnknownPosition:
		return ErrUnknownPlayerPosition
	default:
		return nil
	}
}

// ReasonOf extracts the violation reason from err, if any.
func ReasonOf(err error) (ViolationReason, bool) {
	var violation *Violation
	if errors.As(err, &violation) {
		return violation.Reason, true
	}
	return "", false
}

// Rules stores roster and transfer parameters for one deployment.
type Rules struct {
	MainSize                int
	BenchSize               int
	MaxPlayersPerTeam       int
	MinMainByLine           map[player.Position]int
	InitialBudget           int64
	InitialFreeReplacements int
	FreeReplacementsPerTour int
	MaxFreeReplacements     int
	PenaltyPerTransfer      int
	TransfersPlusExtra      int
	GoldTourBonus           int
}

func DefaultRules() Rules {
	return Rules{
		MainSize:          11,
		BenchSize:         4,
		MaxPlayersPerTeam: 3,
		MinMainByLine: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionDefender:   1,
			player.PositionMidfielder: 1,
			player.PositionForward:    1,
		},
		InitialBudget:           100000,
		InitialFreeReplacements: 2,
		FreeReplacementsPerTour: 1,
		MaxFreeReplacements:     5,
		PenaltyPerTransfer:      4,
		TransfersPlusExtra:      3,
		GoldTourBonus:           10,
	}
}

// RosterSize is the number of distinct players a complete roster holds.
func (r Rules) RosterSize() int {
	return r.MainSize + r.BenchSize
}

// Pick is one catalog player placed in a roster slot.
type Pick struct {
	PlayerID string
	LeagueID string
	TeamID   string
	Position player.Position
	Price    int64
}

func PickFromPlayer(p player.Player) Pick {
	return Pick{
		PlayerID: p.ID,
		LeagueID: p.LeagueID,
		TeamID:   p.TeamID,
		Position: p.Position,
		Price:    p.Price,
	}
}

// RosterCost sums the price of every pick.
func RosterCost(picks ...[]Pick) int64 {
	var total int64
	for _, group := range picks {
		for _, pick := range group {
			total += pick.Price
		}
	}
	return total
}

// ValidateRoster checks a main lineup and bench against budget, league
// membership, position minimums and the per-club cap. Counts are checked
// first so a short roster is rejected regardless of budget.
func ValidateRoster(main, bench []Pick, budget int64, leagueID string, rules Rules) error {
	if len(main) != rules.MainSize {
		return &Violation{Reason: ReasonWrongCount, Limit: int64(rules.MainSize), Actual: int64(len(main))}
	}
	if len(bench) != rules.BenchSize {
		return &Violation{Reason: ReasonWrongCount, Limit: int64(rules.BenchSize), Actual: int64(len(bench))}
	}

	seen := make(map[string]struct{}, len(main)+len(bench))
	teamCounter := make(map[string]int)
	for _, pick := range append(append([]Pick(nil), main...), bench...) {
		if _, exists := seen[pick.PlayerID]; exists {
			return &Violation{Reason: ReasonDuplicatePlayer, PlayerID: pick.PlayerID}
		}
		seen[pick.PlayerID] = struct{}{}

		if pick.LeagueID != leagueID {
			return &Violation{Reason: ReasonWrongLeague, PlayerID: pick.PlayerID}
		}
		if !pick.Position.Valid() {
			return &Violation{Reason: ReasonUnknownPosition, PlayerID: pick.PlayerID, Position: pick.Position}
		}

		teamCounter[pick.TeamID]++
		if teamCounter[pick.TeamID] > rules.MaxPlayersPerTeam {
			return &Violation{Reason: ReasonClubCapExceeded, TeamID: pick.TeamID, Limit: int64(rules.MaxPlayersPerTeam)}
		}
	}

	lineCounter := make(map[player.Position]int)
	for _, pick := range main {
		lineCounter[pick.Position.Line()]++
	}
	for _, line := range []player.Position{
		player.PositionGoalkeeper,
		player.PositionDefender,
		player.PositionMidfielder,
		player.PositionForward,
	} {
		minRequired := rules.MinMainByLine[line]
		if lineCounter[line] < minRequired {
			return &Violation{
				Reason:   ReasonTooFewPosition,
				Position: line,
				Limit:    int64(minRequired),
				Actual:   int64(lineCounter[line]),
			}
		}
	}

	if cost := RosterCost(main, bench); cost > budget {
		return &Violation{Reason: ReasonBudgetExceeded, Limit: budget, Actual: cost}
	}

	return nil
}
