package fantasy

import (
	"errors"
	"fmt"
	"testing"

	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
)

const testLeagueID = "league-1"

func validRoster() ([]Pick, []Pick) {
	main := []Pick{
		{PlayerID: "p1", LeagueID: testLeagueID, TeamID: "t1", Position: player.PositionGoalkeeper, Price: 500},
		{PlayerID: "p2", LeagueID: testLeagueID, TeamID: "t1", Position: player.PositionDefender, Price: 500},
		{PlayerID: "p3", LeagueID: testLeagueID, TeamID: "t2", Position: player.PositionDefender, Price: 500},
		{PlayerID: "p4", LeagueID: testLeagueID, TeamID: "t3", Position: player.PositionDefender, Price: 500},
		{PlayerID: "p5", LeagueID: testLeagueID, TeamID: "t4", Position: player.PositionMidfielder, Price: 500},
		{PlayerID: "p6", LeagueID: testLeagueID, TeamID: "t5", Position: player.PositionMidfielder, Price: 500},
		{PlayerID: "p7", LeagueID: testLeagueID, TeamID: "t2", Position: player.PositionMidfielder, Price: 500},
		{PlayerID: "p8", LeagueID: testLeagueID, TeamID: "t3", Position: player.PositionMidfielder, Price: 500},
		{PlayerID: "p9", LeagueID: testLeagueID, TeamID: "t4", Position: player.PositionAttacker, Price: 500},
		{PlayerID: "p10", LeagueID: testLeagueID, TeamID: "t5", Position: player.PositionForward, Price: 500},
		{PlayerID: "p11", LeagueID: testLeagueID, TeamID: "t6", Position: player.PositionForward, Price: 500},
	}
	bench := []Pick{
		{PlayerID: "p12", LeagueID: testLeagueID, TeamID: "t6", Position: player.PositionGoalkeeper, Price: 300},
		{PlayerID: "p13", LeagueID: testLeagueID, TeamID: "t7", Position: player.PositionDefender, Price: 300},
		{PlayerID: "p14", LeagueID: testLeagueID, TeamID: "t7", Position: player.PositionMidfielder, Price: 300},
		{PlayerID: "p15", LeagueID: testLeagueID, TeamID: "t8", Position: player.PositionForward, Price: 300},
	}
	return main, bench
}

func TestValidateRoster(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(main, bench []Pick) ([]Pick, []Pick)
		budget     int64
		targetErr  error
		wantReason ViolationReason
	}{
		{
			name:   "valid roster",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) { return main, bench },
			budget: 10000,
		},
		{
			name:       "ten main players",
			mutate:     func(main, bench []Pick) ([]Pick, []Pick) { return main[:10], bench },
			budget:     1 << 40,
			targetErr:  ErrWrongCount,
			wantReason: ReasonWrongCount,
		},
		{
			name: "five bench players",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				extra := Pick{PlayerID: "p16", LeagueID: testLeagueID, TeamID: "t8", Position: player.PositionDefender, Price: 1}
				return main, append(bench, extra)
			},
			budget:     1 << 40,
			targetErr:  ErrWrongCount,
			wantReason: ReasonWrongCount,
		},
		{
			name: "duplicate across main and bench",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				bench[3].PlayerID = "p1"
				return main, bench
			},
			budget:     10000,
			targetErr:  ErrDuplicatePlayerInSquad,
			wantReason: ReasonDuplicatePlayer,
		},
		{
			name: "player from another league",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				bench[0].LeagueID = "league-2"
				return main, bench
			},
			budget:     10000,
			targetErr:  ErrWrongLeague,
			wantReason: ReasonWrongLeague,
		},
		{
			name:       "budget exceeded",
			mutate:     func(main, bench []Pick) ([]Pick, []Pick) { return main, bench },
			budget:     6699,
			targetErr:  ErrExceededBudget,
			wantReason: ReasonBudgetExceeded,
		},
		{
			name: "no goalkeeper in main",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				main[0].Position = player.PositionDefender
				return main, bench
			},
			budget:     10000,
			targetErr:  ErrInsufficientFormation,
			wantReason: ReasonTooFewPosition,
		},
		{
			name: "attacker alone satisfies forward line",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				main[9].Position = player.PositionMidfielder
				main[10].Position = player.PositionMidfielder
				return main, bench
			},
			budget: 10000,
		},
		{
			name: "bench forward does not satisfy main minimum",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				main[8].Position = player.PositionMidfielder
				main[9].Position = player.PositionMidfielder
				main[10].Position = player.PositionMidfielder
				return main, bench
			},
			budget:     10000,
			targetErr:  ErrInsufficientFormation,
			wantReason: ReasonTooFewPosition,
		},
		{
			name: "club cap counts bench players",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				bench[1].TeamID = "t1"
				bench[2].TeamID = "t1"
				return main, bench
			},
			budget:     10000,
			targetErr:  ErrExceededTeamLimit,
			wantReason: ReasonClubCapExceeded,
		},
		{
			name: "unknown position",
			mutate: func(main, bench []Pick) ([]Pick, []Pick) {
				bench[0].Position = player.Position("UNK")
				return main, bench
			},
			budget:     10000,
			targetErr:  ErrUnknownPlayerPosition,
			wantReason: ReasonUnknownPosition,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			main, bench := validRoster()
			main, bench = tt.mutate(main, bench)

			err := ValidateRoster(main, bench, tt.budget, testLeagueID, DefaultRules())
			if tt.targetErr == nil {
				if err != nil {
					t.Fatalf("expected nil error, got %v", err)
				}
				return
			}
			if !errors.Is(err, tt.targetErr) {
				t.Fatalf("expected %v, got %v", tt.targetErr, err)
			}
			reason, ok := ReasonOf(fmt.Errorf("wrapped: %w", err))
			if !ok || reason != tt.wantReason {
				t.Fatalf("expected reason %s, got %s (ok=%t)", tt.wantReason, reason, ok)
			}
		})
	}
}

func TestValidateRoster_ShortRosterRejectedRegardlessOfBudget(t *testing.T) {
	main, bench := validRoster()
	for _, budget := range []int64{0, 100, 1 << 50} {
		err := ValidateRoster(main[:9], bench, budget, testLeagueID, DefaultRules())
		if !errors.Is(err, ErrWrongCount) {
			t.Fatalf("budget=%d: expected ErrWrongCount, got %v", budget, err)
		}
	}
}
