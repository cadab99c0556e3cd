package usecase

import (
	"errors"
	"testing"

	crerr "github.com/cockroachdb/errors"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	fantasymock "github.com/riskibarqy/fantasy-tour/internal/mocks/domain/fantasy"
)

func TestSquadService_CreateSquad(t *testing.T) {
	env := newTestEnv(t)

	created := env.createSquad(t, "user-1")
	if created.Squad.LeagueID != testLeagueID || created.Squad.UserID != "user-1" {
		t.Fatalf("unexpected squad: %+v", created.Squad)
	}
	if created.Current.TourID != testTour1 {
		t.Fatalf("expected first snapshot in %s, got %s", testTour1, created.Current.TourID)
	}
	if created.Current.Budget != env.rules.InitialBudget-testRosterCost {
		t.Fatalf("expected budget %d, got %d", env.rules.InitialBudget-testRosterCost, created.Current.Budget)
	}
	if created.Current.FreeReplacements != env.rules.InitialFreeReplacements {
		t.Fatalf("expected %d free replacements, got %d", env.rules.InitialFreeReplacements, created.Current.FreeReplacements)
	}

	stored, err := env.squads.GetSquadTour(t.Context(), created.Squad.ID, testTour1)
	if err != nil {
		t.Fatalf("get squad tour: %v", err)
	}
	if stored.ID != created.Current.ID || len(stored.MainLineup) != 11 || len(stored.Bench) != 4 {
		t.Fatalf("unexpected stored snapshot: %+v", stored)
	}
}

func TestSquadService_CreateSquad_OnePerUserAndLeague(t *testing.T) {
	env := newTestEnv(t)
	env.createSquad(t, "user-1")

	_, err := env.squads.CreateSquad(t.Context(), CreateSquadInput{
		UserID:         "user-1",
		LeagueID:       testLeagueID,
		Name:           "Second",
		FavoriteTeamID: "idn-persib",
		MainPlayerIDs:  testMain,
		BenchPlayerIDs: testBench,
		CaptainID:      testCaptain,
		ViceCaptainID:  testVice,
	})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, fantasy.ErrSquadExists) {
		t.Fatalf("expected squad exists conflict, got %v", err)
	}
}

func TestSquadService_CreateSquad_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateSquadInput)
		wantErr error
		reason  fantasy.ViolationReason
	}{
		{
			name:    "missing name",
			mutate:  func(in *CreateSquadInput) { in.Name = "   " },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown league",
			mutate:  func(in *CreateSquadInput) { in.LeagueID = "missing-league" },
			wantErr: ErrNotFound,
		},
		{
			name:    "favorite team from another league",
			mutate:  func(in *CreateSquadInput) { in.FavoriteTeamID = "eng-ars" },
			wantErr: ErrInvalidInput,
		},
		{
			name:    "captain outside roster",
			mutate:  func(in *CreateSquadInput) { in.CaptainID = "idn-fwd-06" },
			wantErr: fantasy.ErrCaptainNotInSquad,
		},
		{
			name:    "captain equals vice",
			mutate:  func(in *CreateSquadInput) { in.ViceCaptainID = in.CaptainID },
			wantErr: fantasy.ErrCaptainIsVice,
		},
		{
			name:    "short bench",
			mutate:  func(in *CreateSquadInput) { in.BenchPlayerIDs = in.BenchPlayerIDs[:3] },
			wantErr: fantasy.ErrWrongCount,
			reason:  fantasy.ReasonWrongCount,
		},
		{
			name: "fourth player from one club",
			mutate: func(in *CreateSquadInput) {
				in.BenchPlayerIDs = replaceAt(in.BenchPlayerIDs, map[string]string{"idn-gk-05": "idn-gk-02"})
			},
			wantErr: fantasy.ErrExceededTeamLimit,
			reason:  fantasy.ReasonClubCapExceeded,
		},
		{
			name: "player from another league",
			mutate: func(in *CreateSquadInput) {
				in.BenchPlayerIDs = replaceAt(in.BenchPlayerIDs, map[string]string{"idn-def-11": "eng-def-01"})
			},
			wantErr: fantasy.ErrWrongLeague,
			reason:  fantasy.ReasonWrongLeague,
		},
		{
			name: "unknown player",
			mutate: func(in *CreateSquadInput) {
				in.BenchPlayerIDs = replaceAt(in.BenchPlayerIDs, map[string]string{"idn-def-11": "ghost"})
			},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			input := CreateSquadInput{
				UserID:         "user-1",
				LeagueID:       testLeagueID,
				Name:           "Garuda",
				FavoriteTeamID: "idn-persija",
				MainPlayerIDs:  append([]string(nil), testMain...),
				BenchPlayerIDs: append([]string(nil), testBench...),
				CaptainID:      testCaptain,
				ViceCaptainID:  testVice,
			}
			tt.mutate(&input)

			_, err := env.squads.CreateSquad(t.Context(), input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			if tt.reason != "" {
				if got, ok := fantasy.ReasonOf(err); !ok || got != tt.reason {
					t.Fatalf("expected reason %s, got %s (ok=%t)", tt.reason, got, ok)
				}
			}
		})
	}
}

func TestSquadService_CreateSquad_NoUpcomingTour(t *testing.T) {
	env := newTestEnv(t)
	env.now = env.base.AddDate(1, 0, 0)

	_, err := env.squads.CreateSquad(t.Context(), CreateSquadInput{
		UserID:         "user-1",
		LeagueID:       testLeagueID,
		Name:           "Late",
		FavoriteTeamID: "idn-persija",
		MainPlayerIDs:  testMain,
		BenchPlayerIDs: testBench,
		CaptainID:      testCaptain,
		ViceCaptainID:  testVice,
	})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestSquadService_RenameSquad(t *testing.T) {
	env := newTestEnv(t)
	created := env.createSquad(t, "user-1")

	if _, err := env.squads.RenameSquad(t.Context(), RenameSquadInput{UserID: "user-2", SquadID: created.Squad.ID, Name: "Stolen"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non owner, got %v", err)
	}

	renamed, err := env.squads.RenameSquad(t.Context(), RenameSquadInput{UserID: "user-1", SquadID: created.Squad.ID, Name: "  Macan Kemayoran "})
	if err != nil {
		t.Fatalf("rename squad: %v", err)
	}
	if renamed.Name != "Macan Kemayoran" {
		t.Fatalf("expected trimmed name, got %q", renamed.Name)
	}

	stored, err := env.squads.GetSquad(t.Context(), created.Squad.ID)
	if err != nil {
		t.Fatalf("get squad: %v", err)
	}
	if stored.Name != "Macan Kemayoran" {
		t.Fatalf("expected stored name updated, got %q", stored.Name)
	}
}

func TestSquadService_ListSquadTours_OrderedByTourNumber(t *testing.T) {
	env := newTestEnv(t)
	created := env.createSquad(t, "user-1")

	env.finishTour(t, testTour1)
	if _, err := env.tours.FinalizeRound(t.Context(), FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2}); err != nil {
		t.Fatalf("finalize round: %v", err)
	}

	items, err := env.squads.ListSquadTours(t.Context(), created.Squad.ID)
	if err != nil {
		t.Fatalf("list squad tours: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(items))
	}
	if items[0].TourID != testTour1 || items[1].TourID != testTour2 {
		t.Fatalf("unexpected order: %s, %s", items[0].TourID, items[1].TourID)
	}

	if _, err := env.squads.ListSquadTours(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSquadService_GetSquadTour_DuplicateSnapshotUsingMockery(t *testing.T) {
	env := newTestEnv(t)

	squadTours := fantasymock.NewSquadTourRepository(t)
	squadTours.On("GetBySquadAndTour", mock.Anything, "squad-1", testTour1).
		Return(fantasy.SquadTour{}, false, crerr.WithAssertionFailure(fantasy.ErrDuplicateSnapshot)).
		Once()
	env.squads.squadTours = squadTours

	_, err := env.squads.GetSquadTour(t.Context(), "squad-1", testTour1)
	require.ErrorIs(t, err, ErrInvariantViolation)
	require.ErrorIs(t, err, fantasy.ErrDuplicateSnapshot)
	require.NotErrorIs(t, err, ErrNotFound)
}
