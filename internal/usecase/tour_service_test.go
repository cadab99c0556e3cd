package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
)

func TestTourService_TourStatus(t *testing.T) {
	env := newTestEnv(t)

	assertStatus := func(want tour.Status) {
		t.Helper()
		state, err := env.tours.TourStatus(t.Context(), testTour1)
		if err != nil {
			t.Fatalf("tour status: %v", err)
		}
		if state.Status != want {
			t.Fatalf("expected %s, got %s", want, state.Status)
		}
	}

	assertStatus(tour.StatusNotStarted)

	env.now = env.base.Add(7*24*time.Hour + 12*time.Hour)
	assertStatus(tour.StatusStarted)

	env.finishTour(t, testTour1)
	assertStatus(tour.StatusFinished)

	if _, err := env.tours.FinalizeRound(t.Context(), FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2}); err != nil {
		t.Fatalf("finalize round: %v", err)
	}
	assertStatus(tour.StatusFinalized)

	if _, err := env.tours.TourStatus(t.Context(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestTourService_StartTour_LocksSnapshots(t *testing.T) {
	env := newTestEnv(t)
	first := env.createSquad(t, "user-1")
	env.createSquad(t, "user-2")

	result, err := env.tours.StartTour(t.Context(), testTour1)
	if err != nil {
		t.Fatalf("start tour: %v", err)
	}
	if result.Locked != 2 {
		t.Fatalf("expected 2 locked snapshots, got %d", result.Locked)
	}

	again, err := env.tours.StartTour(t.Context(), testTour1)
	if err != nil {
		t.Fatalf("start tour again: %v", err)
	}
	if again.Locked != 0 {
		t.Fatalf("expected second start to lock nothing, got %d", again.Locked)
	}

	snapshot, err := env.squads.GetSquadTour(t.Context(), first.Squad.ID, testTour1)
	if err != nil {
		t.Fatalf("get squad tour: %v", err)
	}
	if !snapshot.Finalized {
		t.Fatalf("expected snapshot locked")
	}
}

func TestTourService_FinalizeRound(t *testing.T) {
	env := newTestEnv(t)
	gold := env.createSquad(t, "user-1")
	plain := env.createSquad(t, "user-2")

	if _, err := env.boosts.ApplyBoost(t.Context(), ApplyBoostInput{UserID: "user-1", SquadID: gold.Squad.ID, TourID: testTour1, Kind: "gold_tour"}); err != nil {
		t.Fatalf("apply gold tour: %v", err)
	}

	env.finishMatch(t, matchID(testTour1, 1), map[string]int{testCaptain: 3})
	if _, err := env.scoring.RecordMatchFinalization(t.Context(), matchID(testTour1, 1)); err != nil {
		t.Fatalf("score match: %v", err)
	}
	env.finishTour(t, testTour1)

	result, err := env.tours.FinalizeRound(t.Context(), FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2})
	if err != nil {
		t.Fatalf("finalize round: %v", err)
	}
	if result.Squads != 2 || result.Created != 2 || result.Skipped != 0 || result.GoldBonus != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}

	goldDone, err := env.squads.GetSquadTour(t.Context(), gold.Squad.ID, testTour1)
	if err != nil {
		t.Fatalf("get gold snapshot: %v", err)
	}
	if goldDone.Points != 6+env.rules.GoldTourBonus {
		t.Fatalf("expected gold bonus added once, got %d", goldDone.Points)
	}
	plainDone, err := env.squads.GetSquadTour(t.Context(), plain.Squad.ID, testTour1)
	if err != nil {
		t.Fatalf("get plain snapshot: %v", err)
	}
	if plainDone.Points != 6 {
		t.Fatalf("expected no bonus without gold tour, got %d", plainDone.Points)
	}

	next, err := env.squads.GetSquadTour(t.Context(), gold.Squad.ID, testTour2)
	if err != nil {
		t.Fatalf("get next snapshot: %v", err)
	}
	wantFree := min(env.rules.InitialFreeReplacements+env.rules.FreeReplacementsPerTour, env.rules.MaxFreeReplacements)
	if next.FreeReplacements != wantFree {
		t.Fatalf("expected %d free replacements, got %d", wantFree, next.FreeReplacements)
	}
	if next.Budget != gold.Current.Budget || next.Points != 0 || next.ActiveBoost != "" || next.Finalized {
		t.Fatalf("unexpected carried snapshot: %+v", next)
	}

	_, err = env.tours.FinalizeRound(t.Context(), FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2})
	if !errors.Is(err, ErrConflict) || !errors.Is(err, tour.ErrAlreadyFinalized) {
		t.Fatalf("expected already finalized, got %v", err)
	}
	items, err := env.squads.ListSquadTours(t.Context(), gold.Squad.ID)
	if err != nil {
		t.Fatalf("list squad tours: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected exactly one next snapshot, got %d snapshots", len(items))
	}
}

func TestTourService_FinalizeRound_SkipsSquadsAlreadyCarried(t *testing.T) {
	env := newTestEnv(t)
	carried := env.createSquad(t, "user-1")
	env.createSquad(t, "user-2")
	env.finishTour(t, testTour1)

	existing := fantasy.CarryForward(carried.Current, "pre-existing", testTour2, env.rules, env.now)
	if err := env.store.SquadTours().Create(t.Context(), existing); err != nil {
		t.Fatalf("seed next snapshot: %v", err)
	}

	result, err := env.tours.FinalizeRound(t.Context(), FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2})
	if err != nil {
		t.Fatalf("finalize round: %v", err)
	}
	if result.Created != 1 || result.Skipped != 1 {
		t.Fatalf("expected one created and one skipped, got %+v", result)
	}

	next, err := env.squads.GetSquadTour(t.Context(), carried.Squad.ID, testTour2)
	if err != nil {
		t.Fatalf("get next snapshot: %v", err)
	}
	if next.ID != "pre-existing" {
		t.Fatalf("expected existing snapshot kept, got %s", next.ID)
	}
}

func TestTourService_FinalizeRound_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		finish  bool
		input   FinalizeRoundInput
		wantErr error
	}{
		{
			name:    "tour not finished",
			input:   FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2},
			wantErr: tour.ErrInvalidTransition,
		},
		{
			name:    "same tour",
			finish:  true,
			input:   FinalizeRoundInput{TourID: testTour1, NextTourID: testTour1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "next tour of another league",
			finish:  true,
			input:   FinalizeRoundInput{TourID: testTour1, NextTourID: "eng-premier-league-2026-tour-01"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "next tour goes backwards",
			finish:  true,
			input:   FinalizeRoundInput{TourID: testTour2, NextTourID: testTour1},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown next tour",
			finish:  true,
			input:   FinalizeRoundInput{TourID: testTour1, NextTourID: "missing"},
			wantErr: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			env.createSquad(t, "user-1")
			if tt.finish {
				env.finishTour(t, testTour1)
			}

			_, err := env.tours.FinalizeRound(t.Context(), tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestTourService_FinalizeRound_LocksSnapshotsOfStartedNextTour(t *testing.T) {
	env := newTestEnv(t)
	created := env.createSquad(t, "user-1")
	env.finishTour(t, testTour1)

	if _, err := env.tours.StartTour(t.Context(), testTour2); err != nil {
		t.Fatalf("start next tour: %v", err)
	}
	if _, err := env.tours.FinalizeRound(t.Context(), FinalizeRoundInput{TourID: testTour1, NextTourID: testTour2}); err != nil {
		t.Fatalf("finalize round: %v", err)
	}

	next, err := env.squads.GetSquadTour(t.Context(), created.Squad.ID, testTour2)
	if err != nil {
		t.Fatalf("get next snapshot: %v", err)
	}
	if !next.Finalized {
		t.Fatalf("expected snapshot carried into a started tour to be locked")
	}
}
