package fantasy

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
)

func snapshotWithRoster(free int, budget int64) SquadTour {
	return SquadTour{
		ID:               "st-1",
		SquadID:          "squad-1",
		TourID:           "tour-1",
		Budget:           budget,
		FreeReplacements: free,
		CaptainID:        "p1",
		ViceCaptainID:    "p2",
		MainLineup:       []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "p11"},
		Bench:            []string{"p12", "p13", "p14", "p15"},
	}
}

func TestPlanReplacement_PenaltyForPaidTransfers(t *testing.T) {
	current := snapshotWithRoster(2, 0)
	proposed := []string{"p1", "p2", "p3", "p4", "p5", "p6", "p7", "p8", "p9", "p10", "n1", "n2", "n3", "n4", "n5"}

	plan := PlanReplacement(current, proposed, 7000, 7000, DefaultRules())
	if plan.Differing != 5 {
		t.Fatalf("expected differing=5, got %d", plan.Differing)
	}
	if plan.FreeUsed != 2 || plan.Paid != 3 {
		t.Fatalf("expected free_used=2 paid=3, got free_used=%d paid=%d", plan.FreeUsed, plan.Paid)
	}
	if plan.Penalty != 12 {
		t.Fatalf("expected penalty=12, got %d", plan.Penalty)
	}

	next := ApplyReplacement(current, plan, proposed[:11], proposed[11:], "p1", "p2", time.Now())
	if next.FreeReplacements != 0 {
		t.Fatalf("expected free replacements=0, got %d", next.FreeReplacements)
	}
	if next.PenaltyPoints != 12 {
		t.Fatalf("expected penalty points=12, got %d", next.PenaltyPoints)
	}
	if len(current.Bench) != 4 || current.Bench[0] != "p12" {
		t.Fatalf("expected current snapshot untouched, got bench=%v", current.Bench)
	}
}

func TestPlanReplacement_FreeAllowanceDecreasesByFreeUsed(t *testing.T) {
	tests := []struct {
		name      string
		free      int
		differing int
		wantFree  int
		wantPaid  int
	}{
		{name: "no change", free: 2, differing: 0, wantFree: 2, wantPaid: 0},
		{name: "within allowance", free: 3, differing: 2, wantFree: 1, wantPaid: 0},
		{name: "exactly allowance", free: 2, differing: 2, wantFree: 0, wantPaid: 0},
		{name: "no allowance", free: 0, differing: 3, wantFree: 0, wantPaid: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			current := snapshotWithRoster(tt.free, 100)
			proposed := current.PlayerIDs()
			for i := 0; i < tt.differing; i++ {
				proposed[len(proposed)-1-i] = "new-" + string(rune('a'+i))
			}

			plan := PlanReplacement(current, proposed, 1000, 1000, DefaultRules())
			next := ApplyReplacement(current, plan, proposed[:11], proposed[11:], "p1", "p2", time.Now())
			if next.FreeReplacements != tt.wantFree {
				t.Fatalf("expected free=%d, got %d", tt.wantFree, next.FreeReplacements)
			}
			if plan.Paid != tt.wantPaid {
				t.Fatalf("expected paid=%d, got %d", tt.wantPaid, plan.Paid)
			}
			if next.FreeReplacements < 0 {
				t.Fatalf("free replacements went negative: %d", next.FreeReplacements)
			}
		})
	}
}

func TestPlanReplacement_BudgetRederivedFromBaseline(t *testing.T) {
	current := snapshotWithRoster(1, 5000)

	plan := PlanReplacement(current, current.PlayerIDs(), 95000, 97000, DefaultRules())
	if plan.BudgetBaseline != 100000 {
		t.Fatalf("expected baseline=100000, got %d", plan.BudgetBaseline)
	}
	if plan.RemainingBudget != 3000 {
		t.Fatalf("expected remaining=3000, got %d", plan.RemainingBudget)
	}
}

func TestCheckCaptaincy(t *testing.T) {
	main := []string{"p1", "p2"}
	bench := []string{"p3"}

	if err := CheckCaptaincy("p1", "p3", main, bench); err != nil {
		t.Fatalf("expected bench vice captain to be accepted, got %v", err)
	}
	if err := CheckCaptaincy("x", "p2", main, bench); !errors.Is(err, ErrCaptainNotInSquad) {
		t.Fatalf("expected ErrCaptainNotInSquad, got %v", err)
	}
	if err := CheckCaptaincy("p1", "x", main, bench); !errors.Is(err, ErrViceNotInSquad) {
		t.Fatalf("expected ErrViceNotInSquad, got %v", err)
	}
	if err := CheckCaptaincy("p1", "p1", main, bench); !errors.Is(err, ErrCaptainIsVice) {
		t.Fatalf("expected ErrCaptainIsVice, got %v", err)
	}
}

func TestCarryForward(t *testing.T) {
	rules := DefaultRules()
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	current := snapshotWithRoster(5, 1200)
	current.Points = 77
	current.PenaltyPoints = 8
	current.ActiveBoost = boost.KindTripleCaptain
	current.Finalized = true

	next := CarryForward(current, "st-2", "tour-2", rules, now)
	if next.ID != "st-2" || next.TourID != "tour-2" || next.SquadID != current.SquadID {
		t.Fatalf("unexpected identity: %+v", next)
	}
	if next.Budget != 1200 {
		t.Fatalf("expected budget carried, got %d", next.Budget)
	}
	if next.FreeReplacements != rules.MaxFreeReplacements {
		t.Fatalf("expected free replacements capped at %d, got %d", rules.MaxFreeReplacements, next.FreeReplacements)
	}
	if next.Points != 0 || next.PenaltyPoints != 0 || next.ActiveBoost != boost.KindNone || next.Finalized {
		t.Fatalf("expected score, boost and lock reset, got %+v", next)
	}
	if next.CaptainID != "p1" || next.ViceCaptainID != "p2" {
		t.Fatalf("expected captaincy carried, got %s/%s", next.CaptainID, next.ViceCaptainID)
	}

	next.MainLineup[0] = "changed"
	if current.MainLineup[0] != "p1" {
		t.Fatalf("expected lineup copied, previous snapshot was mutated")
	}
}

func TestCarryForward_DropsTransfersPlusGrant(t *testing.T) {
	rules := DefaultRules()
	current := GrantExtraReplacements(snapshotWithRoster(1, 0), rules.TransfersPlusExtra)

	next := CarryForward(current, "st-2", "tour-2", rules, time.Now())
	if next.FreeReplacements != 1+rules.FreeReplacementsPerTour {
		t.Fatalf("expected grant dropped, got free=%d", next.FreeReplacements)
	}
	if next.GrantedReplacements != 0 {
		t.Fatalf("expected no granted replacements on new snapshot, got %d", next.GrantedReplacements)
	}
}

func TestRevokeExtraReplacements(t *testing.T) {
	granted := GrantExtraReplacements(snapshotWithRoster(2, 0), 3)
	if granted.FreeReplacements != 5 {
		t.Fatalf("expected 5 free replacements after grant, got %d", granted.FreeReplacements)
	}

	revoked, err := RevokeExtraReplacements(granted)
	if err != nil {
		t.Fatalf("revoke unused grant: %v", err)
	}
	if revoked.FreeReplacements != 2 || revoked.GrantedReplacements != 0 {
		t.Fatalf("unexpected revoked snapshot: free=%d granted=%d", revoked.FreeReplacements, revoked.GrantedReplacements)
	}

	spent := granted
	spent.FreeReplacements = 2
	if _, err := RevokeExtraReplacements(spent); !errors.Is(err, ErrBonusAlreadyUsed) {
		t.Fatalf("expected ErrBonusAlreadyUsed, got %v", err)
	}
}
