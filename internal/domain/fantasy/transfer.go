package fantasy

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
)

// CountDiffering returns how many players of current are absent from proposed.
func CountDiffering(current, proposed []string) int {
	keep := make(map[string]struct{}, len(proposed))
	for _, id := range proposed {
		keep[id] = struct{}{}
	}
	differing := 0
	for _, id := range current {
		if _, ok := keep[id]; !ok {
			differing++
		}
	}
	return differing
}

// CheckCaptaincy requires captain and vice to be distinct members of the
// proposed roster.
func CheckCaptaincy(captainID, viceCaptainID string, main, bench []string) error {
	if captainID != "" && captainID == viceCaptainID {
		return fmt.Errorf("%w: %s", ErrCaptainIsVice, captainID)
	}
	members := make(map[string]struct{}, len(main)+len(bench))
	for _, id := range main {
		members[id] = struct{}{}
	}
	for _, id := range bench {
		members[id] = struct{}{}
	}
	if _, ok := members[captainID]; !ok {
		return fmt.Errorf("%w: %s", ErrCaptainNotInSquad, captainID)
	}
	if _, ok := members[viceCaptainID]; !ok {
		return fmt.Errorf("%w: %s", ErrViceNotInSquad, viceCaptainID)
	}
	return nil
}

// ReplacementPlan is the arithmetic of one transfer before it is applied.
type ReplacementPlan struct {
	Differing       int
	FreeUsed        int
	Paid            int
	Penalty         int
	BudgetBaseline  int64
	RemainingBudget int64
}

// PlanReplacement prices a transfer. The baseline adds the current roster's
// cost back to the unspent budget so retained players are never charged twice.
func PlanReplacement(current SquadTour, proposed []string, currentCost, proposedCost int64, rules Rules) ReplacementPlan {
	differing := CountDiffering(current.PlayerIDs(), proposed)
	freeUsed := min(differing, max(current.FreeReplacements, 0))
	paid := differing - freeUsed
	baseline := current.Budget + currentCost

	return ReplacementPlan{
		Differing:       differing,
		FreeUsed:        freeUsed,
		Paid:            paid,
		Penalty:         paid * rules.PenaltyPerTransfer,
		BudgetBaseline:  baseline,
		RemainingBudget: baseline - proposedCost,
	}
}

// ApplyReplacement returns a copy of current with the plan applied.
func ApplyReplacement(current SquadTour, plan ReplacementPlan, main, bench []string, captainID, viceCaptainID string, now time.Time) SquadTour {
	next := current.Clone()
	next.MainLineup = append([]string(nil), main...)
	next.Bench = append([]string(nil), bench...)
	next.CaptainID = captainID
	next.ViceCaptainID = viceCaptainID
	next.Budget = plan.RemainingBudget
	next.FreeReplacements = max(current.FreeReplacements-plan.FreeUsed, 0)
	next.PenaltyPoints += plan.Penalty
	next.UpdatedAt = now
	return next
}

// GrantExtraReplacements applies the transfers_plus allowance.
func GrantExtraReplacements(current SquadTour, extra int) SquadTour {
	next := current.Clone()
	next.FreeReplacements += extra
	next.GrantedReplacements += extra
	return next
}

// RevokeExtraReplacements takes a transfers_plus allowance back. It fails once
// part of the grant has been spent.
func RevokeExtraReplacements(current SquadTour) (SquadTour, error) {
	if current.FreeReplacements < current.GrantedReplacements {
		return SquadTour{}, fmt.Errorf("%w: granted=%d remaining=%d", ErrBonusAlreadyUsed, current.GrantedReplacements, current.FreeReplacements)
	}
	next := current.Clone()
	next.FreeReplacements -= current.GrantedReplacements
	next.GrantedReplacements = 0
	return next, nil
}

// CarryForward builds the next tour's snapshot from a finished one. Boost and
// score reset; the transfers_plus grant does not carry.
func CarryForward(current SquadTour, id, nextTourID string, rules Rules, now time.Time) SquadTour {
	carried := max(current.FreeReplacements-current.GrantedReplacements, 0)
	free := carried + rules.FreeReplacementsPerTour
	if rules.MaxFreeReplacements > 0 {
		free = min(free, rules.MaxFreeReplacements)
	}

	return SquadTour{
		ID:               id,
		SquadID:          current.SquadID,
		TourID:           nextTourID,
		Budget:           current.Budget,
		FreeReplacements: free,
		CaptainID:        current.CaptainID,
		ViceCaptainID:    current.ViceCaptainID,
		ActiveBoost:      boost.KindNone,
		MainLineup:       append([]string(nil), current.MainLineup...),
		Bench:            append([]string(nil), current.Bench...),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
