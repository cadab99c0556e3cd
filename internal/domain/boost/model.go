package boost

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrUnknownKind        = errors.New("unknown boost kind")
	ErrKindAlreadyUsed    = errors.New("boost kind already used by squad")
	ErrTourAlreadyBoosted = errors.New("squad already has a boost in this tour")
	ErrUsageNotFound      = errors.New("boost usage not found")
)

// Kind is a closed set of boosts. The zero value means no boost.
type Kind string

const (
	KindNone          Kind = ""
	KindBenchBoost    Kind = "bench_boost"
	KindTripleCaptain Kind = "triple_captain"
	KindTransfersPlus Kind = "transfers_plus"
	KindGoldTour      Kind = "gold_tour"
	KindDoubleBet     Kind = "double_bet"
)

var AllKinds = []Kind{
	KindBenchBoost,
	KindTripleCaptain,
	KindTransfersPlus,
	KindGoldTour,
	KindDoubleBet,
}

func ParseKind(raw string) (Kind, error) {
	kind := Kind(strings.ToLower(strings.TrimSpace(raw)))
	switch kind {
	case KindBenchBoost, KindTripleCaptain, KindTransfersPlus, KindGoldTour, KindDoubleBet:
		return kind, nil
	case KindNone:
		return KindNone, fmt.Errorf("%w: empty", ErrUnknownKind)
	default:
		return KindNone, fmt.Errorf("%w: %s", ErrUnknownKind, raw)
	}
}

// Usage records that a squad spent a boost kind in one tour.
type Usage struct {
	ID      string
	SquadID string
	TourID  string
	Kind    Kind
	UsedAt  time.Time
}

// Effect is what a boost changes for scoring and transfers.
type Effect struct {
	CaptainMultiplier     int
	IncludeBench          bool
	ExtraFreeReplacements bool
	FinalizationBonus     bool
}

// EffectOf maps every kind to its effect. double_bet is settled elsewhere and
// has no effect here.
func EffectOf(kind Kind) Effect {
	base := Effect{CaptainMultiplier: 2}
	switch kind {
	case KindNone:
		return base
	case KindBenchBoost:
		base.IncludeBench = true
	case KindTripleCaptain:
		base.CaptainMultiplier = 3
	case KindTransfersPlus:
		base.ExtraFreeReplacements = true
	case KindGoldTour:
		base.FinalizationBonus = true
	case KindDoubleBet:
	}
	return base
}

// CheckApply enforces lifetime-once per kind and one boost per tour against
// the squad's full usage history.
func CheckApply(kind Kind, tourID string, history []Usage) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}
	for _, usage := range history {
		if usage.Kind == kind {
			return fmt.Errorf("%w: kind=%s tour=%s", ErrKindAlreadyUsed, kind, usage.TourID)
		}
		if usage.TourID == tourID {
			return fmt.Errorf("%w: tour=%s kind=%s", ErrTourAlreadyBoosted, tourID, usage.Kind)
		}
	}
	return nil
}

// FindByTour returns the usage recorded for tourID, if any.
func FindByTour(history []Usage, tourID string) (Usage, bool) {
	for _, usage := range history {
		if usage.TourID == tourID {
			return usage, true
		}
	}
	return Usage{}, false
}
