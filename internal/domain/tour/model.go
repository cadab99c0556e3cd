package tour

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
)

var (
	ErrAlreadyFinalized  = errors.New("tour already finalized")
	ErrInvalidTransition = errors.New("invalid tour status transition")
	ErrPreviousOpen      = errors.New("previous tour not finalized")
)

// Status is the lifecycle state of a tour. Values are ordered.
type Status int

const (
	StatusNotStarted Status = iota
	StatusStarted
	StatusFinished
	StatusFinalized
)

func (s Status) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusStarted:
		return "started"
	case StatusFinished:
		return "finished"
	case StatusFinalized:
		return "finalized"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// CanTransitionTo allows only the single forward step.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusNotStarted:
		return next == StatusStarted
	case StatusStarted:
		return next == StatusFinished
	case StatusFinished:
		return next == StatusFinalized
	case StatusFinalized:
		return false
	default:
		return false
	}
}

// Open reports whether lineups, captaincy and boosts may still change.
func (s Status) Open() bool {
	return s == StatusNotStarted
}

// Tour is one round of fixtures in a league.
type Tour struct {
	ID          string
	LeagueID    string
	Number      int
	DeadlineAt  time.Time
	Started     bool
	Finalized   bool
	StartedAt   *time.Time
	FinalizedAt *time.Time
}

func (t Tour) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("tour id is required")
	}
	if t.LeagueID == "" {
		return fmt.Errorf("tour league id is required")
	}
	if t.Number <= 0 {
		return fmt.Errorf("tour number must be greater than zero")
	}
	return nil
}

// Resolve derives the lifecycle state from the persisted flags and the
// fixtures of the tour.
func Resolve(t Tour, summary match.Summary, now time.Time) Status {
	if t.Finalized {
		return StatusFinalized
	}
	if summary.AllFinished() {
		return StatusFinished
	}
	if t.Started {
		return StatusStarted
	}
	if !t.DeadlineAt.IsZero() && !now.Before(t.DeadlineAt) {
		return StatusStarted
	}
	if !summary.EarliestKickoff.IsZero() && !now.Before(summary.EarliestKickoff) {
		return StatusStarted
	}
	return StatusNotStarted
}

// Neighbours picks the previous, current and next tour from a league's tours.
// Current is the lowest-numbered tour that is not finalized.
func Neighbours(tours []Tour) (previous, current, next *Tour) {
	sorted := SortByNumber(tours)
	for i := range sorted {
		if sorted[i].Finalized {
			previous = &sorted[i]
			continue
		}
		current = &sorted[i]
		if i+1 < len(sorted) {
			next = &sorted[i+1]
		}
		return previous, current, next
	}
	return previous, nil, nil
}

// Previous returns the highest-numbered tour below number.
func Previous(tours []Tour, number int) (Tour, bool) {
	var (
		prev  Tour
		found bool
	)
	for _, t := range tours {
		if t.Number < number && (!found || t.Number > prev.Number) {
			prev, found = t, true
		}
	}
	return prev, found
}

func SortByNumber(tours []Tour) []Tour {
	out := append([]Tour(nil), tours...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Number < out[j].Number
	})
	return out
}
