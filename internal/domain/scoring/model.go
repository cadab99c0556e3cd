package scoring

import (
	"errors"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
)

var ErrMatchAlreadyScored = errors.New("match already scored")

// ScoredMatch is the ledger row written once a match's points were applied.
type ScoredMatch struct {
	MatchID          string
	TourID           string
	UpdatedSnapshots int
	PointsAdded      int
	ScoredAt         time.Time
}

// Line is one player's contribution to a snapshot for one match.
type Line struct {
	PlayerID   string
	BasePoints int
	Multiplier int
	Points     int
	Bench      bool
}

// Delta is the point change a single match produces for one snapshot.
type Delta struct {
	SquadTourID string
	Points      int
	Lines       []Line
}

// MatchDelta scores one match for one snapshot. Captaincy is read from the
// snapshot itself so later changes never rewrite history.
func MatchDelta(snapshot fantasy.SquadTour, basePoints map[string]int) Delta {
	effect := boost.EffectOf(snapshot.ActiveBoost)
	captainBase := basePoints[snapshot.CaptainID]

	out := Delta{SquadTourID: snapshot.ID}
	for _, playerID := range snapshot.MainLineup {
		base := basePoints[playerID]
		if base == 0 {
			continue
		}
		multiplier := 1
		switch {
		case playerID == snapshot.CaptainID:
			multiplier = effect.CaptainMultiplier
		case playerID == snapshot.ViceCaptainID && captainBase == 0:
			multiplier = 2
		}
		out.add(Line{PlayerID: playerID, BasePoints: base, Multiplier: multiplier, Points: base * multiplier})
	}

	if effect.IncludeBench {
		for _, playerID := range snapshot.Bench {
			base := basePoints[playerID]
			if base == 0 {
				continue
			}
			out.add(Line{PlayerID: playerID, BasePoints: base, Multiplier: 1, Points: base, Bench: true})
		}
	}

	return out
}

func (d *Delta) add(line Line) {
	d.Lines = append(d.Lines, line)
	d.Points += line.Points
}
