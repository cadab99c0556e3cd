package fantasy

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
)

var (
	ErrSquadExists       = errors.New("squad already exists for user and league")
	ErrSnapshotExists    = errors.New("squad tour snapshot already exists")
	ErrDuplicateSnapshot = errors.New("multiple squad tour snapshots for one squad and tour")
	ErrSnapshotLocked    = errors.New("squad tour snapshot is locked")
	ErrCaptainNotInSquad = errors.New("captain is not in squad")
	ErrViceNotInSquad    = errors.New("vice captain is not in squad")
	ErrCaptainIsVice     = errors.New("captain and vice captain must differ")
	ErrBonusAlreadyUsed  = errors.New("granted free replacements already used")
	ErrNegativeAllowance = errors.New("free replacement allowance cannot be negative")
)

// Squad is the identity of one user's team in one league. Per-tour state
// lives on SquadTour.
type Squad struct {
	ID             string
	UserID         string
	LeagueID       string
	FavoriteTeamID string
	Name           string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (s Squad) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("squad id is required")
	}
	if s.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if s.LeagueID == "" {
		return fmt.Errorf("league id is required")
	}
	if s.Name == "" {
		return fmt.Errorf("squad name is required")
	}
	return nil
}

// SquadTour is the snapshot of one squad in one tour: composition, budget,
// transfer allowance and score.
type SquadTour struct {
	ID                  string
	SquadID             string
	TourID              string
	Budget              int64
	FreeReplacements    int
	GrantedReplacements int
	Points              int
	PenaltyPoints       int
	CaptainID           string
	ViceCaptainID       string
	ActiveBoost         boost.Kind
	Finalized           bool
	MainLineup          []string
	Bench               []string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// PlayerIDs returns main lineup followed by bench.
func (t SquadTour) PlayerIDs() []string {
	out := make([]string, 0, len(t.MainLineup)+len(t.Bench))
	out = append(out, t.MainLineup...)
	out = append(out, t.Bench...)
	return out
}

func (t SquadTour) HasPlayer(playerID string) bool {
	for _, id := range t.MainLineup {
		if id == playerID {
			return true
		}
	}
	for _, id := range t.Bench {
		if id == playerID {
			return true
		}
	}
	return false
}

// NetPoints is the tour score after transfer penalties.
func (t SquadTour) NetPoints() int {
	return t.Points - t.PenaltyPoints
}

func (t SquadTour) Clone() SquadTour {
	out := t
	out.MainLineup = append([]string(nil), t.MainLineup...)
	out.Bench = append([]string(nil), t.Bench...)
	return out
}

func (t SquadTour) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("squad tour id is required")
	}
	if t.SquadID == "" {
		return fmt.Errorf("squad id is required")
	}
	if t.TourID == "" {
		return fmt.Errorf("tour id is required")
	}
	if t.FreeReplacements < 0 {
		return ErrNegativeAllowance
	}
	return nil
}
