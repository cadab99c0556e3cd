package player

import "github.com/cockroachdb/errors"

var ErrInvalid = errors.New("invalid player")

// Position is the role a player is listed under.
type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionAttacker   Position = "ATT"
	PositionForward    Position = "FWD"
)

// lines maps every known position to the line it counts toward for lineup
// minimums. ATT and FWD share the forward line.
var lines = map[Position]Position{
	PositionGoalkeeper: PositionGoalkeeper,
	PositionDefender:   PositionDefender,
	PositionMidfielder: PositionMidfielder,
	PositionAttacker:   PositionForward,
	PositionForward:    PositionForward,
}

// Line returns the lineup line of p, or "" for an unknown position.
func (p Position) Line() Position {
	return lines[p]
}

func (p Position) Valid() bool {
	return p.Line() != ""
}

// Player is a selectable athlete in a league's pool.
type Player struct {
	ID       string
	LeagueID string
	TeamID   string
	Name     string
	Position Position
	Price    int64
}

func (p Player) Validate() error {
	switch {
	case p.ID == "", p.LeagueID == "", p.TeamID == "", p.Name == "":
		return errors.Wrapf(ErrInvalid, "player %q: id, league, team and name are required", p.ID)
	case !p.Position.Valid():
		return errors.Wrapf(ErrInvalid, "player %q: unknown position %q", p.ID, p.Position)
	case p.Price <= 0:
		return errors.Wrapf(ErrInvalid, "player %q: price must be positive, got %d", p.ID, p.Price)
	}
	return nil
}
