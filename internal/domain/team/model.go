package team

import "github.com/cockroachdb/errors"

var ErrInvalid = errors.New("invalid team")

// Team is a real club. The per-club cap of a squad counts players by Team.ID.
type Team struct {
	ID       string
	LeagueID string
	Name     string
	Short    string
}

func (t Team) Validate() error {
	var missing string
	switch {
	case t.ID == "":
		missing = "id"
	case t.LeagueID == "":
		missing = "league id"
	case t.Name == "":
		missing = "name"
	default:
		return nil
	}
	return errors.Wrapf(ErrInvalid, "team %q: %s is required", t.ID, missing)
}
