package league

import "github.com/cockroachdb/errors"

// ErrInvalid marks catalog rows that cannot be served.
var ErrInvalid = errors.New("invalid league")

// League is a competition. Tours and the player pool both hang off it.
type League struct {
	ID          string
	Name        string
	CountryCode string
	Season      string
	IsDefault   bool
}

func (l League) Validate() error {
	var missing string
	switch {
	case l.ID == "":
		missing = "id"
	case l.Name == "":
		missing = "name"
	case l.Season == "":
		missing = "season"
	default:
		return nil
	}
	return errors.Wrapf(ErrInvalid, "league %q: %s is required", l.ID, missing)
}
