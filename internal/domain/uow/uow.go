// Package uow groups the repositories that must change together into one
// atomic unit.
package uow

import (
	"context"

	"github.com/riskibarqy/fantasy-tour/internal/domain/boost"
	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
)

// Repositories are bound to a single transaction inside WithinTx.
type Repositories struct {
	Squads        fantasy.SquadRepository
	SquadTours    fantasy.SquadTourRepository
	Boosts        boost.Repository
	ScoredMatches scoring.Repository
	Tours         tour.Repository
}

// Transactor runs fn inside one transaction. Returning an error rolls every
// write back.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
