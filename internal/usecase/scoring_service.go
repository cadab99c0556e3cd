package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/scoring"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
	"github.com/riskibarqy/fantasy-tour/internal/domain/uow"
	"github.com/riskibarqy/fantasy-tour/internal/platform/logging"
)

type ScoringService struct {
	matchRepo match.Repository
	tourRepo  tour.Repository
	tx        uow.Transactor
	logger    *logging.Logger
	now       func() time.Time
}

func NewScoringService(matchRepo match.Repository, tourRepo tour.Repository, tx uow.Transactor, logger *logging.Logger) *ScoringService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ScoringService{
		matchRepo: matchRepo,
		tourRepo:  tourRepo,
		tx:        tx,
		logger:    logger,
		now:       time.Now,
	}
}

// RecordMatchFinalization adds one finished match's points to every snapshot
// of its tour. The ledger row and the increments commit together, so a match
// is counted exactly once. Matches of a tour whose predecessor is not yet
// finalized are rejected with ErrConflict and can be retried afterwards.
func (s *ScoringService) RecordMatchFinalization(ctx context.Context, matchID string) (scoring.ScoredMatch, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ScoringService.RecordMatchFinalization")
	defer span.End()

	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return scoring.ScoredMatch{}, fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	m, ok, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return scoring.ScoredMatch{}, wrapRepoErr("get match", err)
	}
	if !ok {
		return scoring.ScoredMatch{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	if !m.Finished {
		return scoring.ScoredMatch{}, fmt.Errorf("%w: match %s is not finished", ErrConflict, matchID)
	}

	t, err := getTour(ctx, s.tourRepo, m.TourID)
	if err != nil {
		return scoring.ScoredMatch{}, err
	}
	if t.Finalized {
		return scoring.ScoredMatch{}, conflict(fmt.Errorf("%w: tour=%s", tour.ErrAlreadyFinalized, t.ID))
	}

	stats, err := s.matchRepo.ListStatsByMatch(ctx, matchID)
	if err != nil {
		return scoring.ScoredMatch{}, wrapRepoErr("list match stats", err)
	}
	basePoints := match.PointsByPlayer(stats)

	now := s.now().UTC()
	scored := scoring.ScoredMatch{
		MatchID:  matchID,
		TourID:   t.ID,
		ScoredAt: now,
	}
	locked := 0
	err = s.tx.WithinTx(ctx, func(ctx context.Context, repos uow.Repositories) error {
		if _, exists, err := repos.ScoredMatches.GetByMatchID(ctx, matchID); err != nil {
			return wrapRepoErr("get scored match", err)
		} else if exists {
			return conflict(fmt.Errorf("%w: match=%s", scoring.ErrMatchAlreadyScored, matchID))
		}

		current, ok, err := repos.Tours.GetByID(ctx, t.ID)
		if err != nil {
			return wrapRepoErr("get tour", err)
		}
		if !ok {
			return fmt.Errorf("%w: tour=%s", ErrNotFound, t.ID)
		}
		if current.Finalized {
			return conflict(fmt.Errorf("%w: tour=%s", tour.ErrAlreadyFinalized, t.ID))
		}
		siblings, err := repos.Tours.ListByLeague(ctx, current.LeagueID)
		if err != nil {
			return wrapRepoErr("list tours by league", err)
		}
		// squads reach this tour only when the previous one is finalized
		if prev, ok := tour.Previous(siblings, current.Number); ok && !prev.Finalized {
			return conflict(fmt.Errorf("%w: tour=%s previous=%s", tour.ErrPreviousOpen, t.ID, prev.ID))
		}
		if !current.Started {
			if err := repos.Tours.MarkStarted(ctx, t.ID, now); err != nil {
				return wrapRepoErr("mark tour started", err)
			}
			if locked, err = repos.SquadTours.LockByTour(ctx, t.ID); err != nil {
				return wrapRepoErr("lock squad tours", err)
			}
		}

		snapshots, err := repos.SquadTours.ListByTour(ctx, t.ID)
		if err != nil {
			return wrapRepoErr("list squad tours by tour", err)
		}
		for _, snapshot := range snapshots {
			delta := scoring.MatchDelta(snapshot, basePoints)
			if delta.Points == 0 {
				continue
			}
			if err := repos.SquadTours.AddPoints(ctx, snapshot.ID, delta.Points); err != nil {
				return wrapRepoErr("add squad tour points", err)
			}
			scored.UpdatedSnapshots++
			scored.PointsAdded += delta.Points
		}

		if err := repos.ScoredMatches.Create(ctx, scored); err != nil {
			if errors.Is(err, scoring.ErrMatchAlreadyScored) {
				return conflict(err)
			}
			return wrapRepoErr("create scored match", err)
		}
		return nil
	})
	if err != nil {
		return scoring.ScoredMatch{}, err
	}

	s.logger.InfoContext(ctx, "match scored",
		"match_id", matchID,
		"tour_id", t.ID,
		"updated_snapshots", scored.UpdatedSnapshots,
		"points_added", scored.PointsAdded,
		"locked_on_start", locked,
	)
	return scored, nil
}
