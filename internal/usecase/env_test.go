package usecase

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/fantasy"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/infrastructure/repository/memory"
)

const (
	testLeagueID = memory.LeagueIDLiga1Indonesia
	testTour1    = memory.LeagueIDLiga1Indonesia + "-tour-01"
	testTour2    = memory.LeagueIDLiga1Indonesia + "-tour-02"
	testCaptain  = "idn-fwd-02"
	testVice     = "idn-mid-03"
)

var (
	testMain = []string{
		"idn-gk-01", "idn-def-01", "idn-def-03", "idn-def-05", "idn-mid-01", "idn-mid-03",
		"idn-mid-05", "idn-mid-07", "idn-fwd-02", "idn-fwd-03", "idn-fwd-04",
	}
	testBench = []string{"idn-gk-05", "idn-def-09", "idn-mid-09", "idn-def-11"}
)

// testRosterCost is the seeded price of testMain plus testBench.
const testRosterCost int64 = 96500

type sequenceIDs struct {
	prefix string
	next   atomic.Int64
}

func (g *sequenceIDs) NewID() (string, error) {
	return fmt.Sprintf("%s-%d", g.prefix, g.next.Add(1)), nil
}

type testEnv struct {
	base    time.Time
	now     time.Time
	store   *memory.Store
	matches *memory.MatchRepository
	rules   fantasy.Rules

	rosters   *RosterService
	squads    *SquadService
	transfers *TransferService
	boosts    *BoostService
	scoring   *ScoringService
	tours     *TourService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	env := &testEnv{
		base:    base,
		now:     base,
		store:   memory.NewStore(memory.SeedTours(base)),
		matches: memory.NewMatchRepository(memory.SeedMatches(base), nil),
		rules:   fantasy.DefaultRules(),
	}

	leagues := memory.NewLeagueRepository(memory.SeedLeagues())
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	catalog := Catalog{
		Leagues: leagues,
		Teams:   memory.NewTeamRepository(memory.SeedTeams()),
		Players: players,
		Matches: env.matches,
	}
	ids := &sequenceIDs{prefix: "id"}
	clock := func() time.Time { return env.now }

	env.rosters = NewRosterService(leagues, players, env.rules, nil)
	env.squads = NewSquadService(catalog, env.store.Tours(), env.store.Squads(), env.store.SquadTours(), env.store, env.rules, ids, nil)
	env.squads.now = clock
	env.transfers = NewTransferService(players, env.matches, env.store.Tours(), env.store.Squads(), env.store.SquadTours(), env.store, env.rules, nil)
	env.transfers.now = clock
	env.boosts = NewBoostService(env.store.Boosts(), env.store.Tours(), env.matches, env.store.Squads(), env.store, env.rules, ids, nil)
	env.boosts.now = clock
	env.scoring = NewScoringService(env.matches, env.store.Tours(), env.store, nil)
	env.scoring.now = clock
	env.tours = NewTourService(env.store.Tours(), env.matches, env.store.SquadTours(), env.store, env.rules, ids, nil)
	env.tours.now = clock

	return env
}

func (e *testEnv) createSquad(t *testing.T, userID string) SquadWithTour {
	t.Helper()

	created, err := e.squads.CreateSquad(t.Context(), CreateSquadInput{
		UserID:         userID,
		LeagueID:       testLeagueID,
		Name:           "Squad " + userID,
		FavoriteTeamID: "idn-persija",
		MainPlayerIDs:  append([]string(nil), testMain...),
		BenchPlayerIDs: append([]string(nil), testBench...),
		CaptainID:      testCaptain,
		ViceCaptainID:  testVice,
	})
	if err != nil {
		t.Fatalf("create squad for %s: %v", userID, err)
	}
	return created
}

// finishMatch records a result one hour after the last kickoff of the tour.
func (e *testEnv) finishMatch(t *testing.T, matchID string, points map[string]int) {
	t.Helper()

	m, ok, err := e.matches.GetByID(t.Context(), matchID)
	if err != nil || !ok {
		t.Fatalf("get match %s: ok=%t err=%v", matchID, ok, err)
	}
	stats := make([]match.PlayerStat, 0, len(points))
	for playerID, value := range points {
		stats = append(stats, match.PlayerStat{PlayerID: playerID, Points: value})
	}
	if err := e.matches.RecordResult(t.Context(), matchID, m.KickoffAt.Add(2*time.Hour), stats); err != nil {
		t.Fatalf("record result %s: %v", matchID, err)
	}
}

// finishTour finishes every fixture of tourID without points and moves the
// clock past the grace period.
func (e *testEnv) finishTour(t *testing.T, tourID string) {
	t.Helper()

	fixtures, err := e.matches.ListByTour(t.Context(), tourID)
	if err != nil {
		t.Fatalf("list matches of %s: %v", tourID, err)
	}
	var last time.Time
	for _, m := range fixtures {
		if !m.Finished {
			e.finishMatch(t, m.ID, nil)
		}
		if m.KickoffAt.After(last) {
			last = m.KickoffAt
		}
	}
	e.now = last.Add(6 * time.Hour)
}

func matchID(tourID string, n int) string {
	return fmt.Sprintf("%s-m%02d", tourID, n)
}

func replaceAt(ids []string, replacements map[string]string) []string {
	out := append([]string(nil), ids...)
	for i, id := range out {
		if next, ok := replacements[id]; ok {
			out[i] = next
		}
	}
	return out
}
