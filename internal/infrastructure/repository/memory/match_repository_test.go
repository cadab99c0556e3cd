package memory

import (
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
)

func TestMatchRepository_RecordResultKeepsFirstFinishTime(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	repo := NewMatchRepository(SeedMatches(base), nil)
	matchID := LeagueIDLiga1Indonesia + "-tour-01-m01"

	first := base.Add(2 * time.Hour)
	if err := repo.RecordResult(t.Context(), matchID, first, []match.PlayerStat{{PlayerID: "idn-fwd-02", Points: 3}}); err != nil {
		t.Fatalf("record result: %v", err)
	}
	if err := repo.RecordResult(t.Context(), matchID, first.Add(time.Hour), []match.PlayerStat{{PlayerID: "idn-fwd-02", Points: 5}}); err != nil {
		t.Fatalf("record corrected result: %v", err)
	}

	m, ok, err := repo.GetByID(t.Context(), matchID)
	if err != nil || !ok {
		t.Fatalf("get match: ok=%t err=%v", ok, err)
	}
	if !m.Finished || m.FinishedAt == nil || !m.FinishedAt.Equal(first) {
		t.Fatalf("expected finish time %s kept, got %+v", first, m.FinishedAt)
	}

	stats, err := repo.ListStatsByMatch(t.Context(), matchID)
	if err != nil {
		t.Fatalf("list stats: %v", err)
	}
	if len(stats) != 1 || stats[0].Points != 5 || stats[0].MatchID != matchID {
		t.Fatalf("expected stat rows replaced, got %+v", stats)
	}
}
