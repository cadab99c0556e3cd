package match

import "time"

// Match is a fixture between two clubs inside one tour.
type Match struct {
	ID         string
	LeagueID   string
	TourID     string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	Finished   bool
	FinishedAt *time.Time
}

// PlayerStat holds raw per-match figures and the derived fantasy points.
type PlayerStat struct {
	MatchID     string
	PlayerID    string
	TeamID      string
	Minutes     int
	Goals       int
	Assists     int
	CleanSheet  bool
	YellowCards int
	RedCards    int
	Points      int
}

// PointsByPlayer builds the playerID -> base points map consumed by scoring.
// Duplicate rows for one player are summed.
func PointsByPlayer(stats []PlayerStat) map[string]int {
	out := make(map[string]int, len(stats))
	for _, stat := range stats {
		if stat.PlayerID == "" {
			continue
		}
		out[stat.PlayerID] += stat.Points
	}
	return out
}

// Summary condenses a tour's fixtures into the facts the lifecycle needs.
type Summary struct {
	Total           int
	Finished        int
	EarliestKickoff time.Time
	LastFinishedAt  time.Time
}

func Summarize(matches []Match) Summary {
	var out Summary
	for _, m := range matches {
		out.Total++
		if !m.KickoffAt.IsZero() && (out.EarliestKickoff.IsZero() || m.KickoffAt.Before(out.EarliestKickoff)) {
			out.EarliestKickoff = m.KickoffAt
		}
		if !m.Finished {
			continue
		}
		out.Finished++
		if m.FinishedAt != nil && m.FinishedAt.After(out.LastFinishedAt) {
			out.LastFinishedAt = *m.FinishedAt
		}
	}
	return out
}

// AllFinished is false for a tour without fixtures.
func (s Summary) AllFinished() bool {
	return s.Total > 0 && s.Finished == s.Total
}
