package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-tour/internal/domain/league"
	"github.com/riskibarqy/fantasy-tour/internal/domain/match"
	"github.com/riskibarqy/fantasy-tour/internal/domain/player"
	"github.com/riskibarqy/fantasy-tour/internal/domain/team"
	"github.com/riskibarqy/fantasy-tour/internal/domain/tour"
)

const (
	LeagueIDLiga1Indonesia = "idn-liga-1-2026"
	LeagueIDPremierLeague  = "eng-premier-league-2026"
)

func SeedLeagues() []league.League {
	return []league.League{
		{
			ID:          LeagueIDLiga1Indonesia,
			Name:        "Liga 1 Indonesia",
			CountryCode: "ID",
			Season:      "2026/2027",
			IsDefault:   true,
		},
		{
			ID:          LeagueIDPremierLeague,
			Name:        "Premier League",
			CountryCode: "GB",
			Season:      "2026/2027",
			IsDefault:   false,
		},
	}
}

func SeedTeams() []team.Team {
	return []team.Team{
		{ID: "idn-persija", LeagueID: LeagueIDLiga1Indonesia, Name: "Persija Jakarta", Short: "PSJ"},
		{ID: "idn-persib", LeagueID: LeagueIDLiga1Indonesia, Name: "Persib Bandung", Short: "PSB"},
		{ID: "idn-persebaya", LeagueID: LeagueIDLiga1Indonesia, Name: "Persebaya Surabaya", Short: "PRB"},
		{ID: "idn-baliutd", LeagueID: LeagueIDLiga1Indonesia, Name: "Bali United", Short: "BU"},
		{ID: "idn-psm", LeagueID: LeagueIDLiga1Indonesia, Name: "PSM Makassar", Short: "PSM"},
		{ID: "idn-borneo", LeagueID: LeagueIDLiga1Indonesia, Name: "Borneo FC", Short: "BFC"},
		{ID: "eng-ars", LeagueID: LeagueIDPremierLeague, Name: "Arsenal", Short: "ARS"},
		{ID: "eng-liv", LeagueID: LeagueIDPremierLeague, Name: "Liverpool", Short: "LIV"},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "idn-gk-01", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Andritany Ardhiyasa", Position: player.PositionGoalkeeper, Price: 5000},
		{ID: "idn-def-01", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Hansamu Yama", Position: player.PositionDefender, Price: 5500},
		{ID: "idn-def-02", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Rizky Ridho", Position: player.PositionDefender, Price: 6000},
		{ID: "idn-mid-01", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Maciej Gajos", Position: player.PositionMidfielder, Price: 7500},
		{ID: "idn-mid-02", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Syahrian Abimanyu", Position: player.PositionMidfielder, Price: 6000},
		{ID: "idn-fwd-01", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persija", Name: "Gustavo Almeida", Position: player.PositionForward, Price: 9000},
		{ID: "idn-gk-02", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Teja Paku Alam", Position: player.PositionGoalkeeper, Price: 5000},
		{ID: "idn-def-03", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Nick Kuipers", Position: player.PositionDefender, Price: 6000},
		{ID: "idn-def-04", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Alberto Rodriguez", Position: player.PositionDefender, Price: 5500},
		{ID: "idn-mid-03", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Marc Klok", Position: player.PositionMidfielder, Price: 8000},
		{ID: "idn-mid-04", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "Dedi Kusnandar", Position: player.PositionMidfielder, Price: 5500},
		{ID: "idn-fwd-02", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persib", Name: "David da Silva", Position: player.PositionForward, Price: 9500},
		{ID: "idn-gk-03", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Ernando Ari", Position: player.PositionGoalkeeper, Price: 5000},
		{ID: "idn-def-05", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Dusan Stevanovic", Position: player.PositionDefender, Price: 5500},
		{ID: "idn-def-06", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Arief Catur", Position: player.PositionDefender, Price: 4500},
		{ID: "idn-mid-05", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Bruno Moreira", Position: player.PositionMidfielder, Price: 7500},
		{ID: "idn-mid-06", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Ze Valente", Position: player.PositionMidfielder, Price: 7000},
		{ID: "idn-fwd-03", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-persebaya", Name: "Paulo Henrique", Position: player.PositionAttacker, Price: 8000},
		{ID: "idn-gk-04", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-baliutd", Name: "Adilson Maringa", Position: player.PositionGoalkeeper, Price: 4500},
		{ID: "idn-def-07", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-baliutd", Name: "Ricky Fajrin", Position: player.PositionDefender, Price: 5000},
		{ID: "idn-def-08", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-baliutd", Name: "Elias Dolah", Position: player.PositionDefender, Price: 5000},
		{ID: "idn-mid-07", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-baliutd", Name: "Eber Bessa", Position: player.PositionMidfielder, Price: 7000},
		{ID: "idn-mid-08", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-baliutd", Name: "Mitsuru Maruoka", Position: player.PositionMidfielder, Price: 6000},
		{ID: "idn-fwd-04", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-baliutd", Name: "Irfan Jaya", Position: player.PositionForward, Price: 6500},
		{ID: "idn-gk-05", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-psm", Name: "Reza Arya", Position: player.PositionGoalkeeper, Price: 4500},
		{ID: "idn-def-09", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-psm", Name: "Yuran Fernandes", Position: player.PositionDefender, Price: 5500},
		{ID: "idn-def-10", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-psm", Name: "Agung Mannan", Position: player.PositionDefender, Price: 4500},
		{ID: "idn-mid-09", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-psm", Name: "Ananda Raehan", Position: player.PositionMidfielder, Price: 5500},
		{ID: "idn-mid-10", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-psm", Name: "Yakob Sayuri", Position: player.PositionMidfielder, Price: 6500},
		{ID: "idn-fwd-05", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-psm", Name: "Ramadhan Sananta", Position: player.PositionForward, Price: 7000},
		{ID: "idn-gk-06", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-borneo", Name: "Nadeo Argawinata", Position: player.PositionGoalkeeper, Price: 5000},
		{ID: "idn-def-11", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-borneo", Name: "Leo Guntara", Position: player.PositionDefender, Price: 5000},
		{ID: "idn-def-12", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-borneo", Name: "Komang Teguh", Position: player.PositionDefender, Price: 4500},
		{ID: "idn-mid-11", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-borneo", Name: "Stefano Lilipaly", Position: player.PositionMidfielder, Price: 7500},
		{ID: "idn-mid-12", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-borneo", Name: "Kei Hirose", Position: player.PositionMidfielder, Price: 6000},
		{ID: "idn-fwd-06", LeagueID: LeagueIDLiga1Indonesia, TeamID: "idn-borneo", Name: "Matheus Pato", Position: player.PositionForward, Price: 8500},
		{ID: "eng-gk-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-ars", Name: "David Raya", Position: player.PositionGoalkeeper, Price: 5500},
		{ID: "eng-def-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-ars", Name: "William Saliba", Position: player.PositionDefender, Price: 6000},
		{ID: "eng-mid-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-liv", Name: "Dominik Szoboszlai", Position: player.PositionMidfielder, Price: 7000},
		{ID: "eng-fwd-01", LeagueID: LeagueIDPremierLeague, TeamID: "eng-liv", Name: "Darwin Nunez", Position: player.PositionForward, Price: 7500},
	}
}

// SeedTours schedules weekly tours starting a week after base so a fresh
// process always has an open tour.
func SeedTours(base time.Time) []tour.Tour {
	first := base.Truncate(24 * time.Hour).Add(7 * 24 * time.Hour)
	out := make([]tour.Tour, 0, 5)
	for i := 0; i < 4; i++ {
		out = append(out, tour.Tour{
			ID:         fmt.Sprintf("%s-tour-%02d", LeagueIDLiga1Indonesia, i+1),
			LeagueID:   LeagueIDLiga1Indonesia,
			Number:     i + 1,
			DeadlineAt: first.Add(time.Duration(i) * 7 * 24 * time.Hour).Add(11 * time.Hour),
		})
	}
	out = append(out, tour.Tour{
		ID:         LeagueIDPremierLeague + "-tour-01",
		LeagueID:   LeagueIDPremierLeague,
		Number:     1,
		DeadlineAt: first.Add(13 * time.Hour),
	})
	return out
}

// SeedMatches pairs the six Liga 1 clubs into three fixtures per tour.
func SeedMatches(base time.Time) []match.Match {
	pairings := [][3][2]string{
		{{"idn-persija", "idn-persib"}, {"idn-persebaya", "idn-baliutd"}, {"idn-psm", "idn-borneo"}},
		{{"idn-persib", "idn-persebaya"}, {"idn-baliutd", "idn-psm"}, {"idn-borneo", "idn-persija"}},
		{{"idn-persija", "idn-persebaya"}, {"idn-persib", "idn-psm"}, {"idn-baliutd", "idn-borneo"}},
		{{"idn-psm", "idn-persija"}, {"idn-borneo", "idn-persib"}, {"idn-persebaya", "idn-baliutd"}},
	}

	tours := SeedTours(base)
	out := make([]match.Match, 0, len(pairings)*3+1)
	for i, round := range pairings {
		deadline := tours[i].DeadlineAt
		for j, pair := range round {
			out = append(out, match.Match{
				ID:         fmt.Sprintf("%s-m%02d", tours[i].ID, j+1),
				LeagueID:   LeagueIDLiga1Indonesia,
				TourID:     tours[i].ID,
				HomeTeamID: pair[0],
				AwayTeamID: pair[1],
				KickoffAt:  deadline.Add(time.Duration(1+j*3) * time.Hour),
			})
		}
	}

	epl := tours[len(tours)-1]
	out = append(out, match.Match{
		ID:         epl.ID + "-m01",
		LeagueID:   LeagueIDPremierLeague,
		TourID:     epl.ID,
		HomeTeamID: "eng-ars",
		AwayTeamID: "eng-liv",
		KickoffAt:  epl.DeadlineAt.Add(2 * time.Hour),
	})
	return out
}
