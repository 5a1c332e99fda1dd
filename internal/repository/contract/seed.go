package contract

import (
	"context"
	"testing"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
)

func seedSeason(t *testing.T, fx Fixture, year int) int64 {
	t.Helper()
	s, err := fx.Seasons.Create(context.Background(), model.Season{Name: "Season", Year: year})
	if err != nil {
		t.Fatalf("seed season: %v", err)
	}
	return s.ID
}

func seedTeam(t *testing.T, fx Fixture, seasonID int64, name string) int64 {
	t.Helper()
	team, err := fx.Teams.Create(context.Background(), model.Team{SeasonID: seasonID, Name: name})
	if err != nil {
		t.Fatalf("seed team: %v", err)
	}
	return team.ID
}

func seedPlayer(t *testing.T, fx Fixture, teamID int64, first, last string) int64 {
	t.Helper()
	p, err := fx.Players.Create(context.Background(), model.Player{TeamID: teamID, FirstName: first, LastName: last})
	if err != nil {
		t.Fatalf("seed player: %v", err)
	}
	return p.ID
}

func seedGame(t *testing.T, fx Fixture, seasonID, home, away int64) int64 {
	t.Helper()
	g, err := fx.Games.Create(context.Background(), model.Game{SeasonID: seasonID, HomeTeamID: home, AwayTeamID: away})
	if err != nil {
		t.Fatalf("seed game: %v", err)
	}
	return g.ID
}

type roster struct {
	season, game            int64
	home, away              int64
	homeBatter, homePitcher int64
	awayBatter, awayPitcher int64
}

// seedGameWithRoster creates a fresh season with two teams, one game and a
// batter plus a pitcher on each side.
func seedGameWithRoster(t *testing.T, fx Fixture) roster {
	t.Helper()
	var r roster
	r.season = seedSeason(t, fx, 2024)
	r.home = seedTeam(t, fx, r.season, "Home")
	r.away = seedTeam(t, fx, r.season, "Away")
	r.homeBatter = seedPlayer(t, fx, r.home, "Home", "Batter")
	r.homePitcher = seedPlayer(t, fx, r.home, "Home", "Pitcher")
	r.awayBatter = seedPlayer(t, fx, r.away, "Away", "Batter")
	r.awayPitcher = seedPlayer(t, fx, r.away, "Away", "Pitcher")
	r.game = seedGame(t, fx, r.season, r.home, r.away)
	return r
}
