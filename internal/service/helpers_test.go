package service_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository/memory"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

var discard = zerolog.New(io.Discard)

func serviceErrIsInvalid(err error) bool { return errors.Is(err, service.ErrInvalidInput) }

func hasField(err error, field string) bool {
	for _, fe := range service.FieldErrors(err) {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// league is a seeded memory store: one season, two teams, and a batter and a
// pitcher on each side of one game.
type league struct {
	store                   *memory.Store
	season                  model.Season
	home, away              model.Team
	game                    model.Game
	homeBatter, homePitcher model.Player
	awayBatter, awayPitcher model.Player
}

func seedLeague(t *testing.T) league {
	t.Helper()
	ctx := context.Background()
	s := memory.New()
	var l league
	var err error
	l.store = s
	l.season, err = s.Seasons().Create(ctx, model.Season{Name: "Summer", Year: 2024})
	require.NoError(t, err)
	l.home, err = s.Teams().Create(ctx, model.Team{SeasonID: l.season.ID, Name: "Owls"})
	require.NoError(t, err)
	l.away, err = s.Teams().Create(ctx, model.Team{SeasonID: l.season.ID, Name: "Foxes"})
	require.NoError(t, err)
	mk := func(team int64, first, last string) model.Player {
		p, err := s.Players().Create(ctx, model.Player{TeamID: team, FirstName: first, LastName: last})
		require.NoError(t, err)
		return p
	}
	l.homeBatter = mk(l.home.ID, "Ada", "Lovelace")
	l.homePitcher = mk(l.home.ID, "Grace", "Hopper")
	l.awayBatter = mk(l.away.ID, "Alan", "Turing")
	l.awayPitcher = mk(l.away.ID, "Edsger", "Dijkstra")
	l.game, err = s.Games().Create(ctx, model.Game{SeasonID: l.season.ID, HomeTeamID: l.home.ID, AwayTeamID: l.away.ID})
	require.NoError(t, err)
	return l
}

func ptr[T any](v T) *T { return &v }
