package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGameService(l league) service.GameService {
	return service.NewGameService(service.GameDeps{
		Games:   l.store.Games(),
		Seasons: l.store.Seasons(),
		Teams:   l.store.Teams(),
		Players: l.store.Players(),
		Lineups: l.store.Lineups(),
		Tx:      l.store.TxManager(),
	}, discard)
}

func TestGameService_CreateGame(t *testing.T) {
	l := seedLeague(t)
	svc := newGameService(l)
	ctx := context.Background()

	start := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	g, err := svc.CreateGame(ctx, l.season.ID, l.home.ID, l.away.ID, start, "")
	require.NoError(t, err)
	assert.Equal(t, model.GameStatusLive, g.Status)
	assert.True(t, g.StartTime.Equal(start))

	g, err = svc.CreateGame(ctx, l.season.ID, l.away.ID, l.home.ID, time.Time{}, " FINAL ")
	require.NoError(t, err)
	assert.Equal(t, model.GameStatusFinal, g.Status)
	assert.False(t, g.StartTime.IsZero())
}

func TestGameService_CreateGame_Invalid(t *testing.T) {
	l := seedLeague(t)
	svc := newGameService(l)
	ctx := context.Background()

	other, err := l.store.Seasons().Create(ctx, model.Season{Name: "Winter", Year: 2025})
	require.NoError(t, err)
	stranger, err := l.store.Teams().Create(ctx, model.Team{SeasonID: other.ID, Name: "Elsewhere"})
	require.NoError(t, err)

	cases := []struct {
		name       string
		season     int64
		home, away int64
		status     string
		field      string
	}{
		{"same team", l.season.ID, l.home.ID, l.home.ID, "", "teams"},
		{"bad status", l.season.ID, l.home.ID, l.away.ID, "postponed", "status"},
		{"zero season", 0, l.home.ID, l.away.ID, "", "season_id"},
		{"unknown season", 999, l.home.ID, l.away.ID, "", "season_id"},
		{"unknown team", l.season.ID, l.home.ID, 999, "", "away_team_id"},
		{"team from another season", l.season.ID, stranger.ID, l.away.ID, "", "home_team_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateGame(ctx, tc.season, tc.home, tc.away, time.Time{}, tc.status)
			require.True(t, serviceErrIsInvalid(err), "got %v", err)
			assert.True(t, hasField(err, tc.field), "fields: %v", service.FieldErrors(err))
		})
	}
}

func TestGameService_GetAndList(t *testing.T) {
	l := seedLeague(t)
	svc := newGameService(l)
	ctx := context.Background()

	g, err := svc.GetGame(ctx, l.game.ID)
	require.NoError(t, err)
	assert.Equal(t, l.home.ID, g.HomeTeamID)

	_, err = svc.GetGame(ctx, 404)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	res, err := svc.ListGames(ctx, repository.Page{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
}

func TestGameService_SetLineup(t *testing.T) {
	l := seedLeague(t)
	svc := newGameService(l)
	ctx := context.Background()

	out, err := svc.SetLineup(ctx, l.game.ID, []model.LineupEntry{
		{TeamID: l.away.ID, BattingOrder: 1, PlayerID: l.awayBatter.ID, DefensivePosition: ptr(" ss ")},
		{TeamID: l.home.ID, BattingOrder: 2, PlayerID: l.homePitcher.ID},
		{TeamID: l.home.ID, BattingOrder: 1, PlayerID: l.homeBatter.ID, DefensivePosition: ptr("")},
	})
	require.NoError(t, err)
	require.Len(t, out, 3)
	for _, e := range out {
		assert.Equal(t, l.game.ID, e.GameID)
	}

	got, err := svc.GetLineup(ctx, l.game.ID)
	require.NoError(t, err)
	assert.Equal(t, out, got)

	var ss *string
	for _, e := range got {
		if e.PlayerID == l.awayBatter.ID {
			ss = e.DefensivePosition
		}
		if e.PlayerID == l.homeBatter.ID {
			assert.Nil(t, e.DefensivePosition)
		}
	}
	require.NotNil(t, ss)
	assert.Equal(t, "SS", *ss)

	// A second call replaces, it never merges.
	out, err = svc.SetLineup(ctx, l.game.ID, []model.LineupEntry{
		{TeamID: l.home.ID, BattingOrder: 9, PlayerID: l.homeBatter.ID},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 9, out[0].BattingOrder)

	out, err = svc.SetLineup(ctx, l.game.ID, nil)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGameService_SetLineup_Invalid(t *testing.T) {
	l := seedLeague(t)
	svc := newGameService(l)
	ctx := context.Background()

	other, err := l.store.Teams().Create(ctx, model.Team{SeasonID: l.season.ID, Name: "Bench"})
	require.NoError(t, err)

	cases := []struct {
		name    string
		entries []model.LineupEntry
		field   string
	}{
		{"duplicate order", []model.LineupEntry{
			{TeamID: l.home.ID, BattingOrder: 3, PlayerID: l.homeBatter.ID},
			{TeamID: l.home.ID, BattingOrder: 3, PlayerID: l.homePitcher.ID},
		}, "entries[1].batting_order"},
		{"order out of range", []model.LineupEntry{
			{TeamID: l.home.ID, BattingOrder: 10, PlayerID: l.homeBatter.ID},
		}, "entries[0].batting_order"},
		{"team not in game", []model.LineupEntry{
			{TeamID: other.ID, BattingOrder: 1, PlayerID: l.homeBatter.ID},
		}, "entries[0].team_id"},
		{"unknown player", []model.LineupEntry{
			{TeamID: l.home.ID, BattingOrder: 1, PlayerID: 9999},
		}, "entries[0].player_id"},
		{"long position", []model.LineupEntry{
			{TeamID: l.home.ID, BattingOrder: 1, PlayerID: l.homeBatter.ID, DefensivePosition: ptr("LEFT")},
		}, "entries[0].defensive_position"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.SetLineup(ctx, l.game.ID, tc.entries)
			require.True(t, serviceErrIsInvalid(err), "got %v", err)
			assert.True(t, hasField(err, tc.field), "fields: %v", service.FieldErrors(err))
		})
	}

	// Same order on opposite teams is fine.
	_, err = svc.SetLineup(ctx, l.game.ID, []model.LineupEntry{
		{TeamID: l.home.ID, BattingOrder: 1, PlayerID: l.homeBatter.ID},
		{TeamID: l.away.ID, BattingOrder: 1, PlayerID: l.awayBatter.ID},
	})
	require.NoError(t, err)

	_, err = svc.SetLineup(ctx, 31337, nil)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = svc.GetLineup(ctx, 31337)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
