package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository"
	"github.com/maxviazov/baseball-scorecard-service/internal/repository/contract"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeFixture(t *testing.T) (contract.Fixture, func()) {
	s := New()
	return contract.Fixture{
		Seasons:          s.Seasons(),
		Teams:            s.Teams(),
		Players:          s.Players(),
		Games:            s.Games(),
		Lineups:          s.Lineups(),
		PlateAppearances: s.PlateAppearances(),
		Tx:               s.TxManager(),
		Pinger:           s.Pinger(),
	}, func() {}
}

func TestRepositories_MemoryContract(t *testing.T) {
	contract.RunAll(t, makeFixture)
}

func TestWithClock_StampsCreatedAt(t *testing.T) {
	fixed := time.Date(2024, 4, 1, 18, 5, 0, 0, time.UTC)
	s := New(WithClock(func() time.Time { return fixed }))
	season, err := s.Seasons().Create(context.Background(), model.Season{Name: "Opening", Year: 2024})
	require.NoError(t, err)
	assert.Equal(t, fixed, season.CreatedAt)
}

func TestPlateAppearance_RejectsCheckViolations(t *testing.T) {
	ctx := context.Background()
	s := New()
	season, _ := s.Seasons().Create(ctx, model.Season{Name: "S", Year: 2024})
	home, _ := s.Teams().Create(ctx, model.Team{SeasonID: season.ID, Name: "H"})
	away, _ := s.Teams().Create(ctx, model.Team{SeasonID: season.ID, Name: "A"})
	batter, _ := s.Players().Create(ctx, model.Player{TeamID: away.ID, FirstName: "B", LastName: "B"})
	game, err := s.Games().Create(ctx, model.Game{SeasonID: season.ID, HomeTeamID: home.ID, AwayTeamID: away.ID})
	require.NoError(t, err)

	cases := map[string]model.PlateAppearance{
		"inning_zero":    {GameID: game.ID, Inning: 0, Half: stats.Top, BatterID: batter.ID, Result: stats.Out},
		"negative_rbis":  {GameID: game.ID, Inning: 1, Half: stats.Top, BatterID: batter.ID, Result: stats.Out, RBIs: -1},
		"bad_half":       {GameID: game.ID, Inning: 1, Half: "middle", BatterID: batter.ID, Result: stats.Out},
		"bad_result":     {GameID: game.ID, Inning: 1, Half: stats.Top, BatterID: batter.ID, Result: "GIDP"},
		"unknown_batter": {GameID: game.ID, Inning: 1, Half: stats.Top, BatterID: 999, Result: stats.Out},
	}
	for name, pa := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := s.PlateAppearances().Create(ctx, pa)
			assert.True(t, errors.Is(err, repository.ErrConflict), "got %v", err)
		})
	}
}

func TestConcurrentCreate_AssignsUniqueIDs(t *testing.T) {
	s := New()
	const n = 64
	var wg sync.WaitGroup
	ids := make(chan int64, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			season, err := s.Seasons().Create(context.Background(), model.Season{Name: "S", Year: 2024})
			if err == nil {
				ids <- season.ID
			}
		}()
	}
	wg.Wait()
	close(ids)
	seen := make(map[int64]bool, n)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestPing_HonorsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, New().Ping(ctx), context.Canceled)
}
