package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/maxviazov/baseball-scorecard-service/internal/model"
	"github.com/maxviazov/baseball-scorecard-service/internal/stats"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClient(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisStatsCache_SetGetRoundTrip(t *testing.T) {
	mr, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)
	ctx := context.Background()

	in := []stats.PlayerStats{{PlayerID: 7, FirstName: "Ada", LastName: "L", AB: 2, H: 1, AVG: 0.5}}
	require.NoError(t, c.Set(ctx, 3, KindBatting, 0, in))

	var out []stats.PlayerStats
	gen, hit, err := c.Get(ctx, 3, KindBatting, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, int64(0), gen)
	assert.Equal(t, in, out)
	assert.Equal(t, time.Minute, mr.TTL("season:3:batting:0"))
}

func TestRedisStatsCache_MissIsNotAnError(t *testing.T) {
	_, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)

	var out []stats.PitcherStats
	_, hit, err := c.Get(context.Background(), 1, KindPitching, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Nil(t, out)
}

func TestRedisStatsCache_CorruptEntry(t *testing.T) {
	mr, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)
	require.NoError(t, mr.Set("season:5:batting:0", "{not json"))

	var out []stats.PlayerStats
	_, hit, err := c.Get(context.Background(), 5, KindBatting, &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestRedisStatsCache_CorruptGeneration(t *testing.T) {
	mr, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)
	require.NoError(t, mr.Set("season:5:gen", "abc"))

	var out []stats.PlayerStats
	_, hit, err := c.Get(context.Background(), 5, KindBatting, &out)
	assert.Error(t, err)
	assert.False(t, hit)
}

func TestRedisStatsCache_InvalidateSeason(t *testing.T) {
	_, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, 9, KindBatting, 0, []stats.PlayerStats{}))
	require.NoError(t, c.Set(ctx, 9, KindPitching, 0, []stats.PitcherStats{}))
	require.NoError(t, c.Set(ctx, 10, KindBatting, 0, []stats.PlayerStats{}))

	require.NoError(t, c.InvalidateSeason(ctx, 9))

	var batting []stats.PlayerStats
	gen, hit, err := c.Get(ctx, 9, KindBatting, &batting)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, int64(1), gen)

	var pitching []stats.PitcherStats
	_, hit, err = c.Get(ctx, 9, KindPitching, &pitching)
	require.NoError(t, err)
	assert.False(t, hit)

	_, hit, err = c.Get(ctx, 10, KindBatting, &batting)
	require.NoError(t, err)
	assert.True(t, hit, "other seasons stay cached")
}

func TestRedisStatsCache_WriteFromPastGenerationIsNotServed(t *testing.T) {
	_, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)
	ctx := context.Background()

	var out []stats.PlayerStats
	gen, hit, err := c.Get(ctx, 4, KindBatting, &out)
	require.NoError(t, err)
	require.False(t, hit)

	// A new plate appearance lands while the reader is still computing.
	require.NoError(t, c.InvalidateSeason(ctx, 4))
	stale := []stats.PlayerStats{{PlayerID: 1, AB: 1, H: 1}}
	require.NoError(t, c.Set(ctx, 4, KindBatting, gen, stale))

	next, hit, err := c.Get(ctx, 4, KindBatting, &out)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, gen+1, next)

	fresh := []stats.PlayerStats{{PlayerID: 1, AB: 2, H: 1}}
	require.NoError(t, c.Set(ctx, 4, KindBatting, next, fresh))
	_, hit, err = c.Get(ctx, 4, KindBatting, &out)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, fresh, out)
}

func TestRedisStatsCache_ServerDown(t *testing.T) {
	mr, client := newClient(t)
	c := NewRedisStatsCache(client, time.Minute)
	mr.Close()

	var out []stats.PlayerStats
	_, _, err := c.Get(context.Background(), 1, KindBatting, &out)
	assert.Error(t, err)
	assert.Error(t, c.InvalidateSeason(context.Background(), 1))
}

func TestRedisStreamPublisher_PublishPlateAppearance(t *testing.T) {
	_, client := newClient(t)
	p := NewRedisStreamPublisher(client, "pa.test", 0)
	ctx := context.Background()

	pa := model.PlateAppearance{ID: 11, GameID: 4, Inning: 3, Half: stats.Bottom, BatterID: 2, Result: stats.HomeRun, RBIs: 2}
	require.NoError(t, p.PublishPlateAppearance(ctx, PlateAppearanceEvent{SeasonID: 1, PlateAppearance: pa}))

	msgs, err := client.XRange(ctx, "pa.test", "-", "+").Result()
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "4", msgs[0].Values["game_id"])
	assert.Equal(t, "HR", msgs[0].Values["result"])

	var ev PlateAppearanceEvent
	require.NoError(t, json.Unmarshal([]byte(msgs[0].Values["data"].(string)), &ev))
	assert.Equal(t, EventPlateAppearanceRecorded, ev.Type)
	assert.Equal(t, int64(1), ev.SeasonID)
	assert.Equal(t, int64(11), ev.PlateAppearance.ID)
	assert.Equal(t, 2, ev.PlateAppearance.RBIs)
}

func TestNopImplementations(t *testing.T) {
	ctx := context.Background()
	var out []stats.PlayerStats
	_, hit, err := NopStatsCache{}.Get(ctx, 1, KindBatting, &out)
	assert.NoError(t, err)
	assert.False(t, hit)
	assert.NoError(t, NopStatsCache{}.Set(ctx, 1, KindBatting, 0, out))
	assert.NoError(t, NopStatsCache{}.InvalidateSeason(ctx, 1))
	assert.NoError(t, NopPublisher{}.PublishPlateAppearance(ctx, PlateAppearanceEvent{}))
}
