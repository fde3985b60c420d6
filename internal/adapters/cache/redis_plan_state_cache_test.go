package cache

import (
	"context"
	"shopping-route-service/internal/domain"
	"shopping-route-service/internal/ports"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (*RedisPlanStateCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisPlanStateCache(client), mr
}

func TestRedisPlanStateCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	w, ok := domain.Preset(domain.PresetSaveMoney)
	require.True(t, ok)
	require.NoError(t, c.SaveState(ctx, "weekly", ports.PlanState{
		Weights: w,
		Pins:    map[string]string{"milk": "s2"},
	}))
	require.True(t, mr.Exists(defaultKeyPrefix+"weekly"))

	got, ok, err := c.LoadState(ctx, "weekly")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, w, got.Weights)
	require.Equal(t, map[string]string{"milk": "s2"}, got.Pins)
}

func TestRedisPlanStateCacheMissingKey(t *testing.T) {
	c, _ := newTestCache(t)

	got, ok, err := c.LoadState(context.Background(), "nothing")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, ports.PlanState{}, got)
}

func TestRedisPlanStateCacheEmptyPinsLoadAsEmptyMap(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SaveState(ctx, "l", ports.PlanState{Weights: domain.DefaultWeights()}))
	got, ok, err := c.LoadState(ctx, "l")
	require.NoError(t, err)
	require.True(t, ok)
	require.NotNil(t, got.Pins)
	require.Empty(t, got.Pins)
}

func TestRedisPlanStateCacheRejectsCorruptEntries(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set(defaultKeyPrefix+"bad", "{not json"))
	_, _, err := c.LoadState(ctx, "bad")
	require.Error(t, err)

	require.NoError(t, mr.Set(defaultKeyPrefix+"sum", `{"price":90,"distance":90,"quality":0,"time":0}`))
	_, _, err = c.LoadState(ctx, "sum")
	require.ErrorIs(t, err, domain.ErrInvalidWeight)
}

func TestRedisPlanStateCacheTTL(t *testing.T) {
	c, mr := newTestCache(t)
	c.TTL = time.Minute
	ctx := context.Background()

	require.NoError(t, c.SaveState(ctx, "l", ports.PlanState{Weights: domain.DefaultWeights()}))
	mr.FastForward(2 * time.Minute)

	_, ok, err := c.LoadState(ctx, "l")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisPlanStateCacheEmptyListID(t *testing.T) {
	c, _ := newTestCache(t)
	require.Error(t, c.SaveState(context.Background(), " ", ports.PlanState{Weights: domain.DefaultWeights()}))
}
