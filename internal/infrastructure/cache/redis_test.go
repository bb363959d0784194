package cache

import (
	"context"
	"testing"
	"time"

	"talent-match/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func newTestRedis(t *testing.T) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewWithClient(client, time.Minute, zaptest.NewLogger(t)), mr
}

func TestRedis_JSONRoundTrip(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "ranking:job:1", payload{Name: "a", Score: 87.5}, 0))
	assert.Equal(t, time.Minute, mr.TTL("ranking:job:1"))

	var got payload
	ok, err := r.GetJSON(ctx, "ranking:job:1", &got)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload{Name: "a", Score: 87.5}, got)
}

func TestRedis_Miss(t *testing.T) {
	r, _ := newTestRedis(t)

	var got payload
	ok, err := r.GetJSON(context.Background(), "missing", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_Expiry(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, r.SetJSON(ctx, "k", payload{Name: "x"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got payload
	ok, err := r.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedis_DeleteByPattern(t *testing.T) {
	r, mr := newTestRedis(t)
	ctx := context.Background()

	for _, k := range []string{"ranking:job:1:a", "ranking:job:1:b", "ranking:job:2:a"} {
		require.NoError(t, r.SetJSON(ctx, k, payload{}, 0))
	}
	require.NoError(t, r.DeleteByPattern(ctx, "ranking:job:1:*"))

	assert.False(t, mr.Exists("ranking:job:1:a"))
	assert.False(t, mr.Exists("ranking:job:1:b"))
	assert.True(t, mr.Exists("ranking:job:2:a"))
}

func TestRedis_UnavailableBypasses(t *testing.T) {
	r := NewRedis(context.Background(), config.RedisConfig{}, zaptest.NewLogger(t))
	ctx := context.Background()

	assert.False(t, r.Available())
	assert.ErrorIs(t, r.Ping(ctx), ErrUnavailable)
	assert.NoError(t, r.SetJSON(ctx, "k", payload{}, 0))

	var got payload
	ok, err := r.GetJSON(ctx, "k", &got)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, r.DeleteByPattern(ctx, "*"))
}

func TestRedis_ServerDown(t *testing.T) {
	r, mr := newTestRedis(t)
	mr.Close()

	var got payload
	_, err := r.GetJSON(context.Background(), "k", &got)
	assert.Error(t, err)
}
