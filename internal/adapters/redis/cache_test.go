package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redisad "hotel_sentiment/internal/adapters/redis"
	"hotel_sentiment/internal/domain"
)

func newCache(t *testing.T) (*redisad.Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestCache_SetGetDel(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, c.Ping(ctx))

	var out domain.AspectRatings
	ok, err := c.Get(ctx, "aspects:x", &out)
	require.NoError(t, err)
	assert.False(t, ok)

	in := domain.AspectRatings{"Staf": domain.RatingNegative, "Fasilitas": domain.RatingPositive}
	require.NoError(t, c.Set(ctx, "aspects:x", in, 60))

	raw, err := mr.Get("aspects:x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"Fasilitas":5.0,"Staf":1.0}`, raw)

	ok, err = c.Get(ctx, "aspects:x", &out)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, in, out)

	require.NoError(t, c.Del(ctx, "aspects:x"))
	assert.False(t, mr.Exists("aspects:x"))
}

func TestCache_TTL(t *testing.T) {
	c, mr := newCache(t)
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", domain.AspectRatings{}, 30))

	mr.FastForward(31 * time.Second)
	var out domain.AspectRatings
	ok, err := c.Get(ctx, "k", &out)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCache_CorruptValue(t *testing.T) {
	c, mr := newCache(t)
	require.NoError(t, mr.Set("k", "not json"))

	var out domain.AspectRatings
	ok, err := c.Get(context.Background(), "k", &out)
	assert.Error(t, err)
	assert.False(t, ok)
}
