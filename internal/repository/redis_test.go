package repository

import (
	"context"
	"testing"
	"time"

	"ammarstationary/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisPromoCache(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := redis.NewClient(&redis.Options{
		Addr: s.Addr(),
	})
	defer client.Close()

	cache := NewRedisPromoCache(client, 30*time.Second)
	ctx := context.Background()

	t.Run("SetAndGetPromo", func(t *testing.T) {
		limit := int64(100)
		promo := &models.PromoCode{
			ID:              "promo-1",
			Code:            "WELCOME10",
			DiscountPercent: 10,
			UsageLimit:      &limit,
			UsageCount:      3,
			Active:          true,
		}

		err := cache.SetPromo(ctx, promo, 0)
		require.NoError(t, err)

		got, err := cache.GetPromo(ctx, "WELCOME10")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, promo.ID, got.ID)
		assert.Equal(t, promo.Code, got.Code)
		assert.Equal(t, promo.DiscountPercent, got.DiscountPercent)
		require.NotNil(t, got.UsageLimit)
		assert.Equal(t, int64(100), *got.UsageLimit)
	})

	t.Run("GetMissingPromo", func(t *testing.T) {
		got, err := cache.GetPromo(ctx, "NOSUCH")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("EntryExpires", func(t *testing.T) {
		promo := &models.PromoCode{ID: "promo-2", Code: "FLASH", DiscountPercent: 25, Active: true}
		require.NoError(t, cache.SetPromo(ctx, promo, time.Second))

		s.FastForward(time.Second + time.Millisecond)

		got, err := cache.GetPromo(ctx, "FLASH")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("InvalidatePromo", func(t *testing.T) {
		promo := &models.PromoCode{ID: "promo-3", Code: "SPRING", DiscountPercent: 5, Active: true}
		require.NoError(t, cache.SetPromo(ctx, promo, 0))

		err := cache.InvalidatePromo(ctx, "SPRING")
		require.NoError(t, err)

		got, _ := cache.GetPromo(ctx, "SPRING")
		assert.Nil(t, got)
	})

	t.Run("RateLimit", func(t *testing.T) {
		key := "1.2.3.4"
		limit := 2
		window := time.Second

		allowed, err := cache.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = cache.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Third request exceeds the limit
		allowed, err = cache.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		s.FastForward(window + time.Millisecond)

		allowed, err = cache.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		cache := NewRedisPromoCache(nil, time.Minute)
		_, err := cache.GetPromo(ctx, "ANY")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("Ping", func(t *testing.T) {
		err := Ping(ctx, client)
		assert.NoError(t, err)
	})

	t.Run("Close", func(t *testing.T) {
		err := Close(client)
		assert.NoError(t, err)
	})
}
