package repository

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockCache struct {
	mock.Mock
}

func (m *mockCache) GetPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromoCode), args.Error(1)
}

func (m *mockCache) SetPromo(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error {
	args := m.Called(ctx, promo, ttl)
	return args.Error(0)
}

func (m *mockCache) InvalidatePromo(ctx context.Context, code string) error {
	args := m.Called(ctx, code)
	return args.Error(0)
}

func (m *mockCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	args := m.Called(ctx, key, limit, window)
	return args.Bool(0), args.Error(1)
}

func TestFailoverPromoCache(t *testing.T) {
	primary := new(mockCache)
	fallback := new(mockCache)
	logger := zerolog.New(io.Discard)
	cache := NewFailoverPromoCache(primary, fallback, &logger)
	ctx := context.Background()

	t.Run("PrimarySuccess", func(t *testing.T) {
		promo := &models.PromoCode{ID: "p1", Code: "SAVE10", DiscountPercent: 10, Active: true}
		primary.On("GetPromo", ctx, "SAVE10").Return(promo, nil).Once()

		got, err := cache.GetPromo(ctx, "SAVE10")
		assert.NoError(t, err)
		assert.Equal(t, promo, got)
		primary.AssertExpectations(t)
	})

	t.Run("PrimaryFailFallbackSuccess", func(t *testing.T) {
		promo := &models.PromoCode{ID: "p2", Code: "SAVE20", DiscountPercent: 20, Active: true}
		primary.On("GetPromo", ctx, "SAVE20").Return(nil, errors.New("fail")).Once()
		fallback.On("GetPromo", ctx, "SAVE20").Return(promo, nil).Once()

		got, err := cache.GetPromo(ctx, "SAVE20")
		assert.NoError(t, err)
		assert.Equal(t, promo, got)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("RecoveryAttempt", func(t *testing.T) {
		cache.isDown.Store(true)
		cache.lastCheck = time.Now().Add(-2 * time.Minute)

		promo := &models.PromoCode{ID: "p3", Code: "SAVE30", DiscountPercent: 30, Active: true}
		primary.On("GetPromo", ctx, "SAVE30").Return(promo, nil).Once()

		got, err := cache.GetPromo(ctx, "SAVE30")
		assert.NoError(t, err)
		assert.Equal(t, promo, got)
		assert.False(t, cache.isDown.Load())
		primary.AssertExpectations(t)
	})

	t.Run("RecoveryAttemptFail", func(t *testing.T) {
		cache.isDown.Store(true)
		cache.lastCheck = time.Now().Add(-2 * time.Minute)

		primary.On("GetPromo", ctx, "STILLDOWN").Return(nil, errors.New("still fail")).Once()
		fallback.On("GetPromo", ctx, "STILLDOWN").Return(nil, nil).Once()

		_, err := cache.GetPromo(ctx, "STILLDOWN")
		assert.NoError(t, err)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("SetPromoSuccess", func(t *testing.T) {
		cache.isDown.Store(false)
		promo := &models.PromoCode{ID: "p4", Code: "SET1", Active: true}
		primary.On("SetPromo", ctx, promo, time.Minute).Return(nil).Once()

		err := cache.SetPromo(ctx, promo, time.Minute)
		assert.NoError(t, err)
		primary.AssertExpectations(t)
	})

	t.Run("SetPromoFailover", func(t *testing.T) {
		cache.isDown.Store(false)
		promo := &models.PromoCode{ID: "p5", Code: "SET2", Active: true}
		primary.On("SetPromo", ctx, promo, time.Minute).Return(errors.New("fail")).Once()
		fallback.On("SetPromo", ctx, promo, time.Minute).Return(nil).Once()

		err := cache.SetPromo(ctx, promo, time.Minute)
		assert.NoError(t, err)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("InvalidateHitsBothLayers", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("InvalidatePromo", ctx, "GONE").Return(nil).Once()
		fallback.On("InvalidatePromo", ctx, "GONE").Return(nil).Once()

		err := cache.InvalidatePromo(ctx, "GONE")
		assert.NoError(t, err)
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("InvalidatePrimaryFail", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("InvalidatePromo", ctx, "STUCK").Return(errors.New("fail")).Once()
		fallback.On("InvalidatePromo", ctx, "STUCK").Return(nil).Once()

		err := cache.InvalidatePromo(ctx, "STUCK")
		assert.Error(t, err)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("CheckRateLimitSuccess", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("CheckRateLimit", ctx, "client-a", 10, time.Minute).Return(true, nil).Once()

		allowed, err := cache.CheckRateLimit(ctx, "client-a", 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		primary.AssertExpectations(t)
	})

	t.Run("CheckRateLimitFailover", func(t *testing.T) {
		cache.isDown.Store(false)
		primary.On("CheckRateLimit", ctx, "client-b", 10, time.Minute).Return(false, errors.New("fail")).Once()
		fallback.On("CheckRateLimit", ctx, "client-b", 10, time.Minute).Return(true, nil).Once()

		allowed, err := cache.CheckRateLimit(ctx, "client-b", 10, time.Minute)
		assert.NoError(t, err)
		assert.True(t, allowed)
		assert.True(t, cache.isDown.Load())
		primary.AssertExpectations(t)
		fallback.AssertExpectations(t)
	})

	t.Run("GetPromoAlreadyDown", func(t *testing.T) {
		cache.isDown.Store(true)
		cache.lastCheck = time.Now()
		fallback.On("GetPromo", ctx, "FALL").Return(nil, nil).Once()

		got, err := cache.GetPromo(ctx, "FALL")
		assert.NoError(t, err)
		assert.Nil(t, got)
		fallback.AssertExpectations(t)
	})
}
