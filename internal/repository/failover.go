package repository

import (
	"context"
	"sync/atomic"
	"time"

	"ammarstationary/internal/domain"
	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
)

// FailoverPromoCache prefers the primary cache and falls back to the
// in-memory one when the primary errors. Recovery is retried once a minute.
type FailoverPromoCache struct {
	primary   domain.PromoCache
	fallback  domain.PromoCache
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck time.Time
}

func NewFailoverPromoCache(primary, fallback domain.PromoCache, logger *zerolog.Logger) *FailoverPromoCache {
	return &FailoverPromoCache{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

func (r *FailoverPromoCache) markDown(err error) {
	r.logger.Error().Err(err).Msg("Primary promo cache failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck = time.Now()
}

func (r *FailoverPromoCache) GetPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	if !r.isDown.Load() {
		promo, err := r.primary.GetPromo(ctx, code)
		if err == nil {
			return promo, nil
		}
		r.markDown(err)
	}

	// Try to recover after 1 minute
	if r.isDown.Load() && time.Since(r.lastCheck) > time.Minute {
		promo, err := r.primary.GetPromo(ctx, code)
		if err == nil {
			r.isDown.Store(false)
			return promo, nil
		}
		r.lastCheck = time.Now()
	}

	return r.fallback.GetPromo(ctx, code)
}

func (r *FailoverPromoCache) SetPromo(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error {
	if !r.isDown.Load() {
		err := r.primary.SetPromo(ctx, promo, ttl)
		if err == nil {
			return nil
		}
		r.markDown(err)
	}

	return r.fallback.SetPromo(ctx, promo, ttl)
}

func (r *FailoverPromoCache) InvalidatePromo(ctx context.Context, code string) error {
	var primaryErr error
	if !r.isDown.Load() {
		primaryErr = r.primary.InvalidatePromo(ctx, code)
		if primaryErr != nil {
			r.markDown(primaryErr)
		}
	}

	// Invalidation must reach both layers or stale promos survive failover.
	if err := r.fallback.InvalidatePromo(ctx, code); err != nil {
		return err
	}
	return primaryErr
}

func (r *FailoverPromoCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if !r.isDown.Load() {
		allowed, err := r.primary.CheckRateLimit(ctx, key, limit, window)
		if err == nil {
			return allowed, nil
		}
		r.markDown(err)
	}

	return r.fallback.CheckRateLimit(ctx, key, limit, window)
}
