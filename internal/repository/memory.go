package repository

import (
	"context"
	"sync"
	"time"

	"ammarstationary/internal/models"
)

type MemoryPromoCache struct {
	promos     sync.Map
	rateLimits sync.Map
	ttl        time.Duration
}

type promoEntry struct {
	promo     *models.PromoCode
	expiresAt time.Time
}

func NewMemoryPromoCache(ttl time.Duration) *MemoryPromoCache {
	return &MemoryPromoCache{
		ttl: ttl,
	}
}

func (r *MemoryPromoCache) GetPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	val, ok := r.promos.Load(code)
	if !ok {
		return nil, nil
	}
	entry := val.(*promoEntry)
	if time.Now().After(entry.expiresAt) {
		r.promos.Delete(code)
		return nil, nil
	}
	return entry.promo, nil
}

func (r *MemoryPromoCache) SetPromo(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = r.ttl
	}
	r.promos.Store(promo.Code, &promoEntry{promo: promo, expiresAt: time.Now().Add(ttl)})
	return nil
}

func (r *MemoryPromoCache) InvalidatePromo(ctx context.Context, code string) error {
	r.promos.Delete(code)
	return nil
}

type rateLimitEntry struct {
	count     int
	expiresAt time.Time
}

func (r *MemoryPromoCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	now := time.Now()
	val, ok := r.rateLimits.Load(key)

	var entry *rateLimitEntry
	if !ok {
		entry = &rateLimitEntry{
			count:     1,
			expiresAt: now.Add(window),
		}
	} else {
		entry = val.(*rateLimitEntry)
		if now.After(entry.expiresAt) {
			entry.count = 1
			entry.expiresAt = now.Add(window)
		} else {
			entry.count++
		}
	}

	r.rateLimits.Store(key, entry)
	return entry.count <= limit, nil
}
