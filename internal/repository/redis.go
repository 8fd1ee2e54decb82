package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ammarstationary/internal/config"
	"ammarstationary/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisPromoCache stores promo code snapshots for a short TTL so repeated
// checkout validations of the same code do not hit the database. Cached
// entries are advisory only: redemption always runs against the database.
type RedisPromoCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient creates a Redis client from the configuration.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	options := &redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	}

	return redis.NewClient(options)
}

func NewRedisPromoCache(client *redis.Client, ttl time.Duration) *RedisPromoCache {
	return &RedisPromoCache{
		client: client,
		ttl:    ttl,
	}
}

func promoKey(code string) string {
	return fmt.Sprintf("promo:%s", code)
}

func (r *RedisPromoCache) GetPromo(ctx context.Context, code string) (*models.PromoCode, error) {
	if r.client == nil {
		return nil, fmt.Errorf("redis client is nil")
	}
	val, err := r.client.Get(ctx, promoKey(code)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get promo from redis: %w", err)
	}

	var promo models.PromoCode
	if err := json.Unmarshal([]byte(val), &promo); err != nil {
		return nil, fmt.Errorf("failed to unmarshal promo: %w", err)
	}

	return &promo, nil
}

func (r *RedisPromoCache) SetPromo(ctx context.Context, promo *models.PromoCode, ttl time.Duration) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if ttl <= 0 {
		ttl = r.ttl
	}
	data, err := json.Marshal(promo)
	if err != nil {
		return fmt.Errorf("failed to marshal promo: %w", err)
	}

	if err := r.client.Set(ctx, promoKey(promo.Code), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set promo in redis: %w", err)
	}

	return nil
}

func (r *RedisPromoCache) InvalidatePromo(ctx context.Context, code string) error {
	if r.client == nil {
		return fmt.Errorf("redis client is nil")
	}
	if err := r.client.Del(ctx, promoKey(code)).Err(); err != nil {
		return fmt.Errorf("failed to delete promo from redis: %w", err)
	}
	return nil
}

func (r *RedisPromoCache) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	if r.client == nil {
		return false, fmt.Errorf("redis client is nil")
	}
	rlKey := fmt.Sprintf("rate_limit:%s", key)
	count, err := r.client.Incr(ctx, rlKey).Result()
	if err != nil {
		return false, fmt.Errorf("failed to increment rate limit: %w", err)
	}

	if count == 1 {
		r.client.Expire(ctx, rlKey, window)
	}

	return count <= int64(limit), nil
}

// Ping verifies the Redis connection.
func Ping(ctx context.Context, client *redis.Client) error {
	_, err := client.Ping(ctx).Result()
	if err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}
	return nil
}

// Close closes the Redis connection.
func Close(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}
	return nil
}
