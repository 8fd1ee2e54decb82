package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"ammarstationary/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	logger := zerolog.Nop()
	db, err := NewDB(filepath.Join(t.TempDir(), "test.db"), &logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreatePromoCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: "  save10 ", DiscountPercent: 10})
	require.NoError(t, err)
	assert.NotEmpty(t, promo.ID)
	assert.Equal(t, "SAVE10", promo.Code)
	assert.True(t, promo.Active)
	assert.Nil(t, promo.UsageLimit)
	assert.Zero(t, promo.UsageCount)

	t.Run("DuplicateCode", func(t *testing.T) {
		_, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: "save10", DiscountPercent: 5})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("LookupByCode", func(t *testing.T) {
		got, err := db.GetPromoCodeByCode(ctx, "SAVE10")
		require.NoError(t, err)
		assert.Equal(t, promo.ID, got.ID)
	})

	t.Run("LookupUnknown", func(t *testing.T) {
		_, err := db.GetPromoCodeByCode(ctx, "MISSING")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestUpdatePromoCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	limit := int64(5)
	expires := time.Now().Add(24 * time.Hour)
	promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{
		Code: "SPRING", DiscountPercent: 15, UsageLimit: &limit, ExpiresAt: &expires,
	})
	require.NoError(t, err)

	t.Run("PartialUpdate", func(t *testing.T) {
		percent := 20
		got, err := db.UpdatePromoCode(ctx, promo.ID, &models.PromoCodeUpdate{DiscountPercent: &percent})
		require.NoError(t, err)
		assert.Equal(t, 20, got.DiscountPercent)
		assert.Equal(t, "SPRING", got.Code)
		require.NotNil(t, got.UsageLimit)
		assert.Equal(t, int64(5), *got.UsageLimit)
	})

	t.Run("ClearFields", func(t *testing.T) {
		got, err := db.UpdatePromoCode(ctx, promo.ID, &models.PromoCodeUpdate{
			ClearUsageLimit: true,
			ClearExpiresAt:  true,
		})
		require.NoError(t, err)
		assert.Nil(t, got.UsageLimit)
		assert.Nil(t, got.ExpiresAt)
	})

	t.Run("RenameToExistingCode", func(t *testing.T) {
		_, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: "TAKEN", DiscountPercent: 5})
		require.NoError(t, err)
		taken := "taken"
		_, err = db.UpdatePromoCode(ctx, promo.ID, &models.PromoCodeUpdate{Code: &taken})
		assert.ErrorIs(t, err, ErrDuplicateCode)
	})

	t.Run("UnknownID", func(t *testing.T) {
		percent := 10
		_, err := db.UpdatePromoCode(ctx, "missing", &models.PromoCodeUpdate{DiscountPercent: &percent})
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestTogglePromoCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: "FLIP", DiscountPercent: 10})
	require.NoError(t, err)

	got, err := db.TogglePromoCode(ctx, promo.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	got, err = db.TogglePromoCode(ctx, promo.ID)
	require.NoError(t, err)
	assert.True(t, got.Active)

	_, err = db.TogglePromoCode(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedeemPromoCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	now := time.Now()

	t.Run("IncrementsUsage", func(t *testing.T) {
		promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: "USEME", DiscountPercent: 10})
		require.NoError(t, err)

		require.NoError(t, db.RedeemPromoCode(ctx, promo.ID, now))

		got, err := db.GetPromoCode(ctx, promo.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.UsageCount)
	})

	t.Run("LimitExhaustion", func(t *testing.T) {
		limit := int64(2)
		promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{
			Code: "TWICE", DiscountPercent: 10, UsageLimit: &limit,
		})
		require.NoError(t, err)

		require.NoError(t, db.RedeemPromoCode(ctx, promo.ID, now))
		require.NoError(t, db.RedeemPromoCode(ctx, promo.ID, now))

		err = db.RedeemPromoCode(ctx, promo.ID, now)
		assert.ErrorIs(t, err, ErrPromoNotUsable)

		got, err := db.GetPromoCode(ctx, promo.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.UsageCount)
	})

	t.Run("InactiveCode", func(t *testing.T) {
		inactive := false
		promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{
			Code: "OFF", DiscountPercent: 10, Active: &inactive,
		})
		require.NoError(t, err)

		err = db.RedeemPromoCode(ctx, promo.ID, now)
		assert.ErrorIs(t, err, ErrPromoNotUsable)
	})

	t.Run("ExpiredCode", func(t *testing.T) {
		past := now.Add(-time.Hour)
		promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{
			Code: "OLD", DiscountPercent: 10, ExpiresAt: &past,
		})
		require.NoError(t, err)

		err = db.RedeemPromoCode(ctx, promo.ID, now)
		assert.ErrorIs(t, err, ErrPromoNotUsable)
	})

	t.Run("UnknownID", func(t *testing.T) {
		err := db.RedeemPromoCode(ctx, "missing", now)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

// Concurrent redeems of a code with one remaining use: exactly one may win.
func TestRedeemPromoCodeConcurrent(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	limit := int64(1)
	promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{
		Code: "LASTONE", DiscountPercent: 10, UsageLimit: &limit,
	})
	require.NoError(t, err)

	const attempts = 10
	results := make(chan error, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			results <- db.RedeemPromoCode(ctx, promo.ID, time.Now())
		}()
	}

	wins := 0
	for i := 0; i < attempts; i++ {
		if err := <-results; err == nil {
			wins++
		} else if !errors.Is(err, ErrPromoNotUsable) {
			t.Fatalf("unexpected redeem error: %v", err)
		}
	}
	assert.Equal(t, 1, wins)

	got, err := db.GetPromoCode(ctx, promo.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.UsageCount)
}

func TestListPromoCodes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	for _, code := range []string{"A1", "B2", "C3"} {
		_, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: code, DiscountPercent: 10})
		require.NoError(t, err)
	}

	promos, err := db.ListPromoCodes(ctx)
	require.NoError(t, err)
	assert.Len(t, promos, 3)
}

func TestDeletePromoCode(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	promo, err := db.CreatePromoCode(ctx, &models.PromoCodeInsert{Code: "GONE", DiscountPercent: 10})
	require.NoError(t, err)

	require.NoError(t, db.DeletePromoCode(ctx, promo.ID))
	assert.ErrorIs(t, db.DeletePromoCode(ctx, promo.ID), ErrNotFound)

	_, err = db.GetPromoCode(ctx, promo.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
