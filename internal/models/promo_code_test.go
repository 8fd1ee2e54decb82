package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePromoCode(t *testing.T) {
	assert.Equal(t, "SAVE10", NormalizePromoCode("  save10  "))
	assert.Equal(t, "SAVE10", NormalizePromoCode("Save10"))
	assert.Equal(t, "", NormalizePromoCode("   "))
	assert.Equal(t, "", NormalizePromoCode(""))
}

func TestPromoCodeIsUsable(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)
	limit := int64(5)

	t.Run("ActiveNoConstraints", func(t *testing.T) {
		p := &PromoCode{Active: true}
		assert.True(t, p.IsUsable(now))
	})

	t.Run("Inactive", func(t *testing.T) {
		p := &PromoCode{Active: false}
		assert.False(t, p.IsUsable(now))
	})

	t.Run("ExpiryBoundary", func(t *testing.T) {
		p := &PromoCode{Active: true, ExpiresAt: &future}
		assert.True(t, p.IsUsable(now))

		p.ExpiresAt = &past
		assert.False(t, p.IsUsable(now))

		// expires_at equal to now is already expired
		exact := now
		p.ExpiresAt = &exact
		assert.False(t, p.IsUsable(now))
	})

	t.Run("UsageLimitBoundary", func(t *testing.T) {
		p := &PromoCode{Active: true, UsageLimit: &limit, UsageCount: 4}
		assert.True(t, p.IsUsable(now))

		p.UsageCount = 5
		assert.False(t, p.IsUsable(now))

		p.UsageCount = 6
		assert.False(t, p.IsUsable(now))
	})

	t.Run("NilLimitIsUnlimited", func(t *testing.T) {
		p := &PromoCode{Active: true, UsageCount: 1 << 30}
		assert.True(t, p.IsUsable(now))
	})
}

// The admin label resolves one reason at a time: inactive wins over expired,
// expired wins over limit-reached.
func TestPromoCodeDisplayStatus(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	limit := int64(1)

	cases := []struct {
		name  string
		promo PromoCode
		want  string
	}{
		{"Active", PromoCode{Active: true}, PromoStatusActive},
		{"Inactive", PromoCode{Active: false}, PromoStatusInactive},
		{"Expired", PromoCode{Active: true, ExpiresAt: &past}, PromoStatusExpired},
		{"LimitReached", PromoCode{Active: true, UsageLimit: &limit, UsageCount: 1}, PromoStatusLimitReached},
		{"InactiveMasksExpired", PromoCode{Active: false, ExpiresAt: &past}, PromoStatusInactive},
		{"ExpiredMasksLimit", PromoCode{Active: true, ExpiresAt: &past, UsageLimit: &limit, UsageCount: 1}, PromoStatusExpired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.promo.DisplayStatus(now))
		})
	}
}

func TestPromoCodeInsertValidate(t *testing.T) {
	valid := PromoCodeInsert{Code: "SAVE10", DiscountPercent: 10}
	assert.NoError(t, valid.Validate())

	t.Run("BlankCode", func(t *testing.T) {
		in := PromoCodeInsert{Code: "  ", DiscountPercent: 10}
		assert.Error(t, in.Validate())
	})

	t.Run("DiscountRange", func(t *testing.T) {
		for _, percent := range []int{0, -1, 101} {
			in := PromoCodeInsert{Code: "X", DiscountPercent: percent}
			assert.Error(t, in.Validate(), "percent %d", percent)
		}
		for _, percent := range []int{1, 100} {
			in := PromoCodeInsert{Code: "X", DiscountPercent: percent}
			assert.NoError(t, in.Validate(), "percent %d", percent)
		}
	})

	t.Run("UsageLimit", func(t *testing.T) {
		zero := int64(0)
		in := PromoCodeInsert{Code: "X", DiscountPercent: 10, UsageLimit: &zero}
		assert.Error(t, in.Validate())
	})
}

func TestBookingRequestInsertValidate(t *testing.T) {
	valid := BookingRequestInsert{
		CardName: "Charizard Holo", CardPrice: 45000,
		FullName: "Dana Ortiz", Phone: "+15550101", Email: "dana@example.com",
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*BookingRequestInsert)
	}{
		{"MissingFullName", func(in *BookingRequestInsert) { in.FullName = " " }},
		{"MissingPhone", func(in *BookingRequestInsert) { in.Phone = "" }},
		{"MissingEmail", func(in *BookingRequestInsert) { in.Email = "" }},
		{"MissingCardName", func(in *BookingRequestInsert) { in.CardName = "" }},
		{"NegativePrice", func(in *BookingRequestInsert) { in.CardPrice = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			var verr *ValidationError
			assert.ErrorAs(t, in.Validate(), &verr)
		})
	}
}

func TestBookingRequestInsertNormalize(t *testing.T) {
	for _, q := range []int64{-5, 0} {
		in := BookingRequestInsert{Quantity: q}
		in.Normalize()
		assert.Equal(t, int64(1), in.Quantity)
	}

	in := BookingRequestInsert{Quantity: 3}
	in.Normalize()
	assert.Equal(t, int64(3), in.Quantity)
}
