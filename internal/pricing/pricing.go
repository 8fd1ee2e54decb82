// Package pricing computes booking totals in integer currency units.
package pricing

// Quote is the result of a price computation. All amounts are in the
// smallest currency unit.
type Quote struct {
	Subtotal       int64 `json:"subtotal"`
	DiscountAmount int64 `json:"discount_amount"`
	FinalPrice     int64 `json:"final_price"`
}

// ComputeTotal derives subtotal, discount amount and final price from a unit
// price, a quantity and a discount percent in [0,100].
//
// The discount is rounded to the nearest currency unit; exact .5 ties round
// half away from zero. Subtotals are non-negative here, so this reduces to
// rounding half up, matching what the storefront displays.
//
// Pure function. Callers must reject negative prices and non-positive
// quantities before calling.
func ComputeTotal(unitPrice, quantity int64, discountPercent int) Quote {
	subtotal := unitPrice * quantity
	discount := roundPercent(subtotal, int64(discountPercent))
	return Quote{
		Subtotal:       subtotal,
		DiscountAmount: discount,
		FinalPrice:     subtotal - discount,
	}
}

// roundPercent returns round(subtotal * percent / 100) with ties away from
// zero, in pure integer arithmetic.
func roundPercent(subtotal, percent int64) int64 {
	product := subtotal * percent
	if product >= 0 {
		return (product + 50) / 100
	}
	return (product - 50) / 100
}
