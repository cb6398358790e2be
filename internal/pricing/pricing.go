// Package pricing computes effective unit prices, line totals and order
// totals. The same functions back the menu display, the cart, checkout and
// the confirmation email, so a discount is applied identically everywhere.
package pricing

import (
	"time"

	"github.com/twnk123/malca-time/internal/domain"
)

// Applies reports whether the discount is in effect at the given instant.
// Inactive rules and rules outside their validity window never apply, even
// when a caller forgot to pre-filter them.
func Applies(d *domain.Discount, at time.Time) bool {
	if d == nil || !d.Active {
		return false
	}
	if d.ValidFrom != nil && at.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && at.After(*d.ValidUntil) {
		return false
	}
	return true
}

// EffectivePrice returns the unit price after applying the discount, clamped
// at zero. The result is not rounded; callers format to 2 decimal places at
// display and persistence boundaries.
func EffectivePrice(basePrice float64, d *domain.Discount, at time.Time) float64 {
	if !Applies(d, at) {
		return basePrice
	}

	var price float64
	switch d.Kind {
	case domain.DiscountPercentage:
		price = basePrice * (1 - d.Amount/100)
	case domain.DiscountFixedAmount:
		price = basePrice - d.Amount
	default:
		return basePrice
	}

	if price < 0 {
		return 0
	}
	return price
}

// OriginalPrice reconstructs the pre-discount unit price from an already
// discounted one, for struck-through "was" displays. A 100% (or greater)
// percentage discount is not invertible; the second return value is false
// and the discounted price is handed back unchanged.
func OriginalPrice(discountedPrice float64, d *domain.Discount) (float64, bool) {
	if d == nil {
		return discountedPrice, true
	}
	switch d.Kind {
	case domain.DiscountPercentage:
		if d.Amount >= 100 {
			return discountedPrice, false
		}
		return discountedPrice / (1 - d.Amount/100), true
	case domain.DiscountFixedAmount:
		return discountedPrice + d.Amount, true
	}
	return discountedPrice, true
}

// LineTotal is quantity times the effective unit price of the line.
func LineTotal(line domain.OrderItem, at time.Time) float64 {
	return float64(line.Quantity) * EffectivePrice(line.UnitPrice, line.Discount, at)
}

// OrderTotal sums raw line totals. Rounding happens only on the final
// displayed amount, never per line, so rounding error does not compound.
func OrderTotal(lines []domain.OrderItem, at time.Time) float64 {
	var total float64
	for _, line := range lines {
		total += LineTotal(line, at)
	}
	return total
}
