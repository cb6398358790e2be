package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/twnk123/malca-time/internal/domain"
)

var evalTime = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func percentage(amount float64) *domain.Discount {
	return &domain.Discount{Kind: domain.DiscountPercentage, Amount: amount, Active: true}
}

func fixed(amount float64) *domain.Discount {
	return &domain.Discount{Kind: domain.DiscountFixedAmount, Amount: amount, Active: true}
}

func TestEffectivePrice(t *testing.T) {
	past := evalTime.Add(-24 * time.Hour)
	future := evalTime.Add(24 * time.Hour)

	tests := []struct {
		name     string
		base     float64
		discount *domain.Discount
		want     float64
	}{
		{name: "no discount", base: 12.50, discount: nil, want: 12.50},
		{name: "20 percent off", base: 12.50, discount: percentage(20), want: 10.00},
		{name: "fixed amount off", base: 12.50, discount: fixed(2.50), want: 10.00},
		{name: "inactive rule ignored", base: 12.50,
			discount: &domain.Discount{Kind: domain.DiscountPercentage, Amount: 20, Active: false}, want: 12.50},
		{name: "fixed discount larger than price clamps to zero", base: 5.00, discount: fixed(7.00), want: 0},
		{name: "percentage over 100 clamps to zero", base: 10.00, discount: percentage(150), want: 0},
		{name: "100 percent gives zero", base: 10.00, discount: percentage(100), want: 0},
		{name: "not yet valid", base: 12.50,
			discount: &domain.Discount{Kind: domain.DiscountPercentage, Amount: 20, Active: true, ValidFrom: &future}, want: 12.50},
		{name: "already expired", base: 12.50,
			discount: &domain.Discount{Kind: domain.DiscountPercentage, Amount: 20, Active: true, ValidUntil: &past}, want: 12.50},
		{name: "inside validity window", base: 12.50,
			discount: &domain.Discount{Kind: domain.DiscountPercentage, Amount: 20, Active: true, ValidFrom: &past, ValidUntil: &future}, want: 10.00},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			got := EffectivePrice(testCase.base, testCase.discount, evalTime)
			assert.InDelta(t, testCase.want, got, 1e-9)
		})
	}
}

func TestOriginalPrice(t *testing.T) {
	original, ok := OriginalPrice(10.00, percentage(20))
	require.True(t, ok)
	assert.InDelta(t, 12.50, original, 1e-9)

	original, ok = OriginalPrice(10.00, fixed(2.50))
	require.True(t, ok)
	assert.InDelta(t, 12.50, original, 1e-9)

	// A full percentage discount cannot be inverted; no Inf, no panic.
	original, ok = OriginalPrice(0, percentage(100))
	assert.False(t, ok)
	assert.Equal(t, 0.0, original)

	original, ok = OriginalPrice(9.90, nil)
	require.True(t, ok)
	assert.Equal(t, 9.90, original)
}

// Reconstructing the original from the effective price round-trips for any
// invertible rule.
func TestReconstructionRoundTrip(t *testing.T) {
	bases := []float64{0.01, 1, 3.33, 12.50, 99.99, 250}
	rules := []*domain.Discount{
		percentage(5), percentage(20), percentage(33), percentage(99),
		fixed(0.5), fixed(1), fixed(2.49),
	}

	for _, base := range bases {
		for _, rule := range rules {
			effective := EffectivePrice(base, rule, evalTime)
			if effective == 0 {
				continue // floor hit, information lost
			}
			original, ok := OriginalPrice(effective, rule)
			require.True(t, ok)
			assert.InDelta(t, base, original, 1e-9)
		}
	}
}

func TestLineTotal(t *testing.T) {
	line := domain.OrderItem{UnitPrice: 12.50, Quantity: 3, Discount: percentage(20)}
	assert.InDelta(t, 30.00, LineTotal(line, evalTime), 1e-9)

	plain := domain.OrderItem{UnitPrice: 4.20, Quantity: 2}
	assert.InDelta(t, 8.40, LineTotal(plain, evalTime), 1e-9)
}

func TestOrderTotalAdditivity(t *testing.T) {
	lineA := domain.OrderItem{UnitPrice: 12.50, Quantity: 2, Discount: percentage(20)}
	lineB := domain.OrderItem{UnitPrice: 7.90, Quantity: 1, Discount: fixed(1.40)}
	lineC := domain.OrderItem{UnitPrice: 3.30, Quantity: 4}

	combined := OrderTotal([]domain.OrderItem{lineA, lineB, lineC}, evalTime)
	separate := OrderTotal([]domain.OrderItem{lineA}, evalTime) +
		OrderTotal([]domain.OrderItem{lineB}, evalTime) +
		OrderTotal([]domain.OrderItem{lineC}, evalTime)

	assert.InDelta(t, separate, combined, 1e-9)
	assert.InDelta(t, 2*10.00+6.50+4*3.30, combined, 1e-9)
}

func TestOrderTotalEmpty(t *testing.T) {
	assert.Equal(t, 0.0, OrderTotal(nil, evalTime))
}
