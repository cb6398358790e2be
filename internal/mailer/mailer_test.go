package mailer

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/twnk123/malca-time/internal/domain"
)

func testOrder() *domain.Order {
	return &domain.Order{
		ID:             42,
		Reference:      "3f2b8a90-1c4d-4e5f-9a6b-7c8d9e0f1234",
		RestaurantID:   1,
		RestaurantName: "Malca",
		CustomerName:   "Ana",
		CustomerEmail:  "ana@example.com",
		PickupAt:       time.Date(2024, 1, 15, 13, 0, 0, 0, time.UTC),
		TotalAmount:    20.00,
		Status:         domain.OrderStatusNew,
		CreatedAt:      time.Date(2024, 1, 15, 12, 1, 0, 0, time.UTC),
		Items: []domain.OrderItem{
			{MenuItemID: 10, ItemName: "Golaž", Quantity: 2, UnitPrice: 10.00},
		},
	}
}

func TestShortRef(t *testing.T) {
	assert.Equal(t, "0f1234", shortRef("3f2b8a90-1c4d-4e5f-9a6b-7c8d9e0f1234"))
	assert.Equal(t, "abc", shortRef("abc"))
}

func TestRenderCustomerEmail(t *testing.T) {
	subject, html := RenderCustomerEmail(testOrder())

	assert.Equal(t, "Order confirmation #0f1234", subject)
	assert.Contains(t, html, "Hello Ana")
	assert.Contains(t, html, "Malca")
	assert.Contains(t, html, "2x Golaž")
	assert.Contains(t, html, "Total: 20.00€")
	assert.Contains(t, html, "15.01.2024 13:00")
	assert.NotContains(t, html, "Note:")
}

func TestRenderCustomerEmailWithNote(t *testing.T) {
	order := testOrder()
	order.Note = "brez čebule"

	_, html := RenderCustomerEmail(order)
	assert.Contains(t, html, "Note:")
	assert.Contains(t, html, "brez čebule")
}

func TestRenderRestaurantEmail(t *testing.T) {
	subject, html := RenderRestaurantEmail(testOrder())

	assert.Equal(t, "New order #0f1234 - Malca", subject)
	assert.Contains(t, html, "Ana (ana@example.com)")
	assert.Contains(t, html, "2x Golaž")
}

func TestRenderLineShowsOriginalPrice(t *testing.T) {
	// Stored unit price is the discounted one; the rendered line reconstructs
	// the pre-discount price from the attached rule.
	line := domain.OrderItem{
		MenuItemID: 10,
		ItemName:   "Golaž",
		Quantity:   2,
		UnitPrice:  10.00,
		Discount:   &domain.Discount{Kind: domain.DiscountPercentage, Amount: 20, Active: true},
	}

	html := renderLineHTML(line)
	assert.Contains(t, html, "25.00€") // 2 × 12.50 struck through
	assert.Contains(t, html, "-20%")
	assert.Contains(t, html, "<strong>20.00€</strong>")
}

func TestRenderLineFixedAmountBadge(t *testing.T) {
	line := domain.OrderItem{
		ItemName:  "Burek",
		Quantity:  1,
		UnitPrice: 2.50,
		Discount:  &domain.Discount{Kind: domain.DiscountFixedAmount, Amount: 0.50, Active: true},
	}

	html := renderLineHTML(line)
	assert.Contains(t, html, "3.00€")
	assert.Contains(t, html, "-0.50€")
}

func TestRenderLineFullDiscountNotReconstructed(t *testing.T) {
	// A 100% discount cannot be inverted, so the line shows only the paid price.
	line := domain.OrderItem{
		ItemName:  "Kava",
		Quantity:  1,
		UnitPrice: 0,
		Discount:  &domain.Discount{Kind: domain.DiscountPercentage, Amount: 100, Active: true},
	}

	html := renderLineHTML(line)
	assert.NotContains(t, html, "line-through")
	assert.Contains(t, html, "0.00€")
}
