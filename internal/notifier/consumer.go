package notifier

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/mailer"
	"github.com/twnk123/malca-time/internal/pricing"
)

type OrderStore interface {
	GetOrder(orderID int) (*domain.Order, []domain.OrderItem, error)
	GetActiveDiscounts(menuItemIDs []int) (map[int]*domain.Discount, error)
	GetRestaurant(id int) (*domain.Restaurant, error)
}

type AnalyticsRecorder interface {
	RecordOrderItem(ctx context.Context, restaurantID, menuItemID, quantity int, day string) error
}

type Consumer struct {
	Reader    *kafka.Reader
	Store     OrderStore
	Sender    mailer.Sender
	Analytics AnalyticsRecorder
	now       func() time.Time
}

func NewConsumer(reader *kafka.Reader, store OrderStore, sender mailer.Sender, analytics AnalyticsRecorder) *Consumer {
	return &Consumer{
		Reader:    reader,
		Store:     store,
		Sender:    sender,
		Analytics: analytics,
		now:       time.Now,
	}
}

func (c *Consumer) WithClock(now func() time.Time) *Consumer {
	c.now = now
	return c
}

func (c *Consumer) Start(ctx context.Context) {
	log.Println("Starting order notifier consumer...")
	for {
		message, err := c.Reader.ReadMessage(ctx)
		if err != nil {
			log.Printf("Error reading message: %v", err)
			continue
		}

		var event domain.OrderEvent
		if err := json.Unmarshal(message.Value, &event); err != nil {
			log.Printf("Error unmarshaling message: %v", err)
			continue
		}

		if event.Type == "order_created" {
			c.ProcessOrder(ctx, event)
		}
	}
}

func (c *Consumer) ProcessOrder(ctx context.Context, event domain.OrderEvent) {
	log.Printf("Processing order: OrderID=%d, RestaurantID=%d, Total=%.2f",
		event.OrderID, event.RestaurantID, event.Total)

	order, items, err := c.Store.GetOrder(event.OrderID)
	if err != nil {
		log.Printf("Error loading order %d: %v", event.OrderID, err)
		return
	}
	order.Items = items

	c.attachDiscounts(order)
	c.sendEmails(order)
	c.recordAnalytics(ctx, order)

	log.Printf("Successfully processed order %d", order.ID)
}

// attachDiscounts decorates order lines with the discount each item carried,
// so the email can show the struck-through original price. The stored unit
// price is already discounted; only applicable rules are attached.
func (c *Consumer) attachDiscounts(order *domain.Order) {
	ids := make([]int, 0, len(order.Items))
	for _, item := range order.Items {
		ids = append(ids, item.MenuItemID)
	}

	active, err := c.Store.GetActiveDiscounts(ids)
	if err != nil {
		log.Printf("Error loading discounts for order %d: %v", order.ID, err)
		return
	}

	now := c.now()
	for i := range order.Items {
		if discount := active[order.Items[i].MenuItemID]; pricing.Applies(discount, now) {
			order.Items[i].Discount = discount
		}
	}
}

func (c *Consumer) sendEmails(order *domain.Order) {
	if c.Sender == nil {
		return
	}

	if order.CustomerEmail != "" {
		subject, html := mailer.RenderCustomerEmail(order)
		if err := c.Sender.Send(order.CustomerEmail, subject, html); err != nil {
			log.Printf("Error sending customer email for order %d: %v", order.ID, err)
		}
	}

	rest, err := c.Store.GetRestaurant(order.RestaurantID)
	if err != nil {
		log.Printf("Error loading restaurant %d: %v", order.RestaurantID, err)
		return
	}
	if rest.Email != "" {
		subject, html := mailer.RenderRestaurantEmail(order)
		if err := c.Sender.Send(rest.Email, subject, html); err != nil {
			log.Printf("Error sending restaurant email for order %d: %v", order.ID, err)
		}
	}
}

func (c *Consumer) recordAnalytics(ctx context.Context, order *domain.Order) {
	if c.Analytics == nil {
		return
	}

	day := order.CreatedAt.Format("2006-01-02")
	for _, item := range order.Items {
		if err := c.Analytics.RecordOrderItem(ctx, order.RestaurantID, item.MenuItemID, item.Quantity, day); err != nil {
			log.Printf("Error recording analytics for order %d: %v", order.ID, err)
		}
	}
}
