package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/pricing"
	"github.com/twnk123/malca-time/internal/workinghours"
)

var (
	ErrRestaurantClosed   = errors.New("restaurant is not accepting orders")
	ErrInvalidPickupSlot  = errors.New("selected pickup time is not available")
	ErrEmptyOrder         = errors.New("order has no items")
	ErrUnknownMenuItem    = errors.New("menu item does not belong to this restaurant")
	ErrInvalidOrderStatus = errors.New("unknown order status")
	ErrOrderNotFound      = errors.New("order not found")
)

// OrderDraft is a validated checkout request. Unit prices and the total are
// never taken from the client; they are re-derived from the menu and the
// active discounts at creation time.
type OrderDraft struct {
	RestaurantID  int
	CustomerName  string
	CustomerEmail string
	PickupSlot    string
	Note          string
	Items         []OrderDraftItem
}

type OrderDraftItem struct {
	MenuItemID int
	Quantity   int
}

type OrderService struct {
	repo        OrderRepository
	restaurants RestaurantRepository
	menu        MenuRepository
	discounts   DiscountRepository
	publisher   OrderEventPublisher
	qrEncoder   QRGenerator
	now         func() time.Time
}

func NewOrderService(repo OrderRepository, restaurants RestaurantRepository, menu MenuRepository,
	discounts DiscountRepository, publisher OrderEventPublisher, qr QRGenerator) *OrderService {
	return &OrderService{
		repo:        repo,
		restaurants: restaurants,
		menu:        menu,
		discounts:   discounts,
		publisher:   publisher,
		qrEncoder:   qr,
		now:         time.Now,
	}
}

func (s *OrderService) WithClock(now func() time.Time) *OrderService {
	s.now = now
	return s
}

func (s *OrderService) Create(ctx context.Context, draft *OrderDraft) (*domain.Order, error) {
	if len(draft.Items) == 0 {
		return nil, ErrEmptyOrder
	}

	rest, err := s.restaurants.GetRestaurant(draft.RestaurantID)
	if err != nil {
		return nil, fmt.Errorf("load restaurant: %w", err)
	}

	schedule, err := workinghours.ParseSchedule(rest.OpensAt, rest.ClosesAt)
	if err != nil {
		return nil, fmt.Errorf("working hours: %w", err)
	}

	now := s.now()
	if decision := workinghours.CanOrder(schedule, now); !decision.Allowed {
		return nil, ErrRestaurantClosed
	}
	if !slotOffered(workinghours.AvailablePickupSlots(schedule, now), draft.PickupSlot) {
		return nil, ErrInvalidPickupSlot
	}

	pickupAt, err := workinghours.SlotTimestamp(draft.PickupSlot, now)
	if err != nil {
		return nil, ErrInvalidPickupSlot
	}

	lines, err := s.buildLines(draft, now)
	if err != nil {
		return nil, err
	}
	total := pricing.OrderTotal(lines, now)

	// Persist the discounted per-unit price: the order keeps the price the
	// customer saw even if the discount is later edited or removed.
	for i := range lines {
		lines[i].UnitPrice = pricing.EffectivePrice(lines[i].UnitPrice, lines[i].Discount, now)
	}

	order := &domain.Order{
		Reference:     uuid.NewString(),
		RestaurantID:  draft.RestaurantID,
		CustomerName:  draft.CustomerName,
		CustomerEmail: draft.CustomerEmail,
		PickupAt:      pickupAt,
		TotalAmount:   total,
		Status:        domain.OrderStatusNew,
		Note:          draft.Note,
		Items:         lines,
	}

	if err := s.repo.CreateOrder(order); err != nil {
		return nil, err
	}
	order.RestaurantName = rest.Name

	if s.qrEncoder != nil {
		if qr, err := s.qrEncoder.Generate(order.Reference); err == nil {
			_ = s.repo.SaveQRCode(order.ID, qr)
		}
	}

	if s.publisher != nil {
		_ = s.publisher.PublishOrderEvent(ctx, domain.OrderEvent{
			Type:         "order_created",
			OrderID:      order.ID,
			RestaurantID: order.RestaurantID,
			Total:        order.TotalAmount,
			Timestamp:    now,
		})
	}

	return order, nil
}

// buildLines resolves draft items against the stored menu. Lines carry the
// base unit price plus the applicable discount; the pricing engine applies
// the discount when totalling. Discount applicability is judged at now, the
// same instant the caller uses for the order total.
func (s *OrderService) buildLines(draft *OrderDraft, now time.Time) ([]domain.OrderItem, error) {
	ids := make([]int, 0, len(draft.Items))
	for _, item := range draft.Items {
		ids = append(ids, item.MenuItemID)
	}
	active, err := s.discounts.GetActiveDiscounts(ids)
	if err != nil {
		return nil, fmt.Errorf("load discounts: %w", err)
	}

	lines := make([]domain.OrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		menuItem, err := s.menu.GetMenuItem(draft.RestaurantID, item.MenuItemID)
		if err != nil {
			return nil, ErrUnknownMenuItem
		}

		line := domain.OrderItem{
			MenuItemID: menuItem.ID,
			ItemName:   menuItem.Name,
			Quantity:   item.Quantity,
			UnitPrice:  menuItem.Price,
		}
		if discount := active[menuItem.ID]; pricing.Applies(discount, now) {
			line.Discount = discount
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func slotOffered(slots []workinghours.PickupSlot, label string) bool {
	for _, slot := range slots {
		if slot.Time == label && slot.IsAvailable {
			return true
		}
	}
	return false
}

func (s *OrderService) Get(orderID int) (*domain.Order, error) {
	order, items, err := s.repo.GetOrder(orderID)
	if err != nil {
		return nil, err
	}
	order.Items = items
	return order, nil
}

func (s *OrderService) List(restaurantID int) ([]domain.Order, error) {
	return s.repo.ListOrders(restaurantID)
}

func (s *OrderService) UpdateStatus(orderID int, status domain.OrderStatus) error {
	switch status {
	case domain.OrderStatusNew, domain.OrderStatusAccepted, domain.OrderStatusPreparing,
		domain.OrderStatusReady, domain.OrderStatusPickedUp:
	default:
		return ErrInvalidOrderStatus
	}

	rows, err := s.repo.UpdateOrderStatus(orderID, status)
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *OrderService) GetQRCode(orderID int) ([]byte, error) {
	qr, err := s.repo.GetQRCode(orderID)
	if err != nil {
		return nil, err
	}
	if len(qr) == 0 && s.qrEncoder != nil {
		order, _, err := s.repo.GetOrder(orderID)
		if err != nil {
			return nil, err
		}
		if regenerated, err := s.qrEncoder.Generate(order.Reference); err == nil {
			_ = s.repo.SaveQRCode(orderID, regenerated)
			return regenerated, nil
		}
	}
	return qr, nil
}

func (s *OrderService) QRLink(orderID int) string {
	return fmt.Sprintf("/api/orders/%d/qrcode", orderID)
}

var _ OrderServiceInterface = (*OrderService)(nil)
