package service

import (
	"context"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/workinghours"
)

type RestaurantRepository interface {
	CreateRestaurant(rest *domain.Restaurant) error
	ListRestaurants() ([]domain.Restaurant, error)
	GetRestaurant(id int) (*domain.Restaurant, error)
	UpdateRestaurant(rest *domain.Restaurant) error
	DeleteRestaurant(id int) (int64, error)
	UpdateRestaurantImage(id int, imageURL string) error
}

type MenuRepository interface {
	CreateMenuItem(item *domain.MenuItem) error
	ListMenuItems(restaurantID int) ([]domain.MenuItem, error)
	GetMenuItem(restaurantID, itemID int) (*domain.MenuItem, error)
	UpdateMenuItem(item *domain.MenuItem) error
	DeleteMenuItem(restaurantID, itemID int) (int64, error)
	UpdateMenuItemImage(restaurantID, itemID int, imageURL string) error
}

type DiscountRepository interface {
	CreateDiscount(d *domain.Discount) error
	ListDiscounts(restaurantID int) ([]domain.Discount, error)
	GetActiveDiscounts(menuItemIDs []int) (map[int]*domain.Discount, error)
	UpdateDiscount(d *domain.Discount) error
	DeleteDiscount(id int) (int64, error)
}

type OrderRepository interface {
	CreateOrder(order *domain.Order) error
	GetOrder(orderID int) (*domain.Order, []domain.OrderItem, error)
	ListOrders(restaurantID int) ([]domain.Order, error)
	UpdateOrderStatus(orderID int, status domain.OrderStatus) (int64, error)
	SaveQRCode(orderID int, qr []byte) error
	GetQRCode(orderID int) ([]byte, error)
}

type AnalyticsRepository interface {
	OrderStats(restaurantID int, since string) (int, float64, error)
	PopularItems(restaurantID, limit int) ([]domain.ItemAnalytics, error)
	OrderTrends(restaurantID, days int) ([]domain.TrendPoint, error)
}

type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type RestaurantServiceInterface interface {
	Create(rest *domain.Restaurant) error
	List() ([]domain.Restaurant, error)
	Get(id int) (*domain.Restaurant, error)
	Update(rest *domain.Restaurant) error
	Delete(id int) (int64, error)
	UpdateImage(id int, imageURL string) error
	PickupInfo(id int) (*PickupInfo, error)
}

type MenuServiceInterface interface {
	Create(item *domain.MenuItem) error
	List(restaurantID int) ([]domain.MenuItem, error)
	ListPriced(restaurantID int) ([]domain.PricedMenuItem, error)
	Get(restaurantID, itemID int) (*domain.MenuItem, error)
	Update(item *domain.MenuItem) error
	Delete(restaurantID, itemID int) (int64, error)
	UpdateImage(restaurantID, itemID int, imageURL string) error
}

type DiscountServiceInterface interface {
	Create(d *domain.Discount) error
	List(restaurantID int) ([]domain.Discount, error)
	Update(d *domain.Discount) error
	Delete(id int) (int64, error)
}

type OrderServiceInterface interface {
	Create(ctx context.Context, draft *OrderDraft) (*domain.Order, error)
	Get(orderID int) (*domain.Order, error)
	List(restaurantID int) ([]domain.Order, error)
	UpdateStatus(orderID int, status domain.OrderStatus) error
	GetQRCode(orderID int) ([]byte, error)
	QRLink(orderID int) string
}

type AnalyticsServiceInterface interface {
	Report(ctx context.Context, restaurantID int) (*domain.AnalyticsReport, error)
}

// PickupInfo is what the pickup-time selector needs to render itself.
type PickupInfo struct {
	Status   workinghours.OrderingStatus `json:"status"`
	Decision workinghours.OrderDecision  `json:"decision"`
	Slots    []workinghours.PickupSlot   `json:"slots"`
}
