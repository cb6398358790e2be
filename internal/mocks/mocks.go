package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/twnk123/malca-time/internal/domain"
)

type RestaurantRepository struct {
	mock.Mock
}

func (m *RestaurantRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) ListRestaurants() ([]domain.Restaurant, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	return m.Called(rest).Error(0)
}

func (m *RestaurantRepository) DeleteRestaurant(id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *RestaurantRepository) UpdateRestaurantImage(id int, imageURL string) error {
	return m.Called(id, imageURL).Error(0)
}

type MenuRepository struct {
	mock.Mock
}

func (m *MenuRepository) CreateMenuItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *MenuRepository) ListMenuItems(restaurantID int) ([]domain.MenuItem, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.MenuItem), args.Error(1)
}

func (m *MenuRepository) GetMenuItem(restaurantID, itemID int) (*domain.MenuItem, error) {
	args := m.Called(restaurantID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MenuItem), args.Error(1)
}

func (m *MenuRepository) UpdateMenuItem(item *domain.MenuItem) error {
	return m.Called(item).Error(0)
}

func (m *MenuRepository) DeleteMenuItem(restaurantID, itemID int) (int64, error) {
	args := m.Called(restaurantID, itemID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MenuRepository) UpdateMenuItemImage(restaurantID, itemID int, imageURL string) error {
	return m.Called(restaurantID, itemID, imageURL).Error(0)
}

type DiscountRepository struct {
	mock.Mock
}

func (m *DiscountRepository) CreateDiscount(d *domain.Discount) error {
	return m.Called(d).Error(0)
}

func (m *DiscountRepository) ListDiscounts(restaurantID int) ([]domain.Discount, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Discount), args.Error(1)
}

func (m *DiscountRepository) GetActiveDiscounts(menuItemIDs []int) (map[int]*domain.Discount, error) {
	args := m.Called(menuItemIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[int]*domain.Discount), args.Error(1)
}

func (m *DiscountRepository) UpdateDiscount(d *domain.Discount) error {
	return m.Called(d).Error(0)
}

func (m *DiscountRepository) DeleteDiscount(id int) (int64, error) {
	args := m.Called(id)
	return args.Get(0).(int64), args.Error(1)
}

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) CreateOrder(order *domain.Order) error {
	return m.Called(order).Error(0)
}

func (m *OrderRepository) GetOrder(orderID int) (*domain.Order, []domain.OrderItem, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var items []domain.OrderItem
	if args.Get(1) != nil {
		items = args.Get(1).([]domain.OrderItem)
	}
	return args.Get(0).(*domain.Order), items, args.Error(2)
}

func (m *OrderRepository) ListOrders(restaurantID int) ([]domain.Order, error) {
	args := m.Called(restaurantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Order), args.Error(1)
}

func (m *OrderRepository) UpdateOrderStatus(orderID int, status domain.OrderStatus) (int64, error) {
	args := m.Called(orderID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepository) SaveQRCode(orderID int, qr []byte) error {
	return m.Called(orderID, qr).Error(0)
}

func (m *OrderRepository) GetQRCode(orderID int) ([]byte, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type OrderEventPublisher struct {
	mock.Mock
}

func (m *OrderEventPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	return m.Called(ctx, event).Error(0)
}

type QRGenerator struct {
	mock.Mock
}

func (m *QRGenerator) Generate(reference string) ([]byte, error) {
	args := m.Called(reference)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

type AnalyticsRepository struct {
	mock.Mock
}

func (m *AnalyticsRepository) OrderStats(restaurantID int, since string) (int, float64, error) {
	args := m.Called(restaurantID, since)
	return args.Int(0), args.Get(1).(float64), args.Error(2)
}

func (m *AnalyticsRepository) PopularItems(restaurantID, limit int) ([]domain.ItemAnalytics, error) {
	args := m.Called(restaurantID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ItemAnalytics), args.Error(1)
}

func (m *AnalyticsRepository) OrderTrends(restaurantID, days int) ([]domain.TrendPoint, error) {
	args := m.Called(restaurantID, days)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TrendPoint), args.Error(1)
}

type Sender struct {
	mock.Mock
}

func (m *Sender) Send(to, subject, htmlBody string) error {
	return m.Called(to, subject, htmlBody).Error(0)
}
