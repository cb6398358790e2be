package notifier

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/mocks"
)

type mockStore struct {
	mock.Mock
}

func (m *mockStore) GetOrder(orderID int) (*domain.Order, []domain.OrderItem, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*domain.Order), args.Get(1).([]domain.OrderItem), args.Error(2)
}

func (m *mockStore) GetActiveDiscounts(menuItemIDs []int) (map[int]*domain.Discount, error) {
	args := m.Called(menuItemIDs)
	return args.Get(0).(map[int]*domain.Discount), args.Error(1)
}

func (m *mockStore) GetRestaurant(id int) (*domain.Restaurant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Restaurant), args.Error(1)
}

type mockAnalytics struct {
	mock.Mock
}

func (m *mockAnalytics) RecordOrderItem(ctx context.Context, restaurantID, menuItemID, quantity int, day string) error {
	return m.Called(ctx, restaurantID, menuItemID, quantity, day).Error(0)
}

var processNow = time.Date(2024, 1, 15, 12, 5, 0, 0, time.UTC)

func storedOrder() (*domain.Order, []domain.OrderItem) {
	order := &domain.Order{
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
	}
	items := []domain.OrderItem{
		{MenuItemID: 10, ItemName: "Golaž", Quantity: 2, UnitPrice: 10.00},
	}
	return order, items
}

func TestProcessOrderSendsBothEmails(t *testing.T) {
	store := new(mockStore)
	sender := new(mocks.Sender)
	analytics := new(mockAnalytics)

	order, items := storedOrder()
	store.On("GetOrder", 42).Return(order, items, nil).Once()
	store.On("GetActiveDiscounts", []int{10}).Return(map[int]*domain.Discount{
		10: {ID: 7, MenuItemID: 10, Kind: domain.DiscountPercentage, Amount: 20, Active: true},
	}, nil).Once()
	store.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, Name: "Malca", Email: "kitchen@malca.si"}, nil).Once()

	sender.On("Send", "ana@example.com", "Order confirmation #0f1234", mock.MatchedBy(func(html string) bool {
		return strings.Contains(html, "2x Golaž") && strings.Contains(html, "-20%")
	})).Return(nil).Once()
	sender.On("Send", "kitchen@malca.si", "New order #0f1234 - Malca", mock.AnythingOfType("string")).Return(nil).Once()

	analytics.On("RecordOrderItem", mock.Anything, 1, 10, 2, "2024-01-15").Return(nil).Once()

	consumer := NewConsumer(nil, store, sender, analytics).WithClock(func() time.Time { return processNow })
	consumer.ProcessOrder(context.Background(), domain.OrderEvent{
		Type: "order_created", OrderID: 42, RestaurantID: 1, Total: 20.00,
	})

	store.AssertExpectations(t)
	sender.AssertExpectations(t)
	analytics.AssertExpectations(t)
}

func TestProcessOrderSkipsRestaurantWithoutEmail(t *testing.T) {
	store := new(mockStore)
	sender := new(mocks.Sender)

	order, items := storedOrder()
	store.On("GetOrder", 42).Return(order, items, nil).Once()
	store.On("GetActiveDiscounts", []int{10}).Return(map[int]*domain.Discount{}, nil).Once()
	store.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, Name: "Malca"}, nil).Once()

	sender.On("Send", "ana@example.com", mock.AnythingOfType("string"), mock.AnythingOfType("string")).
		Return(nil).Once()

	consumer := NewConsumer(nil, store, sender, nil)
	consumer.ProcessOrder(context.Background(), domain.OrderEvent{Type: "order_created", OrderID: 42})

	store.AssertExpectations(t)
	sender.AssertExpectations(t)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestProcessOrderIgnoresMissingOrder(t *testing.T) {
	store := new(mockStore)
	sender := new(mocks.Sender)

	store.On("GetOrder", 99).Return(nil, nil, assert.AnError).Once()

	consumer := NewConsumer(nil, store, sender, nil)
	consumer.ProcessOrder(context.Background(), domain.OrderEvent{Type: "order_created", OrderID: 99})

	store.AssertExpectations(t)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessOrderExpiredDiscountNotAttached(t *testing.T) {
	store := new(mockStore)
	sender := new(mocks.Sender)

	expired := processNow.Add(-time.Hour)
	order, items := storedOrder()
	store.On("GetOrder", 42).Return(order, items, nil).Once()
	store.On("GetActiveDiscounts", []int{10}).Return(map[int]*domain.Discount{
		10: {ID: 7, MenuItemID: 10, Kind: domain.DiscountPercentage, Amount: 20, Active: true, ValidUntil: &expired},
	}, nil).Once()
	store.On("GetRestaurant", 1).Return(&domain.Restaurant{ID: 1, Name: "Malca"}, nil).Once()

	sender.On("Send", "ana@example.com", mock.AnythingOfType("string"), mock.MatchedBy(func(html string) bool {
		return !strings.Contains(html, "line-through")
	})).Return(nil).Once()

	consumer := NewConsumer(nil, store, sender, nil).WithClock(func() time.Time { return processNow })
	consumer.ProcessOrder(context.Background(), domain.OrderEvent{Type: "order_created", OrderID: 42})

	store.AssertExpectations(t)
	sender.AssertExpectations(t)
}
