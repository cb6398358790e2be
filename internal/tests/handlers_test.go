package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "github.com/twnk123/malca-time/internal/api/http"
	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/mocks"
	"github.com/twnk123/malca-time/internal/service"
)

func newTestRouter(h *httpapi.Handler) *mux.Router {
	r := mux.NewRouter()
	h.RegisterRoutes(r)
	return r
}

func TestCreateRestaurantHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.RestaurantRepository)
		wantCode  int
	}{
		{
			name: "valid request",
			body: `{"name":"Test","opens_at":"08:00","closes_at":"20:00"}`,
			setupMock: func(m *mocks.RestaurantRepository) {
				m.On("CreateRestaurant", mock.AnythingOfType("*domain.Restaurant")).Return(nil).Once()
			},
			wantCode: http.StatusOK,
		},
		{
			name:      "invalid JSON",
			body:      `{invalid}`,
			setupMock: func(m *mocks.RestaurantRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "malformed working hours",
			body:      `{"name":"Test","opens_at":"8 in the morning","closes_at":"20:00"}`,
			setupMock: func(m *mocks.RestaurantRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "database error",
			body: `{"name":"Test","opens_at":"08:00","closes_at":"20:00"}`,
			setupMock: func(m *mocks.RestaurantRepository) {
				m.On("CreateRestaurant", mock.AnythingOfType("*domain.Restaurant")).Return(errors.New("db error")).Once()
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockRepo := new(mocks.RestaurantRepository)
			restService := service.NewRestaurantService(mockRepo)
			handler := httpapi.NewHandler(restService, nil, nil, nil, nil)

			testCase.setupMock(mockRepo)

			req := httptest.NewRequest("POST", "/api/restaurants", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newTestRouter(handler).ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestGetPickupSlotsHandler(t *testing.T) {
	mockRepo := new(mocks.RestaurantRepository)
	restService := service.NewRestaurantService(mockRepo).WithClock(fixedClock)
	handler := httpapi.NewHandler(restService, nil, nil, nil, nil)

	mockRepo.On("GetRestaurant", 1).Return(testRestaurant(), nil).Once()

	req := httptest.NewRequest("GET", "/api/restaurants/1/pickup-slots", nil)
	w := httptest.NewRecorder()
	newTestRouter(handler).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var info service.PickupInfo
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.True(t, info.Decision.Allowed)
	require.NotEmpty(t, info.Slots)
	assert.Equal(t, "12:30", info.Slots[0].Time)
}

func TestGetMenuHandler(t *testing.T) {
	menuRepo := new(mocks.MenuRepository)
	discountRepo := new(mocks.DiscountRepository)
	menuService := service.NewMenuService(menuRepo, discountRepo).WithClock(fixedClock)
	handler := httpapi.NewHandler(nil, menuService, nil, nil, nil)

	menuRepo.On("ListMenuItems", 1).Return([]domain.MenuItem{
		{ID: 10, RestaurantID: 1, Name: "Golaž", Price: 12.50},
	}, nil).Once()
	discountRepo.On("GetActiveDiscounts", []int{10}).Return(map[int]*domain.Discount{
		10: {ID: 7, MenuItemID: 10, Kind: domain.DiscountPercentage, Amount: 20, Active: true},
	}, nil).Once()

	req := httptest.NewRequest("GET", "/api/restaurants/1/menu", nil)
	w := httptest.NewRecorder()
	newTestRouter(handler).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var priced []domain.PricedMenuItem
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &priced))
	require.Len(t, priced, 1)
	assert.InDelta(t, 10.00, priced[0].EffectivePrice, 1e-9)
	assert.InDelta(t, 12.50, priced[0].OriginalPrice, 1e-9)
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.OrderRepository, *mocks.RestaurantRepository, *mocks.MenuRepository, *mocks.DiscountRepository)
		wantCode  int
	}{
		{
			name: "valid order",
			body: `{"restaurant_id":1,"customer_name":"Ana","customer_email":"ana@example.com","pickup_slot":"13:00","items":[{"menu_item_id":10,"quantity":2}]}`,
			setupMock: func(o *mocks.OrderRepository, r *mocks.RestaurantRepository, m *mocks.MenuRepository, d *mocks.DiscountRepository) {
				r.On("GetRestaurant", 1).Return(testRestaurant(), nil).Once()
				d.On("GetActiveDiscounts", []int{10}).Return(map[int]*domain.Discount{}, nil).Once()
				m.On("GetMenuItem", 1, 10).Return(&domain.MenuItem{ID: 10, RestaurantID: 1, Name: "Golaž", Price: 12.50}, nil).Once()
				o.On("CreateOrder", mock.AnythingOfType("*domain.Order")).Return(nil).Once()
			},
			wantCode: http.StatusCreated,
		},
		{
			name:      "missing customer email",
			body:      `{"restaurant_id":1,"customer_name":"Ana","pickup_slot":"13:00","items":[{"menu_item_id":10,"quantity":2}]}`,
			setupMock: func(o *mocks.OrderRepository, r *mocks.RestaurantRepository, m *mocks.MenuRepository, d *mocks.DiscountRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "no items",
			body:      `{"restaurant_id":1,"customer_name":"Ana","customer_email":"ana@example.com","pickup_slot":"13:00","items":[]}`,
			setupMock: func(o *mocks.OrderRepository, r *mocks.RestaurantRepository, m *mocks.MenuRepository, d *mocks.DiscountRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "pickup slot no longer offered",
			body: `{"restaurant_id":1,"customer_name":"Ana","customer_email":"ana@example.com","pickup_slot":"12:15","items":[{"menu_item_id":10,"quantity":1}]}`,
			setupMock: func(o *mocks.OrderRepository, r *mocks.RestaurantRepository, m *mocks.MenuRepository, d *mocks.DiscountRepository) {
				r.On("GetRestaurant", 1).Return(testRestaurant(), nil).Once()
			},
			wantCode: http.StatusUnprocessableEntity,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orderRepo := new(mocks.OrderRepository)
			restRepo := new(mocks.RestaurantRepository)
			menuRepo := new(mocks.MenuRepository)
			discountRepo := new(mocks.DiscountRepository)

			orderService := service.NewOrderService(orderRepo, restRepo, menuRepo, discountRepo, nil, nil).
				WithClock(fixedClock)
			handler := httpapi.NewHandler(nil, nil, nil, orderService, nil)

			testCase.setupMock(orderRepo, restRepo, menuRepo, discountRepo)

			req := httptest.NewRequest("POST", "/api/orders", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newTestRouter(handler).ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			orderRepo.AssertExpectations(t)
		})
	}
}

func TestUpdateOrderStatusHandler(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		setupMock func(*mocks.OrderRepository)
		wantCode  int
	}{
		{
			name: "accepted",
			body: `{"status":"accepted"}`,
			setupMock: func(m *mocks.OrderRepository) {
				m.On("UpdateOrderStatus", 5, domain.OrderStatusAccepted).Return(int64(1), nil).Once()
			},
			wantCode: http.StatusNoContent,
		},
		{
			name:      "unknown status rejected by validation",
			body:      `{"status":"vaporized"}`,
			setupMock: func(m *mocks.OrderRepository) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "order missing",
			body: `{"status":"ready"}`,
			setupMock: func(m *mocks.OrderRepository) {
				m.On("UpdateOrderStatus", 5, domain.OrderStatusReady).Return(int64(0), nil).Once()
			},
			wantCode: http.StatusNotFound,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orderRepo := new(mocks.OrderRepository)
			orderService := service.NewOrderService(orderRepo, nil, nil, nil, nil, nil)
			handler := httpapi.NewHandler(nil, nil, nil, orderService, nil)

			testCase.setupMock(orderRepo)

			req := httptest.NewRequest("PATCH", "/api/orders/5/status", bytes.NewBufferString(testCase.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			newTestRouter(handler).ServeHTTP(w, req)

			assert.Equal(t, testCase.wantCode, w.Code)
			orderRepo.AssertExpectations(t)
		})
	}
}

func TestGetOrderQRCodeHandler(t *testing.T) {
	orderRepo := new(mocks.OrderRepository)
	orderService := service.NewOrderService(orderRepo, nil, nil, nil, nil, nil)
	handler := httpapi.NewHandler(nil, nil, nil, orderService, nil)

	orderRepo.On("GetQRCode", 42).Return([]byte{0x89, 0x50, 0x4e, 0x47}, nil).Once()

	req := httptest.NewRequest("GET", "/api/orders/42/qrcode", nil)
	w := httptest.NewRecorder()
	newTestRouter(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
}
