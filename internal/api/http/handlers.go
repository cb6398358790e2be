package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/twnk123/malca-time/internal/domain"
	"github.com/twnk123/malca-time/internal/service"
	"github.com/twnk123/malca-time/internal/validation"
	"github.com/twnk123/malca-time/internal/workinghours"
)

type Handler struct {
	Restaurants service.RestaurantServiceInterface
	Menu        service.MenuServiceInterface
	Discounts   service.DiscountServiceInterface
	Orders      service.OrderServiceInterface
	Analytics   service.AnalyticsServiceInterface
	validate    *validatorv10.Validate
}

func NewHandler(restSvc service.RestaurantServiceInterface, menuSvc service.MenuServiceInterface,
	discountSvc service.DiscountServiceInterface, orderSvc service.OrderServiceInterface,
	analyticsSvc service.AnalyticsServiceInterface) *Handler {
	return &Handler{
		Restaurants: restSvc,
		Menu:        menuSvc,
		Discounts:   discountSvc,
		Orders:      orderSvc,
		Analytics:   analyticsSvc,
		validate:    validation.New(),
	}
}

func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/health", h.healthCheck).Methods("GET")

	r.HandleFunc("/api/restaurants", h.createRestaurant).Methods("POST")
	r.HandleFunc("/api/restaurants", h.getRestaurants).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.getRestaurant).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}", h.updateRestaurant).Methods("PUT")
	r.HandleFunc("/api/restaurants/{id}", h.deleteRestaurant).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{id}/image", h.uploadRestaurantImage).Methods("POST")
	r.HandleFunc("/api/restaurants/{id}/pickup-slots", h.getPickupSlots).Methods("GET")
	r.HandleFunc("/api/restaurants/{id}/analytics", h.getAnalytics).Methods("GET")

	r.HandleFunc("/api/restaurants/{restaurantId}/menu", h.createMenuItem).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu", h.getMenu).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu/{itemId}", h.getMenuItem).Methods("GET")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu/{itemId}", h.updateMenuItem).Methods("PUT")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu/{itemId}", h.deleteMenuItem).Methods("DELETE")
	r.HandleFunc("/api/restaurants/{restaurantId}/menu/{itemId}/image", h.uploadMenuItemImage).Methods("POST")

	r.HandleFunc("/api/restaurants/{restaurantId}/discounts", h.createDiscount).Methods("POST")
	r.HandleFunc("/api/restaurants/{restaurantId}/discounts", h.getDiscounts).Methods("GET")
	r.HandleFunc("/api/discounts/{id}", h.updateDiscount).Methods("PUT")
	r.HandleFunc("/api/discounts/{id}", h.deleteDiscount).Methods("DELETE")

	r.HandleFunc("/api/orders", h.createOrder).Methods("POST")
	r.HandleFunc("/api/orders", h.getOrders).Methods("GET")
	r.HandleFunc("/api/orders/{id}", h.getOrder).Methods("GET")
	r.HandleFunc("/api/orders/{id}/status", h.updateOrderStatus).Methods("PATCH")
	r.HandleFunc("/api/orders/{id}/qrcode", h.getOrderQRCode).Methods("GET")
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "healthy",
		"service":   "malca-time",
		"timestamp": time.Now().Format(time.RFC3339),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func (h *Handler) createRestaurant(w http.ResponseWriter, r *http.Request) {
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.Restaurants.Create(&rest); err != nil {
		if errors.Is(err, workinghours.ErrInvalidTimeOfDay) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) getRestaurants(w http.ResponseWriter, r *http.Request) {
	restaurants, err := h.Restaurants.List()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(restaurants)
}

func (h *Handler) getRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rest, err := h.Restaurants.Get(id)
	if err != nil {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) updateRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var rest domain.Restaurant
	if err := json.NewDecoder(r.Body).Decode(&rest); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	rest.ID = id
	if err := h.Restaurants.Update(&rest); err != nil {
		if errors.Is(err, workinghours.ErrInvalidTimeOfDay) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if err.Error() == "sql: no rows in result set" {
			http.Error(w, "Restaurant not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(rest)
}

func (h *Handler) deleteRestaurant(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rows, err := h.Restaurants.Delete(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getPickupSlots(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	info, err := h.Restaurants.PickupInfo(id)
	if err != nil {
		if errors.Is(err, workinghours.ErrInvalidTimeOfDay) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		http.Error(w, "Restaurant not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(info)
}

func (h *Handler) getAnalytics(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	report, err := h.Analytics.Report(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}

func (h *Handler) uploadRestaurantImage(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	imageURL, ok := h.saveUpload(w, r, "restaurant_"+strconv.Itoa(id))
	if !ok {
		return
	}
	if err := h.Restaurants.UpdateImage(id, imageURL); err != nil {
		http.Error(w, "Failed to update restaurant", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"image_url": imageURL})
}

func (h *Handler) createMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.RestaurantID = restaurantID
	if err := h.Menu.Create(&item); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) getMenu(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	items, err := h.Menu.ListPriced(restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

func (h *Handler) getMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])
	item, err := h.Menu.Get(restaurantID, itemID)
	if err != nil {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) updateMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])
	var item domain.MenuItem
	if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	item.ID = itemID
	item.RestaurantID = restaurantID
	if err := h.Menu.Update(&item); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(item)
}

func (h *Handler) deleteMenuItem(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])
	rows, err := h.Menu.Delete(restaurantID, itemID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Menu item not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) uploadMenuItemImage(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	itemID, _ := strconv.Atoi(mux.Vars(r)["itemId"])
	imageURL, ok := h.saveUpload(w, r, "item_"+strconv.Itoa(restaurantID)+"_"+strconv.Itoa(itemID))
	if !ok {
		return
	}
	if err := h.Menu.UpdateImage(restaurantID, itemID, imageURL); err != nil {
		http.Error(w, "Failed to update menu item", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"image_url": imageURL})
}

func (h *Handler) saveUpload(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		http.Error(w, "File too large", http.StatusBadRequest)
		return "", false
	}

	file, handler, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Error retrieving the file", http.StatusBadRequest)
		return "", false
	}
	defer file.Close()

	allowedTypes := map[string]bool{
		"image/jpeg": true,
		"image/png":  true,
		"image/gif":  true,
		"image/webp": true,
	}
	if !allowedTypes[handler.Header.Get("Content-Type")] {
		http.Error(w, "Invalid file type. Only JPEG, PNG, GIF, WebP allowed", http.StatusBadRequest)
		return "", false
	}

	uploadDir := "./uploads"
	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		http.Error(w, "Failed to create upload directory", http.StatusInternalServerError)
		return "", false
	}

	filename := prefix + "_" + handler.Filename
	path := filepath.Join(uploadDir, filename)

	dst, err := os.Create(path)
	if err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return "", false
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		http.Error(w, "Failed to save file", http.StatusInternalServerError)
		return "", false
	}

	return "/uploads/" + filename, true
}

func (h *Handler) createDiscount(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateDiscountRequest
	if err := validation.BindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}

	discount := domain.Discount{
		MenuItemID: req.MenuItemID,
		Kind:       domain.DiscountKind(req.Kind),
		Amount:     req.Amount,
		Name:       req.Name,
		Active:     req.Active,
	}
	if req.ValidFrom != "" {
		from, _ := time.Parse(time.RFC3339, req.ValidFrom)
		discount.ValidFrom = &from
	}
	if req.ValidUntil != "" {
		until, _ := time.Parse(time.RFC3339, req.ValidUntil)
		discount.ValidUntil = &until
	}

	if err := h.Discounts.Create(&discount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(discount)
}

func (h *Handler) getDiscounts(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(mux.Vars(r)["restaurantId"])
	discounts, err := h.Discounts.List(restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(discounts)
}

func (h *Handler) updateDiscount(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	var discount domain.Discount
	if err := json.NewDecoder(r.Body).Decode(&discount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	discount.ID = id
	if err := h.Discounts.Update(&discount); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(discount)
}

func (h *Handler) deleteDiscount(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.Atoi(mux.Vars(r)["id"])
	rows, err := h.Discounts.Delete(id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if rows == 0 {
		http.Error(w, "Discount not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateOrderRequest
	if err := validation.BindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}

	draft := &service.OrderDraft{
		RestaurantID:  req.RestaurantID,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		PickupSlot:    req.PickupSlot,
		Note:          req.Note,
	}
	for _, item := range req.Items {
		draft.Items = append(draft.Items, service.OrderDraftItem{
			MenuItemID: item.MenuItemID,
			Quantity:   item.Quantity,
		})
	}

	order, err := h.Orders.Create(r.Context(), draft)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRestaurantClosed),
			errors.Is(err, service.ErrInvalidPickupSlot),
			errors.Is(err, service.ErrEmptyOrder),
			errors.Is(err, service.ErrUnknownMenuItem):
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	order.QRCode = h.Orders.QRLink(order.ID)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	order, err := h.Orders.Get(orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(order)
}

func (h *Handler) getOrders(w http.ResponseWriter, r *http.Request) {
	restaurantID, _ := strconv.Atoi(r.URL.Query().Get("restaurant_id"))
	orders, err := h.Orders.List(restaurantID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(orders)
}

func (h *Handler) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	var req validation.UpdateOrderStatusRequest
	if err := validation.BindAndValidate(w, r, &req, h.validate); err != nil {
		return
	}

	if err := h.Orders.UpdateStatus(orderID, domain.OrderStatus(req.Status)); err != nil {
		if errors.Is(err, service.ErrOrderNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) getOrderQRCode(w http.ResponseWriter, r *http.Request) {
	orderID, _ := strconv.Atoi(mux.Vars(r)["id"])
	qrCode, err := h.Orders.GetQRCode(orderID)
	if err != nil {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}
	if len(qrCode) == 0 {
		http.Error(w, "QR code not found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(http.StatusOK)
	w.Write(qrCode)
}
