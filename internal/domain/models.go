package domain

import "time"

type OrderStatus string

const (
	OrderStatusNew       OrderStatus = "new"
	OrderStatusAccepted  OrderStatus = "accepted"
	OrderStatusPreparing OrderStatus = "preparing"
	OrderStatusReady     OrderStatus = "ready"
	OrderStatusPickedUp  OrderStatus = "picked_up"
)

type DiscountKind string

const (
	DiscountPercentage  DiscountKind = "percentage"
	DiscountFixedAmount DiscountKind = "fixed_amount"
)

type Restaurant struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	Description string    `json:"description"`
	ContactInfo string    `json:"contact_info"`
	Email       string    `json:"email"`
	OpensAt     string    `json:"opens_at"`
	ClosesAt    string    `json:"closes_at"`
	ImageURL    string    `json:"image_url"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type MenuItem struct {
	ID           int       `json:"id"`
	RestaurantID int       `json:"restaurant_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	Category     string    `json:"category"`
	Price        float64   `json:"price"`
	ImageURL     string    `json:"image_url"`
	CreatedAt    time.Time `json:"created_at"`
}

type Discount struct {
	ID         int          `json:"id"`
	MenuItemID int          `json:"menu_item_id"`
	Kind       DiscountKind `json:"kind"`
	Amount     float64      `json:"amount"`
	Name       string       `json:"name"`
	Active     bool         `json:"active"`
	ValidFrom  *time.Time   `json:"valid_from,omitempty"`
	ValidUntil *time.Time   `json:"valid_until,omitempty"`
	CreatedAt  time.Time    `json:"created_at"`
}

// PricedMenuItem is a MenuItem decorated with the currently applicable
// discount and the resulting prices, as shown on menu and cart pages.
type PricedMenuItem struct {
	MenuItem
	Discount       *Discount `json:"discount,omitempty"`
	EffectivePrice float64   `json:"effective_price"`
	OriginalPrice  float64   `json:"original_price,omitempty"`
}

type Order struct {
	ID             int         `json:"id"`
	Reference      string      `json:"reference"`
	RestaurantID   int         `json:"restaurant_id"`
	RestaurantName string      `json:"restaurant_name,omitempty"`
	CustomerName   string      `json:"customer_name"`
	CustomerEmail  string      `json:"customer_email"`
	PickupAt       time.Time   `json:"pickup_at"`
	TotalAmount    float64     `json:"total_amount"`
	Status         OrderStatus `json:"status"`
	Note           string      `json:"note,omitempty"`
	QRCode         string      `json:"qr_code,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	Items          []OrderItem `json:"items"`
}

type OrderItem struct {
	MenuItemID int       `json:"menu_item_id"`
	ItemName   string    `json:"item_name"`
	Quantity   int       `json:"quantity"`
	UnitPrice  float64   `json:"unit_price"`
	Discount   *Discount `json:"discount,omitempty"`
}

type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      int       `json:"order_id"`
	RestaurantID int       `json:"restaurant_id"`
	Total        float64   `json:"total"`
	Timestamp    time.Time `json:"timestamp"`
}

type ItemAnalytics struct {
	MenuItemID   int     `json:"menu_item_id"`
	ItemName     string  `json:"item_name"`
	RestaurantID int     `json:"restaurant_id"`
	OrderCount   int     `json:"order_count"`
	Revenue      float64 `json:"revenue"`
}

type TrendPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

type AnalyticsReport struct {
	OrdersDaily    int             `json:"orders_daily"`
	OrdersWeekly   int             `json:"orders_weekly"`
	OrdersMonthly  int             `json:"orders_monthly"`
	RevenueDaily   float64         `json:"revenue_daily"`
	RevenueWeekly  float64         `json:"revenue_weekly"`
	RevenueMonthly float64         `json:"revenue_monthly"`
	PopularItems   []ItemAnalytics `json:"popular_items"`
	Trends         []TrendPoint    `json:"trends"`
}
