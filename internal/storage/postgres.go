package storage

import (
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/twnk123/malca-time/internal/domain"
)

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

func (r *PostgresRepository) CreateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(`
		INSERT INTO restaurants (name, address, description, contact_info, email, opens_at, closes_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		rest.Name, rest.Address, rest.Description, rest.ContactInfo, rest.Email,
		rest.OpensAt, rest.ClosesAt, rest.Active,
	).Scan(&rest.ID, &rest.CreatedAt)
}

func (r *PostgresRepository) ListRestaurants() ([]domain.Restaurant, error) {
	rows, err := r.DB.Query(`
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), COALESCE(contact_info, ''),
		       COALESCE(email, ''), opens_at, closes_at, COALESCE(image_url, ''), active, created_at
		FROM restaurants
		WHERE active = TRUE
		ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var restaurants []domain.Restaurant
	for rows.Next() {
		var rest domain.Restaurant
		if err := rows.Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.ContactInfo,
			&rest.Email, &rest.OpensAt, &rest.ClosesAt, &rest.ImageURL, &rest.Active, &rest.CreatedAt); err != nil {
			continue
		}
		restaurants = append(restaurants, rest)
	}
	return restaurants, nil
}

func (r *PostgresRepository) GetRestaurant(id int) (*domain.Restaurant, error) {
	var rest domain.Restaurant
	err := r.DB.QueryRow(`
		SELECT id, name, COALESCE(address, ''), COALESCE(description, ''), COALESCE(contact_info, ''),
		       COALESCE(email, ''), opens_at, closes_at, COALESCE(image_url, ''), active, created_at
		FROM restaurants
		WHERE id = $1`, id).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.ContactInfo,
			&rest.Email, &rest.OpensAt, &rest.ClosesAt, &rest.ImageURL, &rest.Active, &rest.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rest, nil
}

func (r *PostgresRepository) UpdateRestaurant(rest *domain.Restaurant) error {
	return r.DB.QueryRow(`
		UPDATE restaurants
		SET name=$1, address=$2, description=$3, contact_info=$4, email=$5, opens_at=$6, closes_at=$7, active=$8
		WHERE id=$9
		RETURNING id, name, COALESCE(address, ''), COALESCE(description, ''), COALESCE(contact_info, ''),
		          COALESCE(email, ''), opens_at, closes_at, COALESCE(image_url, ''), active, created_at`,
		rest.Name, rest.Address, rest.Description, rest.ContactInfo, rest.Email,
		rest.OpensAt, rest.ClosesAt, rest.Active, rest.ID).
		Scan(&rest.ID, &rest.Name, &rest.Address, &rest.Description, &rest.ContactInfo,
			&rest.Email, &rest.OpensAt, &rest.ClosesAt, &rest.ImageURL, &rest.Active, &rest.CreatedAt)
}

func (r *PostgresRepository) DeleteRestaurant(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM restaurants WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateRestaurantImage(id int, imageURL string) error {
	_, err := r.DB.Exec("UPDATE restaurants SET image_url=$1 WHERE id=$2", imageURL, id)
	return err
}

func (r *PostgresRepository) CreateMenuItem(item *domain.MenuItem) error {
	return r.DB.QueryRow(`
		INSERT INTO menu_items (restaurant_id, name, description, category, price, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`,
		item.RestaurantID, item.Name, item.Description, item.Category, item.Price, item.ImageURL).
		Scan(&item.ID, &item.CreatedAt)
}

func (r *PostgresRepository) ListMenuItems(restaurantID int) ([]domain.MenuItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), COALESCE(category, ''), price,
		       COALESCE(image_url, ''), created_at
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY category, name`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.MenuItem
	for rows.Next() {
		var item domain.MenuItem
		if err := rows.Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Category, &item.Price, &item.ImageURL, &item.CreatedAt); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) GetMenuItem(restaurantID, itemID int) (*domain.MenuItem, error) {
	var item domain.MenuItem
	err := r.DB.QueryRow(`
		SELECT id, restaurant_id, name, COALESCE(description, ''), COALESCE(category, ''), price,
		       COALESCE(image_url, ''), created_at
		FROM menu_items
		WHERE id = $1 AND restaurant_id = $2`, itemID, restaurantID).
		Scan(&item.ID, &item.RestaurantID, &item.Name, &item.Description,
			&item.Category, &item.Price, &item.ImageURL, &item.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *PostgresRepository) UpdateMenuItem(item *domain.MenuItem) error {
	_, err := r.DB.Exec(`
		UPDATE menu_items
		SET name=$1, description=$2, category=$3, price=$4
		WHERE id=$5 AND restaurant_id=$6`,
		item.Name, item.Description, item.Category, item.Price, item.ID, item.RestaurantID)
	return err
}

func (r *PostgresRepository) DeleteMenuItem(restaurantID, itemID int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM menu_items WHERE id=$1 AND restaurant_id=$2", itemID, restaurantID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) UpdateMenuItemImage(restaurantID, itemID int, imageURL string) error {
	_, err := r.DB.Exec("UPDATE menu_items SET image_url = $1 WHERE id = $2 AND restaurant_id = $3",
		imageURL, itemID, restaurantID)
	return err
}

func (r *PostgresRepository) CreateDiscount(d *domain.Discount) error {
	return r.DB.QueryRow(`
		INSERT INTO discounts (menu_item_id, kind, amount, name, active, valid_from, valid_until)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`,
		d.MenuItemID, d.Kind, d.Amount, d.Name, d.Active, d.ValidFrom, d.ValidUntil).
		Scan(&d.ID, &d.CreatedAt)
}

func (r *PostgresRepository) ListDiscounts(restaurantID int) ([]domain.Discount, error) {
	rows, err := r.DB.Query(`
		SELECT d.id, d.menu_item_id, d.kind, d.amount, COALESCE(d.name, ''), d.active,
		       d.valid_from, d.valid_until, d.created_at
		FROM discounts d
		JOIN menu_items mi ON d.menu_item_id = mi.id
		WHERE mi.restaurant_id = $1
		ORDER BY d.created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var discounts []domain.Discount
	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.ID, &d.MenuItemID, &d.Kind, &d.Amount, &d.Name, &d.Active,
			&d.ValidFrom, &d.ValidUntil, &d.CreatedAt); err != nil {
			continue
		}
		discounts = append(discounts, d)
	}
	return discounts, nil
}

// GetActiveDiscounts returns the active discount per menu item, keyed by
// item ID. Validity windows are checked by the pricing engine, not here.
func (r *PostgresRepository) GetActiveDiscounts(menuItemIDs []int) (map[int]*domain.Discount, error) {
	discounts := make(map[int]*domain.Discount)
	if len(menuItemIDs) == 0 {
		return discounts, nil
	}

	rows, err := r.DB.Query(`
		SELECT id, menu_item_id, kind, amount, COALESCE(name, ''), active, valid_from, valid_until, created_at
		FROM discounts
		WHERE active = TRUE AND menu_item_id = ANY($1)`, pq.Array(menuItemIDs))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var d domain.Discount
		if err := rows.Scan(&d.ID, &d.MenuItemID, &d.Kind, &d.Amount, &d.Name, &d.Active,
			&d.ValidFrom, &d.ValidUntil, &d.CreatedAt); err != nil {
			continue
		}
		discount := d
		discounts[d.MenuItemID] = &discount
	}
	return discounts, nil
}

func (r *PostgresRepository) UpdateDiscount(d *domain.Discount) error {
	_, err := r.DB.Exec(`
		UPDATE discounts
		SET kind=$1, amount=$2, name=$3, active=$4, valid_from=$5, valid_until=$6
		WHERE id=$7`,
		d.Kind, d.Amount, d.Name, d.Active, d.ValidFrom, d.ValidUntil, d.ID)
	return err
}

func (r *PostgresRepository) DeleteDiscount(id int) (int64, error) {
	result, err := r.DB.Exec("DELETE FROM discounts WHERE id=$1", id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) CreateOrder(order *domain.Order) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := tx.QueryRow(`
		INSERT INTO orders (reference, restaurant_id, customer_name, customer_email, pickup_at, total_amount, status, note)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`,
		order.Reference, order.RestaurantID, order.CustomerName, order.CustomerEmail,
		order.PickupAt, order.TotalAmount, order.Status, order.Note,
	).Scan(&order.ID, &order.CreatedAt); err != nil {
		return err
	}

	for _, item := range order.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4)`,
			order.ID, item.MenuItemID, item.Quantity, item.UnitPrice); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *PostgresRepository) GetOrder(orderID int) (*domain.Order, []domain.OrderItem, error) {
	var order domain.Order
	if err := r.DB.QueryRow(`
		SELECT id, reference, restaurant_id, customer_name, customer_email, pickup_at,
		       total_amount, status, COALESCE(note, ''), created_at
		FROM orders WHERE id = $1`, orderID).
		Scan(&order.ID, &order.Reference, &order.RestaurantID, &order.CustomerName, &order.CustomerEmail,
			&order.PickupAt, &order.TotalAmount, &order.Status, &order.Note, &order.CreatedAt); err != nil {
		return nil, nil, err
	}

	var restaurantName string
	r.DB.QueryRow("SELECT name FROM restaurants WHERE id = $1", order.RestaurantID).Scan(&restaurantName)
	order.RestaurantName = restaurantName

	rows, err := r.DB.Query(`
		SELECT oi.menu_item_id, mi.name, oi.quantity, oi.unit_price
		FROM order_items oi
		JOIN menu_items mi ON oi.menu_item_id = mi.id
		WHERE oi.order_id = $1`, orderID)
	if err != nil {
		return &order, nil, err
	}
	defer rows.Close()

	var items []domain.OrderItem
	for rows.Next() {
		var item domain.OrderItem
		if err := rows.Scan(&item.MenuItemID, &item.ItemName, &item.Quantity, &item.UnitPrice); err != nil {
			continue
		}
		items = append(items, item)
	}
	return &order, items, nil
}

func (r *PostgresRepository) ListOrders(restaurantID int) ([]domain.Order, error) {
	rows, err := r.DB.Query(`
		SELECT o.id, o.reference, o.restaurant_id, re.name, o.customer_name, o.customer_email,
		       o.pickup_at, o.total_amount, o.status, COALESCE(o.note, ''), o.created_at
		FROM orders o
		JOIN restaurants re ON o.restaurant_id = re.id
		WHERE $1 = 0 OR o.restaurant_id = $1
		ORDER BY o.created_at DESC`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(&order.ID, &order.Reference, &order.RestaurantID, &order.RestaurantName,
			&order.CustomerName, &order.CustomerEmail, &order.PickupAt, &order.TotalAmount,
			&order.Status, &order.Note, &order.CreatedAt); err != nil {
			continue
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (r *PostgresRepository) UpdateOrderStatus(orderID int, status domain.OrderStatus) (int64, error) {
	result, err := r.DB.Exec("UPDATE orders SET status=$1 WHERE id=$2", status, orderID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PostgresRepository) SaveQRCode(orderID int, qr []byte) error {
	_, err := r.DB.Exec("UPDATE orders SET qr_code = $1 WHERE id = $2", qr, orderID)
	return err
}

func (r *PostgresRepository) GetQRCode(orderID int) ([]byte, error) {
	var qr []byte
	if err := r.DB.QueryRow("SELECT qr_code FROM orders WHERE id = $1", orderID).Scan(&qr); err != nil {
		return nil, err
	}
	return qr, nil
}

func (r *PostgresRepository) OrderStats(restaurantID int, since string) (int, float64, error) {
	var count int
	var revenue float64
	err := r.DB.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE restaurant_id = $1 AND created_at >= $2::timestamptz`, restaurantID, since).
		Scan(&count, &revenue)
	return count, revenue, err
}

func (r *PostgresRepository) PopularItems(restaurantID, limit int) ([]domain.ItemAnalytics, error) {
	rows, err := r.DB.Query(`
		SELECT mi.id, mi.name, mi.restaurant_id, COUNT(oi.order_id), COALESCE(SUM(oi.quantity * oi.unit_price), 0)
		FROM menu_items mi
		JOIN order_items oi ON mi.id = oi.menu_item_id
		JOIN orders o ON oi.order_id = o.id
		WHERE mi.restaurant_id = $1
		GROUP BY mi.id, mi.name, mi.restaurant_id
		ORDER BY COUNT(oi.order_id) DESC
		LIMIT $2`, restaurantID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.ItemAnalytics
	for rows.Next() {
		var item domain.ItemAnalytics
		if err := rows.Scan(&item.MenuItemID, &item.ItemName, &item.RestaurantID, &item.OrderCount, &item.Revenue); err != nil {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *PostgresRepository) OrderTrends(restaurantID, days int) ([]domain.TrendPoint, error) {
	rows, err := r.DB.Query(`
		SELECT created_at::date, COUNT(*), COALESCE(SUM(total_amount), 0)
		FROM orders
		WHERE restaurant_id = $1 AND created_at >= CURRENT_DATE - $2 * INTERVAL '1 day'
		GROUP BY created_at::date
		ORDER BY created_at::date`, restaurantID, days)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var points []domain.TrendPoint
	for rows.Next() {
		var point domain.TrendPoint
		if err := rows.Scan(&point.Date, &point.Orders, &point.Revenue); err != nil {
			continue
		}
		points = append(points, point)
	}
	return points, nil
}

func (r *PostgresRepository) EnsureSchema() error {
	statements := []string{
		"ALTER TABLE IF EXISTS restaurants ADD COLUMN IF NOT EXISTS contact_info TEXT",
		"ALTER TABLE IF EXISTS orders ADD COLUMN IF NOT EXISTS qr_code BYTEA",
		"ALTER TABLE IF EXISTS discounts ADD COLUMN IF NOT EXISTS valid_from TIMESTAMPTZ",
		"ALTER TABLE IF EXISTS discounts ADD COLUMN IF NOT EXISTS valid_until TIMESTAMPTZ",
	}
	for _, stmt := range statements {
		if _, err := r.DB.Exec(stmt); err != nil {
			return fmt.Errorf("ensure schema `%s`: %w", stmt, err)
		}
	}
	return nil
}
