package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Skotchmaster/shopapi/internal/models"
)

type OrderFilter struct {
	UserID *uint
	Status string
}

// CheckoutLines reads the session's cart joined with current product state.
// Inside a transaction the cart rows stay locked until commit, so a concurrent
// checkout of the same session waits and then sees the cart already cleared.
func (r *GormRepo) CheckoutLines(ctx context.Context, sessionID string) ([]models.CheckoutLine, error) {
	var lines []models.CheckoutLine
	err := r.DB.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.id AS line_id, p.id AS product_id, p.name, p.price, p.stock, ci.quantity").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.session_id = ?", sessionID).
		Order("ci.id ASC").
		Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "ci"}}).
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}

// DecrementStock takes qty units only if that many are still available.
func (r *GormRepo) DecrementStock(ctx context.Context, productID uint, qty int) (bool, error) {
	res := r.DB.WithContext(ctx).
		Model(&models.Product{}).
		Where("id = ? AND stock >= ?", productID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) CreateOrder(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	db := r.DB.WithContext(ctx)
	if err := db.Omit("Items", "User").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) == 0 {
		return nil
	}
	return db.Create(&items).Error
}

func (r *GormRepo) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := r.DB.WithContext(ctx).Model(&models.Order{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	orders := []models.Order{}
	if err := q.Order("created_at DESC").Order("id DESC").Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *GormRepo) OrderLines(ctx context.Context, orderID uint) ([]models.OrderLineView, error) {
	items := []models.OrderLineView{}
	err := r.DB.WithContext(ctx).
		Table("order_items AS oi").
		Select("oi.id, oi.product_id, oi.quantity, oi.unit_price, oi.quantity * oi.unit_price AS subtotal, p.name AS product_name, p.image_url").
		Joins("LEFT JOIN products p ON p.id = oi.product_id").
		Where("oi.order_id = ?", orderID).
		Order("oi.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := r.DB.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
