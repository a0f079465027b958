package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/models"
)

func (r *GormRepo) CartLines(ctx context.Context, sessionID string) ([]models.CartLineView, error) {
	items := []models.CartLineView{}
	err := r.DB.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.id, ci.quantity, ci.added_at, p.id AS product_id, p.name, p.price, p.image_url, ci.quantity * p.price AS subtotal").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.session_id = ?", sessionID).
		Order("ci.added_at DESC").
		Order("ci.id DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CartSummary(ctx context.Context, sessionID string) ([]models.CartSummaryLine, error) {
	items := []models.CartSummaryLine{}
	err := r.DB.WithContext(ctx).
		Table("cart_items AS ci").
		Select("ci.id, ci.quantity, p.name, p.price").
		Joins("JOIN products p ON p.id = ci.product_id").
		Where("ci.session_id = ?", sessionID).
		Order("ci.id ASC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// AddToCart merges into the (session, product) line, creating it on first add.
// Each step is a single statement, so a lost insert race can fall back to the merge
// without a failed statement poisoning an open transaction.
func (r *GormRepo) AddToCart(ctx context.Context, item *models.CartItem) error {
	db := r.DB.WithContext(ctx)

	merged, err := mergeCartLine(db, item)
	if err != nil || merged {
		return err
	}

	err = db.Create(item).Error
	if IsDuplicate(err) {
		_, err = mergeCartLine(db, item)
	}
	return err
}

func mergeCartLine(tx *gorm.DB, item *models.CartItem) (bool, error) {
	res := tx.Model(&models.CartItem{}).
		Where("session_id = ? AND product_id = ?", item.SessionID, item.ProductID).
		Update("quantity", gorm.Expr("quantity + ?", item.Quantity))
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, tx.Where("session_id = ? AND product_id = ?", item.SessionID, item.ProductID).First(item).Error
}

// DeleteCartLine removes a line only if it belongs to the session.
func (r *GormRepo) DeleteCartLine(ctx context.Context, sessionID string, id uint) error {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND session_id = ?", id, sessionID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteCartLines removes the given lines of the session and reports how many were deleted.
func (r *GormRepo) DeleteCartLines(ctx context.Context, sessionID string, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.DB.WithContext(ctx).
		Where("session_id = ? AND id IN ?", sessionID, ids).
		Delete(&models.CartItem{})
	return res.RowsAffected, res.Error
}
