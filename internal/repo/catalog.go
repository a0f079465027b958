package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/models"
)

type ProductFilter struct {
	CategorySlug string
	Search       string
	MinPrice     *float64
	MaxPrice     *float64
}

func (r *GormRepo) productViews(ctx context.Context) *gorm.DB {
	return r.DB.WithContext(ctx).
		Table("products AS p").
		Select("p.*, c.name AS category_name, c.slug AS category_slug").
		Joins("LEFT JOIN categories c ON c.id = p.category_id")
}

func (r *GormRepo) ListProducts(ctx context.Context, f ProductFilter) ([]models.ProductView, error) {
	q := r.productViews(ctx)

	if f.CategorySlug != "" {
		q = q.Where("c.slug = ?", f.CategorySlug)
	}
	if f.Search != "" {
		q = q.Where("LOWER(p.name) LIKE ?", "%"+strings.ToLower(f.Search)+"%")
	}
	if f.MinPrice != nil {
		q = q.Where("p.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		q = q.Where("p.price <= ?", *f.MaxPrice)
	}

	items := []models.ProductView{}
	if err := q.Order("p.created_at DESC").Order("p.id DESC").Scan(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) GetProductView(ctx context.Context, id uint) (*models.ProductView, error) {
	var view models.ProductView
	res := r.productViews(ctx).Where("p.id = ?", id).Limit(1).Scan(&view)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &view, nil
}

func (r *GormRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.DB.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *GormRepo) ProductExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Category").Create(prod).Error
}

func (r *GormRepo) SaveProduct(ctx context.Context, prod *models.Product) error {
	return r.DB.WithContext(ctx).Omit("Category").Save(prod).Error
}

func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	res := r.DB.WithContext(ctx).Delete(&models.Product{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	items := []models.Category{}
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *GormRepo) CategoryExists(ctx context.Context, id uint) (bool, error) {
	var n int64
	if err := r.DB.WithContext(ctx).Model(&models.Category{}).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, cat *models.Category) error {
	return r.DB.WithContext(ctx).Create(cat).Error
}
