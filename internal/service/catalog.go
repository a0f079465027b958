package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
	"github.com/Skotchmaster/shopapi/internal/repo"
	"github.com/Skotchmaster/shopapi/internal/search"
	"github.com/Skotchmaster/shopapi/internal/transport"
)

type CatalogService struct {
	Repo   *repo.GormRepo
	Search search.Index
	Events mykafka.Publisher
}

func (s *CatalogService) index() search.Index {
	if s.Search == nil {
		return search.Disabled{}
	}
	return s.Search
}

func (s *CatalogService) ListProducts(ctx context.Context, f repo.ProductFilter) ([]models.ProductView, error) {
	return s.Repo.ListProducts(ctx, f)
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.ProductView, error) {
	p, err := s.Repo.GetProductView(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
	}
	return p, err
}

func validateProduct(p *models.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return fmt.Errorf("name is required: %w", ErrValidation)
	}
	if p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
		return fmt.Errorf("price must be a non-negative number: %w", ErrValidation)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must be a non-negative integer: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) checkCategory(ctx context.Context, id *uint) error {
	if id == nil {
		return nil
	}
	ok, err := s.Repo.CategoryExists(ctx, *id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("category %d does not exist: %w", *id, ErrValidation)
	}
	return nil
}

func (s *CatalogService) CreateProduct(ctx context.Context, req transport.CreateProductRequest) (*models.ProductView, error) {
	if strings.TrimSpace(req.Name) == "" || req.Price == nil || req.Stock == nil {
		return nil, fmt.Errorf("name, price, and stock are required: %w", ErrValidation)
	}

	prod := req.ToModel()
	if err := validateProduct(&prod); err != nil {
		return nil, err
	}
	if err := s.checkCategory(ctx, prod.CategoryID); err != nil {
		return nil, err
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	view, err := s.Repo.GetProductView(ctx, prod.ID)
	if err != nil {
		return nil, err
	}

	s.afterChange(ctx, "product_created", view)
	return view, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, patch transport.ProductPatch) (*models.ProductView, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	patch.Apply(prod)
	if err := validateProduct(prod); err != nil {
		return nil, err
	}
	if patch.CategoryID != nil {
		if err := s.checkCategory(ctx, prod.CategoryID); err != nil {
			return nil, err
		}
	}

	if err := s.Repo.SaveProduct(ctx, prod); err != nil {
		return nil, err
	}

	view, err := s.Repo.GetProductView(ctx, id)
	if err != nil {
		return nil, err
	}

	s.afterChange(ctx, "product_updated", view)
	return view, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return err
	}

	if err := s.index().DeleteProduct(ctx, id); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", id, "error", err)
	}
	key := strconv.FormatUint(uint64(id), 10)
	publish(ctx, s.Events, mykafka.TopicProductEvents, key, "product_deleted", map[string]any{"product_id": id})
	return nil
}

func (s *CatalogService) afterChange(ctx context.Context, eventType string, view *models.ProductView) {
	if err := s.index().IndexProduct(ctx, *view); err != nil {
		logging.FromContext(ctx).Error("search_index_failed", "product_id", view.ID, "error", err)
	}
	key := strconv.FormatUint(uint64(view.ID), 10)
	publish(ctx, s.Events, mykafka.TopicProductEvents, key, eventType, map[string]any{
		"product_id": view.ID,
		"name":       view.Name,
		"price":      view.Price,
		"stock":      view.Stock,
	})
}

func (s *CatalogService) SearchProducts(ctx context.Context, query string, offset, limit int) (int64, []models.ProductView, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return 0, nil, fmt.Errorf("q is required: %w", ErrValidation)
	}
	return s.index().Search(ctx, query, offset, limit)
}

// Reindex pushes every product into the search index.
func (s *CatalogService) Reindex(ctx context.Context) (int, error) {
	items, err := s.Repo.ListProducts(ctx, repo.ProductFilter{})
	if err != nil {
		return 0, err
	}
	for _, p := range items {
		if err := s.index().IndexProduct(ctx, p); err != nil {
			return 0, err
		}
	}
	return len(items), nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	return s.Repo.ListCategories(ctx)
}

func (s *CatalogService) CreateCategory(ctx context.Context, req transport.CreateCategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	slug := strings.TrimSpace(req.Slug)
	if name == "" || slug == "" {
		return nil, fmt.Errorf("name and slug are required: %w", ErrValidation)
	}

	cat := models.Category{Name: name, Slug: slug, Description: req.Description}
	if err := s.Repo.CreateCategory(ctx, &cat); err != nil {
		if repo.IsDuplicate(err) {
			return nil, fmt.Errorf("Category name or slug already exists: %w", ErrConflict)
		}
		return nil, err
	}
	return &cat, nil
}
