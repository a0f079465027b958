package db

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/models"
)

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.AllModels()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

type seedProduct struct {
	name, description string
	price             float64
	stock             int
	categorySlug      string
	imageText         string
}

var seedCategories = []models.Category{
	{Name: "Electronics", Slug: "electronics", Description: strPtr("Gadgets, devices, and tech accessories")},
	{Name: "Clothing", Slug: "clothing", Description: strPtr("Men and women fashion")},
	{Name: "Books", Slug: "books", Description: strPtr("Fiction, non-fiction, and educational")},
	{Name: "Home & Garden", Slug: "home-garden", Description: strPtr("Furniture, decor, and garden supplies")},
}

var seedProducts = []seedProduct{
	{"Wireless Headphones", "Premium noise-cancelling over-ear headphones", 129.99, 50, "electronics", "Headphones"},
	{"Mechanical Keyboard", "Compact TKL mechanical keyboard with RGB lighting", 89.99, 30, "electronics", "Keyboard"},
	{"USB-C Hub", "7-in-1 USB-C hub with HDMI, USB 3.0 and PD charging", 39.99, 100, "electronics", "USB+Hub"},
	{"Classic White Tee", "100% organic cotton unisex t-shirt", 24.99, 200, "clothing", "T-Shirt"},
	{"Denim Jacket", "Slim-fit blue denim jacket", 59.99, 75, "clothing", "Jacket"},
	{"The Art of Code", "A journey through elegant software design patterns", 34.99, 150, "books", "Book"},
	{"Clean Architecture", "Practical guide to sustainable software systems", 44.99, 80, "books", "Book"},
	{"Bamboo Desk Organizer", "Eco-friendly 5-slot bamboo desk organizer", 19.99, 60, "home-garden", "Organizer"},
}

// Seed fills the catalog with sample data when no category exists yet.
// It reports whether anything was inserted.
func Seed(ctx context.Context, db *gorm.DB) (bool, error) {
	seeded := false
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.Category{}).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		bySlug := make(map[string]uint, len(seedCategories))
		for _, c := range seedCategories {
			c := c
			if err := tx.Create(&c).Error; err != nil {
				return fmt.Errorf("seed category %s: %w", c.Slug, err)
			}
			bySlug[c.Slug] = c.ID
		}

		for _, p := range seedProducts {
			catID := bySlug[p.categorySlug]
			prod := models.Product{
				Name:        p.name,
				Description: strPtr(p.description),
				Price:       p.price,
				Stock:       p.stock,
				CategoryID:  &catID,
				ImageURL:    strPtr("https://placehold.co/400x300?text=" + p.imageText),
			}
			if err := tx.Create(&prod).Error; err != nil {
				return fmt.Errorf("seed product %s: %w", p.name, err)
			}
		}
		seeded = true
		return nil
	})
	return seeded, err
}

func strPtr(s string) *string { return &s }
