package transport

import (
	"github.com/Skotchmaster/shopapi/internal/models"
)

type CreateProductRequest struct {
	Name        string   `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
}

func (r CreateProductRequest) ToModel() models.Product {
	p := models.Product{
		Name:        r.Name,
		Description: r.Description,
		CategoryID:  r.CategoryID,
		ImageURL:    r.ImageURL,
	}
	if r.Price != nil {
		p.Price = *r.Price
	}
	if r.Stock != nil {
		p.Stock = *r.Stock
	}
	return p
}

// ProductPatch carries a partial product update. Nil fields, whether absent or an
// explicit JSON null, keep their stored value; nullable columns cannot be cleared here.
type ProductPatch struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Stock       *int     `json:"stock"`
	CategoryID  *uint    `json:"category_id"`
	ImageURL    *string  `json:"image_url"`
}

// Apply merges the set fields of the patch into p.
func (pp ProductPatch) Apply(p *models.Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Stock != nil {
		p.Stock = *pp.Stock
	}
	if pp.CategoryID != nil {
		p.CategoryID = pp.CategoryID
	}
	if pp.ImageURL != nil {
		p.ImageURL = pp.ImageURL
	}
}

type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Slug        string  `json:"slug"`
	Description *string `json:"description"`
}

// AddToCartRequest also accepts the legacy free-form "item" payload.
type AddToCartRequest struct {
	ProductID *uint `json:"product_id"`
	Quantity  *int  `json:"quantity"`
	Item      any   `json:"item"`
}

type CheckoutRequest struct {
	UserID *uint `json:"user_id"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LegacyLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type CartResponse struct {
	Items []models.CartLineView `json:"items"`
	Total float64               `json:"total"`
	Count int                   `json:"count"`
}
