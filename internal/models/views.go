package models

import "time"

type CartLineView struct {
	ID        uint      `json:"id"`
	Quantity  int       `json:"quantity"`
	AddedAt   time.Time `json:"added_at"`
	ProductID uint      `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	ImageURL  *string   `json:"image_url"`
	Subtotal  float64   `json:"subtotal"`
}

// CartSummaryLine is the short form returned after adding to a cart.
type CartSummaryLine struct {
	ID       uint    `json:"id"`
	Quantity int     `json:"quantity"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
}

// CheckoutLine is a cart line joined with the product state read at checkout.
type CheckoutLine struct {
	LineID    uint
	ProductID uint
	Name      string
	Price     float64
	Stock     int
	Quantity  int
}

type OrderLineView struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
	Subtotal    float64 `json:"subtotal"`
	ProductName *string `json:"product_name"`
	ImageURL    *string `json:"image_url"`
}

type OrderDetail struct {
	Order
	Items []OrderLineView `json:"items"`
}
