package models

import (
	"time"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// OrderStatuses lists the accepted statuses in display order.
var OrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Username  string    `gorm:"uniqueIndex;not null"            json:"username"`
	Email     string    `gorm:"uniqueIndex;not null"            json:"email"`
	Password  string    `gorm:"not null"                        json:"-"`
	Role      string    `gorm:"not null;default:customer"       json:"role"`
	CreatedAt time.Time `                                       json:"created_at"`
}

type Category struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	Name        string  `gorm:"uniqueIndex;not null"      json:"name"`
	Slug        string  `gorm:"uniqueIndex;not null"      json:"slug"`
	Description *string `                                 json:"description"`
}

type Product struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"        json:"id"`
	Name        string    `gorm:"not null"                        json:"name"`
	Description *string   `                                       json:"description"`
	Price       float64   `gorm:"not null;check:price >= 0"       json:"price"`
	Stock       int       `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	CategoryID  *uint     `gorm:"index"                           json:"category_id"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL"    json:"-"`
	ImageURL    *string   `                                       json:"image_url"`
	CreatedAt   time.Time `gorm:"index"                           json:"created_at"`
}

// ProductView is a product joined with its category.
type ProductView struct {
	Product
	CategoryName *string `json:"category_name"`
	CategorySlug *string `json:"category_slug"`
}

type CartItem struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"                              json:"id"`
	SessionID string    `gorm:"not null;uniqueIndex:idx_cart_session_product"         json:"session_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_session_product"         json:"product_id"`
	Product   *Product  `gorm:"constraint:OnDelete:CASCADE"                           json:"-"`
	Quantity  int       `gorm:"not null;default:1;check:quantity > 0"                 json:"quantity"`
	AddedAt   time.Time `gorm:"autoCreateTime"                                        json:"added_at"`
}

type Order struct {
	ID        uint        `gorm:"primaryKey;autoIncrement"         json:"id"`
	UserID    *uint       `gorm:"index"                            json:"user_id"`
	User      *User       `gorm:"constraint:OnDelete:SET NULL"     json:"-"`
	Status    OrderStatus `gorm:"not null;default:pending;index"   json:"status"`
	Total     float64     `gorm:"not null;default:0"               json:"total"`
	CreatedAt time.Time   `gorm:"index"                            json:"created_at"`
	Items     []OrderItem `gorm:"constraint:OnDelete:CASCADE"      json:"-"`
}

// OrderItem has no foreign key to products: unit price and product id are a snapshot.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement"  json:"id"`
	OrderID   uint    `gorm:"index;not null"            json:"order_id"`
	ProductID uint    `gorm:"not null"                  json:"product_id"`
	Quantity  int     `gorm:"not null"                  json:"quantity"`
	UnitPrice float64 `gorm:"not null"                  json:"unit_price"`
}

func AllModels() []any {
	return []any{&User{}, &Category{}, &Product{}, &CartItem{}, &Order{}, &OrderItem{}}
}
