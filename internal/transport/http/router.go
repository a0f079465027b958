package httpserver

import (
	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopapi/internal/docs"
	authmw "github.com/Skotchmaster/shopapi/internal/middleware/auth"
	"github.com/Skotchmaster/shopapi/internal/models"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	CartHandler    *CartHTTP
	OrderHandler   *OrderHTTP
	AuthHandler    *AuthHTTP
}

func Register(e *echo.Echo, d *Deps) {
	e.HTTPErrorHandler = ErrorHandler

	docs.Register(e)

	api := e.Group("/api")
	api.GET("/health", Health)
	api.POST("/login", LegacyLogin)

	bearer := authmw.Middleware(d.AuthHandler.Svc)
	admin := []echo.MiddlewareFunc{bearer, authmw.RequireRole(models.RoleAdmin)}

	auth := api.Group("/auth")
	auth.POST("/register", d.AuthHandler.Register)
	auth.POST("/login", d.AuthHandler.Login)
	auth.POST("/logout", d.AuthHandler.Logout, bearer)
	auth.GET("/me", d.AuthHandler.Me, bearer)

	products := api.Group("/products")
	products.GET("", d.CatalogHandler.ListProducts)
	products.GET("/search", d.CatalogHandler.SearchProducts)
	products.GET("/:id", d.CatalogHandler.GetProduct)
	products.POST("", d.CatalogHandler.CreateProduct, admin...)
	products.PUT("/:id", d.CatalogHandler.UpdateProduct, admin...)
	products.DELETE("/:id", d.CatalogHandler.DeleteProduct, admin...)

	categories := api.Group("/categories")
	categories.GET("", d.CatalogHandler.ListCategories)
	categories.POST("", d.CatalogHandler.CreateCategory, admin...)

	cart := api.Group("/cart")
	cart.GET("", d.CartHandler.GetCart)
	cart.POST("", d.CartHandler.AddToCart)
	cart.DELETE("/:id", d.CartHandler.RemoveFromCart)

	orders := api.Group("/orders")
	orders.POST("", d.OrderHandler.Checkout)
	orders.GET("", d.OrderHandler.ListOrders)
	orders.GET("/:id", d.OrderHandler.GetOrder)
	orders.PATCH("/:id/status", d.OrderHandler.UpdateStatus, admin...)
}
