package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/service"
	"github.com/Skotchmaster/shopapi/internal/transport"
)

type CartHTTP struct {
	Svc *service.CartService
}

func session(c echo.Context) service.SessionIdentity {
	return service.NewSessionIdentity(c.Request().Header.Get(service.SessionHeader))
}

func (h *CartHTTP) GetCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.get_cart")

	cart, err := h.Svc.GetCart(ctx, session(c))
	if err != nil {
		return fail(l, "get_cart_failed", err, "", "Failed to fetch cart")
	}
	return c.JSON(http.StatusOK, transport.CartResponse{Items: cart.Items, Total: cart.Total, Count: cart.Count})
}

// legacyItem reports whether the body only carries the old free-form "item" field.
func legacyItem(req transport.AddToCartRequest) bool {
	if req.ProductID != nil || req.Item == nil {
		return false
	}
	switch v := req.Item.(type) {
	case string:
		return v != ""
	case bool:
		return v
	case float64:
		return v != 0
	}
	return true
}

func (h *CartHTTP) AddToCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.add_to_cart")

	var req transport.AddToCartRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "add_to_cart_failed", "invalid body", err)
	}

	if legacyItem(req) {
		return c.JSON(http.StatusCreated, map[string]any{"message": "Item added!", "currentCart": []any{req.Item}})
	}

	var productID uint
	if req.ProductID != nil {
		productID = *req.ProductID
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	current, err := h.Svc.AddToCart(ctx, session(c), productID, quantity)
	if err != nil {
		return fail(l, "add_to_cart_failed", err, "Product not found", "Failed to add item to cart")
	}

	l.Info("add_to_cart_success", "product_id", productID, "quantity", quantity)
	return c.JSON(http.StatusCreated, map[string]any{"message": "Item added", "currentCart": current})
}

func (h *CartHTTP) RemoveFromCart(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "cart.remove_from_cart")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "remove_from_cart_failed", err.Error(), err)
	}

	if err := h.Svc.RemoveLine(ctx, session(c), id); err != nil {
		return fail(l, "remove_from_cart_failed", err, "Cart item not found", "Failed to remove cart item")
	}
	return c.JSON(http.StatusOK, map[string]any{"message": "Item removed from cart"})
}
