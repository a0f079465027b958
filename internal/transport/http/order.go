package httpserver

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/shopapi/internal/logging"
	"github.com/Skotchmaster/shopapi/internal/service"
	"github.com/Skotchmaster/shopapi/internal/transport"
)

type OrderHTTP struct {
	Svc *service.OrderService
}

func (h *OrderHTTP) Checkout(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.checkout")

	var req transport.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "checkout_failed", "invalid body", err)
	}

	res, err := h.Svc.Checkout(ctx, session(c), req.UserID)
	if err != nil {
		return fail(l, "checkout_failed", err, "", "Checkout failed")
	}

	l.Info("checkout_success", "order_id", res.OrderID, "total", res.Total)
	return c.JSON(http.StatusCreated, map[string]any{
		"message": "Order placed successfully",
		"orderId": res.OrderID,
		"total":   res.Total,
	})
}

func (h *OrderHTTP) ListOrders(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.list_orders")

	userID, err := optionalUint(c, "user_id")
	if err != nil {
		return badRequest(l, "list_orders_failed", err.Error(), err)
	}

	orders, err := h.Svc.ListOrders(ctx, service.OrderFilter{UserID: userID, Status: c.QueryParam("status")})
	if err != nil {
		return fail(l, "list_orders_failed", err, "", "Failed to fetch orders")
	}
	return c.JSON(http.StatusOK, orders)
}

func (h *OrderHTTP) GetOrder(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.get_order")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "get_order_failed", err.Error(), err)
	}

	order, err := h.Svc.GetOrder(ctx, id)
	if err != nil {
		return fail(l, "get_order_failed", err, "Order not found", "Failed to fetch order")
	}
	return c.JSON(http.StatusOK, order)
}

func (h *OrderHTTP) UpdateStatus(c echo.Context) error {
	ctx := c.Request().Context()
	l := logging.FromContext(ctx).With("handler", "order.update_status")

	id, err := parseID(c, "id")
	if err != nil {
		return badRequest(l, "update_order_status_failed", err.Error(), err)
	}

	var req transport.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(l, "update_order_status_failed", "invalid body", err)
	}

	order, err := h.Svc.UpdateStatus(ctx, id, req.Status)
	if err != nil {
		return fail(l, "update_order_status_failed", err, "Order not found", "Failed to update order status")
	}

	l.Info("update_order_status_success", "order_id", id, "status", order.Status)
	return c.JSON(http.StatusOK, map[string]any{
		"message": "Order status updated",
		"orderId": order.ID,
		"status":  order.Status,
	})
}
