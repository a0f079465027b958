package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
	"github.com/Skotchmaster/shopapi/internal/repo"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

type CheckoutResult struct {
	OrderID uint
	// Total is rounded to cents; the stored order keeps the full-precision sum.
	Total float64
}

// Checkout turns the session's cart into a pending order. Stock is checked against
// the prices and quantities read inside the transaction and decremented with a
// conditional update, so two concurrent checkouts can never oversell a product.
func (s *OrderService) Checkout(ctx context.Context, session SessionIdentity, userID *uint) (*CheckoutResult, error) {
	var (
		order models.Order
		lines []models.CheckoutLine
	)

	err := s.Repo.WithTx(ctx, func(tx *repo.GormRepo) error {
		var err error
		lines, err = tx.CheckoutLines(ctx, session.String())
		if err != nil {
			return fmt.Errorf("load cart: %w", err)
		}
		if len(lines) == 0 {
			return ErrEmptyCart
		}

		for _, l := range lines {
			if l.Quantity > l.Stock {
				return &InsufficientStockError{ProductID: l.ProductID, ProductName: l.Name, Available: l.Stock}
			}
		}

		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, l := range lines {
			total += float64(l.Quantity) * l.Price
			items = append(items, models.OrderItem{
				ProductID: l.ProductID,
				Quantity:  l.Quantity,
				UnitPrice: l.Price,
			})
		}

		order = models.Order{UserID: userID, Status: models.OrderStatusPending, Total: total}
		if err := tx.CreateOrder(ctx, &order, items); err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		for _, l := range lines {
			ok, err := tx.DecrementStock(ctx, l.ProductID, l.Quantity)
			if err != nil {
				return fmt.Errorf("decrement stock of product %d: %w", l.ProductID, err)
			}
			if !ok {
				available := 0
				if p, err := tx.GetProduct(ctx, l.ProductID); err == nil {
					available = p.Stock
				}
				return &InsufficientStockError{ProductID: l.ProductID, ProductName: l.Name, Available: available}
			}
		}

		ids := make([]uint, len(lines))
		for i, l := range lines {
			ids[i] = l.LineID
		}
		n, err := tx.DeleteCartLines(ctx, session.String(), ids)
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if n != int64(len(lines)) {
			return fmt.Errorf("Cart changed during checkout. Please try again: %w", ErrConflict)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	eventItems := make([]map[string]any, 0, len(lines))
	for _, l := range lines {
		eventItems = append(eventItems, map[string]any{
			"product_id": l.ProductID,
			"quantity":   l.Quantity,
			"unit_price": l.Price,
		})
	}
	publish(ctx, s.Events, mykafka.TopicOrderEvents, strconv.FormatUint(uint64(order.ID), 10), "order_placed", map[string]any{
		"order_id":   order.ID,
		"user_id":    userID,
		"session_id": session.String(),
		"total":      order.Total,
		"items":      eventItems,
	})

	return &CheckoutResult{OrderID: order.ID, Total: round2(order.Total)}, nil
}

type OrderFilter struct {
	UserID *uint
	Status string
}

func (s *OrderService) ListOrders(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	if f.Status != "" {
		if _, err := ParseOrderStatus(f.Status); err != nil {
			return nil, err
		}
	}
	return s.Repo.ListOrders(ctx, repo.OrderFilter{UserID: f.UserID, Status: f.Status})
}

func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.OrderDetail, error) {
	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	items, err := s.Repo.OrderLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.OrderDetail{Order: *order, Items: items}, nil
}

func validStatusList() string {
	names := make([]string, len(models.OrderStatuses))
	for i, st := range models.OrderStatuses {
		names[i] = string(st)
	}
	return strings.Join(names, ", ")
}

func ParseOrderStatus(raw string) (models.OrderStatus, error) {
	for _, st := range models.OrderStatuses {
		if raw == string(st) {
			return st, nil
		}
	}
	return "", fmt.Errorf("Invalid status. Must be one of: %s: %w", validStatusList(), ErrValidation)
}

// UpdateStatus sets the order status. Setting the current status again is a no-op success.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, raw string) (*models.Order, error) {
	status, err := ParseOrderStatus(raw)
	if err != nil {
		return nil, err
	}

	order, err := s.Repo.GetOrder(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	if order.Status != status {
		if err := s.Repo.UpdateOrderStatus(ctx, id, status); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("order %d: %w", id, ErrNotFound)
			}
			return nil, err
		}
		publish(ctx, s.Events, mykafka.TopicOrderEvents, strconv.FormatUint(uint64(id), 10), "order_status_changed", map[string]any{
			"order_id": id,
			"from":     order.Status,
			"to":       status,
		})
		order.Status = status
	}
	return order, nil
}
