package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shopapi/internal/models"
	"github.com/Skotchmaster/shopapi/internal/mykafka"
	"github.com/Skotchmaster/shopapi/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events mykafka.Publisher
}

type Cart struct {
	Items []models.CartLineView
	Total float64
	Count int
}

func (s *CartService) GetCart(ctx context.Context, session SessionIdentity) (*Cart, error) {
	items, err := s.Repo.CartLines(ctx, session.String())
	if err != nil {
		return nil, err
	}

	var total float64
	for _, it := range items {
		total += it.Subtotal
	}
	return &Cart{Items: items, Total: round2(total), Count: len(items)}, nil
}

// AddToCart adds quantity units of a product, merging with an existing line.
// No stock check happens here; stock is validated at checkout.
func (s *CartService) AddToCart(ctx context.Context, session SessionIdentity, productID uint, quantity int) ([]models.CartSummaryLine, error) {
	if productID == 0 {
		return nil, fmt.Errorf("product_id is required: %w", ErrValidation)
	}
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be a positive integer: %w", ErrValidation)
	}

	ok, err := s.Repo.ProductExists(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
	}

	item := models.CartItem{SessionID: session.String(), ProductID: productID, Quantity: quantity}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, session.String(), "cart_item_added", map[string]any{
		"session_id":    session.String(),
		"product_id":    productID,
		"quantity":      quantity,
		"line_quantity": item.Quantity,
	})

	return s.Repo.CartSummary(ctx, session.String())
}

// RemoveLine deletes a cart line. A line owned by another session is reported as not found.
func (s *CartService) RemoveLine(ctx context.Context, session SessionIdentity, lineID uint) error {
	if err := s.Repo.DeleteCartLine(ctx, session.String(), lineID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("cart item %d: %w", lineID, ErrNotFound)
		}
		return err
	}

	publish(ctx, s.Events, mykafka.TopicCartEvents, session.String(), "cart_item_removed", map[string]any{
		"session_id": session.String(),
		"line_id":    lineID,
	})
	return nil
}
