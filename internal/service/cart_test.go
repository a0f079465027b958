package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSessionIdentity(t *testing.T) {
	t.Parallel()

	assert.Equal(t, DefaultSession, NewSessionIdentity("").String())
	assert.Equal(t, DefaultSession, NewSessionIdentity("   ").String())
	assert.Equal(t, "abc", NewSessionIdentity(" abc ").String())
	assert.Equal(t, DefaultSession, SessionIdentity{}.String())
}

func TestAddToCart_MergesLines(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	events := &recordingPublisher{}
	svc := &CartService{Repo: r, Events: events}

	p := seedProduct(t, r, "Notebook", 2.5, 1, nil)
	session := NewSessionIdentity("s1")

	_, err := svc.AddToCart(ctx, session, p.ID, 2)
	require.NoError(t, err)
	summary, err := svc.AddToCart(ctx, session, p.ID, 3)
	require.NoError(t, err)

	require.Len(t, summary, 1)
	assert.Equal(t, 5, summary[0].Quantity)
	assert.Equal(t, "Notebook", summary[0].Name)

	cart, err := svc.GetCart(ctx, session)
	require.NoError(t, err)
	require.Equal(t, 1, cart.Count)
	assert.Equal(t, 12.5, cart.Total)
	assert.Equal(t, 12.5, cart.Items[0].Subtotal)

	assert.Equal(t, []string{"cart_item_added", "cart_item_added"}, events.types())
}

func TestAddToCart_Validation(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	svc := &CartService{Repo: r}
	p := seedProduct(t, r, "Notebook", 2.5, 1, nil)

	tests := []struct {
		name      string
		productID uint
		quantity  int
		want      error
	}{
		{name: "missing product id", productID: 0, quantity: 1, want: ErrValidation},
		{name: "zero quantity", productID: p.ID, quantity: 0, want: ErrValidation},
		{name: "negative quantity", productID: p.ID, quantity: -2, want: ErrValidation},
		{name: "unknown product", productID: p.ID + 100, quantity: 1, want: ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AddToCart(ctx, NewSessionIdentity("s1"), tt.productID, tt.quantity)
			require.ErrorIs(t, err, tt.want)
		})
	}

	cart, err := svc.GetCart(ctx, NewSessionIdentity("s1"))
	require.NoError(t, err)
	assert.Zero(t, cart.Count)
}

func TestGetCart_OrderAndTotals(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	a := seedProduct(t, r, "A", 0.1, 10, nil)
	b := seedProduct(t, r, "B", 0.2, 10, nil)
	session := NewSessionIdentity("s1")

	_, err := svc.AddToCart(ctx, session, a.ID, 1)
	require.NoError(t, err)
	_, err = svc.AddToCart(ctx, session, b.ID, 1)
	require.NoError(t, err)

	cart, err := svc.GetCart(ctx, session)
	require.NoError(t, err)
	require.Equal(t, 2, cart.Count)
	assert.Equal(t, "B", cart.Items[0].Name)
	assert.Equal(t, 0.3, cart.Total)

	empty, err := svc.GetCart(ctx, NewSessionIdentity("nobody"))
	require.NoError(t, err)
	assert.NotNil(t, empty.Items)
	assert.Zero(t, empty.Total)
}

func TestRemoveLine(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	svc := &CartService{Repo: r}

	p := seedProduct(t, r, "Cup", 3, 10, nil)
	owner := NewSessionIdentity("owner")
	summary, err := svc.AddToCart(ctx, owner, p.ID, 1)
	require.NoError(t, err)
	lineID := summary[0].ID

	err = svc.RemoveLine(ctx, NewSessionIdentity("intruder"), lineID)
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.RemoveLine(ctx, owner, lineID))

	err = svc.RemoveLine(ctx, owner, lineID)
	require.ErrorIs(t, err, ErrNotFound)
}
