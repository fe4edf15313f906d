package ports

import (
	"context"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// CartUpdate is the full-line-list payload pushed on every cart mutation.
// The backend replaces the cart's contents with exactly these lines.
type CartUpdate struct {
	CartID   string
	ClientID string
	Lines    []domain.CartLine
}

// CartGateway covers the authenticated cart endpoints.
type CartGateway interface {
	// FetchCart retrieves and flattens the user's cart. A user with no cart
	// yet yields an empty snapshot with no cart id.
	FetchCart(ctx context.Context, userID string) (domain.CartSnapshot, error)
	// UpdateCart pushes the complete line list and returns the server's
	// authoritative cart.
	UpdateCart(ctx context.Context, update CartUpdate) (domain.CartSnapshot, error)
	// DeleteCart removes the cart by id.
	DeleteCart(ctx context.Context, cartID string) error
}
