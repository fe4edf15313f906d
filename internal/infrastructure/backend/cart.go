package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

// wireCartLine is one product entry as the backend serialises it.
type wireCartLine struct {
	IDProduit    json.Number `json:"idProduit"`
	NomProduit   string      `json:"nomProduit"`
	PrixUnitaire float64     `json:"prixUnitaire"`
	Quantite     int         `json:"quantite"`
	DateAjout    time.Time   `json:"dateAjout"`
	NomVendeur   string      `json:"nomVendeur"`
	Image        string      `json:"image"`
}

// wireCart is the nested cart object returned by the list endpoint.
type wireCart struct {
	ID       json.Number    `json:"id"`
	ClientID json.Number    `json:"clientId"`
	Produits []wireCartLine `json:"produits"`
}

// wireUpdateLine is the slimmer line shape the update endpoint expects.
type wireUpdateLine struct {
	IDProduit string    `json:"idProduit"`
	Quantite  int       `json:"quantite"`
	DateAjout time.Time `json:"dateAjout"`
}

type wireCartUpdate struct {
	ID       string           `json:"id"`
	Produits []wireUpdateLine `json:"produits"`
	ClientID string           `json:"clientId"`
}

// FetchCart retrieves the user's cart list and flattens the first (only)
// cart into a snapshot. A user without a cart yields an empty snapshot.
func (c *Client) FetchCart(ctx context.Context, userID string) (domain.CartSnapshot, error) {
	var env envelope
	err := c.do(ctx, request{
		endpoint: "cart_fetch",
		method:   http.MethodGet,
		path:     "/api/paniers/client/liste/" + userID,
		authed:   true,
	}, &env)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	var carts []wireCart
	if err := json.Unmarshal(env.Data, &carts); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("cart_fetch: decode cart list: %w", err)
	}
	if len(carts) == 0 {
		return domain.CartSnapshot{ClientID: userID}, nil
	}
	return flattenCart(carts[0]), nil
}

// UpdateCart pushes the complete line list and returns the server's cart.
func (c *Client) UpdateCart(ctx context.Context, update ports.CartUpdate) (domain.CartSnapshot, error) {
	body := wireCartUpdate{
		ID:       update.CartID,
		ClientID: update.ClientID,
		Produits: make([]wireUpdateLine, 0, len(update.Lines)),
	}
	for _, l := range update.Lines {
		body.Produits = append(body.Produits, wireUpdateLine{
			IDProduit: l.ProductID,
			Quantite:  l.Quantity,
			DateAjout: l.AddedAt,
		})
	}

	var env envelope
	err := c.do(ctx, request{
		endpoint: "cart_update",
		method:   http.MethodPut,
		path:     "/api/paniers/client/update",
		body:     body,
		authed:   true,
	}, &env)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	var cart wireCart
	if err := json.Unmarshal(env.Data, &cart); err != nil {
		return domain.CartSnapshot{}, fmt.Errorf("cart_update: decode cart: %w", err)
	}
	return flattenCart(cart), nil
}

// DeleteCart removes the cart by id.
func (c *Client) DeleteCart(ctx context.Context, cartID string) error {
	return c.do(ctx, request{
		endpoint: "cart_delete",
		method:   http.MethodDelete,
		path:     "/api/paniers/client/delete/" + cartID,
		authed:   true,
	}, nil)
}

// flattenCart converts the backend's nested cart into the flat snapshot the
// screens render.
func flattenCart(cart wireCart) domain.CartSnapshot {
	snap := domain.CartSnapshot{
		CartID:   cart.ID.String(),
		ClientID: cart.ClientID.String(),
		Lines:    make([]domain.CartLine, 0, len(cart.Produits)),
	}
	for _, p := range cart.Produits {
		snap.Lines = append(snap.Lines, domain.CartLine{
			ProductID:  p.IDProduit.String(),
			Name:       p.NomProduit,
			UnitPrice:  p.PrixUnitaire,
			Quantity:   p.Quantite,
			AddedAt:    p.DateAjout,
			VendorName: p.NomVendeur,
			ImagePath:  p.Image,
		})
	}
	return snap
}
