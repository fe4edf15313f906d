package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

type wireOrder struct {
	ID           json.Number `json:"id"`
	Statut       string      `json:"statut"`
	Total        float64     `json:"total"`
	DateCommande time.Time   `json:"dateCommande"`
}

// PlaceOrder submits the checkout result as a new order.
func (c *Client) PlaceOrder(ctx context.Context, in ports.PlaceOrderInput) (ports.OrderResult, error) {
	body := struct {
		ClientID      string  `json:"clientId"`
		PanierID      string  `json:"panierId"`
		ModeLivraison string  `json:"modeLivraison"`
		Total         float64 `json:"total"`
	}{
		ClientID:      in.ClientID,
		PanierID:      in.CartID,
		ModeLivraison: in.ShippingOption,
		Total:         in.Total,
	}

	var env envelope
	err := c.do(ctx, request{
		endpoint: "order_place",
		method:   http.MethodPost,
		path:     "/api/commandes/new",
		body:     body,
		authed:   true,
	}, &env)
	if err != nil {
		return ports.OrderResult{}, err
	}

	var order wireOrder
	if err := json.Unmarshal(env.Data, &order); err != nil {
		return ports.OrderResult{}, fmt.Errorf("order_place: decode order: %w", err)
	}
	return ports.OrderResult{OrderID: order.ID.String(), CreatedAt: order.DateCommande}, nil
}

// ListOrders returns the user's order history.
func (c *Client) ListOrders(ctx context.Context, userID string) ([]ports.OrderSummary, error) {
	var env envelope
	err := c.do(ctx, request{
		endpoint: "order_list",
		method:   http.MethodGet,
		path:     "/api/commandes/client/liste/" + userID,
		authed:   true,
	}, &env)
	if err != nil {
		return nil, err
	}

	var orders []wireOrder
	if err := json.Unmarshal(env.Data, &orders); err != nil {
		return nil, fmt.Errorf("order_list: decode orders: %w", err)
	}
	out := make([]ports.OrderSummary, 0, len(orders))
	for _, o := range orders {
		out = append(out, ports.OrderSummary{
			OrderID:   o.ID.String(),
			Status:    o.Statut,
			Total:     o.Total,
			CreatedAt: o.DateCommande,
		})
	}
	return out, nil
}

// AvailableDeliverers lists deliverers close to the given position.
func (c *Client) AvailableDeliverers(ctx context.Context, fix domain.LocationFix) ([]ports.DelivererSummary, error) {
	var env envelope
	err := c.do(ctx, request{
		endpoint: "deliverers_available",
		method:   http.MethodGet,
		path:     "/api/livreurs/disponibles",
		query: url.Values{
			"lat": {strconv.FormatFloat(fix.Latitude, 'f', -1, 64)},
			"lng": {strconv.FormatFloat(fix.Longitude, 'f', -1, 64)},
		},
		authed: true,
	}, &env)
	if err != nil {
		return nil, err
	}

	var deliverers []struct {
		ID         json.Number `json:"id"`
		Nom        string      `json:"nom"`
		Telephone  string      `json:"telephone"`
		DistanceKm float64     `json:"distanceKm"`
	}
	if err := json.Unmarshal(env.Data, &deliverers); err != nil {
		return nil, fmt.Errorf("deliverers_available: decode list: %w", err)
	}
	out := make([]ports.DelivererSummary, 0, len(deliverers))
	for _, d := range deliverers {
		out = append(out, ports.DelivererSummary{
			DelivererID: d.ID.String(),
			Name:        d.Nom,
			Phone:       d.Telephone,
			DistanceKm:  d.DistanceKm,
		})
	}
	return out, nil
}
