package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/soukly/marketplace-client/internal/core/ports"
)

// ListProducts returns the browsable catalog.
func (c *Client) ListProducts(ctx context.Context) ([]ports.ProductSummary, error) {
	var env envelope
	err := c.do(ctx, request{
		endpoint: "product_list",
		method:   http.MethodGet,
		path:     "/api/products/liste",
		authed:   true,
	}, &env)
	if err != nil {
		return nil, err
	}

	var products []struct {
		ID         json.Number `json:"id"`
		Nom        string      `json:"nom"`
		Prix       float64     `json:"prix"`
		NomVendeur string      `json:"nomVendeur"`
		Image      string      `json:"image"`
	}
	if err := json.Unmarshal(env.Data, &products); err != nil {
		return nil, fmt.Errorf("product_list: decode products: %w", err)
	}
	out := make([]ports.ProductSummary, 0, len(products))
	for _, p := range products {
		out = append(out, ports.ProductSummary{
			ProductID:  p.ID.String(),
			Name:       p.Nom,
			UnitPrice:  p.Prix,
			VendorName: p.NomVendeur,
			ImagePath:  p.Image,
		})
	}
	return out, nil
}
