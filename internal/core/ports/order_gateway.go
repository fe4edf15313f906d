package ports

import (
	"context"
	"time"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// PlaceOrderInput carries everything the backend needs to turn the current
// cart into an order.
type PlaceOrderInput struct {
	ClientID       string
	CartID         string
	ShippingOption string
	Total          float64
}

// OrderResult is the backend's confirmation of a placed order.
type OrderResult struct {
	OrderID   string
	CreatedAt time.Time
}

// OrderSummary is one row of the order history screen.
type OrderSummary struct {
	OrderID   string
	Status    string
	Total     float64
	CreatedAt time.Time
}

// OrderGateway covers the authenticated order endpoints.
type OrderGateway interface {
	PlaceOrder(ctx context.Context, in PlaceOrderInput) (OrderResult, error)
	ListOrders(ctx context.Context, userID string) ([]OrderSummary, error)
}

// ProductSummary is one row of the product browse screen.
type ProductSummary struct {
	ProductID  string
	Name       string
	UnitPrice  float64
	VendorName string
	ImagePath  string
}

// CatalogGateway covers the read-only product endpoints.
type CatalogGateway interface {
	ListProducts(ctx context.Context) ([]ProductSummary, error)
}

// DelivererSummary is one available deliverer near the device position.
type DelivererSummary struct {
	DelivererID string
	Name        string
	Phone       string
	DistanceKm  float64
}

// DeliveryGateway matches available deliverers against a location fix.
type DeliveryGateway interface {
	AvailableDeliverers(ctx context.Context, fix domain.LocationFix) ([]DelivererSummary, error)
}
