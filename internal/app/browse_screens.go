package app

import "context"

func (a *App) browseScreen(ctx context.Context) {
	products, err := a.deps.Catalog.ListProducts(ctx)
	if err != nil {
		a.banner(err)
		return
	}
	a.printf("\n-- Products --\n")
	if len(products) == 0 {
		a.printf("(no products)\n")
		return
	}
	for _, p := range products {
		a.printf("  %-28s %8.2f  (%s)\n", p.Name, p.UnitPrice, p.VendorName)
	}
}

func (a *App) ordersScreen(ctx context.Context) {
	_, session := a.deps.Sessions.Current()
	orders, err := a.deps.Orders.ListOrders(ctx, session.UserID)
	if err != nil {
		a.banner(err)
		return
	}
	a.printf("\n-- Orders --\n")
	if len(orders) == 0 {
		a.printf("(no orders yet)\n")
		return
	}
	for _, o := range orders {
		a.printf("  #%-8s %-12s %8.2f  %s\n", o.OrderID, o.Status, o.Total, o.CreatedAt.Format("2006-01-02"))
	}
}

// deliverersScreen matches deliverers against the device position. Without a
// fix the screen degrades to an inline notice; no placeholder coordinates are
// ever sent.
func (a *App) deliverersScreen(ctx context.Context) {
	fix, ok := a.deps.Location.Fix()
	if !ok {
		a.printf("Location unavailable; cannot search for nearby deliverers.\n")
		return
	}
	deliverers, err := a.deps.Delivery.AvailableDeliverers(ctx, fix)
	if err != nil {
		a.banner(err)
		return
	}
	a.printf("\n-- Deliverers nearby --\n")
	if len(deliverers) == 0 {
		a.printf("(none available)\n")
		return
	}
	for _, d := range deliverers {
		a.printf("  %-20s %-14s %5.1f km\n", d.Name, d.Phone, d.DistanceKm)
	}
}
