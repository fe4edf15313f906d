package app

import (
	"context"
	"strconv"
	"strings"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// cartScreen mirrors the server cart and forwards edits to the sync service.
// The subtotal and shipping preview are recomputed on every render.
func (a *App) cartScreen(ctx context.Context) {
	if err := a.deps.Cart.Load(ctx); err != nil {
		a.banner(err)
		return
	}

	for {
		snap, _ := a.deps.Cart.Snapshot()
		a.renderCart(snap)
		if len(snap.Lines) == 0 {
			return
		}

		a.printf("[u <n> <qty>] quantity  [r <n>] remove  [c] empty cart  [k] checkout  [q] back\n")
		input := a.prompt("cart> ")
		fields := strings.Fields(input)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "q":
			return
		case "u":
			if len(fields) != 3 {
				a.printf("usage: u <line> <quantity>\n")
				continue
			}
			line, ok := a.lineAt(snap, fields[1])
			if !ok {
				continue
			}
			qty, err := strconv.Atoi(fields[2])
			if err != nil {
				// Non-numeric input keeps the prior valid quantity.
				a.printf("quantity must be a number\n")
				continue
			}
			if err := a.deps.Cart.SetQuantity(ctx, line.ProductID, qty); err != nil {
				a.banner(err)
			}
		case "r":
			if len(fields) != 2 {
				a.printf("usage: r <line>\n")
				continue
			}
			line, ok := a.lineAt(snap, fields[1])
			if !ok {
				continue
			}
			if err := a.deps.Cart.Remove(ctx, line.ProductID); err != nil {
				a.banner(err)
			}
		case "c":
			// Destructive: always confirm first.
			if a.prompt("empty the whole cart? [y/N] ") != "y" {
				continue
			}
			if err := a.deps.Cart.Clear(ctx); err != nil {
				a.banner(err)
			}
		case "k":
			a.checkoutScreen(ctx)
			return
		}
	}
}

func (a *App) renderCart(snap domain.CartSnapshot) {
	a.printf("\n-- Cart --\n")
	if len(snap.Lines) == 0 {
		a.printf("(empty)\n")
		return
	}
	for i, l := range snap.Lines {
		a.printf("%2d. %-28s %8.2f x %-3d = %8.2f  (%s)\n",
			i+1, l.Name, l.UnitPrice, l.Quantity, l.UnitPrice*float64(l.Quantity), l.VendorName)
	}
	subtotal := snap.Subtotal()
	fee := domain.StandardShippingFeeFor(subtotal)
	a.printf("subtotal: %.2f   standard shipping: %.2f   total: %.2f\n", subtotal, fee, subtotal+fee)
}

// lineAt resolves a 1-based line number entered by the user.
func (a *App) lineAt(snap domain.CartSnapshot, arg string) (domain.CartLine, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(snap.Lines) {
		a.printf("no such line\n")
		return domain.CartLine{}, false
	}
	return snap.Lines[n-1], true
}
