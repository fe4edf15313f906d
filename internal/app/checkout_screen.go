package app

import (
	"context"
	"strconv"

	"github.com/soukly/marketplace-client/internal/core/domain"
)

// checkoutScreen walks the sequencer's linear stages. Every advance needs an
// explicit confirmation; quitting at any point abandons the session.
func (a *App) checkoutScreen(ctx context.Context) {
	defer a.deps.Checkout.Abandon()

	cs, err := a.deps.Checkout.Begin(ctx)
	if err != nil {
		a.banner(err)
		return
	}

	// Stage: cart review.
	a.renderCart(cs.Cart)
	if a.prompt("proceed to shipping? [y/N] ") != "y" {
		return
	}

	// Stage: shipping selection.
	options := domain.ShippingOptionsFor(cs.Cart.Subtotal())
	for i, opt := range options {
		a.printf("[%d] %-22s %.2f\n", i+1, opt.Name, opt.Fee)
	}
	n, err := strconv.Atoi(a.prompt("shipping> "))
	if err != nil || n < 1 || n > len(options) {
		a.printf("checkout abandoned\n")
		return
	}
	cs, err = a.deps.Checkout.SelectShipping(options[n-1])
	if err != nil {
		a.banner(err)
		return
	}
	a.printf("total due: %.2f\n", cs.Total())

	// Stage: payment.
	details := domain.PaymentDetails{
		CardHolder: a.prompt("card holder: "),
		CardNumber: a.prompt("card number: "),
		Expiry:     a.prompt("expiry (MM/YY): "),
		CVC:        a.prompt("cvc: "),
	}
	a.printf("Placing order...\n")
	cs, err = a.deps.Checkout.SubmitPayment(ctx, details)
	if err != nil {
		a.banner(err)
		return
	}

	// Stage: confirmation. Terminal; there is no way back into the flow.
	a.printf("Order %s confirmed. Thank you!\n", cs.OrderID)
}
