package domain

import "testing"

func TestCheckoutStage_CanAdvanceTo(t *testing.T) {
	cases := []struct {
		from CheckoutStage
		to   CheckoutStage
		want bool
	}{
		{StageCart, StageShippingSelected, true},
		{StageShippingSelected, StagePaymentPending, true},
		{StagePaymentPending, StageConfirmed, true},
		{StageCart, StagePaymentPending, false},
		{StageCart, StageConfirmed, false},
		{StageShippingSelected, StageCart, false},
		{StageConfirmed, StageCart, false},
		{StageConfirmed, StagePaymentPending, false},
	}
	for _, tc := range cases {
		if got := tc.from.CanAdvanceTo(tc.to); got != tc.want {
			t.Fatalf("%s -> %s = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestStandardShippingFeeFor(t *testing.T) {
	cases := []struct {
		subtotal float64
		want     float64
	}{
		{25, StandardShippingFee},
		{99.99, StandardShippingFee},
		{100, 0},
		{250, 0},
	}
	for _, tc := range cases {
		if got := StandardShippingFeeFor(tc.subtotal); got != tc.want {
			t.Fatalf("fee for %v = %v, want %v", tc.subtotal, got, tc.want)
		}
	}
}

func TestCheckoutSession_Total(t *testing.T) {
	cart := CartSnapshot{Lines: []CartLine{
		{UnitPrice: 10, Quantity: 2},
		{UnitPrice: 5, Quantity: 1},
	}}

	cs := CheckoutSession{Stage: StageCart, Cart: cart}
	if got := cs.Total(); got != 25 {
		t.Fatalf("expected subtotal-only total 25, got %v", got)
	}

	fee := StandardShippingFeeFor(cart.Subtotal())
	cs.Shipping = &ShippingOption{ID: "standard", Fee: fee}
	if got := cs.Total(); got != 25+StandardShippingFee {
		t.Fatalf("expected total %v, got %v", 25+StandardShippingFee, got)
	}
}

func TestShippingOptionsFor_FreeThreshold(t *testing.T) {
	options := ShippingOptionsFor(150)
	if options[0].Fee != 0 {
		t.Fatalf("expected free standard shipping above threshold, got %v", options[0].Fee)
	}
	if options[1].Fee != ExpressShippingFee {
		t.Fatalf("express stays paid, got %v", options[1].Fee)
	}
}
