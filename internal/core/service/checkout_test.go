package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

type fakeOrderGateway struct {
	result ports.OrderResult
	err    error
	placed []ports.PlaceOrderInput
}

func (g *fakeOrderGateway) PlaceOrder(_ context.Context, in ports.PlaceOrderInput) (ports.OrderResult, error) {
	g.placed = append(g.placed, in)
	if g.err != nil {
		return ports.OrderResult{}, g.err
	}
	return g.result, nil
}

func (g *fakeOrderGateway) ListOrders(_ context.Context, _ string) ([]ports.OrderSummary, error) {
	return nil, nil
}

func validPayment() domain.PaymentDetails {
	return domain.PaymentDetails{
		CardHolder: "Amina K",
		CardNumber: "4242424242424242",
		Expiry:     "12/30",
		CVC:        "123",
	}
}

func newCheckoutFixture(t *testing.T, cartGw *fakeCartGateway, orderGw *fakeOrderGateway) *CheckoutSequencer {
	t.Helper()
	sessions, store := authedManager(t)
	cart := NewCartService(cartGw, sessions, store, zerolog.Nop())
	return NewCheckoutSequencer(cart, orderGw, sessions, zerolog.Nop())
}

func TestCheckoutSequencer_FullWalk(t *testing.T) {
	cartGw := &fakeCartGateway{fetchFn: func(int) (domain.CartSnapshot, error) { return testCart(), nil }}
	orderGw := &fakeOrderGateway{result: ports.OrderResult{OrderID: "ord-77"}}
	seq := newCheckoutFixture(t, cartGw, orderGw)

	cs, err := seq.Begin(context.Background())
	if err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if cs.Stage != domain.StageCart {
		t.Fatalf("expected cart stage, got %s", cs.Stage)
	}
	if cs.Cart.Subtotal() != 25 {
		t.Fatalf("expected subtotal 25, got %v", cs.Cart.Subtotal())
	}

	option := domain.ShippingOptionsFor(cs.Cart.Subtotal())[0]
	cs, err = seq.SelectShipping(option)
	if err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}
	if cs.Stage != domain.StageShippingSelected {
		t.Fatalf("expected shipping stage, got %s", cs.Stage)
	}
	if cs.Total() != 25+domain.StandardShippingFee {
		t.Fatalf("expected total %v, got %v", 25+domain.StandardShippingFee, cs.Total())
	}

	cs, err = seq.SubmitPayment(context.Background(), validPayment())
	if err != nil {
		t.Fatalf("submit payment failed: %v", err)
	}
	if cs.Stage != domain.StageConfirmed || cs.OrderID != "ord-77" {
		t.Fatalf("expected confirmed session, got %+v", cs)
	}

	if len(orderGw.placed) != 1 {
		t.Fatalf("expected one placed order, got %d", len(orderGw.placed))
	}
	placed := orderGw.placed[0]
	if placed.CartID != "42" || placed.Total != 25+domain.StandardShippingFee {
		t.Fatalf("unexpected order input: %+v", placed)
	}
	// The backend consumed the cart; the local mirror must be dropped too.
	if cartGw.deleteCalls != 1 {
		t.Fatalf("expected cart delete after confirmation, got %d", cartGw.deleteCalls)
	}
}

func TestCheckoutSequencer_EmptyCartCannotBegin(t *testing.T) {
	cartGw := &fakeCartGateway{fetchFn: func(int) (domain.CartSnapshot, error) {
		return domain.CartSnapshot{ClientID: "7"}, nil
	}}
	seq := newCheckoutFixture(t, cartGw, &fakeOrderGateway{})

	if _, err := seq.Begin(context.Background()); !errors.Is(err, domain.ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutSequencer_GuardsStageOrder(t *testing.T) {
	cartGw := &fakeCartGateway{fetchFn: func(int) (domain.CartSnapshot, error) { return testCart(), nil }}
	seq := newCheckoutFixture(t, cartGw, &fakeOrderGateway{})

	// No session yet.
	if _, err := seq.SelectShipping(domain.ShippingOption{ID: "standard"}); !errors.Is(err, domain.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage before begin, got %v", err)
	}

	if _, err := seq.Begin(context.Background()); err != nil {
		t.Fatalf("begin failed: %v", err)
	}

	// Payment straight from the cart stage skips shipping selection.
	if _, err := seq.SubmitPayment(context.Background(), validPayment()); !errors.Is(err, domain.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage for skipped stage, got %v", err)
	}
}

func TestCheckoutSequencer_RejectsInvalidPaymentDetails(t *testing.T) {
	cartGw := &fakeCartGateway{fetchFn: func(int) (domain.CartSnapshot, error) { return testCart(), nil }}
	orderGw := &fakeOrderGateway{}
	seq := newCheckoutFixture(t, cartGw, orderGw)

	if _, err := seq.Begin(context.Background()); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if _, err := seq.SelectShipping(domain.ShippingOptionsFor(25)[0]); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}

	bad := validPayment()
	bad.CardNumber = "1234"
	if _, err := seq.SubmitPayment(context.Background(), bad); err == nil {
		t.Fatalf("expected validation error")
	}
	if len(orderGw.placed) != 0 {
		t.Fatalf("invalid details must block the network call")
	}
}

func TestCheckoutSequencer_PlaceOrderFailureAllowsRetry(t *testing.T) {
	cartGw := &fakeCartGateway{fetchFn: func(int) (domain.CartSnapshot, error) { return testCart(), nil }}
	orderGw := &fakeOrderGateway{err: errors.New("payment declined")}
	seq := newCheckoutFixture(t, cartGw, orderGw)

	if _, err := seq.Begin(context.Background()); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	if _, err := seq.SelectShipping(domain.ShippingOptionsFor(25)[0]); err != nil {
		t.Fatalf("select shipping failed: %v", err)
	}
	if _, err := seq.SubmitPayment(context.Background(), validPayment()); err == nil {
		t.Fatalf("expected place order failure")
	}

	cs, ok := seq.Session()
	if !ok || cs.Stage != domain.StageShippingSelected {
		t.Fatalf("expected fallback to shipping stage, got %+v", cs)
	}

	// Retry succeeds once the backend recovers.
	orderGw.err = nil
	orderGw.result = ports.OrderResult{OrderID: "ord-78"}
	cs, err := seq.SubmitPayment(context.Background(), validPayment())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if cs.Stage != domain.StageConfirmed || cs.OrderID != "ord-78" {
		t.Fatalf("expected confirmed retry, got %+v", cs)
	}
}

func TestCheckoutSequencer_AbandonDiscardsSession(t *testing.T) {
	cartGw := &fakeCartGateway{fetchFn: func(int) (domain.CartSnapshot, error) { return testCart(), nil }}
	seq := newCheckoutFixture(t, cartGw, &fakeOrderGateway{})

	if _, err := seq.Begin(context.Background()); err != nil {
		t.Fatalf("begin failed: %v", err)
	}
	seq.Abandon()
	if _, ok := seq.Session(); ok {
		t.Fatalf("expected no session after abandon")
	}
	if _, err := seq.SelectShipping(domain.ShippingOption{ID: "standard"}); !errors.Is(err, domain.ErrInvalidStage) {
		t.Fatalf("expected ErrInvalidStage after abandon, got %v", err)
	}
}
