package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/soukly/marketplace-client/internal/core/domain"
	"github.com/soukly/marketplace-client/internal/core/ports"
)

// CheckoutSequencer drives the linear cart → shipping → payment → confirmed
// flow. A single CheckoutSession record is threaded through every transition
// so no stage needs to re-derive ambient state. Every advance is triggered by
// an explicit user action and guarded by the stage machine.
type CheckoutSequencer struct {
	cart     *CartService
	orders   ports.OrderGateway
	sessions *SessionManager
	validate *validator.Validate
	log      zerolog.Logger

	mu      sync.Mutex
	current *domain.CheckoutSession
}

func NewCheckoutSequencer(cart *CartService, orders ports.OrderGateway, sessions *SessionManager, log zerolog.Logger) *CheckoutSequencer {
	return &CheckoutSequencer{
		cart:     cart,
		orders:   orders,
		sessions: sessions,
		validate: validator.New(),
		log:      log.With().Str("component", "checkout").Logger(),
	}
}

// Begin re-fetches the cart and opens a fresh checkout session at StageCart.
// An empty cart cannot enter checkout.
func (s *CheckoutSequencer) Begin(ctx context.Context) (domain.CheckoutSession, error) {
	if err := s.cart.Load(ctx); err != nil {
		return domain.CheckoutSession{}, fmt.Errorf("begin checkout: %w", err)
	}
	snap, _ := s.cart.Snapshot()
	if len(snap.Lines) == 0 {
		return domain.CheckoutSession{}, domain.ErrEmptyCart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &domain.CheckoutSession{Stage: domain.StageCart, Cart: snap}
	s.log.Info().Str("cart_id", snap.CartID).Float64("subtotal", snap.Subtotal()).Msg("checkout started")
	return *s.current, nil
}

// SelectShipping records the chosen delivery option and advances to
// StageShippingSelected.
func (s *CheckoutSequencer) SelectShipping(option domain.ShippingOption) (domain.CheckoutSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || !s.current.Stage.CanAdvanceTo(domain.StageShippingSelected) {
		return domain.CheckoutSession{}, domain.ErrInvalidStage
	}
	opt := option
	s.current.Shipping = &opt
	s.current.Stage = domain.StageShippingSelected
	return *s.current, nil
}

// SubmitPayment validates the card details, places the order, and advances to
// StageConfirmed only once the backend has confirmed it. On failure the
// session falls back to StageShippingSelected so the user can retry.
func (s *CheckoutSequencer) SubmitPayment(ctx context.Context, details domain.PaymentDetails) (domain.CheckoutSession, error) {
	s.mu.Lock()
	if s.current == nil || !s.current.Stage.CanAdvanceTo(domain.StagePaymentPending) {
		s.mu.Unlock()
		return domain.CheckoutSession{}, domain.ErrInvalidStage
	}
	if err := s.validate.Struct(details); err != nil {
		s.mu.Unlock()
		return domain.CheckoutSession{}, fmt.Errorf("payment details: %w", err)
	}
	s.current.Stage = domain.StagePaymentPending
	input := ports.PlaceOrderInput{
		ClientID:       s.current.Cart.ClientID,
		CartID:         s.current.Cart.CartID,
		ShippingOption: s.current.Shipping.ID,
		Total:          s.current.Total(),
	}
	s.mu.Unlock()

	result, err := s.orders.PlaceOrder(ctx, input)

	s.mu.Lock()
	if err != nil {
		s.current.Stage = domain.StageShippingSelected
		s.mu.Unlock()
		return domain.CheckoutSession{}, fmt.Errorf("place order: %w", err)
	}
	s.current.Stage = domain.StageConfirmed
	s.current.OrderID = result.OrderID
	confirmed := *s.current
	s.mu.Unlock()

	s.log.Info().Str("order_id", result.OrderID).Float64("total", input.Total).Msg("order confirmed")

	// The backend consumed the cart; drop the local mirror too.
	if err := s.cart.Clear(ctx); err != nil {
		s.log.Warn().Err(err).Msg("post-order cart clear failed")
	}

	return confirmed, nil
}

// Session returns the current checkout session, if any.
func (s *CheckoutSequencer) Session() (domain.CheckoutSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return domain.CheckoutSession{}, false
	}
	return *s.current, true
}

// Abandon discards the current checkout session. Re-entering checkout always
// starts from a fresh cart fetch; there is no path back into a prior stage.
func (s *CheckoutSequencer) Abandon() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}
