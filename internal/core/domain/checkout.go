package domain

import "errors"

// CheckoutStage names a step of the checkout flow.
type CheckoutStage string

const (
	StageCart             CheckoutStage = "cart"
	StageShippingSelected CheckoutStage = "shipping_selected"
	StagePaymentPending   CheckoutStage = "payment_pending"
	StageConfirmed        CheckoutStage = "confirmed"
)

// validStages defines the allowed checkout transitions. The flow is strictly
// linear; abandoning checkout means starting a fresh session, never stepping
// back.
var validStages = map[CheckoutStage][]CheckoutStage{
	StageCart:             {StageShippingSelected},
	StageShippingSelected: {StagePaymentPending},
	StagePaymentPending:   {StageConfirmed},
}

var ErrInvalidStage = errors.New("invalid checkout stage transition")

// CanAdvanceTo reports whether moving from s to next is a legal transition.
func (s CheckoutStage) CanAdvanceTo(next CheckoutStage) bool {
	for _, allowed := range validStages[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// ShippingOption is a delivery choice offered during checkout.
type ShippingOption struct {
	ID            string
	Name          string
	Fee           float64
	EstimatedDays int
}

// PaymentDetails is screen-local card input. It is validated client-side and
// never persisted.
type PaymentDetails struct {
	CardHolder string `validate:"required"`
	CardNumber string `validate:"required,credit_card"`
	Expiry     string `validate:"required,len=5"`
	CVC        string `validate:"required,len=3,numeric"`
}

// CheckoutSession is the single record threaded through every checkout
// transition, so later stages never re-derive ambient state ad hoc.
type CheckoutSession struct {
	Stage    CheckoutStage
	Cart     CartSnapshot
	Shipping *ShippingOption
	OrderID  string
}

// Total is the amount due: cart subtotal plus the selected shipping fee.
// Before a shipping option is selected only the subtotal is known.
func (cs CheckoutSession) Total() float64 {
	total := cs.Cart.Subtotal()
	if cs.Shipping != nil {
		total += cs.Shipping.Fee
	}
	return total
}

// Shipping pricing. Orders at or above the threshold ship free, everything
// else pays the flat standard fee.
const (
	FreeShippingThreshold = 100.00
	StandardShippingFee   = 9.99
	ExpressShippingFee    = 12.99
)

// StandardShippingFeeFor returns the standard delivery fee for a given cart
// subtotal.
func StandardShippingFeeFor(subtotal float64) float64 {
	if subtotal >= FreeShippingThreshold {
		return 0
	}
	return StandardShippingFee
}

// ShippingOptionsFor lists the delivery choices offered for a cart subtotal.
func ShippingOptionsFor(subtotal float64) []ShippingOption {
	return []ShippingOption{
		{ID: "standard", Name: "Standard (5-7 days)", Fee: StandardShippingFeeFor(subtotal), EstimatedDays: 7},
		{ID: "express", Name: "Express (2-3 days)", Fee: ExpressShippingFee, EstimatedDays: 3},
	}
}
