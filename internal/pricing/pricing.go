// Package pricing turns a cart snapshot plus customer info into a priced
// order summary. Quote is deterministic and side-effect free; the only
// failures are input validation.
package pricing

import (
	"kedai/internal/apperr"
	"kedai/internal/models"
)

// Pricing policy, fixed for the shop. All amounts in minor currency units.
const (
	// TaxRatePercent is the flat tax applied to the subtotal.
	TaxRatePercent = 10
	// DeliveryFee is charged for delivery orders only.
	DeliveryFee = 15000
	// DiscountThreshold is the subtotal above which the loyalty discount
	// applies. Strictly greater than: a subtotal of exactly this value earns
	// no discount.
	DiscountThreshold = 200000
	// DiscountRatePercent is the loyalty discount rate on the pre-tax,
	// pre-delivery subtotal.
	DiscountRatePercent = 5
)

// Quote prices a cart. It recomputes the subtotal from the lines rather than
// trusting the snapshot's aggregate, applies the flat tax, the delivery fee
// for delivery orders, and the loyalty discount, and returns the summary.
//
// Validation failures (empty cart, missing name or phone, delivery without an
// address) return an apperr.Validation error.
func Quote(snap models.CartSnapshot, customer models.CustomerInfo) (models.OrderSummary, error) {
	if len(snap.Lines) == 0 {
		return models.OrderSummary{}, apperr.Validationf("cart is empty")
	}
	if customer.Name == "" {
		return models.OrderSummary{}, apperr.Validationf("customer name is required")
	}
	if customer.Phone == "" {
		return models.OrderSummary{}, apperr.Validationf("customer phone is required")
	}
	if customer.DeliveryType == models.DeliveryDelivery && customer.Address == "" {
		return models.OrderSummary{}, apperr.Validationf("address is required for delivery orders")
	}

	var subtotal int64
	for _, line := range snap.Lines {
		subtotal += line.Subtotal()
	}

	summary := models.OrderSummary{
		Subtotal: subtotal,
		Tax:      roundPercent(subtotal, TaxRatePercent),
	}
	if customer.DeliveryType == models.DeliveryDelivery {
		summary.DeliveryFee = DeliveryFee
	}
	if subtotal > DiscountThreshold {
		summary.Discount = roundPercent(subtotal, DiscountRatePercent)
	}
	summary.Total = summary.Subtotal + summary.Tax + summary.DeliveryFee - summary.Discount
	return summary, nil
}

// roundPercent computes amount×rate% rounded half-up in integer arithmetic.
func roundPercent(amount int64, rate int64) int64 {
	return (amount*rate + 50) / 100
}
