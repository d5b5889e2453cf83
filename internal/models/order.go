package models

import "time"

// Delivery types accepted at checkout.
const (
	DeliveryPickup   = "pickup"
	DeliveryDelivery = "delivery"
)

// Order statuses. Transitions between them are unconstrained on purpose:
// the dashboard may move an order to any status at any time.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusDelivered = "delivered"
	StatusCancelled = "cancelled"
)

// OrderStatuses lists every valid status value.
var OrderStatuses = []string{
	StatusPending, StatusConfirmed, StatusPreparing,
	StatusReady, StatusDelivered, StatusCancelled,
}

// ValidStatus reports whether s is one of the defined order statuses.
func ValidStatus(s string) bool {
	for _, v := range OrderStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// CustomerInfo is the contact and delivery detail collected at checkout.
// Address is required only for delivery orders.
type CustomerInfo struct {
	Name         string `json:"name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,max=30"`
	DeliveryType string `json:"delivery_type" validate:"required,oneof=pickup delivery"`
	Address      string `json:"address" validate:"required_if=DeliveryType delivery,max=500"`
}

// OrderSummary is the priced breakdown of an order, all amounts in minor
// currency units. Invariant: Total = Subtotal + Tax + DeliveryFee - Discount,
// and every field is non-negative.
type OrderSummary struct {
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"delivery_fee"`
	Discount    int64 `json:"discount"`
	Total       int64 `json:"total"`
}

// Consistent reports whether the summary satisfies the total invariant.
func (s OrderSummary) Consistent() bool {
	return s.Total == s.Subtotal+s.Tax+s.DeliveryFee-s.Discount &&
		s.Subtotal >= 0 && s.Tax >= 0 && s.DeliveryFee >= 0 &&
		s.Discount >= 0 && s.Total >= 0
}

// Order is a submitted, priced order. Orders are append-only: they are never
// deleted, only moved between statuses.
type Order struct {
	ID        string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	OwnerID   string       `json:"owner_id" gorm:"index;type:varchar(48)"`
	Guest     bool         `json:"guest"`
	Lines     []CartLine   `json:"lines" gorm:"serializer:json"`
	Customer  CustomerInfo `json:"customer" gorm:"embedded;embeddedPrefix:customer_"`
	Summary   OrderSummary `json:"summary" gorm:"embedded;embeddedPrefix:summary_"`
	Status    string       `json:"status" gorm:"index;type:varchar(16)"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}
