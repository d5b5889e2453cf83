package models

// CartLine is one product entry in a cart. Lines are unique by ID within a
// cart; Quantity is always positive (a line driven to zero is removed).
type CartLine struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	UnitPrice int64  `json:"unit_price" validate:"gte=0"`
	ImageRef  string `json:"image_ref"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// Subtotal returns UnitPrice×Quantity for this line.
func (l CartLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// CartSnapshot is an immutable view of a cart: the lines in insertion order
// plus aggregates derived entirely from them.
type CartSnapshot struct {
	Lines      []CartLine `json:"lines"`
	TotalItems int        `json:"total_items"`
	TotalPrice int64      `json:"total_price"`
}
