// Package cart implements the per-session shopping cart ledger: a line-item
// list with merge semantics plus aggregates recomputed after every mutation.
package cart

import "kedai/internal/models"

// Item identifies a product being added to the cart. Quantity is supplied
// separately so the same item can be added repeatedly and merged.
type Item struct {
	ID        string
	Name      string
	UnitPrice int64
	ImageRef  string
}

// Ledger holds the authoritative line-item list for one client session.
// It is owned exclusively by that session and is not safe for concurrent use;
// every operation is synchronous and total. The panel-visibility flag is
// orthogonal UI state and survives Clear.
type Ledger struct {
	lines      []models.CartLine
	totalItems int
	totalPrice int64
	panelOpen  bool
}

// NewLedger returns an empty ledger with the cart panel hidden.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Add adds one unit of item, merging into an existing line with the same ID.
func (l *Ledger) Add(item Item) {
	l.AddN(item, 1)
}

// AddN adds quantity units of item. An existing line with the same ID has its
// quantity incremented; otherwise a new line is appended, preserving insertion
// order. Quantities below 1 are treated as 1.
func (l *Ledger) AddN(item Item, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range l.lines {
		if l.lines[i].ID == item.ID {
			l.lines[i].Quantity += quantity
			l.recompute()
			return
		}
	}
	l.lines = append(l.lines, models.CartLine{
		ID:        item.ID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice,
		ImageRef:  item.ImageRef,
		Quantity:  quantity,
	})
	l.recompute()
}

// Remove deletes the line with the given id. Removing an absent id is a no-op.
func (l *Ledger) Remove(id string) {
	for i := range l.lines {
		if l.lines[i].ID == id {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
			break
		}
	}
	l.recompute()
}

// SetQuantity replaces the quantity of the line with the given id. The value
// is clamped to a minimum of 0, and a line driven to 0 is removed rather than
// retained. Unknown ids are a no-op.
func (l *Ledger) SetQuantity(id string, quantity int) {
	if quantity <= 0 {
		l.Remove(id)
		return
	}
	for i := range l.lines {
		if l.lines[i].ID == id {
			l.lines[i].Quantity = quantity
			break
		}
	}
	l.recompute()
}

// Clear empties the cart. The panel-visibility flag is left untouched.
func (l *Ledger) Clear() {
	l.lines = nil
	l.recompute()
}

// ShowPanel marks the cart panel visible.
func (l *Ledger) ShowPanel() { l.panelOpen = true }

// HidePanel marks the cart panel hidden.
func (l *Ledger) HidePanel() { l.panelOpen = false }

// PanelVisible reports the panel-visibility flag.
func (l *Ledger) PanelVisible() bool { return l.panelOpen }

// Snapshot returns a copy of the current cart state. The returned lines slice
// is independent of the ledger's internal state.
func (l *Ledger) Snapshot() models.CartSnapshot {
	lines := make([]models.CartLine, len(l.lines))
	copy(lines, l.lines)
	return models.CartSnapshot{
		Lines:      lines,
		TotalItems: l.totalItems,
		TotalPrice: l.totalPrice,
	}
}

// recompute derives the aggregates from the line list. Called after every
// mutation; the aggregates are never adjusted incrementally.
func (l *Ledger) recompute() {
	l.totalItems = 0
	l.totalPrice = 0
	for _, line := range l.lines {
		l.totalItems += line.Quantity
		l.totalPrice += line.Subtotal()
	}
}
