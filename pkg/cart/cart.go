// Package cart models the shopping cart as an ordered mapping from product id
// to a line holding the product snapshot and its quantity.
package cart

import "storefront/pkg/catalog"

// Line is one product in the cart. Qty is always positive while the line
// exists.
type Line struct {
	Product catalog.Product `json:"product"`
	Qty     int             `json:"qty"`
}

// Cart keeps lines in insertion order. The zero value is not usable; call New.
type Cart struct {
	lines map[catalog.ProductID]Line
	order []catalog.ProductID
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{lines: make(map[catalog.ProductID]Line)}
}

// Clone returns an independent copy, used to price prospective changes.
func (c *Cart) Clone() *Cart {
	out := &Cart{
		lines: make(map[catalog.ProductID]Line, len(c.lines)),
		order: make([]catalog.ProductID, len(c.order)),
	}
	for id, l := range c.lines {
		out.lines[id] = l
	}
	copy(out.order, c.order)
	return out
}

// Get returns the line for id.
func (c *Cart) Get(id catalog.ProductID) (Line, bool) {
	l, ok := c.lines[id]
	return l, ok
}

// Qty returns the quantity held for id, 0 when absent.
func (c *Cart) Qty(id catalog.ProductID) int {
	return c.lines[id].Qty
}

// Set stores p with qty. A non-positive qty removes the line.
func (c *Cart) Set(p catalog.Product, qty int) {
	if qty <= 0 {
		c.Remove(p.ID)
		return
	}
	if _, ok := c.lines[p.ID]; !ok {
		c.order = append(c.order, p.ID)
	}
	c.lines[p.ID] = Line{Product: p, Qty: qty}
}

// SetQty changes the quantity of an existing line. It reports false when id
// is not in the cart.
func (c *Cart) SetQty(id catalog.ProductID, qty int) bool {
	l, ok := c.lines[id]
	if !ok {
		return false
	}
	c.Set(l.Product, qty)
	return true
}

// Remove deletes the line for id; removing an absent id is a no-op.
func (c *Cart) Remove(id catalog.ProductID) {
	if _, ok := c.lines[id]; !ok {
		return
	}
	delete(c.lines, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = make(map[catalog.ProductID]Line)
	c.order = nil
}

// Lines returns the lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.lines[id])
	}
	return out
}

// Len is the number of distinct products.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Count is the sum of quantities, shown on the cart badge.
func (c *Cart) Count() int {
	n := 0
	for _, l := range c.lines {
		n += l.Qty
	}
	return n
}
