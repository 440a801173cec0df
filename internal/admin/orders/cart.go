package orders

// Cart accumulates quantities per menu item for one table. Entries keep the
// order in which items were first added. The zero value is an empty cart.
type Cart struct {
	quantities map[string]int
	order      []string
}

// CartEntry is one item line of a cart.
type CartEntry struct {
	ItemID   string
	Quantity int
}

// Add increments the quantity of itemID by n. Non-positive n is ignored.
func (c *Cart) Add(itemID string, n int) {
	if n <= 0 || itemID == "" {
		return
	}
	if c.quantities == nil {
		c.quantities = make(map[string]int)
	}
	if _, ok := c.quantities[itemID]; !ok {
		c.order = append(c.order, itemID)
	}
	c.quantities[itemID] += n
}

// Remove decrements itemID by one and drops the entry once it reaches zero.
// Removing an absent item does nothing.
func (c *Cart) Remove(itemID string) {
	qty, ok := c.quantities[itemID]
	if !ok {
		return
	}
	qty--
	if qty > 0 {
		c.quantities[itemID] = qty
		return
	}
	delete(c.quantities, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// Quantity returns the quantity of itemID.
func (c *Cart) Quantity(itemID string) int {
	return c.quantities[itemID]
}

// Entries returns the cart lines in insertion order.
func (c *Cart) Entries() []CartEntry {
	out := make([]CartEntry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, CartEntry{ItemID: id, Quantity: c.quantities[id]})
	}
	return out
}

// Len returns the number of distinct items.
func (c *Cart) Len() int { return len(c.order) }

// Empty reports whether the cart has no items.
func (c *Cart) Empty() bool { return len(c.order) == 0 }

// Total sums price × quantity using prices from menu. Items missing from the menu count as zero.
func (c *Cart) Total(menu map[string]MenuItem) int64 {
	var total int64
	for _, id := range c.order {
		total += menu[id].Price * int64(c.quantities[id])
	}
	return total
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.quantities = nil
	c.order = nil
}
