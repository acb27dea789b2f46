package cart

import "encoding/json"

// Line is one cart entry. Order of lines is insertion order and is preserved
// across serialization, so checkout processes items the way they were added.
type Line struct {
	ItemID uint `json:"item_id"`
	Qty    int  `json:"qty"`
}

// Cart is the session-scoped withdraw cart. The zero value is an empty cart.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges qty into an existing line or appends a new one at the end.
// Quantities below one count as one.
func (c *Cart) Add(itemID uint, qty int) {
	if qty < 1 {
		qty = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ItemID == itemID {
			c.Lines[i].Qty += qty
			return
		}
	}
	c.Lines = append(c.Lines, Line{ItemID: itemID, Qty: qty})
}

// ReplaceLines swaps the cart contents for the submitted lines, keeping
// their order. A repeated item keeps its first position with the last
// submitted quantity; lines at zero or below are dropped.
func (c *Cart) ReplaceLines(lines []Line) {
	merged := make([]Line, 0, len(lines))
	index := make(map[uint]int, len(lines))
	for _, line := range lines {
		if i, ok := index[line.ItemID]; ok {
			merged[i].Qty = line.Qty
			continue
		}
		index[line.ItemID] = len(merged)
		merged = append(merged, line)
	}

	kept := merged[:0]
	for _, line := range merged {
		if line.Qty > 0 {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// Remove drops the line for the given item, if present.
func (c *Cart) Remove(itemID uint) {
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if line.ItemID != itemID {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty reports whether the cart holds no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// TotalQuantity sums the quantities across all lines.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Qty
	}
	return total
}

// Encode serializes the cart for storage.
func (c *Cart) Encode() (string, error) {
	raw, err := json.Marshal(c)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode restores a cart from its stored form. Empty input yields an empty cart.
func Decode(raw string) (*Cart, error) {
	cart := &Cart{}
	if raw == "" {
		return cart, nil
	}
	if err := json.Unmarshal([]byte(raw), cart); err != nil {
		return nil, err
	}
	return cart, nil
}
