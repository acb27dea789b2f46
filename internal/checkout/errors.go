package checkout

import (
	"errors"
	"fmt"
)

// ErrEmptyCart signals checkout on a cart with no lines.
var ErrEmptyCart = errors.New("cart is empty")

// ItemNotFoundError reports a cart line whose item no longer exists.
type ItemNotFoundError struct {
	ItemID uint
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// InsufficientStockError reports a cart line asking for more units than the
// shop has on hand.
type InsufficientStockError struct {
	ItemID    uint
	Name      string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q (item %d): requested %d, available %d",
		e.Name, e.ItemID, e.Requested, e.Available)
}
