package enums

import "fmt"

// ItemSize represents the clothing sizes carried by the shop.
type ItemSize string

const (
	ItemSizeS  ItemSize = "S"
	ItemSizeM  ItemSize = "M"
	ItemSizeL  ItemSize = "L"
	ItemSizeXL ItemSize = "XL"
)

var validItemSizes = []ItemSize{
	ItemSizeS,
	ItemSizeM,
	ItemSizeL,
	ItemSizeXL,
}

// String implements fmt.Stringer.
func (s ItemSize) String() string {
	return string(s)
}

// IsValid reports whether the value is a known ItemSize.
func (s ItemSize) IsValid() bool {
	for _, candidate := range validItemSizes {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseItemSize converts raw input into an ItemSize.
func ParseItemSize(value string) (ItemSize, error) {
	for _, candidate := range validItemSizes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid item size %q", value)
}

// ItemSizes returns the canonical size list in display order.
func ItemSizes() []ItemSize {
	return append([]ItemSize{}, validItemSizes...)
}
