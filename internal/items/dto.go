package items

import (
	"time"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	"github.com/oakzazasd/Clothes-Inventory/pkg/pagination"
	"github.com/shopspring/decimal"
)

// ItemDTO is the API-facing representation of a clothes item.
type ItemDTO struct {
	ID        uint            `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Size      enums.ItemSize  `json:"size"`
	Photo     *string         `json:"photo,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateItemInput holds the validated payload to create an item.
type CreateItemInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int
	Size     enums.ItemSize
	Photo    *string
}

// UpdateItemInput holds optional mutation values for an item. NewID requests
// an identifier reassignment, which fails when the target ID is taken.
// RemovePhoto clears the photo reference and wins over Photo when both are
// set.
type UpdateItemInput struct {
	NewID       *uint
	Name        *string
	Price       *decimal.Decimal
	Quantity    *int
	Size        *enums.ItemSize
	Photo       *string
	RemovePhoto bool
}

// ListItemsInput captures search and paging parameters for the item listing.
type ListItemsInput struct {
	Query      string
	Pagination pagination.Params
}

// ItemListResult bundles one page of items with paging metadata.
type ItemListResult struct {
	Items []ItemDTO       `json:"items"`
	Meta  pagination.Meta `json:"meta"`
}

func toDTO(item *models.Item) *ItemDTO {
	if item == nil {
		return nil
	}
	return &ItemDTO{
		ID:        item.ID,
		Name:      item.Name,
		Price:     item.Price,
		Quantity:  item.Quantity,
		Size:      item.Size,
		Photo:     item.Photo,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}
