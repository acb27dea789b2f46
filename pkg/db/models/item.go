package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
)

// Item is a single stock row. IDs are small positive integers and may be
// reassigned through the edit flow, so the column is a plain autoincrement
// key rather than a surrogate uuid.
type Item struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string          `gorm:"column:name;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null;default:0"`
	Size      enums.ItemSize  `gorm:"column:size;type:text;not null"`
	Photo     *string         `gorm:"column:photo"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName pins the legacy table name.
func (Item) TableName() string {
	return "items"
}
