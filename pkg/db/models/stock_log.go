package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
)

// StockLog is one immutable audit row. Name, size and price are snapshots
// taken at the moment of the action; ItemID is a weak reference that is kept
// even after the item row is deleted.
type StockLog struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	CreatedAt time.Time       `gorm:"column:created_at;autoCreateTime"`
	User      string          `gorm:"column:username;not null"`
	Action    enums.LogAction `gorm:"column:action;type:text;not null"`
	ItemID    *uint           `gorm:"column:item_id"`
	Name      string          `gorm:"column:name;not null"`
	Size      enums.ItemSize  `gorm:"column:size;type:text;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Subtotal  decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null"`
}

// TableName pins the legacy table name.
func (StockLog) TableName() string {
	return "stock_logs"
}
