package auditlog

import (
	"time"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	"github.com/shopspring/decimal"
)

// LogDTO is the API-facing representation of one audit row.
type LogDTO struct {
	ID        uint            `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	User      string          `json:"user"`
	Action    enums.LogAction `json:"action"`
	ItemID    *uint           `json:"item_id,omitempty"`
	Name      string          `json:"name"`
	Size      enums.ItemSize  `json:"size"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// ListLogsInput filters the audit listing. Zero values mean no filter.
type ListLogsInput struct {
	Action enums.LogAction
	Query  string
}

// Totals aggregates quantity and value over the listed rows, split by action.
type Totals struct {
	AddedQuantity     int             `json:"added_quantity"`
	AddedValue        decimal.Decimal `json:"added_value"`
	WithdrawnQuantity int             `json:"withdrawn_quantity"`
	WithdrawnValue    decimal.Decimal `json:"withdrawn_value"`
}

// LogListResult bundles the newest entries with the filtered totals.
type LogListResult struct {
	Entries []LogDTO `json:"entries"`
	Totals  Totals   `json:"totals"`
}

func toDTO(entry *models.StockLog) LogDTO {
	return LogDTO{
		ID:        entry.ID,
		CreatedAt: entry.CreatedAt,
		User:      entry.User,
		Action:    entry.Action,
		ItemID:    entry.ItemID,
		Name:      entry.Name,
		Size:      entry.Size,
		Price:     entry.Price,
		Quantity:  entry.Quantity,
		Subtotal:  entry.Subtotal,
	}
}
