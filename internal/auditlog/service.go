package auditlog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
)

const defaultListLimit = 500

// Service exposes read access to the stock log.
type Service interface {
	ListLogs(ctx context.Context, input ListLogsInput) (*LogListResult, error)
}

type service struct {
	repo  *Repository
	limit int
}

// NewService constructs the audit log service. limit caps how many rows one
// listing returns; zero falls back to the default of 500.
func NewService(repo *Repository, limit int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit log repository required")
	}
	if limit <= 0 {
		limit = defaultListLimit
	}
	return &service{repo: repo, limit: limit}, nil
}

// ListLogs returns the newest filtered entries plus totals over those same
// entries.
func (s *service) ListLogs(ctx context.Context, input ListLogsInput) (*LogListResult, error) {
	if input.Action != "" && !input.Action.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid action %q", input.Action))
	}

	rows, err := s.repo.List(ctx, input, s.limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list stock logs")
	}

	entries := make([]LogDTO, 0, len(rows))
	for i := range rows {
		entries = append(entries, toDTO(&rows[i]))
	}

	return &LogListResult{
		Entries: entries,
		Totals:  sumTotals(rows),
	}, nil
}

// sumTotals aggregates quantity and value per action over the rows being
// shown, so the totals line always matches the listing.
func sumTotals(rows []models.StockLog) Totals {
	totals := Totals{
		AddedValue:     decimal.Zero,
		WithdrawnValue: decimal.Zero,
	}
	for i := range rows {
		switch rows[i].Action {
		case enums.LogActionAdd:
			totals.AddedQuantity += rows[i].Quantity
			totals.AddedValue = totals.AddedValue.Add(rows[i].Subtotal)
		case enums.LogActionWithdraw:
			totals.WithdrawnQuantity += rows[i].Quantity
			totals.WithdrawnValue = totals.WithdrawnValue.Add(rows[i].Subtotal)
		}
	}
	return totals
}
