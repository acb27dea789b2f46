package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oakzazasd/Clothes-Inventory/internal/cart"
	"github.com/oakzazasd/Clothes-Inventory/internal/items"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/logger"
	"github.com/oakzazasd/Clothes-Inventory/pkg/metrics"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// ReceiptLine is one committed withdrawal, snapshotted at checkout time.
type ReceiptLine struct {
	ItemID   uint            `json:"item_id"`
	Name     string          `json:"name"`
	Size     enums.ItemSize  `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Receipt summarizes a committed checkout.
type Receipt struct {
	Lines         []ReceiptLine   `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	TotalQuantity int             `json:"total_quantity"`
}

// LineProblem describes why one cart line failed validation.
type LineProblem struct {
	ItemID    uint   `json:"item_id"`
	Reason    string `json:"reason"`
	Requested int    `json:"requested,omitempty"`
	Available int    `json:"available,omitempty"`
}

type cartStore interface {
	Load(ctx context.Context, sessionID string) (*cart.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type stockLogWriter interface {
	AppendStockLog(ctx context.Context, tx *gorm.DB, entry *models.StockLog) error
}

// Service commits the session cart as a single all-or-nothing withdrawal.
type Service interface {
	Confirm(ctx context.Context, username, sessionID string) (*Receipt, error)
}

type service struct {
	repo     *items.Repository
	dbClient *db.Client
	carts    cartStore
	logs     stockLogWriter
	metrics  *metrics.CheckoutMetrics
	logg     *logger.Logger
}

// NewService constructs a checkout service instance.
func NewService(repo *items.Repository, dbClient *db.Client, carts cartStore, logs stockLogWriter, m *metrics.CheckoutMetrics, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if carts == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if logs == nil {
		return nil, fmt.Errorf("stock log writer required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		carts:    carts,
		logs:     logs,
		metrics:  m,
		logg:     logg,
	}, nil
}

// Confirm validates every cart line against current stock, then writes one
// WITHDRAW log row and deducts stock per line inside a single transaction.
// Any failing line aborts the whole checkout; the cart survives for fixing.
func (s *service) Confirm(ctx context.Context, username, sessionID string) (*Receipt, error) {
	start := time.Now()

	sessionCart, err := s.carts.Load(ctx, sessionID)
	if err != nil {
		s.observe("load_failed", start)
		return nil, err
	}
	if sessionCart.IsEmpty() {
		s.observe("empty_cart", start)
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, ErrEmptyCart, "nothing to withdraw")
	}

	var receipt *Receipt
	err = s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)

		loaded, verr := s.validateLines(ctx, txRepo, sessionCart)
		if verr != nil {
			return verr
		}

		built, merr := s.commitLines(ctx, tx, txRepo, username, sessionCart, loaded)
		if merr != nil {
			return merr
		}
		receipt = built
		return nil
	})
	if err != nil {
		s.observe(failureReason(err), start)
		return nil, err
	}

	if err := s.carts.Clear(ctx, sessionID); err != nil {
		// the withdrawal is committed; a stale cart is recoverable
		if s.logg != nil {
			s.logg.Error(ctx, "checkout committed but cart cleanup failed", err)
		}
	}

	s.metrics.IncSuccess()
	s.metrics.ObserveDuration("committed", time.Since(start))
	return receipt, nil
}

// validateLines checks every line before anything is written, aggregating all
// problems so the client can fix the cart in one pass.
func (s *service) validateLines(ctx context.Context, txRepo *items.Repository, sessionCart *cart.Cart) (map[uint]*models.Item, error) {
	loaded := make(map[uint]*models.Item, len(sessionCart.Lines))
	problems := make([]LineProblem, 0)
	var agg error

	for _, line := range sessionCart.Lines {
		item, err := txRepo.FindByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				agg = multierr.Append(agg, &ItemNotFoundError{ItemID: line.ItemID})
				problems = append(problems, LineProblem{ItemID: line.ItemID, Reason: "not_found"})
				continue
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart item")
		}
		if item.Quantity < line.Qty {
			agg = multierr.Append(agg, &InsufficientStockError{
				ItemID:    item.ID,
				Name:      item.Name,
				Requested: line.Qty,
				Available: item.Quantity,
			})
			problems = append(problems, LineProblem{
				ItemID:    item.ID,
				Reason:    "insufficient_stock",
				Requested: line.Qty,
				Available: item.Quantity,
			})
			continue
		}
		loaded[item.ID] = item
	}

	if agg != nil {
		code := pkgerrors.CodeStateConflict
		if onlyNotFound(agg) {
			code = pkgerrors.CodeNotFound
		}
		return nil, pkgerrors.Wrap(code, agg, "checkout validation failed").WithDetails(problems)
	}
	return loaded, nil
}

// commitLines appends one WITHDRAW row and deducts stock per line, in cart
// order. A deduction that no longer fits aborts the transaction.
func (s *service) commitLines(ctx context.Context, tx *gorm.DB, txRepo *items.Repository, username string, sessionCart *cart.Cart, loaded map[uint]*models.Item) (*Receipt, error) {
	receipt := &Receipt{
		Lines: make([]ReceiptLine, 0, len(sessionCart.Lines)),
		Total: decimal.Zero,
	}

	for _, line := range sessionCart.Lines {
		item := loaded[line.ItemID]
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		itemID := item.ID

		entry := &models.StockLog{
			User:     username,
			Action:   enums.LogActionWithdraw,
			ItemID:   &itemID,
			Name:     item.Name,
			Size:     item.Size,
			Price:    item.Price,
			Quantity: line.Qty,
			Subtotal: subtotal,
		}
		if err := s.logs.AppendStockLog(ctx, tx, entry); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: append withdraw log")
		}

		ok, err := txRepo.DeductStock(ctx, item.ID, line.Qty)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: deduct stock")
		}
		if !ok {
			// stock moved between validation and deduction
			stockErr := &InsufficientStockError{
				ItemID:    item.ID,
				Name:      item.Name,
				Requested: line.Qty,
				Available: item.Quantity,
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeStateConflict, stockErr, "checkout aborted").
				WithDetails([]LineProblem{{
					ItemID:    item.ID,
					Reason:    "insufficient_stock",
					Requested: line.Qty,
				}})
		}

		receipt.Lines = append(receipt.Lines, ReceiptLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Size:     item.Size,
			Price:    item.Price,
			Quantity: line.Qty,
			Subtotal: subtotal,
		})
		receipt.Total = receipt.Total.Add(subtotal)
		receipt.TotalQuantity += line.Qty
	}

	return receipt, nil
}

func (s *service) observe(reason string, start time.Time) {
	s.metrics.IncFailure(reason)
	s.metrics.ObserveDuration(reason, time.Since(start))
}

func onlyNotFound(err error) bool {
	for _, single := range multierr.Errors(err) {
		var notFound *ItemNotFoundError
		if !errors.As(single, &notFound) {
			return false
		}
	}
	return true
}

func failureReason(err error) string {
	if errors.Is(err, ErrEmptyCart) {
		return "empty_cart"
	}
	var stock *InsufficientStockError
	if errors.As(err, &stock) {
		return "insufficient_stock"
	}
	var missing *ItemNotFoundError
	if errors.As(err, &missing) {
		return "item_not_found"
	}
	return "error"
}
