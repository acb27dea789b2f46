package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ViewLine is one cart line joined with the current item row. Missing marks
// lines whose item was deleted after being added to the cart.
type ViewLine struct {
	ItemID   uint            `json:"item_id"`
	Name     string          `json:"name"`
	Size     enums.ItemSize  `json:"size"`
	Price    decimal.Decimal `json:"price"`
	Qty      int             `json:"qty"`
	Subtotal decimal.Decimal `json:"subtotal"`
	Missing  bool            `json:"missing,omitempty"`
}

// View is the priced cart as shown before checkout. Prices are current item
// prices; the audit snapshot is taken at checkout time.
type View struct {
	Lines         []ViewLine      `json:"lines"`
	Total         decimal.Decimal `json:"total"`
	TotalQuantity int             `json:"total_quantity"`
	HasMissing    bool            `json:"has_missing,omitempty"`
}

type itemLoader interface {
	FindByID(ctx context.Context, id uint) (*models.Item, error)
	FindByIDs(ctx context.Context, ids []uint) ([]models.Item, error)
}

// Service manages the per-session withdraw cart.
type Service interface {
	AddItem(ctx context.Context, sessionID string, itemID uint, qty int) (*View, error)
	SetLines(ctx context.Context, sessionID string, lines []Line) (*View, error)
	RemoveItem(ctx context.Context, sessionID string, itemID uint) (*View, error)
	ClearCart(ctx context.Context, sessionID string) error
	GetView(ctx context.Context, sessionID string) (*View, error)
}

type service struct {
	store *Store
	items itemLoader
}

// NewService constructs a cart service instance.
func NewService(store *Store, items itemLoader) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	return &service{store: store, items: items}, nil
}

// AddItem puts qty units of the item into the session cart. The item must
// exist at add time; stock is only checked at checkout.
func (s *service) AddItem(ctx context.Context, sessionID string, itemID uint, qty int) (*View, error) {
	if _, err := s.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}

	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Add(itemID, qty)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// SetLines replaces the whole cart with the submitted lines, in the
// submitted order; zero or negative quantities drop the line.
func (s *service) SetLines(ctx context.Context, sessionID string, lines []Line) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.ReplaceLines(lines)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// RemoveItem drops one line from the cart.
func (s *service) RemoveItem(ctx context.Context, sessionID string, itemID uint) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	cart.Remove(itemID)
	if err := s.store.Save(ctx, sessionID, cart); err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

// ClearCart empties the session cart.
func (s *service) ClearCart(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}

// GetView returns the priced cart.
func (s *service) GetView(ctx context.Context, sessionID string) (*View, error) {
	cart, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, cart)
}

func (s *service) buildView(ctx context.Context, cart *Cart) (*View, error) {
	view := &View{
		Lines: make([]ViewLine, 0, len(cart.Lines)),
		Total: decimal.Zero,
	}
	if cart.IsEmpty() {
		return view, nil
	}

	ids := make([]uint, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		ids = append(ids, line.ItemID)
	}
	rows, err := s.items.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load cart items")
	}
	byID := make(map[uint]*models.Item, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	for _, line := range cart.Lines {
		item, ok := byID[line.ItemID]
		if !ok {
			view.Lines = append(view.Lines, ViewLine{
				ItemID:   line.ItemID,
				Qty:      line.Qty,
				Subtotal: decimal.Zero,
				Missing:  true,
			})
			view.HasMissing = true
			view.TotalQuantity += line.Qty
			continue
		}
		subtotal := item.Price.Mul(decimal.NewFromInt(int64(line.Qty)))
		view.Lines = append(view.Lines, ViewLine{
			ItemID:   item.ID,
			Name:     item.Name,
			Size:     item.Size,
			Price:    item.Price,
			Qty:      line.Qty,
			Subtotal: subtotal,
		})
		view.Total = view.Total.Add(subtotal)
		view.TotalQuantity += line.Qty
	}
	return view, nil
}
