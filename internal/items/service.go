package items

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/enums"
	pkgerrors "github.com/oakzazasd/Clothes-Inventory/pkg/errors"
	"github.com/oakzazasd/Clothes-Inventory/pkg/pagination"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service exposes clothes item management operations.
type Service interface {
	CreateItem(ctx context.Context, username string, input CreateItemInput) (*ItemDTO, error)
	GetItem(ctx context.Context, id uint) (*ItemDTO, error)
	UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error)
	DuplicateItem(ctx context.Context, username string, id uint) (*ItemDTO, error)
	DeleteItem(ctx context.Context, id uint) error
	ListItems(ctx context.Context, input ListItemsInput) (*ItemListResult, error)
}

type stockLogWriter interface {
	AppendStockLog(ctx context.Context, tx *gorm.DB, entry *models.StockLog) error
}

type photoRemover interface {
	Remove(ctx context.Context, filename string)
}

// service implements the item service.
type service struct {
	repo     *Repository
	dbClient *db.Client
	logs     stockLogWriter
	photos   photoRemover
}

// NewService constructs an item service instance.
func NewService(repo *Repository, dbClient *db.Client, logs stockLogWriter, photos photoRemover) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("item repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if logs == nil {
		return nil, fmt.Errorf("stock log writer required")
	}
	return &service{
		repo:     repo,
		dbClient: dbClient,
		logs:     logs,
		photos:   photos,
	}, nil
}

// CreateItem inserts the item and records an ADD entry for its starting stock
// in the same transaction.
func (s *service) CreateItem(ctx context.Context, username string, input CreateItemInput) (*ItemDTO, error) {
	if err := validateItemFields(input.Name, input.Price, input.Quantity, input.Size); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:     strings.TrimSpace(input.Name),
		Price:    input.Price,
		Quantity: input.Quantity,
		Size:     input.Size,
		Photo:    input.Photo,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.Create(ctx, item)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert item")
		}
		return s.logs.AppendStockLog(ctx, tx, addLogEntry(username, created))
	}); err != nil {
		return nil, err
	}

	return toDTO(item), nil
}

// GetItem loads a single item.
func (s *service) GetItem(ctx context.Context, id uint) (*ItemDTO, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return toDTO(item), nil
}

// UpdateItem applies the provided field changes, including an optional ID
// reassignment. Reassigning to a taken ID is rejected.
func (s *service) UpdateItem(ctx context.Context, id uint, input UpdateItemInput) (*ItemDTO, error) {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		item.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil {
		item.Price = *input.Price
	}
	if input.Quantity != nil {
		item.Quantity = *input.Quantity
	}
	if input.Size != nil {
		item.Size = *input.Size
	}
	oldPhoto := item.Photo
	if input.RemovePhoto {
		item.Photo = nil
	} else if input.Photo != nil {
		item.Photo = input.Photo
	}

	if err := validateItemFields(item.Name, item.Price, item.Quantity, item.Size); err != nil {
		return nil, err
	}

	reassign := input.NewID != nil && *input.NewID != id
	if reassign && *input.NewID == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id must be positive")
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		if reassign {
			taken, err := txRepo.ExistsByID(ctx, *input.NewID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check item id")
			}
			if taken {
				return pkgerrors.New(pkgerrors.CodeConflict, "ID already in use")
			}
			if err := txRepo.ReassignID(ctx, id, *input.NewID); err != nil {
				if db.IsUniqueViolation(err, "") {
					return pkgerrors.New(pkgerrors.CodeConflict, "ID already in use")
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: reassign item id")
			}
			item.ID = *input.NewID
		}
		if _, err := txRepo.Update(ctx, item); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update item")
		}
		return nil
	}); err != nil {
		return nil, err
	}

	s.removeOrphanedPhoto(ctx, oldPhoto, item.Photo)

	return toDTO(item), nil
}

// removeOrphanedPhoto deletes the previous photo file after a replacement or
// removal, best-effort, once no other item references it.
func (s *service) removeOrphanedPhoto(ctx context.Context, oldPhoto, newPhoto *string) {
	if oldPhoto == nil || s.photos == nil {
		return
	}
	if newPhoto != nil && *newPhoto == *oldPhoto {
		return
	}
	refs, err := s.repo.CountByPhoto(ctx, *oldPhoto)
	if err == nil && refs == 0 {
		s.photos.Remove(ctx, *oldPhoto)
	}
}

// DuplicateItem clones an existing item into a fresh row with a new ID and
// records an ADD entry for the copied stock. The photo reference is shared.
func (s *service) DuplicateItem(ctx context.Context, username string, id uint) (*ItemDTO, error) {
	source, err := s.findItem(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := &models.Item{
		Name:     source.Name,
		Price:    source.Price,
		Quantity: source.Quantity,
		Size:     source.Size,
		Photo:    source.Photo,
	}

	if err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		created, err := txRepo.Create(ctx, clone)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: duplicate item")
		}
		return s.logs.AppendStockLog(ctx, tx, addLogEntry(username, created))
	}); err != nil {
		return nil, err
	}

	return toDTO(clone), nil
}

// DeleteItem removes the item. The photo file is removed best-effort once no
// other item references it; log rows keep their snapshot either way.
func (s *service) DeleteItem(ctx context.Context, id uint) error {
	item, err := s.findItem(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete item")
	}

	if item.Photo != nil && s.photos != nil {
		refs, err := s.repo.CountByPhoto(ctx, *item.Photo)
		if err == nil && refs == 0 {
			s.photos.Remove(ctx, *item.Photo)
		}
	}
	return nil
}

// ListItems returns one page of items filtered by the optional search query.
func (s *service) ListItems(ctx context.Context, input ListItemsInput) (*ItemListResult, error) {
	page := input.Pagination.Normalize()

	rows, total, err := s.repo.List(ctx, input.Query, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list items")
	}

	dtos := make([]ItemDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *toDTO(&rows[i]))
	}

	return &ItemListResult{
		Items: dtos,
		Meta:  pagination.NewMeta(page, total),
	}, nil
}

func (s *service) findItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load item")
	}
	return item, nil
}

func addLogEntry(username string, item *models.Item) *models.StockLog {
	itemID := item.ID
	return &models.StockLog{
		User:     username,
		Action:   enums.LogActionAdd,
		ItemID:   &itemID,
		Name:     item.Name,
		Size:     item.Size,
		Price:    item.Price,
		Quantity: item.Quantity,
		Subtotal: item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))),
	}
}

func validateItemFields(name string, price decimal.Decimal, quantity int, size enums.ItemSize) error {
	if strings.TrimSpace(name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "price cannot be negative")
	}
	if quantity < 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	if !size.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid size %q", size))
	}
	return nil
}
