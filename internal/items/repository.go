package items

import (
	"context"
	"strings"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"github.com/oakzazasd/Clothes-Inventory/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes persistence operations for clothes items.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a single item.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Item, error) {
	var item models.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDs loads the items matching the given IDs. Missing IDs are simply
// absent from the result.
func (r *Repository) FindByIDs(ctx context.Context, ids []uint) ([]models.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Item
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&rows).
		Error
	return rows, err
}

// ExistsByID reports whether an item with the given ID is present.
func (r *Repository) ExistsByID(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", id).
		Count(&count).
		Error
	return count > 0, err
}

// List returns one page of items ordered by ID, filtered by an optional
// case-insensitive search on name and size.
func (r *Repository) List(ctx context.Context, query string, page pagination.Params) ([]models.Item, int64, error) {
	qb := r.db.WithContext(ctx).Model(&models.Item{})

	if search := strings.TrimSpace(query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(size) LIKE ?)", pattern, pattern)
	}

	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []models.Item
	err := qb.
		Order("id ASC").
		Offset(page.Offset()).
		Limit(page.Limit()).
		Find(&rows).
		Error
	return rows, total, err
}

// Create inserts a new item row.
func (r *Repository) Create(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// Update saves the full item row.
func (r *Repository) Update(ctx context.Context, item *models.Item) (*models.Item, error) {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// ReassignID moves the row to a new primary key value. The caller checks the
// target is free first; the database unique constraint is the backstop.
func (r *Repository) ReassignID(ctx context.Context, oldID, newID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ?", oldID).
		Update("id", newID).
		Error
}

// Delete removes an item by ID.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{}).Error
}

// CountByPhoto counts items referencing the given photo filename.
func (r *Repository) CountByPhoto(ctx context.Context, photo string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("photo = ?", photo).
		Count(&count).
		Error
	return count, err
}

// DeductStock atomically subtracts qty from the item's quantity, refusing to
// go below zero. Returns false when the row is missing or stock is short.
func (r *Repository) DeductStock(ctx context.Context, id uint, qty int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("id = ? AND quantity >= ?", id, qty).
		Update("quantity", gorm.Expr("quantity - ?", qty))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}
