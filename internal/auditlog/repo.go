package auditlog

import (
	"context"
	"strings"

	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists and reads the append-only stock log. Rows are never
// updated or deleted.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AppendStockLog inserts one audit row. When tx is non-nil the insert joins
// the caller's transaction.
func (r *Repository) AppendStockLog(ctx context.Context, tx *gorm.DB, entry *models.StockLog) error {
	conn := r.db
	if tx != nil {
		conn = tx
	}
	return conn.WithContext(ctx).Create(entry).Error
}

// List returns the newest rows first, optionally filtered, capped at limit.
func (r *Repository) List(ctx context.Context, input ListLogsInput, limit int) ([]models.StockLog, error) {
	qb := r.filtered(ctx, input)

	var rows []models.StockLog
	err := qb.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).
		Error
	return rows, err
}

func (r *Repository) filtered(ctx context.Context, input ListLogsInput) *gorm.DB {
	qb := r.db.WithContext(ctx).Model(&models.StockLog{})

	if input.Action != "" {
		qb = qb.Where("action = ?", input.Action)
	}
	if search := strings.TrimSpace(input.Query); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		qb = qb.Where("(LOWER(name) LIKE ? OR LOWER(username) LIKE ? OR LOWER(size) LIKE ?)", pattern, pattern, pattern)
	}
	return qb
}
