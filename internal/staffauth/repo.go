package staffauth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists staff user rows.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByUsername loads a staff user by exact lowercase username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.StaffUser, error) {
	var user models.StaffUser
	err := r.db.WithContext(ctx).
		First(&user, "username = ?", strings.ToLower(strings.TrimSpace(username))).
		Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a staff user row.
func (r *Repository) Create(ctx context.Context, user *models.StaffUser) (*models.StaffUser, error) {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// Count returns the number of staff users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.StaffUser{}).Count(&count).Error
	return count, err
}

// UpdateLastLogin stamps the successful login time.
func (r *Repository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.StaffUser{}).
		Where("id = ?", id).
		Update("last_login_at", at).
		Error
}
