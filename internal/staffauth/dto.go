package staffauth

import (
	"time"

	"github.com/google/uuid"
	"github.com/oakzazasd/Clothes-Inventory/pkg/db/models"
)

// LoginRequest carries the submitted credentials.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// StaffUserDTO is the API-facing staff user shape.
type StaffUserDTO struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// LoginResponse returns the token pair for an authenticated staff member.
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         StaffUserDTO `json:"user"`
}

// RefreshRequest rotates an expiring session.
type RefreshRequest struct {
	AccessToken  string `json:"access_token" validate:"required"`
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshResponse returns the replacement token pair.
type RefreshResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// FromModel converts the persistence row into its DTO.
func FromModel(user *models.StaffUser) StaffUserDTO {
	return StaffUserDTO{
		ID:          user.ID,
		Username:    user.Username,
		LastLoginAt: user.LastLoginAt,
	}
}
