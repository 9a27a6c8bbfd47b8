// Package users provides persistence for user accounts.
package users

import (
	"context"

	"github.com/seventour/seventour/internal/server/models"
)

// Repository defines storage operations for user accounts.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	SetGoogleID(ctx context.Context, id int64, googleID string) error
	SetProfilePhotoURL(ctx context.Context, id int64, url string) error
}
