// Package profiles stores the one-per-user profile rows.
package profiles

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/models"
)

type Repository interface {
	// Create provisions the profile of a new user.
	Create(ctx context.Context, userID string, fullName *string) (*models.Profile, error)
	// GetByUser returns common.ErrorNotFound when the user has no profile.
	GetByUser(ctx context.Context, userID string) (*models.Profile, error)
	Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error)
	SetAvatarURL(ctx context.Context, userID, url string) (*models.Profile, error)
}
