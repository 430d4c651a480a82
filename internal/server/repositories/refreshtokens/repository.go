// Package refreshtokens stores the single-use refresh tokens issued at login.
package refreshtokens

import (
	"context"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/server/models"
)

type Repository interface {
	// Create stores token for userID, valid until expires.
	Create(ctx context.Context, userID, token string, expires time.Time) error

	// Consume deletes token and returns the row it held. A token can be
	// consumed once; unknown tokens yield common.ErrorNotFound.
	Consume(ctx context.Context, token string) (*models.RefreshToken, error)

	// DeleteExpired removes the tokens of userID that expired before now.
	DeleteExpired(ctx context.Context, userID string, now time.Time) (int64, error)
}
