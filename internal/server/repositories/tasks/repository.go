// Package tasks stores the owner-scoped rows of the tasks table. Every
// statement carries the owner in its WHERE clause, so a row of another user
// behaves exactly like a missing one.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/models"
)

type Repository interface {
	// List returns the tasks of userID, newest first.
	List(ctx context.Context, userID string) ([]models.Task, error)
	Create(ctx context.Context, userID string, in models.TaskInput) (*models.Task, error)
	// Update applies the non-nil fields of patch and bumps updated_at.
	Update(ctx context.Context, userID, id string, patch models.TaskPatch) (*models.Task, error)
	Delete(ctx context.Context, userID, id string) error
}
