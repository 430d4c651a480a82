package client

import (
	"context"

	"github.com/dmitrijs2005/taskboard/internal/models"
)

// Client is the remote data service as seen by the client core. Task and
// profile calls act on the signed-in user.
type Client interface {
	Close() error
	Ping(ctx context.Context) error

	SignUp(ctx context.Context, email, password, fullName string) (string, error)
	Login(ctx context.Context, email, password string) (models.Session, error)
	// Resume restores credentials saved by an earlier Login.
	Resume(refreshToken string)
	Logout()
	// OnTokenRotation registers a callback run with every new refresh token.
	OnTokenRotation(fn func(refreshToken string))

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, patch models.TaskPatch) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error

	GetProfile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, patch models.ProfilePatch) (*models.Profile, error)
	PresignAvatarUpload(ctx context.Context, contentType string) (key, url string, err error)
	ConfirmAvatar(ctx context.Context, key string) (*models.Profile, error)
}
