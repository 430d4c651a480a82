package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskboard/internal/common"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/taskboard/internal/validation"
	"github.com/google/uuid"
)

// ProfileService reads and edits the caller's profile. The avatar is set
// only through PresignAvatarUpload followed by ConfirmAvatar.
type ProfileService struct {
	db            *sql.DB
	repomanager   repomanager.RepositoryManager
	storage       AvatarStorage
	avatarBaseURL string
}

func NewProfileService(db *sql.DB, m repomanager.RepositoryManager, storage AvatarStorage, avatarBaseURL string) *ProfileService {
	return &ProfileService{
		db:            db,
		repomanager:   m,
		storage:       storage,
		avatarBaseURL: strings.TrimRight(avatarBaseURL, "/"),
	}
}

// Get returns the profile of userID, or nil when there is none.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.db).GetByUser(ctx, userID)
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return p, err
}

func (s *ProfileService) Update(ctx context.Context, userID string, patch models.ProfilePatch) (*models.Profile, error) {
	if patch.FullName != nil {
		name := strings.TrimSpace(*patch.FullName)
		patch.FullName = &name
	}
	if err := validation.Profile(patch).Err(); err != nil {
		return nil, err
	}
	return s.repomanager.Profiles(s.db).Update(ctx, userID, patch)
}

func avatarKeyPrefix(userID string) string {
	return "avatars/" + userID + "/"
}

// PresignAvatarUpload reserves a fresh object key under the caller's prefix
// and returns it with a presigned PUT URL.
func (s *ProfileService) PresignAvatarUpload(ctx context.Context, userID, contentType string) (key, url string, err error) {
	if !strings.HasPrefix(contentType, "image/") {
		return "", "", validation.Errors{{Field: "content_type", Message: "Avatar must be an image"}}
	}
	key = avatarKeyPrefix(userID) + uuid.NewString()
	url, err = s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return "", "", fmt.Errorf("presign error: %w", err)
	}
	return key, url, nil
}

// ConfirmAvatar points avatar_url at an uploaded object. Keys outside the
// caller's prefix are rejected.
func (s *ProfileService) ConfirmAvatar(ctx context.Context, userID, key string) (*models.Profile, error) {
	prefix := avatarKeyPrefix(userID)
	if !strings.HasPrefix(key, prefix) || len(key) == len(prefix) || strings.Contains(key, "..") {
		return nil, validation.Errors{{Field: "key", Message: "Invalid avatar key"}}
	}
	return s.repomanager.Profiles(s.db).SetAvatarURL(ctx, userID, s.avatarBaseURL+"/"+key)
}
