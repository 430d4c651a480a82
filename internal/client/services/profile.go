package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskboard/internal/client/cache"
	"github.com/dmitrijs2005/taskboard/internal/client/client"
	"github.com/dmitrijs2005/taskboard/internal/client/notify"
	"github.com/dmitrijs2005/taskboard/internal/filex"
	"github.com/dmitrijs2005/taskboard/internal/models"
	"github.com/dmitrijs2005/taskboard/internal/netx"
	"github.com/dmitrijs2005/taskboard/internal/validation"
)

// MaxAvatarBytes caps the size of an uploaded avatar.
const MaxAvatarBytes = 5 << 20

// ProfileService is the profile repository hook. Get yields a nil profile
// when the user has none. The avatar is only changed through UploadAvatar.
type ProfileService interface {
	Get(ctx context.Context, owner string) (cache.Snapshot[*models.Profile], error)
	Peek(owner string) cache.Snapshot[*models.Profile]
	Update(ctx context.Context, owner string, patch models.ProfilePatch) (*models.Profile, error)
	UploadAvatar(ctx context.Context, owner, path string) (*models.Profile, error)
}

type profileService struct {
	client   client.Client
	store    *cache.Store
	notifier notify.Notifier
	http     netx.HTTPDoer
}

// NewProfileService builds the hook. A nil doer uses netx.DefaultClient.
func NewProfileService(c client.Client, store *cache.Store, n notify.Notifier, doer netx.HTTPDoer) ProfileService {
	return &profileService{client: c, store: store, notifier: n, http: doer}
}

func profileKey(owner string) cache.Key {
	return cache.Key{Kind: cache.KindProfile, Owner: owner}
}

func (s *profileService) Get(ctx context.Context, owner string) (cache.Snapshot[*models.Profile], error) {
	return cache.Fetch(ctx, s.store, profileKey(owner), s.client.GetProfile)
}

func (s *profileService) Peek(owner string) cache.Snapshot[*models.Profile] {
	return cache.Peek[*models.Profile](s.store, profileKey(owner))
}

func (s *profileService) Update(ctx context.Context, owner string, patch models.ProfilePatch) (*models.Profile, error) {
	var out *models.Profile
	err := mutation(ctx, s.store, s.notifier, profileKey(owner), "Profile updated successfully", "Failed to update profile",
		func() error {
			if err := validation.Profile(patch).Err(); err != nil {
				return err
			}
			p, err := s.client.UpdateProfile(ctx, patch)
			out = p
			return err
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *profileService) UploadAvatar(ctx context.Context, owner, path string) (*models.Profile, error) {
	var out *models.Profile
	err := mutation(ctx, s.store, s.notifier, profileKey(owner), "Avatar updated", "Failed to update avatar",
		func() error {
			data, contentType, err := filex.ReadImage(path, MaxAvatarBytes)
			if err != nil {
				return err
			}
			key, url, err := s.client.PresignAvatarUpload(ctx, contentType)
			if err != nil {
				return err
			}
			if err := netx.UploadToPresignedURL(ctx, s.http, url, contentType, data); err != nil {
				return fmt.Errorf("avatar upload: %w", err)
			}
			p, err := s.client.ConfirmAvatar(ctx, key)
			out = p
			return err
		})
	if err != nil {
		return nil, err
	}
	return out, nil
}
